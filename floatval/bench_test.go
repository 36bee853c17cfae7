package floatval

import (
	"math/rand"
	"runtime"
	"testing"
)

func BenchmarkAdd(b *testing.B) {
	p, _ := NewPopulator(Float16)
	x := p.FromDouble(1.5)
	y := p.FromDouble(0x1.0cp-03)
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(x.Add(y))
	}
}

func BenchmarkMul(b *testing.B) {
	p, _ := NewPopulator(Float16)
	x := p.FromDouble(1.5)
	y := p.FromDouble(0x1.0cp-03)
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(x.Mul(y))
	}
}

func BenchmarkQuo(b *testing.B) {
	p, _ := NewPopulator(Float16)
	x := p.FromDouble(1.5)
	y := p.FromDouble(0x1.0cp-03)
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(x.Quo(y))
	}
}

func BenchmarkFromDouble(b *testing.B) {
	p, _ := NewPopulator(Float16)
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(p.FromDouble(0x1.0cp-03))
	}
}

func BenchmarkFloat64(b *testing.B) {
	p, _ := NewPopulator(Float16)
	x := p.FromDouble(0x1.0cp-03)
	for i := 0; i < b.N; i++ {
		runtime.KeepAlive(x.Float64())
	}
}

func BenchmarkRandom(b *testing.B) {
	p, _ := NewPopulator(Float16)
	rng := rand.New(rand.NewSource(1))
	lo := p.FromDouble(-2)
	hi := p.FromDouble(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := p.Random(rng, Gte(lo), Lte(hi))
		if err != nil {
			b.Fatal(err)
		}
		runtime.KeepAlive(v)
	}
}
