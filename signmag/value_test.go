package signmag

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intel/rohd-hcl-sub003/logicvec"
)

func mustFromInt(t testing.TB, width int, x int64) Value {
	t.Helper()
	v, err := FromInt(width, x)
	if err != nil {
		t.Fatalf("FromInt(%d, %d): %v", width, x, err)
	}
	return v
}

func TestFromInt(t *testing.T) {
	tests := []struct {
		width int
		x     int64
		bits  uint64
	}{
		{4, 0, 0b0000},
		{4, 5, 0b0101},
		{4, -5, 0b1101},
		{4, 7, 0b0111},
		{4, -7, 0b1111},
		{8, 100, 0b01100100},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert := assert.New(t)
			v := mustFromInt(t, tt.width, tt.x)
			assert.Equal(tt.bits, v.Vector().Uint64())
			assert.Equal(tt.x, v.Int64())
			assert.Equal(tt.width, v.Width())
		})
	}

	// width 4 holds magnitudes up to 7
	_, err := FromInt(4, 8)
	assert.IsType(t, &WidthError{}, err)
	_, err = FromInt(4, -8)
	assert.IsType(t, &WidthError{}, err)
	_, err = FromInt(1, 0)
	assert.IsType(t, &WidthError{}, err)
}

func TestFromVector(t *testing.T) {
	assert := assert.New(t)

	v, err := FromVector(logicvec.FromUint64(4, 0b1101))
	assert.NoError(err)
	assert.Equal(int64(-5), v.Int64())
	assert.True(v.Signbit())
	assert.Equal(uint64(0b101), v.Magnitude().Uint64())
	assert.Equal("1 101", v.String())

	// negative zero
	nz, err := FromVector(logicvec.FromUint64(4, 0b1000))
	assert.NoError(err)
	assert.True(nz.IsZero())
	assert.True(nz.Signbit())
	assert.Equal(int64(0), nz.Int64())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Value
		want int
	}{
		{mustFromInt(t, 4, 3), mustFromInt(t, 4, 3), 0},
		{mustFromInt(t, 4, 3), mustFromInt(t, 4, 5), -1},
		{mustFromInt(t, 4, -3), mustFromInt(t, 4, 3), -1},
		{mustFromInt(t, 4, -3), mustFromInt(t, 4, -5), 1},
		// +0 and -0 compare equal
		{mustFromInt(t, 4, 0), mustFromInt(t, 4, 0).Negate(), 0},
		// widths do not matter
		{mustFromInt(t, 4, 3), mustFromInt(t, 8, 3), 0},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.want, tt.a.Compare(tt.b))
			assert.Equal(-tt.want, tt.b.Compare(tt.a))
			assert.Equal(tt.want == 0, tt.a.Eq(tt.b))
		})
	}
}

func TestNegateAbs(t *testing.T) {
	assert := assert.New(t)

	v := mustFromInt(t, 4, 5)
	assert.Equal(int64(-5), v.Negate().Int64())
	assert.Equal(int64(5), v.Negate().Negate().Int64())
	assert.Equal(int64(5), v.Negate().Abs().Int64())

	// negating zero flips only the encoding
	z := mustFromInt(t, 4, 0)
	nz := z.Negate()
	assert.True(nz.IsZero())
	assert.Equal(uint64(0b1000), nz.Vector().Uint64())
	assert.True(z.Eq(nz))
}

func TestAddSub(t *testing.T) {
	tests := []struct {
		a, b      int64
		sum, diff int64
	}{
		{3, 4, 7, -1},
		{-3, 4, 1, -7},
		{-3, -4, -7, 1},
		{7, 7, 14, 0},
		{-7, 7, 0, -14},
		{0, 0, 0, 0},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert := assert.New(t)
			a, b := mustFromInt(t, 4, tt.a), mustFromInt(t, 4, tt.b)
			sum := a.Add(b)
			assert.Equal(tt.sum, sum.Int64())
			assert.Equal(5, sum.Width(), "sum grows one bit")
			diff := a.Sub(b)
			assert.Equal(tt.diff, diff.Int64())
			assert.Equal(5, diff.Width())
		})
	}

	// mixed widths grow from the wider operand
	wide := mustFromInt(t, 8, 100)
	sum := wide.Add(mustFromInt(t, 4, 7))
	assert.Equal(t, int64(107), sum.Int64())
	assert.Equal(t, 9, sum.Width())
}

func TestRandom(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(13))

	for i := 0; i < 500; i++ {
		v, err := Random(rng, 5, Gte(-3), Lt(10))
		assert.NoError(err)
		x := v.Int64()
		assert.True(x >= -3 && x < 10, "draw %d out of range", x)
		assert.Equal(5, v.Width())
	}

	// a single feasible value comes back deterministically
	for i := 0; i < 20; i++ {
		v, err := Random(rng, 5, Gt(3), Lt(5))
		assert.NoError(err)
		assert.Equal(int64(4), v.Int64())
	}

	_, err := Random(rng, 5, Gt(4), Lt(5))
	assert.IsType(&RangeError{}, err)
	_, err = Random(rng, 5, Gt(100))
	assert.IsType(&RangeError{}, err)

	// unconstrained draws cover the signed range
	sawNeg, sawPos := false, false
	for i := 0; i < 200; i++ {
		v, err := Random(rng, 4)
		assert.NoError(err)
		x := v.Int64()
		assert.True(x >= -7 && x <= 7)
		if x < 0 {
			sawNeg = true
		}
		if x > 0 {
			sawPos = true
		}
	}
	assert.True(sawNeg)
	assert.True(sawPos)
}
