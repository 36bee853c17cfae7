// Package signmag implements sign/magnitude fixed-width integers.
//
// A value of width w carries one sign bit and a w-1 bit magnitude.
// Positive and negative zero are distinct encodings that compare
// equal. Arithmetic is exact: Add and Sub return a value one bit
// wider than the wider operand so the result can never overflow.
package signmag

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/intel/rohd-hcl-sub003/internal/mathutil"
	"github.com/intel/rohd-hcl-sub003/logicvec"
)

// A WidthError reports a width that cannot encode the requested value.
type WidthError struct {
	Op   string
	Want int
	Got  int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("signmag: %s: need width %d, got %d", e.Op, e.Want, e.Got)
}

// A RangeError reports constraints that admit no representable value.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return "signmag: " + e.Reason
}

// Value is a sign/magnitude integer. The zero Value is positive zero
// of width 1 with an empty magnitude and is not usable; construct
// values with New, FromInt or FromVector.
type Value struct {
	width     int // total width including the sign bit
	sign      uint64
	magnitude logicvec.Vector
}

// New returns the value (-1)^sign * magnitude at the given total
// width. The magnitude must be exactly width-1 bits.
func New(width int, sign uint64, magnitude logicvec.Vector) (Value, error) {
	if width < 2 {
		return Value{}, &WidthError{Op: "New", Want: 2, Got: width}
	}
	if magnitude.Width() != width-1 {
		return Value{}, &WidthError{Op: "New", Want: width - 1, Got: magnitude.Width()}
	}
	return Value{width: width, sign: sign & 1, magnitude: magnitude}, nil
}

// FromInt encodes x at the given total width.
func FromInt(width int, x int64) (Value, error) {
	if width < 2 {
		return Value{}, &WidthError{Op: "FromInt", Want: 2, Got: width}
	}
	var sign uint64
	mag := big.NewInt(x)
	if x < 0 {
		sign = 1
		mag.Neg(mag)
	}
	if mag.BitLen() > width-1 {
		return Value{}, &WidthError{Op: "FromInt", Want: mag.BitLen() + 1, Got: width}
	}
	return Value{width: width, sign: sign, magnitude: logicvec.FromBigInt(width-1, mag)}, nil
}

// FromVector decodes a raw bit pattern. The top bit is the sign, the
// rest is the magnitude.
func FromVector(raw logicvec.Vector) (Value, error) {
	w := raw.Width()
	if w < 2 {
		return Value{}, &WidthError{Op: "FromVector", Want: 2, Got: w}
	}
	return Value{
		width:     w,
		sign:      uint64(raw.Bit(w - 1)),
		magnitude: raw.Slice(w-2, 0),
	}, nil
}

// Width returns the total width including the sign bit.
func (v Value) Width() int { return v.width }

// Signbit reports whether the sign bit is set. Note that negative
// zero has the sign bit set but compares equal to positive zero.
func (v Value) Signbit() bool { return v.sign != 0 }

// Magnitude returns the magnitude field.
func (v Value) Magnitude() logicvec.Vector { return v.magnitude }

// Vector returns the raw encoding, sign bit on top.
func (v Value) Vector() logicvec.Vector {
	return logicvec.Concat(logicvec.FromUint64(1, v.sign), v.magnitude)
}

// BigInt returns the represented integer.
func (v Value) BigInt() *big.Int {
	i := v.magnitude.BigInt()
	if v.sign != 0 {
		i.Neg(i)
	}
	return i
}

// Int64 returns the represented integer. It panics if the magnitude
// does not fit in 63 bits.
func (v Value) Int64() int64 {
	i := v.BigInt()
	if !i.IsInt64() {
		panic("signmag: value does not fit in int64")
	}
	return i.Int64()
}

// IsZero reports whether the magnitude is zero, for either sign.
func (v Value) IsZero() bool { return v.magnitude.IsZero() }

func (v Value) String() string {
	return fmt.Sprintf("%d %s", v.sign, v.magnitude.Binary())
}

// Compare returns -1, 0 or 1 ordering v against other by integer
// value. Positive and negative zero compare equal.
func (v Value) Compare(other Value) int {
	return v.BigInt().Cmp(other.BigInt())
}

// Eq reports whether v and other represent the same integer.
func (v Value) Eq(other Value) bool { return v.Compare(other) == 0 }

// Negate flips the sign bit. Negating zero yields the other zero
// encoding.
func (v Value) Negate() Value {
	v.sign ^= 1
	return v
}

// Abs clears the sign bit.
func (v Value) Abs() Value {
	v.sign = 0
	return v
}

// Add returns v + other. The result is one bit wider than the wider
// operand, which is always enough to hold the exact sum.
func (v Value) Add(other Value) Value {
	return fromExact(mathutil.Max(v.width, other.width)+1, new(big.Int).Add(v.BigInt(), other.BigInt()))
}

// Sub returns v - other, with the same width growth as Add.
func (v Value) Sub(other Value) Value {
	return fromExact(mathutil.Max(v.width, other.width)+1, new(big.Int).Sub(v.BigInt(), other.BigInt()))
}

func fromExact(width int, i *big.Int) Value {
	var sign uint64
	if i.Sign() < 0 {
		sign = 1
		i = new(big.Int).Neg(i)
	}
	return Value{width: width, sign: sign, magnitude: logicvec.FromBigInt(width-1, i)}
}

// A RandomOption constrains Random.
type RandomOption func(*randomSpec)

type randomSpec struct {
	bounds []bound
}

type bound struct {
	v      *big.Int
	upper  bool
	strict bool
}

// Gt admits only values strictly greater than x.
func Gt(x int64) RandomOption {
	return func(s *randomSpec) {
		s.bounds = append(s.bounds, bound{v: big.NewInt(x), strict: true})
	}
}

// Gte admits only values greater than or equal to x.
func Gte(x int64) RandomOption {
	return func(s *randomSpec) {
		s.bounds = append(s.bounds, bound{v: big.NewInt(x)})
	}
}

// Lt admits only values strictly less than x.
func Lt(x int64) RandomOption {
	return func(s *randomSpec) {
		s.bounds = append(s.bounds, bound{v: big.NewInt(x), upper: true, strict: true})
	}
}

// Lte admits only values less than or equal to x.
func Lte(x int64) RandomOption {
	return func(s *randomSpec) {
		s.bounds = append(s.bounds, bound{v: big.NewInt(x), upper: true})
	}
}

// Random returns a value of the given width drawn uniformly from the
// integers satisfying the constraints. Zero is drawn as positive
// zero. When the constraints admit exactly one integer that integer
// is returned deterministically.
func Random(rng *rand.Rand, width int, opts ...RandomOption) (Value, error) {
	if width < 2 {
		return Value{}, &WidthError{Op: "Random", Want: 2, Got: width}
	}
	var spec randomSpec
	for _, opt := range opts {
		opt(&spec)
	}

	magMax := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	magMax.Sub(magMax, big.NewInt(1))
	lo := new(big.Int).Neg(magMax)
	hi := new(big.Int).Set(magMax)
	one := big.NewInt(1)
	for _, b := range spec.bounds {
		i := new(big.Int).Set(b.v)
		if b.upper {
			if b.strict {
				i.Sub(i, one)
			}
			if i.Cmp(hi) < 0 {
				hi.Set(i)
			}
		} else {
			if b.strict {
				i.Add(i, one)
			}
			if i.Cmp(lo) > 0 {
				lo.Set(i)
			}
		}
	}
	if lo.Cmp(hi) > 0 {
		return Value{}, &RangeError{Reason: "no representable value satisfies the constraints"}
	}

	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)
	pick := new(big.Int).Rand(rng, span)
	pick.Add(pick, lo)
	return fromExact(width, pick), nil
}
