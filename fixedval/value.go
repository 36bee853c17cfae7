// Package fixedval implements signed and unsigned Q(m.n) fixed-point
// values with width-growth arithmetic and floating-point interop.
//
// A Value is an immutable raw two's-complement (signed) or unsigned
// bit vector of width m+n representing rawInt / 2^n. No implicit
// normalization happens: leading and trailing zeros are preserved.
package fixedval

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/intel/rohd-hcl-sub003/internal/mathutil"
	"github.com/intel/rohd-hcl-sub003/logicvec"
)

// Value is one fixed-point number. The zero Value is not usable;
// construct Values with New, Zero, FromBigInt, FromFloat64 or
// FromFloatingPoint.
type Value struct {
	signed        bool
	integerWidth  int
	fractionWidth int
	raw           logicvec.Vector
}

// WidthError reports a raw vector or target width that cannot hold
// the requested value.
type WidthError struct {
	Op   string
	Want int
	Got  int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("fixedval: %s: want %d bits, got %d", e.Op, e.Want, e.Got)
}

// ConversionError reports a value with no exact representation in the
// requested format.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return "fixedval: cannot convert: " + e.Reason
}

// RangeError reports a constrained random request whose interval
// contains no representable value.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return "fixedval: infeasible range: " + e.Reason
}

// New wraps a raw vector as a Q(m.n) value. The vector width must be
// exactly m+n.
func New(signed bool, integerWidth, fractionWidth int, raw logicvec.Vector) (Value, error) {
	if integerWidth < 0 || fractionWidth < 0 || integerWidth+fractionWidth == 0 {
		return Value{}, &WidthError{Op: "format", Want: 1, Got: integerWidth + fractionWidth}
	}
	if raw.Width() != integerWidth+fractionWidth {
		return Value{}, &WidthError{Op: "raw vector", Want: integerWidth + fractionWidth, Got: raw.Width()}
	}
	return Value{signed: signed, integerWidth: integerWidth, fractionWidth: fractionWidth, raw: raw}, nil
}

// Zero returns the all-zero Q(m.n) value.
func Zero(signed bool, integerWidth, fractionWidth int) Value {
	v, err := New(signed, integerWidth, fractionWidth, logicvec.New(integerWidth+fractionWidth))
	if err != nil {
		panic(err)
	}
	return v
}

// FromBigInt encodes scaled*2^-fractionWidth. scaled must fit the
// format.
func FromBigInt(signed bool, integerWidth, fractionWidth int, scaled *big.Int) (Value, error) {
	if !fits(scaled, signed, integerWidth+fractionWidth) {
		return Value{}, &ConversionError{Reason: fmt.Sprintf("%v does not fit Q(%d.%d)", scaled, integerWidth, fractionWidth)}
	}
	return New(signed, integerWidth, fractionWidth, logicvec.FromBigInt(integerWidth+fractionWidth, scaled))
}

// fits reports whether x is encodable in 'width' bits with the given
// signedness.
func fits(x *big.Int, signed bool, width int) bool {
	if !signed {
		return x.Sign() >= 0 && x.BitLen() <= width
	}
	// [-2^(w-1), 2^(w-1)-1]
	lim := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if x.Sign() >= 0 {
		return x.Cmp(lim) < 0
	}
	return new(big.Int).Neg(x).Cmp(lim) <= 0
}

// CanStore reports whether x is exactly representable as a Q(m.n)
// value with the given signedness.
func CanStore(x float64, signed bool, integerWidth, fractionWidth int) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	if x < 0 && !signed {
		return false
	}
	scaled := math.Ldexp(x, fractionWidth)
	if scaled != math.Trunc(scaled) {
		return false
	}
	i, ok := bigFromExactFloat(scaled)
	if !ok {
		return false
	}
	return fits(i, signed, integerWidth+fractionWidth)
}

// bigFromExactFloat converts an integral float64 to a big.Int.
func bigFromExactFloat(x float64) (*big.Int, bool) {
	bf := big.NewFloat(x)
	i, acc := bf.Int(nil)
	return i, acc == big.Exact
}

// FromFloat64 encodes x exactly, or fails with a ConversionError when
// x has no exact Q(m.n) representation. Use CanStore to probe first.
func FromFloat64(x float64, signed bool, integerWidth, fractionWidth int) (Value, error) {
	if !CanStore(x, signed, integerWidth, fractionWidth) {
		return Value{}, &ConversionError{Reason: fmt.Sprintf("%g does not fit Q(%d.%d) signed=%v", x, integerWidth, fractionWidth, signed)}
	}
	i, _ := bigFromExactFloat(math.Ldexp(x, fractionWidth))
	return FromBigInt(signed, integerWidth, fractionWidth, i)
}

// Signed reports whether the raw bits are two's complement.
func (v Value) Signed() bool { return v.signed }

// IntegerWidth returns m of Q(m.n).
func (v Value) IntegerWidth() int { return v.integerWidth }

// FractionWidth returns n of Q(m.n).
func (v Value) FractionWidth() int { return v.fractionWidth }

// Vector returns the raw bit pattern.
func (v Value) Vector() logicvec.Vector { return v.raw }

// Binary returns the raw MSB-first bit string.
func (v Value) Binary() string { return v.raw.Binary() }

// BigInt returns the raw integer (value * 2^fractionWidth), sign
// interpreted per the format.
func (v Value) BigInt() *big.Int {
	if v.signed {
		return v.raw.Signed()
	}
	return v.raw.BigInt()
}

// Rat returns the exact represented value rawInt / 2^n.
func (v Value) Rat() *big.Rat {
	den := new(big.Int).Lsh(big.NewInt(1), uint(v.fractionWidth))
	return new(big.Rat).SetFrac(v.BigInt(), den)
}

// Float64 returns the represented value rounded to the nearest
// float64.
func (v Value) Float64() float64 {
	bf := new(big.Float).SetInt(v.BigInt())
	bf.SetMantExp(bf, -v.fractionWidth)
	f, _ := bf.Float64()
	return f
}

// String returns the exact decimal form of the value. rawInt / 2^n is
// always exact in at most n decimal fraction digits since
// 1/2^n = 5^n/10^n.
func (v Value) String() string {
	i := v.BigInt()
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(v.fractionWidth)), nil)
	return decimal.NewFromBigInt(new(big.Int).Mul(i, five), -int32(v.fractionWidth)).String()
}

// Eq reports whether v and other represent the same value, regardless
// of widths or signedness.
func (v Value) Eq(other Value) bool { return v.Cmp(other) == 0 }

// Cmp compares the represented values and returns -1, 0 or +1.
func (v Value) Cmp(other Value) int {
	// align to a common fraction width and compare integers
	n := mathutil.Max(v.fractionWidth, other.fractionWidth)
	a := new(big.Int).Lsh(v.BigInt(), uint(n-v.fractionWidth))
	b := new(big.Int).Lsh(other.BigInt(), uint(n-other.fractionWidth))
	return a.Cmp(b)
}

// ExpandWidth re-encodes v in a wider (or equal) format without
// changing the represented value. It fails when the target cannot
// hold the value.
func (v Value) ExpandWidth(signed bool, integerWidth, fractionWidth int) (Value, error) {
	if fractionWidth < v.fractionWidth {
		return Value{}, &WidthError{Op: "expand fraction", Want: v.fractionWidth, Got: fractionWidth}
	}
	scaled := new(big.Int).Lsh(v.BigInt(), uint(fractionWidth-v.fractionWidth))
	if !fits(scaled, signed, integerWidth+fractionWidth) {
		return Value{}, &WidthError{Op: "expand integer", Want: v.integerWidth, Got: integerWidth}
	}
	return FromBigInt(signed, integerWidth, fractionWidth, scaled)
}
