package floatval

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/intel/rohd-hcl-sub003/logicvec"
)

// Value is one immutable floating-point bit pattern interpreted under
// a Format. Construct Values through a Populator; arithmetic and
// conversion always produce new Values.
type Value struct {
	format   Format
	sign     uint64 // 0 or 1
	exponent uint64 // biased
	mantissa uint64
}

// Format returns the value's format parameters.
func (v Value) Format() Format { return v.format }

// Signbit reports whether the sign bit is set.
func (v Value) Signbit() bool { return v.sign != 0 }

// Components returns the raw sign, biased exponent and mantissa
// fields.
func (v Value) Components() (sign, exponent, mantissa uint64) {
	return v.sign, v.exponent, v.mantissa
}

// IsNaN reports whether v is a NaN under its format's rules.
func (v Value) IsNaN() bool {
	return v.format.isNaNPattern(v.exponent, v.mantissa)
}

// IsInf reports whether v is an infinity with the given sign:
// sign > 0 matches +Inf, sign < 0 matches -Inf, sign == 0 matches
// either.
func (v Value) IsInf(sign int) bool {
	if !v.format.isInfPattern(v.exponent, v.mantissa) {
		return false
	}
	return sign == 0 || (sign > 0) == (v.sign == 0)
}

// IsZero reports whether v decodes to zero. Under SubnormalAsZero
// this includes all subnormal patterns.
func (v Value) IsZero() bool {
	if v.exponent != 0 {
		return false
	}
	if v.format.SubnormalAsZero {
		return true
	}
	return v.significandField() == 0
}

// IsSubnormal reports whether v decodes as a nonzero subnormal.
func (v Value) IsSubnormal() bool {
	return v.exponent == 0 && v.significandField() != 0 && !v.format.SubnormalAsZero
}

// significandField strips nothing for implicit formats; for explicit
// formats it is still the stored field, J bit included.
func (v Value) significandField() uint64 { return v.mantissa }

// decompose splits a finite v into magnitude = sig * 2^lsb with
// sig < 2^53. ok is false for NaN and infinity. Zero (including
// flushed subnormals) decomposes to sig == 0.
func (v Value) decompose() (sig uint64, lsb int, ok bool) {
	f := v.format
	if v.IsNaN() || v.IsInf(0) {
		return 0, 0, false
	}
	if v.IsZero() {
		return 0, 0, true
	}
	fw := f.fracWidth()
	if f.ExplicitJBit {
		// the J bit is stored; subnormal and unnormal patterns just
		// have it clear.
		exp := int(v.exponent)
		if exp == 0 {
			exp = 1
		}
		return v.mantissa, exp - f.Bias() - fw, true
	}
	if v.exponent == 0 {
		return v.mantissa, f.minNormalExp() - fw, true
	}
	return v.mantissa | 1<<uint(fw), int(v.exponent) - f.Bias() - fw, true
}

// Float64 returns the exact float64 value of v. NaN patterns decode
// to NaN, infinities to signed infinity, and flushed subnormals to
// signed zero.
func (v Value) Float64() float64 {
	if v.IsNaN() {
		return math.NaN()
	}
	if v.IsInf(1) {
		return math.Inf(1)
	}
	if v.IsInf(-1) {
		return math.Inf(-1)
	}
	sig, lsb, _ := v.decompose()
	r := math.Ldexp(float64(sig), lsb)
	if v.sign != 0 {
		r = -r // -0 for sig == 0
	}
	return r
}

// Vector returns the encoded bit pattern, sign at the MSB.
func (v Value) Vector() logicvec.Vector {
	f := v.format
	return logicvec.Concat(
		logicvec.FromUint64(1, v.sign),
		logicvec.FromUint64(f.ExponentWidth, v.exponent),
		logicvec.FromUint64(f.MantissaWidth, v.mantissa),
	)
}

// Bits returns the encoded pattern as a uint64. It panics for formats
// wider than 64 bits; use Vector for those.
func (v Value) Bits() uint64 {
	f := v.format
	if f.TotalWidth() > 64 {
		panic("floatval: format wider than 64 bits, use Vector")
	}
	return v.sign<<uint(f.ExponentWidth+f.MantissaWidth) |
		v.exponent<<uint(f.MantissaWidth) |
		v.mantissa
}

// String returns the spaced binary form "s eee…e mmm…m" used in test
// fixtures and diagnostics.
func (v Value) String() string {
	f := v.format
	return fmt.Sprintf("%d %0*b %0*b", v.sign, f.ExponentWidth, v.exponent, f.MantissaWidth, v.mantissa)
}

// Eq reports whether v and other decode to the same value. NaN is
// never equal to anything, including itself; zeros compare equal
// regardless of sign; values of different widths or J-bit conventions
// are equal iff their decoded values are.
func (v Value) Eq(other Value) bool {
	if v.IsNaN() || other.IsNaN() {
		return false
	}
	return v.Float64() == other.Float64()
}

// Lt reports v < other on decoded values; false if either is NaN.
func (v Value) Lt(other Value) bool {
	if v.IsNaN() || other.IsNaN() {
		return false
	}
	return v.Float64() < other.Float64()
}

// Le reports v <= other on decoded values; false if either is NaN.
func (v Value) Le(other Value) bool {
	if v.IsNaN() || other.IsNaN() {
		return false
	}
	return v.Float64() <= other.Float64()
}

// Gt reports v > other on decoded values; false if either is NaN.
func (v Value) Gt(other Value) bool { return other.Lt(v) }

// Ge reports v >= other on decoded values; false if either is NaN.
func (v Value) Ge(other Value) bool { return other.Le(v) }

// Compare orders v and other on decoded values and returns -1, 0 or
// +1. ok is false when either operand is NaN: the order is partial and
// NaN operands are unordered.
func (v Value) Compare(other Value) (r int, ok bool) {
	if v.IsNaN() || other.IsNaN() {
		return 0, false
	}
	a, b := v.Float64(), other.Float64()
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	}
	return 0, true
}

// Negate returns v with the sign bit flipped. NaN payloads and
// infinity magnitudes are unaffected.
func (v Value) Negate() Value {
	v.sign ^= 1
	return v
}

// Abs returns v with the sign bit cleared.
func (v Value) Abs() Value {
	v.sign = 0
	return v
}

// ULP returns the value of one unit in the last place at v's
// magnitude: the smallest representable step there. NaN and infinity
// propagate unchanged.
func (v Value) ULP() Value {
	f := v.format
	if v.IsNaN() || v.IsInf(0) {
		return v.Abs()
	}
	fw := f.fracWidth()
	exp := int(v.exponent)
	if exp == 0 {
		exp = 1
	}
	lsb := exp - f.Bias() - fw
	return f.pow2(lsb)
}

// pow2 encodes 2^e, which is always representable for
// e >= minNormalExp-fracWidth (the smallest subnormal).
func (f Format) pow2(e int) Value {
	if e >= f.minNormalExp() {
		return Value{format: f, exponent: uint64(e + f.Bias()), mantissa: f.jBitMask()}
	}
	bit := e - (f.minNormalExp() - f.fracWidth())
	if bit < 0 {
		bit = 0
	}
	return Value{format: f, mantissa: 1 << uint(bit)}
}

// WithinRounding reports whether other lies within one rounding step
// (one ULP at either operand's magnitude) of v. Two NaNs are within
// rounding of each other; a NaN and a number are not. An infinity is
// within rounding only of an equal infinity.
func (v Value) WithinRounding(other Value) bool {
	if v.IsNaN() || other.IsNaN() {
		return v.IsNaN() && other.IsNaN()
	}
	if v.IsInf(0) || other.IsInf(0) {
		return v.Eq(other)
	}
	if v.Eq(other) {
		return true
	}
	tol := math.Max(v.ULP().Float64(), other.ULP().Float64())
	return math.Abs(v.Float64()-other.Float64()) <= tol
}

// IsLegalValue reports whether the stored fields fit the format's
// widths. Populator-built values are always legal.
func (v Value) IsLegalValue() bool {
	return v.sign <= 1 &&
		v.exponent <= v.format.maxBiasedExponent() &&
		v.mantissa <= v.format.maxMantissa()
}

// exponentOfSig returns the unbiased exponent of a magnitude
// sig * 2^lsb, i.e. floor(log2). sig must be nonzero.
func exponentOfSig(sig uint64, lsb int) int {
	return bits.Len64(sig) - 1 + lsb
}
