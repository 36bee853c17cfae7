// Package floatval implements bit-exact floating-point value semantics
// for arbitrary exponent and mantissa widths.
//
// A Format fixes the encoding parameters (exponent width, mantissa
// width, explicit vs. implicit leading significand bit, flush-to-zero
// policy) and a Value is one immutable bit pattern interpreted under a
// Format. Values round-trip exactly against float64 for every
// supported format, and arithmetic follows IEEE 754 special-value and
// round-to-nearest-even rules.
package floatval

// Format describes a floating-point encoding.
//
// MantissaWidth counts the stored mantissa field bits. For implicit-J
// formats the leading significand bit is implied, so the significand
// precision is MantissaWidth+1; explicit-J formats store the leading
// bit as the top bit of the mantissa field.
type Format struct {
	ExponentWidth int
	MantissaWidth int

	// ExplicitJBit stores the leading significand bit in the mantissa
	// field instead of implying it.
	ExplicitJBit bool

	// SubnormalAsZero decodes subnormal patterns as signed zero. The
	// bit patterns themselves are preserved; only the decoded value
	// and the zero classification change.
	SubnormalAsZero bool

	// NoInfinity marks formats without an infinity encoding (fp8
	// E4M3). The all-ones exponent is finite except for the all-ones
	// mantissa, which is the only NaN.
	NoInfinity bool
}

// Standard format presets.
var (
	Float16    = Format{ExponentWidth: 5, MantissaWidth: 10}
	Float32    = Format{ExponentWidth: 8, MantissaWidth: 23}
	Float64    = Format{ExponentWidth: 11, MantissaWidth: 52}
	BFloat16   = Format{ExponentWidth: 8, MantissaWidth: 7}
	TFloat32   = Format{ExponentWidth: 8, MantissaWidth: 10}
	Float8E4M3 = Format{ExponentWidth: 4, MantissaWidth: 3, NoInfinity: true}
	Float8E5M2 = Format{ExponentWidth: 5, MantissaWidth: 2}
)

// Validate checks the format parameters. Exponent widths above 11 or
// significand precision above 53 would break exact float64 decoding,
// so they are rejected.
func (f Format) Validate() error {
	if f.ExponentWidth < 2 || f.ExponentWidth > 11 {
		return &WidthError{Op: "exponent width", Want: 11, Got: f.ExponentWidth}
	}
	min, max := 1, 52
	if f.ExplicitJBit {
		min, max = 2, 53
	}
	if f.MantissaWidth < min || f.MantissaWidth > max {
		return &WidthError{Op: "mantissa width", Want: max, Got: f.MantissaWidth}
	}
	return nil
}

// WithExplicitJBit returns a copy of f that stores the leading
// significand bit explicitly, at the same precision.
func (f Format) WithExplicitJBit() Format {
	if !f.ExplicitJBit {
		f.ExplicitJBit = true
		f.MantissaWidth++
	}
	return f
}

// WithSubnormalAsZero returns a copy of f with flush-to-zero decoding.
func (f Format) WithSubnormalAsZero() Format {
	f.SubnormalAsZero = true
	return f
}

// Bias returns the exponent bias, 2^(ExponentWidth-1) - 1.
func (f Format) Bias() int {
	return 1<<(f.ExponentWidth-1) - 1
}

// TotalWidth returns the encoded width: 1 sign bit plus exponent plus
// mantissa.
func (f Format) TotalWidth() int {
	return 1 + f.ExponentWidth + f.MantissaWidth
}

// SupportsInfinity reports whether the format has an infinity
// encoding.
func (f Format) SupportsInfinity() bool { return !f.NoInfinity }

// maxBiasedExponent is the all-ones exponent field value.
func (f Format) maxBiasedExponent() uint64 {
	return 1<<uint(f.ExponentWidth) - 1
}

// maxMantissa is the all-ones mantissa field value.
func (f Format) maxMantissa() uint64 {
	return 1<<uint(f.MantissaWidth) - 1
}

// fracWidth is the number of significand bits below the J bit.
func (f Format) fracWidth() int {
	if f.ExplicitJBit {
		return f.MantissaWidth - 1
	}
	return f.MantissaWidth
}

// precision is the full significand width including the J bit.
func (f Format) precision() int {
	return f.fracWidth() + 1
}

// jBitMask is the in-field mask of the explicit J bit, 0 for implicit
// formats.
func (f Format) jBitMask() uint64 {
	if !f.ExplicitJBit {
		return 0
	}
	return 1 << uint(f.MantissaWidth-1)
}

// minNormalExp is the unbiased exponent of the smallest normal value.
func (f Format) minNormalExp() int {
	return 1 - f.Bias()
}

// maxNormalExp is the unbiased exponent of the largest finite value.
func (f Format) maxNormalExp() int {
	if f.NoInfinity {
		return int(f.maxBiasedExponent()) - f.Bias()
	}
	return int(f.maxBiasedExponent()) - 1 - f.Bias()
}

// isNaNPattern classifies an (exponent, mantissa) field pair as NaN.
func (f Format) isNaNPattern(exp, mant uint64) bool {
	if exp != f.maxBiasedExponent() {
		return false
	}
	if f.NoInfinity {
		return mant == f.maxMantissa()
	}
	if f.ExplicitJBit {
		// exp all-ones with anything but "J set, fraction clear" is a
		// NaN, including the pseudo patterns with J clear.
		return mant != f.jBitMask()
	}
	return mant != 0
}

// isInfPattern classifies an (exponent, mantissa) field pair as
// infinity.
func (f Format) isInfPattern(exp, mant uint64) bool {
	if f.NoInfinity || exp != f.maxBiasedExponent() {
		return false
	}
	if f.ExplicitJBit {
		return mant == f.jBitMask()
	}
	return mant == 0
}
