package floatval

// Constant names a canonical value every format can construct (except
// the infinities on formats without an infinity encoding). It is the
// stable catalogue external generators build golden values from.
type Constant int

const (
	NegativeInfinity Constant = iota
	NegativeZero
	PositiveZero
	One
	NaNConstant
	PositiveInfinity
	SmallestPositiveSubnormal
	LargestPositiveSubnormal
	SmallestPositiveNormal
	LargestNormal
	LargestLessThanOne
	SmallestLargerThanOne
)

func (c Constant) String() string {
	switch c {
	case NegativeInfinity:
		return "negativeInfinity"
	case NegativeZero:
		return "negativeZero"
	case PositiveZero:
		return "positiveZero"
	case One:
		return "one"
	case NaNConstant:
		return "nan"
	case PositiveInfinity:
		return "positiveInfinity"
	case SmallestPositiveSubnormal:
		return "smallestPositiveSubnormal"
	case LargestPositiveSubnormal:
		return "largestPositiveSubnormal"
	case SmallestPositiveNormal:
		return "smallestPositiveNormal"
	case LargestNormal:
		return "largestNormal"
	case LargestLessThanOne:
		return "largestLessThanOne"
	case SmallestLargerThanOne:
		return "smallestLargerThanOne"
	}
	return "unknown"
}

func (f Format) zero(negative bool) Value {
	var sign uint64
	if negative {
		sign = 1
	}
	return Value{format: f, sign: sign}
}

// nan returns the canonical quiet NaN: top fraction bit set, J bit set
// on explicit formats, all-ones mantissa on formats without infinity.
func (f Format) nan() Value {
	mant := uint64(1) << uint(f.fracWidth()-1)
	if f.NoInfinity {
		mant = f.maxMantissa()
	}
	return Value{format: f, exponent: f.maxBiasedExponent(), mantissa: mant | f.jBitMask()}
}

// infinity returns the signed infinity pattern. The caller must check
// SupportsInfinity first; roundPack and the special-value tables use
// overflow/infinite instead.
func (f Format) infinity(negative bool) Value {
	v := f.zero(negative)
	v.exponent = f.maxBiasedExponent()
	v.mantissa = f.jBitMask()
	return v
}

// infinite is the arithmetic infinity result: the infinity pattern, or
// the NaN slot on formats without one (the E4M3 saturation rule).
func (f Format) infinite(negative bool) Value {
	if f.NoInfinity {
		return f.nan()
	}
	return f.infinity(negative)
}

func (f Format) largestFinite(negative bool) Value {
	v := f.zero(negative)
	if f.NoInfinity {
		v.exponent = f.maxBiasedExponent()
		v.mantissa = f.maxMantissa() - 1
		return v
	}
	v.exponent = f.maxBiasedExponent() - 1
	v.mantissa = f.maxMantissa()
	return v
}

// constant builds the named canonical value; ok is false for an
// infinity request on a format without infinity.
func (f Format) constant(c Constant) (v Value, ok bool) {
	fw := uint(f.fracWidth())
	j := f.jBitMask()
	switch c {
	case PositiveZero:
		return f.zero(false), true
	case NegativeZero:
		return f.zero(true), true
	case One:
		return Value{format: f, exponent: uint64(f.Bias()), mantissa: j}, true
	case NaNConstant:
		return f.nan(), true
	case PositiveInfinity, NegativeInfinity:
		if f.NoInfinity {
			return Value{}, false
		}
		return f.infinity(c == NegativeInfinity), true
	case SmallestPositiveSubnormal:
		return Value{format: f, mantissa: 1}, true
	case LargestPositiveSubnormal:
		return Value{format: f, mantissa: 1<<fw - 1}, true
	case SmallestPositiveNormal:
		return Value{format: f, exponent: 1, mantissa: j}, true
	case LargestNormal:
		return f.largestFinite(false), true
	case LargestLessThanOne:
		return Value{format: f, exponent: uint64(f.Bias() - 1), mantissa: j | (1<<fw - 1)}, true
	case SmallestLargerThanOne:
		return Value{format: f, exponent: uint64(f.Bias()), mantissa: j | 1}, true
	}
	return Value{}, false
}
