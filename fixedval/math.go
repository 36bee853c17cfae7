package fixedval

import (
	"math"
	"math/big"
	"math/bits"
	"math/rand"

	"github.com/intel/rohd-hcl-sub003/floatval"
	"github.com/intel/rohd-hcl-sub003/internal/mathutil"
)

// Arithmetic grows the result format so no operation can overflow:
// the operands are aligned to the result's fraction width and combined
// exactly in two's complement.

// Add returns v+other as Q(max(m1,m2)+1 . max(n1,n2)), signed if
// either operand is.
func (v Value) Add(other Value) Value {
	return v.addSub(other, false)
}

// Sub returns v-other in the same grown format as Add.
func (v Value) Sub(other Value) Value {
	return v.addSub(other, true)
}

func (v Value) addSub(other Value, negate bool) Value {
	signed := v.signed || other.signed || negate
	// an unsigned operand mixed with a signed one needs one more
	// integer bit to cover its full magnitude; a difference of two
	// unsigned operands already fits max(m1,m2)+1 signed bits
	mv, mo := v.integerWidth, other.integerWidth
	if !v.signed && other.signed {
		mv++
	}
	if !other.signed && v.signed {
		mo++
	}
	n := mathutil.Max(v.fractionWidth, other.fractionWidth)
	m := mathutil.Max(mv, mo) + 1
	a := new(big.Int).Lsh(v.BigInt(), uint(n-v.fractionWidth))
	b := new(big.Int).Lsh(other.BigInt(), uint(n-other.fractionWidth))
	if negate {
		a.Sub(a, b)
	} else {
		a.Add(a, b)
	}
	r, err := FromBigInt(signed, m, n, a)
	if err != nil {
		panic(err)
	}
	return r
}

// Mul returns v*other as Q(m1+m2 . n1+n2), one integer bit wider when
// either operand is signed.
func (v Value) Mul(other Value) Value {
	signed := v.signed || other.signed
	m := v.integerWidth + other.integerWidth
	if signed {
		m++
	}
	n := v.fractionWidth + other.fractionWidth
	prod := new(big.Int).Mul(v.BigInt(), other.BigInt())
	r, err := FromBigInt(signed, m, n, prod)
	if err != nil {
		panic(err)
	}
	return r
}

// Div returns the truncating (round-toward-zero) quotient with
// fraction width n1+m2, one bit wider when either operand is signed.
// Division by a zero magnitude yields the zero value of the result
// format.
func (v Value) Div(other Value) Value {
	signed := v.signed || other.signed
	q := v.fractionWidth + other.integerWidth
	if signed {
		q++
	}
	m := v.integerWidth + other.fractionWidth
	if signed {
		m++
	}
	den := other.BigInt()
	if den.Sign() == 0 {
		return Zero(signed, m, q)
	}
	// result*2^q = (a/2^n1) / (b/2^n2) * 2^q = a*2^(q+n2-n1) / b
	num := new(big.Int).Lsh(v.BigInt(), uint(q+other.fractionWidth-v.fractionWidth))
	quo := new(big.Int).Quo(num, den)
	r, err := FromBigInt(signed, m, q, quo)
	if err != nil {
		panic(err)
	}
	return r
}

// FromFloatingPoint converts a finite floating-point value exactly:
// the significand shifted by the unbiased exponent becomes the raw
// fixed-point integer, with the widths derived from the exponent's
// sign and magnitude. NaN and infinity have no fixed-point
// representation and fail with a ConversionError.
func FromFloatingPoint(v floatval.Value) (Value, error) {
	if v.IsNaN() {
		return Value{}, &ConversionError{Reason: "NaN has no fixed-point representation"}
	}
	if v.IsInf(0) {
		return Value{}, &ConversionError{Reason: "infinity has no fixed-point representation"}
	}
	signed := v.Signbit()
	sig, lsb := exactSigLsb(v.Float64())
	if sig == 0 {
		return Zero(signed, 1, 0), nil
	}
	// drop trailing zeros so the derived widths are minimal
	tz := bits.TrailingZeros64(sig)
	sig >>= uint(tz)
	lsb += tz

	var m, n int
	if lsb >= 0 {
		n = 0
		m = bits.Len64(sig) + lsb
	} else {
		n = -lsb
		m = mathutil.Max(bits.Len64(sig)+lsb, 0)
	}
	if signed {
		m++ // room for the sign bit
	}
	scaled := new(big.Int).SetUint64(sig)
	scaled.Lsh(scaled, uint(lsb+n))
	if signed {
		scaled.Neg(scaled)
	}
	return FromBigInt(signed, m, n, scaled)
}

// exactSigLsb decomposes a finite float64 into sig * 2^lsb with
// sig < 2^53; sig is 0 for zero.
func exactSigLsb(x float64) (sig uint64, lsb int) {
	b := math.Float64bits(x)
	exp := int(b>>52) & 0x7ff
	frac := b & (1<<52 - 1)
	if exp == 0 {
		return frac, -1074
	}
	return frac | 1<<52, exp - 1023 - 52
}

// Random samples a uniformly distributed Q(m.n) value, optionally
// constrained to an interval. It returns a RangeError when the bounds
// admit no representable value; a single feasible value is returned
// deterministically.
func Random(rng *rand.Rand, signed bool, integerWidth, fractionWidth int, opts ...RandomOption) (Value, error) {
	var spec randomSpec
	for _, o := range opts {
		o(&spec)
	}
	w := integerWidth + fractionWidth
	lo := new(big.Int)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(w))
	hi.Sub(hi, big.NewInt(1))
	if signed {
		lo.Lsh(big.NewInt(1), uint(w-1))
		lo.Neg(lo)
		hi.Rsh(hi, 1)
	}
	for _, b := range spec.bounds {
		// express the bound at this format's fraction width; round
		// toward the feasible side so non-representable bounds still
		// constrain correctly
		scaled := new(big.Rat).Mul(b.v.Rat(), new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(fractionWidth))))
		i := ratToIntToward(scaled, b.upper, b.strict)
		if b.upper {
			if i.Cmp(hi) < 0 {
				hi.Set(i)
			}
		} else if i.Cmp(lo) > 0 {
			lo.Set(i)
		}
	}
	if lo.Cmp(hi) > 0 {
		return Value{}, &RangeError{Reason: "no representable value within bounds"}
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	pick := new(big.Int).Rand(rng, span)
	pick.Add(pick, lo)
	return FromBigInt(signed, integerWidth, fractionWidth, pick)
}

// ratToIntToward converts a rational bound to the nearest feasible
// scaled integer: the greatest integer <= r (or < r when strict) for
// upper bounds, the least integer >= r (or > r) for lower bounds.
func ratToIntToward(r *big.Rat, upper, strict bool) *big.Int {
	num, den := r.Num(), r.Denom()
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	exact := rem.Sign() == 0
	// big.Int Quo truncates toward zero; fix up to floor/ceil
	if !exact {
		if upper {
			if num.Sign() < 0 {
				q.Sub(q, big.NewInt(1)) // floor
			}
		} else {
			if num.Sign() > 0 {
				q.Add(q, big.NewInt(1)) // ceil
			}
		}
		return q
	}
	if strict {
		if upper {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

type bound struct {
	v      Value
	upper  bool
	strict bool
}

type randomSpec struct {
	bounds []bound
}

// RandomOption constrains Random.
type RandomOption func(*randomSpec)

// Gt keeps generated values strictly greater than v.
func Gt(v Value) RandomOption {
	return func(s *randomSpec) { s.bounds = append(s.bounds, bound{v: v, upper: false, strict: true}) }
}

// Gte keeps generated values greater than or equal to v.
func Gte(v Value) RandomOption {
	return func(s *randomSpec) { s.bounds = append(s.bounds, bound{v: v, upper: false, strict: false}) }
}

// Lt keeps generated values strictly less than v.
func Lt(v Value) RandomOption {
	return func(s *randomSpec) { s.bounds = append(s.bounds, bound{v: v, upper: true, strict: true}) }
}

// Lte keeps generated values less than or equal to v.
func Lte(v Value) RandomOption {
	return func(s *randomSpec) { s.bounds = append(s.bounds, bound{v: v, upper: true, strict: false}) }
}
