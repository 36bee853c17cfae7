package floatval

import (
	"math"
	"math/rand"
)

// Representable finite values map to a monotone ordinal index:
// 0 for zero, positive for positive values, negative for negative
// values, one step per representable magnitude. Uniform sampling and
// neighbor stepping both work in ordinal space. Flush-to-zero formats
// use the ordinals of their non-flushed twin so the ladder stays
// strictly monotone over bit patterns.

// ladder is the format whose ordinal space is used for v's pattern.
func (f Format) ladder() Format {
	f.SubnormalAsZero = false
	return f
}

// maxOrdinal is the ordinal of the largest finite value.
func (f Format) maxOrdinal() int64 {
	v := f.largestFinite(false)
	return f.ordinalOfCanonical(v)
}

// maxSubnormalOrdinal is the ordinal of the largest subnormal.
func (f Format) maxSubnormalOrdinal() int64 {
	return 1<<uint(f.fracWidth()) - 1
}

// minNormalOrdinal is the ordinal of the smallest positive normal.
func (f Format) minNormalOrdinal() int64 {
	return 1 << uint(f.fracWidth())
}

// ordinalOfCanonical computes the ordinal from canonically encoded
// fields.
func (f Format) ordinalOfCanonical(v Value) int64 {
	frac := v.mantissa &^ f.jBitMask()
	mag := int64(v.exponent)<<uint(f.fracWidth()) | int64(frac)
	if v.sign != 0 {
		return -mag
	}
	return mag
}

// fromOrdinal builds the canonical Value at the given ordinal.
func (f Format) fromOrdinal(ord int64) Value {
	var sign uint64
	mag := uint64(ord)
	if ord < 0 {
		sign = 1
		mag = uint64(-ord)
	}
	fw := uint(f.fracWidth())
	exp := mag >> fw
	mant := mag & (1<<fw - 1)
	if exp > 0 {
		mant |= f.jBitMask()
	}
	return Value{format: f, sign: sign, exponent: exp, mantissa: mant}
}

// canonicalize renormalizes redundant explicit-J encodings; implicit
// and already-canonical values pass through unchanged.
func (v Value) canonicalize() Value {
	f := v.format
	if !f.ExplicitJBit || v.IsNaN() || v.IsInf(0) {
		return v
	}
	j := v.mantissa&f.jBitMask() != 0
	if (v.exponent > 0) == j {
		return v
	}
	sig, lsb, _ := v.decompose()
	if sig == 0 {
		return f.zero(v.sign != 0)
	}
	// exact: canonicalizing only drops redundant leading zeros
	return f.roundPack64(v.sign != 0, sig, lsb, RoundNearestEven)
}

// ordinal returns v's index on its format's ordinal ladder. v must be
// finite.
func (v Value) ordinal() int64 {
	g := v.format.ladder()
	c := v.canonicalize()
	c.format = g
	return g.ordinalOfCanonical(c)
}

// Next returns the smallest representable value greater than v.
// It fails on NaN, on +Inf, and on the largest finite value of a
// format without an infinity encoding.
func (v Value) Next() (Value, error) {
	f := v.format
	if v.IsNaN() {
		return Value{}, &ConversionError{Reason: "NaN has no successor"}
	}
	if v.IsInf(1) {
		return Value{}, &ConversionError{Reason: "+infinity has no successor"}
	}
	g := f.ladder()
	if v.IsInf(-1) {
		return retag(g.fromOrdinal(-g.maxOrdinal()), f), nil
	}
	o := v.ordinal()
	if o == g.maxOrdinal() {
		if f.NoInfinity {
			return Value{}, &ConversionError{Reason: "largest finite value has no successor"}
		}
		return f.infinity(false), nil
	}
	return retag(g.fromOrdinal(o+1), f), nil
}

// Prev returns the largest representable value smaller than v, with
// the mirrored failure cases of Next.
func (v Value) Prev() (Value, error) {
	n, err := v.Negate().Next()
	if err != nil {
		return Value{}, err
	}
	return n.Negate(), nil
}

func retag(v Value, f Format) Value {
	v.format = f
	return v
}

type randomSpec struct {
	gt, gte, lt, lte             Value
	gtSet, gteSet, ltSet, lteSet bool
	normalOnly, subnormalOnly    bool
}

// RandomOption constrains Populator.Random.
type RandomOption func(*randomSpec)

// Gt keeps generated values strictly greater than v.
func Gt(v Value) RandomOption { return func(s *randomSpec) { s.gt, s.gtSet = v, true } }

// Gte keeps generated values greater than or equal to v.
func Gte(v Value) RandomOption { return func(s *randomSpec) { s.gte, s.gteSet = v, true } }

// Lt keeps generated values strictly less than v.
func Lt(v Value) RandomOption { return func(s *randomSpec) { s.lt, s.ltSet = v, true } }

// Lte keeps generated values less than or equal to v.
func Lte(v Value) RandomOption { return func(s *randomSpec) { s.lte, s.lteSet = v, true } }

// NormalOnly restricts generation to normal (non-zero, non-subnormal)
// magnitudes.
func NormalOnly() RandomOption { return func(s *randomSpec) { s.normalOnly = true } }

// SubnormalOnly restricts generation to subnormal magnitudes.
func SubnormalOnly() RandomOption { return func(s *randomSpec) { s.subnormalOnly = true } }

// Random samples a finite representable value uniformly from the
// bound interval, optionally restricted to only-normal or
// only-subnormal magnitudes. It returns a RangeError when the interval
// contains no representable value matching the category; when exactly
// one value qualifies, that value is returned deterministically.
func (p *Populator) Random(rng *rand.Rand, opts ...RandomOption) (Value, error) {
	var spec randomSpec
	for _, o := range opts {
		o(&spec)
	}
	g := p.format.ladder()
	maxOrd := g.maxOrdinal()
	lo, hi := -maxOrd, maxOrd

	clampLo := func(v Value, strict bool) error {
		o, err := g.lowerBoundOrdinal(v, strict)
		if err != nil {
			return err
		}
		if o > lo {
			lo = o
		}
		return nil
	}
	clampHi := func(v Value, strict bool) error {
		o, err := g.upperBoundOrdinal(v, strict)
		if err != nil {
			return err
		}
		if o < hi {
			hi = o
		}
		return nil
	}
	if spec.gtSet {
		if err := clampLo(spec.gt, true); err != nil {
			return Value{}, err
		}
	}
	if spec.gteSet {
		if err := clampLo(spec.gte, false); err != nil {
			return Value{}, err
		}
	}
	if spec.ltSet {
		if err := clampHi(spec.lt, true); err != nil {
			return Value{}, err
		}
	}
	if spec.lteSet {
		if err := clampHi(spec.lte, false); err != nil {
			return Value{}, err
		}
	}

	var ivs [][2]int64
	switch {
	case spec.normalOnly && spec.subnormalOnly:
		return Value{}, &RangeError{Reason: "normal-only and subnormal-only are mutually exclusive"}
	case spec.normalOnly:
		minN := g.minNormalOrdinal()
		ivs = intersect(lo, hi, [][2]int64{{-maxOrd, -minN}, {minN, maxOrd}})
	case spec.subnormalOnly:
		maxS := g.maxSubnormalOrdinal()
		ivs = intersect(lo, hi, [][2]int64{{-maxS, -1}, {1, maxS}})
	default:
		ivs = intersect(lo, hi, [][2]int64{{-maxOrd, maxOrd}})
	}

	var total uint64
	for _, iv := range ivs {
		total += width(iv)
	}
	if total == 0 {
		return Value{}, &RangeError{Reason: "no representable value satisfies the constraints"}
	}
	k := randUint64n(rng, total)
	for _, iv := range ivs {
		w := width(iv)
		if k < w {
			ord := int64(uint64(iv[0]) + k)
			return retag(g.fromOrdinal(ord), p.format), nil
		}
		k -= w
	}
	panic("floatval: unreachable")
}

func intersect(lo, hi int64, in [][2]int64) [][2]int64 {
	var out [][2]int64
	for _, iv := range in {
		a, b := iv[0], iv[1]
		if a < lo {
			a = lo
		}
		if b > hi {
			b = hi
		}
		if a <= b {
			out = append(out, [2]int64{a, b})
		}
	}
	return out
}

// width counts the ordinals in an inclusive interval; the uint64
// arithmetic is exact even when the int64 difference would overflow.
func width(iv [2]int64) uint64 {
	return uint64(iv[1]) - uint64(iv[0]) + 1
}

// randUint64n returns a uniform value in [0, n) without modulo bias.
func randUint64n(rng *rand.Rand, n uint64) uint64 {
	if n&(n-1) == 0 {
		return rng.Uint64() & (n - 1)
	}
	limit := ^uint64(0) - ^uint64(0)%n
	for {
		v := rng.Uint64()
		if v < limit {
			return v % n
		}
	}
}

// lowerBoundOrdinal finds the smallest ordinal whose value satisfies
// > bound (strict) or >= bound. A result above maxOrdinal means the
// constraint is unsatisfiable.
func (g Format) lowerBoundOrdinal(bound Value, strict bool) (int64, error) {
	b := bound.Float64()
	if math.IsNaN(b) {
		return 0, &RangeError{Reason: "NaN bound"}
	}
	maxOrd := g.maxOrdinal()
	if math.IsInf(b, 1) {
		return maxOrd + 1, nil
	}
	if math.IsInf(b, -1) {
		return -maxOrd, nil
	}
	largest := g.fromOrdinal(maxOrd).Float64()
	if b > largest {
		return maxOrd + 1, nil
	}
	if b < -largest {
		return -maxOrd, nil
	}
	sat := func(o int64) bool {
		v := g.fromOrdinal(o).Float64()
		if strict {
			return v > b
		}
		return v >= b
	}
	o := g.nearestOrdinal(b)
	for o <= maxOrd && !sat(o) {
		o++
	}
	for o-1 >= -maxOrd && o-1 <= maxOrd && sat(o-1) {
		o--
	}
	return o, nil
}

// upperBoundOrdinal mirrors lowerBoundOrdinal for < / <= constraints;
// a result below -maxOrdinal means unsatisfiable.
func (g Format) upperBoundOrdinal(bound Value, strict bool) (int64, error) {
	o, err := g.lowerBoundOrdinal(bound.Negate(), strict)
	if err != nil {
		return 0, err
	}
	return -o, nil
}

// nearestOrdinal returns the ordinal of x truncated into g; x must be
// finite and within the finite range of g.
func (g Format) nearestOrdinal(x float64) int64 {
	p := Populator{format: g}
	t := p.FromFloat64(x, RoundTruncate)
	return g.ordinalOfCanonical(t)
}
