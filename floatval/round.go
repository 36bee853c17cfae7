package floatval

import (
	"math/bits"

	"github.com/shogo82148/int128"
)

// RoundingMode selects how extra significand precision is discarded.
type RoundingMode int

const (
	// RoundNearestEven rounds to the nearest representable value,
	// ties to the even mantissa.
	RoundNearestEven RoundingMode = iota
	// RoundTruncate drops the extra bits without incrementing.
	RoundTruncate
)

func (m RoundingMode) String() string {
	switch m {
	case RoundNearestEven:
		return "nearest-even"
	case RoundTruncate:
		return "truncate"
	}
	return "unknown"
}

// uint128 helpers. The int128 package provides the arithmetic; bit
// surgery on the halves stays local.

func u128IsZero(x int128.Uint128) bool { return x.H == 0 && x.L == 0 }

func u128BitLen(x int128.Uint128) int {
	if x.H != 0 {
		return 64 + bits.Len64(x.H)
	}
	return bits.Len64(x.L)
}

func u128Lsh(x int128.Uint128, n int) int128.Uint128 {
	if n >= 64 {
		return int128.Uint128{H: x.L << uint(n-64)}
	}
	return int128.Uint128{H: x.H<<uint(n) | x.L>>uint(64-n), L: x.L << uint(n)}
}

// u128Bit returns bit n of x.
func u128Bit(x int128.Uint128, n int) uint64 {
	if n >= 64 {
		return (x.H >> uint(n-64)) & 1
	}
	return (x.L >> uint(n)) & 1
}

// u128AnyBelow reports whether any of bits [0, n) of x is set.
func u128AnyBelow(x int128.Uint128, n int) bool {
	if n <= 0 {
		return false
	}
	if n >= 64 {
		if x.L != 0 {
			return true
		}
		return x.H&(1<<uint(n-64)-1) != 0
	}
	return x.L&(1<<uint(n)-1) != 0
}

// roundPack encodes the magnitude sig * 2^lsb with the given sign into
// format f, rounding per mode. Nearest-even uses guard/round/sticky
// bits, with carry into the exponent and overflow to infinity;
// truncate clamps to the largest finite magnitude.
func (f Format) roundPack(negative bool, sig int128.Uint128, lsb int, mode RoundingMode) Value {
	var sign uint64
	if negative {
		sign = 1
	}
	if u128IsZero(sig) {
		return Value{format: f, sign: sign}
	}

	p := f.precision()
	fw := f.fracWidth()
	e := u128BitLen(sig) - 1 + lsb

	// lsb weight of the target significand: normals carry p bits below
	// 2^e, subnormals are pinned at the minimum exponent.
	targetLsb := e - fw
	if e < f.minNormalExp() {
		targetLsb = f.minNormalExp() - fw
	}

	var kept uint64
	drop := targetLsb - lsb
	if drop <= 0 {
		// exact, no bits discarded
		kept = u128Lsh(sig, -drop).L
	} else {
		kept = sig.Rsh(uint(drop)).L
		if mode == RoundNearestEven {
			guard := u128Bit(sig, drop-1)
			sticky := u128AnyBelow(sig, drop-1)
			if guard == 1 && (sticky || kept&1 == 1) {
				kept++
			}
		}
	}

	// rounding up from an all-ones significand carries into the
	// exponent
	if bits.Len64(kept) > p {
		kept >>= 1
		targetLsb++
	}
	if kept == 0 {
		// underflow
		return Value{format: f, sign: sign}
	}

	if bits.Len64(kept) == p {
		// normal
		eVal := targetLsb + fw
		if eVal > f.maxNormalExp() {
			return f.overflow(negative, mode)
		}
		v := Value{
			format:   f,
			sign:     sign,
			exponent: uint64(eVal + f.Bias()),
			mantissa: kept,
		}
		if !f.ExplicitJBit {
			v.mantissa &^= 1 << uint(fw)
		}
		if f.NoInfinity && f.isNaNPattern(v.exponent, v.mantissa) {
			// the largest-exponent all-ones mantissa is the NaN slot,
			// so a value landing there is an overflow
			return f.overflow(negative, mode)
		}
		return v
	}
	// subnormal
	return Value{format: f, sign: sign, mantissa: kept}
}

// overflow returns the format's out-of-range result: signed infinity
// for nearest-even (NaN on formats without infinity), the largest
// finite magnitude for truncate.
func (f Format) overflow(negative bool, mode RoundingMode) Value {
	if mode == RoundTruncate {
		return f.largestFinite(negative)
	}
	if f.NoInfinity {
		return f.nan()
	}
	return f.infinity(negative)
}

// roundPack64 is roundPack for significands already known to fit in 64
// bits.
func (f Format) roundPack64(negative bool, sig uint64, lsb int, mode RoundingMode) Value {
	return f.roundPack(negative, int128.Uint128{L: sig}, lsb, mode)
}
