package floatval

import (
	"math/bits"

	"github.com/shogo82148/int128"

	"github.com/intel/rohd-hcl-sub003/internal/mathutil"
)

// Arithmetic follows the IEEE special-value tables and computes on
// exact integer significands before a single round-to-nearest-even to
// the receiver's format. Operands may have different formats; the
// result always has the receiver's.

// Add returns the rounded sum of a and b in a's format.
func (a Value) Add(b Value) Value {
	f := a.format
	if a.IsNaN() || b.IsNaN() {
		return f.nan()
	}
	aInf, bInf := a.IsInf(0), b.IsInf(0)
	if aInf || bInf {
		if aInf && bInf {
			if a.sign != b.sign {
				// ±inf + ∓inf = NaN
				return f.nan()
			}
			return f.infinite(a.sign != 0)
		}
		if aInf {
			return f.infinite(a.sign != 0)
		}
		return f.infinite(b.sign != 0)
	}

	sigA, lsbA, _ := a.decompose()
	sigB, lsbB, _ := b.decompose()
	if sigA == 0 && sigB == 0 {
		// -0 + -0 = -0; any other zero pair is +0
		return f.zero(a.sign == 1 && b.sign == 1)
	}
	if sigA == 0 {
		return f.roundPack64(b.sign != 0, sigB, lsbB, RoundNearestEven)
	}
	if sigB == 0 {
		return f.roundPack64(a.sign != 0, sigA, lsbA, RoundNearestEven)
	}

	// order the operands by magnitude so subtraction never borrows
	eA := exponentOfSig(sigA, lsbA)
	eB := exponentOfSig(sigB, lsbB)
	signA, signB := a.sign, b.sign
	if eB > eA || (eA == eB && lessAligned(sigA, lsbA, sigB, lsbB)) {
		sigA, sigB = sigB, sigA
		lsbA, lsbB = lsbB, lsbA
		eA, eB = eB, eA
		signA, signB = signB, signA
	}

	if eA-eB > 60 {
		// the smaller operand is far below the larger one's rounding
		// range and only contributes a sticky bit
		if signA == signB {
			return f.roundPack64(signA != 0, sigA<<3|1, lsbA-3, RoundNearestEven)
		}
		return f.roundPack64(signA != 0, sigA<<3-1, lsbA-3, RoundNearestEven)
	}

	// align both significands exactly; the exponent distance is
	// bounded, so the aligned sum stays within 128 bits
	target := mathutil.Min(lsbA-3, lsbB)
	alignedA := u128Lsh(int128.Uint128{L: sigA}, lsbA-target)
	alignedB := u128Lsh(int128.Uint128{L: sigB}, lsbB-target)

	if signA == signB {
		return f.roundPack(signA != 0, alignedA.Add(alignedB), target, RoundNearestEven)
	}
	diff := alignedA.Sub(alignedB)
	if u128IsZero(diff) {
		// exact cancellation is +0 under nearest-even
		return f.zero(false)
	}
	return f.roundPack(signA != 0, diff, target, RoundNearestEven)
}

// lessAligned compares two magnitudes with equal floor(log2) exactly.
func lessAligned(sigA uint64, lsbA int, sigB uint64, lsbB int) bool {
	// equal value exponents bound the lsb distance by the significand
	// widths, so the shift cannot overflow
	if lsbA >= lsbB {
		return sigA<<uint(lsbA-lsbB) < sigB
	}
	return sigA < sigB<<uint(lsbB-lsbA)
}

// Sub returns the rounded difference of a and b in a's format.
func (a Value) Sub(b Value) Value {
	return a.Add(b.Negate())
}

// Mul returns the rounded product of a and b in a's format.
func (a Value) Mul(b Value) Value {
	f := a.format
	if a.IsNaN() || b.IsNaN() {
		return f.nan()
	}
	sign := a.sign ^ b.sign
	aInf, bInf := a.IsInf(0), b.IsInf(0)
	if aInf || bInf {
		if (aInf && b.IsZero()) || (bInf && a.IsZero()) {
			// inf * 0 = NaN
			return f.nan()
		}
		return f.infinite(sign != 0)
	}

	sigA, lsbA, _ := a.decompose()
	sigB, lsbB, _ := b.decompose()
	if sigA == 0 || sigB == 0 {
		return f.zero(sign != 0)
	}
	var prod int128.Uint128
	prod.H, prod.L = bits.Mul64(sigA, sigB)
	return f.roundPack(sign != 0, prod, lsbA+lsbB, RoundNearestEven)
}

// Quo returns the rounded quotient of a and b in a's format.
func (a Value) Quo(b Value) Value {
	f := a.format
	if a.IsNaN() || b.IsNaN() {
		return f.nan()
	}
	sign := a.sign ^ b.sign
	aInf, bInf := a.IsInf(0), b.IsInf(0)
	if aInf {
		if bInf {
			// ±inf / ±inf = NaN
			return f.nan()
		}
		return f.infinite(sign != 0)
	}
	if bInf {
		// finite / ±inf = signed zero
		return f.zero(sign != 0)
	}
	if b.IsZero() {
		if a.IsZero() {
			// ±0 / ±0 = NaN
			return f.nan()
		}
		return f.infinite(sign != 0)
	}
	if a.IsZero() {
		return f.zero(sign != 0)
	}

	sigA, lsbA, _ := a.decompose()
	sigB, lsbB, _ := b.decompose()

	// scale the dividend so the quotient always carries at least 63
	// significant bits, well beyond any target precision
	shift := 64 + bits.Len64(sigB) - bits.Len64(sigA)
	num := u128Lsh(int128.Uint128{L: sigA}, shift)
	q, r := num.DivMod(int128.Uint128{L: sigB})
	if !u128IsZero(r) {
		q.L |= 1 // sticky
	}
	return f.roundPack(sign != 0, q, lsbA-lsbB-shift, RoundNearestEven)
}
