// Package logicvec implements fixed-width bit vectors backed by big.Int.
//
// A Vector is the raw-bit currency of the value packages: simulation
// signal reads come in as Vectors and encoded values go back out as
// Vectors. All operations return new Vectors; a Vector is never mutated
// after construction.
package logicvec

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Vector is a fixed-width bit vector. The zero Vector has width 0 and
// is not usable; construct Vectors with New, FromUint64, FromBigInt or
// FromBinary.
type Vector struct {
	width int
	bits  *big.Int // unsigned magnitude, always < 1<<width, read-only
}

// New returns an all-zero Vector of the given width.
// It panics if width is not positive; widths are structural parameters
// chosen by the programmer, not runtime data.
func New(width int) Vector {
	checkWidth(width)
	return Vector{width: width, bits: new(big.Int)}
}

// FromUint64 returns a Vector holding the low 'width' bits of v.
func FromUint64(width int, v uint64) Vector {
	checkWidth(width)
	b := new(big.Int).SetUint64(v)
	return Vector{width: width, bits: mask(b, width)}
}

// FromBigInt returns a Vector holding v modulo 2^width. Negative
// values are encoded in two's complement.
func FromBigInt(width int, v *big.Int) Vector {
	checkWidth(width)
	b := new(big.Int).Set(v)
	if b.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		b.Mod(b, mod)
	}
	return Vector{width: width, bits: mask(b, width)}
}

// FromBinary parses an MSB-first binary literal into a Vector whose
// width is the number of digits. Spaces and underscores are ignored.
func FromBinary(s string) (Vector, error) {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '0', '1':
			b.WriteRune(r)
		case ' ', '_':
		default:
			return Vector{}, errors.Errorf("logicvec: unexpected symbol %q in binary literal", r)
		}
	}
	digits := b.String()
	if len(digits) == 0 {
		return Vector{}, errors.New("logicvec: empty binary literal")
	}
	n, ok := new(big.Int).SetString(digits, 2)
	if !ok {
		return Vector{}, errors.Errorf("logicvec: cannot parse binary literal %q", s)
	}
	return Vector{width: len(digits), bits: n}, nil
}

func checkWidth(width int) {
	if width <= 0 {
		panic("logicvec: width must be positive")
	}
}

// mask truncates b to the low 'width' bits. b must be non-negative.
func mask(b *big.Int, width int) *big.Int {
	if b.BitLen() <= width {
		return b
	}
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	m.Sub(m, big.NewInt(1))
	return b.And(b, m)
}

// Width returns the number of bits in x.
func (x Vector) Width() int { return x.width }

// Bit returns bit i (0 = LSB) as 0 or 1.
func (x Vector) Bit(i int) uint {
	if i < 0 || i >= x.width {
		panic("logicvec: bit index out of range")
	}
	return x.bits.Bit(i)
}

// Uint64 returns the low 64 bits of x.
func (x Vector) Uint64() uint64 {
	if x.bits.IsUint64() {
		return x.bits.Uint64()
	}
	return new(big.Int).And(x.bits, new(big.Int).SetUint64(^uint64(0))).Uint64()
}

// BigInt returns the unsigned integer value of x.
func (x Vector) BigInt() *big.Int {
	return new(big.Int).Set(x.bits)
}

// Signed returns the two's-complement signed integer value of x.
func (x Vector) Signed() *big.Int {
	v := new(big.Int).Set(x.bits)
	if x.bits.Bit(x.width-1) == 1 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(x.width))
		v.Sub(v, mod)
	}
	return v
}

// IsZero reports whether every bit of x is 0.
func (x Vector) IsZero() bool { return x.bits.Sign() == 0 }

// IsAllOnes reports whether every bit of x is 1.
func (x Vector) IsAllOnes() bool {
	if x.bits.BitLen() != x.width {
		return false
	}
	for i := 0; i < x.width; i++ {
		if x.bits.Bit(i) == 0 {
			return false
		}
	}
	return true
}

// Slice returns bits hi..lo of x (both inclusive, hi >= lo) as a new
// Vector of width hi-lo+1.
func (x Vector) Slice(hi, lo int) Vector {
	if lo < 0 || hi >= x.width || hi < lo {
		panic("logicvec: slice bounds out of range")
	}
	b := new(big.Int).Rsh(x.bits, uint(lo))
	return Vector{width: hi - lo + 1, bits: mask(b, hi-lo+1)}
}

// Concat concatenates the given Vectors MSB-first: the first argument
// occupies the most significant bits of the result.
func Concat(vs ...Vector) Vector {
	if len(vs) == 0 {
		panic("logicvec: Concat needs at least one operand")
	}
	acc := new(big.Int)
	width := 0
	for _, v := range vs {
		acc.Lsh(acc, uint(v.width))
		acc.Or(acc, v.bits)
		width += v.width
	}
	return Vector{width: width, bits: acc}
}

// Shl returns x shifted left by n bits; bits shifted out are dropped.
func (x Vector) Shl(n int) Vector {
	b := new(big.Int).Lsh(x.bits, uint(n))
	return Vector{width: x.width, bits: mask(b, x.width)}
}

// Shr returns x logically shifted right by n bits.
func (x Vector) Shr(n int) Vector {
	return Vector{width: x.width, bits: new(big.Int).Rsh(x.bits, uint(n))}
}

// Not returns the bitwise complement of x.
func (x Vector) Not() Vector {
	m := new(big.Int).Lsh(big.NewInt(1), uint(x.width))
	m.Sub(m, big.NewInt(1))
	return Vector{width: x.width, bits: new(big.Int).Xor(x.bits, m)}
}

// Add returns x+y modulo 2^width. The operands must have equal widths.
func (x Vector) Add(y Vector) Vector {
	x.checkSameWidth(y)
	b := new(big.Int).Add(x.bits, y.bits)
	return Vector{width: x.width, bits: mask(b, x.width)}
}

// Sub returns x-y modulo 2^width. The operands must have equal widths.
func (x Vector) Sub(y Vector) Vector {
	x.checkSameWidth(y)
	b := new(big.Int).Sub(x.bits, y.bits)
	if b.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(x.width))
		b.Add(b, mod)
	}
	return Vector{width: x.width, bits: b}
}

// Neg returns the two's complement of x.
func (x Vector) Neg() Vector {
	return New(x.width).Sub(x)
}

// Cmp compares x and y as unsigned integers and returns -1, 0 or +1.
func (x Vector) Cmp(y Vector) int {
	return x.bits.Cmp(y.bits)
}

// Eq reports whether x and y have the same width and the same bits.
func (x Vector) Eq(y Vector) bool {
	return x.width == y.width && x.bits.Cmp(y.bits) == 0
}

// ZeroExtend returns x widened to 'width' bits with zero fill.
func (x Vector) ZeroExtend(width int) Vector {
	if width < x.width {
		panic("logicvec: ZeroExtend to narrower width")
	}
	return Vector{width: width, bits: new(big.Int).Set(x.bits)}
}

// SignExtend returns x widened to 'width' bits replicating the MSB.
func (x Vector) SignExtend(width int) Vector {
	if width < x.width {
		panic("logicvec: SignExtend to narrower width")
	}
	if x.bits.Bit(x.width-1) == 0 {
		return x.ZeroExtend(width)
	}
	return FromBigInt(width, x.Signed())
}

func (x Vector) checkSameWidth(y Vector) {
	if x.width != y.width {
		panic("logicvec: operand width mismatch")
	}
}

// Binary returns the MSB-first binary string of x, zero padded to the
// full width.
func (x Vector) Binary() string {
	var b strings.Builder
	b.Grow(x.width)
	for i := x.width - 1; i >= 0; i-- {
		b.WriteByte('0' + byte(x.bits.Bit(i)))
	}
	return b.String()
}

func (x Vector) String() string { return x.Binary() }
