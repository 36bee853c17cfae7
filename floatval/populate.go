package floatval

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/intel/rohd-hcl-sub003/internal/mathutil"
	"github.com/intel/rohd-hcl-sub003/logicvec"
)

// Populator is the single validated entry point for constructing
// Values of one format. Every constructor checks component widths and
// ranges; a Populator never produces an inconsistent bit pattern.
type Populator struct {
	format Format
}

// NewPopulator returns a Populator for the format, or a WidthError if
// the format parameters are out of range.
func NewPopulator(f Format) (*Populator, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &Populator{format: f}, nil
}

// Format returns the populator's target format.
func (p *Populator) Format() Format { return p.format }

// Populate assembles a Value from separate sign, exponent and mantissa
// vectors. Each component width must match the format exactly.
func (p *Populator) Populate(sign, exponent, mantissa logicvec.Vector) (Value, error) {
	f := p.format
	if sign.Width() != 1 {
		return Value{}, &WidthError{Op: "sign", Want: 1, Got: sign.Width()}
	}
	if exponent.Width() != f.ExponentWidth {
		return Value{}, &WidthError{Op: "exponent", Want: f.ExponentWidth, Got: exponent.Width()}
	}
	if mantissa.Width() != f.MantissaWidth {
		return Value{}, &WidthError{Op: "mantissa", Want: f.MantissaWidth, Got: mantissa.Width()}
	}
	return Value{
		format:   f,
		sign:     sign.Uint64(),
		exponent: exponent.Uint64(),
		mantissa: mantissa.Uint64(),
	}, nil
}

// FromVector interprets a raw simulation bit vector, sign at the MSB.
func (p *Populator) FromVector(raw logicvec.Vector) (Value, error) {
	f := p.format
	if raw.Width() != f.TotalWidth() {
		return Value{}, &WidthError{Op: "raw vector", Want: f.TotalWidth(), Got: raw.Width()}
	}
	w := f.TotalWidth()
	return p.Populate(
		raw.Slice(w-1, w-1),
		raw.Slice(w-2, f.MantissaWidth),
		raw.Slice(f.MantissaWidth-1, 0),
	)
}

// FromInts builds a Value from integer exponent and mantissa field
// values.
func (p *Populator) FromInts(exponent, mantissa uint64, negative bool) (Value, error) {
	f := p.format
	if exponent > f.maxBiasedExponent() {
		return Value{}, &WidthError{Op: "exponent value", Want: f.ExponentWidth, Got: mathutil.BitsFor(exponent)}
	}
	if mantissa > f.maxMantissa() {
		return Value{}, &WidthError{Op: "mantissa value", Want: f.MantissaWidth, Got: mathutil.BitsFor(mantissa)}
	}
	v := Value{format: f, exponent: exponent, mantissa: mantissa}
	if negative {
		v.sign = 1
	}
	return v, nil
}

// FromBinaryStrings parses the sign, exponent and mantissa components
// from binary literals.
func (p *Populator) FromBinaryStrings(sign, exponent, mantissa string) (Value, error) {
	s, err := parseField(sign, 1)
	if err != nil {
		return Value{}, errors.Wrap(err, "sign")
	}
	e, err := parseField(exponent, p.format.ExponentWidth)
	if err != nil {
		return Value{}, errors.Wrap(err, "exponent")
	}
	m, err := parseField(mantissa, p.format.MantissaWidth)
	if err != nil {
		return Value{}, errors.Wrap(err, "mantissa")
	}
	return Value{format: p.format, sign: s, exponent: e, mantissa: m}, nil
}

// FromSpacedBinaryString parses the "s eee…e mmm…m" form produced by
// Value.String.
func (p *Populator) FromSpacedBinaryString(s string) (Value, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Value{}, errors.Errorf("want 3 space-separated fields, got %d", len(fields))
	}
	return p.FromBinaryStrings(fields[0], fields[1], fields[2])
}

func parseField(s string, width int) (uint64, error) {
	if len(s) != width {
		return 0, &WidthError{Op: "binary literal", Want: width, Got: len(s)}
	}
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse binary literal")
	}
	return v, nil
}

// FromConstant builds the named canonical value. Requesting an
// infinity on a format without one returns an UnsupportedError.
func (p *Populator) FromConstant(c Constant) (Value, error) {
	v, ok := p.format.constant(c)
	if !ok {
		if c == PositiveInfinity || c == NegativeInfinity {
			return Value{}, &UnsupportedError{Feature: "infinity"}
		}
		return Value{}, errors.Errorf("unknown constant %d", int(c))
	}
	return v, nil
}

// FromFloat64 converts a float64 to the target format with the given
// rounding mode. Magnitudes beyond the largest finite value saturate
// to signed infinity under nearest-even (to NaN on formats without an
// infinity encoding) and to the largest finite magnitude under
// truncate.
func (p *Populator) FromFloat64(x float64, mode RoundingMode) Value {
	f := p.format
	switch {
	case math.IsNaN(x):
		return f.nan()
	case math.IsInf(x, 0):
		return f.infinite(math.Signbit(x))
	}
	b := math.Float64bits(x)
	negative := b>>63 != 0
	exp := int(b>>52) & 0x7ff
	frac := b & (1<<52 - 1)
	if exp == 0 {
		if frac == 0 {
			return f.zero(negative)
		}
		return f.roundPack64(negative, frac, -1074, mode)
	}
	return f.roundPack64(negative, frac|1<<52, exp-1023-52, mode)
}

// FromDouble is FromFloat64 with the default round-to-nearest-even.
func (p *Populator) FromDouble(x float64) Value {
	return p.FromFloat64(x, RoundNearestEven)
}

// FromFloat64Unrounded converts with plain truncation; comparing it
// against FromDouble isolates the rounding step.
func (p *Populator) FromFloat64Unrounded(x float64) Value {
	return p.FromFloat64(x, RoundTruncate)
}

// FromValue converts a Value of any format to the target format,
// rounding to nearest-even. A same-format conversion preserves the bit
// pattern unless canonicalizeExplicit is set, in which case redundant
// explicit-J encodings are first renormalized to the canonical one.
func (p *Populator) FromValue(other Value, canonicalizeExplicit bool) Value {
	return p.FromValueMode(other, RoundNearestEven, canonicalizeExplicit)
}

// FromValueMode is FromValue with an explicit rounding mode.
func (p *Populator) FromValueMode(other Value, mode RoundingMode, canonicalizeExplicit bool) Value {
	f := p.format
	if f == other.format && !(canonicalizeExplicit && f.ExplicitJBit) {
		return other
	}
	switch {
	case other.IsNaN():
		return f.nan()
	case other.IsInf(0):
		return f.infinite(other.sign != 0)
	}
	sig, lsb, _ := other.decompose()
	if sig == 0 {
		return f.zero(other.sign != 0)
	}
	return f.roundPack64(other.sign != 0, sig, lsb, mode)
}
