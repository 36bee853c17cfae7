package floatval

import "fmt"

// WidthError reports a component width or format parameter that does
// not match the declared format.
type WidthError struct {
	Op   string
	Want int
	Got  int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("floatval: %s: want %d bits, got %d", e.Op, e.Want, e.Got)
}

// UnsupportedError reports a request for an encoding the format does
// not have, e.g. infinity on fp8 E4M3.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return "floatval: format does not support " + e.Feature
}

// ConversionError reports a conversion with no representable result,
// e.g. NaN to fixed point.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return "floatval: cannot convert: " + e.Reason
}

// RangeError reports a constrained random request whose interval
// contains no representable value.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return "floatval: infeasible range: " + e.Reason
}
