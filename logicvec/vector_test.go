package logicvec

import (
	"math/big"
	"testing"
)

func TestFromBinary(t *testing.T) {
	tests := []struct {
		s     string
		width int
		v     uint64
		err   bool
	}{
		{"0", 1, 0, false},
		{"1", 1, 1, false},
		{"1010", 4, 10, false},
		{"0000_1111", 8, 15, false},
		{"0 1000 0001", 9, 0x081, false},
		{"", 0, 0, true},
		{"  ", 0, 0, true},
		{"10x1", 0, 0, true},
	}
	for _, tt := range tests {
		v, err := FromBinary(tt.s)
		if tt.err {
			if err == nil {
				t.Errorf("FromBinary(%q): expected error", tt.s)
			}
			continue
		}
		if err != nil {
			t.Errorf("FromBinary(%q): unexpected error %v", tt.s, err)
			continue
		}
		if v.Width() != tt.width || v.Uint64() != tt.v {
			t.Errorf("FromBinary(%q): expected (%d, %d), got (%d, %d)", tt.s, tt.width, tt.v, v.Width(), v.Uint64())
		}
	}
}

func TestSignedInterpretation(t *testing.T) {
	tests := []struct {
		width int
		v     uint64
		want  int64
	}{
		{4, 0b0111, 7},
		{4, 0b1000, -8},
		{4, 0b1111, -1},
		{8, 0xff, -1},
		{8, 0x7f, 127},
		{1, 1, -1},
	}
	for _, tt := range tests {
		v := FromUint64(tt.width, tt.v)
		if got := v.Signed().Int64(); got != tt.want {
			t.Errorf("Signed(%0*b): expected %d, got %d", tt.width, tt.v, tt.want, got)
		}
	}
}

func TestFromBigIntNegative(t *testing.T) {
	v := FromBigInt(8, big.NewInt(-1))
	if !v.IsAllOnes() {
		t.Errorf("FromBigInt(8, -1): expected all ones, got %s", v)
	}
	if got := v.Signed().Int64(); got != -1 {
		t.Errorf("round trip: expected -1, got %d", got)
	}
}

func TestSliceConcat(t *testing.T) {
	v := FromUint64(9, 0b101000001)
	sign := v.Slice(8, 8)
	exp := v.Slice(7, 4)
	mant := v.Slice(3, 0)
	if sign.Uint64() != 1 || exp.Uint64() != 0b0100 || mant.Uint64() != 0b0001 {
		t.Errorf("slices: got %s %s %s", sign, exp, mant)
	}
	back := Concat(sign, exp, mant)
	if !back.Eq(v) {
		t.Errorf("concat: expected %s, got %s", v, back)
	}
}

func TestArith(t *testing.T) {
	a := FromUint64(4, 0b1111)
	b := FromUint64(4, 0b0001)
	if got := a.Add(b); !got.IsZero() {
		t.Errorf("1111+0001: expected 0000, got %s", got)
	}
	if got := b.Sub(a); got.Uint64() != 0b0010 {
		t.Errorf("0001-1111: expected 0010, got %s", got)
	}
	if got := b.Neg(); got.Uint64() != 0b1111 {
		t.Errorf("-0001: expected 1111, got %s", got)
	}
}

func TestExtend(t *testing.T) {
	v := FromUint64(4, 0b1010)
	if got := v.ZeroExtend(8); got.Uint64() != 0b1010 || got.Width() != 8 {
		t.Errorf("ZeroExtend: got %s", got)
	}
	if got := v.SignExtend(8); got.Uint64() != 0b11111010 {
		t.Errorf("SignExtend: got %s", got)
	}
	pos := FromUint64(4, 0b0101)
	if got := pos.SignExtend(8); got.Uint64() != 0b0101 {
		t.Errorf("SignExtend positive: got %s", got)
	}
}

func TestShiftNotBinary(t *testing.T) {
	v := FromUint64(4, 0b0110)
	if got := v.Shl(1); got.Uint64() != 0b1100 {
		t.Errorf("Shl: got %s", got)
	}
	if got := v.Shl(2); got.Uint64() != 0b1000 {
		t.Errorf("Shl drop: got %s", got)
	}
	if got := v.Shr(2); got.Uint64() != 0b0001 {
		t.Errorf("Shr: got %s", got)
	}
	if got := v.Not(); got.Uint64() != 0b1001 {
		t.Errorf("Not: got %s", got)
	}
	if got := v.Binary(); got != "0110" {
		t.Errorf("Binary: got %q", got)
	}
}
