// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strings"

	"github.com/pkg/errors"
)

// MaxWidth is the widest Value supported.
//
const MaxWidth = 32

// BitState is the state of a single bit in a Value.
//
type BitState uint8

// Bit states.
//
const (
	Logic0 BitState = iota
	Logic1
	HighZ
	LogicX
)

func (s BitState) String() string {
	switch s {
	case Logic0:
		return "0"
	case Logic1:
		return "1"
	case HighZ:
		return "Z"
	case LogicX:
		return "X"
	}
	return "?"
}

// A Value is an immutable four-state bit vector of 1 to 32 bits.
//
// Each bit is either a defined 0 or 1, floating (high-Z) or unknown (X), with
// unknown taking precedence over high-Z. The representation is canonical, so
// that two Values holding the same bits compare equal with ==.
//
// The zero Value has width 0. It is never produced by the Value constructors;
// the Model uses it to mark unconnected input pins.
//
type Value struct {
	bits   uint32 // logic bits, only set where the bit is defined
	hiz    uint32 // floating bits, never set where unk is set
	unk    uint32 // unknown bits
	width  uint8
	burned bool // driven by conflicting sources
}

func mask(width int) uint32 {
	if width >= MaxWidth {
		return ^uint32(0)
	}
	return 1<<uint(width) - 1
}

// CheckWidth returns an error if width is not in the range [1, MaxWidth].
//
func CheckWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return errors.Errorf("invalid width %d: must be in range [1, %d]", width, MaxWidth)
	}
	return nil
}

func mustWidth(width int) {
	if err := CheckWidth(width); err != nil {
		panic(err)
	}
}

// New returns a fully defined value of the given width. Bits of v above width
// are dropped. New panics if width is not in the range [1, MaxWidth].
//
func New(v uint32, width int) Value {
	mustWidth(width)
	return Value{bits: v & mask(width), width: uint8(width)}
}

// FromBool returns a 1 bit value.
//
func FromBool(b bool) Value {
	if b {
		return Value{bits: 1, width: 1}
	}
	return Value{width: 1}
}

// Floating returns a value with all bits in the high-Z state.
//
func Floating(width int) Value {
	mustWidth(width)
	return Value{hiz: mask(width), width: uint8(width)}
}

// Unknown returns a value with all bits in the unknown state.
//
func Unknown(width int) Value {
	mustWidth(width)
	return Value{unk: mask(width), width: uint8(width)}
}

// FromMasks builds a mixed-state value from explicit masks. Where a bit is set
// in more than one mask, unknown takes precedence over high-Z, and high-Z over
// logic bits.
//
func FromMasks(bits, hiz, unk uint32, width int) Value {
	mustWidth(width)
	return canon(bits, hiz, unk, width, false)
}

func canon(bits, hiz, unk uint32, width int, burned bool) Value {
	m := mask(width)
	unk &= m
	hiz &= m &^ unk
	bits &= m &^ (unk | hiz)
	return Value{bits: bits, hiz: hiz, unk: unk, width: uint8(width), burned: burned}
}

// Width returns the width of v in bits.
//
func (v Value) Width() int { return int(v.width) }

// IsConnected returns false for the zero Value.
//
func (v Value) IsConnected() bool { return v.width != 0 }

// Masks returns the raw logic, high-Z and unknown masks of v.
//
func (v Value) Masks() (bits, hiz, unk uint32) { return v.bits, v.hiz, v.unk }

// AsLogic returns the integer value of v and true if all bits of v are
// defined.
//
func (v Value) AsLogic() (uint32, bool) {
	if !v.IsAllLogic() {
		return 0, false
	}
	return v.bits, true
}

// IsAllLogic returns true if every bit of v is a defined 0 or 1.
//
func (v Value) IsAllLogic() bool { return v.hiz|v.unk == 0 && v.width > 0 }

// HasHighZ returns true if any bit of v is floating.
//
func (v Value) HasHighZ() bool { return v.hiz != 0 }

// HasUnknown returns true if any bit of v is unknown.
//
func (v Value) HasUnknown() bool { return v.unk != 0 }

// IsFloating returns true if every bit of v is floating.
//
func (v Value) IsFloating() bool { return v.width > 0 && v.hiz == mask(int(v.width)) }

// IsBurned returns true if v was produced by conflicting drivers. The logic
// content of a burned value must not be trusted.
//
func (v Value) IsBurned() bool { return v.burned }

// IsHigh returns true if bit 0 of v is a defined 1. This is how control pins
// (enable, clock, clear) are sampled.
//
func (v Value) IsHigh() bool {
	return v.width > 0 && (v.hiz|v.unk)&1 == 0 && v.bits&1 != 0
}

// IsLow returns true if bit 0 of v is a defined 0.
//
func (v Value) IsLow() bool {
	return v.width > 0 && (v.hiz|v.unk|v.bits)&1 == 0
}

// Bit returns the state of bit i.
//
func (v Value) Bit(i int) (BitState, error) {
	if i < 0 || i >= int(v.width) {
		return 0, &BitIndexError{Index: i, Width: int(v.width)}
	}
	return v.bit(i), nil
}

func (v Value) bit(i int) BitState {
	m := uint32(1) << uint(i)
	switch {
	case v.unk&m != 0:
		return LogicX
	case v.hiz&m != 0:
		return HighZ
	case v.bits&m != 0:
		return Logic1
	}
	return Logic0
}

// WithBit returns a copy of v with bit i set to state s.
//
func (v Value) WithBit(i int, s BitState) (Value, error) {
	if i < 0 || i >= int(v.width) {
		return Value{}, &BitIndexError{Index: i, Width: int(v.width)}
	}
	m := uint32(1) << uint(i)
	r := v
	r.bits &^= m
	r.hiz &^= m
	r.unk &^= m
	switch s {
	case Logic0:
	case Logic1:
		r.bits |= m
	case HighZ:
		r.hiz |= m
	case LogicX:
		r.unk |= m
	default:
		return Value{}, errors.Errorf("invalid bit state %d", s)
	}
	return r, nil
}

// Burn returns a copy of v flagged as driven by conflicting sources.
//
func (v Value) Burn() Value {
	v.burned = true
	return v
}

// Equal returns true if v and w have the same width, bits and burn flag.
//
func (v Value) Equal(w Value) bool { return v == w }

// String renders v from the most significant to the least significant bit
// using 0, 1, Z and X. Burned values get a trailing '!'.
//
func (v Value) String() string {
	if v.width == 0 {
		return "-"
	}
	var b strings.Builder
	b.Grow(int(v.width) + 1)
	for i := int(v.width) - 1; i >= 0; i-- {
		b.WriteString(v.bit(i).String())
	}
	if v.burned {
		b.WriteByte('!')
	}
	return b.String()
}

// ParseValue parses the output of Value.String. Digits are read most
// significant first; '_' may be used as a separator.
//
func ParseValue(s string) (Value, error) {
	var bits, hiz, unk uint32
	var width int
	var burned bool
	for i, r := range s {
		if burned {
			return Value{}, parseError(s, i, "trailing characters after '!'")
		}
		var st BitState
		switch r {
		case '0':
			st = Logic0
		case '1':
			st = Logic1
		case 'z', 'Z':
			st = HighZ
		case 'x', 'X':
			st = LogicX
		case '_':
			continue
		case '!':
			if width == 0 {
				return Value{}, parseError(s, i, "expected bit")
			}
			burned = true
			continue
		default:
			return Value{}, parseError(s, i, "expected one of 0, 1, Z, X")
		}
		if width == MaxWidth {
			return Value{}, parseError(s, i, "value too wide")
		}
		bits, hiz, unk = bits<<1, hiz<<1, unk<<1
		switch st {
		case Logic1:
			bits |= 1
		case HighZ:
			hiz |= 1
		case LogicX:
			unk |= 1
		}
		width++
	}
	if width == 0 {
		return Value{}, errors.Errorf("in %q: empty value", s)
	}
	return canon(bits, hiz, unk, width, burned), nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}

func (v Value) check(op string, w Value) error {
	if v.width != w.width {
		return &WidthMismatchError{Op: op, Left: int(v.width), Right: int(w.width)}
	}
	return nil
}

// undecided resolves bits that are neither a defined 0 nor 1 in a result:
// unknown if either operand bit is unknown, floating otherwise.
//
func (v Value) undecided(w Value, zero, one uint32) Value {
	m := mask(int(v.width))
	rest := m &^ (zero | one)
	unk := rest & (v.unk | w.unk)
	return Value{
		bits:   one,
		hiz:    rest &^ unk,
		unk:    unk,
		width:  v.width,
		burned: v.burned || w.burned,
	}
}

func (v Value) defined() uint32 { return mask(int(v.width)) &^ (v.hiz | v.unk) }

// And returns the bitwise AND of v and w. A defined 0 on either side yields 0
// regardless of the other bit.
//
func (v Value) And(w Value) (Value, error) {
	if err := v.check("and", w); err != nil {
		return Value{}, err
	}
	dv, dw := v.defined(), w.defined()
	zero := dv&^v.bits | dw&^w.bits
	one := dv & dw & v.bits & w.bits
	return v.undecided(w, zero, one), nil
}

// Or returns the bitwise OR of v and w. A defined 1 on either side yields 1
// regardless of the other bit.
//
func (v Value) Or(w Value) (Value, error) {
	if err := v.check("or", w); err != nil {
		return Value{}, err
	}
	dv, dw := v.defined(), w.defined()
	one := dv&v.bits | dw&w.bits
	zero := dv & dw &^ (v.bits | w.bits)
	return v.undecided(w, zero, one), nil
}

// Xor returns the bitwise XOR of v and w. Result bits are defined only where
// both operand bits are.
//
func (v Value) Xor(w Value) (Value, error) {
	if err := v.check("xor", w); err != nil {
		return Value{}, err
	}
	d := v.defined() & w.defined()
	x := (v.bits ^ w.bits) & d
	return v.undecided(w, d&^x, x), nil
}

// Not returns the bitwise complement of v. Floating and unknown bits are
// unchanged.
//
func (v Value) Not() Value {
	v.bits = ^v.bits & v.defined()
	return v
}
