package logicsim_test

import (
	"testing"
	"testing/quick"

	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

func mask(w int) uint32 {
	if w == 32 {
		return ^uint32(0)
	}
	return 1<<uint(w) - 1
}

// width maps any byte to a valid width.
func width(b uint8) int { return int(b)%ls.MaxWidth + 1 }

func TestValue_New(t *testing.T) {
	f := func(bits uint32, b uint8) bool {
		w := width(b)
		v := ls.New(bits, w)
		got, ok := v.AsLogic()
		return ok && got == bits&mask(w) && v.Width() == w && v.IsAllLogic()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestValue_bitwise(t *testing.T) {
	f := func(a, b uint32, wb uint8) bool {
		w := width(wb)
		va, vb := ls.New(a, w), ls.New(b, w)
		and, err := va.And(vb)
		if err != nil {
			return false
		}
		or, err := va.Or(vb)
		if err != nil {
			return false
		}
		xor, err := va.Xor(vb)
		if err != nil {
			return false
		}
		m := mask(w)
		for _, c := range []struct {
			v   ls.Value
			exp uint32
		}{
			{and, a & b & m},
			{or, (a | b) & m},
			{xor, (a ^ b) & m},
			{va.Not(), ^a & m},
		} {
			if got, ok := c.v.AsLogic(); !ok || got != c.exp || c.v.IsBurned() {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestValue_burn(t *testing.T) {
	f := func(a, b uint32, wb uint8, burnA bool) bool {
		w := width(wb)
		va, vb := ls.New(a, w), ls.New(b, w)
		if burnA {
			va = va.Burn()
		} else {
			vb = vb.Burn()
		}
		for _, op := range []func(ls.Value, ls.Value) (ls.Value, error){ls.Value.And, ls.Value.Or, ls.Value.Xor} {
			r, err := op(va, vb)
			if err != nil || !r.IsBurned() {
				return false
			}
			// once burned, combining with clean values keeps the flag
			r, err = op(r, ls.New(a, w))
			if err != nil || !r.IsBurned() || !r.Not().IsBurned() {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestValue_fourState(t *testing.T) {
	v := func(s string) ls.Value {
		t.Helper()
		r, err := ls.ParseValue(s)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	td := []struct {
		op   string
		a, b string
		exp  string
	}{
		// a defined 0 dominates AND, a defined 1 dominates OR.
		{"and", "0000", "01ZX", "0000"},
		{"and", "1111", "01ZX", "01ZX"},
		{"and", "ZZZZ", "01ZX", "0ZZX"},
		{"and", "XXXX", "01ZX", "0XXX"},
		{"or", "0000", "01ZX", "01ZX"},
		{"or", "1111", "01ZX", "1111"},
		{"or", "ZZZZ", "01ZX", "Z1ZX"},
		{"or", "XXXX", "01ZX", "X1XX"},
		{"xor", "0000", "01ZX", "01ZX"},
		{"xor", "1111", "01ZX", "10ZX"},
		{"xor", "ZZZZ", "01ZX", "ZZZX"},
		{"xor", "XXXX", "01ZX", "XXXX"},
		{"not", "01ZX", "", "10ZX"},
	}
	for _, d := range td {
		t.Run(d.op+"_"+d.a+"_"+d.b, func(t *testing.T) {
			var r ls.Value
			var err error
			switch d.op {
			case "and":
				r, err = v(d.a).And(v(d.b))
			case "or":
				r, err = v(d.a).Or(v(d.b))
			case "xor":
				r, err = v(d.a).Xor(v(d.b))
			case "not":
				r = v(d.a).Not()
			}
			if err != nil {
				t.Fatal(err)
			}
			if r != v(d.exp) {
				t.Errorf("%s %s %s = %s, expected %s", d.a, d.op, d.b, r, d.exp)
			}
		})
	}
}

func TestValue_widthMismatch(t *testing.T) {
	a, b := ls.New(1, 4), ls.New(1, 5)
	for _, op := range []func(ls.Value, ls.Value) (ls.Value, error){ls.Value.And, ls.Value.Or, ls.Value.Xor} {
		_, err := op(a, b)
		if !errors.Is(err, ls.ErrWidthMismatch) {
			t.Errorf("expected width mismatch, got %v", err)
		}
		var wm *ls.WidthMismatchError
		if !errors.As(err, &wm) || wm.Left != 4 || wm.Right != 5 {
			t.Errorf("bad error details: %#v", wm)
		}
	}
}

func TestValue_bits(t *testing.T) {
	v := ls.FromMasks(0b0011, 0b0100, 0b1000, 4)
	exp := []ls.BitState{ls.Logic1, ls.Logic1, ls.HighZ, ls.LogicX}
	for i, e := range exp {
		s, err := v.Bit(i)
		if err != nil {
			t.Fatal(err)
		}
		if s != e {
			t.Errorf("bit %d = %v, expected %v", i, s, e)
		}
	}
	if _, err := v.Bit(4); !errors.Is(err, ls.ErrBitIndex) {
		t.Errorf("expected bit index error, got %v", err)
	}
	if _, err := v.WithBit(-1, ls.Logic0); !errors.Is(err, ls.ErrBitIndex) {
		t.Errorf("expected bit index error, got %v", err)
	}

	w, err := v.WithBit(3, ls.Logic0)
	if err != nil {
		t.Fatal(err)
	}
	w, err = w.WithBit(2, ls.Logic1)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := w.AsLogic(); !ok || got != 0b0111 {
		t.Errorf("got %s, expected 0111", w)
	}
	if v.String() != "XZ11" {
		t.Errorf("v was modified: %s", v)
	}
}

func TestValue_masks(t *testing.T) {
	// unknown wins over high-Z, which wins over logic bits.
	v := ls.FromMasks(0xff, 0x0f, 0x03, 8)
	bits, hiz, unk := v.Masks()
	if bits != 0xf0 || hiz != 0x0c || unk != 0x03 {
		t.Errorf("masks = %#x %#x %#x", bits, hiz, unk)
	}
	if v.String() != "1111ZZXX" {
		t.Errorf("got %s", v)
	}
	if v != ls.FromMasks(0xf0, 0x0c, 0x03, 8) {
		t.Error("representation is not canonical")
	}
	if _, ok := v.AsLogic(); ok {
		t.Error("AsLogic succeeded on a mixed value")
	}
	if !ls.Floating(3).IsFloating() || ls.Floating(3).HasUnknown() {
		t.Error("bad floating value")
	}
	if !ls.Unknown(32).HasUnknown() || ls.Unknown(32).String() != "XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX" {
		t.Error("bad unknown value")
	}
}

func TestValue_control(t *testing.T) {
	td := []struct {
		v         ls.Value
		high, low bool
	}{
		{ls.FromBool(true), true, false},
		{ls.FromBool(false), false, true},
		{ls.Floating(1), false, false},
		{ls.Unknown(1), false, false},
		{ls.New(2, 2), false, true},
		{ls.Value{}, false, false},
	}
	for _, d := range td {
		if d.v.IsHigh() != d.high || d.v.IsLow() != d.low {
			t.Errorf("%s: IsHigh = %v, IsLow = %v", d.v, d.v.IsHigh(), d.v.IsLow())
		}
	}
}

func TestParseValue(t *testing.T) {
	td := []struct {
		in  string
		exp string
		err bool
	}{
		{"0101", "0101", false},
		{"zx10", "ZX10", false},
		{"1111_0000", "11110000", false},
		{"10!", "10!", false},
		{"", "", true},
		{"!", "", true},
		{"1!0", "", true},
		{"102", "", true},
		{"000000000000000000000000000000000", "", true},
	}
	for _, d := range td {
		v, err := ls.ParseValue(d.in)
		if d.err {
			if err == nil {
				t.Errorf("%q: expected error, got %s", d.in, v)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", d.in, err)
			continue
		}
		if v.String() != d.exp {
			t.Errorf("%q: got %s, expected %s", d.in, v, d.exp)
		}
	}

	f := func(bits, hiz, unk uint32, b uint8, burn bool) bool {
		v := ls.FromMasks(bits, hiz, unk, width(b))
		if burn {
			v = v.Burn()
		}
		p, err := ls.ParseValue(v.String())
		return err == nil && p == v
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestNew_invalidWidth(t *testing.T) {
	for _, w := range []int{0, -1, 33} {
		if err := ls.CheckWidth(w); err == nil {
			t.Errorf("CheckWidth(%d) succeeded", w)
		}
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(0, %d) did not panic", w)
				}
			}()
			ls.New(0, w)
		}()
	}
}
