package constval

import (
	"math"
	"math/big"
	"testing"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		size     int64
		ct       int64
		want     int64
		width    int
		unsigned bool
		ok       bool
	}{
		{"int", "INT:-5", 32, schema.ConstInt, -5, 32, false, true},
		{"uint", "UINT:5", 8, schema.ConstUInt, 5, 8, true, true},
		{"bin", "BIN:1010", 4, schema.ConstBinary, 10, 4, true, true},
		{"hex truncated", "HEX:1ff", 8, schema.ConstHex, 0xff, 8, true, true},
		{"underscores", "BIN:1111_0000", 8, schema.ConstBinary, 0xf0, 8, true, true},
		{"unsized", "UINT:300", 0, schema.ConstUInt, 300, 0, true, true},
		{"xz", "BIN:10x1", 4, schema.ConstBinary, 0, 0, false, false},
		{"string", "STRING:hi", 16, schema.ConstString, 0, 0, false, false},
		{"empty", "INT:", 32, schema.ConstInt, 0, 0, false, false},
		{"size at cap", "UINT:1", MaxWidth, schema.ConstUInt, 1, MaxWidth, true, true},
		{"size above cap", "UINT:1", 1 << 40, schema.ConstUInt, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Parse(tt.encoded, tt.size, tt.ct)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got, _ := v.Int64()
			if got != tt.want || v.Width != tt.width || v.Unsigned != tt.unsigned {
				t.Errorf("got %d/%d/%v, want %d/%d/%v", got, v.Width, v.Unsigned, tt.want, tt.width, tt.unsigned)
			}
		})
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name     string
		in       Value
		width    int
		unsigned bool
		want     int64
	}{
		{"truncate", FromInt64(0x1ff, 16, true), 8, true, 0xff},
		{"sign bit", FromInt64(0xff, 8, true), 8, false, -1},
		{"sign extend to unsigned", FromInt64(-1, 8, false), 16, true, 0xffff},
		{"zero extend", FromInt64(0xff, 8, true), 16, false, 0xff},
		{"narrow signed", FromInt64(-129, 32, false), 8, false, 127},
		{"unsized keeps", FromInt64(1<<40, 0, false), 0, false, 1 << 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Resize(tt.width, tt.unsigned).Int64()
			if !ok || got != tt.want {
				t.Errorf("Resize = %d (%v), want %d", got, ok, tt.want)
			}
		})
	}
}

func TestFits(t *testing.T) {
	if !Fits(big.NewInt(-128), 8, false) || Fits(big.NewInt(-129), 8, false) {
		t.Error("signed 8-bit bounds")
	}
	if !Fits(big.NewInt(255), 8, true) || Fits(big.NewInt(256), 8, true) || Fits(big.NewInt(-1), 8, true) {
		t.Error("unsigned 8-bit bounds")
	}
	if !Fits(big.NewInt(1<<62), 0, true) {
		t.Error("unsized fits everything")
	}
}

func TestObjectWidth(t *testing.T) {
	a := model.NewArena(model.Hints{})
	b := model.NewBuilder(a, "w.sv")
	m := b.Module(b.Design("d"), "m", true)
	n := b.Net(m, "n", 12, true)
	bit := b.Net(m, "bit", 1, false)

	if w, u, ok := ObjectWidth(a, n); !ok || w != 12 || u {
		t.Errorf("n: %d %v %v", w, u, ok)
	}
	if w, u, ok := ObjectWidth(a, bit); !ok || w != 1 || !u {
		t.Errorf("bit: %d %v %v", w, u, ok)
	}
	if w, u, ok := ObjectWidth(a, b.Constant(3, 4, false)); !ok || w != 4 || !u {
		t.Errorf("constant: %d %v %v", w, u, ok)
	}
	if _, _, ok := ObjectWidth(a, b.Op(schema.OpAdd)); ok {
		t.Error("operation has no declared width")
	}
}

func TestNewCopiesLocation(t *testing.T) {
	a := model.NewArena(model.Hints{})
	b := model.NewBuilder(a, "w.sv")
	src := b.Line(7).Int(1)
	id := New(a, FromInt64(-3, 6, false), src)
	if a.Loc(id) != a.Loc(src) {
		t.Errorf("loc %v, want %v", a.Loc(id), a.Loc(src))
	}
	v, ok := Of(a, id)
	if !ok || !v.Equal(FromInt64(-3, 6, false)) {
		t.Errorf("Of = %+v %v", v, ok)
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name        string
		left, right int64
		want        int
		ok          bool
	}{
		{"descending", 7, 0, 8, true},
		{"ascending", 0, 7, 8, true},
		{"single bit", 3, 3, 1, true},
		{"at cap", MaxWidth - 1, 0, MaxWidth, true},
		{"above cap", MaxWidth, 0, 0, false},
		{"huge", 1 << 40, 0, 0, false},
		{"difference wraps", math.MaxInt64, math.MinInt64, 0, false},
		{"negative bounds", -1, math.MinInt64, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Span(tt.left, tt.right)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Span(%d, %d) = %d, %v, want %d, %v", tt.left, tt.right, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestWidthRejectsOversizedTypes(t *testing.T) {
	a := model.NewArena(model.Hints{})
	b := model.NewBuilder(a, "w.sv")
	m := b.Module(b.Design("d"), "m", true)

	huge := b.LogicTypespec(m, 1, false)
	a.AppendChild(huge, schema.FRanges, b.Range(1<<40, 0))
	if w, ok := Width(a, huge); ok {
		t.Errorf("[1<<40:0] width = %d, want rejection", w)
	}

	// 256 * 256 * 2 bits overflows the cap only through the product
	wide := b.LogicTypespec(m, 1, false)
	for _, n := range []int64{255, 255, 1} {
		a.AppendChild(wide, schema.FRanges, b.Range(n, 0))
	}
	if w, ok := Width(a, wide); ok {
		t.Errorf("packed product width = %d, want rejection", w)
	}

	c := b.Constant(1, 8, false)
	a.SetInt(c, schema.FSize, 1<<40)
	if _, _, ok := ObjectWidth(a, c); ok {
		t.Error("oversized constant has a width")
	}
}
