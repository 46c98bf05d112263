// Package constval decodes, encodes and reinterprets the integer values
// carried by constant objects.
package constval

import (
	"math/big"
	"strings"

	"hdlgraph/internal/decompile"
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// MaxWidth is the widest integer evaluated. Sizes, ranges and typespecs
// above it are treated as not constant.
const MaxWidth = schema.MaxWidth

// Value is a sized integer. Signed values may be negative; sized unsigned
// ones never are. Width 0 means unsized and the value is kept as parsed.
type Value struct {
	Int      *big.Int
	Width    int
	Unsigned bool
}

// FromInt64 builds a value of the given width.
func FromInt64(v int64, width int, unsigned bool) Value {
	return Value{Int: big.NewInt(v), Width: width}.Resize(width, unsigned)
}

var radixOf = map[string]int{
	"INT":  10,
	"UINT": 10,
	"DEC":  10,
	"BIN":  2,
	"OCT":  8,
	"HEX":  16,
}

// Parse decodes an encoded value such as "UINT:5" or "HEX:ff". x/z digits,
// reals, strings and sizes above MaxWidth do not parse.
func Parse(encoded string, size int64, constType int64) (Value, bool) {
	if size > MaxWidth {
		return Value{}, false
	}
	prefix, digits := decompile.SplitValue(encoded)
	base, ok := radixOf[prefix]
	if !ok || digits == "" {
		return Value{}, false
	}
	digits = strings.ReplaceAll(digits, "_", "")
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Value{}, false
	}
	width := 0
	if size > 0 {
		width = int(size)
	}
	unsigned := !(prefix == "INT" || (prefix == "DEC" && constType == schema.ConstInt))
	return Value{Int: n, Width: width}.Resize(width, unsigned), true
}

// Of reads the value of a constant or enum constant object.
func Of(a *model.Arena, id model.ObjID) (Value, bool) {
	switch a.Kind(id) {
	case schema.KindConstant, schema.KindEnumConst:
	default:
		return Value{}, false
	}
	encoded, _ := a.Str(id, schema.FValue)
	size, _ := a.Int(id, schema.FSize)
	ct, _ := a.Int(id, schema.FConstType)
	return Parse(encoded, size, ct)
}

// Int64 returns v when it fits.
func (v Value) Int64() (int64, bool) {
	if v.Int == nil || !v.Int.IsInt64() {
		return 0, false
	}
	return v.Int.Int64(), true
}

func (v Value) IsZero() bool { return v.Int == nil || v.Int.Sign() == 0 }

// Resize reinterprets v as a width-bit value: it is reduced modulo
// 2^width and, when signed, the top bit becomes the sign. Width 0 keeps
// the value. Callers bound width by MaxWidth.
func (v Value) Resize(width int, unsigned bool) Value {
	n := new(big.Int)
	if v.Int != nil {
		n.Set(v.Int)
	}
	if width > 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
		n.Mod(n, mod)
		if !unsigned && n.Bit(width-1) == 1 {
			n.Sub(n, mod)
		}
	}
	return Value{Int: n, Width: width, Unsigned: unsigned}
}

// Equal compares value, width and signedness.
func (v Value) Equal(o Value) bool {
	if v.Width != o.Width || v.Unsigned != o.Unsigned {
		return false
	}
	x, y := v.Int, o.Int
	if x == nil {
		x = new(big.Int)
	}
	if y == nil {
		y = new(big.Int)
	}
	return x.Cmp(y) == 0
}

// Bounds returns the smallest and largest value a width-bit integer can
// hold. ok is false for width 0.
func Bounds(width int, unsigned bool) (lo, hi *big.Int, ok bool) {
	if width <= 0 {
		return nil, nil, false
	}
	if unsigned {
		hi = new(big.Int).Lsh(big.NewInt(1), uint(width))
		return new(big.Int), hi.Sub(hi, big.NewInt(1)), true
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	lo = new(big.Int).Neg(half)
	hi = half.Sub(half, big.NewInt(1))
	return lo, hi, true
}

// Fits reports whether n is representable without truncation.
func Fits(n *big.Int, width int, unsigned bool) bool {
	lo, hi, ok := Bounds(width, unsigned)
	if !ok {
		return true
	}
	return n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0
}

// Encode returns the value string and constant type recorded on a constant
// object.
func (v Value) Encode() (string, int64) {
	s := "0"
	if v.Int != nil {
		s = v.Int.String()
	}
	if v.Unsigned {
		return "UINT:" + s, schema.ConstUInt
	}
	return "INT:" + s, schema.ConstInt
}

// New allocates a constant object holding v. Location is copied from like
// when it is alive.
func New(a *model.Arena, v Value, like model.ObjID) model.ObjID {
	id := a.Make(schema.KindConstant)
	encoded, ct := v.Encode()
	a.SetStr(id, schema.FValue, encoded)
	a.SetInt(id, schema.FConstType, ct)
	a.SetInt(id, schema.FSize, int64(v.Width))
	if a.Alive(like) {
		a.SetLoc(id, a.Loc(like))
	}
	return id
}
