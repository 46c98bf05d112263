package adjust

import (
	"math/big"

	"hdlgraph/internal/constval"
	"hdlgraph/internal/schema"
)

// integer is the width given to unsized operands.
const integer = 32

type evalStatus uint8

const (
	evalOK evalStatus = iota
	evalNotConstant
	evalDivByZero
)

func width(v constval.Value) int {
	if v.Width == 0 {
		return integer
	}
	return v.Width
}

// bits is the two's complement bit pattern of v at w bits.
func bits(v constval.Value, w int) *big.Int {
	return v.Resize(w, true).Int
}

func boolValue(b bool) constval.Value {
	if b {
		return constval.FromInt64(1, 1, true)
	}
	return constval.FromInt64(0, 1, true)
}

// evalOp applies op to constant operands with Verilog sizing: arithmetic
// and bitwise results take the widest operand and are signed only when
// every operand is; comparisons, logical and reduction operators yield one
// unsigned bit.
func evalOp(op int64, vs []constval.Value) (constval.Value, evalStatus) {
	switch {
	case len(vs) == 0:
		return constval.Value{}, evalNotConstant
	case op == schema.OpConcat:
		return concat(vs)
	case op == schema.OpMultiConcat:
		return replicate(vs)
	}
	w, signed := 0, true
	for _, v := range vs {
		w = max(w, width(v))
		signed = signed && !v.Unsigned
	}
	result := func(n *big.Int) (constval.Value, evalStatus) {
		return constval.Value{Int: n, Width: w}.Resize(w, !signed), evalOK
	}
	x := vs[0]
	switch len(vs) {
	case 1:
		switch op {
		case schema.OpMinus:
			return result(new(big.Int).Neg(x.Int))
		case schema.OpPlus:
			return result(x.Int)
		case schema.OpNot:
			return boolValue(x.IsZero()), evalOK
		case schema.OpBitNeg:
			return result(new(big.Int).Not(x.Int))
		case schema.OpUnaryAnd, schema.OpUnaryNand, schema.OpUnaryOr, schema.OpUnaryNor,
			schema.OpUnaryXor, schema.OpUnaryXnor:
			return reduce(op, bits(x, w), w), evalOK
		}
		return constval.Value{}, evalNotConstant
	case 2:
		return evalBinary(op, x, vs[1], w, signed)
	case 3:
		if op == schema.OpCondition {
			a, b := vs[1], vs[2]
			cw := max(width(a), width(b))
			pick := b
			if !x.IsZero() {
				pick = a
			}
			return pick.Resize(cw, a.Unsigned || b.Unsigned), evalOK
		}
	}
	return constval.Value{}, evalNotConstant
}

func reduce(op int64, pattern *big.Int, w int) constval.Value {
	ones := 0
	for i := 0; i < w; i++ {
		ones += int(pattern.Bit(i))
	}
	switch op {
	case schema.OpUnaryAnd:
		return boolValue(ones == w)
	case schema.OpUnaryNand:
		return boolValue(ones != w)
	case schema.OpUnaryOr:
		return boolValue(ones != 0)
	case schema.OpUnaryNor:
		return boolValue(ones == 0)
	case schema.OpUnaryXor:
		return boolValue(ones%2 == 1)
	}
	return boolValue(ones%2 == 0)
}

func evalBinary(op int64, x, y constval.Value, w int, signed bool) (constval.Value, evalStatus) {
	result := func(n *big.Int) (constval.Value, evalStatus) {
		return constval.Value{Int: n, Width: w}.Resize(w, !signed), evalOK
	}
	// operands are first brought to the common width and signedness
	cx, cy := x.Resize(w, !signed).Int, y.Resize(w, !signed).Int
	switch op {
	case schema.OpAdd:
		return result(new(big.Int).Add(cx, cy))
	case schema.OpSub:
		return result(new(big.Int).Sub(cx, cy))
	case schema.OpMult:
		return result(new(big.Int).Mul(cx, cy))
	case schema.OpDiv, schema.OpMod:
		if cy.Sign() == 0 {
			return constval.Value{}, evalDivByZero
		}
		if op == schema.OpDiv {
			return result(new(big.Int).Quo(cx, cy))
		}
		return result(new(big.Int).Rem(cx, cy))
	case schema.OpPower:
		if cy.Sign() < 0 {
			return constval.Value{}, evalNotConstant
		}
		mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
		return result(new(big.Int).Exp(cx, cy, mod))
	case schema.OpBitAnd:
		return result(new(big.Int).And(bits(x, w), bits(y, w)))
	case schema.OpBitOr:
		return result(new(big.Int).Or(bits(x, w), bits(y, w)))
	case schema.OpBitXor:
		return result(new(big.Int).Xor(bits(x, w), bits(y, w)))
	case schema.OpBitXnor:
		return result(new(big.Int).Not(new(big.Int).Xor(bits(x, w), bits(y, w))))
	case schema.OpLogAnd:
		return boolValue(!x.IsZero() && !y.IsZero()), evalOK
	case schema.OpLogOr:
		return boolValue(!x.IsZero() || !y.IsZero()), evalOK
	case schema.OpEq, schema.OpCaseEq:
		return boolValue(cx.Cmp(cy) == 0), evalOK
	case schema.OpNeq, schema.OpCaseNeq:
		return boolValue(cx.Cmp(cy) != 0), evalOK
	case schema.OpLt:
		return boolValue(cx.Cmp(cy) < 0), evalOK
	case schema.OpLe:
		return boolValue(cx.Cmp(cy) <= 0), evalOK
	case schema.OpGt:
		return boolValue(cx.Cmp(cy) > 0), evalOK
	case schema.OpGe:
		return boolValue(cx.Cmp(cy) >= 0), evalOK
	case schema.OpLShift, schema.OpArithLShift, schema.OpRShift, schema.OpArithRShift:
		return shift(op, x, y)
	}
	return constval.Value{}, evalNotConstant
}

// shift keeps the width and signedness of the left operand; the amount is
// always treated as unsigned.
func shift(op int64, x, y constval.Value) (constval.Value, evalStatus) {
	w := width(x)
	amount := bits(y, width(y))
	n := w
	if amount.IsInt64() && amount.Int64() < int64(w) {
		n = int(amount.Int64())
	}
	var out *big.Int
	switch {
	case op == schema.OpLShift || op == schema.OpArithLShift:
		out = new(big.Int).Lsh(bits(x, w), uint(n))
	case op == schema.OpArithRShift && !x.Unsigned:
		out = new(big.Int).Rsh(x.Resize(w, false).Int, uint(n))
	default:
		out = new(big.Int).Rsh(bits(x, w), uint(n))
	}
	return constval.Value{Int: out, Width: w}.Resize(w, x.Unsigned), evalOK
}

func concat(vs []constval.Value) (constval.Value, evalStatus) {
	out, w := new(big.Int), 0
	for _, v := range vs {
		if v.Width == 0 {
			return constval.Value{}, evalNotConstant
		}
		w += v.Width
		if w > constval.MaxWidth {
			return constval.Value{}, evalNotConstant
		}
		out.Lsh(out, uint(v.Width)).Or(out, bits(v, v.Width))
	}
	return constval.Value{Int: out, Width: w, Unsigned: true}, evalOK
}

func replicate(vs []constval.Value) (constval.Value, evalStatus) {
	count, ok := vs[0].Int64()
	if !ok || count <= 0 {
		return constval.Value{}, evalNotConstant
	}
	inner, st := concat(vs[1:])
	if st != evalOK {
		return inner, st
	}
	if int64(inner.Width)*count > constval.MaxWidth {
		return constval.Value{}, evalNotConstant
	}
	parts := make([]constval.Value, count)
	for i := range parts {
		parts[i] = inner
	}
	return concat(parts)
}
