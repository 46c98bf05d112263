package fuzztests

import (
	"bytes"
	"context"
	"testing"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/serial"
	"hdlgraph/internal/testkit"
)

// maxFuzzInput bounds a single input so one case stays fast.
const maxFuzzInput = 64 << 10

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

// graphSeeds returns saved sample graphs.
func graphSeeds(tb testing.TB) [][]byte {
	tb.Helper()
	builders := []func(a *model.Arena){
		func(a *model.Arena) { testkit.BuildDesign1(a) },
		func(a *model.Arena) { testkit.BuildAllKinds(a) },
		recursiveCall,
		oversizedConstant,
	}
	out := make([][]byte, 0, len(builders))
	for _, build := range builders {
		a := model.NewArena(model.Hints{})
		build(a)
		var buf bytes.Buffer
		if err := serial.SaveTo(context.Background(), a, &buf); err != nil {
			tb.Fatalf("save seed: %v", err)
		}
		out = append(out, buf.Bytes())
	}
	return out
}

// addGraphSeeds adds every sample graph, plus prefixes of it so the
// truncation paths are in the corpus too.
func addGraphSeeds(f *testing.F) {
	for _, seed := range graphSeeds(f) {
		f.Add(seed)
		for _, n := range []int{0, 1, 8, len(seed) / 2, len(seed) - 1} {
			if n >= 0 && n < len(seed) {
				f.Add(clamp(seed[:n]))
			}
		}
	}
}

// recursiveCall builds f returning f(1), called from a parameter: the only
// cycle runs through the call's function link.
func recursiveCall(a *model.Arena) {
	b := model.NewBuilder(a, "rec.sv")
	m := b.Module(b.Design("rec"), "top", true)
	fn := b.Function(m, "f", b.LogicTypespec(model.NoObjID, 8, false), model.NoObjID)
	a.SetChild(fn, schema.FStmt, b.Return(b.Call(fn, b.Int(1))))
	b.Parameter(m, "p", b.Call(fn, b.Int(2)))
}

// oversizedConstant saves a constant whose size restore must refuse.
func oversizedConstant(a *model.Arena) {
	b := model.NewBuilder(a, "big.sv")
	m := b.Module(b.Design("big"), "top", true)
	c := b.Constant(1, 8, false)
	a.SetInt(c, schema.FSize, 1<<40)
	b.Parameter(m, "p", c)
}
