package vpi

import (
	"context"

	"hdlgraph/internal/model"
	"hdlgraph/internal/serial"
)

// Erase deletes the object behind h. Every handle to it goes stale.
func Erase(h *Handle) bool {
	id, err := Check(h)
	if err != nil {
		return false
	}
	return h.a.Erase(id)
}

// Purge empties a. Every handle into a goes stale.
func Purge(a *model.Arena) {
	a.Purge()
}

// Roots returns handles to the recorded roots of a in declaration order.
func Roots(a *model.Arena) []*Handle {
	out := make([]*Handle, 0, len(a.Roots()))
	for _, r := range a.Roots() {
		if h := HandleOf(a, r); h != nil {
			out = append(out, h)
		}
	}
	return out
}

// Restore loads the graph at path into a and returns its root handles in
// saved order. On error a is unchanged.
func Restore(ctx context.Context, a *model.Arena, path string) ([]*Handle, error) {
	if _, err := serial.Restore(ctx, a, path); err != nil {
		return nil, err
	}
	return Roots(a), nil
}

// Save writes the graph reachable from a's roots to path.
func Save(ctx context.Context, a *model.Arena, path string) error {
	return serial.Save(ctx, a, path)
}
