package walk

import (
	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// Hook is called when the walker enters or leaves an object.
type Hook func(w *Walker, id model.ObjID)

// Listener is a pair of per-kind dispatch tables. Nil entries are no-ops,
// so a pass fills in only the kinds it cares about.
type Listener struct {
	Enter [schema.NumKinds]Hook
	Leave [schema.NumKinds]Hook

	// EnterAny and LeaveAny run for every object, before the per-kind hook
	// on enter and after it on leave.
	EnterAny Hook
	LeaveAny Hook
}

// OnEnter sets the enter hook of kinds.
func (l *Listener) OnEnter(h Hook, kinds ...schema.Kind) *Listener {
	for _, k := range kinds {
		if k.Valid() {
			l.Enter[k] = h
		}
	}
	return l
}

// OnLeave sets the leave hook of kinds.
func (l *Listener) OnLeave(h Hook, kinds ...schema.Kind) *Listener {
	for _, k := range kinds {
		if k.Valid() {
			l.Leave[k] = h
		}
	}
	return l
}
