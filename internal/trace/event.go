package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. A scope contains every scope with
// a larger value: a driver run holds files, a file holds passes, a pass
// touches objects.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command or driver run
	ScopeFile                    // one persisted graph inside a batch
	ScopePass                    // restore, save, lint, adjust, walk
	ScopeObject                  // single object or record
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopePass:
		return "pass"
	case ScopeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	// Lane is the driver worker slot the event belongs to; 0 outside the
	// worker pool.
	Lane   uint32
	Name   string // "restore", "lint", "file:top.hgb"
	Detail string
	Extra  map[string]string
}
