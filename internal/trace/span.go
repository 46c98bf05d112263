package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// Span is one traced operation. A disabled span is inert; every method is
// safe on it.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  SpanContext
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled() && s.id != 0
}

// Begin starts a span under parent and emits SpanBegin.
func Begin(t Tracer, scope Scope, name string, parent SpanContext) *Span {
	if t == nil || !t.Enabled() || !t.Level().records(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent.SpanID,
		Lane:     s.parent.Lane,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

// End emits SpanEnd and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	return now.Sub(s.started)
}

// EndErr ends the span with "ok" or the error text.
func (s *Span) EndErr(err error) time.Duration {
	if err != nil {
		return s.End(err.Error())
	}
	return s.End("ok")
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Count records a counter such as visited objects on the end event.
func (s *Span) Count(key string, n int) *Span {
	if !s.live() {
		return s
	}
	return s.WithExtra(key, strconv.Itoa(n))
}

// ID returns the span ID, 0 for disabled spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// PointTo emits an instant event on t under parent.
func PointTo(t Tracer, scope Scope, name, detail string, parent SpanContext) {
	if t == nil || !t.Enabled() || !t.Level().records(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent.SpanID,
		Lane:     parent.Lane,
		Name:     name,
		Detail:   detail,
	})
}
