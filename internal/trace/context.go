package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is what nested spans inherit: the parent span and the
// worker lane.
type SpanContext struct {
	SpanID uint64
	Lane   uint32
}

type spanCtxKey struct{}

// CurrentSpan returns the span context of ctx, or the zero SpanContext.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches sc to ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// WithLane tags every span started below ctx with a worker lane.
func WithLane(ctx context.Context, lane uint32) context.Context {
	sc := CurrentSpan(ctx)
	sc.Lane = lane
	return WithSpanContext(ctx, sc)
}

// Start opens a span under the span recorded in ctx and returns a context
// carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	sp := Begin(FromContext(ctx), scope, name, parent)
	if sp.ID() == 0 {
		return ctx, sp
	}
	return WithSpanContext(ctx, SpanContext{SpanID: sp.ID(), Lane: parent.Lane}), sp
}

// Point emits an instant event under the span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	PointTo(FromContext(ctx), scope, name, detail, CurrentSpan(ctx))
}
