// Package trace is the structured event log of hdlgraph.
//
// A driver run, each file of a batch, each pass and save/restore open a
// span; spans nest through the context and are written by one of the
// tracers: Nop, StreamTracer (file or stderr, text/NDJSON/chrome),
// RingTracer (last N events, dumped when a command fails) and MultiTracer.
//
// Levels select the finest scope that is written: phase shows runs and
// files, detail adds passes, debug adds per-object points. At error level
// nothing is streamed, but the ring still records passes.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "lint")
//	defer span.End("")
//
// Worker goroutines of the driver tag their context with WithLane so that
// concurrent files end up on separate rows of a chrome trace.
package trace
