package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hdlgraph/internal/trace"
)

var (
	// commandCleanup stops the tracer and profilers of the running command.
	commandCleanup func()
	activeTracer   trace.Tracer = trace.Nop
)

// dumpTraceRing writes the in-memory trace of a failed command, if the
// tracer keeps one.
func dumpTraceRing(w io.Writer) {
	ring, ok := trace.FindRing(activeTracer)
	if !ok || ring.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "trace: last %d events\n", ring.Len())
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func runCleanup() {
	if c := commandCleanup; c != nil {
		commandCleanup = nil
		c()
	}
}

// setupTracing creates the tracer described by s and attaches it to the
// command context. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command, s settings) (func(), error) {
	cfg := s.trace

	// an explicit output with no level traces phases
	if cfg.Level == trace.LevelOff && cfg.OutputPath != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Level == trace.LevelOff {
		activeTracer = trace.Nop
		ctx := trace.WithTracer(cmd.Context(), trace.Nop)
		cmd.SetContext(ctx)
		return func() {}, nil
	}

	// error level streams nothing; keep a ring for the failure dump
	if cfg.Level == trace.LevelError && cfg.Mode == trace.ModeStream {
		cfg.Mode = trace.ModeRing
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	activeTracer = tracer
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if cfg.Heartbeat > 0 {
		heartbeat = trace.StartHeartbeat(tracer, cfg.Heartbeat)
	}

	cleanup := func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
		activeTracer = trace.Nop
	}
	return cleanup, nil
}
