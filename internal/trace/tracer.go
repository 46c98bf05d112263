package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations are goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go: written as they happen, kept in a
// bounded ring for a dump on failure, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode reads a [trace].mode value; empty means stream.
func ParseMode(s string) (StorageMode, error) {
	if s == "" {
		return ModeStream, nil
	}
	if i := slices.Index(modeNames[:], strings.ToLower(s)); i > 0 {
		return StorageMode(i), nil //nolint:gosec // index into modeNames
	}
	return ModeStream, fmt.Errorf("invalid storage mode %q (want stream, ring or both)", s)
}

const defaultRingSize = 4096

// Config describes the tracer New builds. FormatAuto picks the format from
// the OutputPath extension.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format
	// Output overrides OutputPath; "" and "-" both mean stderr.
	Output     io.Writer
	OutputPath string
	RingSize   int
	Heartbeat  time.Duration
}

// formatByExt maps trace file extensions to the format FormatAuto picks.
var formatByExt = map[string]Format{
	".ndjson": FormatNDJSON,
	".json":   FormatChrome,
}

func (c Config) format() Format {
	if c.Format != FormatAuto {
		return c.Format
	}
	if f, ok := formatByExt[filepath.Ext(c.OutputPath)]; ok {
		return f
	}
	return FormatText
}

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	size := cfg.RingSize
	if size <= 0 {
		size = defaultRingSize
	}
	if cfg.Mode == ModeRing {
		return NewRingTracer(size, cfg.Level), nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode %v", cfg.Mode)
	}
	w, err := cfg.open()
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, cfg.format())
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(size, cfg.Level)), nil
}

func (c Config) open() (io.Writer, error) {
	switch {
	case c.Output != nil:
		return c.Output, nil
	case c.OutputPath == "" || c.OutputPath == "-":
		return stderrWriter{}, nil
	}
	f, err := os.Create(c.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("trace output: %w", err)
	}
	return f, nil
}

// stderrWriter is os.Stderr without Close.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return os.Stderr.Write(p) }
