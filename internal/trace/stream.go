package trace

import (
	"io"
	"sync"
)

// chrome trace files are one JSON object wrapping the event array
const (
	chromeOpen  = "{\"traceEvents\":[\n"
	chromeSep   = ",\n"
	chromeClose = "\n]}\n"
)

// StreamTracer renders each accepted event and writes it at once. Write
// errors are ignored.
type StreamTracer struct {
	level  Level
	format Format

	mu      sync.Mutex
	w       io.Writer
	written int
	closed  bool
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{w: w, level: level, format: format}
	if format == FormatChrome {
		io.WriteString(w, chromeOpen) //nolint:errcheck
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	line := FormatEvent(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.format == FormatChrome && t.written > 0 {
		io.WriteString(t.w, chromeSep) //nolint:errcheck
	}
	t.w.Write(line) //nolint:errcheck
	t.written++
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close terminates a chrome array, then flushes and closes the writer.
// Later events are dropped.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	if t.format == FormatChrome {
		io.WriteString(t.w, chromeClose) //nolint:errcheck
	}
	t.mu.Unlock()

	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
