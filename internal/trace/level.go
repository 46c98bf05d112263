package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; the ring is dumped on failure
	LevelPhase        // driver runs and files
	LevelDetail       // plus passes
	LevelDebug        // plus per-object events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a case-insensitive name to a Level.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope a level lets through; 0 lets nothing pass.
func (l Level) maxScope() Scope {
	switch l {
	case LevelPhase:
		return ScopeFile
	case LevelDetail:
		return ScopePass
	case LevelDebug:
		return ScopeObject
	default:
		return 0
	}
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope != 0 && scope <= l.maxScope()
}

// records reports whether spans of scope are created at all. At
// LevelError they are, so a ring can hold them for a failure dump.
func (l Level) records(scope Scope) bool {
	if l == LevelError {
		return scope != 0 && scope <= ScopePass
	}
	return l.ShouldEmit(scope)
}

// accepts is the stream filter: heartbeats always pass.
func (l Level) accepts(ev *Event) bool {
	return ev.Kind == KindHeartbeat || l.ShouldEmit(ev.Scope)
}
