package emu

import (
	"fmt"
	"io"
)

// Level is the severity of a single log sink call.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// Sink is the single event-sink interface Emu reports warnings through
// (protected-range writes, stack-limit violations); the CPU, bus and
// peripherals do not log and import no logging package. The default sink
// (discardSink) writes nothing; NewWriterSink gives a line-oriented text
// implementation for cmd/ tools and tests.
type Sink func(level Level, component, format string, args ...any)

func discardSink(Level, string, string, ...any) {}

// NewWriterSink writes one line per call to w: the lowercase level and the
// component, each in a left-aligned padded column, then the message.
func NewWriterSink(w io.Writer) Sink {
	return func(level Level, component, format string, args ...any) {
		fmt.Fprintf(w, "%-5s %-6s %s\n", level, component, fmt.Sprintf(format, args...))
	}
}
