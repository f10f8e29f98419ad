// Package logging defines the converter's log protocol. The filter and
// postprocessor report progress as JSON lines ({"level":...,"message":...})
// on stderr, the format downstream build tooling already consumes; the CLI
// swaps in a human-readable colored logger.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
)

// Log levels.
const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// Logger receives leveled log messages.
type Logger interface {
	Log(level, message string)
}

// Func adapts a function to the Logger interface.
type Func func(level, message string)

// Log implements Logger.
func (f Func) Log(level, message string) {
	f(level, message)
}

// Nop discards all messages.
var Nop Logger = Func(func(string, string) {})

// JSONLogger writes one JSON object per message.
type JSONLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLogger creates a JSONLogger writing to w. A nil w means stderr.
func NewJSONLogger(w io.Writer) *JSONLogger {
	if w == nil {
		w = os.Stderr
	}
	return &JSONLogger{w: w}
}

// Log implements Logger.
func (l *JSONLogger) Log(level, message string) {
	line, err := json.Marshal(map[string]string{"level": level, "message": message})
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(line, '\n'))
}
