package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/innodoc/innoconv-mintmod/internal/logging"
)

// levelRank orders levels for filtering.
var levelRank = map[string]int{
	logging.LevelDebug:    0,
	logging.LevelInfo:     1,
	logging.LevelWarning:  2,
	logging.LevelError:    3,
	logging.LevelCritical: 4,
}

var levelColors = map[string]*color.Color{
	logging.LevelDebug:    color.New(color.FgHiBlack),
	logging.LevelInfo:     color.New(color.FgCyan),
	logging.LevelWarning:  color.New(color.FgYellow),
	logging.LevelError:    color.New(color.FgRed),
	logging.LevelCritical: color.New(color.FgRed, color.Bold),
}

// textLogger writes colored human-readable log lines.
type textLogger struct {
	w        io.Writer
	minLevel string
}

func (l *textLogger) Log(level, message string) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}
	prefix := level
	if c, ok := levelColors[level]; ok {
		prefix = c.Sprint(level)
	}
	fmt.Fprintf(l.w, "%s %s\n", prefix, message)
}

// filteredLogger drops messages below minLevel before delegating.
type filteredLogger struct {
	next     logging.Logger
	minLevel string
}

func (l *filteredLogger) Log(level, message string) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}
	l.next.Log(level, message)
}

// newLogger builds the CLI logger from the output flags.
func newLogger(w io.Writer, flags *cliFlags) logging.Logger {
	minLevel := logging.LevelInfo
	if flags.verbose {
		minLevel = logging.LevelDebug
	}
	if flags.quiet {
		minLevel = logging.LevelError
	}
	if flags.jsonLog {
		return &filteredLogger{next: logging.NewJSONLogger(w), minLevel: minLevel}
	}
	return &textLogger{w: w, minLevel: minLevel}
}
