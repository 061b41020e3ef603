// Package logger provides the named, colored loggers handed to each component.
package logger

import (
	"errors"
	"io"
	"log"
)

const (
	errorColor = "\033[31m"
	warnColor  = "\033[33m"
	infoColor  = "\033[32m"
	colorReset = "\033[0m"
)

// Logger is what components log through.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

var ErrEmptyName = errors.New("logger name must not be empty")

// ColorLogger writes lines of the form "[NAME] [LEVEL] message" with the
// name in the logger's color and the level in its severity color.
type ColorLogger struct {
	prefix string
	out    *log.Logger
}

var _ Logger = &ColorLogger{}

// New creates a ColorLogger for the named component writing to w.
func New(name, color string, w io.Writer) (*ColorLogger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &ColorLogger{
		prefix: color + "[" + name + "]" + colorReset,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *ColorLogger) Info(msg string) {
	l.print(infoColor, "INFO", msg)
}

// Warning logs something unexpected that did not fail the operation.
func (l *ColorLogger) Warning(msg string) {
	l.print(warnColor, "WARNING", msg)
}

// Error logs a failed operation.
func (l *ColorLogger) Error(msg string) {
	l.print(errorColor, "ERROR", msg)
}

func (l *ColorLogger) print(color, level, msg string) {
	l.out.Printf("%s %s[%s]%s %s", l.prefix, color, level, colorReset, msg)
}

// Nop discards everything. Useful where a component needs a Logger but the
// caller has nothing to say.
type Nop struct{}

func (Nop) Info(string)    {}
func (Nop) Warning(string) {}
func (Nop) Error(string)   {}
