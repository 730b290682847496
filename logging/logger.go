package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Verbosity levels. The default is Normal; --quiet drops to Silent and
// each --verbose raises the level by one.
const (
	Silent = 0
	Normal = 1
	Detail = 2
)

// Logger is the diagnostic side channel of the option parser. Messages
// carry a minimum verbosity and are dropped when the logger is below it.
// It never writes to stdout, which is reserved for machine-readable
// output such as --print-environment.
type Logger struct {
	log       *logrus.Logger
	verbosity int
}

// New creates a logger writing to stderr at Normal verbosity.
func New() *Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput creates a logger writing to w. Tests use this to capture
// diagnostics.
func NewWithOutput(w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.InfoLevel)

	showLevel := false
	if f, ok := w.(*os.File); ok {
		showLevel = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	log.SetFormatter(&CommentFormatter{ShowLevel: showLevel})

	return &Logger{log: log, verbosity: Normal}
}

// Verbosity returns the current verbosity counter.
func (l *Logger) Verbosity() int {
	return l.verbosity
}

// SetVerbosity sets the verbosity counter.
func (l *Logger) SetVerbosity(v int) {
	l.verbosity = v
}

// Quieter silences the logger (--quiet).
func (l *Logger) Quieter() {
	l.verbosity = Silent
}

// Louder raises the verbosity by one (--verbose).
func (l *Logger) Louder() {
	l.verbosity++
}

// Warnf reports a user-visible diagnostic, shown at Normal verbosity and
// above.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.verbosity < Normal {
		return
	}
	l.log.Warnf(format, args...)
}

// Detailf reports a secondary diagnostic, shown only at Detail verbosity
// and above.
func (l *Logger) Detailf(format string, args ...interface{}) {
	if l.verbosity < Detail {
		return
	}
	l.log.Infof(format, args...)
}
