package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// ConsoleLogger writes leveled, timestamped messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	logger *log.Logger
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbose bool) *ConsoleLogger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &ConsoleLogger{logger: newLogger(w, level)}
}

// newLogger formats timestamps as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Base exposes the underlying charmbracelet logger.
func (l *ConsoleLogger) Base() *log.Logger {
	return l.logger
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.logger.Debug(sprintf(format, args...))
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.logger.Info(sprintf(format, args...))
}

// Warn logs a recoverable problem.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.logger.Warn(sprintf(format, args...))
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.logger.Error(sprintf(format, args...))
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Progress tracks the start time of an operation and logs completion with
// elapsed duration. Not safe for concurrent use.
type Progress struct {
	logger pumlicons.Logger
	start  time.Time
}

// NewProgress captures the current time as start.
func NewProgress(l pumlicons.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Done logs msg along with the elapsed time, e.g. "Resolved 842 icons (1.234s)".
func (p *Progress) Done(msg string) {
	p.logger.Info("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

var _ pumlicons.Logger = (*ConsoleLogger)(nil)
