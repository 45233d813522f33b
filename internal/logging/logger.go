// Package logging provides leveled logging for the redcell CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level controls which messages a Logger emits.
type Level int

const (
	// LevelDebug includes raw engine output and unclassified events.
	LevelDebug Level = iota
	// LevelVerbose includes build milestones and extended table columns.
	LevelVerbose
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarning includes warnings and errors only.
	LevelWarning
	// LevelError includes errors only.
	LevelError
)

// Logger writes leveled messages to a terminal writer and optionally to a
// log file. One Logger is constructed per command invocation and passed
// down explicitly; there is no package-level default.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	file  *os.File
	level Level
}

// New creates a Logger writing to out at the given level.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, level: level}
}

// WithFile mirrors all output to a log file under logDir. Failure to open
// the file is returned but the Logger stays usable without it.
func (l *Logger) WithFile(logDir string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(logDir, "redcell.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file = file
	return nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Level returns the configured level.
func (l *Logger) Level() Level {
	return l.level
}

// IsEnabledFor reports whether messages at the given level are emitted.
// Table renderers use this to pick their column tier.
func (l *Logger) IsEnabledFor(level Level) bool {
	return level >= l.level
}

func (l *Logger) write(tag, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", tag, msg)
	if l.file != nil {
		fmt.Fprintf(l.file, "%s %s %s\n", time.Now().Format("2006/01/02 15:04:05"), tag, msg)
	}
}

// Debug logs diagnostic detail, including unclassified engine events.
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.IsEnabledFor(LevelDebug) {
		l.write("[DEBUG]", format, v...)
	}
}

// Verbose logs extended operational detail such as build milestones.
func (l *Logger) Verbose(format string, v ...interface{}) {
	if l.IsEnabledFor(LevelVerbose) {
		l.write("[VERBOSE]", format, v...)
	}
}

// Info logs a user-facing informational message.
func (l *Logger) Info(format string, v ...interface{}) {
	if l.IsEnabledFor(LevelInfo) {
		l.write("[INFO]", format, v...)
	}
}

// Success logs a user-facing success message.
func (l *Logger) Success(format string, v ...interface{}) {
	if l.IsEnabledFor(LevelInfo) {
		l.write("[SUCCESS]", format, v...)
	}
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(format string, v ...interface{}) {
	if l.IsEnabledFor(LevelWarning) {
		l.write("[WARN]", format, v...)
	}
}

// Error logs a failure.
func (l *Logger) Error(format string, v ...interface{}) {
	if l.IsEnabledFor(LevelError) {
		l.write("[ERROR]", format, v...)
	}
}

// Critical logs an internal-consistency failure. The caller decides how to
// abort; Critical never exits the process itself.
func (l *Logger) Critical(format string, v ...interface{}) {
	l.write("[CRITICAL]", format, v...)
}

// Raw writes text without a level tag or added newline, used for passing
// through engine build output at debug level.
func (l *Logger) Raw(level Level, text string) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, text)
	if l.file != nil {
		fmt.Fprint(l.file, text)
	}
}
