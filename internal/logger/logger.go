// Package logger provides leveled logging for the whole process. Messages go
// to stderr and, optionally, to an append-only log file. The package keeps a
// single global logger built on logrus so that deep call sites (the scanner,
// the monitor) can log without threading a logger through every signature.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// DEBUG level for detailed diagnostic information (verbose mode only)
	DEBUG LogLevel = iota
	// INFO level for general informational messages
	INFO
	// WARNING level for potentially problematic situations
	WARNING
	// ERROR level for errors that still allow the application to continue
	ERROR
)

// Fields is a set of structured key/value pairs attached to a message.
type Fields = logrus.Fields

// TimestampFormat is the layout used for every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// Logger couples a logrus logger with the optional log file it writes to.
type Logger struct {
	level      LogLevel
	fileWriter io.WriteCloser
	logger     *logrus.Logger
}

var globalLogger *Logger

// SetupLogging initializes the global logger.
//
// Messages below level are discarded. If logFile is non-empty the file is
// opened in append mode (created if missing) and every line is written to
// both stderr and the file.
func SetupLogging(level LogLevel, logFile string) error {
	var fileWriter io.WriteCloser
	var output io.Writer = os.Stderr

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		fileWriter = f
		output = io.MultiWriter(os.Stderr, f)
	}

	// Close a previously opened file before replacing the logger.
	_ = Close()
	globalLogger = newLogger(output, level, fileWriter)
	return nil
}

func newLogger(output io.Writer, level LogLevel, fileWriter io.WriteCloser) *Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(PlainFormatter{})
	l.SetLevel(toLogrusLevel(level))

	return &Logger{
		level:      level,
		fileWriter: fileWriter,
		logger:     l,
	}
}

// ParseLevel converts a configuration string into a LogLevel.
// Accepted values are debug, info, warn, warning and error (case-insensitive).
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// String returns the upper-case name printed in log lines.
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Close closes the log file if one was opened. Safe to call repeatedly.
func Close() error {
	if globalLogger != nil && globalLogger.fileWriter != nil {
		err := globalLogger.fileWriter.Close()
		globalLogger.fileWriter = nil
		return err
	}
	return nil
}

// Debug logs a debug-level message (only shown in verbose mode).
func Debug(format string, args ...interface{}) {
	logMessage(DEBUG, nil, format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	logMessage(INFO, nil, format, args...)
}

// Warning logs a warning message.
func Warning(format string, args ...interface{}) {
	logMessage(WARNING, nil, format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	logMessage(ERROR, nil, format, args...)
}

// Enabled reports whether messages at level would be written.
func Enabled(level LogLevel) bool {
	if globalLogger == nil {
		return level > DEBUG
	}
	return level >= globalLogger.level
}

// LogDirWarning logs a directory that could not be listed. It is emitted at
// DEBUG level because unreadable directories are an expected, silent part of
// a search.
//
// Example output:
//
//	2026-01-14 10:23:45 [DEBUG] Skipped directory path=/var/lib/private reason="permission denied"
func LogDirWarning(path string, reason string) {
	logMessage(DEBUG, Fields{"path": path, "reason": reason}, "Skipped directory")
}

// Entry is a message builder carrying structured fields.
type Entry struct {
	fields Fields
}

// WithFields returns an Entry that attaches fields to every message it logs.
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// Debug logs a debug-level message with the entry's fields.
func (e *Entry) Debug(format string, args ...interface{}) {
	logMessage(DEBUG, e.fields, format, args...)
}

// Info logs an informational message with the entry's fields.
func (e *Entry) Info(format string, args ...interface{}) {
	logMessage(INFO, e.fields, format, args...)
}

// Warning logs a warning with the entry's fields.
func (e *Entry) Warning(format string, args ...interface{}) {
	logMessage(WARNING, e.fields, format, args...)
}

// logMessage routes a message to the global logger. Before SetupLogging has
// been called, DEBUG messages are dropped and the rest go to logrus's
// standard logger.
func logMessage(level LogLevel, fields Fields, format string, args ...interface{}) {
	var target *logrus.Logger
	if globalLogger == nil {
		if level == DEBUG {
			return
		}
		target = logrus.StandardLogger()
	} else {
		if level < globalLogger.level {
			return
		}
		target = globalLogger.logger
	}

	target.WithFields(fields).Log(toLogrusLevel(level), fmt.Sprintf(format, args...))
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case DEBUG:
		return logrus.DebugLevel
	case INFO:
		return logrus.InfoLevel
	case WARNING:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

func fromLogrusLevel(level logrus.Level) LogLevel {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return DEBUG
	case logrus.InfoLevel:
		return INFO
	case logrus.WarnLevel:
		return WARNING
	default:
		return ERROR
	}
}

// PlainFormatter renders "<timestamp> [LEVEL] message key=value ...".
// Fields are sorted by key so lines are stable.
type PlainFormatter struct{}

// Format implements logrus.Formatter.
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(entry.Time.Format(TimestampFormat))
	b.WriteString(" [")
	b.WriteString(fromLogrusLevel(entry.Level).String())
	b.WriteString("] ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(entry.Data[k]))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case time.Duration:
		s = val.String()
	case error:
		s = val.Error()
	default:
		s = fmt.Sprint(val)
	}
	if strings.ContainsAny(s, " \t\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
