package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

// LogLevel controls which messages a logger emits.
type LogLevel int

const (
	CRITICAL LogLevel = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// ParseLevel converts a string level to a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger Interface
// --------------------------------------------------------------------------

// ILogger is the logging interface used throughout the lock library.
// All library components accept an optional ILogger; a nil logger is
// always safe and simply discards messages.
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// --------------------------------------------------------------------------
// Default Implementation
// --------------------------------------------------------------------------

// shmLogger implements the ILogger interface with custom formatting
type shmLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *shmLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *shmLogger) Debugf(format string, args ...interface{}) {
	if l.level >= DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *shmLogger) Infof(format string, args ...interface{}) {
	if l.level >= INFO {
		l.log("INFO", format, args...)
	}
}

func (l *shmLogger) Warningf(format string, args ...interface{}) {
	if l.level >= WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *shmLogger) Errorf(format string, args ...interface{}) {
	if l.level >= ERROR {
		l.log("ERROR", format, args...)
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *shmLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// New creates a logger named after the component it logs for,
// writing to stdout at the INFO level.
func New(name string) ILogger {
	return NewWithLevel(name, INFO)
}

// NewWithLevel creates a logger with an explicit level.
func NewWithLevel(name string, level LogLevel) ILogger {
	// Create standard logger with custom flags
	stdLogger := log.New(os.Stdout, "", log.Ldate|log.Ltime)

	return &shmLogger{
		name:   name,
		level:  level,
		logger: stdLogger,
	}
}

// --------------------------------------------------------------------------
// Nop Logger
// --------------------------------------------------------------------------

type nopLogger struct{}

func (nopLogger) SetLevel(LogLevel)               {}
func (nopLogger) Debugf(string, ...interface{})   {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{})   {}

// OrNop returns the given logger, or a logger that discards everything
// if logger is nil. Callers can therefore always log unconditionally.
func OrNop(logger ILogger) ILogger {
	if logger == nil {
		return nopLogger{}
	}
	return logger
}
