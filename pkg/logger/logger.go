// Package logger provides leveled console logging with optional subscriber
// streaming. Providers take a *Logger but tolerate nil, so library consumers
// pay nothing when they bring their own logging.
package logger

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ANSI color codes for console output
const (
	colorReset        = "\033[0m"
	colorCyan         = "\033[36m"
	colorGreen        = "\033[32m"
	colorBrightRed    = "\033[91m"
	colorBrightYellow = "\033[93m"
	colorBrightGray   = "\033[90m"
)

// LogEntry represents a single log entry
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
}

// Logger provides leveled logging with streaming support
type Logger struct {
	component string

	mu             sync.RWMutex
	subscribers    []chan LogEntry
	colorEnabled   bool
	disableConsole bool
	debugEnabled   bool
}

// New creates a new logger instance for the named component.
func New(component string) *Logger {
	return &Logger{
		component:    component,
		colorEnabled: isTerminal(),
	}
}

// isTerminal checks if we're outputting to a terminal (for color support)
func isTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func colorForLevel(level string) string {
	switch level {
	case "DEBUG":
		return colorBrightGray
	case "INFO":
		return colorGreen
	case "WARN":
		return colorBrightYellow
	case "ERROR":
		return colorBrightRed
	default:
		return colorReset
	}
}

// Subscribe returns a channel receiving every log entry. Slow subscribers
// drop entries rather than block the logging path.
func (l *Logger) Subscribe() <-chan LogEntry {
	ch := make(chan LogEntry, 100)

	l.mu.Lock()
	l.subscribers = append(l.subscribers, ch)
	l.mu.Unlock()

	return ch
}

// EnableDebug turns DEBUG-level output on; it is off by default.
func (l *Logger) EnableDebug() {
	l.mu.Lock()
	l.debugEnabled = true
	l.mu.Unlock()
}

// DisableConsoleOutput stops console printing; subscribers still receive
// every entry.
func (l *Logger) DisableConsoleOutput() {
	l.mu.Lock()
	l.disableConsole = true
	l.mu.Unlock()
}

func (l *Logger) log(level, message string, fields map[string]string) {
	if l == nil {
		return
	}

	l.mu.RLock()
	toConsole := !l.disableConsole
	debugOn := l.debugEnabled
	l.mu.RUnlock()

	if level == "DEBUG" && !debugOn {
		return
	}

	now := time.Now()
	entry := LogEntry{Time: now, Level: level, Message: message, Fields: fields}

	if toConsole {
		color, reset := "", ""
		if l.colorEnabled {
			color, reset = colorForLevel(level), colorReset
		}
		fmt.Printf("%s[%s] [%-10s]%s [%s%-5s%s] %s\n",
			colorCyan, now.Format("2006-01-02 15:04:05.000"), l.component, reset, color, level, reset, message)
	}

	l.mu.RLock()
	for _, ch := range l.subscribers {
		select {
		case ch <- entry:
		default:
			// Skip if channel is full
		}
	}
	l.mu.RUnlock()
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log("INFO", fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log("WARN", fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", fmt.Sprintf(format, args...), nil)
}

// WithFields logs a message with additional fields
func (l *Logger) WithFields(fields map[string]string) *LogContext {
	return &LogContext{logger: l, fields: fields}
}

// LogContext provides field-based logging
type LogContext struct {
	logger *Logger
	fields map[string]string
}

func (c *LogContext) Info(message string) {
	c.logger.log("INFO", message, c.fields)
}

func (c *LogContext) Error(message string) {
	c.logger.log("ERROR", message, c.fields)
}
