package logger

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// ANSI color codes for console output
const (
	ColorReset        = "\033[0m"
	ColorCyan         = "\033[36m"
	ColorGreen        = "\033[32m"
	ColorBrightRed    = "\033[91m"
	ColorBrightYellow = "\033[93m"
	ColorBrightGray   = "\033[90m"
)

// Column widths for better alignment
const (
	ComponentNameWidth = 20 // Fixed width for component names
	LogLevelWidth      = 7  // Fixed width for log levels (ERROR, WARN, etc.)
)

// LogEntry represents a single log entry
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]string
}

// Logger provides structured logging with streaming support
type Logger struct {
	component string
	version   string

	mu             sync.RWMutex
	subscribers    []chan LogEntry
	colorEnabled   bool
	disableConsole bool
}

// New creates a new logger instance
func New(component, version string) *Logger {
	return &Logger{
		component:    component,
		version:      version,
		subscribers:  make([]chan LogEntry, 0),
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

// getColorForLevel returns the appropriate color for a log level
func (l *Logger) getColorForLevel(level string) string {
	if !l.colorEnabled {
		return ""
	}

	switch level {
	case "DEBUG":
		return ColorBrightGray
	case "INFO":
		return ColorGreen
	case "WARN":
		return ColorBrightYellow
	case "ERROR", "FATAL":
		return ColorBrightRed
	default:
		return ColorReset
	}
}

// formatComponent truncates and pads the component name for consistent column width
func formatComponent(component string) string {
	if len(component) > ComponentNameWidth {
		return component[:ComponentNameWidth-1] + "…"
	}
	return fmt.Sprintf("%-*s", ComponentNameWidth, component)
}

// formatLogLevel pads log level for consistent column width
func formatLogLevel(level string) string {
	return fmt.Sprintf("%-*s", LogLevelWidth, level)
}

// Subscribe returns a channel to receive log entries
func (l *Logger) Subscribe() <-chan LogEntry {
	ch := make(chan LogEntry, 100)

	l.mu.Lock()
	l.subscribers = append(l.subscribers, ch)
	l.mu.Unlock()

	return ch
}

// DisableConsoleOutput disables console output when entries stream elsewhere
func (l *Logger) DisableConsoleOutput() {
	l.mu.Lock()
	l.disableConsole = true
	l.mu.Unlock()
}

// EnableConsoleOutput enables console output (default behavior)
func (l *Logger) EnableConsoleOutput() {
	l.mu.Lock()
	l.disableConsole = false
	l.mu.Unlock()
}

func (l *Logger) log(level, message string, fields map[string]string) {
	now := time.Now()
	entry := LogEntry{
		Time:    now,
		Level:   level,
		Message: message,
		Fields:  fields,
	}

	l.mu.RLock()
	shouldOutputToConsole := !l.disableConsole
	l.mu.RUnlock()

	if shouldOutputToConsole {
		timestamp := now.Format("2006-01-02 15:04:05.000")

		color := l.getColorForLevel(level)
		resetColor := ""
		if l.colorEnabled {
			resetColor = ColorReset
		}

		consoleLogLine := fmt.Sprintf("%s[%s] [%s] [%s%s%s] %s%s",
			ColorCyan, timestamp, formatComponent(l.component), color, formatLogLevel(level), resetColor, message, resetColor)

		fmt.Println(consoleLogLine)
	}

	// Always send to subscribers if any
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

// Debug logs a debug message with optional formatting
func (l *Logger) Debug(message string, args ...interface{}) {
	if len(args) > 0 {
		l.log("DEBUG", fmt.Sprintf(message, args...), nil)
	} else {
		l.log("DEBUG", message, nil)
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", fmt.Sprintf(format, args...), nil)
}

// Info logs an info message with optional formatting
func (l *Logger) Info(message string, args ...interface{}) {
	if len(args) > 0 {
		l.log("INFO", fmt.Sprintf(message, args...), nil)
	} else {
		l.log("INFO", message, nil)
	}
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log("INFO", fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message with optional formatting
func (l *Logger) Warn(message string, args ...interface{}) {
	if len(args) > 0 {
		l.log("WARN", fmt.Sprintf(message, args...), nil)
	} else {
		l.log("WARN", message, nil)
	}
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log("WARN", fmt.Sprintf(format, args...), nil)
}

// Error logs an error message with optional formatting
func (l *Logger) Error(message string, args ...interface{}) {
	if len(args) > 0 {
		l.log("ERROR", fmt.Sprintf(message, args...), nil)
	} else {
		l.log("ERROR", message, nil)
	}
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", fmt.Sprintf(format, args...), nil)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) {
	l.log("FATAL", message, nil)
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log("FATAL", fmt.Sprintf(format, args...), nil)
	os.Exit(1)
}

// WithFields logs a message with additional fields
func (l *Logger) WithFields(fields map[string]string) *LogContext {
	return &LogContext{
		logger: l,
		fields: fields,
	}
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
