package util

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	currentLogLevel = LevelInfo
	useColors       = term.IsTerminal(int(os.Stderr.Fd()))
)

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		currentLogLevel = LevelDebug
	}
}

// SetQuiet enables quiet mode (errors only)
func SetQuiet(quiet bool) {
	if quiet {
		currentLogLevel = LevelError
	}
}

// SetColors enables or disables colored output
func SetColors(enabled bool) {
	useColors = enabled
}

func colorize(color string, text string) string {
	if !useColors {
		return text
	}
	return color + text + "\033[0m"
}

func logf(level LogLevel, color, tag, format string, args ...interface{}) {
	if currentLogLevel > level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	stamp := time.Now().Format("15:04:05")
	fmt.Fprintf(os.Stderr, "%s %s %s\n", colorize(color, stamp), tag, msg)
}

// DebugLog logs debug messages
func DebugLog(format string, args ...interface{}) {
	logf(LevelDebug, "\033[90m", "[DEBUG]", format, args...)
}

// InfoLog logs informational messages
func InfoLog(format string, args ...interface{}) {
	logf(LevelInfo, "\033[36m", "[INFO] ", format, args...)
}

// WarnLog logs warning messages
func WarnLog(format string, args ...interface{}) {
	logf(LevelWarn, "\033[33m", "[WARN] ", format, args...)
}

// ErrorLog logs error messages
func ErrorLog(format string, args ...interface{}) {
	logf(LevelError, "\033[31m", "[ERROR]", format, args...)
}

// SuccessLog logs success messages (always shown unless quiet)
func SuccessLog(format string, args ...interface{}) {
	logf(LevelInfo, "\033[32m", "[OK]   ", format, args...)
}
