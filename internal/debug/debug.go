// Package debug provides process-wide diagnostic output for the i308 tools.
//
// Debug lines are printed only when debug mode is enabled (--debug).
// Warnings are printed unless quiet mode is set, since they report recoverable
// failures (a skipped file, a failed download) the user should see.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	quiet   bool
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

const timestampFormat = "15:04:05.000"

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetQuiet suppresses warnings. Debug output is controlled separately by SetDebug.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput redirects all output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// emit writes one line tagged with level. Callers check enablement first.
func emit(level, color, msg string) {
	mu.RLock()
	w, useColor := out, !noColor
	mu.RUnlock()

	timestamp := time.Now().Format(timestampFormat)
	if useColor {
		fmt.Fprintf(w, "%s[%s]%s %s%s%s %s\n",
			color, level, colorReset, colorGray, timestamp, colorReset, msg)
	} else {
		fmt.Fprintf(w, "[%s] %s %s\n", level, timestamp, msg)
	}
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	emit("DEBUG", colorCyan, fmt.Sprintf(format, args...))
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// Warn prints a warning unless quiet mode is set.
func Warn(format string, args ...interface{}) {
	mu.RLock()
	q := quiet
	mu.RUnlock()
	if q {
		return
	}
	emit("WARN", colorYellow, fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	emit("DEBUG", colorCyan, "=== "+section+" ===")
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	emit("DEBUG", colorCyan, fmt.Sprintf("%s = %v", key, value))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit("DEBUG", colorCyan, fmt.Sprintf("%s:\n%s", key, jsonBytes))
}
