// Package logger provides run logging for the pointhist CLI.
// Warnings and errors always reach the console; debug and info messages
// are shown only when verbose mode is enabled via the --verbose flag.
// When a log file is opened, every message is additionally written to it
// with a timestamp, regardless of the verbose setting.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	logFile *os.File
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the console writer for log messages.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// OpenLogFile starts mirroring every message to a log file in dir,
// creating the directory as needed. Messages are appended across runs.
func OpenLogFile(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

// Close stops file logging and releases the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Path returns the open log file's path, or empty when file logging is off.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

// log writes one formatted message. Caller must hold at least a read lock.
func log(level, format string, toConsole bool, args ...any) {
	msg := fmt.Sprintf("["+level+"] "+format+"\n", args...)
	if toConsole {
		fmt.Fprint(output, msg)
	}
	if logFile != nil {
		fmt.Fprintf(logFile, "%s %s", time.Now().Format("2006-01-02 15:04:05"), msg)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log("DEBUG", format, verbose, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
	if logFile != nil {
		fmt.Fprintf(logFile, "%s === %s ===\n", time.Now().Format("2006-01-02 15:04:05"), name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log("INFO", format, verbose, args...)
}

// Warn prints a warning message. Warnings are always shown.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log("WARN", format, true, args...)
}

// Error prints an error message. Errors are always shown.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log("ERROR", format, true, args...)
}
