package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// LevelDebug for detailed debug information
	LevelDebug LogLevel = iota
	// LevelInfo for general operational information
	LevelInfo
	// LevelWarning for potentially problematic situations
	LevelWarning
	// LevelError for error conditions
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// logFilePrefix and keptLogFiles implement the documented
// compositor.log.YYYY-MM-DD rotation: one file per day, the three most
// recent kept.
const (
	logFilePrefix = "compositor.log."
	keptLogFiles  = 3
)

var (
	// currentLevel is the current logging level
	currentLevel LogLevel = LevelInfo

	// logger is the standard logger instance
	logger = log.New(os.Stderr, "", log.LstdFlags)

	// logFile is today's rotated log file, if one was opened.
	logFile *os.File

	// debugMode controls whether debug logging is enabled
	debugMode = false
)

// InitLogger initializes the logger with specified options. If logDir
// is non-empty, output is duplicated to a daily-rotating file under it
// (compositor.log.YYYY-MM-DD), and any files beyond the three most
// recent are removed.
func InitLogger(level LogLevel, debugEnabled bool, logDir string) {
	currentLevel = level
	debugMode = debugEnabled

	out := io.Writer(os.Stderr)
	if logDir != "" {
		if f, err := openDailyLogFile(logDir); err == nil {
			logFile = f
			out = io.MultiWriter(os.Stderr, f)
			pruneOldLogFiles(logDir, keptLogFiles)
		}
	}
	logger = log.New(out, "", log.LstdFlags)

	if debugEnabled {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	} else if level == LevelInfo {
		currentLevel = LevelError
	}
}

// openDailyLogFile opens (creating if needed) today's rotated log file
// for append.
func openDailyLogFile(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := logFilePrefix + time.Now().Format("2006-01-02")
	return os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// pruneOldLogFiles deletes all but the keep most recent
// compositor.log.* files in logDir, oldest first.
func pruneOldLogFiles(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), logFilePrefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) <= keep {
		return
	}
	for _, name := range names[:len(names)-keep] {
		_ = os.Remove(filepath.Join(logDir, name))
	}
}

// SetLogLevel changes the current logging level
func SetLogLevel(level LogLevel) {
	currentLevel = level
}

// EnableDebug enables debug mode
func EnableDebug() {
	debugMode = true
	logger.SetFlags(log.LstdFlags | log.Lshortfile)
}

// DisableDebug disables debug mode
func DisableDebug() {
	debugMode = false
	logger.SetFlags(log.LstdFlags)
}

// getCallerInfo gets the caller's file and line number
func getCallerInfo() string {
	if !debugMode {
		return ""
	}

	_, file, line, ok := runtime.Caller(3) // Skip three frames to get to the actual caller
	if !ok {
		return ""
	}

	// Extract just the filename from the full path
	parts := strings.Split(file, "/")
	filename := parts[len(parts)-1]

	return fmt.Sprintf("[%s:%d] ", filename, line)
}

// formatLog formats a log message with timestamp, level and caller info
func formatLog(level string, format string, args ...interface{}) string {
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	callerInfo := getCallerInfo()

	// Format the actual message
	var message string
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	} else {
		message = format
	}

	return fmt.Sprintf("%s %s%s: %s", timestamp, callerInfo, level, message)
}

// Debug logs debug level messages
func Debug(format string, args ...interface{}) {
	if !debugMode || currentLevel > LevelDebug {
		return
	}
	logger.Output(2, formatLog("DEBUG", format, args...))
}

// Info logs info level messages
func Info(format string, args ...interface{}) {
	if currentLevel > LevelInfo {
		return
	}
	logger.Output(2, formatLog("INFO", format, args...))
}

// Warn logs warning level messages
func Warn(format string, args ...interface{}) {
	if currentLevel > LevelWarning {
		return
	}
	logger.Output(2, formatLog("WARN", format, args...))
}

// Error logs error level messages
func Error(format string, args ...interface{}) {
	if currentLevel > LevelError {
		return
	}
	logger.Output(2, formatLog("ERROR", format, args...))
}

// Fatal logs a fatal error message and exits the program
func Fatal(format string, args ...interface{}) {
	logger.Output(2, formatLog("FATAL", format, args...))
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(1)
}

// InstallPanicHook appends a timestamped crash report (panic value plus
// stack trace) to crashLogPath and returns a function the caller must
// defer at the top of main, so a panic anywhere is recorded before the
// process tears down.
func InstallPanicHook(crashLogPath string) func() {
	return func() {
		r := recover()
		if r == nil {
			return
		}
		if err := os.MkdirAll(filepath.Dir(crashLogPath), 0o755); err == nil {
			if f, err := os.OpenFile(crashLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				fmt.Fprintf(f, "--- panic at %s ---\n%v\n%s\n", time.Now().Format(time.RFC3339), r, debug.Stack())
				f.Close()
			}
		}
		panic(r)
	}
}
