package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

// Level names.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)

// Logger is a named logger.
type Logger struct {
	name string
	std  *log.Logger
}

var (
	globalDebug atomic.Bool

	mu           sync.RWMutex
	serviceDebug = map[string]bool{}
	loggers      = map[string]*Logger{}
	output       io.Writer = os.Stderr
)

// ForService returns the memoized logger for name. An empty name maps to
// "seek".
func ForService(name string) *Logger {
	if name == "" {
		name = "seek"
	}

	mu.RLock()
	l, ok := loggers[name]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l = &Logger{name: name, std: log.New(output, "", log.LstdFlags)}
	loggers[name] = l
	return l
}

// SetGlobalDebug enables or disables debug output for every service.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// GlobalDebug reports whether global debug output is enabled.
func GlobalDebug() bool {
	return globalDebug.Load()
}

// EnableDebugFor enables debug output for a single service.
func EnableDebugFor(name string) {
	setServiceDebug(name, true)
}

// DisableDebugFor disables the per-service debug override.
func DisableDebugFor(name string) {
	setServiceDebug(name, false)
}

func setServiceDebug(name string, enabled bool) {
	if name == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	serviceDebug[name] = enabled
}

// DebugEnabledFor reports whether debug lines for name are printed.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	mu.RLock()
	defer mu.RUnlock()
	return serviceDebug[name]
}

// SetOutput routes all loggers, existing and future, to w.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	output = w
	for _, l := range loggers {
		l.std.SetOutput(w)
	}
}

// Name returns the service name of the logger.
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) emit(level, msg string) {
	l.std.Println(level + " [" + l.name + ">] " + msg)
}

// Infof logs an informational line.
func (l *Logger) Infof(format string, args ...any) {
	l.emit(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
}

// Debugf logs a debug line when debug is enabled for this service.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.emit(LevelDebug, fmt.Sprintf(format, args...))
}
