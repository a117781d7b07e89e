// Package logger provides leveled logging for the safety-camp services.
// Records go to stderr by default and can additionally be forwarded to the
// logging collaborator when a forwarder is installed.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the wire name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return "error"
	}
}

// ParseLevel maps a wire name to a Level. Unknown names coerce to
// LevelError, matching the logging collaborator's contract.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warning":
		return LevelWarning, true
	case "error":
		return LevelError, true
	case "critical":
		return LevelCritical, true
	default:
		return LevelError, false
	}
}

// Forwarder receives every record logged at min level or above.
// Implementations must not call back into this package.
type Forwarder func(level Level, message string)

var (
	mu        sync.RWMutex
	min       = LevelInfo
	output    io.Writer = os.Stderr
	name      = "safetycamp"
	forwarder Forwarder
)

// SetMinLevel sets the lowest severity that gets written.
func SetMinLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	min = l
}

// SetOutput sets the output writer. Defaults to os.Stderr.
// Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetName sets the service name included in each record.
func SetName(n string) {
	mu.Lock()
	defer mu.Unlock()
	name = n
}

// SetForwarder installs a best-effort remote forwarder. Pass nil to
// disable forwarding.
func SetForwarder(f Forwarder) {
	mu.Lock()
	defer mu.Unlock()
	forwarder = f
}

func log(l Level, format string, args ...any) {
	mu.RLock()
	w, n, fwd, threshold := output, name, forwarder, min
	mu.RUnlock()

	if l < threshold {
		return
	}

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "[%s] %s: %s\n", strings.ToUpper(l.String()), n, msg)

	if fwd != nil {
		fwd(l, msg)
	}
}

// Debug logs at debug severity.
func Debug(format string, args ...any) { log(LevelDebug, format, args...) }

// Info logs at info severity.
func Info(format string, args ...any) { log(LevelInfo, format, args...) }

// Warn logs at warning severity.
func Warn(format string, args ...any) { log(LevelWarning, format, args...) }

// Error logs at error severity.
func Error(format string, args ...any) { log(LevelError, format, args...) }

// Critical logs at critical severity.
func Critical(format string, args ...any) { log(LevelCritical, format, args...) }

// At logs at an arbitrary severity. Used by the logsink service after
// level coercion.
func At(l Level, format string, args ...any) { log(l, format, args...) }
