// logger.go — structured component logger.
// Writes "[<component>] [<level>] <message> <meta-json>" lines, sanitizing
// metadata before serialization so sensitive values never reach the sink.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a logging severity, ordered low to high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps ASHFOX_LOG_LEVEL values to a Level. Unknown values fall
// back to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Logger writes sanitized, leveled log lines for a fixed component name.
type Logger struct {
	component string
	min       Level
	mu        sync.Mutex
	out       io.Writer
	now       func() time.Time
}

// New creates a Logger for component, writing to os.Stderr at the given
// minimum level.
func New(component string, min Level) *Logger {
	return &Logger{component: component, min: min, out: os.Stderr, now: time.Now}
}

// With returns a child Logger scoped to a sub-component, e.g. "router.dispatch".
func (l *Logger) With(subComponent string) *Logger {
	return &Logger{component: l.component + "." + subComponent, min: l.min, out: l.out, now: l.now}
}

func (l *Logger) log(level Level, msg string, meta map[string]any) {
	if level < l.min {
		return
	}
	sanitized := Sanitize(meta)
	metaJSON := ToJSON(sanitized)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] [%s] %s %s\n", l.component, level, msg, metaJSON)
}

func (l *Logger) Debug(msg string, meta map[string]any) { l.log(LevelDebug, msg, meta) }
func (l *Logger) Info(msg string, meta map[string]any)  { l.log(LevelInfo, msg, meta) }
func (l *Logger) Warn(msg string, meta map[string]any)  { l.log(LevelWarn, msg, meta) }
func (l *Logger) Error(msg string, meta map[string]any) { l.log(LevelError, msg, meta) }
