package logger

import (
	"io"
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default Logger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(NewLogger(charm.New(os.Stderr)))
}

// Default returns the global default Logger instance.
func Default() *Logger {
	return defaultLogger.Load().(*Logger)
}

// SetDefault sets a new global default Logger instance.
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New creates a new Logger writing to stderr.
func New() *Logger {
	return NewLogger(charm.New(os.Stderr))
}

// SetOutput sets the output of the default logger.
func SetOutput(w io.Writer) { Default().SetOutput(w) }

// SetLevel sets the level of the default logger.
func SetLevel(level Level) { Default().SetLevel(level) }

// GetLevel returns the level of the default logger.
func GetLevel() Level { return Default().GetLevel() }

func Trace(msg interface{}, keyvals ...interface{}) { Default().Trace(msg, keyvals...) }

func Debug(msg interface{}, keyvals ...interface{}) { Default().Debug(msg, keyvals...) }

func Info(msg interface{}, keyvals ...interface{}) { Default().Info(msg, keyvals...) }

func Warn(msg interface{}, keyvals ...interface{}) { Default().Warn(msg, keyvals...) }

func Error(msg interface{}, keyvals ...interface{}) { Default().Error(msg, keyvals...) }
