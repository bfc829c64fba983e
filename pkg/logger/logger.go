package logger

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// ErrInvalidLogLevel is returned when a configured log level is not recognised.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Level is the charmbracelet/log level type.
type Level = charm.Level

// Log levels. Trace is one step more verbose than Debug; Off silences everything.
const (
	TraceLevel Level = charm.DebugLevel - 1
	DebugLevel Level = charm.DebugLevel
	InfoLevel  Level = charm.InfoLevel
	WarnLevel  Level = charm.WarnLevel
	ErrorLevel Level = charm.ErrorLevel
	FatalLevel Level = charm.FatalLevel
	OffLevel   Level = math.MaxInt32
)

// LogLevel is the user-facing log level name as written in configuration.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

// ParseLogLevel converts a configured level name into a LogLevel.
// The empty string means Info. Matching is case-insensitive.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	for _, l := range []LogLevel{LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff} {
		if strings.EqualFold(logLevel, string(l)) {
			return l, nil
		}
	}

	return "", fmt.Errorf("%w '%s'. Supported log levels are Trace, Debug, Info, Warning, Off", ErrInvalidLogLevel, logLevel)
}

// Level maps the configured name onto a charmbracelet/log level.
func (l LogLevel) Level() Level {
	switch l {
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return DebugLevel
	case LogLevelWarning:
		return WarnLevel
	case LogLevelOff:
		return OffLevel
	default:
		return InfoLevel
	}
}

// Logger wraps a charmbracelet logger and adds the Trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger wraps an existing charmbracelet logger and installs the level styles.
func NewLogger(l *charm.Logger) *Logger {
	l.SetStyles(levelStyles())
	return &Logger{Logger: l}
}

// Trace logs a message at trace level.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Log(TraceLevel, msg, keyvals...)
}

// GetLevelString returns the lowercase name of the current level.
func (l *Logger) GetLevelString() string {
	switch level := l.GetLevel(); level {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return level.String()
	}
}

func levelStyles() *charm.Styles {
	styles := charm.DefaultStyles()
	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("61"))
	styles.Keys["task"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#00A651"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	return styles
}
