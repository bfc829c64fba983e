package errors

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

const (
	// DefaultMaxLineLength is the default maximum line length before wrapping.
	DefaultMaxLineLength = 80

	newline    = "\n"
	hintPrefix = "    💡 "
)

// FormatterConfig controls error formatting behavior.
type FormatterConfig struct {
	// Verbose enables the context table and the full error chain.
	Verbose bool

	// Color controls color output: "auto", "always", or "never".
	Color string

	// MaxLineLength is the maximum length before wrapping (default: 80).
	MaxLineLength int
}

// verbose is the process-wide default for FormatterConfig.Verbose.
var verbose atomic.Bool

// SetVerbose sets whether DefaultFormatterConfig enables verbose output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// DefaultFormatterConfig returns default formatting configuration.
// Verbose follows the last call to SetVerbose.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		Verbose:       verbose.Load(),
		Color:         "auto",
		MaxLineLength: DefaultMaxLineLength,
	}
}

// formatContextTable creates a 2-column table from the safe details
// attached by ErrorBuilder.WithContext.
func formatContextTable(err error, useColor bool) string {
	details := errors.GetSafeDetails(err)
	if len(details.SafeDetails) == 0 {
		return ""
	}

	// Parse "task=lint code=3" into key-value pairs.
	var rows [][]string
	for _, detail := range details.SafeDetails {
		for _, pair := range strings.Split(fmt.Sprintf("%v", detail), " ") {
			if parts := strings.SplitN(pair, "=", 2); len(parts) == 2 {
				rows = append(rows, []string{parts[0], parts[1]})
			}
		}
	}
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Context", "Value").
		Rows(rows...)

	if useColor {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return style.Foreground(lipgloss.Color("#00A651")).Bold(true)
			}
			if col == 0 {
				return style.Foreground(lipgloss.Color("#808080"))
			}
			return style
		})
	}

	return newline + t.String()
}

// Format formats an error for display: the message (wrapped when long),
// one line per hint, and in verbose mode the context table and error chain.
func Format(err error, config FormatterConfig) string {
	if err == nil {
		return ""
	}

	useColor := shouldUseColor(config.Color)

	errorStyle := lipgloss.NewStyle()
	if useColor {
		errorStyle = errorStyle.Foreground(lipgloss.Color("#FF0000"))
	}

	var output strings.Builder

	mainMsg := err.Error()
	maxLen := config.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	if len(mainMsg) > maxLen && !config.Verbose {
		output.WriteString(errorStyle.Render(wrapText(mainMsg, maxLen)))
	} else {
		output.WriteString(errorStyle.Render(mainMsg))
	}

	hints := errors.GetAllHints(err)
	if len(hints) > 0 {
		output.WriteString(newline)
		for _, hint := range hints {
			output.WriteString(hintPrefix + hint)
			output.WriteString(newline)
		}
	}

	if config.Verbose {
		if contextTable := formatContextTable(err, useColor); contextTable != "" {
			output.WriteString(contextTable)
			output.WriteString(newline)
		}
		output.WriteString(newline)
		output.WriteString(formatStackTrace(err, useColor))
	}

	return output.String()
}

// shouldUseColor determines if color output should be used.
func shouldUseColor(colorMode string) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = DefaultMaxLineLength
	}
	return wordwrap.WrapString(text, uint(width))
}

// formatStackTrace formats the full error chain with stack traces.
func formatStackTrace(err error, useColor bool) string {
	style := lipgloss.NewStyle()
	if useColor {
		style = style.Foreground(lipgloss.Color("#808080"))
	}
	return style.Render(fmt.Sprintf("%+v", err))
}
