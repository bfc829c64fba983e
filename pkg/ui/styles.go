// Package ui styles the dispatcher's status markers for the terminal.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	colorGreen = "#00A651"
	colorRed   = "#FF5555"
	colorGray  = "#808080"
	colorCyan  = "#5FD7FF"
)

// Styles renders marker text. With color disabled every style is a no-op.
type Styles struct {
	Marker  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Index   lipgloss.Style
}

// NewStyles builds styles bound to w. Color is used only when w is a
// terminal and NO_COLOR is unset.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	if !ColorEnabled(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Marker:  r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Index:   r.NewStyle().Foreground(lipgloss.Color(colorCyan)),
	}
}

// ColorEnabled reports whether colored output should be written to w.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
