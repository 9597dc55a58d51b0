package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

type styles struct {
	title   lipgloss.Style
	removed lipgloss.Style
	added   lipgloss.Style
	lineNo  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		removed: r.NewStyle().Foreground(ColorError),
		added:   r.NewStyle().Foreground(ColorSuccess),
		lineNo:  r.NewStyle().Foreground(ColorMuted),
		success: r.NewStyle().Foreground(ColorSuccess),
		warning: r.NewStyle().Foreground(ColorWarning),
		failure: r.NewStyle().Foreground(ColorError).Bold(true),
	}
}

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
	SymbolWarn   = "!"
)
