// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     historyviewer
// Description: Styles for the history viewer TUI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package historyviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/logchain/internal/chain"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500

	// Severity colors
	ColorDebug = lipgloss.Color("#94A3B8") // Gray
	ColorInfo  = lipgloss.Color("#06B6D4") // Cyan
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// Entry styles
var (
	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	HandlerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	severityStyles = map[string]lipgloss.Style{
		chain.SeverityInfo.String():  lipgloss.NewStyle().Foreground(ColorInfo).Bold(true),
		chain.SeverityDebug.String(): lipgloss.NewStyle().Foreground(ColorDebug).Bold(true),
		chain.SeverityError.String(): lipgloss.NewStyle().Foreground(ColorError).Bold(true),
	}
)

// Panel and bar styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)
)

// Help and filter styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Logo
const Logo = "logchain History"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderSeverityBadge renders a fixed-width severity badge
func RenderSeverityBadge(severity string) string {
	style, ok := severityStyles[severity]
	if !ok {
		style = HelpDescStyle
	}
	return style.Render(padRight("["+severity+"]", 7))
}

// RenderFilterStatus renders a filter status indicator
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
