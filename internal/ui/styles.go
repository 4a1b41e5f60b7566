package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, counts
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, command names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, counts
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

var (
	accentColor string
	codeTheme   string
)

// ConfigureTheme applies user theming preferences. Invalid accent values
// are ignored and the default palette stays in effect.
func ConfigureTheme(accent, theme string) {
	codeTheme = theme
	color, ok := normalizeAccentColor(accent)
	if !ok {
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// CodeTheme returns the configured markdown code block theme, if any.
func CodeTheme() (string, bool) {
	if codeTheme == "" {
		return "", false
	}
	return codeTheme, true
}

// normalizeAccentColor accepts ANSI color codes ("0" to "255") and hex
// colors ("#RRGGBB").
func normalizeAccentColor(accent string) (string, bool) {
	accent = strings.TrimSpace(accent)
	if accent == "" {
		return "", false
	}
	if strings.HasPrefix(accent, "#") {
		if len(accent) != 7 {
			return "", false
		}
		if _, err := strconv.ParseUint(accent[1:], 16, 32); err != nil {
			return "", false
		}
		return accent, true
	}
	if n, err := strconv.Atoi(accent); err == nil && n >= 0 && n <= 255 {
		return accent, true
	}
	return "", false
}
