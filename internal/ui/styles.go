package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha (dark theme)
var mocha = struct {
	Red lipgloss.Color
}{
	Red: "#f38ba8",
}

// Catppuccin Latte (light theme)
var latte = struct {
	Red lipgloss.Color
}{
	Red: "#d20f39",
}

// ThemePalette holds the current color scheme
type ThemePalette struct {
	Red lipgloss.Color
}

var currentTheme ThemePalette

func init() {
	if DetectTheme() == ThemeDark {
		SetDarkTheme()
	} else {
		SetLightTheme()
	}
}

// SetDarkTheme switches to Catppuccin Mocha
func SetDarkTheme() {
	currentTheme = ThemePalette{Red: mocha.Red}
	refreshStyles()
}

// SetLightTheme switches to Catppuccin Latte
func SetLightTheme() {
	currentTheme = ThemePalette{Red: latte.Red}
	refreshStyles()
}

// ErrorStyle is the only semantic style the shell uses: it renders the
// REPL's own stderr diagnostics (parse/exec errors). Builtin stdout is
// never styled, since a caller may pipe it into another program or a
// file.
var ErrorStyle lipgloss.Style

func refreshStyles() {
	ErrorStyle = lipgloss.NewStyle().Foreground(currentTheme.Red).Bold(true)
}
