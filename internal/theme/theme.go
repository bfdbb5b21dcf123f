// Package theme holds the colour palettes the terminal host renders with.
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of colours used for notices, prompts and listings.
type Theme struct {
	Name    string
	Light   bool
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Info    lipgloss.Color
	Success lipgloss.Color
	Warn    lipgloss.Color
	Error   lipgloss.Color
}

// Theme names.
const (
	DraculaName        = "dracula"
	DraculaLightName   = "dracula-light"
	NordName           = "nord"
	GruvboxDarkName    = "gruvbox-dark"
	SolarizedLightName = "solarized-light"
	CatppuccinName     = "catppuccin-mocha"
)

var themes = map[string]Theme{
	DraculaName: {
		Accent: "#BD93F9", Border: "#6272A4", Muted: "#6272A4", Text: "#F8F8F2",
		Info: "#8BE9FD", Success: "#50FA7B", Warn: "#FFB86C", Error: "#FF5555",
	},
	DraculaLightName: {
		Light:  true,
		Accent: "#7C3AED", Border: "#D0D7DE", Muted: "#6E7781", Text: "#24292F",
		Info: "#0891B2", Success: "#059669", Warn: "#D97706", Error: "#DC2626",
	},
	NordName: {
		Accent: "#88C0D0", Border: "#4C566A", Muted: "#81A1C1", Text: "#E5E9F0",
		Info: "#88C0D0", Success: "#A3BE8C", Warn: "#EBCB8B", Error: "#BF616A",
	},
	GruvboxDarkName: {
		Accent: "#FABD2F", Border: "#504945", Muted: "#A89984", Text: "#EBDBB2",
		Info: "#83A598", Success: "#B8BB26", Warn: "#FE8019", Error: "#FB4934",
	},
	SolarizedLightName: {
		Light:  true,
		Accent: "#268BD2", Border: "#93A1A1", Muted: "#93A1A1", Text: "#657B83",
		Info: "#2AA198", Success: "#859900", Warn: "#CB4B16", Error: "#DC322F",
	},
	CatppuccinName: {
		Accent: "#B4BEFE", Border: "#45475A", Muted: "#6C7086", Text: "#CDD6F4",
		Info: "#89DCEB", Success: "#A6E3A1", Warn: "#F9E2AF", Error: "#F38BA8",
	},
}

// Get returns the named theme, or Dracula when name is unknown.
func Get(name string) *Theme {
	t, ok := themes[name]
	if !ok {
		name = DraculaName
		t = themes[name]
	}
	t.Name = name
	return &t
}

// Available returns the theme names in alphabetical order.
func Available() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
