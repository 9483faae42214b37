package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/internal/localstore"
)

// ThemeKey is the local storage key holding the chosen theme name.
const ThemeKey = "easybuytracker_theme"

// Theme defines the color palette for the terminal UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	Name string

	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
}

// DarkTheme is the default palette for dark terminals.
var DarkTheme = Theme{
	Name: "dark",

	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent:  lipgloss.Color("75"),  // blue
	Success: lipgloss.Color("114"), // green
	Error:   lipgloss.Color("196"), // red
	Warning: lipgloss.Color("220"), // amber
}

// LightTheme is the palette for light terminals.
var LightTheme = Theme{
	Name: "light",

	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("254"),
	SelectedForeground: lipgloss.Color("232"),

	HeaderForeground: lipgloss.Color("232"),
	BorderColor:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("245"),

	Accent:  lipgloss.Color("26"),  // blue
	Success: lipgloss.Color("28"),  // green
	Error:   lipgloss.Color("160"), // red
	Warning: lipgloss.Color("130"), // amber
}

// LoadTheme reads the persisted theme choice, defaulting to dark.
func LoadTheme(values *localstore.Store) Theme {
	if name, ok := values.Get(ThemeKey); ok && name == LightTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

// SaveTheme persists the theme choice for the next session.
func SaveTheme(values *localstore.Store, theme Theme) error {
	return values.Set(ThemeKey, theme.Name)
}

// Toggle switches between the dark and light palettes.
func (t Theme) Toggle() Theme {
	if t.Name == DarkTheme.Name {
		return LightTheme
	}
	return DarkTheme
}
