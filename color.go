// File: color.go
// Title: Color Model
// Description: Defines the closed set of named colors available to the
//              console colorizer and the mapping from a named color to a
//              decorated message.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with nine named colors

package logfan

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color is a named console color used as a lookup key by the colorizer
type Color string

const (
	ColorBlack   Color = "black"
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorYellow  Color = "yellow"
	ColorBlue    Color = "blue"
	ColorMagenta Color = "magenta"
	ColorCyan    Color = "cyan"
	ColorWhite   Color = "white"
	ColorGrey    Color = "grey"
)

// colorStyles maps each named color onto its ANSI foreground style
var colorStyles = map[Color]lipgloss.Style{
	ColorBlack:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	ColorGrey:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// Valid reports whether the color is one of the nine defined names
func (c Color) Valid() bool {
	_, ok := colorStyles[c]
	return ok
}

// Paint returns the message decorated with the color. Color resolution is
// lazy; applying an unrecognized color is a configuration error and panics.
func (c Color) Paint(message string) string {
	style, ok := colorStyles[c]
	if !ok {
		panic(fmt.Sprintf("logfan: unknown color %q", string(c)))
	}
	return style.Render(message)
}

// AllColors returns all defined color names
func AllColors() []Color {
	return []Color{
		ColorBlack,
		ColorRed,
		ColorGreen,
		ColorYellow,
		ColorBlue,
		ColorMagenta,
		ColorCyan,
		ColorWhite,
		ColorGrey,
	}
}
