/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style used by the printers and the confirm prompt.
type Styles struct {
	Heading lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
	Choice  lipgloss.Style
}

// NewStyles builds the styles for renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().Foreground(parseColor("blue")).Bold(true),
		Key:     r.NewStyle().Foreground(parseColor("yellow")),
		Value:   r.NewStyle().Foreground(parseColor("green")),
		Muted:   r.NewStyle().Foreground(parseColor("8")),
		Warning: r.NewStyle().Foreground(parseColor("yellow")),
		Error:   r.NewStyle().Foreground(parseColor("red")),
		Prompt:  r.NewStyle().Bold(true),
		Choice:  r.NewStyle().Foreground(parseColor("cyan")).Bold(true),
	}
}

// swatch styles text on the given hex background, with black or white text
// depending on how bright the background is.
func swatch(r *lipgloss.Renderer, hex string, bright bool) lipgloss.Style {
	fg := "white"
	if bright {
		fg = "black"
	}
	return r.NewStyle().
		Background(parseColor(hex)).
		Foreground(parseColor(fg))
}

// parseColor converts hex, a few color names or an ANSI index to a
// lipgloss.Color.
func parseColor(colorStr string) lipgloss.Color {
	if colorStr == "" {
		return lipgloss.Color("")
	}

	if strings.HasPrefix(colorStr, "#") {
		return lipgloss.Color(colorStr)
	}

	cssColors := map[string]string{
		"black":   "#000000",
		"red":     "#FF0000",
		"green":   "#008000",
		"yellow":  "#FFFF00",
		"blue":    "#0000FF",
		"magenta": "#FF00FF",
		"cyan":    "#00FFFF",
		"white":   "#FFFFFF",
		"gray":    "#808080",
		"grey":    "#808080",
	}

	if hexColor, exists := cssColors[strings.ToLower(colorStr)]; exists {
		return lipgloss.Color(hexColor)
	}

	// Otherwise, treat as ANSI color code
	return lipgloss.Color(colorStr)
}
