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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adaryorg/dotmix/internal/colors"
	"github.com/adaryorg/dotmix/internal/entity"
)

// Printer writes the human readable views to out.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	styles   Styles
}

// NewPrinter creates a printer for w. Colors are enabled only when w is a
// terminal.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{out: w, renderer: r, styles: NewStyles(r)}
}

// Styles returns the printer's styles.
func (p *Printer) Styles() Styles {
	return p.styles
}

// Palette prints one swatch line per palette field.
func (p *Printer) Palette(pal colors.Palette) {
	for _, f := range pal.Fields() {
		fmt.Fprintln(p.out, p.paletteRow(f))
	}
}

func (p *Printer) paletteRow(f colors.Field) string {
	c, err := colors.ParseHex(f.Name, f.Value)
	if err != nil {
		return fmt.Sprintf("  %-10s - %s", f.Name, p.styles.Error.Render("invalid"))
	}

	r, g, b := c.RGB255()
	rgb := fmt.Sprintf("RGB(%3d, %3d, %3d)", r, g, b)
	line := fmt.Sprintf("  %-10s - %-7s - %-20s", f.Name, f.Value, rgb)
	return swatch(p.renderer, f.Value, colors.Brightness(c) >= 0.5).Render(line)
}

// Pairs prints `key -> value` for every entry, sorted by key. Nested tables
// are flattened with dotted keys.
func (p *Printer) Pairs(data map[string]any) {
	for _, line := range p.pairLines("", data) {
		fmt.Fprintln(p.out, line)
	}
}

func (p *Printer) pairLines(prefix string, data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := data[k].(map[string]any); ok {
			lines = append(lines, p.pairLines(key, nested)...)
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s -> %s",
			p.styles.Key.Render(key), p.styles.Value.Render(fmt.Sprint(data[k]))))
	}
	return lines
}

// Fileset prints the files of a fileset grouped by the ancestor that
// provides them, most distant ancestor first.
func (p *Printer) Fileset(fs *entity.Entity[entity.Files]) {
	chain := fs.Chain()
	files := fs.Data()
	for i := len(chain) - 1; i >= 0; i-- {
		owner := chain[i]
		heading := "Files inherited from " + owner.Name()
		if owner == fs {
			heading = "Files from " + owner.Name()
		}
		fmt.Fprintln(p.out, p.styles.Heading.Render(heading))
		fmt.Fprintln(p.out)
		for _, rec := range files.OwnedBy(owner.ID()) {
			fmt.Fprintf(p.out, "  %s\n", rec.ID)
		}
		fmt.Fprintln(p.out)
	}
}

// Entries prints `Name (id)` for each catalog entry.
func (p *Printer) Entries(entries []entity.Entry) {
	for _, e := range entries {
		fmt.Fprintf(p.out, "%s %s\n", e.Name, p.styles.Muted.Render("("+e.ID+")"))
	}
}

// Summary prints `Label -> Name (id)`, or `none` when id is empty.
func (p *Printer) Summary(label, name, id string) {
	value := ""
	if id != "" {
		value = fmt.Sprintf("%s (%s)", name, id)
	}
	p.Field(label, value)
}

// Field prints `Label -> value`, or `none` when value is empty.
func (p *Printer) Field(label, value string) {
	styled := p.styles.Muted.Render("none")
	if value != "" {
		styled = p.styles.Value.Render(value)
	}
	fmt.Fprintf(p.out, "%s -> %s\n", p.styles.Key.Render(label), styled)
}

// Heading prints a section title.
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.out, p.styles.Heading.Render(title))
}

// List prints items indented under a heading.
func (p *Printer) List(title string, items []string) {
	p.Heading(title)
	for _, item := range items {
		fmt.Fprintf(p.out, "  %s\n", item)
	}
}

// Warning prints a warning line.
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.out, p.styles.Warning.Render("Warning: "+msg))
}

// Code prints already highlighted lines.
func (p *Printer) Code(lines []string) {
	fmt.Fprintln(p.out, strings.Join(lines, "\n"))
}
