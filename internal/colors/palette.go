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

package colors

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects which source shape a colorscheme is derived from.
type Mode string

const (
	ModeBase16   Mode = "base16"
	ModeTerminal Mode = "terminal"
)

// ErrInvalidColorMode is returned for anything other than base16 or terminal.
var ErrInvalidColorMode = errors.New(`colormode should be "base16" or "terminal"`)

// ParseMode validates a colormode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBase16, ModeTerminal:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w, got %q", ErrInvalidColorMode, s)
}

// Base16 holds the sixteen base16 slots. Unset slots are empty.
type Base16 struct {
	Base00 string `toml:"base00" yaml:"base00" json:"base00"`
	Base01 string `toml:"base01" yaml:"base01" json:"base01"`
	Base02 string `toml:"base02" yaml:"base02" json:"base02"`
	Base03 string `toml:"base03" yaml:"base03" json:"base03"`
	Base04 string `toml:"base04" yaml:"base04" json:"base04"`
	Base05 string `toml:"base05" yaml:"base05" json:"base05"`
	Base06 string `toml:"base06" yaml:"base06" json:"base06"`
	Base07 string `toml:"base07" yaml:"base07" json:"base07"`
	Base08 string `toml:"base08" yaml:"base08" json:"base08"`
	Base09 string `toml:"base09" yaml:"base09" json:"base09"`
	Base0A string `toml:"base0A" yaml:"base0A" json:"base0A"`
	Base0B string `toml:"base0B" yaml:"base0B" json:"base0B"`
	Base0C string `toml:"base0C" yaml:"base0C" json:"base0C"`
	Base0D string `toml:"base0D" yaml:"base0D" json:"base0D"`
	Base0E string `toml:"base0E" yaml:"base0E" json:"base0E"`
	Base0F string `toml:"base0F" yaml:"base0F" json:"base0F"`
}

// Terminal holds a 16 color terminal scheme plus background and foreground.
type Terminal struct {
	BG      string `toml:"bg" yaml:"bg" json:"bg"`
	FG      string `toml:"fg" yaml:"fg" json:"fg"`
	Color0  string `toml:"color0" yaml:"color0" json:"color0"`
	Color1  string `toml:"color1" yaml:"color1" json:"color1"`
	Color2  string `toml:"color2" yaml:"color2" json:"color2"`
	Color3  string `toml:"color3" yaml:"color3" json:"color3"`
	Color4  string `toml:"color4" yaml:"color4" json:"color4"`
	Color5  string `toml:"color5" yaml:"color5" json:"color5"`
	Color6  string `toml:"color6" yaml:"color6" json:"color6"`
	Color7  string `toml:"color7" yaml:"color7" json:"color7"`
	Color8  string `toml:"color8" yaml:"color8" json:"color8"`
	Color9  string `toml:"color9" yaml:"color9" json:"color9"`
	Color10 string `toml:"color10" yaml:"color10" json:"color10"`
	Color11 string `toml:"color11" yaml:"color11" json:"color11"`
	Color12 string `toml:"color12" yaml:"color12" json:"color12"`
	Color13 string `toml:"color13" yaml:"color13" json:"color13"`
	Color14 string `toml:"color14" yaml:"color14" json:"color14"`
	Color15 string `toml:"color15" yaml:"color15" json:"color15"`
}

// Schemes is the merged `colors` table of a colorscheme definition.
type Schemes struct {
	Terminal Terminal `toml:"terminal" yaml:"terminal" json:"terminal"`
	Base16   Base16   `toml:"base16" yaml:"base16" json:"base16"`
}

// SchemesFromMap reads the `colors` table of a definition after the
// inheritance merge. Non-string values are ignored.
func SchemesFromMap(m map[string]any) Schemes {
	b := sub(m, "base16")
	t := sub(m, "terminal")
	return Schemes{
		Base16: Base16{
			Base00: str(b, "base00"), Base01: str(b, "base01"),
			Base02: str(b, "base02"), Base03: str(b, "base03"),
			Base04: str(b, "base04"), Base05: str(b, "base05"),
			Base06: str(b, "base06"), Base07: str(b, "base07"),
			Base08: str(b, "base08"), Base09: str(b, "base09"),
			Base0A: str(b, "base0A"), Base0B: str(b, "base0B"),
			Base0C: str(b, "base0C"), Base0D: str(b, "base0D"),
			Base0E: str(b, "base0E"), Base0F: str(b, "base0F"),
		},
		Terminal: Terminal{
			BG: str(t, "bg"), FG: str(t, "fg"),
			Color0: str(t, "color0"), Color1: str(t, "color1"),
			Color2: str(t, "color2"), Color3: str(t, "color3"),
			Color4: str(t, "color4"), Color5: str(t, "color5"),
			Color6: str(t, "color6"), Color7: str(t, "color7"),
			Color8: str(t, "color8"), Color9: str(t, "color9"),
			Color10: str(t, "color10"), Color11: str(t, "color11"),
			Color12: str(t, "color12"), Color13: str(t, "color13"),
			Color14: str(t, "color14"), Color15: str(t, "color15"),
		},
	}
}

// Palette is the fixed set of colors exposed to templates.
type Palette struct {
	BG        string `yaml:"bg" json:"bg"`
	LightBG   string `yaml:"light_bg" json:"light_bg"`
	LighterBG string `yaml:"lighter_bg" json:"lighter_bg"`
	Selection string `yaml:"selection" json:"selection"`
	Comment   string `yaml:"comment" json:"comment"`
	DarkFG    string `yaml:"dark_fg" json:"dark_fg"`
	FG        string `yaml:"fg" json:"fg"`
	LightFG   string `yaml:"light_fg" json:"light_fg"`

	Red     string `yaml:"red" json:"red"`
	Orange  string `yaml:"orange" json:"orange"`
	Yellow  string `yaml:"yellow" json:"yellow"`
	Green   string `yaml:"green" json:"green"`
	Cyan    string `yaml:"cyan" json:"cyan"`
	Blue    string `yaml:"blue" json:"blue"`
	Magenta string `yaml:"magenta" json:"magenta"`
	Brown   string `yaml:"brown" json:"brown"`

	AltRed     string `yaml:"alt_red" json:"alt_red"`
	AltOrange  string `yaml:"alt_orange" json:"alt_orange"`
	AltYellow  string `yaml:"alt_yellow" json:"alt_yellow"`
	AltGreen   string `yaml:"alt_green" json:"alt_green"`
	AltCyan    string `yaml:"alt_cyan" json:"alt_cyan"`
	AltBlue    string `yaml:"alt_blue" json:"alt_blue"`
	AltMagenta string `yaml:"alt_magenta" json:"alt_magenta"`
	AltBrown   string `yaml:"alt_brown" json:"alt_brown"`
}

// Field is one named palette entry.
type Field struct {
	Name  string
	Value string
}

// Fields lists the palette in display order.
func (p Palette) Fields() []Field {
	return []Field{
		{"bg", p.BG}, {"light_bg", p.LightBG}, {"lighter_bg", p.LighterBG},
		{"selection", p.Selection}, {"comment", p.Comment}, {"dark_fg", p.DarkFG},
		{"fg", p.FG}, {"light_fg", p.LightFG},
		{"red", p.Red}, {"orange", p.Orange}, {"yellow", p.Yellow}, {"green", p.Green},
		{"cyan", p.Cyan}, {"blue", p.Blue}, {"magenta", p.Magenta}, {"brown", p.Brown},
		{"alt_red", p.AltRed}, {"alt_orange", p.AltOrange}, {"alt_yellow", p.AltYellow},
		{"alt_green", p.AltGreen}, {"alt_cyan", p.AltCyan}, {"alt_blue", p.AltBlue},
		{"alt_magenta", p.AltMagenta}, {"alt_brown", p.AltBrown},
	}
}

// Map returns the palette keyed by field name.
func (p Palette) Map() map[string]any {
	fields := p.Fields()
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}

// Lookup returns the value of a palette field by name.
func (p Palette) Lookup(name string) (string, bool) {
	for _, f := range p.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Validate checks that every field holds a hex color.
func (p Palette) Validate() error {
	for _, f := range p.Fields() {
		if _, err := ParseHex(f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// Derive computes the palette for mode from the merged source schemes.
func Derive(mode Mode, s Schemes) (Palette, error) {
	switch mode {
	case ModeBase16:
		return FromBase16(s.Base16)
	case ModeTerminal:
		return FromTerminal(s.Terminal)
	}
	return Palette{}, fmt.Errorf("%w, got %q", ErrInvalidColorMode, mode)
}

// FromBase16 maps the base16 slots directly and derives the alt hues.
func FromBase16(b Base16) (Palette, error) {
	p := &parser{}
	base := [16]colorful.Color{
		p.parse("base00", b.Base00), p.parse("base01", b.Base01),
		p.parse("base02", b.Base02), p.parse("base03", b.Base03),
		p.parse("base04", b.Base04), p.parse("base05", b.Base05),
		p.parse("base06", b.Base06), p.parse("base07", b.Base07),
		p.parse("base08", b.Base08), p.parse("base09", b.Base09),
		p.parse("base0A", b.Base0A), p.parse("base0B", b.Base0B),
		p.parse("base0C", b.Base0C), p.parse("base0D", b.Base0D),
		p.parse("base0E", b.Base0E), p.parse("base0F", b.Base0F),
	}
	if p.err != nil {
		return Palette{}, p.err
	}

	return Palette{
		BG:        toHex(base[0x0]),
		LightBG:   toHex(base[0x1]),
		Selection: toHex(base[0x2]),
		Comment:   toHex(base[0x3]),
		DarkFG:    toHex(base[0x4]),
		FG:        toHex(base[0x5]),
		LightFG:   toHex(base[0x6]),
		LighterBG: toHex(base[0x7]),

		Red:     toHex(base[0x8]),
		Orange:  toHex(base[0x9]),
		Yellow:  toHex(base[0xA]),
		Green:   toHex(base[0xB]),
		Cyan:    toHex(base[0xC]),
		Blue:    toHex(base[0xD]),
		Magenta: toHex(base[0xE]),
		Brown:   toHex(base[0xF]),

		AltRed:     toHex(altColor(base[0x8])),
		AltOrange:  toHex(altColor(base[0x9])),
		AltYellow:  toHex(altColor(base[0xA])),
		AltGreen:   toHex(altColor(base[0xB])),
		AltCyan:    toHex(altColor(base[0xC])),
		AltBlue:    toHex(altColor(base[0xD])),
		AltMagenta: toHex(altColor(base[0xE])),
		AltBrown:   toHex(altColor(base[0xF])),
	}, nil
}

// FromTerminal maps a terminal scheme. Bright ANSI colors are used as the alt
// hues; orange, brown, selection and lighter_bg are derived.
func FromTerminal(t Terminal) (Palette, error) {
	p := &parser{}
	bg := p.parse("bg", t.BG)
	fg := p.parse("fg", t.FG)
	comment := p.parse("color0", t.Color0)
	red := p.parse("color1", t.Color1)
	green := p.parse("color2", t.Color2)
	yellow := p.parse("color3", t.Color3)
	blue := p.parse("color4", t.Color4)
	magenta := p.parse("color5", t.Color5)
	cyan := p.parse("color6", t.Color6)
	darkFG := p.parse("color7", t.Color7)
	lightBG := p.parse("color8", t.Color8)
	altRed := p.parse("color9", t.Color9)
	altGreen := p.parse("color10", t.Color10)
	altYellow := p.parse("color11", t.Color11)
	altBlue := p.parse("color12", t.Color12)
	altMagenta := p.parse("color13", t.Color13)
	altCyan := p.parse("color14", t.Color14)
	lightFG := p.parse("color15", t.Color15)
	if p.err != nil {
		return Palette{}, p.err
	}

	orange := orangeFromYellow(yellow)
	brown := brownFromOrange(orange)

	return Palette{
		BG:        toHex(bg),
		LightBG:   toHex(lightBG),
		LighterBG: toHex(altColorInverse(lightFG)),
		Selection: toHex(Average(lightBG, comment)),
		Comment:   toHex(comment),
		DarkFG:    toHex(darkFG),
		FG:        toHex(fg),
		LightFG:   toHex(lightFG),

		Red:     toHex(red),
		Orange:  toHex(orange),
		Yellow:  toHex(yellow),
		Green:   toHex(green),
		Cyan:    toHex(cyan),
		Blue:    toHex(blue),
		Magenta: toHex(magenta),
		Brown:   toHex(brown),

		AltRed:     toHex(altRed),
		AltOrange:  toHex(altColor(orange)),
		AltYellow:  toHex(altYellow),
		AltGreen:   toHex(altGreen),
		AltCyan:    toHex(altCyan),
		AltBlue:    toHex(altBlue),
		AltMagenta: toHex(altMagenta),
		AltBrown:   toHex(altColor(brown)),
	}, nil
}

// parser keeps the first error so a whole scheme can be parsed in one go.
type parser struct {
	err error
}

func (p *parser) parse(field, value string) colorful.Color {
	if p.err != nil {
		return colorful.Color{}
	}
	c, err := ParseHex(field, value)
	if err != nil {
		p.err = err
	}
	return c
}

func sub(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}
