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

package entity

import "fmt"

// Kind is a category of inheritable definitions.
type Kind int

const (
	Colorscheme Kind = iota
	Typography
	Appearance
	Fileset
)

// Kinds lists every kind in display order.
var Kinds = []Kind{Colorscheme, Typography, Appearance, Fileset}

func (k Kind) String() string {
	switch k {
	case Colorscheme:
		return "colorscheme"
	case Typography:
		return "typography"
	case Appearance:
		return "appearance"
	case Fileset:
		return "fileset"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Dir is the directory under the data dir holding definitions of this kind.
func (k Kind) Dir() string {
	switch k {
	case Colorscheme:
		return "colors"
	case Typography:
		return "fonts"
	case Appearance:
		return "themes"
	case Fileset:
		return "templates"
	}
	return ""
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}
