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
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// TerminalCapabilities holds what the current terminal can do.
type TerminalCapabilities struct {
	Interactive   bool
	SupportsColor bool
}

// DetectTerminalCapabilities inspects stdin, stdout and the environment.
func DetectTerminalCapabilities() TerminalCapabilities {
	return TerminalCapabilities{
		Interactive:   isTerminal(os.Stdin) && isTerminal(os.Stdout),
		SupportsColor: isTerminal(os.Stdout) && detectColorSupport(strings.ToLower(os.Getenv("TERM"))),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// detectColorSupport checks TERM and NO_COLOR.
func detectColorSupport(term string) bool {
	noColorTerminals := []string{"dumb", "unknown"}

	for _, noColorTerm := range noColorTerminals {
		if strings.Contains(term, noColorTerm) {
			return false
		}
	}

	if strings.Contains(term, "color") ||
		strings.Contains(term, "xterm") ||
		strings.Contains(term, "screen") ||
		strings.Contains(term, "tmux") {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	return true
}
