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

package clipboard

import (
	"errors"
	"testing"

	"github.com/adaryorg/dotmix/internal/colors"
)

func withFakeClipboard(t *testing.T, err error) *string {
	t.Helper()

	var copied string
	original := copyText
	copyText = func(s string) error {
		copied = s
		return err
	}
	t.Cleanup(func() { copyText = original })
	return &copied
}

func TestCopyColor(t *testing.T) {
	copied := withFakeClipboard(t, nil)

	value, err := CopyColor(colors.Palette{Red: "#cc6666"}, "red")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != "#cc6666" {
		t.Errorf("Expected #cc6666, got %s", value)
	}
	if *copied != "#cc6666" {
		t.Errorf("Expected clipboard to hold #cc6666, got %q", *copied)
	}
}

func TestCopyColor_UnknownField(t *testing.T) {
	copied := withFakeClipboard(t, nil)

	if _, err := CopyColor(colors.Palette{}, "purple"); err == nil {
		t.Error("Expected error for unknown field")
	}
	if *copied != "" {
		t.Errorf("Expected nothing copied, got %q", *copied)
	}
}

func TestCopyColor_ClipboardFailure(t *testing.T) {
	boom := errors.New("no display")
	withFakeClipboard(t, boom)

	_, err := CopyColor(colors.Palette{Blue: "#81a2be"}, "blue")
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped clipboard error, got %v", err)
	}
}

func TestIsWaylandSession(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "x11")
	if isWaylandSession() {
		t.Error("Expected X11 session")
	}

	t.Setenv("XDG_SESSION_TYPE", "wayland")
	if !isWaylandSession() {
		t.Error("Expected Wayland session")
	}
}
