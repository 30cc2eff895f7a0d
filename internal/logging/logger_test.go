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

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, test := range tests {
		if got := parseLevel(test.input); got != test.expected {
			t.Errorf("parseLevel(%q): expected %v, got %v", test.input, test.expected, got)
		}
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info().Msg("info message")
	assert.Empty(t, buf.String(), "info should not log when level is warn")

	logger.Warn().Str("id", "dark").Msg("warn message")
	assert.Contains(t, buf.String(), "warn message")
	assert.Contains(t, buf.String(), `"id":"dark"`)
}

func TestInitLogger_WritesFile(t *testing.T) {
	original := globalLogger
	defer func() { globalLogger = original }()

	logFile := filepath.Join(t.TempDir(), "logs", "dotmix.log")
	require.NoError(t, InitLogger(logFile, "debug", 1, 1, 1))

	Debug("hello %s", "debug")
	Warn("hello %s", "warn")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "hello debug"))
	assert.True(t, strings.Contains(string(content), "hello warn"))
}

func TestSetLevel(t *testing.T) {
	original := globalLogger
	defer func() { globalLogger = original }()

	var buf bytes.Buffer
	globalLogger = New(&buf, "error")

	Info("quiet")
	assert.Empty(t, buf.String())

	SetLevel("debug")
	Info("loud")
	assert.Contains(t, buf.String(), "loud")
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}
