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

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestChecksums(t *testing.T) (*ChecksumStore, string) {
	t.Helper()

	dataDir := t.TempDir()
	outDir := filepath.Join(dataDir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0755))
	store, err := OpenChecksums(filepath.Join(dataDir, ".checksums.db"), outDir)
	if err != nil {
		t.Fatalf("Failed to open checksum store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	return store, dataDir
}

func writeOutput(t *testing.T, dataDir, rel, content string) {
	t.Helper()
	path := filepath.Join(dataDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRecordAndVerify_Clean(t *testing.T) {
	store, dataDir := createTestChecksums(t)
	writeOutput(t, dataDir, "out/alacritty/alacritty.toml", "bg = 1")
	writeOutput(t, dataDir, "out/gtk.css", "* {}")

	require.NoError(t, store.Record())

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alacritty/alacritty.toml", entries[0].Path)
	assert.Equal(t, "gtk.css", entries[1].Path)
	assert.Len(t, entries[0].Digest, 64)

	modified, err := store.Verify()
	require.NoError(t, err)
	assert.Empty(t, modified)
}

func TestVerify_ReportsEditedFiles(t *testing.T) {
	store, dataDir := createTestChecksums(t)
	writeOutput(t, dataDir, "out/a.conf", "a")
	writeOutput(t, dataDir, "out/b.conf", "b")
	require.NoError(t, store.Record())

	writeOutput(t, dataDir, "out/b.conf", "edited by hand")

	modified, err := store.Verify()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.conf"}, modified)
}

func TestVerify_IgnoresDeletedFiles(t *testing.T) {
	store, dataDir := createTestChecksums(t)
	writeOutput(t, dataDir, "out/a.conf", "a")
	require.NoError(t, store.Record())

	require.NoError(t, os.Remove(filepath.Join(dataDir, "out", "a.conf")))

	modified, err := store.Verify()
	require.NoError(t, err)
	assert.Empty(t, modified)
}

func TestRecord_ReplacesPreviousRows(t *testing.T) {
	store, dataDir := createTestChecksums(t)
	writeOutput(t, dataDir, "out/old.conf", "old")
	require.NoError(t, store.Record())

	require.NoError(t, os.RemoveAll(filepath.Join(dataDir, "out")))
	writeOutput(t, dataDir, "out/new.conf", "new")
	require.NoError(t, store.Record())

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new.conf", entries[0].Path)
}

func TestOpenChecksums_Reopen(t *testing.T) {
	dataDir := t.TempDir()
	dbPath := filepath.Join(dataDir, ".checksums.db")
	writeOutput(t, dataDir, "out/a.conf", "a")

	store, err := OpenChecksums(dbPath, filepath.Join(dataDir, "out"))
	require.NoError(t, err)
	require.NoError(t, store.Record())
	require.NoError(t, store.Close())

	reopened, err := OpenChecksums(dbPath, filepath.Join(dataDir, "out"))
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
