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

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Entry is a catalog record: where a definition lives and what it calls itself.
type Entry struct {
	ID   string
	Name string
	Path string
}

// Catalog is the scanned set of valid definitions for one kind in one dir.
type Catalog struct {
	Kind    Kind
	Dir     string
	entries map[string]Entry
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// IDs returns the ids in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries returns every entry, sorted by id.
func (c *Catalog) Entries() []Entry {
	ids := c.IDs()
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.entries[id])
	}
	return out
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// notFound builds a NotFoundError with up to three close ids.
func (c *Catalog) notFound(id string) *NotFoundError {
	err := &NotFoundError{Kind: c.Kind, ID: id}
	for i, match := range fuzzy.Find(id, c.IDs()) {
		if i == 3 {
			break
		}
		err.Suggestions = append(err.Suggestions, match.Str)
	}
	return err
}

// scan builds a catalog. Malformed or nameless definitions are passed to warn
// and skipped; an unreadable directory or file aborts the scan.
func scan(kind Kind, dir string, warn func(error)) (*Catalog, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s directory: %w", kind, err)
	}

	cat := &Catalog{Kind: kind, Dir: dir, entries: make(map[string]Entry)}
	for _, de := range dirEntries {
		id, path, ok := candidate(kind, dir, de)
		if !ok {
			continue
		}

		doc, err := loadDocument(kind, path)
		if err != nil {
			var defErr *DefinitionError
			if errors.As(err, &defErr) {
				warn(defErr)
				continue
			}
			return nil, err
		}

		name, err := definedName(kind, path, doc)
		if err != nil {
			warn(err)
			continue
		}
		cat.entries[id] = Entry{ID: id, Name: name, Path: path}
	}

	return cat, nil
}

// candidate decides whether a directory entry is a definition, returning its
// id and definition path.
func candidate(kind Kind, dir string, de os.DirEntry) (string, string, bool) {
	if kind == Fileset {
		if !de.IsDir() {
			return "", "", false
		}
		path := filepath.Join(dir, de.Name(), SettingsFile)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return "", "", false
		}
		return de.Name(), path, true
	}

	if de.IsDir() || !strings.HasSuffix(de.Name(), ".toml") {
		return "", "", false
	}
	id := strings.TrimSuffix(de.Name(), ".toml")
	if id == "" {
		return "", "", false
	}
	return id, filepath.Join(dir, de.Name()), true
}
