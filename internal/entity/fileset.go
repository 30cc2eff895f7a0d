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
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/adaryorg/dotmix/internal/merge"
)

// FileRecord is one template file contributed by a fileset.
type FileRecord struct {
	// ID is the slash separated path relative to the fileset directory.
	ID string
	// Path is the absolute path of the template on disk.
	Path      string
	Owner     string
	OwnerName string
}

// Files is the effective file set of a fileset, keyed by relative path.
type Files map[string]FileRecord

// IDs returns the relative paths in sorted order.
func (f Files) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OwnedBy returns the records contributed by the fileset owner, sorted.
func (f Files) OwnedBy(owner string) []FileRecord {
	var out []FileRecord
	for _, id := range f.IDs() {
		if f[id].Owner == owner {
			out = append(out, f[id])
		}
	}
	return out
}

func (r *Registry) computeFileset(chain []*Entity[Files]) (Files, error) {
	layers := make([]map[string]any, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		own, err := ownFiles(chain[i])
		if err != nil {
			return nil, err
		}
		layer := make(map[string]any, len(own))
		for _, rec := range own {
			layer[rec.ID] = rec
		}
		layers = append(layers, layer)
	}

	files := make(Files)
	for id, v := range merge.Chain(layers...) {
		files[id] = v.(FileRecord)
	}
	return files, nil
}

// ownFiles lists the templates in a fileset's own directory. Files sitting
// directly in the fileset root are settings, not templates, and any nested
// directory with its own settings.toml is a separate fileset.
func ownFiles(e *Entity[Files]) ([]FileRecord, error) {
	root := filepath.Dir(e.Path())
	recs, err := listTemplates(osfs.New(root))
	if err != nil {
		return nil, fmt.Errorf("failed to list files of fileset %q: %w", e.ID(), err)
	}
	for i := range recs {
		recs[i].Path = filepath.Join(root, filepath.FromSlash(recs[i].ID))
		recs[i].Owner = e.ID()
		recs[i].OwnerName = e.Name()
	}
	return recs, nil
}

// listTemplates walks fs and returns every file outside the root whose own
// directory has no settings.toml. Subdirectories below such a directory are
// still walked.
func listTemplates(fs billy.Filesystem) ([]FileRecord, error) {
	nested := make(map[string]bool)
	isNested := func(dir string) bool {
		if v, ok := nested[dir]; ok {
			return v
		}
		_, err := fs.Stat(fs.Join("/", dir, SettingsFile))
		nested[dir] = err == nil
		return nested[dir]
	}

	var recs []FileRecord
	err := util.Walk(fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
		dir := path.Dir(rel)
		if dir == "." || isNested(dir) {
			return nil
		}
		recs = append(recs, FileRecord{ID: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}
