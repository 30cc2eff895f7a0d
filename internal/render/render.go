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

package render

import (
	"fmt"
	"os"
	"path"

	"github.com/cbroglie/mustache"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/adaryorg/dotmix/internal/entity"
	"github.com/adaryorg/dotmix/internal/merge"
)

// Variables builds the template context. Each argument may be nil, in which
// case its group is empty. Colorscheme custom values are laid over the
// palette, so a custom "red" replaces the derived one.
func Variables(cs *entity.Entity[entity.ColorschemeData], typ, app *entity.Entity[map[string]any]) map[string]any {
	colorVars := map[string]any{}
	if cs != nil {
		colorVars = cs.Data().Palette.Map()
		for k, v := range cs.Data().Custom {
			colorVars[k] = v
		}
	}

	return map[string]any{
		"colors":     colorVars,
		"typography": customData(typ),
		"appearance": customData(app),
	}
}

func customData(e *entity.Entity[map[string]any]) map[string]any {
	if e == nil {
		return map[string]any{}
	}
	return merge.Deep(nil, e.Data())
}

// File renders a single template.
func File(rec entity.FileRecord, vars map[string]any) (string, error) {
	data, err := os.ReadFile(rec.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", rec.ID, err)
	}
	out, err := mustache.Render(string(data), vars)
	if err != nil {
		return "", fmt.Errorf("failed to render %s (from %s): %w", rec.ID, rec.OwnerName, err)
	}
	return out, nil
}

// Fileset renders every file into dst at its relative path. Source file
// permissions are kept so rendered scripts stay executable.
func Fileset(dst billy.Filesystem, files entity.Files, vars map[string]any) error {
	for _, id := range files.IDs() {
		rec := files[id]

		info, err := os.Stat(rec.Path)
		if err != nil {
			return fmt.Errorf("failed to stat template %s: %w", rec.ID, err)
		}
		out, err := File(rec, vars)
		if err != nil {
			return err
		}

		if err := dst.MkdirAll(path.Dir(rec.ID), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", rec.ID, err)
		}
		if err := util.WriteFile(dst, rec.ID, []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", rec.ID, err)
		}
	}
	return nil
}
