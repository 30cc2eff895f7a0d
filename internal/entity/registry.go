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
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/adaryorg/dotmix/internal/colors"
)

// ColorschemeData is the computed form of a colorscheme: the derived palette,
// the merged custom values and the merged source schemes it came from.
type ColorschemeData struct {
	Palette colors.Palette
	Custom  map[string]any
	Schemes colors.Schemes
}

// Registry owns the catalogs and entity caches for one data directory.
// Lookups are memoized, including failures, so repeated calls are stable.
// A Registry is not safe for concurrent use.
type Registry struct {
	dataDir string
	mode    colors.Mode
	log     zerolog.Logger

	catalogs map[Kind]*Catalog
	warnings []error
	seen     map[string]bool

	colorschemes *store[ColorschemeData]
	typographies *store[map[string]any]
	appearances  *store[map[string]any]
	filesets     *store[Files]
}

// NewRegistry creates a registry over dataDir. mode selects how colorscheme
// palettes are derived.
func NewRegistry(dataDir string, mode colors.Mode, logger zerolog.Logger) *Registry {
	r := &Registry{
		dataDir:  dataDir,
		mode:     mode,
		log:      logger,
		catalogs: make(map[Kind]*Catalog),
		seen:     make(map[string]bool),
	}
	r.colorschemes = newStore[ColorschemeData](r, Colorscheme, r.computeColorscheme)
	r.typographies = newStore[map[string]any](r, Typography, computeCustom)
	r.appearances = newStore[map[string]any](r, Appearance, computeCustom)
	r.filesets = newStore[Files](r, Fileset, r.computeFileset)
	return r
}

// DataDir returns the directory the registry scans.
func (r *Registry) DataDir() string {
	return r.dataDir
}

// Mode returns the colormode used for palettes.
func (r *Registry) Mode() colors.Mode {
	return r.mode
}

// Catalog returns the scanned catalog for kind. The directory is scanned once.
func (r *Registry) Catalog(kind Kind) (*Catalog, error) {
	if cat, ok := r.catalogs[kind]; ok {
		return cat, nil
	}
	cat, err := scan(kind, filepath.Join(r.dataDir, kind.Dir()), r.warn)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("kind", kind.String()).Int("entries", cat.Len()).Msg("scanned catalog")
	r.catalogs[kind] = cat
	return cat, nil
}

// Warnings returns the non-fatal problems seen so far, each reported once.
func (r *Registry) Warnings() []error {
	return append([]error(nil), r.warnings...)
}

func (r *Registry) warn(err error) {
	msg := err.Error()
	if r.seen[msg] {
		return
	}
	r.seen[msg] = true
	r.warnings = append(r.warnings, err)

	ev := r.log.Warn()
	var defErr *DefinitionError
	var parentErr *MissingParentError
	switch {
	case errors.As(err, &parentErr):
		ev = ev.Str("kind", parentErr.Kind.String()).Str("id", parentErr.Child).Str("parent", parentErr.Parent)
	case errors.As(err, &defErr):
		ev = ev.Str("kind", defErr.Kind.String()).Str("path", defErr.Path)
	}
	ev.Msg(msg)
}

// Colorscheme resolves and computes the colorscheme id.
func (r *Registry) Colorscheme(id string) (*Entity[ColorschemeData], error) {
	return r.colorschemes.get(id)
}

// Typography resolves and computes the typography id.
func (r *Registry) Typography(id string) (*Entity[map[string]any], error) {
	return r.typographies.get(id)
}

// Appearance resolves and computes the appearance id.
func (r *Registry) Appearance(id string) (*Entity[map[string]any], error) {
	return r.appearances.get(id)
}

// Fileset resolves and computes the fileset id.
func (r *Registry) Fileset(id string) (*Entity[Files], error) {
	return r.filesets.get(id)
}

// Custom resolves a typography or appearance by kind.
func (r *Registry) Custom(kind Kind, id string) (*Entity[map[string]any], error) {
	switch kind {
	case Typography:
		return r.Typography(id)
	case Appearance:
		return r.Appearance(id)
	}
	return nil, fmt.Errorf("%s has no custom-only form", kind)
}

func computeCustom(chain []*Entity[map[string]any]) (map[string]any, error) {
	return mergeChain(chain, customLayer), nil
}

func (r *Registry) computeColorscheme(chain []*Entity[ColorschemeData]) (ColorschemeData, error) {
	schemes := colors.SchemesFromMap(mergeChain(chain, colorsLayer))
	palette, err := colors.Derive(r.mode, schemes)
	if err != nil {
		return ColorschemeData{}, fmt.Errorf("colorscheme %q: %w", chain[0].ID(), err)
	}
	return ColorschemeData{
		Palette: palette,
		Custom:  mergeChain(chain, customLayer),
		Schemes: schemes,
	}, nil
}
