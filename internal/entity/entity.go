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

	"github.com/adaryorg/dotmix/internal/merge"
)

// Definition is the kind independent view of an entity.
type Definition interface {
	Kind() Kind
	ID() string
	Name() string
	Path() string
	Raw() RawConfig
}

// Entity is one named definition together with its resolved extends chain and
// the data computed from that chain. D is the kind-specific result.
type Entity[D any] struct {
	kind  Kind
	entry Entry
	raw   RawConfig

	chain    []*Entity[D]
	resolved bool

	data     D
	computed bool
	err      error
}

func (e *Entity[D]) Kind() Kind     { return e.kind }
func (e *Entity[D]) ID() string     { return e.entry.ID }
func (e *Entity[D]) Name() string   { return e.entry.Name }
func (e *Entity[D]) Path() string   { return e.entry.Path }
func (e *Entity[D]) Raw() RawConfig { return e.raw }

// Chain returns the entity followed by its ancestors, nearest first.
func (e *Entity[D]) Chain() []*Entity[D] {
	return e.chain
}

// Parents returns the ancestors, nearest first.
func (e *Entity[D]) Parents() []*Entity[D] {
	if len(e.chain) == 0 {
		return nil
	}
	return e.chain[1:]
}

// Data returns the computed result. Only valid on entities obtained from a
// Registry lookup that returned no error.
func (e *Entity[D]) Data() D {
	return e.data
}

var (
	_ Definition = (*Entity[ColorschemeData])(nil)
	_ Definition = (*Entity[map[string]any])(nil)
	_ Definition = (*Entity[Files])(nil)
)

// computeFunc derives an entity's data from its chain.
type computeFunc[D any] func(chain []*Entity[D]) (D, error)

// store caches entities of a single kind.
type store[D any] struct {
	reg      *Registry
	kind     Kind
	compute  computeFunc[D]
	entities map[string]*Entity[D]
	failed   map[string]error
}

func newStore[D any](reg *Registry, kind Kind, compute computeFunc[D]) *store[D] {
	return &store[D]{
		reg:      reg,
		kind:     kind,
		compute:  compute,
		entities: make(map[string]*Entity[D]),
		failed:   make(map[string]error),
	}
}

// get looks up id, resolves its chain and computes its data.
func (s *store[D]) get(id string) (*Entity[D], error) {
	e, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.resolve(e); err != nil {
		return nil, err
	}
	if !e.computed {
		e.data, e.err = s.compute(e.chain)
		e.computed = true
	}
	if e.err != nil {
		return nil, e.err
	}
	return e, nil
}

// load returns the entity for id with its raw config parsed, without touching
// its chain.
func (s *store[D]) load(id string) (*Entity[D], error) {
	if e, ok := s.entities[id]; ok {
		return e, nil
	}
	if err, ok := s.failed[id]; ok {
		return nil, err
	}

	cat, err := s.reg.Catalog(s.kind)
	if err != nil {
		return nil, err
	}
	entry, ok := cat.Lookup(id)
	if !ok {
		return nil, cat.notFound(id)
	}

	raw, err := s.readRaw(entry)
	if err != nil {
		s.failed[id] = err
		return nil, err
	}

	e := &Entity[D]{kind: s.kind, entry: entry, raw: raw}
	s.entities[id] = e
	return e, nil
}

func (s *store[D]) readRaw(entry Entry) (RawConfig, error) {
	doc, err := loadDocument(s.kind, entry.Path)
	if err != nil {
		return RawConfig{}, err
	}
	raw, err := parseRaw(s.kind, entry.Path, doc, entry.Name)
	if errors.Is(err, ErrEmptyDefinition) {
		s.reg.warn(err)
		return raw, nil
	}
	return raw, err
}

// resolve walks `extends` links until a root, a missing parent or a cycle.
func (s *store[D]) resolve(e *Entity[D]) error {
	if e.resolved {
		return e.err
	}
	e.resolved = true

	chain := []*Entity[D]{e}
	for {
		last := chain[len(chain)-1]
		parentID := last.raw.Extends
		if parentID == "" {
			break
		}

		parent, err := s.load(parentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.reg.warn(&MissingParentError{
					Kind:      s.kind,
					Child:     last.ID(),
					ChildName: last.Name(),
					Parent:    parentID,
				})
				break
			}
			e.err = err
			return err
		}

		if inChain(chain, parent) {
			ids := make([]string, 0, len(chain)+1)
			for _, c := range chain {
				ids = append(ids, c.ID())
			}
			e.err = &CycleError{
				Kind:   s.kind,
				Child:  last.ID(),
				Parent: parent.ID(),
				Chain:  append(ids, parent.ID()),
			}
			e.chain = chain
			return e.err
		}
		chain = append(chain, parent)
	}

	e.chain = chain
	return nil
}

func inChain[D any](chain []*Entity[D], e *Entity[D]) bool {
	for _, c := range chain {
		if c == e {
			return true
		}
	}
	return false
}

// mergeChain folds the selected layer of each chain member, farthest ancestor
// first, so nearer entities win.
func mergeChain[D any](chain []*Entity[D], layer func(RawConfig) map[string]any) map[string]any {
	layers := make([]map[string]any, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		layers = append(layers, layer(chain[i].raw))
	}
	return merge.Chain(layers...)
}

func customLayer(raw RawConfig) map[string]any { return raw.Custom }
func colorsLayer(raw RawConfig) map[string]any { return raw.Colors }
