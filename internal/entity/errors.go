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
	"strings"
)

var (
	// ErrNotFound means an id is absent from its kind's catalog.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDefinition means a definition file failed to parse or lacks
	// required fields.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrEmptyDefinition means a definition file parsed to an empty document.
	ErrEmptyDefinition = errors.New("empty definition")

	// ErrMissingParent means `extends` names an id that is not in the catalog.
	ErrMissingParent = errors.New("missing parent")

	// ErrExtensionCycle means an entity appears twice in its own chain.
	ErrExtensionCycle = errors.New("extension cycle")
)

// NotFoundError is returned by lookups of unknown ids.
type NotFoundError struct {
	Kind        Kind
	ID          string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.ID)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// DefinitionError describes a bad definition file. Err is ErrInvalidDefinition
// or ErrEmptyDefinition; Cause is the underlying parse error, if any.
type DefinitionError struct {
	Kind   Kind
	Path   string
	Reason string
	Err    error
	Cause  error
}

func (e *DefinitionError) Error() string {
	msg := fmt.Sprintf("%s definition %s: %s", e.Kind, e.Path, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DefinitionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// MissingParentError is recorded when an entity extends an unknown id. It is a
// warning: the chain stops at Child.
type MissingParentError struct {
	Kind      Kind
	Child     string
	ChildName string
	Parent    string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("%s %q (%s) tried to extend %q but it doesn't exist", e.Kind, e.Child, e.ChildName, e.Parent)
}

func (e *MissingParentError) Unwrap() error {
	return ErrMissingParent
}

// CycleError is returned when Child extends Parent but Parent is already in
// the chain.
type CycleError struct {
	Kind   Kind
	Child  string
	Parent string
	Chain  []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s %q tried to extend %q but it was extended before (%s)",
		e.Kind, e.Child, e.Parent, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrExtensionCycle
}
