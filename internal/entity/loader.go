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

	"github.com/BurntSushi/toml"
)

// SettingsFile marks a fileset directory.
const SettingsFile = "settings.toml"

// RawConfig is the parsed form of one definition file.
type RawConfig struct {
	Name    string
	Extends string
	Custom  map[string]any
	Colors  map[string]any
}

// loadDocument reads and decodes a TOML definition. A read failure is returned
// as-is; a parse failure comes back as a *DefinitionError.
func loadDocument(kind Kind, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s definition: %w", kind, err)
	}

	doc := make(map[string]any)
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, &DefinitionError{
			Kind:   kind,
			Path:   path,
			Reason: "failed to parse",
			Err:    ErrInvalidDefinition,
			Cause:  err,
		}
	}
	return doc, nil
}

// definedName returns the document's `name`, or a *DefinitionError when it is
// missing or not a non-empty string.
func definedName(kind Kind, path string, doc map[string]any) (string, error) {
	name, ok := doc["name"].(string)
	if !ok || name == "" {
		return "", &DefinitionError{
			Kind:   kind,
			Path:   path,
			Reason: "missing required field \"name\"",
			Err:    ErrInvalidDefinition,
		}
	}
	return name, nil
}

// parseRaw extracts the recognized fields of a decoded document. An empty
// document is reported with ErrEmptyDefinition alongside a usable RawConfig.
func parseRaw(kind Kind, path string, doc map[string]any, fallbackName string) (RawConfig, error) {
	if len(doc) == 0 {
		return RawConfig{Name: fallbackName}, &DefinitionError{
			Kind:   kind,
			Path:   path,
			Reason: "definition is empty",
			Err:    ErrEmptyDefinition,
		}
	}

	name, err := definedName(kind, path, doc)
	if err != nil {
		return RawConfig{}, err
	}
	raw := RawConfig{Name: name}

	if v, ok := doc["extends"]; ok {
		s, isString := v.(string)
		if !isString {
			return RawConfig{}, invalidField(kind, path, "extends", "a string")
		}
		raw.Extends = s
	}

	// filesets carry no custom block
	if kind != Fileset {
		if v, ok := doc["custom"]; ok {
			m, isMap := v.(map[string]any)
			if !isMap {
				return RawConfig{}, invalidField(kind, path, "custom", "a table")
			}
			raw.Custom = m
		}
	}

	if kind == Colorscheme {
		if v, ok := doc["colors"]; ok {
			m, isMap := v.(map[string]any)
			if !isMap {
				return RawConfig{}, invalidField(kind, path, "colors", "a table")
			}
			raw.Colors = m
		}
	}

	return raw, nil
}

func invalidField(kind Kind, path, field, want string) error {
	return &DefinitionError{
		Kind:   kind,
		Path:   path,
		Reason: fmt.Sprintf("field %q must be %s", field, want),
		Err:    ErrInvalidDefinition,
	}
}
