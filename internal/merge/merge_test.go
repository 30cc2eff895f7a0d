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

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeep_OverlayWins(t *testing.T) {
	base := map[string]any{"a": "base", "b": int64(1)}
	overlay := map[string]any{"a": "overlay", "c": true}

	result := Deep(base, overlay)

	assert.Equal(t, map[string]any{"a": "overlay", "b": int64(1), "c": true}, result)
}

func TestDeep_NestedMapsRecurse(t *testing.T) {
	base := map[string]any{
		"font": map[string]any{"family": "Iosevka", "size": int64(11)},
	}
	overlay := map[string]any{
		"font": map[string]any{"size": int64(13)},
	}

	result := Deep(base, overlay)

	font, ok := result["font"].(map[string]any)
	require.True(t, ok, "expected nested map to survive the merge")
	assert.Equal(t, "Iosevka", font["family"])
	assert.Equal(t, int64(13), font["size"])
}

func TestDeep_FalsyDoesNotOverride(t *testing.T) {
	tests := []struct {
		name    string
		base    any
		overlay any
	}{
		{"zero int", int64(1), int64(0)},
		{"zero float", 1.5, 0.0},
		{"empty string", "x", ""},
		{"false", true, false},
		{"empty slice", []any{"a"}, []any{}},
		{"empty map over scalar", "x", map[string]any{}},
		{"nil", "x", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Deep(map[string]any{"a": test.base}, map[string]any{"a": test.overlay})
			assert.Equal(t, test.base, result["a"])
		})
	}
}

func TestDeep_EmptyMapOverMapKeepsBase(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": int64(1)}}
	overlay := map[string]any{"a": map[string]any{}}

	result := Deep(base, overlay)

	assert.Equal(t, map[string]any{"x": int64(1)}, result["a"])
}

func TestDeep_SequencesReplacedNotConcatenated(t *testing.T) {
	base := map[string]any{"list": []any{"a", "b"}}
	overlay := map[string]any{"list": []any{"c"}}

	result := Deep(base, overlay)

	assert.Equal(t, []any{"c"}, result["list"])
}

func TestDeep_DoesNotMutateInputs(t *testing.T) {
	nested := map[string]any{"x": int64(1)}
	base := map[string]any{"a": nested}
	overlay := map[string]any{"a": map[string]any{"y": int64(2)}}

	result := Deep(base, overlay)
	result["a"].(map[string]any)["x"] = int64(99)

	assert.Equal(t, int64(1), nested["x"])
	assert.Len(t, nested, 1)
}

func TestChain_GrandparentOnlySurfacesWhenUnset(t *testing.T) {
	grandparent := map[string]any{"a": "gp", "b": "gp", "c": "gp"}
	parent := map[string]any{"b": "parent", "c": "parent"}
	self := map[string]any{"c": "self"}

	result := Chain(grandparent, parent, self)

	assert.Equal(t, "gp", result["a"])
	assert.Equal(t, "parent", result["b"])
	assert.Equal(t, "self", result["c"])
}

func TestChain_Empty(t *testing.T) {
	assert.Empty(t, Chain())
	assert.Empty(t, Chain(nil, nil))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(int64(0)))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy([]map[string]any{}))
	assert.False(t, Truthy(uint8(0)))
	assert.True(t, Truthy("a"))
	assert.True(t, Truthy(int64(-1)))
	assert.True(t, Truthy([]string{"a"}))
	assert.True(t, Truthy(struct{}{}))
}
