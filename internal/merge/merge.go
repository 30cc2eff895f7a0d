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

import "reflect"

// Deep merges overlay on top of base and returns a new map. Neither input is
// modified.
//
// Keys present on either side end up in the result. When both sides hold a
// nested map the two are merged recursively; otherwise the overlay value wins
// only if it is truthy. An empty string, zero, false, nil or an empty
// map/slice on the overlay side never replaces the base value.
func Deep(base, overlay map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))

	for key, baseVal := range base {
		result[key] = cloneValue(baseVal)
	}

	for key, overlayVal := range overlay {
		baseVal, exists := base[key]
		if !exists {
			// nothing to fall back to, keep whatever the overlay has
			result[key] = cloneValue(overlayVal)
			continue
		}

		baseMap, baseIsMap := baseVal.(map[string]any)
		overlayMap, overlayIsMap := overlayVal.(map[string]any)
		if baseIsMap && overlayIsMap {
			result[key] = Deep(baseMap, overlayMap)
			continue
		}

		if Truthy(overlayVal) {
			result[key] = cloneValue(overlayVal)
		}
	}

	return result
}

// Chain folds Deep over layers in order, so later layers win. Pass layers
// from least to most specific.
func Chain(layers ...map[string]any) map[string]any {
	result := map[string]any{}
	for _, layer := range layers {
		result = Deep(result, layer)
	}
	return result
}

// Truthy reports whether v counts as a set value for merge purposes.
func Truthy(v any) bool {
	if v == nil {
		return false
	}

	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}

	return true
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item).(map[string]any)
		}
		return out
	default:
		return val
	}
}
