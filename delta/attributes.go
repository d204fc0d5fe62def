package delta

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

// Well-known Quill attribute names.
const (
	AttrBold       = "bold"
	AttrItalic     = "italic"
	AttrCode       = "code"
	AttrStrike     = "strike"
	AttrLink       = "link"
	AttrHeader     = "header"
	AttrList       = "list"
	AttrIndent     = "indent"
	AttrCodeBlock  = "code-block"
	AttrBlockquote = "blockquote"
)

// List attribute values.
const (
	ListOrdered = "ordered"
	ListBullet  = "bullet"
)

// Has reports whether the attribute is set.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Bool reports whether a toggle attribute is on.
func (a Attributes) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// String returns a string attribute or the fallback.
func (a Attributes) String(name, fallback string) string {
	if v, ok := a[name].(string); ok {
		return v
	}
	return fallback
}

// Int returns a numeric attribute as int or the fallback.
func (a Attributes) Int(name string, fallback int) int {
	switch v := normalizeGoValue(a[name]).(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// Equal compares attribute maps by value. Nil and empty maps are equal.
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return reflect.DeepEqual(normalizeGoValue(map[string]any(a)), normalizeGoValue(map[string]any(other)))
}

// Clone returns a shallow copy of the map.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	cloned := make(Attributes, len(a))
	for key, value := range a {
		cloned[key] = value
	}
	return cloned
}

func (a Attributes) validate() error {
	for name, value := range a {
		if name == "" {
			return fmt.Errorf("%w: attribute name must not be empty", ErrInvalid)
		}
		if !utf8.ValidString(name) {
			return fmt.Errorf("%w: attribute name %q is not valid UTF-8", ErrInvalid, name)
		}
		if value == false {
			return fmt.Errorf("%w: attribute %q is false; inactive toggles must be omitted", ErrInvalid, name)
		}
		if err := validateValue(value); err != nil {
			return fmt.Errorf("%w: attribute %q: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

// cleanAttributes drops false toggles and collapses an empty map to nil.
func cleanAttributes(attrs Attributes) Attributes {
	if len(attrs) == 0 {
		return nil
	}
	cleaned := make(Attributes, len(attrs))
	for name, value := range attrs {
		if value == false {
			continue
		}
		cleaned[name] = value
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

func validateValue(value any) error {
	switch v := value.(type) {
	case string:
		if !utf8.ValidString(v) {
			return fmt.Errorf("string %q is not valid UTF-8", v)
		}
		return nil
	case nil, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		return validateFloat(float64(v))
	case float64:
		return validateFloat(v)
	case map[string]any:
		for key, item := range v {
			if !utf8.ValidString(key) {
				return fmt.Errorf("key %q is not valid UTF-8", key)
			}
			if err := validateValue(item); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range v {
			if err := validateValue(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
}

func validateFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("number %v is not representable in JSON", v)
	}
	return nil
}

// normalizeJSONValue converts decoder output (json.Number) into int or float64.
func normalizeJSONValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		f, _ := v.Float64()
		return normalizeFloat(f)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeJSONValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeJSONValue(item)
		}
		return out
	default:
		return value
	}
}

// normalizeGoValue maps every Go numeric type onto int or float64 the same way the
// decoder does, so values built in code and decoded values compare equal.
func normalizeGoValue(value any) any {
	switch v := value.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
		return float64(v)
	case uint:
		return normalizeUint(uint64(v))
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return normalizeUint(uint64(v))
	case uint64:
		return normalizeUint(v)
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case json.Number:
		return normalizeJSONValue(v)
	case Attributes:
		return normalizeGoValue(map[string]any(v))
	case Embed:
		return normalizeGoValue(map[string]any(v))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeGoValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeGoValue(item)
		}
		return out
	default:
		return value
	}
}

func normalizeUint(v uint64) any {
	if v <= math.MaxInt {
		return int(v)
	}
	return float64(v)
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int(f)
	}
	return f
}
