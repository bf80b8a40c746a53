package normalize

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Coercion helpers. The upstream API is loose about scalar types: IDs
// arrive as numbers or numeric strings, flags as bools, 0/1, or "1",
// money as numbers or strings. Internal types are strict, so every read
// goes through one of these.

// Truthy reports whether a node represents an affirmative value:
// true, any non-zero number, or one of "1", "true", "yes", "success".
func Truthy(node gjson.Result) bool {
	switch node.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return node.Float() != 0
	case gjson.String:
		switch strings.ToLower(node.String()) {
		case "1", "true", "yes", "success":
			return true
		}
	}
	return false
}

// Int reads an integer at path, accepting numeric strings, with a
// default for missing or unreadable values. ID fields use this.
func Int(body gjson.Result, path string, def int64) int64 {
	node := body.Get(path)
	switch node.Type {
	case gjson.Number:
		return node.Int()
	case gjson.String:
		if v, err := strconv.ParseInt(strings.TrimSpace(node.String()), 10, 64); err == nil {
			return v
		}
	}
	return def
}

// Float reads a floating-point value at path, accepting numeric
// strings. Monetary fields use this.
func Float(body gjson.Result, path string, def float64) float64 {
	node := body.Get(path)
	switch node.Type {
	case gjson.Number:
		return node.Float()
	case gjson.String:
		if v, err := strconv.ParseFloat(strings.TrimSpace(node.String()), 64); err == nil {
			return v
		}
	}
	return def
}

// Str reads a string at path. Missing non-nullable strings default to
// empty, never to a null-ish sentinel.
func Str(body gjson.Result, path string) string {
	node := body.Get(path)
	if node.Type == gjson.Null || !node.Exists() {
		return ""
	}
	return node.String()
}

// NullableStr reads an explicitly-nullable string at path; missing or
// null values stay nil.
func NullableStr(body gjson.Result, path string) *string {
	node := body.Get(path)
	if !node.Exists() || node.Type == gjson.Null {
		return nil
	}
	s := node.String()
	return &s
}

// Strings reads an array of strings at path. Items that are objects
// degrade to their name field, so both ["admin"] and [{"name":"admin"}]
// produce the same result.
func Strings(body gjson.Result, path string) []string {
	node := body.Get(path)
	if !node.IsArray() {
		return nil
	}
	var out []string
	for _, item := range node.Array() {
		if item.IsObject() {
			if name := item.Get("name"); name.Exists() {
				out = append(out, name.String())
				continue
			}
		}
		out = append(out, item.String())
	}
	return out
}
