// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"fmt"
	"maps"
	"strings"
)

// Env is the key/value environment shared by processors.
type Env map[string]any

// Lookup returns the value stored under key.
func (e Env) Lookup(key string) (any, bool) {
	v, ok := e[key]
	return v, ok
}

// String returns the value under key rendered as a string. Absent and nil
// values yield the empty string.
func (e Env) String(key string) string {
	switch v := e[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Bool reports whether the value under key is true. Booleans are returned as-is,
// strings are true when they spell true, yes or 1 (case-insensitively) and
// numbers are true when non-zero.
func (e Env) Bool(key string) bool {
	switch v := e[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Set stores value under key.
func (e Env) Set(key string, value any) {
	e[key] = value
}

// Delete removes key.
func (e Env) Delete(key string) {
	delete(e, key)
}

// Merge copies every entry of other into e, overwriting existing keys.
func (e Env) Merge(other Env) {
	maps.Copy(e, other)
}

// Clone returns a shallow copy of e.
func (e Env) Clone() Env {
	return maps.Clone(e)
}
