// Package normalize provides helper functions for consistent value normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical form the identity provider expects for login identifiers.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a display name by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Key normalizes a symbolic lookup key (icon keys, payment kinds, categories)
// by trimming whitespace and converting to lowercase.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Active reports whether a raw "active" field marks a record as visible.
//
// The record store does not keep a single physical representation for this
// flag: some rows hold a native boolean and others the string "true" or
// "false". Only the boolean true and the exact string "true" count as active.
// Everything else, including nil, numbers, "TRUE" and "yes", is inactive.
func Active(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}
