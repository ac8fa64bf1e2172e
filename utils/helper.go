package utils

import (
	"strings"
)

// StringPtr returns a pointer to the string value
func StringPtr(s string) *string {
	return &s
}

// TrimmedOrNil trims s and returns nil when nothing is left.
func TrimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SplitOnFirstSpace splits a composite value at the first whitespace
// boundary. A value with no space lands entirely in the first part. This is
// the lossy, best-effort inverse of concatenating two submitted fields with
// a single space.
func SplitOnFirstSpace(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

// JoinNonEmpty concatenates parts with a single space, skipping empties.
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
