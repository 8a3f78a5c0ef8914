// Package store reads and writes gateway parameters by name.
package store

import (
	"context"
	"strings"
)

// Store is the parameter store capability used by the workflows.
// Fetch reports found == false for a parameter that does not exist; every
// other failure is returned as an error.
type Store interface {
	Fetch(ctx context.Context, name string) (value string, found bool, err error)
	Put(ctx context.Context, name, value string) error
}

var sensitiveMarkers = []string{"password", "token"}

// IsSensitive reports whether values of the named parameter must be masked
func IsSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Mask returns one asterisk per character of value
func Mask(value string) string {
	if value == "" {
		return ""
	}
	return strings.Repeat("*", len([]rune(value)))
}

// Display returns the value as it may be shown for the named parameter
func Display(name, value string) string {
	if IsSensitive(name) {
		return Mask(value)
	}
	return value
}
