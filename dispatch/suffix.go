package dispatch

import (
	"fmt"
	"strings"
)

// MethodSet reports which method names a controller exposes.
type MethodSet interface {
	HasMethod(name string) bool
}

// SuffixResolver maps a path to a method name by taking the first
// non-empty segment and appending a suffix: "/test" becomes "testAction".
type SuffixResolver struct {
	// Delimiter splits the path. Defaults to "/".
	Delimiter string

	// Suffix is appended to the identifier. Defaults to "Action".
	Suffix string

	// DefaultIdentifier is used when the path has no segment.
	// Defaults to "index".
	DefaultIdentifier string
}

// Identifier returns the logical method identifier for path.
func (s SuffixResolver) Identifier(path string) string {
	delim := s.Delimiter
	if delim == "" {
		delim = "/"
	}

	for _, seg := range strings.Split(path, delim) {
		if seg != "" {
			return seg
		}
	}

	if s.DefaultIdentifier == "" {
		return "index"
	}
	return s.DefaultIdentifier
}

// Method returns the concrete method name for path.
func (s SuffixResolver) Method(path string) string {
	suffix := s.Suffix
	if suffix == "" {
		suffix = "Action"
	}
	return s.Identifier(path) + suffix
}

// Resolve returns the method name for path, or an error wrapping
// ErrMethodNotFound when methods does not expose it.
func (s SuffixResolver) Resolve(path string, methods MethodSet) (string, error) {
	name := s.Method(path)
	if methods == nil || !methods.HasMethod(name) {
		return "", fmt.Errorf("%w: %q", ErrMethodNotFound, name)
	}
	return name, nil
}
