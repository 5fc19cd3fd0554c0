package dataprovider

import "strings"

// Resource is a named collection of records, stored as a path segment
// without surrounding slashes.
type Resource struct {
	name string
}

// NewResource normalizes name: surrounding whitespace and leading/trailing
// slashes are removed, embedded slashes are kept. Normalizing an already
// normalized name returns it unchanged.
func NewResource(name string) Resource {
	return Resource{name: normalizeSegment(name)}
}

// Name returns the normalized path segment.
func (r Resource) Name() string { return r.name }

// String implements fmt.Stringer.
func (r Resource) String() string { return r.name }

// IsZero reports whether the resource has an empty name.
func (r Resource) IsZero() bool { return r.name == "" }

func normalizeSegment(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}
