package dataprovider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// IdentifierKind tells which representation an Identifier holds.
type IdentifierKind int

const (
	// KindText is a textual identifier such as a UUID or slug.
	KindText IdentifierKind = iota
	// KindNumber is a non-negative integer identifier.
	KindNumber
)

// String returns the kind name.
func (k IdentifierKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Identifier names a single record. It is either text or a non-negative
// integer; the two variants are never compared or coerced into each other.
type Identifier struct {
	kind IdentifierKind
	text string
	num  uint64
}

// TextID creates a textual identifier.
func TextID(s string) Identifier {
	return Identifier{kind: KindText, text: s}
}

// NumberID creates an integer identifier.
func NumberID(n uint64) Identifier {
	return Identifier{kind: KindNumber, num: n}
}

// ParseIdentifier builds an identifier of the requested kind from its string
// form. KindNumber requires a decimal non-negative integer.
func ParseIdentifier(s string, kind IdentifierKind) (Identifier, error) {
	switch kind {
	case KindText:
		return TextID(s), nil
	case KindNumber:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Identifier{}, fmt.Errorf("dataprovider: invalid numeric identifier %q: %w", s, err)
		}
		return NumberID(n), nil
	default:
		return Identifier{}, fmt.Errorf("dataprovider: unsupported identifier kind %d", kind)
	}
}

// Kind returns the identifier representation.
func (id Identifier) Kind() IdentifierKind { return id.kind }

// Text returns the textual value and whether the identifier is textual.
func (id Identifier) Text() (string, bool) {
	return id.text, id.kind == KindText
}

// Number returns the integer value and whether the identifier is numeric.
func (id Identifier) Number() (uint64, bool) {
	return id.num, id.kind == KindNumber
}

// IsZero reports whether the identifier is the zero value (empty text).
func (id Identifier) IsZero() bool {
	return id.kind == KindText && id.text == ""
}

// String returns the verbatim text or the decimal number. This is the form
// used as a URL path segment.
func (id Identifier) String() string {
	if id.kind == KindNumber {
		return strconv.FormatUint(id.num, 10)
	}
	return id.text
}

// MarshalJSON encodes text as a JSON string and numbers as a JSON number.
func (id Identifier) MarshalJSON() ([]byte, error) {
	if id.kind == KindNumber {
		return []byte(strconv.FormatUint(id.num, 10)), nil
	}
	return json.Marshal(id.text)
}

// UnmarshalJSON accepts a JSON string or a non-negative JSON integer.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("dataprovider: empty identifier")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TextID(s)
		return nil
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("dataprovider: identifier must be a string or non-negative integer, got %s", data)
	}
	*id = NumberID(n)
	return nil
}

// identifierFromValue converts a decoded JSON value into an Identifier.
func identifierFromValue(v any) (Identifier, error) {
	switch t := v.(type) {
	case string:
		return TextID(t), nil
	case json.Number:
		n, err := strconv.ParseUint(t.String(), 10, 64)
		if err != nil {
			return Identifier{}, fmt.Errorf("dataprovider: identifier must be a non-negative integer, got %s", t)
		}
		return NumberID(n), nil
	case float64:
		if t < 0 || t != float64(uint64(t)) {
			return Identifier{}, fmt.Errorf("dataprovider: identifier must be a non-negative integer, got %v", t)
		}
		return NumberID(uint64(t)), nil
	default:
		return Identifier{}, fmt.Errorf("dataprovider: identifier must be a string or number, got %T", v)
	}
}

// IDStrings renders identifiers in order, for logging and query composition.
func IDStrings(ids []Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
