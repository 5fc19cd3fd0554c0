package dataprovider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultIDField is the field that carries the record identifier.
const DefaultIDField = "id"

// ErrMissingID is returned when a decoded object has no identifier field.
var ErrMissingID = errors.New("dataprovider: record has no identifier field")

// Fields maps field names to decoded JSON values: nil, bool, json.Number,
// string, []any or map[string]any.
type Fields map[string]any

// Clone returns a shallow copy of the field map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record is one backend entity. The identifier is also kept in Fields under
// the backend's native key.
type Record struct {
	ID     Identifier
	Fields Fields

	idField string
}

// IDField returns the key the identifier was decoded from, DefaultIDField
// for records built by hand.
func (r Record) IDField() string {
	if r.idField == "" {
		return DefaultIDField
	}
	return r.idField
}

// Get returns a field value and whether it is present.
func (r Record) Get(field string) (any, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// DecodeRecord decodes a JSON object into a Record, reading the identifier
// from idField.
func DecodeRecord(data []byte, idField string) (Record, error) {
	var fields Fields
	if err := decodeJSON(data, &fields); err != nil {
		return Record{}, err
	}
	return recordFromFields(fields, idField)
}

// ErrNotArray is returned when a list body is JSON null.
var ErrNotArray = errors.New("dataprovider: expected a JSON array, got null")

// DecodeRecords decodes a JSON array of objects.
func DecodeRecords(data []byte, idField string) ([]Record, error) {
	var items []Fields
	if err := decodeJSON(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, ErrNotArray
	}
	records := make([]Record, 0, len(items))
	for i, fields := range items {
		rec, err := recordFromFields(fields, idField)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// MarshalJSON emits the field map, adding the identifier under IDField when
// absent.
func (r Record) MarshalJSON() ([]byte, error) {
	out := r.Fields.Clone()
	if out == nil {
		out = Fields{}
	}
	if _, ok := out[r.IDField()]; !ok {
		out[r.IDField()] = r.ID
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a JSON object using DefaultIDField.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := DecodeRecord(data, DefaultIDField)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

func recordFromFields(fields Fields, idField string) (Record, error) {
	if idField == "" {
		idField = DefaultIDField
	}
	raw, ok := fields[idField]
	if !ok || raw == nil {
		return Record{}, ErrMissingID
	}
	id, err := identifierFromValue(raw)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Fields: fields, idField: idField}, nil
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("dataprovider: unexpected data after JSON value")
	}
	return nil
}
