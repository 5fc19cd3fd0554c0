package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/dataprovider/dataprovider"
	"github.com/kbukum/dataprovider/validation"
)

// parseIDs converts identifier arguments. With numeric set every argument
// must be a non-negative integer.
func parseIDs(args []string, numeric bool) ([]dataprovider.Identifier, error) {
	kind := dataprovider.KindText
	if numeric {
		kind = dataprovider.KindNumber
	}

	v := validation.New().NotEmpty("ids", len(args))
	ids := make([]dataprovider.Identifier, 0, len(args))
	for i, arg := range args {
		field := fmt.Sprintf("ids[%d]", i)
		arg = strings.TrimSpace(arg)
		if arg == "" {
			v.AddError(field, "is required")
			continue
		}
		id, err := dataprovider.ParseIdentifier(arg, kind)
		if err != nil {
			v.AddError(field, "must be a non-negative integer")
			continue
		}
		ids = append(ids, id)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return ids, nil
}

// splitIDs parses a comma separated --ids value.
func splitIDs(s string, numeric bool) ([]dataprovider.Identifier, error) {
	if strings.TrimSpace(s) == "" {
		return parseIDs(nil, numeric)
	}
	return parseIDs(strings.Split(s, ","), numeric)
}

// parseAssignments turns key=value arguments into record fields. A value
// that is valid JSON keeps its JSON type; anything else is a string.
func parseAssignments(args []string) (dataprovider.Fields, error) {
	v := validation.New().NotEmpty("fields", len(args))
	fields := make(dataprovider.Fields, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		switch {
		case !ok:
			v.AddError(arg, "must have the form key=value")
		case key == "":
			v.AddError(arg, "key is required")
		default:
			_, dup := fields[key]
			v.Custom(!dup, key, "is assigned more than once")
			fields[key] = parseValue(value)
		}
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return fields, nil
}

func parseValue(raw string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	if _, err := dec.Token(); err != io.EOF {
		return raw
	}
	return v
}
