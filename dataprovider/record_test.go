package dataprovider

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"id": 12, "title": "x", "score": 1.5, "tags": ["a"]}`), "")
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.ID != NumberID(12) {
		t.Errorf("id = %v", rec.ID)
	}
	if v, _ := rec.Get("score"); v != json.Number("1.5") {
		t.Errorf("score = %#v, want json.Number", v)
	}
	if v, _ := rec.Get("id"); v != json.Number("12") {
		t.Errorf("id field = %#v", v)
	}
	if _, ok := rec.Get("missing"); ok {
		t.Error("missing field reported present")
	}
}

func TestDecodeRecord_CustomIDField(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"_id":"abc","id":5}`), "_id")
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.ID != TextID("abc") {
		t.Errorf("id = %v", rec.ID)
	}
}

func TestDecodeRecord_Errors(t *testing.T) {
	tests := map[string]string{
		"malformed":     `{"id":`,
		"not an object": `[1]`,
		"trailing data": `{"id":1} {"id":2}`,
		"negative id":   `{"id":-3}`,
		"fractional id": `{"id":1.5}`,
		"boolean id":    `{"id":true}`,
		"missing id":    `{"title":"x"}`,
		"null id":       `{"id":null}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeRecord([]byte(body), DefaultIDField); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := DecodeRecord([]byte(`{}`), DefaultIDField)
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("empty object error = %v, want ErrMissingID", err)
	}
}

func TestDecodeRecords(t *testing.T) {
	recs, err := DecodeRecords([]byte(`[{"id":1},{"id":"b"}]`), DefaultIDField)
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != NumberID(1) || recs[1].ID != TextID("b") {
		t.Errorf("records = %+v", recs)
	}

	recs, err = DecodeRecords([]byte(`[]`), DefaultIDField)
	if err != nil || len(recs) != 0 {
		t.Errorf("empty array = %v, %v", recs, err)
	}

	if _, err := DecodeRecords([]byte(`{"id":1}`), DefaultIDField); err == nil {
		t.Error("object accepted as list")
	}
	if _, err := DecodeRecords([]byte(`[{"id":1},{"x":2}]`), DefaultIDField); !errors.Is(err, ErrMissingID) {
		t.Errorf("error = %v, want ErrMissingID", err)
	}
	if _, err := DecodeRecords([]byte(`null`), DefaultIDField); !errors.Is(err, ErrNotArray) {
		t.Errorf("null list error = %v, want ErrNotArray", err)
	}
	if _, err := DecodeRecords([]byte(`[null]`), DefaultIDField); !errors.Is(err, ErrMissingID) {
		t.Errorf("null element error = %v, want ErrMissingID", err)
	}
}

func TestRecord_JSON(t *testing.T) {
	rec := Record{ID: TextID("k"), Fields: Fields{"name": "n"}}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.ID != rec.ID {
		t.Errorf("id = %v", back.ID)
	}
	if _, ok := rec.Fields["id"]; ok {
		t.Error("MarshalJSON mutated the field map")
	}
}

func TestRecord_JSONCustomIDField(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"_id":"a","x":1}`), "_id")
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.IDField() != "_id" {
		t.Errorf("IDField = %q", rec.IDField())
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"_id":"a","x":1}` {
		t.Errorf("Marshal = %s", data)
	}

	built := Record{ID: NumberID(3)}
	if built.IDField() != DefaultIDField {
		t.Errorf("IDField = %q", built.IDField())
	}
	if data, _ := json.Marshal(built); string(data) != `{"id":3}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestFields_Clone(t *testing.T) {
	f := Fields{"a": 1}
	c := f.Clone()
	c["a"] = 2
	if f["a"] != 1 {
		t.Error("clone shares storage")
	}
	if Fields(nil).Clone() != nil {
		t.Error("nil clone should stay nil")
	}
}
