package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kbukum/dataprovider/dataprovider"
)

func sampleRecord() dataprovider.Record {
	return dataprovider.Record{
		ID: dataprovider.NumberID(1),
		Fields: dataprovider.Fields{
			"id":     json.Number("1"),
			"title":  "hello",
			"userId": json.Number("2"),
		},
	}
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := (printer{w: &buf}).record(sampleRecord()); err != nil {
		t.Fatalf("record: %v", err)
	}
	want := `Record ID: 1
Field: id, Value: 1
Field: title, Value: "hello"
Field: userId, Value: 2
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrinter_TextSelectedFields(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf, fields: []string{"title", "missing"}}
	total := 1
	if err := p.list([]dataprovider.Record{sampleRecord()}, &total, nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "Record ID: 1\nField: title, Value: \"hello\"\nTotal: 1\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf, json: true}
	total := 3
	info := &dataprovider.PageInfo{HasNextPage: true}
	if err := p.list([]dataprovider.Record{sampleRecord()}, &total, info); err != nil {
		t.Fatalf("list: %v", err)
	}

	var out struct {
		Data     []map[string]any `json:"data"`
		Total    int              `json:"total"`
		PageInfo map[string]bool  `json:"page_info"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(out.Data) != 1 || out.Data[0]["title"] != "hello" || out.Total != 3 || !out.PageInfo["has_next_page"] {
		t.Errorf("unexpected output %+v", out)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented JSON")
	}
}

func TestPrinter_IDs(t *testing.T) {
	var buf bytes.Buffer
	if err := (printer{w: &buf}).ids([]dataprovider.Identifier{dataprovider.NumberID(1), dataprovider.TextID("b")}); err != nil {
		t.Fatalf("ids: %v", err)
	}
	if buf.String() != "Record ID: 1\nRecord ID: b\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	if err := (printer{w: &buf, json: true}).ids(nil); err != nil {
		t.Fatalf("ids: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", `"x"`},
		{json.Number("1.5"), "1.5"},
		{true, "true"},
		{nil, "null"},
		{[]any{"a", json.Number("1")}, `["a",1]`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
