package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/kbukum/dataprovider/dataprovider"
)

// printer renders results either as text lines or as indented JSON.
type printer struct {
	w      io.Writer
	json   bool
	fields []string
}

func (p printer) records(recs []dataprovider.Record) error {
	if p.json {
		if recs == nil {
			recs = []dataprovider.Record{}
		}
		return p.value(recs)
	}
	for _, rec := range recs {
		p.text(rec)
	}
	return nil
}

func (p printer) record(rec dataprovider.Record) error {
	if p.json {
		return p.value(rec)
	}
	p.text(rec)
	return nil
}

func (p printer) ids(ids []dataprovider.Identifier) error {
	if p.json {
		if ids == nil {
			ids = []dataprovider.Identifier{}
		}
		return p.value(ids)
	}
	for _, id := range ids {
		fmt.Fprintf(p.w, "Record ID: %s\n", id)
	}
	return nil
}

// list prints a page of records. Text output ends with the total; JSON
// output wraps the page in an envelope.
func (p printer) list(recs []dataprovider.Record, total *int, info *dataprovider.PageInfo) error {
	if !p.json {
		if err := p.records(recs); err != nil {
			return err
		}
		if total != nil {
			fmt.Fprintf(p.w, "Total: %d\n", *total)
		}
		return nil
	}
	if recs == nil {
		recs = []dataprovider.Record{}
	}
	return p.value(struct {
		Data     []dataprovider.Record  `json:"data"`
		Total    *int                   `json:"total,omitempty"`
		PageInfo *dataprovider.PageInfo `json:"page_info,omitempty"`
	}{recs, total, info})
}

func (p printer) text(rec dataprovider.Record) {
	fmt.Fprintf(p.w, "Record ID: %s\n", rec.ID)
	for _, key := range p.keys(rec.Fields) {
		v, ok := rec.Fields[key]
		if !ok {
			continue
		}
		fmt.Fprintf(p.w, "Field: %s, Value: %s\n", key, formatValue(v))
	}
}

// keys returns the configured fields, or every field in sorted order.
func (p printer) keys(fields dataprovider.Fields) []string {
	if len(p.fields) > 0 {
		return p.fields
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p printer) value(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// formatValue prints a field value in its JSON form, so strings appear
// quoted and numbers verbatim.
func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
