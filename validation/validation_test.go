package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/dataprovider/errors"
)

type fieldConfig struct {
	Name string `mapstructure:"name" validate:"required"`
}

type clientConfig struct {
	URL         string        `mapstructure:"url" validate:"required,url"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=0"`
	Fields      []fieldConfig `mapstructure:"fields" validate:"dive"`
}

type appConfig struct {
	Name    string                  `mapstructure:"name" validate:"required,min=2"`
	Clients map[string]clientConfig `mapstructure:"clients" validate:"dive"`
}

func TestValidateValid(t *testing.T) {
	cfg := appConfig{
		Name: "dataprovider",
		Clients: map[string]clientConfig{
			"api": {URL: "https://jsonplaceholder.typicode.com", Concurrency: 4},
		},
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateNested(t *testing.T) {
	cfg := appConfig{
		Name: "dataprovider",
		Clients: map[string]clientConfig{
			"api": {URL: "not a url", Concurrency: -1, Fields: []fieldConfig{{}}},
		},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("code = %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %#v", appErr.Details["fields"])
	}
	msg := err.Error()
	for _, want := range []string{
		"clients[api].url: must be a valid URL",
		"clients[api].concurrency: must be greater than or equal to 0",
		"clients[api].fields[0].name: is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateMinString(t *testing.T) {
	err := Validate(appConfig{Name: "x"})
	if err == nil || !strings.Contains(err.Error(), "name: must be at least 2 characters") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateNonStruct(t *testing.T) {
	if err := Validate("plain string"); err == nil {
		t.Error("expected error for non-struct input")
	}
}

func TestValidatorCollects(t *testing.T) {
	v := New()
	result := v.Required("id", " ").
		NotEmpty("ids", 0).
		OneOf("kind", "uuid", []string{"text", "number"}).
		Custom(false, "pair", "must be key=value")
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if len(v.Errors()) != 4 {
		t.Fatalf("expected 4 errors, got %d: %+v", len(v.Errors()), v.Errors())
	}
	err := v.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "kind: must be one of: text, number") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidatorNoErrors(t *testing.T) {
	v := New().
		Required("id", "1").
		NotEmpty("ids", 2).
		OneOf("kind", "", []string{"text"}).
		OneOf("order", "asc", []string{"asc", "desc"}).
		Custom(true, "pair", "unused")
	if v.HasErrors() {
		t.Errorf("unexpected errors: %+v", v.Errors())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"ListQuery":   "list_query",
		"Concurrency": "concurrency",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
