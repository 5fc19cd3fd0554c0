package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_RetryableDetection(t *testing.T) {
	if e := New(ErrCodeTimeout, "slow", http.StatusGatewayTimeout); !e.Retryable {
		t.Error("expected TIMEOUT to be retryable")
	}
	if e := New(ErrCodeNotFound, "gone", http.StatusNotFound); e.Retryable {
		t.Error("expected NOT_FOUND to be non-retryable")
	}
}

func TestNotFound(t *testing.T) {
	e := NotFound("posts", "7")
	if e.Code != ErrCodeNotFound || e.HTTPStatus != http.StatusNotFound {
		t.Errorf("unexpected code/status: %s %d", e.Code, e.HTTPStatus)
	}
	if e.Details["resource"] != "posts" || e.Details["id"] != "7" {
		t.Errorf("unexpected details: %v", e.Details)
	}

	noID := NotFound("posts", "")
	if _, ok := noID.Details["id"]; ok {
		t.Error("expected no id detail for empty id")
	}
}

func TestInvalidInput(t *testing.T) {
	e := InvalidInput("title", "must be a string")
	if e.HTTPStatus != http.StatusBadRequest || e.Details["field"] != "title" {
		t.Errorf("unexpected error: %+v", e)
	}
	if !strings.Contains(e.Message, "must be a string") {
		t.Errorf("unexpected message: %q", e.Message)
	}
}

func TestWithCause_Chain(t *testing.T) {
	root := fmt.Errorf("dial tcp: refused")
	e := ExternalServiceError("jsonplaceholder", root)
	if !stderrors.Is(e, root) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(e.Error(), "cause: dial tcp: refused") {
		t.Errorf("expected cause in message, got %q", e.Error())
	}

	wrapped := fmt.Errorf("outer: %w", Internal(nil).WithCause(root))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInternal {
		t.Fatalf("expected wrapped AppError, got %v", wrapped)
	}
	if !IsAppError(wrapped) {
		t.Error("IsAppError should see through wrapping")
	}
}

func TestToResponse(t *testing.T) {
	e := Conflict("id already taken").WithDetail("id", "3")
	data, err := json.Marshal(e.ToResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["error"]["code"] != string(ErrCodeConflict) {
		t.Errorf("expected CONFLICT code, got %v", body["error"]["code"])
	}
	details, _ := body["error"]["details"].(map[string]any)
	if details["id"] != "3" {
		t.Errorf("expected id detail, got %v", details)
	}
	if body["error"]["status"] != float64(http.StatusConflict) {
		t.Errorf("expected status 409, got %v", body["error"]["status"])
	}
	if _, ok := body["error"]["request_id"]; ok {
		t.Error("request_id should be omitted when unset")
	}
}

func TestToResponse_RequestIDAndCopy(t *testing.T) {
	e := NotFound("posts", "7")
	resp := e.ToResponse().WithRequestID("req-1")
	if resp.Error.RequestID != "req-1" || resp.Error.Status != http.StatusNotFound {
		t.Errorf("unexpected body %+v", resp.Error)
	}
	resp.Error.Details["id"] = "8"
	if e.Details["id"] != "7" {
		t.Error("response details should not alias the error's details")
	}
	if e.ToResponse().Error.RequestID != "" {
		t.Error("WithRequestID should not change later responses")
	}
}

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{401, ErrCodeUnauthorized},
		{403, ErrCodeForbidden},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{422, ErrCodeInvalidInput},
		{429, ErrCodeRateLimited},
		{500, ErrCodeExternalService},
		{503, ErrCodeServiceUnavailable},
		{504, ErrCodeTimeout},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			e := FromHTTPStatus(tt.status, "msg")
			if e.Code != tt.want {
				t.Errorf("FromHTTPStatus(%d) = %s, want %s", tt.status, e.Code, tt.want)
			}
			if e.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, e.HTTPStatus)
			}
		})
	}
}
