package errors

// ErrorResponse is the JSON error envelope written by the in-memory backend
// and by the CLI in --json mode.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the client-visible part of an AppError.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Status    int            `json:"status,omitempty"`
	Retryable bool           `json:"retryable"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse renders e for a client. The cause is never exposed.
func (e *AppError) ToResponse() ErrorResponse {
	var details map[string]any
	if len(e.Details) > 0 {
		details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			details[k] = v
		}
	}
	return ErrorResponse{Error: ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Status:    e.HTTPStatus,
		Retryable: e.Retryable,
		Details:   details,
	}}
}

// WithRequestID returns a copy of r tagged with the request it answers.
func (r ErrorResponse) WithRequestID(id string) ErrorResponse {
	r.Error.RequestID = id
	return r
}
