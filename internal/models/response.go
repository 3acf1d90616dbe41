package models

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// ErrorResponse is the body of every non-2xx response. Message repeats the
// error message at the top level for callers that only read that field.
type ErrorResponse struct {
	Error   APIError `json:"error"`
	Message string   `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
