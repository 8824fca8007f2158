package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpInvalidIntervalError   = "invalid_interval"
	HttpInvalidTimeInputError  = "invalid_time_input"
	HttpNegativeDurationError  = "negative_duration"
	HttpDuplicateIntervalError = "duplicate_interval"
	HttpInvalidQueryError      = "invalid_query"
	HttpRequestTooLargeError   = "request_too_large"
)

// ErrorResponse is the error response body for every API error.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
