package errors

// Machine-readable error codes carried in every error reply.
const (
	CodeMissingField    = "MISSING_FIELD"
	CodeValidationError = "VALIDATION_ERROR"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidID       = "INVALID_ID"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// New builds an ErrorResponse from a message and a code.
func New(message, code string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code}
}
