package applicantsdk

import "fmt"

// Stable error codes used in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeDuplicateApplicant = "duplicate_applicant"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeAlreadyVerified    = "already_verified"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInvalidTransition  = "invalid_transition"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInsufficientScope  = "insufficient_scope"
	ErrorCodeServerError        = "server_error"
)

// APIError is the client-side representation of a non-2xx response.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Description)
}
