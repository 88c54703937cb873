package errs

import "strings"

// Messages returned to clients.
const (
	MsgBadRequest          = "bad request"
	MsgIDNotFound          = "id not found"
	MsgUsernameNotFound    = "username not found"
	MsgTopicNotFound       = "topic not found"
	MsgRouteNotFound       = "route not found"
	MsgInternalServerError = "internal server error"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "inc_votes", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Response is the body written for every error.
type Response struct {
	Msg string `json:"msg"`
}

// HTTPError is the application error carried up to the global error handler.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: the client-facing message.
//   - Status: HTTP status code.
//   - Errors: list of per-field errors (validation), logged only.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports true for any *HTTPError target, so errors.Is(err, &HTTPError{})
// tells whether an application error is anywhere in the chain.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Response converts the error into the client-facing body.
func (e *HTTPError) Response() Response {
	return Response{Msg: e.Message}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
