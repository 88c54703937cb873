package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional; nil defaults to "BAD_REQUEST".
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// code is optional; nil defaults to "NOT_FOUND".
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewMethodNotAllowedError creates a 405 HTTPError for known paths hit with
// an unsupported method.
func NewMethodNotAllowedError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed)),
		Message: "method not allowed",
		Status:  http.StatusMethodNotAllowed,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always generic; the real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: MsgInternalServerError,
		Status:  http.StatusInternalServerError,
	}
}

// BadRequest is the plain 400 used for any malformed input.
func BadRequest() *HTTPError {
	return NewBadRequestError(MsgBadRequest, nil, nil)
}

// IDNotFound is the 404 for a well-formed numeric key with no row.
func IDNotFound() *HTTPError {
	return NewNotFoundError(MsgIDNotFound, nil)
}

// UsernameNotFound is the 404 for an unknown username.
func UsernameNotFound() *HTTPError {
	code := "USER_NOT_FOUND"
	return NewNotFoundError(MsgUsernameNotFound, &code)
}
