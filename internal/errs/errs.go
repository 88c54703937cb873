// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for validation or HTTPError for API responses)
// to ensure the client receive meaningful and consistent
// error messages.
//
// Every error leaves the API as `{"msg": "<message>"}`; the status code
// and field errors travel on HTTPError and end up in the logs.
package errs
