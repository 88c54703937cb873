// Package validation contains the logic for binding and validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields) defined in struct tags and turns any
// binding or validation failure into a 400 "bad request"
package validation
