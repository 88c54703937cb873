// Package handler is the first layer after the router.
//
// It binds path, query and body input into typed request
// structs, validates them with the validation package,
// calls the service layer and shapes the JSON response.
package handler
