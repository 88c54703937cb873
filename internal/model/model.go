// Package model holds the news domain types and the request payloads bound
// by the handler layer.
//
// Row types carry `db` tags for pgx.RowToStructByName and `json` tags for the
// HTTP responses. Request types carry echo bind tags (`param`, `query`,
// `json`) plus `validate` tags and implement validation.Validatable.
package model

import (
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Keys and vote increments are Postgres INTEGER columns.
	_ = v.RegisterValidation("int4", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= math.MinInt32 && n <= math.MaxInt32
	})

	return v
}

// EmptyRequest is bound by routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
