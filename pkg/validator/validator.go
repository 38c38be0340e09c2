// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can validate bound request DTOs by struct tag.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound DTOs against their validate tags
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator for echo's e.Validator slot
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks the struct tags of a bound request
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
