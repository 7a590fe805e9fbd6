// Package validator checks request and domain structs against their
// `validate` struct tags.
package validator

// Validator validates a struct and returns a V10ValidationError listing the
// offending fields, or any other error when data cannot be validated at all.
type Validator interface {
	Validate(data any) error
}
