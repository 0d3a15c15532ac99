// Package validator collects field-level validation failures so a request
// can report every problem at once instead of stopping at the first one.
package validator

// Validator maps field names to their validation error messages.
// A Validator with no entries is considered valid.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no errors have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for field. The first failure per field wins;
// later ones are ignored.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check records message for field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}
