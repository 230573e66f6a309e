package domain

import "strings"

// ValidationResult is the outcome of a variant's field checks.
type ValidationResult struct {
	errors []string
}

func ValidationSuccess() ValidationResult {
	return ValidationResult{}
}

// ValidationFailure always carries at least one message, in check order.
func ValidationFailure(first string, more ...string) ValidationResult {
	errs := make([]string, 0, 1+len(more))
	errs = append(errs, first)
	errs = append(errs, more...)
	return ValidationResult{errors: errs}
}

func (r ValidationResult) IsValid() bool { return len(r.errors) == 0 }

func (r ValidationResult) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Summary joins the errors with ", ".
func (r ValidationResult) Summary() string {
	return strings.Join(r.errors, ", ")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
