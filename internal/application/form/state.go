// internal/application/form/state.go
package form

import (
	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/rules"
)

// State is a snapshot of one form: its values, the errors of the last submit,
// and whether the form is showing its summary.
type State struct {
	Values    fields.Values  `json:"values"`
	Errors    rules.ErrorMap `json:"errors"`
	Completed bool           `json:"completed"`
}

// NewState returns the state of a fresh form.
func NewState() State {
	return State{
		Values: fields.Defaults(),
		Errors: rules.ErrorMap{},
	}
}

func (s State) Clone() State {
	return State{
		Values:    s.Values.Clone(),
		Errors:    s.Errors.Clone(),
		Completed: s.Completed,
	}
}

// SubmitResult reports the outcome of one submit.
type SubmitResult struct {
	Errors     rules.ErrorMap    `json:"errors"`
	Violations []rules.Violation `json:"violations,omitempty"`
	Completed  bool              `json:"completed"`
}
