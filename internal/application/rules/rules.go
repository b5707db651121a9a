// internal/application/rules/rules.go
package rules

import (
	"strconv"
	"strings"

	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/common/validation"
)

// ErrorKind classifies a failing rule.
type ErrorKind string

const (
	KindRequired       ErrorKind = "REQUIRED"
	KindFormatInvalid  ErrorKind = "FORMAT_INVALID"
	KindRangeInvalid   ErrorKind = "RANGE_INVALID"
	KindSelectionEmpty ErrorKind = "SELECTION_EMPTY"
)

const (
	MsgFullNameRequired             = "Full Name is required"
	MsgEmailRequired                = "Email is required"
	MsgEmailInvalid                 = "Email address is invalid"
	MsgPhoneRequired                = "Phone Number is required"
	MsgPhoneInvalid                 = "Phone Number must be a valid number"
	MsgExperienceRequired           = "Relevant Experience is required"
	MsgExperienceRange              = "Relevant Experience must be greater than 0"
	MsgPortfolioRequired            = "Portfolio URL is required"
	MsgPortfolioInvalid             = "Portfolio URL must be a valid URL"
	MsgManagementExperienceRequired = "Management Experience is required"
	MsgSkillsEmpty                  = "At least one skill must be selected"
	MsgInterviewTimeRequired        = "Preferred Interview Time is required"
)

// Violation is one failing field rule.
type Violation struct {
	Field   fields.FieldName `json:"field"`
	Kind    ErrorKind        `json:"kind"`
	Message string           `json:"message"`
}

// rule returns nil when the field passes. At most one violation per field:
// presence is checked before format.
type rule struct {
	field fields.FieldName
	check func(v fields.Values) *Violation
}

var table = []rule{
	{fields.FieldFullName, checkFullName},
	{fields.FieldEmail, checkEmail},
	{fields.FieldPhoneNumber, checkPhoneNumber},
	{fields.FieldRelevantExperience, checkRelevantExperience},
	{fields.FieldPortfolioURL, checkPortfolioURL},
	{fields.FieldManagementExperience, checkManagementExperience},
	{fields.FieldSkills, checkSkills},
	{fields.FieldInterviewTime, checkInterviewTime},
}

// Check evaluates every rule against v and returns the failures in field
// declaration order. It is pure: the same values always give the same result.
func Check(v fields.Values) []Violation {
	var out []Violation
	for _, r := range table {
		if viol := r.check(v); viol != nil {
			out = append(out, *viol)
		}
	}
	return out
}

// Validate returns the ErrorMap for v. An empty map means v may be submitted.
func Validate(v fields.Values) ErrorMap {
	errs := ErrorMap{}
	for _, viol := range Check(v) {
		errs[viol.Field] = viol.Message
	}
	return errs
}

func fail(f fields.FieldName, kind ErrorKind, msg string) *Violation {
	return &Violation{Field: f, Kind: kind, Message: msg}
}

func checkFullName(v fields.Values) *Violation {
	if v.FullName == "" {
		return fail(fields.FieldFullName, KindRequired, MsgFullNameRequired)
	}
	return nil
}

func checkEmail(v fields.Values) *Violation {
	switch {
	case v.Email == "":
		return fail(fields.FieldEmail, KindRequired, MsgEmailRequired)
	case !validation.IsEmailShape(v.Email):
		return fail(fields.FieldEmail, KindFormatInvalid, MsgEmailInvalid)
	}
	return nil
}

func checkPhoneNumber(v fields.Values) *Violation {
	switch {
	case v.PhoneNumber == "":
		return fail(fields.FieldPhoneNumber, KindRequired, MsgPhoneRequired)
	case !validation.IsDigits(v.PhoneNumber):
		return fail(fields.FieldPhoneNumber, KindFormatInvalid, MsgPhoneInvalid)
	}
	return nil
}

func checkRelevantExperience(v fields.Values) *Violation {
	if !fields.IsRelevant(fields.FieldRelevantExperience, v) {
		return nil
	}
	if v.RelevantExperience == "" {
		return fail(fields.FieldRelevantExperience, KindRequired, MsgExperienceRequired)
	}
	if n, ok := ParseLeadingInt(v.RelevantExperience); !ok || n <= 0 {
		return fail(fields.FieldRelevantExperience, KindRangeInvalid, MsgExperienceRange)
	}
	return nil
}

// The format check applies to any non-empty portfolio URL, even when the field
// is hidden for the current position.
func checkPortfolioURL(v fields.Values) *Violation {
	if v.PortfolioURL == "" {
		if v.Position == fields.PositionDesigner {
			return fail(fields.FieldPortfolioURL, KindRequired, MsgPortfolioRequired)
		}
		return nil
	}
	if !validation.IsURL(v.PortfolioURL) {
		return fail(fields.FieldPortfolioURL, KindFormatInvalid, MsgPortfolioInvalid)
	}
	return nil
}

func checkManagementExperience(v fields.Values) *Violation {
	if fields.IsRelevant(fields.FieldManagementExperience, v) && v.ManagementExperience == "" {
		return fail(fields.FieldManagementExperience, KindRequired, MsgManagementExperienceRequired)
	}
	return nil
}

func checkSkills(v fields.Values) *Violation {
	if len(v.Skills) == 0 {
		return fail(fields.FieldSkills, KindSelectionEmpty, MsgSkillsEmpty)
	}
	return nil
}

func checkInterviewTime(v fields.Values) *Violation {
	if v.InterviewTime == nil {
		return fail(fields.FieldInterviewTime, KindRequired, MsgInterviewTimeRequired)
	}
	return nil
}

// ParseLeadingInt reads an optionally signed decimal integer at the start of s,
// after leading whitespace. Trailing text is ignored ("3 years" is 3). ok is false
// when no digits are found. Values beyond the int64 range saturate.
func ParseLeadingInt(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	// on ErrRange ParseInt returns the clamped value
	n, _ = strconv.ParseInt(s[:end], 10, 64)
	return n, true
}
