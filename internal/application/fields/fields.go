// internal/application/fields/fields.go
package fields

import (
	"fmt"
	"time"
)

// FieldName identifies one input slot of the applicant form.
type FieldName string

const (
	FieldFullName             FieldName = "fullName"
	FieldEmail                FieldName = "email"
	FieldPhoneNumber          FieldName = "phoneNumber"
	FieldPosition             FieldName = "position"
	FieldRelevantExperience   FieldName = "relevantExperience"
	FieldPortfolioURL         FieldName = "portfolioUrl"
	FieldManagementExperience FieldName = "managementExperience"
	FieldSkills               FieldName = "skills"
	FieldInterviewTime        FieldName = "interviewTime"
)

// declaration order is display order
var allFields = []FieldName{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPosition,
	FieldRelevantExperience,
	FieldPortfolioURL,
	FieldManagementExperience,
	FieldSkills,
	FieldInterviewTime,
}

var labels = map[FieldName]string{
	FieldFullName:             "Full Name",
	FieldEmail:                "Email",
	FieldPhoneNumber:          "Phone Number",
	FieldPosition:             "Position",
	FieldRelevantExperience:   "Relevant Experience",
	FieldPortfolioURL:         "Portfolio URL",
	FieldManagementExperience: "Management Experience",
	FieldSkills:               "Additional Skills",
	FieldInterviewTime:        "Preferred Interview Time",
}

// Fields returns every field in declaration order.
func Fields() []FieldName {
	out := make([]FieldName, len(allFields))
	copy(out, allFields)
	return out
}

// Label returns the human readable name of f.
func Label(f FieldName) string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}

// ParseFieldName maps a wire name to a FieldName.
func ParseFieldName(s string) (FieldName, error) {
	for _, f := range allFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// IsText reports whether f holds free text settable through SetText.
func IsText(f FieldName) bool {
	switch f {
	case FieldFullName, FieldEmail, FieldPhoneNumber,
		FieldRelevantExperience, FieldPortfolioURL, FieldManagementExperience:
		return true
	default:
		return false
	}
}

// Values is the full set of field values. Every slot is always present; an
// empty slot holds its zero value.
type Values struct {
	FullName             string     `json:"fullName"`
	Email                string     `json:"email"`
	PhoneNumber          string     `json:"phoneNumber"`
	Position             Position   `json:"position"`
	RelevantExperience   string     `json:"relevantExperience"`
	PortfolioURL         string     `json:"portfolioUrl"`
	ManagementExperience string     `json:"managementExperience"`
	Skills               SkillSet   `json:"skills"`
	InterviewTime        *time.Time `json:"interviewTime"`
}

// Defaults returns the initial values of a fresh form.
func Defaults() Values {
	return Values{
		Position: PositionUnselected,
		Skills:   SkillSet{},
	}
}

// Clone returns a deep copy of v.
func (v Values) Clone() Values {
	out := v
	out.Skills = v.Skills.clone()
	if v.InterviewTime != nil {
		t := *v.InterviewTime
		out.InterviewTime = &t
	}
	return out
}

// Text returns the stored text of a text field.
func (v Values) Text(f FieldName) (string, bool) {
	switch f {
	case FieldFullName:
		return v.FullName, true
	case FieldEmail:
		return v.Email, true
	case FieldPhoneNumber:
		return v.PhoneNumber, true
	case FieldRelevantExperience:
		return v.RelevantExperience, true
	case FieldPortfolioURL:
		return v.PortfolioURL, true
	case FieldManagementExperience:
		return v.ManagementExperience, true
	default:
		return "", false
	}
}

// SetText replaces the value of a text field. It reports false for any other field.
func (v *Values) SetText(f FieldName, value string) bool {
	switch f {
	case FieldFullName:
		v.FullName = value
	case FieldEmail:
		v.Email = value
	case FieldPhoneNumber:
		v.PhoneNumber = value
	case FieldRelevantExperience:
		v.RelevantExperience = value
	case FieldPortfolioURL:
		v.PortfolioURL = value
	case FieldManagementExperience:
		v.ManagementExperience = value
	default:
		return false
	}
	return true
}
