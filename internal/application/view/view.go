// internal/application/view/view.go
package view

import (
	"strings"
	"time"

	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/form"
	"applicant-forms/internal/application/rules"
)

const (
	FormTitle    = "Job Application Form"
	SummaryTitle = "Application Summary"
	SubmitLabel  = "Submit Application"
	BackLabel    = "Back to Form"

	PositionPlaceholder = "Select a position"

	// TimeLayout renders interview times as "October 20, 2026 10:00 AM".
	TimeLayout = "January 2, 2006 3:04 PM"
)

const (
	ModeForm    = "form"
	ModeSummary = "summary"
)

type Kind string

const (
	KindText       Kind = "text"
	KindEmail      Kind = "email"
	KindTel        Kind = "tel"
	KindSelect     Kind = "select"
	KindNumber     Kind = "number"
	KindURL        Kind = "url"
	KindTextarea   Kind = "textarea"
	KindCheckboxes Kind = "checkboxes"
	KindDateTime   Kind = "datetime"
)

var kinds = map[fields.FieldName]Kind{
	fields.FieldFullName:             KindText,
	fields.FieldEmail:                KindEmail,
	fields.FieldPhoneNumber:          KindTel,
	fields.FieldPosition:             KindSelect,
	fields.FieldRelevantExperience:   KindNumber,
	fields.FieldPortfolioURL:         KindURL,
	fields.FieldManagementExperience: KindTextarea,
	fields.FieldSkills:               KindCheckboxes,
	fields.FieldInterviewTime:        KindDateTime,
}

// form labels that differ from the summary labels
var formLabels = map[fields.FieldName]string{
	fields.FieldPosition:           "Applying for Position",
	fields.FieldRelevantExperience: "Relevant Experience (years)",
}

// Choice is one option of a select or checkbox group.
type Choice struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label" yaml:"label"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// Input is one visible form control with the error attached to it, if any.
type Input struct {
	Field   fields.FieldName `json:"field" yaml:"field"`
	Label   string           `json:"label" yaml:"label"`
	Kind    Kind             `json:"kind" yaml:"kind"`
	Value   string           `json:"value,omitempty" yaml:"value,omitempty"`
	Choices []Choice         `json:"choices,omitempty" yaml:"choices,omitempty"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

type FormView struct {
	Title  string  `json:"title" yaml:"title"`
	Inputs []Input `json:"inputs" yaml:"inputs"`
	Submit string  `json:"submit" yaml:"submit"`
}

type Row struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type SummaryView struct {
	Title string `json:"title" yaml:"title"`
	Rows  []Row  `json:"rows" yaml:"rows"`
	Back  string `json:"back" yaml:"back"`
}

// View is what the applicant currently sees: exactly one of Form or Summary is set.
type View struct {
	Mode    string       `json:"mode" yaml:"mode"`
	Form    *FormView    `json:"form,omitempty" yaml:"form,omitempty"`
	Summary *SummaryView `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Project picks the summary when the form is completed and the form otherwise.
func Project(s form.State) View {
	if s.Completed {
		sv := ProjectSummary(s.Values)
		return View{Mode: ModeSummary, Summary: &sv}
	}
	fv := ProjectForm(s.Values, s.Errors)
	return View{Mode: ModeForm, Form: &fv}
}

// ProjectForm lists the relevant inputs in declaration order. Errors are
// attached only to inputs that are shown; a hidden field's error stays in the
// ErrorMap but is not displayed.
func ProjectForm(values fields.Values, errs rules.ErrorMap) FormView {
	fv := FormView{Title: FormTitle, Submit: SubmitLabel}
	for _, f := range fields.Fields() {
		if !fields.IsRelevant(f, values) {
			continue
		}
		in := Input{
			Field: f,
			Label: formLabel(f),
			Kind:  kinds[f],
			Error: errs[f],
		}
		switch f {
		case fields.FieldPosition:
			in.Value = string(values.Position)
			in.Choices = positionChoices(values.Position)
		case fields.FieldSkills:
			in.Choices = skillChoices(values.Skills)
		case fields.FieldInterviewTime:
			in.Value = formatTime(values.InterviewTime)
		default:
			in.Value, _ = values.Text(f)
		}
		fv.Inputs = append(fv.Inputs, in)
	}
	return fv
}

// ProjectSummary lists the submitted values read-only, conditional fields only
// when relevant for the chosen position.
func ProjectSummary(values fields.Values) SummaryView {
	sv := SummaryView{Title: SummaryTitle, Back: BackLabel}
	for _, f := range fields.Fields() {
		if !fields.IsRelevant(f, values) {
			continue
		}
		sv.Rows = append(sv.Rows, Row{Label: fields.Label(f), Value: summaryValue(f, values)})
	}
	return sv
}

func summaryValue(f fields.FieldName, values fields.Values) string {
	switch f {
	case fields.FieldPosition:
		return string(values.Position)
	case fields.FieldRelevantExperience:
		return values.RelevantExperience + " years"
	case fields.FieldSkills:
		names := make([]string, len(values.Skills))
		for i, s := range values.Skills {
			names[i] = string(s)
		}
		return strings.Join(names, ", ")
	case fields.FieldInterviewTime:
		return formatTime(values.InterviewTime)
	default:
		v, _ := values.Text(f)
		return v
	}
}

func formLabel(f fields.FieldName) string {
	if l, ok := formLabels[f]; ok {
		return l
	}
	return fields.Label(f)
}

func positionChoices(current fields.Position) []Choice {
	out := []Choice{{Value: "", Label: PositionPlaceholder, Selected: current == fields.PositionUnselected}}
	for _, p := range fields.Positions() {
		out = append(out, Choice{Value: string(p), Label: string(p), Selected: p == current})
	}
	return out
}

func skillChoices(selected fields.SkillSet) []Choice {
	catalog := fields.Catalog()
	out := make([]Choice, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, Choice{Value: string(s), Label: string(s), Selected: selected.Has(s)})
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimeLayout)
}
