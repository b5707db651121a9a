// internal/application/events/events.go
package events

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/form"
	apperrors "applicant-forms/internal/common/errors"
	"applicant-forms/internal/common/validation"
)

// Type names one kind of input event.
type Type string

const (
	TypeSet         Type = "set"
	TypeToggleSkill Type = "toggle_skill"
	TypeSelectTime  Type = "select_time"
	TypeSubmit      Type = "submit"
	TypeBack        Type = "back"
)

// Event is one discrete input from the applicant. Only the members relevant
// to Type are set; a select_time event with a nil Time clears the slot.
type Event struct {
	Type  Type
	Field string
	Value string
	Skill string
	Time  *time.Time
}

// MarshalJSON emits only the members that belong to the event's type.
func (e Event) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{"type": e.Type}
	switch e.Type {
	case TypeSet:
		out["field"] = e.Field
		out["value"] = e.Value
	case TypeToggleSkill:
		out["skill"] = e.Skill
	case TypeSelectTime:
		if e.Time != nil {
			out["time"] = e.Time.Format(time.RFC3339Nano)
		} else {
			out["time"] = nil
		}
	}
	return json.Marshal(out)
}

type wireEvent struct {
	Type  Type    `json:"type"`
	Field string  `json:"field"`
	Value string  `json:"value"`
	Skill string  `json:"skill"`
	Time  *string `json:"time"`
}

// Decode parses one JSON event after checking it against the event schema.
func Decode(data []byte) (Event, error) {
	if err := check(eventSchema, data, apperrors.NewEventDecodeError); err != nil {
		return Event{}, err
	}

	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return Event{}, apperrors.NewEventDecodeError("unmarshal event", err)
	}

	e := Event{Type: w.Type, Field: w.Field, Value: w.Value, Skill: w.Skill}
	if w.Time != nil {
		t, err := time.Parse(time.RFC3339, *w.Time)
		if err != nil {
			return Event{}, apperrors.NewEventDecodeError("time must be RFC 3339", err)
		}
		e.Time = &t
	}
	return e, nil
}

// DecodeValues parses a full or partial field values snapshot. Missing keys keep
// their default.
func DecodeValues(data []byte) (fields.Values, error) {
	if err := check(valuesSchema, data, apperrors.NewSnapshotDecodeError); err != nil {
		return fields.Values{}, err
	}
	v := fields.Defaults()
	if err := json.Unmarshal(data, &v); err != nil {
		return fields.Values{}, apperrors.NewSnapshotDecodeError("unmarshal values", err)
	}
	if v.Skills == nil {
		v.Skills = fields.SkillSet{}
	}
	return v, nil
}

func check(s *validation.Schema, data []byte, newErr func(string, error) *apperrors.StandardError) error {
	res, err := s.Validate(data)
	if err != nil {
		return newErr("malformed JSON", err)
	}
	if !res.Valid {
		return newErr(strings.Join(res.GetErrorMessages(), "; "), nil)
	}
	return nil
}

// FromValues returns the events that fill a fresh form with v.
func FromValues(v fields.Values) []Event {
	var out []Event
	for _, f := range fields.Fields() {
		switch {
		case f == fields.FieldPosition:
			if v.Position != fields.PositionUnselected {
				out = append(out, Event{Type: TypeSet, Field: string(f), Value: string(v.Position)})
			}
		case fields.IsText(f):
			if text, _ := v.Text(f); text != "" {
				out = append(out, Event{Type: TypeSet, Field: string(f), Value: text})
			}
		}
	}
	for _, s := range v.Skills {
		out = append(out, Event{Type: TypeToggleSkill, Skill: string(s)})
	}
	if v.InterviewTime != nil {
		t := *v.InterviewTime
		out = append(out, Event{Type: TypeSelectTime, Time: &t})
	}
	return out
}

// Apply feeds e to c. The result is non-nil only for submit events.
func Apply(ctx context.Context, c *form.Controller, e Event) (*form.SubmitResult, error) {
	switch e.Type {
	case TypeSet:
		return nil, c.SetField(e.Field, e.Value)
	case TypeToggleSkill:
		return nil, c.ToggleSkill(fields.Skill(e.Skill))
	case TypeSelectTime:
		if e.Time == nil {
			c.ClearInterviewTime()
		} else {
			c.SetInterviewTime(*e.Time)
		}
		return nil, nil
	case TypeSubmit:
		res := c.SubmitContext(ctx)
		return &res, nil
	case TypeBack:
		c.Back()
		return nil, nil
	default:
		return nil, apperrors.NewEventDecodeError(fmt.Sprintf("unsupported event type %q", e.Type), nil)
	}
}

// Reader decodes a stream of JSON-lines events. Blank lines and lines starting
// with '#' are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next event, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := Decode([]byte(text))
		if err != nil {
			return Event{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return e, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
