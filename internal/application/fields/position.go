// internal/application/fields/position.go
package fields

import "fmt"

// Position is the role applied for. The zero value is PositionUnselected.
type Position string

const (
	PositionUnselected Position = ""
	PositionDeveloper  Position = "Developer"
	PositionDesigner   Position = "Designer"
	PositionManager    Position = "Manager"
)

// Positions returns the selectable positions, Unselected excluded.
func Positions() []Position {
	return []Position{PositionDeveloper, PositionDesigner, PositionManager}
}

// ParsePosition accepts "" (Unselected) or one of the selectable positions.
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case PositionUnselected, PositionDeveloper, PositionDesigner, PositionManager:
		return p, nil
	default:
		return PositionUnselected, fmt.Errorf("unknown position %q", s)
	}
}

// ConditionalFields returns the fields shown only for p.
func ConditionalFields(p Position) []FieldName {
	switch p {
	case PositionDeveloper:
		return []FieldName{FieldRelevantExperience}
	case PositionDesigner:
		return []FieldName{FieldRelevantExperience, FieldPortfolioURL}
	case PositionManager:
		return []FieldName{FieldManagementExperience}
	case PositionUnselected:
		return nil
	default:
		return nil
	}
}

func isConditional(f FieldName) bool {
	switch f {
	case FieldRelevantExperience, FieldPortfolioURL, FieldManagementExperience:
		return true
	default:
		return false
	}
}

// IsRelevant reports whether f is currently shown and rule-checked for values.
// Irrelevant fields keep their stored value.
func IsRelevant(f FieldName, values Values) bool {
	if !isConditional(f) {
		return true
	}
	for _, c := range ConditionalFields(values.Position) {
		if c == f {
			return true
		}
	}
	return false
}
