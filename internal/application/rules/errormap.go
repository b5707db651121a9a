package rules

import (
	"sort"

	"applicant-forms/internal/application/fields"
)

// ErrorMap maps a field to its failure message. A key is present iff the
// field's rule failed on the last submit.
type ErrorMap map[fields.FieldName]string

func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m ErrorMap) Has(f fields.FieldName) bool {
	_, ok := m[f]
	return ok
}

// Fields returns the failing fields in declaration order.
func (m ErrorMap) Fields() []fields.FieldName {
	out := make([]fields.FieldName, 0, len(m))
	order := map[fields.FieldName]int{}
	for i, f := range fields.Fields() {
		order[f] = i
	}
	for f := range m {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}
