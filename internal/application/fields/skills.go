// internal/application/fields/skills.go
package fields

import (
	"encoding/json"
	"fmt"
)

type Skill string

const (
	SkillJavaScript Skill = "JavaScript"
	SkillCSS        Skill = "CSS"
	SkillPython     Skill = "Python"
	SkillReact      Skill = "React"
	SkillNodeJS     Skill = "Node.js"
)

var catalog = []Skill{SkillJavaScript, SkillCSS, SkillPython, SkillReact, SkillNodeJS}

// Catalog returns the selectable skills in display order.
func Catalog() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

func ParseSkill(s string) (Skill, error) {
	for _, c := range catalog {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown skill %q", s)
}

// SkillSet is a set of catalog skills, kept in catalog order.
type SkillSet []Skill

func (s SkillSet) Has(skill Skill) bool {
	for _, x := range s {
		if x == skill {
			return true
		}
	}
	return false
}

// Toggle returns s with skill added if absent or removed if present.
func (s SkillSet) Toggle(skill Skill) SkillSet {
	present := s.Has(skill)
	out := make(SkillSet, 0, len(s)+1)
	for _, c := range catalog {
		switch {
		case c == skill && !present:
			out = append(out, c)
		case c != skill && s.Has(c):
			out = append(out, c)
		}
	}
	return out
}

func (s SkillSet) clone() SkillSet {
	out := make(SkillSet, len(s))
	copy(out, s)
	return out
}

// MarshalJSON always emits an array, never null.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Skill(s))
}

// UnmarshalJSON rejects skills outside the catalog and normalizes order and duplicates.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := SkillSet{}
	for _, r := range raw {
		skill, err := ParseSkill(r)
		if err != nil {
			return err
		}
		if !set.Has(skill) {
			set = set.Toggle(skill)
		}
	}
	*s = set
	return nil
}
