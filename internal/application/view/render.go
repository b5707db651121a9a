// internal/application/view/render.go
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes v to w in the given format. An empty format means text.
func Render(w io.Writer, v View, format string) error {
	switch format {
	case "", FormatText:
		return renderText(w, v)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown view format %q", format)
	}
}

func renderText(w io.Writer, v View) error {
	var b strings.Builder
	switch {
	case v.Summary != nil:
		writeSummary(&b, v.Summary)
	case v.Form != nil:
		writeForm(&b, v.Form)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeForm(b *strings.Builder, fv *FormView) {
	fmt.Fprintf(b, "== %s ==\n", fv.Title)
	for _, in := range fv.Inputs {
		switch in.Kind {
		case KindSelect, KindCheckboxes:
			fmt.Fprintf(b, "%s:\n", in.Label)
			for _, c := range in.Choices {
				mark := " "
				if c.Selected {
					mark = "x"
				}
				fmt.Fprintf(b, "  [%s] %s\n", mark, c.Label)
			}
		default:
			fmt.Fprintf(b, "%s: %s\n", in.Label, in.Value)
		}
		if in.Error != "" {
			fmt.Fprintf(b, "  ! %s\n", in.Error)
		}
	}
	fmt.Fprintf(b, "[ %s ]\n", fv.Submit)
}

func writeSummary(b *strings.Builder, sv *SummaryView) {
	fmt.Fprintf(b, "== %s ==\n", sv.Title)
	for _, r := range sv.Rows {
		fmt.Fprintf(b, "%s: %s\n", r.Label, r.Value)
	}
	fmt.Fprintf(b, "[ %s ]\n", sv.Back)
}
