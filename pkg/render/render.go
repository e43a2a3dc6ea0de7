// Package render writes a model.Model as CPO text.
//
// The layout is fixed:
//
//	// Variables
//	<one declaration per variable, then per array>
//
//	// Constraints
//	<one block per constraint with a non-empty rendering>
//
//	// Objective          (only when the model has objectives)
//	<one statement per objective>
//
// Lines are joined with "\n". Render returns the text without a trailing
// newline; Write appends one.
package render

import (
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

const (
	variablesHeader   = "// Variables"
	constraintsHeader = "// Constraints"
	objectiveHeader   = "// Objective"
)

// Render returns the CPO text of m.
func Render(m *model.Model) string {
	lines := []string{variablesHeader}
	lines = append(lines, lo.Map(m.Variables(), func(v model.Variable, _ int) string { return v.Render() })...)
	lines = append(lines, lo.Map(m.Arrays(), func(a model.Array, _ int) string { return a.Render() })...)

	lines = append(lines, "", constraintsHeader)
	lines = append(lines, lo.FilterMap(m.Constraints(), func(c model.Constraint, _ int) (string, bool) {
		s := c.Render()
		return s, s != ""
	})...)

	if objs := m.Objectives(); len(objs) > 0 {
		lines = append(lines, "", objectiveHeader)
		lines = append(lines, lo.Map(objs, func(o model.Objective, _ int) string { return o.Render() })...)
	}
	return strings.Join(lines, "\n")
}

// Write writes the CPO text of m followed by a newline.
func Write(w io.Writer, m *model.Model) error {
	_, err := io.WriteString(w, Render(m)+"\n")
	return err
}
