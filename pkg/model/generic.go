// Package model: generic constraints - Intension and Extension.
//
// Intension holds an expression already in CPO infix form; the parser runs
// the XCSP3 functional text through the expression converter before building
// it, and decompositions build it directly from interpolated text.
//
// Extension is a table constraint. Tuples may have fewer fields than the
// scope when the source used "*" wildcards, which the parser drops.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// Intension is a constraint given by a boolean expression.
type Intension struct {
	Meta
	Expression string
}

func (Intension) Kind() Kind { return KindIntension }
func (Intension) sealed()    {}

// Render returns "expression;".
func (c Intension) Render() string { return c.Expression + ";" }

// Extension restricts a scope to a list of allowed (Supports) or forbidden
// tuples.
type Extension struct {
	Meta
	Variables []string
	Tuples    [][]int
	Supports  bool
}

func (Extension) Kind() Kind { return KindExtension }
func (Extension) sealed()    {}

// Render returns allowedAssignments(...) for supports and
// forbiddenAssignments(...) for conflicts.
func (c Extension) Render() string {
	fn := "forbiddenAssignments"
	if c.Supports {
		fn = "allowedAssignments"
	}
	return fmt.Sprintf("%s(%s, [%s]);", fn, listExpr(c.Variables), renderTuples(c.Tuples))
}

// MapLists implements ListMapper.
func (c Extension) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Tuples = cloneTuples(c.Tuples)
	return c
}

func renderTuples(tuples [][]int) string {
	parts := make([]string, len(tuples))
	for i, t := range tuples {
		parts[i] = "(" + joinInts(t) + ")"
	}
	return strings.Join(parts, ", ")
}

func cloneTuples(tuples [][]int) [][]int {
	if tuples == nil {
		return nil
	}
	out := make([][]int, len(tuples))
	for i, t := range tuples {
		out[i] = slices.Clone(t)
	}
	return out
}
