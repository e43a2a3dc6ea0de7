// Package model: the Model aggregate.
//
// A Model is created once and never modified. Every accessor returns a deep
// copy of the underlying sequence, and the With* methods return a new Model that
// shares nothing mutable with the receiver. Pipeline stages rely on this:
// an earlier snapshot stays valid after later stages have run.
package model

import (
	"slices"
	"strings"
)

// ProblemType distinguishes satisfaction from optimization instances.
type ProblemType int

const (
	CSP ProblemType = iota
	COP
)

// ParseProblemType returns COP for "COP" (case-insensitive) and CSP for
// anything else.
func ParseProblemType(s string) ProblemType {
	if strings.EqualFold(strings.TrimSpace(s), "COP") {
		return COP
	}
	return CSP
}

func (p ProblemType) String() string {
	if p == COP {
		return "COP"
	}
	return "CSP"
}

// Model is a complete XCSP3 instance.
type Model struct {
	problem     ProblemType
	variables   []Variable
	arrays      []Array
	constraints []Constraint
	objectives  []Objective
}

// New creates a Model. All sequences are copied.
func New(problem ProblemType, variables []Variable, arrays []Array, constraints []Constraint, objectives []Objective) *Model {
	m := &Model{
		problem:     problem,
		variables:   slices.Clone(variables),
		constraints: cloneConstraints(constraints),
		objectives:  cloneObjectives(objectives),
	}
	if arrays != nil {
		m.arrays = make([]Array, len(arrays))
		for i, a := range arrays {
			m.arrays[i] = a.clone()
		}
	}
	return m
}

// ProblemType returns CSP or COP.
func (m *Model) ProblemType() ProblemType { return m.problem }

// Variables returns the declared variables in order.
func (m *Model) Variables() []Variable { return slices.Clone(m.variables) }

// Arrays returns the declared arrays in order.
func (m *Model) Arrays() []Array {
	out := make([]Array, len(m.arrays))
	for i, a := range m.arrays {
		out[i] = a.clone()
	}
	return out
}

// Constraints returns the constraints in order.
func (m *Model) Constraints() []Constraint { return cloneConstraints(m.constraints) }

// Objectives returns the objectives in order.
func (m *Model) Objectives() []Objective { return cloneObjectives(m.objectives) }

// WithConstraints returns a new Model with the constraint sequence replaced.
func (m *Model) WithConstraints(constraints []Constraint) *Model {
	return New(m.problem, m.variables, m.arrays, constraints, m.objectives)
}

// WithObjectives returns a new Model with the objective sequence replaced.
func (m *Model) WithObjectives(objectives []Objective) *Model {
	return New(m.problem, m.variables, m.arrays, m.constraints, objectives)
}

func identity(list []string) []string { return list }

// cloneConstraints copies cs together with the slices and conditions each
// constraint holds. MapLists clones every field it touches, so mapping with
// the identity is a deep copy.
func cloneConstraints(cs []Constraint) []Constraint {
	if cs == nil {
		return nil
	}
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		if lm, ok := c.(ListMapper); ok {
			c = lm.MapLists(identity)
		}
		out[i] = c
	}
	return out
}

func cloneObjectives(objs []Objective) []Objective {
	if objs == nil {
		return nil
	}
	out := make([]Objective, len(objs))
	for i, o := range objs {
		out[i] = o.MapLists(identity)
	}
	return out
}

// KindCounts returns how many constraints of each kind the model holds.
func (m *Model) KindCounts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, c := range m.constraints {
		counts[c.Kind()]++
	}
	return counts
}
