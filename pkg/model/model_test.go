package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_AccessorsReturnCopies(t *testing.T) {
	vars := []Variable{{ID: "x", Domain: RangeDomain(0, 3)}}
	arrays := []Array{NewArray("a", []int{3}, RangeDomain(0, 1), 0)}
	cons := []Constraint{AllDifferent{Variables: []string{"x"}}}
	m := New(CSP, vars, arrays, cons, nil)

	vars[0].ID = "changed"
	arrays[0].Size[0] = 99
	cons[0] = Intension{Expression: "true"}

	assert.Equal(t, "x", m.Variables()[0].ID)
	assert.Equal(t, 3, m.Arrays()[0].Total())
	assert.Equal(t, KindAllDifferent, m.Constraints()[0].Kind())

	got := m.Arrays()
	got[0].Size[0] = 42
	assert.Equal(t, []int{3}, m.Arrays()[0].Size)
}

func TestModel_ConstraintsAreDeepCopies(t *testing.T) {
	vars := []string{"x", "y"}
	cond := NewCondition(OpLE, IntOperand(10))
	m := New(CSP, nil, nil, []Constraint{Sum{Variables: vars, Coefficients: []int{1, 2}, Condition: cond}},
		[]Objective{{Type: ObjSum, Variables: []string{"x"}}})

	vars[0] = "changed"
	cond.Operand = IntOperand(99)
	assert.Equal(t, "x + 2*y <= 10;", m.Constraints()[0].Render())

	got := m.Constraints()[0].(Sum)
	got.Variables[1] = "z"
	got.Coefficients[0] = 7
	got.Condition.Op = OpGT
	assert.Equal(t, []string{"x", "y"}, m.Constraints()[0].(Sum).Variables)
	assert.Equal(t, []int{1, 2}, m.Constraints()[0].(Sum).Coefficients)
	assert.Equal(t, OpLE, m.Constraints()[0].(Sum).Condition.Op)

	obj := m.Objectives()
	obj[0].Variables[0] = "z"
	assert.Equal(t, []string{"x"}, m.Objectives()[0].Variables)
}

func TestModel_WithConstraintsBuildsNewModel(t *testing.T) {
	m := New(COP, nil, nil, []Constraint{AllEqual{Variables: []string{"a", "b"}}}, []Objective{{Type: ObjSum, Variables: []string{"a"}}})
	next := m.WithConstraints([]Constraint{Intension{Expression: "a == b"}})

	assert.Equal(t, KindAllEqual, m.Constraints()[0].Kind())
	assert.Equal(t, KindIntension, next.Constraints()[0].Kind())
	assert.Equal(t, COP, next.ProblemType())
	assert.Len(t, next.Objectives(), 1)
	assert.Equal(t, map[Kind]int{KindAllEqual: 1}, m.KindCounts())

	cleared := next.WithObjectives(nil)
	assert.Empty(t, cleared.Objectives())
	assert.Len(t, next.Objectives(), 1)
}

func TestParseProblemType(t *testing.T) {
	assert.Equal(t, COP, ParseProblemType("cop"))
	assert.Equal(t, CSP, ParseProblemType("CSP"))
	assert.Equal(t, CSP, ParseProblemType("WCSP"))
}

func TestObjective_Render(t *testing.T) {
	cases := []struct {
		obj  Objective
		want string
	}{
		{Objective{Type: ObjExpression, Expression: "(x + y)"}, "maximize((x + y));"},
		{Objective{Minimize: true, Type: ObjSum, Variables: []string{"x", "y"}, Coefficients: []int{2, 1}}, "minimize(2*x + y);"},
		{Objective{Minimize: true, Type: ObjSum, Variables: []string{"x", "y"}}, "minimize(sum([x, y]));"},
		{Objective{Type: ObjProduct, Variables: []string{"x", "y"}}, "maximize(x * y);"},
		{Objective{Minimize: true, Type: ObjMinimum, Variables: []string{"x"}}, "minimize(min([x]));"},
		{Objective{Type: ObjMaximum, Variables: []string{"x"}}, "maximize(max([x]));"},
		{Objective{Type: ObjNValues, Variables: []string{"x", "y"}}, "maximize(numberOfDifferentValues([x, y]));"},
		{Objective{Minimize: true, Type: ObjLex, Variables: []string{"x", "y"}}, "minimize(staticLex([x, y]));"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.obj.Render())
	}
	assert.Equal(t, ObjNValues, ParseObjectiveType("NVALUES"))
	assert.Equal(t, ObjExpression, ParseObjectiveType("weird"))
}
