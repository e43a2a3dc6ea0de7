package model

import (
	"fmt"
	"slices"
	"strings"
)

// ObjectiveType is the aggregation used by an objective.
type ObjectiveType int

const (
	ObjExpression ObjectiveType = iota
	ObjSum
	ObjProduct
	ObjMinimum
	ObjMaximum
	ObjNValues
	ObjLex
)

var objectiveNames = [...]string{"expression", "sum", "product", "minimum", "maximum", "nValues", "lex"}

// ParseObjectiveType maps the XCSP3 type attribute (case-insensitive) to an
// ObjectiveType; unknown values map to ObjExpression.
func ParseObjectiveType(s string) ObjectiveType {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range objectiveNames {
		if strings.ToLower(name) == s {
			return ObjectiveType(i)
		}
	}
	return ObjExpression
}

func (t ObjectiveType) String() string {
	if t >= 0 && int(t) < len(objectiveNames) {
		return objectiveNames[t]
	}
	return fmt.Sprintf("ObjectiveType(%d)", int(t))
}

// Objective is a minimize or maximize statement. Expression is used by
// ObjExpression; every other type aggregates Variables, optionally weighted
// by Coefficients (sum only).
type Objective struct {
	Minimize     bool
	Type         ObjectiveType
	Expression   string
	Variables    []string
	Coefficients []int
}

// Render returns "minimize(...);" or "maximize(...);".
func (o Objective) Render() string {
	fn := "maximize"
	if o.Minimize {
		fn = "minimize"
	}
	var expr string
	switch o.Type {
	case ObjExpression:
		expr = o.Expression
	case ObjSum:
		expr = LinearExpr(o.Variables, o.Coefficients)
	case ObjProduct:
		expr = strings.Join(o.Variables, " * ")
	case ObjMinimum:
		expr = "min(" + listExpr(o.Variables) + ")"
	case ObjMaximum:
		expr = "max(" + listExpr(o.Variables) + ")"
	case ObjNValues:
		expr = "numberOfDifferentValues(" + listExpr(o.Variables) + ")"
	case ObjLex:
		expr = "staticLex(" + listExpr(o.Variables) + ")"
	default:
		expr = "sum(" + listExpr(o.Variables) + ")"
	}
	return fmt.Sprintf("%s(%s);", fn, expr)
}

// MapLists returns a copy of the objective with Variables replaced by f.
func (o Objective) MapLists(f func([]string) []string) Objective {
	if len(o.Variables) > 0 {
		o.Variables = f(slices.Clone(o.Variables))
	}
	o.Coefficients = slices.Clone(o.Coefficients)
	return o
}
