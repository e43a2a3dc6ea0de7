// Package model: counting constraints - Sum, Count, NValues, Cardinality.
//
// Sum, Count and NValues compare an aggregate expression against a
// Condition. A nil Condition renders the bare aggregate as a statement.
package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// LinearExpr renders a weighted sum. When the coefficient count matches the
// variable count it produces "2*x + 3*y" (coefficient 1 renders the bare
// name); otherwise it falls back to "sum([x, y])".
func LinearExpr(vars []string, coeffs []int) string {
	if len(coeffs) == 0 || len(coeffs) != len(vars) {
		return "sum(" + listExpr(vars) + ")"
	}
	terms := make([]string, len(vars))
	for i, v := range vars {
		if coeffs[i] == 1 {
			terms[i] = v
		} else {
			terms[i] = strconv.Itoa(coeffs[i]) + "*" + v
		}
	}
	return strings.Join(terms, " + ")
}

// Sum constrains a (weighted) sum of variables.
type Sum struct {
	Meta
	Variables    []string
	Coefficients []int
	Condition    *Condition
}

func (Sum) Kind() Kind { return KindSum }
func (Sum) sealed()    {}

// Render returns e.g. "2*x + 3*y <= 20;".
func (c Sum) Render() string {
	return conditioned(LinearExpr(c.Variables, c.Coefficients), c.Condition)
}

// MapLists implements ListMapper.
func (c Sum) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Coefficients = slices.Clone(c.Coefficients)
	c.Condition = c.Condition.clone()
	return c
}

// Count constrains how many variables take one of Values. Values are
// integer literals or variable names; an empty list counts the value 0.
type Count struct {
	Meta
	Variables []string
	Values    []string
	Condition *Condition
}

func (Count) Kind() Kind { return KindCount }
func (Count) sealed()    {}

// Render returns "count([..], v) OP operand;". Several values sum one count
// term per value.
func (c Count) Render() string {
	values := c.Values
	if len(values) == 0 {
		values = []string{"0"}
	}
	list := listExpr(c.Variables)
	terms := make([]string, len(values))
	for i, v := range values {
		terms[i] = fmt.Sprintf("count(%s, %s)", list, v)
	}
	return conditioned(strings.Join(terms, " + "), c.Condition)
}

// MapLists implements ListMapper.
func (c Count) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Values = slices.Clone(c.Values)
	c.Condition = c.Condition.clone()
	return c
}

// NValues constrains the number of distinct values taken by the variables.
type NValues struct {
	Meta
	Variables []string
	Condition *Condition
}

func (NValues) Kind() Kind { return KindNValues }
func (NValues) sealed()    {}

// Render returns "numberOfDifferentValues([..]) OP operand;".
func (c NValues) Render() string {
	return conditioned(fmt.Sprintf("numberOfDifferentValues(%s)", listExpr(c.Variables)), c.Condition)
}

// MapLists implements ListMapper.
func (c NValues) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Condition = c.Condition.clone()
	return c
}

// Cardinality is the global cardinality constraint: value Values[i] occurs
// Occurs[i] times among the variables. Occurrences are integer literals or
// variable names.
type Cardinality struct {
	Meta
	Variables []string
	Values    []int
	Occurs    []string
}

func (Cardinality) Kind() Kind { return KindCardinality }
func (Cardinality) sealed()    {}

// Render returns "distribute([occurs], [values], [vars]);".
func (c Cardinality) Render() string {
	return fmt.Sprintf("distribute(%s, [%s], %s);", listExpr(c.Occurs), joinInts(c.Values), listExpr(c.Variables))
}

// MapLists implements ListMapper.
func (c Cardinality) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Values = slices.Clone(c.Values)
	c.Occurs = f(slices.Clone(c.Occurs))
	return c
}
