// Package model: comparison constraints - AllDifferent, AllEqual, Ordered.
//
// CPO has a native alldiff. It has no allEqual or ordered, so those two
// render through the same primitive chains the decompose stage produces
// (EqualityChain, OrderingChain); rendering a Model that skipped the
// transform pipeline therefore yields the same text as one that ran it.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// AllDifferent requires pairwise distinct values, except for the values in
// Except which may repeat.
type AllDifferent struct {
	Meta
	Variables []string
	Except    []int
}

func (AllDifferent) Kind() Kind { return KindAllDifferent }
func (AllDifferent) sealed()    {}

// Render returns "alldiff([..]);". With except values, each pair renders as
// "(a != b) || (a == e1) || ...;" since alldiff has no exception form.
func (c AllDifferent) Render() string {
	if len(c.Except) == 0 {
		return fmt.Sprintf("alldiff(%s);", listExpr(c.Variables))
	}
	var lines []string
	for i := 0; i < len(c.Variables); i++ {
		for j := i + 1; j < len(c.Variables); j++ {
			a, b := c.Variables[i], c.Variables[j]
			terms := []string{fmt.Sprintf("(%s != %s)", a, b)}
			for _, e := range c.Except {
				terms = append(terms, fmt.Sprintf("(%s == %d)", a, e))
			}
			lines = append(lines, strings.Join(terms, " || ")+";")
		}
	}
	return strings.Join(lines, "\n")
}

// MapLists implements ListMapper.
func (c AllDifferent) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Except = slices.Clone(c.Except)
	return c
}

// AllEqual requires all variables to take the same value.
type AllEqual struct {
	Meta
	Variables []string
}

func (AllEqual) Kind() Kind { return KindAllEqual }
func (AllEqual) sealed()    {}

// Render returns the equality chain, one statement per line.
func (c AllEqual) Render() string { return statements(EqualityChain(c.Variables)) }

// MapLists implements ListMapper.
func (c AllEqual) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	return c
}

// Ordered requires consecutive variables to be related by Operator, one of
// "lt", "le", "gt", "ge".
type Ordered struct {
	Meta
	Variables []string
	Operator  string
}

func (Ordered) Kind() Kind { return KindOrdered }
func (Ordered) sealed()    {}

// Render returns the ordering chain, one statement per line.
func (c Ordered) Render() string { return statements(OrderingChain(c.Variables, c.Operator)) }

// MapLists implements ListMapper.
func (c Ordered) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	return c
}
