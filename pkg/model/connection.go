// Package model: connection constraints - Minimum, Maximum, Element, Channel.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// Minimum constrains the smallest value among the variables.
type Minimum struct {
	Meta
	Variables []string
	Condition *Condition
}

func (Minimum) Kind() Kind { return KindMinimum }
func (Minimum) sealed()    {}

// Render returns "min([..]) OP operand;".
func (c Minimum) Render() string {
	return conditioned("min("+listExpr(c.Variables)+")", c.Condition)
}

// MapLists implements ListMapper.
func (c Minimum) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Condition = c.Condition.clone()
	return c
}

// Maximum constrains the largest value among the variables.
type Maximum struct {
	Meta
	Variables []string
	Condition *Condition
}

func (Maximum) Kind() Kind { return KindMaximum }
func (Maximum) sealed()    {}

// Render returns "max([..]) OP operand;".
func (c Maximum) Render() string {
	return conditioned("max("+listExpr(c.Variables)+")", c.Condition)
}

// MapLists implements ListMapper.
func (c Maximum) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Condition = c.Condition.clone()
	return c
}

// Element requires List[Index] == Value, or List[Index] to satisfy
// Condition when the source states a condition instead of a value.
// StartIndex is the index of the first list entry in the source (XCSP3
// startIndex, default 0); CPO element is 0-based so a non-zero start shifts
// the index expression.
type Element struct {
	Meta
	List       []string
	StartIndex int
	Index      string
	Value      string
	Condition  *Condition
}

func (Element) Kind() Kind { return KindElement }
func (Element) sealed()    {}

// Render returns "element([..], index) == value;" or the conditioned
// element expression. Without an index the constraint is a membership test
// and renders as "(a == v) || (b == v);". An element with neither a value
// nor a condition states nothing and renders empty.
func (c Element) Render() string {
	if c.Index == "" {
		return c.renderMembership()
	}
	index := c.Index
	switch {
	case c.StartIndex > 0:
		index = fmt.Sprintf("(%s - %d)", c.Index, c.StartIndex)
	case c.StartIndex < 0:
		index = fmt.Sprintf("(%s + %d)", c.Index, -c.StartIndex)
	}
	expr := fmt.Sprintf("element(%s, %s)", listExpr(c.List), index)
	switch {
	case c.Value != "":
		return fmt.Sprintf("%s == %s;", expr, c.Value)
	case c.Condition != nil:
		return conditioned(expr, c.Condition)
	}
	return ""
}

func (c Element) renderMembership() string {
	if len(c.List) == 0 {
		return ""
	}
	cond := c.Condition
	if c.Value != "" {
		cond = NewCondition(OpEQ, VarOperand(c.Value))
	}
	if cond == nil {
		return ""
	}
	terms := make([]string, len(c.List))
	for i, v := range c.List {
		terms[i] = cond.Test(v)
	}
	return strings.Join(terms, " || ") + ";"
}

// MapLists implements ListMapper.
func (c Element) MapLists(f func([]string) []string) Constraint {
	c.List = f(slices.Clone(c.List))
	c.Condition = c.Condition.clone()
	return c
}

// Channel links two lists as mutual inverses: List1[i] == j iff
// List2[j] == i.
type Channel struct {
	Meta
	List1 []string
	List2 []string
}

func (Channel) Kind() Kind { return KindChannel }
func (Channel) sealed()    {}

// Render returns the m×n link statements, one per line.
func (c Channel) Render() string { return statements(ChannelLinks(c.List1, c.List2)) }

// MapLists implements ListMapper. Both lists go through f.
func (c Channel) MapLists(f func([]string) []string) Constraint {
	c.List1 = f(slices.Clone(c.List1))
	c.List2 = f(slices.Clone(c.List2))
	return c
}
