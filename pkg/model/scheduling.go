// Package model: scheduling constraints - Cumulative and NoOverlap.
//
// Both constraints are stated over integer origin variables with lengths
// (and heights) that are integer literals or variable names. CPO only offers
// these globals over interval variables, so they render as their standard
// integer decompositions:
//
//   - NoOverlap: for every pair of tasks i < j, one task ends before the
//     other starts: (oi + li <= oj) || (oj + lj <= oi).
//   - Cumulative: for every task j, the demand of tasks running at the start
//     of j satisfies the condition. Checking task start points suffices
//     because the resource profile only increases at start points.
package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// NoOverlap forbids pairwise overlap of tasks [Origins[i], Origins[i]+Lengths[i]).
// When ZeroIgnored is set, tasks of length zero never conflict.
type NoOverlap struct {
	Meta
	Origins     []string
	Lengths     []string
	ZeroIgnored bool
}

func (NoOverlap) Kind() Kind { return KindNoOverlap }
func (NoOverlap) sealed()    {}

// Render returns one disjunction per pair of tasks.
func (c NoOverlap) Render() string {
	n := min(len(c.Origins), len(c.Lengths))
	var lines []string
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			oi, li, oj, lj := c.Origins[i], c.Lengths[i], c.Origins[j], c.Lengths[j]
			terms := []string{
				fmt.Sprintf("(%s + %s <= %s)", oi, li, oj),
				fmt.Sprintf("(%s + %s <= %s)", oj, lj, oi),
			}
			if c.ZeroIgnored {
				for _, l := range []string{li, lj} {
					if !positiveLiteral(l) {
						terms = append(terms, fmt.Sprintf("(%s == 0)", l))
					}
				}
			}
			lines = append(lines, strings.Join(terms, " || ")+";")
		}
	}
	return strings.Join(lines, "\n")
}

// MapLists implements ListMapper.
func (c NoOverlap) MapLists(f func([]string) []string) Constraint {
	c.Origins = f(slices.Clone(c.Origins))
	c.Lengths = f(slices.Clone(c.Lengths))
	return c
}

// Cumulative bounds the total height of tasks running at any time.
type Cumulative struct {
	Meta
	Origins   []string
	Lengths   []string
	Heights   []string
	Condition *Condition
}

func (Cumulative) Kind() Kind { return KindCumulative }
func (Cumulative) sealed()    {}

// Render returns one conditioned load expression per task.
func (c Cumulative) Render() string {
	n := min(len(c.Origins), len(c.Lengths), len(c.Heights))
	lines := make([]string, 0, n)
	for j := 0; j < n; j++ {
		terms := make([]string, n)
		for i := 0; i < n; i++ {
			terms[i] = fmt.Sprintf("((%s <= %s) && (%s < %s + %s)) * %s",
				c.Origins[i], c.Origins[j], c.Origins[j], c.Origins[i], c.Lengths[i], c.Heights[i])
		}
		lines = append(lines, conditioned(strings.Join(terms, " + "), c.Condition))
	}
	return strings.Join(lines, "\n")
}

// MapLists implements ListMapper.
func (c Cumulative) MapLists(f func([]string) []string) Constraint {
	c.Origins = f(slices.Clone(c.Origins))
	c.Lengths = f(slices.Clone(c.Lengths))
	c.Heights = f(slices.Clone(c.Heights))
	c.Condition = c.Condition.clone()
	return c
}

func positiveLiteral(s string) bool {
	v, err := strconv.Atoi(s)
	return err == nil && v > 0
}
