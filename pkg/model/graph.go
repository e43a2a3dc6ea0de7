// Package model: graph and assignment constraints - Circuit and Instantiation.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// Circuit requires the successor variables to form a single Hamiltonian
// circuit. CPO has no integer circuit global and no decomposition is
// registered for it, so it survives the pipeline as a residual kind and
// renders in function form on a best-effort basis.
type Circuit struct {
	Meta
	Variables  []string
	StartIndex int
}

func (Circuit) Kind() Kind { return KindCircuit }
func (Circuit) sealed()    {}

// Render returns "circuit([..]);", or "circuit([..], start);" for a
// non-zero start index.
func (c Circuit) Render() string {
	if c.StartIndex != 0 {
		return fmt.Sprintf("circuit(%s, %d);", listExpr(c.Variables), c.StartIndex)
	}
	return fmt.Sprintf("circuit(%s);", listExpr(c.Variables))
}

// MapLists implements ListMapper.
func (c Circuit) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	return c
}

// Instantiation fixes Variables[i] to Values[i].
type Instantiation struct {
	Meta
	Variables []string
	Values    []int
}

func (Instantiation) Kind() Kind { return KindInstantiation }
func (Instantiation) sealed()    {}

// Render returns one "x == v;" statement per pair. Unpaired entries are
// ignored.
func (c Instantiation) Render() string {
	n := min(len(c.Variables), len(c.Values))
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = fmt.Sprintf("%s == %d;", c.Variables[i], c.Values[i])
	}
	return strings.Join(lines, "\n")
}

// MapLists implements ListMapper.
func (c Instantiation) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Values = slices.Clone(c.Values)
	return c
}
