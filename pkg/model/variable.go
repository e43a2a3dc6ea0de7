package model

import (
	"fmt"
	"slices"
	"strings"
)

// Variable is a single integer decision variable.
//
// Identifiers are opaque text. The IR does not enforce uniqueness; the
// parser produces one Variable per supported <var> declaration.
type Variable struct {
	ID     string
	Domain Domain
}

// Render returns the CPO declaration "id = intVar(domain);".
func (v Variable) Render() string {
	return fmt.Sprintf("%s = intVar(%s);", v.ID, v.Domain.Render())
}

// Array is an array of integer variables sharing one domain.
//
// Size holds the dimensions, e.g. [5] or [3 4]. Cells are addressed with
// the opaque textual form "id[k]" where k is the flattened cell number.
type Array struct {
	ID         string
	Size       []int
	Domain     Domain
	StartIndex int
}

// NewArray creates an array declaration. The size slice is copied.
func NewArray(id string, size []int, domain Domain, startIndex int) Array {
	return Array{ID: id, Size: slices.Clone(size), Domain: domain, StartIndex: startIndex}
}

// Total returns the number of cells: the product of all dimensions.
func (a Array) Total() int {
	total := 1
	for _, dim := range a.Size {
		total *= dim
	}
	return total
}

// Cell returns the textual reference of flattened cell k.
func (a Array) Cell(k int) string {
	return fmt.Sprintf("%s[%d]", a.ID, k)
}

// Render returns the flattened CPO declaration
// "id = [intVar(d), intVar(d), ...];".
func (a Array) Render() string {
	dom := "intVar(" + a.Domain.Render() + ")"
	total := a.Total()
	cells := make([]string, total)
	for i := range cells {
		cells[i] = dom
	}
	return fmt.Sprintf("%s = [%s];", a.ID, strings.Join(cells, ", "))
}

func (a Array) clone() Array {
	a.Size = slices.Clone(a.Size)
	return a
}
