// Package model: constraint kinds.
//
// Constraint is a closed sum type. Every kind listed in Kind has exactly one
// concrete Go type in this package, and the unexported marker method keeps
// other packages from adding variants. Code that dispatches on kinds (the
// decompose registry, the renderer) switches over these types.
//
// Constraints are value objects. Transform stages never modify a constraint;
// they build new ones (see ListMapper).
package model

import (
	"fmt"
	"strings"
)

// Kind identifies a constraint kind.
type Kind int

const (
	KindIntension Kind = iota
	KindExtension
	KindAllDifferent
	KindAllEqual
	KindOrdered
	KindSum
	KindCount
	KindNValues
	KindCardinality
	KindMinimum
	KindMaximum
	KindElement
	KindChannel
	KindCumulative
	KindNoOverlap
	KindRegular
	KindMDD
	KindCircuit
	KindInstantiation
)

var kindNames = [...]string{
	KindIntension:     "intension",
	KindExtension:     "extension",
	KindAllDifferent:  "allDifferent",
	KindAllEqual:      "allEqual",
	KindOrdered:       "ordered",
	KindSum:           "sum",
	KindCount:         "count",
	KindNValues:       "nValues",
	KindCardinality:   "cardinality",
	KindMinimum:       "minimum",
	KindMaximum:       "maximum",
	KindElement:       "element",
	KindChannel:       "channel",
	KindCumulative:    "cumulative",
	KindNoOverlap:     "noOverlap",
	KindRegular:       "regular",
	KindMDD:           "mdd",
	KindCircuit:       "circuit",
	KindInstantiation: "instantiation",
}

// AllKinds returns every constraint kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the XCSP3 tag spelling, e.g. "allDifferent".
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Key returns the lower-cased tag used as registry key, e.g. "alldifferent".
func (k Kind) Key() string { return strings.ToLower(k.String()) }

// ParseKind resolves a tag or registry key (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if strings.ToLower(name) == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Constraint is implemented by the 19 constraint types of this package.
type Constraint interface {
	// Kind returns the constraint kind.
	Kind() Kind

	// Label returns the optional identifier of the constraint. It is
	// metadata only and never affects rendering.
	Label() string

	// Render returns the CPO statements for the constraint, one per line,
	// without a trailing newline. An empty string means "no statement".
	Render() string

	sealed()
}

// ListMapper is implemented by constraints carrying variable lists. MapLists
// returns a new constraint whose variable lists are replaced by f(list);
// the receiver is left untouched.
type ListMapper interface {
	MapLists(f func([]string) []string) Constraint
}

// Meta holds the metadata shared by all constraint types.
type Meta struct {
	ID string
}

// Label returns the constraint identifier.
func (m Meta) Label() string { return m.ID }

// listExpr renders a CPO array literal "[a, b, c]".
func listExpr(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// statements terminates every expression with ";" and joins them by line.
func statements(exprs []string) string {
	if len(exprs) == 0 {
		return ""
	}
	return strings.Join(exprs, ";\n") + ";"
}

// EqualityChain returns the star decomposition of allEqual: "v1 == vi" for
// i = 2..n. Lists shorter than two yield nothing.
func EqualityChain(vars []string) []string {
	if len(vars) < 2 {
		return nil
	}
	out := make([]string, 0, len(vars)-1)
	for _, v := range vars[1:] {
		out = append(out, fmt.Sprintf("%s == %s", vars[0], v))
	}
	return out
}

// OrderingSymbol maps an ordered-constraint operator (lt, le, gt, ge) to its
// infix symbol. Unknown operators map to "<=".
func OrderingSymbol(op string) string {
	switch strings.ToLower(op) {
	case "lt":
		return "<"
	case "ge":
		return ">="
	case "gt":
		return ">"
	default:
		return "<="
	}
}

// OrderingChain returns "vi OP vi+1" for every consecutive pair.
func OrderingChain(vars []string, op string) []string {
	if len(vars) < 2 {
		return nil
	}
	sym := OrderingSymbol(op)
	out := make([]string, 0, len(vars)-1)
	for i := 0; i+1 < len(vars); i++ {
		out = append(out, fmt.Sprintf("%s %s %s", vars[i], sym, vars[i+1]))
	}
	return out
}

// ChannelLinks returns the m×n cross product "(ai == j) == (bj == i)"
// encoding mutual index inversion of two lists.
func ChannelLinks(a, b []string) []string {
	out := make([]string, 0, len(a)*len(b))
	for i, ai := range a {
		for j, bj := range b {
			out = append(out, fmt.Sprintf("(%s == %d) == (%s == %d)", ai, j, bj, i))
		}
	}
	return out
}
