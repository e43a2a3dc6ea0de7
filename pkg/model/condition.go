package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operator is the comparison operator of a Condition.
type Operator int

const (
	OpLT Operator = iota
	OpLE
	OpGT
	OpGE
	OpEQ
	OpNE
	OpIn
	OpNotIn
)

var operatorNames = [...]string{"lt", "le", "gt", "ge", "eq", "ne", "in", "notin"}

// ParseOperator maps an XCSP3 operator token (case-insensitive) to an
// Operator. Unknown tokens report ok=false.
func ParseOperator(s string) (op Operator, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range operatorNames {
		if name == s {
			return Operator(i), true
		}
	}
	return OpEQ, false
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Infix returns the CPO infix symbol for relational operators. Membership
// operators fall back to "==" and "!=" for scalar operands.
func (op Operator) Infix() string {
	switch op {
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpNE, OpNotIn:
		return "!="
	default:
		return "=="
	}
}

// OperandKind tells which field of an Operand is meaningful.
type OperandKind int

const (
	OperandInt OperandKind = iota
	OperandVar
	OperandRange
	OperandSet
)

// Operand is the right-hand side of a Condition: an integer literal, a
// variable name, an inclusive range or a literal set.
type Operand struct {
	Kind  OperandKind
	Value int
	Name  string
	Range Range
	Set   []int
}

// IntOperand returns a literal integer operand.
func IntOperand(v int) Operand { return Operand{Kind: OperandInt, Value: v} }

// VarOperand returns a variable-name operand.
func VarOperand(name string) Operand { return Operand{Kind: OperandVar, Name: name} }

// RangeOperand returns an inclusive range operand.
func RangeOperand(lo, hi int) Operand {
	return Operand{Kind: OperandRange, Range: Range{Lo: lo, Hi: hi}}
}

// SetOperand returns a literal set operand. The values are copied.
func SetOperand(values ...int) Operand {
	return Operand{Kind: OperandSet, Set: append([]int(nil), values...)}
}

// String renders the operand as CPO text. Ranges and sets have no scalar
// CPO form; they render as "lo..hi" and "{a, b}" on a best-effort basis.
func (o Operand) String() string {
	switch o.Kind {
	case OperandVar:
		return o.Name
	case OperandRange:
		return fmt.Sprintf("%d..%d", o.Range.Lo, o.Range.Hi)
	case OperandSet:
		return "{" + joinInts(o.Set) + "}"
	default:
		return strconv.Itoa(o.Value)
	}
}

// Condition is an operator plus operand attached to an aggregate
// constraint, e.g. (le,100) or (in,1..10).
type Condition struct {
	Op      Operator
	Operand Operand
}

// NewCondition is a convenience constructor.
func NewCondition(op Operator, operand Operand) *Condition {
	return &Condition{Op: op, Operand: operand}
}

// String returns the XCSP3 form "(op,operand)".
func (c Condition) String() string {
	return fmt.Sprintf("(%s,%s)", c.Op, c.Operand)
}

// Statements returns the CPO statements constraining expr with the
// condition. Most conditions produce one statement; "in" over a range
// produces a lower-bound and an upper-bound statement.
func (c Condition) Statements(expr string) []string {
	member := c.Op == OpIn || c.Op == OpNotIn
	switch {
	case member && c.Operand.Kind == OperandRange:
		lo, hi := c.Operand.Range.Lo, c.Operand.Range.Hi
		if c.Op == OpIn {
			return []string{
				fmt.Sprintf("%s >= %d;", expr, lo),
				fmt.Sprintf("%s <= %d;", expr, hi),
			}
		}
		return []string{fmt.Sprintf("(%s < %d) || (%s > %d);", expr, lo, expr, hi)}
	case member && c.Operand.Kind == OperandSet:
		if len(c.Operand.Set) == 0 {
			if c.Op == OpIn {
				return []string{"0 == 1;"}
			}
			return nil
		}
		terms := make([]string, len(c.Operand.Set))
		sym, glue := "==", " || "
		if c.Op == OpNotIn {
			sym, glue = "!=", " && "
		}
		for i, v := range c.Operand.Set {
			terms[i] = fmt.Sprintf("(%s %s %d)", expr, sym, v)
		}
		return []string{strings.Join(terms, glue) + ";"}
	default:
		return []string{fmt.Sprintf("%s %s %s;", expr, c.Op.Infix(), c.Operand)}
	}
}

// Test returns a parenthesized boolean expression that holds when expr
// satisfies the condition, for use inside disjunctions.
func (c Condition) Test(expr string) string {
	member := c.Op == OpIn || c.Op == OpNotIn
	switch {
	case member && c.Operand.Kind == OperandRange:
		lo, hi := c.Operand.Range.Lo, c.Operand.Range.Hi
		if c.Op == OpIn {
			return fmt.Sprintf("((%s >= %d) && (%s <= %d))", expr, lo, expr, hi)
		}
		return fmt.Sprintf("((%s < %d) || (%s > %d))", expr, lo, expr, hi)
	case member && c.Operand.Kind == OperandSet:
		if len(c.Operand.Set) == 0 {
			if c.Op == OpIn {
				return "(0 == 1)"
			}
			return "(0 == 0)"
		}
		terms := make([]string, len(c.Operand.Set))
		sym, glue := "==", " || "
		if c.Op == OpNotIn {
			sym, glue = "!=", " && "
		}
		for i, v := range c.Operand.Set {
			terms[i] = fmt.Sprintf("(%s %s %d)", expr, sym, v)
		}
		return "(" + strings.Join(terms, glue) + ")"
	default:
		return fmt.Sprintf("(%s %s %s)", expr, c.Op.Infix(), c.Operand)
	}
}

func (c *Condition) clone() *Condition {
	if c == nil {
		return nil
	}
	out := *c
	out.Operand.Set = slices.Clone(c.Operand.Set)
	return &out
}

// conditioned renders expr under an optional condition.
func conditioned(expr string, cond *Condition) string {
	if cond == nil {
		return expr + ";"
	}
	return strings.Join(cond.Statements(expr), "\n")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
