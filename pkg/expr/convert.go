// Package expr converts XCSP3 functional expressions into CPO infix text.
//
// XCSP3 writes predicates in prefix form, e.g. lt(add(x,y),mul(z,2)). CPO
// expects fully parenthesized infix text, e.g. ((x + y) < (z * 2)).
//
// Grammar accepted by Convert:
//
//	expr  := call | atom
//	call  := name "(" args ")"        name is letters, digits and '_'
//	args  := expr { "," expr }       commas split only at depth 0
//	atom  := any text that is not a call (identifier, x[3], literal)
//
// Conversion is total: text that does not parse as a call is returned
// unchanged, and calls with an unknown head or an arity the dispatch table
// does not cover are re-emitted as "name(a, b, ...)" with converted
// arguments. Recursion depth is bounded by the nesting depth of the input.
package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// binaryOps maps 2-ary heads to CPO infix operators.
var binaryOps = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
	"mod": "%",
	"pow": "^",
	"lt":  "<",
	"le":  "<=",
	"gt":  ">",
	"ge":  ">=",
	"eq":  "==",
	"ne":  "!=",
	"and": "&&",
	"or":  "||",
	"imp": "=>",
	"iff": "==",
}

// naryOps lists the associative heads folded over more than two arguments.
var naryOps = map[string]string{
	"add": "+",
	"mul": "*",
	"and": "&&",
	"or":  "||",
}

// Convert rewrites an XCSP3 functional expression into CPO infix text.
func Convert(expr string) string {
	expr = strings.TrimSpace(expr)
	head, body, ok := splitCall(expr)
	if !ok {
		return expr
	}
	args := SplitArgs(body)
	converted := make([]string, len(args))
	for i, a := range args {
		converted[i] = Convert(a)
	}
	return apply(head, converted)
}

// apply renders a call whose arguments are already converted.
func apply(head string, args []string) string {
	name := strings.ToLower(head)
	n := len(args)

	if op, ok := binaryOps[name]; ok && n == 2 {
		return "(" + args[0] + " " + op + " " + args[1] + ")"
	}
	if op, ok := naryOps[name]; ok && n > 2 {
		return "(" + strings.Join(args, " "+op+" ") + ")"
	}

	switch {
	case name == "neg" && n == 1:
		return "(-" + args[0] + ")"
	case name == "not" && n == 1:
		return "(!" + args[0] + ")"
	case name == "abs" && n == 1:
		return "abs(" + args[0] + ")"
	case name == "min":
		return "min([" + strings.Join(args, ", ") + "])"
	case name == "max":
		return "max([" + strings.Join(args, ", ") + "])"
	case name == "if" && n == 3:
		return "(" + args[0] + " ? " + args[1] + " : " + args[2] + ")"
	case name == "dist" && n == 2:
		return "abs(" + args[0] + " - " + args[1] + ")"
	}
	return head + "(" + strings.Join(args, ", ") + ")"
}

// splitCall recognizes "name(body)" where name is the maximal leading run of
// word characters, the text ends with ')' and body is non-empty.
func splitCall(expr string) (head, body string, ok bool) {
	i := 0
	for i < len(expr) {
		r, size := utf8.DecodeRuneInString(expr[i:])
		if !isWordRune(r) {
			break
		}
		i += size
	}
	if i == 0 || i >= len(expr) || expr[i] != '(' {
		return "", "", false
	}
	if !strings.HasSuffix(expr, ")") || len(expr)-1 <= i+1 {
		return "", "", false
	}
	return expr[:i], expr[i+1 : len(expr)-1], true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
