package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/samber/lo"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

var rangeRefPattern = regexp.MustCompile(`^(\w+)\[(\d+)\.\.(\d+)\]$`)

// splitTokens splits a variable list on whitespace and on commas that are
// not nested inside brackets, so "x[1,2]" stays one token.
func splitTokens(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, c := range s {
		switch {
		case c == '[':
			depth++
			cur.WriteRune(c)
		case c == ']':
			depth--
			cur.WriteRune(c)
		case c == ',' && depth <= 0:
			flush()
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if depth > 0 {
				continue
			}
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return tokens
}

// varList parses a variable list, expanding x[] of a declared array into
// its cells x[0]..x[total-1] and x[a..b] into x[a]..x[b].
func (r *run) varList(s string) []string {
	return lo.FlatMap(splitTokens(s), func(tok string, _ int) []string {
		if name, ok := strings.CutSuffix(tok, "[]"); ok {
			arr, known := r.arrays[name]
			if !known {
				return []string{tok}
			}
			cells := make([]string, arr.Total())
			for k := range cells {
				cells[k] = arr.Cell(k)
			}
			return cells
		}
		if m := rangeRefPattern.FindStringSubmatch(tok); m != nil {
			first, _ := strconv.Atoi(m[2])
			last, _ := strconv.Atoi(m[3])
			out := make([]string, 0, max(last-first+1, 0))
			for i := first; i <= last; i++ {
				out = append(out, fmt.Sprintf("%s[%d]", m[1], i))
			}
			return out
		}
		return []string{tok}
	})
}

// scope returns the variable list of a constraint: its <list> child, or its
// own text when it has none.
func (r *run) scope(el *etree.Element) []string {
	if s, ok := childText(el, "list"); ok {
		return r.varList(s)
	}
	return r.varList(text(el))
}

// childList returns the variable list held by the child named tag.
func (r *run) childList(el *etree.Element, tag string) []string {
	s, _ := childText(el, tag)
	return r.varList(s)
}

// parseInts reads whitespace or comma separated integers.
func parseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseCondition reads "(op,operand)". An unknown operator reads as eq and
// a condition without a comma reads as (eq,0).
func parseCondition(s string) *model.Condition {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	opText, operandText, ok := strings.Cut(s, ",")
	if !ok {
		return model.NewCondition(model.OpEQ, model.IntOperand(0))
	}
	op, _ := model.ParseOperator(opText)
	return model.NewCondition(op, parseOperand(strings.TrimSpace(operandText)))
}

func parseOperand(s string) model.Operand {
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		if vs, err := parseInts(s[1 : len(s)-1]); err == nil {
			return model.SetOperand(vs...)
		}
		return model.VarOperand(s)
	}
	if lower, upper, ok := strings.Cut(s, ".."); ok {
		l, errL := strconv.Atoi(strings.TrimSpace(lower))
		h, errH := strconv.Atoi(strings.TrimSpace(upper))
		if errL == nil && errH == nil {
			return model.RangeOperand(l, h)
		}
		return model.VarOperand(s)
	}
	if v, err := strconv.Atoi(s); err == nil {
		return model.IntOperand(v)
	}
	return model.VarOperand(s)
}

// condition returns the parsed <condition> child, or nil.
func condition(el *etree.Element) *model.Condition {
	s, ok := childText(el, "condition")
	if !ok || s == "" {
		return nil
	}
	return parseCondition(s)
}

// parenGroups returns the contents of every "( ... )" group in s.
func parenGroups(s string) []string {
	var groups []string
	for {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return groups
		}
		end := strings.IndexByte(s[open+1:], ')')
		if end < 0 {
			return groups
		}
		groups = append(groups, s[open+1:open+1+end])
		s = s[open+1+end+1:]
	}
}

// parseTuples reads "(0,1)(1,0)" tuples. Wildcard fields "*" are dropped.
// Without any parenthesized tuple the text is read as a unary list of
// values and ranges, each giving 1-tuples. Tuples with a non-integer field
// are skipped and recorded under subject.
func (r *run) parseTuples(s, subject string) [][]int {
	var tuples [][]int
	groups := parenGroups(s)
	for _, g := range groups {
		fields := lo.Filter(strings.Split(g, ","), func(f string, _ int) bool {
			return strings.TrimSpace(f) != "*"
		})
		tuple, err := parseInts(strings.Join(fields, ","))
		if err != nil {
			r.diags.Report(diag.MalformedTuple, subject, "tuple (%s) skipped: %v", g, err)
			continue
		}
		tuples = append(tuples, tuple)
	}
	if len(groups) > 0 {
		return tuples
	}
	for _, part := range strings.Fields(s) {
		if lower, upper, ok := strings.Cut(part, ".."); ok {
			l, errL := strconv.Atoi(lower)
			h, errH := strconv.Atoi(upper)
			if errL != nil || errH != nil {
				r.diags.Report(diag.MalformedTuple, subject, "value range %q skipped", part)
				continue
			}
			for v := l; v <= h; v++ {
				tuples = append(tuples, []int{v})
			}
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			r.diags.Report(diag.MalformedTuple, subject, "value %q skipped", part)
			continue
		}
		tuples = append(tuples, []int{v})
	}
	return tuples
}

// parseTransitions reads "(from,symbol,to)" triples. Triples with a wrong
// arity or a non-integer symbol are skipped and recorded under subject.
func (r *run) parseTransitions(s, subject string) []model.Transition {
	var out []model.Transition
	for _, g := range parenGroups(s) {
		parts := strings.Split(g, ",")
		if len(parts) != 3 {
			r.diags.Report(diag.MalformedTuple, subject, "transition (%s) skipped: expected 3 fields", g)
			continue
		}
		sym, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			r.diags.Report(diag.MalformedTuple, subject, "transition (%s) skipped: invalid symbol", g)
			continue
		}
		out = append(out, model.Transition{
			From:   strings.TrimSpace(parts[0]),
			Symbol: sym,
			To:     strings.TrimSpace(parts[2]),
		})
	}
	return out
}
