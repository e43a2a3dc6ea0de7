package parser

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/expr"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// constraintParser builds at most one constraint from an element. A false
// result means the element was skipped; the parser has already recorded why.
type constraintParser func(r *run, el *etree.Element, meta model.Meta) (model.Constraint, bool)

// constraintParsers is keyed by lower-cased tag.
var constraintParsers = map[string]constraintParser{
	"intension":     (*run).intension,
	"extension":     (*run).extension,
	"alldifferent":  (*run).allDifferent,
	"allequal":      (*run).allEqual,
	"ordered":       (*run).ordered,
	"sum":           (*run).sum,
	"count":         (*run).count,
	"nvalues":       (*run).nValues,
	"cardinality":   (*run).cardinality,
	"element":       (*run).element,
	"minimum":       (*run).minimum,
	"maximum":       (*run).maximum,
	"channel":       (*run).channel,
	"instantiation": (*run).instantiation,
	"cumulative":    (*run).cumulative,
	"nooverlap":     (*run).noOverlap,
	"regular":       (*run).regular,
	"mdd":           (*run).mdd,
	"circuit":       (*run).circuit,
}

// parseConstraint returns the constraints produced by one element of the
// <constraints> section. Groups and blocks splice their children in place.
func (r *run) parseConstraint(el *etree.Element) []model.Constraint {
	tag := strings.ToLower(el.Tag)
	switch tag {
	case "group", "block":
		var out []model.Constraint
		for _, child := range el.ChildElements() {
			if tag == "group" && child.Tag == "args" {
				continue
			}
			out = append(out, r.parseConstraint(child)...)
		}
		return out
	}
	parse, ok := constraintParsers[tag]
	if !ok {
		r.diags.Report(diag.UnrecognizedConstraint, el.Tag, "constraint tag %q has no parser, skipped", el.Tag)
		return nil
	}
	c, ok := parse(r, el, model.Meta{ID: el.SelectAttrValue("id", "")})
	if !ok {
		return nil
	}
	return []model.Constraint{c}
}

// subject names an element in diagnostics: its id when it has one.
func subject(el *etree.Element, meta model.Meta) string {
	if meta.ID != "" {
		return meta.ID
	}
	return el.Tag
}

func (r *run) intension(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	src, ok := childText(el, "function")
	if !ok || src == "" {
		src = text(el)
	}
	return model.Intension{Meta: meta, Expression: expr.Convert(src)}, true
}

func (r *run) extension(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	c := model.Extension{Meta: meta, Variables: r.scope(el)}
	tuples := el.SelectElement("supports")
	c.Supports = tuples != nil
	if tuples == nil {
		tuples = el.SelectElement("conflicts")
	}
	if tuples != nil {
		c.Tuples = r.parseTuples(text(tuples), subject(el, meta))
	}
	return c, true
}

func (r *run) allDifferent(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	c := model.AllDifferent{Meta: meta, Variables: r.scope(el)}
	if s, ok := childText(el, "except"); ok {
		except, err := parseInts(s)
		if err != nil {
			r.diags.Report(diag.MalformedConstraint, subject(el, meta), "allDifferent except values: %v, skipped", err)
			return nil, false
		}
		c.Except = except
	}
	return c, true
}

func (r *run) allEqual(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	return model.AllEqual{Meta: meta, Variables: r.scope(el)}, true
}

func (r *run) ordered(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	op, ok := childText(el, "operator")
	if !ok || op == "" {
		op = el.SelectAttrValue("operator", "le")
	}
	return model.Ordered{Meta: meta, Variables: r.scope(el), Operator: strings.ToLower(op)}, true
}

func (r *run) sum(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	c := model.Sum{Meta: meta, Variables: r.scope(el), Condition: condition(el)}
	if s, ok := childText(el, "coeffs"); ok {
		coeffs, err := parseInts(s)
		if err != nil {
			r.diags.Report(diag.MalformedConstraint, subject(el, meta), "sum with non-integer coefficients: %v, skipped", err)
			return nil, false
		}
		c.Coefficients = coeffs
	}
	return c, true
}

func (r *run) count(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	values, _ := childText(el, "values")
	return model.Count{
		Meta:      meta,
		Variables: r.scope(el),
		Values:    r.varList(values),
		Condition: condition(el),
	}, true
}

func (r *run) nValues(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	return model.NValues{Meta: meta, Variables: r.scope(el), Condition: condition(el)}, true
}

func (r *run) cardinality(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	s, _ := childText(el, "values")
	values, err := parseInts(s)
	if err != nil {
		r.diags.Report(diag.MalformedConstraint, subject(el, meta), "cardinality with non-integer values: %v, skipped", err)
		return nil, false
	}
	occurs, _ := childText(el, "occurs")
	return model.Cardinality{
		Meta:      meta,
		Variables: r.scope(el),
		Values:    values,
		Occurs:    r.varList(occurs),
	}, true
}

func (r *run) element(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	c := model.Element{Meta: meta, List: r.scope(el)}
	if list := el.SelectElement("list"); list != nil {
		c.StartIndex = startIndex(list)
	}
	c.Index, _ = childText(el, "index")
	if v, ok := childText(el, "value"); ok && v != "" {
		c.Value = v
		return c, true
	}
	if c.Condition = condition(el); c.Condition == nil {
		r.diags.Report(diag.MalformedConstraint, subject(el, meta), "element without value or condition, skipped")
		return nil, false
	}
	return c, true
}

func (r *run) minimum(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	return model.Minimum{Meta: meta, Variables: r.scope(el), Condition: condition(el)}, true
}

func (r *run) maximum(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	return model.Maximum{Meta: meta, Variables: r.scope(el), Condition: condition(el)}, true
}

// channel links two lists. A single list is channelled with itself, which
// makes it an involution.
func (r *run) channel(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	lists := el.SelectElements("list")
	c := model.Channel{Meta: meta}
	switch {
	case len(lists) >= 2:
		c.List1 = r.varList(text(lists[0]))
		c.List2 = r.varList(text(lists[1]))
	case len(lists) == 1:
		c.List1 = r.varList(text(lists[0]))
		c.List2 = r.varList(text(lists[0]))
	}
	return c, true
}

func (r *run) instantiation(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	s, _ := childText(el, "values")
	values, err := parseInts(s)
	if err != nil {
		r.diags.Report(diag.MalformedConstraint, subject(el, meta), "instantiation with non-integer values: %v, skipped", err)
		return nil, false
	}
	return model.Instantiation{Meta: meta, Variables: r.scope(el), Values: values}, true
}

func (r *run) cumulative(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	return model.Cumulative{
		Meta:      meta,
		Origins:   r.childList(el, "origins"),
		Lengths:   r.childList(el, "lengths"),
		Heights:   r.childList(el, "heights"),
		Condition: condition(el),
	}, true
}

// noOverlap reads the one-dimensional form. zeroIgnored defaults to true.
func (r *run) noOverlap(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	origins, _ := childText(el, "origins")
	if strings.Contains(origins, "(") {
		r.diags.Report(diag.MalformedConstraint, subject(el, meta), "multi-dimensional noOverlap is not supported, skipped")
		return nil, false
	}
	zero := true
	if v, err := strconv.ParseBool(el.SelectAttrValue("zeroIgnored", "true")); err == nil {
		zero = v
	}
	return model.NoOverlap{
		Meta:        meta,
		Origins:     r.varList(origins),
		Lengths:     r.childList(el, "lengths"),
		ZeroIgnored: zero,
	}, true
}

func (r *run) regular(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	transitions, _ := childText(el, "transitions")
	start, _ := childText(el, "start")
	final, _ := childText(el, "final")
	return model.Regular{
		Meta:        meta,
		Variables:   r.scope(el),
		Transitions: r.parseTransitions(transitions, subject(el, meta)),
		Start:       start,
		Final:       strings.Fields(final),
	}, true
}

func (r *run) mdd(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	transitions, _ := childText(el, "transitions")
	return model.MDD{
		Meta:        meta,
		Variables:   r.scope(el),
		Transitions: r.parseTransitions(transitions, subject(el, meta)),
	}, true
}

func (r *run) circuit(el *etree.Element, meta model.Meta) (model.Constraint, bool) {
	c := model.Circuit{Meta: meta, Variables: r.scope(el)}
	if list := el.SelectElement("list"); list != nil {
		c.StartIndex = startIndex(list)
	}
	return c, true
}

func startIndex(el *etree.Element) int {
	v, err := strconv.Atoi(strings.TrimSpace(el.SelectAttrValue("startIndex", "0")))
	if err != nil {
		return 0
	}
	return v
}
