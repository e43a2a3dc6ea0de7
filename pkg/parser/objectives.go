package parser

import (
	"github.com/beevik/etree"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/expr"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

func (r *run) parseObjectives(el *etree.Element) {
	for _, child := range el.ChildElements() {
		if child.Tag != "minimize" && child.Tag != "maximize" {
			continue
		}
		if obj, ok := r.parseObjective(child); ok {
			r.objectives = append(r.objectives, obj)
		}
	}
}

// parseObjective reads a <list> (and optional <coeffs>) form, or the
// element text: an expression for type="expression", a variable list for
// the other types. An objective with neither is skipped.
func (r *run) parseObjective(el *etree.Element) (model.Objective, bool) {
	obj := model.Objective{
		Minimize: el.Tag == "minimize",
		Type:     model.ParseObjectiveType(el.SelectAttrValue("type", "expression")),
	}
	if list, ok := childText(el, "list"); ok && list != "" {
		obj.Variables = r.varList(list)
		if s, ok := childText(el, "coeffs"); ok {
			coeffs, err := parseInts(s)
			if err != nil {
				r.diags.Report(diag.MalformedConstraint, el.Tag, "objective with non-integer coefficients: %v, skipped", err)
				return model.Objective{}, false
			}
			obj.Coefficients = coeffs
		}
		return obj, true
	}
	src := text(el)
	if src == "" {
		return model.Objective{}, false
	}
	if obj.Type == model.ObjExpression {
		obj.Expression = expr.Convert(src)
	} else {
		obj.Variables = r.varList(src)
	}
	return obj, true
}
