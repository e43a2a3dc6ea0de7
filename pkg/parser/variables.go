package parser

import (
	"regexp"
	"strconv"

	"github.com/beevik/etree"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// defaultDomain is used for declarations without domain text.
const defaultDomain = "0..1"

var sizePattern = regexp.MustCompile(`\[(\d+)\]`)

func (r *run) parseVariables(el *etree.Element) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "var":
			if v, ok := r.parseVar(child); ok {
				r.variables = append(r.variables, v)
			}
		case "array":
			if a, ok := r.parseArray(child); ok {
				r.arrays[a.ID] = a
				r.arrayList = append(r.arrayList, a)
			}
		}
	}
}

// declDomain applies the checks shared by <var> and <array> and returns the
// parsed domain.
func (r *run) declDomain(el *etree.Element, id string) (model.Domain, bool) {
	if el.SelectAttrValue("type", "integer") == "symbolic" {
		r.diags.Report(diag.UnsupportedVariable, id, "symbolic domain is not supported, declaration skipped")
		return model.Domain{}, false
	}
	if as := el.SelectAttrValue("as", ""); as != "" {
		r.diags.Report(diag.UnsupportedVariable, id, "domain reference %q is not supported, declaration skipped", as)
		return model.Domain{}, false
	}
	if len(el.SelectElements("domain")) > 0 {
		r.diags.Report(diag.UnsupportedVariable, id, "per-cell domains are not supported, declaration skipped")
		return model.Domain{}, false
	}
	src := text(el)
	if src == "" {
		src = defaultDomain
	}
	dom, err := model.ParseDomain(src)
	if err != nil {
		r.diags.Report(diag.UnsupportedVariable, id, "%v, declaration skipped", err)
		return model.Domain{}, false
	}
	return dom, true
}

func (r *run) parseVar(el *etree.Element) (model.Variable, bool) {
	id := el.SelectAttrValue("id", "")
	if id == "" {
		return model.Variable{}, false
	}
	dom, ok := r.declDomain(el, id)
	if !ok {
		return model.Variable{}, false
	}
	return model.Variable{ID: id, Domain: dom}, true
}

func (r *run) parseArray(el *etree.Element) (model.Array, bool) {
	id := el.SelectAttrValue("id", "")
	if id == "" {
		return model.Array{}, false
	}
	dom, ok := r.declDomain(el, id)
	if !ok {
		return model.Array{}, false
	}
	return model.NewArray(id, parseSize(el.SelectAttrValue("size", "")), dom, startIndex(el)), true
}

// parseSize reads "[a][b]..." dimensions. Missing or unparsable sizes give
// a single cell.
func parseSize(s string) []int {
	var dims []int
	for _, m := range sizePattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return []int{1}
		}
		dims = append(dims, n)
	}
	if len(dims) == 0 {
		return []int{1}
	}
	return dims
}
