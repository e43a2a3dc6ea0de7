// Package transform turns a parsed model into one the renderer can emit
// directly. It has three stages, each a pure function from *model.Model to a
// new *model.Model:
//
//   - Normalize expands array references in every variable list.
//   - Decompose replaces constraint kinds CPO lacks with supported ones.
//   - Rewrite tidies intension expressions.
//
// Pipeline chains the stages and reports the kinds that survive unsupported.
package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

var (
	wholeArrayPattern = regexp.MustCompile(`^(\w+)\[\s*\]$`)
	rangePattern      = regexp.MustCompile(`^(\w+)\[\s*(\d+)\s*\.\.\s*(\d+)\s*\]$`)
	indexListPattern  = regexp.MustCompile(`^(\w+)\[\s*(.+)\s*\]$`)
)

// arrayInfo is what reference expansion needs to know about an array.
type arrayInfo struct {
	size  []int
	start int
}

func (a arrayInfo) total() int {
	total := 1
	for _, d := range a.size {
		total *= d
	}
	return total
}

// Normalize expands array references in all variable lists of constraints
// and objectives. It never fails and is idempotent.
func Normalize(m *model.Model) *model.Model {
	lookup := make(map[string]arrayInfo)
	for _, a := range m.Arrays() {
		lookup[a.ID] = arrayInfo{size: a.Size, start: a.StartIndex}
	}
	expand := func(list []string) []string { return expandList(list, lookup) }

	constraints := lo.Map(m.Constraints(), func(c model.Constraint, _ int) model.Constraint {
		if lm, ok := c.(model.ListMapper); ok {
			return lm.MapLists(expand)
		}
		return c
	})
	objectives := lo.Map(m.Objectives(), func(o model.Objective, _ int) model.Objective {
		return o.MapLists(expand)
	})
	return m.WithConstraints(constraints).WithObjectives(objectives)
}

// ExpandReference expands a single reference against the given array sizes
// and start indices (missing start indices are 0):
//
//	x[]       -> x[start] .. x[start+total-1]   when x is a known array
//	x[a..b]   -> x[a] .. x[b]                   literal bounds
//	x[i,j]    -> x[i], x[j]
//
// Anything else is returned unchanged.
func ExpandReference(ref string, sizes map[string][]int, starts map[string]int) []string {
	lookup := make(map[string]arrayInfo, len(sizes))
	for name, size := range sizes {
		lookup[name] = arrayInfo{size: size, start: starts[name]}
	}
	return expandReference(ref, lookup)
}

func expandList(list []string, lookup map[string]arrayInfo) []string {
	return lo.FlatMap(list, func(ref string, _ int) []string {
		return expandReference(ref, lookup)
	})
}

func expandReference(ref string, lookup map[string]arrayInfo) []string {
	ref = strings.TrimSpace(ref)

	if m := wholeArrayPattern.FindStringSubmatch(ref); m != nil {
		info, ok := lookup[m[1]]
		if !ok {
			return []string{ref}
		}
		return cells(m[1], info.start, info.start+info.total()-1)
	}
	if m := rangePattern.FindStringSubmatch(ref); m != nil {
		first, _ := strconv.Atoi(m[2])
		last, _ := strconv.Atoi(m[3])
		return cells(m[1], first, last)
	}
	if m := indexListPattern.FindStringSubmatch(ref); m != nil {
		inner := m[2]
		if strings.Contains(inner, ",") && !strings.Contains(inner, "..") {
			return lo.Map(strings.Split(inner, ","), func(idx string, _ int) string {
				return fmt.Sprintf("%s[%s]", m[1], strings.TrimSpace(idx))
			})
		}
	}
	return []string{ref}
}

func cells(name string, first, last int) []string {
	out := make([]string, 0, max(last-first+1, 0))
	for i := first; i <= last; i++ {
		out = append(out, fmt.Sprintf("%s[%d]", name, i))
	}
	return out
}
