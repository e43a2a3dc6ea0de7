package transform

import (
	"strings"

	"github.com/samber/lo"

	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// Rewrite collapses whitespace runs in intension expressions to a single
// space and trims them. Other constraints are kept as they are.
func Rewrite(m *model.Model) *model.Model {
	return m.WithConstraints(lo.Map(m.Constraints(), func(c model.Constraint, _ int) model.Constraint {
		in, ok := c.(model.Intension)
		if !ok {
			return c
		}
		in.Expression = strings.Join(strings.Fields(in.Expression), " ")
		return in
	}))
}
