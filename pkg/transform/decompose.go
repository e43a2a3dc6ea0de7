package transform

import (
	"slices"

	"github.com/samber/lo"

	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// KindSet is a set of constraint kinds.
type KindSet map[model.Kind]struct{}

// NewKindSet returns a set holding kinds.
func NewKindSet(kinds ...model.Kind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k model.Kind) bool {
	_, ok := s[k]
	return ok
}

// Kinds returns the members in declaration order.
func (s KindSet) Kinds() []model.Kind {
	kinds := lo.Keys(s)
	slices.Sort(kinds)
	return kinds
}

// SupportedKinds returns the kinds CPO accepts directly. The result is a
// fresh set the caller may modify.
func SupportedKinds() KindSet {
	return NewKindSet(
		model.KindIntension,
		model.KindExtension,
		model.KindAllDifferent,
		model.KindSum,
		model.KindCount,
		model.KindNValues,
		model.KindCardinality,
		model.KindMinimum,
		model.KindMaximum,
		model.KindElement,
		model.KindCumulative,
		model.KindNoOverlap,
		model.KindRegular,
		model.KindInstantiation,
	)
}

// DecomposableKinds returns the kinds that have a registered decomposition.
func DecomposableKinds() KindSet {
	return NewKindSet(lo.Keys(decompositions)...)
}

// Decomposition rewrites one constraint into equivalent constraints. A
// decomposition that cannot apply returns the constraint alone, unchanged.
type Decomposition func(c model.Constraint) []model.Constraint

var decompositions = map[model.Kind]Decomposition{
	model.KindAllEqual: decomposeAllEqual,
	model.KindOrdered:  decomposeOrdered,
	model.KindChannel:  decomposeChannel,
	model.KindMDD:      decomposeMDD,
}

// Decompose replaces every constraint whose kind is not in supported and
// that has a registered decomposition. The output of a decomposition is
// checked again, so decompositions may produce kinds that decompose further.
// Kinds that are neither supported nor decomposable pass through unchanged;
// Residual reports them.
func Decompose(m *model.Model, supported KindSet) *model.Model {
	return m.WithConstraints(decomposeAll(m.Constraints(), supported))
}

func decomposeAll(cs []model.Constraint, supported KindSet) []model.Constraint {
	var out []model.Constraint
	for _, c := range cs {
		if supported.Has(c.Kind()) {
			out = append(out, c)
			continue
		}
		d, ok := decompositions[c.Kind()]
		if !ok {
			out = append(out, c)
			continue
		}
		parts := d(c)
		if len(parts) == 1 && parts[0].Kind() == c.Kind() {
			out = append(out, parts[0])
			continue
		}
		out = append(out, decomposeAll(parts, supported)...)
	}
	return out
}

// Residual returns the distinct kinds of m that are not in supported, in
// kind order. A supported kind is residual too when one of its
// constraints is too large to write (see model.TableError).
func Residual(m *model.Model, supported KindSet) []model.Kind {
	var kinds []model.Kind
	for _, c := range m.Constraints() {
		if !supported.Has(c.Kind()) || model.TableError(c) != nil {
			kinds = append(kinds, c.Kind())
		}
	}
	kinds = lo.Uniq(kinds)
	slices.Sort(kinds)
	return kinds
}

func intensions(meta model.Meta, exprs []string) []model.Constraint {
	return lo.Map(exprs, func(e string, _ int) model.Constraint {
		return model.Intension{Meta: meta, Expression: e}
	})
}

func decomposeAllEqual(c model.Constraint) []model.Constraint {
	ae := c.(model.AllEqual)
	return intensions(ae.Meta, model.EqualityChain(ae.Variables))
}

func decomposeOrdered(c model.Constraint) []model.Constraint {
	o := c.(model.Ordered)
	return intensions(o.Meta, model.OrderingChain(o.Variables, o.Operator))
}

func decomposeChannel(c model.Constraint) []model.Constraint {
	ch := c.(model.Channel)
	return intensions(ch.Meta, model.ChannelLinks(ch.List1, ch.List2))
}

// decomposeMDD turns a diagram into the table of its root-to-terminal paths.
// A diagram with more than model.MaxWords paths is kept as is.
func decomposeMDD(c model.Constraint) []model.Constraint {
	d := c.(model.MDD)
	paths, err := d.Paths()
	if err != nil {
		return []model.Constraint{d}
	}
	return []model.Constraint{model.Extension{
		Meta:      d.Meta,
		Variables: slices.Clone(d.Variables),
		Tuples:    paths,
		Supports:  true,
	}}
}
