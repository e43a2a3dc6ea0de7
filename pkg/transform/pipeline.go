package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// ErrResidualKind is returned by a strict Pipeline when constraint kinds
// remain that CPO does not support and that have no decomposition.
var ErrResidualKind = errors.New("transform: unsupported constraint kind")

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStrict makes residual kinds an error instead of a diagnostic.
func WithStrict(strict bool) Option {
	return func(p *Pipeline) { p.strict = strict }
}

// WithLogger sets the logger for stage progress and diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithCollector records residual kinds into c.
func WithCollector(c *diag.Collector) Option {
	return func(p *Pipeline) { p.diags = c }
}

// WithSupported replaces the set of kinds treated as supported.
func WithSupported(kinds KindSet) Option {
	return func(p *Pipeline) { p.supported = kinds }
}

// Pipeline runs Normalize, Decompose and Rewrite in that order.
type Pipeline struct {
	supported KindSet
	strict    bool
	logger    zerolog.Logger
	diags     *diag.Collector
}

// NewPipeline returns a lenient pipeline over SupportedKinds.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		supported: SupportedKinds(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.diags == nil {
		p.diags = diag.NewCollector(diag.WithLogger(p.logger))
	}
	return p
}

// Diagnostics returns the residual-kind diagnostics recorded so far.
func (p *Pipeline) Diagnostics() []diag.Diagnostic {
	return p.diags.Diagnostics()
}

// Run transforms m. Each residual kind is reported once per collector, and
// so is each Regular or MDD constraint whose table exceeds model.MaxWords.
// In strict mode either makes Run fail with ErrResidualKind.
func (p *Pipeline) Run(m *model.Model) (*model.Model, error) {
	before := len(m.Constraints())
	out := Rewrite(Decompose(Normalize(m), p.supported))

	residual := Residual(out, p.supported)
	for _, k := range residual {
		if p.supported.Has(k) {
			continue
		}
		p.diags.ReportOnce(diag.ResidualKind, k.String(),
			"constraint kind %s has no CPO form and no decomposition", k)
	}
	for _, c := range out.Constraints() {
		if err := model.TableError(c); err != nil {
			p.diags.ReportOnce(diag.ResidualKind, tableSubject(c),
				"constraint not written as a table: %v", err)
		}
	}
	p.logger.Debug().
		Int("constraints_in", before).
		Int("constraints_out", len(out.Constraints())).
		Int("residual_kinds", len(residual)).
		Msg("transformed model")

	if p.strict && len(residual) > 0 {
		names := lo.Map(residual, func(k model.Kind, _ int) string { return k.String() })
		return nil, fmt.Errorf("%w: %s", ErrResidualKind, strings.Join(names, ", "))
	}
	return out, nil
}

func tableSubject(c model.Constraint) string {
	if l, ok := c.(interface{ Label() string }); ok && l.Label() != "" {
		return c.Kind().String() + " " + l.Label()
	}
	return c.Kind().String()
}

// Transform runs a default lenient pipeline. It never fails.
func Transform(m *model.Model) *model.Model {
	out, _ := NewPipeline().Run(m)
	return out
}
