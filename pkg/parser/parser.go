// Package parser reads XCSP3 XML documents into a model.Model.
//
// Parsing is lenient. Only a document that is not well-formed XML, or that
// has no root element, is an error (ErrMalformedDocument). Everything else
// the parser cannot represent is skipped and recorded as a diagnostic:
//
//   - variables with symbolic domains, "as" aliases or non-integer domain
//     text (diag.UnsupportedVariable);
//   - constraint tags without a parser (diag.UnrecognizedConstraint);
//   - recognized constraints with non-integer coefficients or values, or
//     without the value they constrain (diag.MalformedConstraint);
//   - tuples and transitions with non-integer fields (diag.MalformedTuple).
//
// Diagnostics are call-local. Each Parse call starts a fresh diag.Collector
// unless one is supplied with WithCollector, and Parser.Diagnostics returns
// the findings of the most recent call.
//
// Array references of the form x[] are expanded while parsing against the
// arrays declared so far, 0-based. See the transform package for the
// start-index aware expansion applied by Normalize.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// ErrMalformedDocument is returned when the input is not well-formed XML or
// has no root element.
var ErrMalformedDocument = errors.New("parser: malformed XCSP3 document")

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse progress and diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithCollector makes every Parse call record into c instead of a fresh
// collector. Use it to share one collector across the stages of a single
// conversion.
func WithCollector(c *diag.Collector) Option {
	return func(p *Parser) { p.shared = c }
}

// Parser converts XCSP3 documents into models. A Parser may be reused for
// several documents but is not safe for concurrent use.
type Parser struct {
	logger zerolog.Logger
	shared *diag.Collector
	last   *diag.Collector
}

// New returns a Parser configured by opts.
func New(opts ...Option) *Parser {
	p := &Parser{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a convenience wrapper around New(opts...).Parse(doc).
func Parse(doc []byte, opts ...Option) (*model.Model, error) {
	return New(opts...).Parse(doc)
}

// Diagnostics returns the diagnostics recorded by the most recent Parse call.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.last.Diagnostics()
}

// Parse reads one XCSP3 document.
func (p *Parser) Parse(doc []byte) (*model.Model, error) {
	collector := p.shared
	if collector == nil {
		collector = diag.NewCollector(diag.WithLogger(p.logger))
	}
	p.last = collector

	d := etree.NewDocument()
	d.ReadSettings.ValidateInput = true
	if err := d.ReadFromBytes(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	root := d.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}

	r := &run{
		diags:  collector,
		arrays: make(map[string]model.Array),
	}
	problem := model.ParseProblemType(root.SelectAttrValue("type", "CSP"))
	if el := root.SelectElement("variables"); el != nil {
		r.parseVariables(el)
	}
	if el := root.SelectElement("constraints"); el != nil {
		for _, child := range el.ChildElements() {
			r.constraints = append(r.constraints, r.parseConstraint(child)...)
		}
	}
	if el := root.SelectElement("objectives"); el != nil {
		r.parseObjectives(el)
	}

	m := model.New(problem, r.variables, r.arrayList, r.constraints, r.objectives)
	p.logger.Debug().
		Str("problem", problem.String()).
		Int("variables", len(r.variables)).
		Int("arrays", len(r.arrayList)).
		Int("constraints", len(r.constraints)).
		Int("objectives", len(r.objectives)).
		Int("diagnostics", collector.Len()).
		Msg("parsed instance")
	return m, nil
}

// run holds the state of a single Parse call.
type run struct {
	diags       *diag.Collector
	arrays      map[string]model.Array
	arrayList   []model.Array
	variables   []model.Variable
	constraints []model.Constraint
	objectives  []model.Objective
}

// text returns the trimmed character data that opens el.
func text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// childText returns the trimmed text of the first child named tag.
func childText(el *etree.Element, tag string) (string, bool) {
	child := el.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return text(child), true
}
