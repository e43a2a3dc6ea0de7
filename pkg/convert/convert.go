// Package convert is the entry point of the XCSP3 to CPO translator. It
// wires the parser, the transformation pipeline and the renderer together
// and adds file and batch helpers on top of a go-billy filesystem.
//
// A conversion is:
//
//	bytes -> parser.Parse -> transform.Pipeline.Run -> render.Render -> text
//
// Every conversion owns one diag.Collector shared by the parser and the
// pipeline, so its Result lists every diagnostic of that document and
// nothing else. A Converter holds only settings and may be used from
// several goroutines at once.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/sohaibafifi/xcsp2cpo/internal/parallel"
	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/loader"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
	"github.com/sohaibafifi/xcsp2cpo/pkg/parser"
	"github.com/sohaibafifi/xcsp2cpo/pkg/render"
	"github.com/sohaibafifi/xcsp2cpo/pkg/transform"
)

// DefaultSuffix is appended to the base name of batch outputs.
const DefaultSuffix = ".cpo"

// Option configures a Converter.
type Option func(*Converter)

// WithTransform turns the Normalize/Decompose/Rewrite pipeline on or off.
// It is on by default.
func WithTransform(on bool) Option {
	return func(c *Converter) { c.transform = on }
}

// WithStrict makes constraint kinds without a CPO form fail the conversion.
func WithStrict(on bool) Option {
	return func(c *Converter) { c.strict = on }
}

// WithLogger sets the logger handed to every stage.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithFilesystem sets the filesystem used by the file helpers. The default
// is loader.Host: absolute paths as given, relative ones against the
// working directory.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(c *Converter) { c.fs = fs }
}

// Converter translates XCSP3 documents into CPO text.
type Converter struct {
	transform bool
	strict    bool
	logger    zerolog.Logger
	fs        billy.Filesystem
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	c := &Converter{
		transform: true,
		logger:    zerolog.Nop(),
		fs:        loader.Host(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of one conversion.
type Result struct {
	Model       *model.Model
	Text        string
	Diagnostics []diag.Diagnostic
}

// Convert translates one document held in memory.
func (c *Converter) Convert(doc []byte) (*Result, error) {
	return c.convert(doc, c.logger)
}

func (c *Converter) convert(doc []byte, logger zerolog.Logger) (*Result, error) {
	collector := diag.NewCollector(diag.WithLogger(logger))
	m, err := parser.New(
		parser.WithLogger(logger),
		parser.WithCollector(collector),
	).Parse(doc)
	if err != nil {
		return nil, err
	}
	if c.transform {
		m, err = transform.NewPipeline(
			transform.WithStrict(c.strict),
			transform.WithLogger(logger),
			transform.WithCollector(collector),
		).Run(m)
		if err != nil {
			return nil, err
		}
	}
	return &Result{
		Model:       m,
		Text:        render.Render(m),
		Diagnostics: collector.Diagnostics(),
	}, nil
}

// ConvertFile loads name from the Converter's filesystem, decompressing
// ".lzma" files, and translates it.
func (c *Converter) ConvertFile(name string) (*Result, error) {
	logger := c.logger.With().Str("input", name).Logger()
	doc, err := loader.Load(c.fs, name)
	if err != nil {
		return nil, err
	}
	res, err := c.convert(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}
	return res, nil
}

// WriteFile converts input and stores the text, newline terminated, at
// output.
func (c *Converter) WriteFile(input, output string) (*Result, error) {
	res, err := c.ConvertFile(input)
	if err != nil {
		return nil, err
	}
	if err := c.save(output, res.Model); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Converter) save(output string, m *model.Model) error {
	var buf bytes.Buffer
	if err := render.Write(&buf, m); err != nil {
		return err
	}
	return loader.Save(c.fs, output, buf.Bytes())
}

// BatchResult reports the conversion of one batch input.
type BatchResult struct {
	Input       string
	Output      string
	Diagnostics []diag.Diagnostic
	Err         error
}

// Batch converts every input on a pool of workers goroutines (zero means
// one per CPU) and writes each result to outDir under loader.OutputName.
// Results are in input order. A failed input does not stop the others; its
// error is in the corresponding BatchResult. The returned error is set
// only when ctx ends before every input was scheduled.
func (c *Converter) Batch(ctx context.Context, inputs []string, outDir, suffix string, workers int) ([]BatchResult, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	results, err := parallel.Map(ctx, workers, inputs, func(ctx context.Context, input string) BatchResult {
		br := BatchResult{Input: input, Output: path.Join(outDir, loader.OutputName(input, suffix))}
		if br.Err = ctx.Err(); br.Err != nil {
			return br
		}
		res, err := c.WriteFile(input, br.Output)
		if err != nil {
			br.Err = err
			return br
		}
		br.Diagnostics = res.Diagnostics
		return br
	})
	for i := range results {
		if results[i].Input == "" && i < len(inputs) {
			results[i] = BatchResult{Input: inputs[i], Err: err}
		}
	}
	c.logger.Debug().Int("inputs", len(inputs)).Int("workers", workers).Msg("batch finished")
	return results, err
}

// ConvertString translates an XCSP3 document given as text.
func ConvertString(doc string, opts ...Option) (string, error) {
	res, err := New(opts...).Convert([]byte(doc))
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ConvertFile translates the document stored at name.
func ConvertFile(name string, opts ...Option) (string, error) {
	res, err := New(opts...).ConvertFile(name)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
