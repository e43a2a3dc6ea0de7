// Package diag collects the non-fatal findings of a conversion.
//
// A Collector is owned by exactly one conversion. It replaces any notion of
// process-wide "already warned" state: two conversions running side by side
// each see their own diagnostics, and a kind reported once in one of them
// is still reported in the other.
//
// Every recorded diagnostic is also logged at warn level through the
// collector's zerolog.Logger (zerolog.Nop() unless WithLogger is given),
// with the structured fields "kind" and "subject".
package diag

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// UnsupportedVariable marks a variable or array declaration that was
	// skipped (symbolic domain, "as" alias, non-integer domain text).
	UnsupportedVariable Kind = iota
	// UnrecognizedConstraint marks a constraint tag with no parser.
	UnrecognizedConstraint
	// MalformedTuple marks an extension tuple with a non-integer field.
	MalformedTuple
	// MalformedConstraint marks a recognized constraint whose content could
	// not be read (non-integer coefficients, missing value or condition).
	MalformedConstraint
	// ResidualKind marks a constraint kind that survived the pipeline
	// without CPO support or a decomposition.
	ResidualKind
)

var kindNames = [...]string{
	UnsupportedVariable:    "unsupported-variable",
	UnrecognizedConstraint: "unrecognized-constraint",
	MalformedTuple:         "malformed-tuple",
	MalformedConstraint:    "malformed-constraint",
	ResidualKind:           "residual-kind",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is one recorded finding.
type Diagnostic struct {
	Kind    Kind
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Subject, d.Message)
}

type seenKey struct {
	kind    Kind
	subject string
}

// Collector records diagnostics. The zero value is not usable; call
// NewCollector. All methods are safe for concurrent use, and calls on a nil
// *Collector are no-ops.
type Collector struct {
	mu     sync.Mutex
	logger zerolog.Logger
	items  []Diagnostic
	seen   map[seenKey]struct{}
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger routes recorded diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// NewCollector returns an empty collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		logger: zerolog.Nop(),
		seen:   make(map[seenKey]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report records a diagnostic unconditionally.
func (c *Collector) Report(kind Kind, subject, format string, args ...any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(kind, subject, fmt.Sprintf(format, args...))
}

// ReportOnce records a diagnostic unless one with the same kind and subject
// was already recorded. It reports whether the diagnostic was recorded.
func (c *Collector) ReportOnce(kind Kind, subject, format string, args ...any) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := seenKey{kind: kind, subject: subject}
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.record(kind, subject, fmt.Sprintf(format, args...))
	return true
}

func (c *Collector) record(kind Kind, subject, msg string) {
	c.seen[seenKey{kind: kind, subject: subject}] = struct{}{}
	c.items = append(c.items, Diagnostic{Kind: kind, Subject: subject, Message: msg})
	c.logger.Warn().
		Str("kind", kind.String()).
		Str("subject", subject).
		Msg(msg)
}

// Diagnostics returns the recorded diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// Count returns how many diagnostics of kind were recorded.
func (c *Collector) Count(kind Kind) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
