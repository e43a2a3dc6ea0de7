// Package model provides the intermediate representation (IR) of an XCSP3
// instance: domains, variables, arrays, the closed family of constraint kinds,
// objectives and the Model that aggregates them.
//
// This file defines the Domain type for finite integer domains written as a
// union of inclusive ranges and explicit values.
//
// Domains are immutable. Operations never modify a Domain in place, so a
// Domain value may be shared freely between Variables, Arrays and Model
// snapshots produced by different pipeline stages.
package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Range is an inclusive integer interval [Lo, Hi].
type Range struct {
	Lo, Hi int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return r.Lo <= v && v <= r.Hi
}

// String renders the range as "lo..hi", or as a bare literal for a
// singleton range.
func (r Range) String() string {
	if r.Lo == r.Hi {
		return strconv.Itoa(r.Lo)
	}
	return fmt.Sprintf("%d..%d", r.Lo, r.Hi)
}

// Domain represents a finite integer domain as ranges ∪ values.
type Domain struct {
	ranges []Range
	values []int
}

// NewDomain creates a domain from ranges and explicit values.
// The inputs are copied.
func NewDomain(ranges []Range, values []int) Domain {
	return Domain{
		ranges: slices.Clone(ranges),
		values: slices.Clone(values),
	}
}

// RangeDomain creates the domain {lo..hi}.
func RangeDomain(lo, hi int) Domain {
	return Domain{ranges: []Range{{Lo: lo, Hi: hi}}}
}

// ParseDomain parses the XCSP3 textual form of an integer domain, e.g.
// "1..10", "0 2 4", "-5..-1 3 7..9". Tokens are separated by whitespace or
// commas. A token that is neither an integer nor an integer range is an error.
func ParseDomain(text string) (Domain, error) {
	var d Domain
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	for _, tok := range fields {
		if lo, hi, ok := strings.Cut(tok, ".."); ok {
			l, err := strconv.Atoi(lo)
			if err != nil {
				return Domain{}, fmt.Errorf("domain: invalid range %q: %w", tok, err)
			}
			h, err := strconv.Atoi(hi)
			if err != nil {
				return Domain{}, fmt.Errorf("domain: invalid range %q: %w", tok, err)
			}
			d.ranges = append(d.ranges, Range{Lo: l, Hi: h})
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Domain{}, fmt.Errorf("domain: invalid value %q: %w", tok, err)
		}
		d.values = append(d.values, v)
	}
	return d, nil
}

// Ranges returns a copy of the domain's ranges in declaration order.
func (d Domain) Ranges() []Range { return slices.Clone(d.ranges) }

// Values returns a copy of the domain's explicit values in declaration order.
func (d Domain) Values() []int { return slices.Clone(d.values) }

// IsEmpty reports whether the domain has neither ranges nor values.
func (d Domain) IsEmpty() bool {
	return len(d.ranges) == 0 && len(d.values) == 0
}

// Has reports whether v belongs to the domain.
func (d Domain) Has(v int) bool {
	return d.covered(v) || slices.Contains(d.values, v)
}

func (d Domain) covered(v int) bool {
	for _, r := range d.ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// Render returns the CPO text of the domain: ranges first, then values not
// already covered by a range, joined by ", ". The empty domain renders as
// "0..0".
func (d Domain) Render() string {
	parts := make([]string, 0, len(d.ranges)+len(d.values))
	for _, r := range d.ranges {
		parts = append(parts, r.String())
	}
	for _, v := range d.values {
		if !d.covered(v) {
			parts = append(parts, strconv.Itoa(v))
		}
	}
	if len(parts) == 0 {
		return "0..0"
	}
	return strings.Join(parts, ", ")
}

// String implements fmt.Stringer.
func (d Domain) String() string { return d.Render() }

// Equal reports whether two domains have identical ranges and values.
func (d Domain) Equal(other Domain) bool {
	return slices.Equal(d.ranges, other.ranges) && slices.Equal(d.values, other.values)
}
