// Package model: language-based constraints - Regular and MDD.
//
// Both constraints accept the words of an automaton whose length equals the
// number of variables. Regular uses a (possibly nondeterministic) finite
// automaton with an explicit start state and final states. An MDD is a
// layered diagram whose root is the node with no incoming arc and whose
// terminals are the nodes with no outgoing arc.
//
// CPO has no automaton constraint over integer variables, so both render as
// the table of accepted words (allowedAssignments). Words are produced in
// depth-first order following transitions in declaration order; duplicate
// words reached through different paths appear once. Tables are capped at
// MaxWords; a constraint past the cap renders as a comment and
// TableError reports it.
package model

import (
	"errors"
	"fmt"
	"slices"
)

// Transition is an arc From --Symbol--> To.
type Transition struct {
	From   string
	Symbol int
	To     string
}

// String returns the XCSP3 form "(from,symbol,to)".
func (t Transition) String() string {
	return fmt.Sprintf("(%s,%d,%s)", t.From, t.Symbol, t.To)
}

// MaxWords bounds the table a Regular or MDD constraint renders to. The
// number of accepted words can grow exponentially with the number of
// variables, so enumeration stops once it is exceeded.
const MaxWords = 100000

// ErrTooManyWords is returned when an automaton accepts more than MaxWords
// words of the requested length.
var ErrTooManyWords = errors.New("model: more accepted words than fit in a table")

// AcceptedWords enumerates the words of exactly length symbols that lead
// from start to a state satisfying accept. States that cannot complete an
// accepted word in the remaining steps are never entered, so every path
// walked ends in a word. The walk stops with ErrTooManyWords after MaxWords
// paths.
func AcceptedWords(transitions []Transition, start string, accept func(string) bool, length int) ([][]int, error) {
	out := make(map[string][]Transition)
	for _, t := range transitions {
		out[t.From] = append(out[t.From], t)
	}
	live := liveStates(transitions, start, accept, length)
	if !live[length][start] {
		return nil, nil
	}
	var (
		words [][]int
		paths int
		seen  = make(map[string]struct{})
		word  = make([]int, 0, length)
	)
	var walk func(state string) error
	walk = func(state string) error {
		if len(word) == length {
			if paths++; paths > MaxWords {
				return fmt.Errorf("%w: over %d words of length %d", ErrTooManyWords, MaxWords, length)
			}
			key := joinInts(word)
			if _, dup := seen[key]; dup {
				return nil
			}
			seen[key] = struct{}{}
			words = append(words, slices.Clone(word))
			return nil
		}
		next := live[length-len(word)-1]
		for _, t := range out[state] {
			if !next[t.To] {
				continue
			}
			word = append(word, t.Symbol)
			if err := walk(t.To); err != nil {
				return err
			}
			word = word[:len(word)-1]
		}
		return nil
	}
	if err := walk(start); err != nil {
		return nil, err
	}
	return words, nil
}

// liveStates returns, for k in 0..length, the states from which some word
// of exactly k more symbols reaches an accepting state.
func liveStates(transitions []Transition, start string, accept func(string) bool, length int) []map[string]bool {
	live := make([]map[string]bool, length+1)
	live[0] = make(map[string]bool)
	if accept(start) {
		live[0][start] = true
	}
	for _, t := range transitions {
		for _, s := range []string{t.From, t.To} {
			if accept(s) {
				live[0][s] = true
			}
		}
	}
	for k := 1; k <= length; k++ {
		live[k] = make(map[string]bool)
		for _, t := range transitions {
			if live[k-1][t.To] {
				live[k][t.From] = true
			}
		}
	}
	return live
}

// renderWords renders the table of words, or a comment naming the
// constraint when the table could not be built.
func renderWords(name string, vars []string, words [][]int, err error) string {
	if err != nil {
		return fmt.Sprintf("// %s(%s) not expanded: %v", name, listExpr(vars), err)
	}
	return Extension{Variables: vars, Tuples: words, Supports: true}.Render()
}

// TableError reports why a Regular or MDD constraint cannot be written as
// a table. It is nil for every other constraint.
func TableError(c Constraint) error {
	var err error
	switch c := c.(type) {
	case Regular:
		_, err = c.Words()
	case MDD:
		_, err = c.Paths()
	}
	return err
}

// Regular requires the variables to spell a word accepted by the automaton.
type Regular struct {
	Meta
	Variables   []string
	Transitions []Transition
	Start       string
	Final       []string
}

func (Regular) Kind() Kind { return KindRegular }
func (Regular) sealed()    {}

// Words returns the accepted words of length len(Variables).
func (c Regular) Words() ([][]int, error) {
	return AcceptedWords(c.Transitions, c.Start, func(s string) bool {
		return slices.Contains(c.Final, s)
	}, len(c.Variables))
}

// Render returns the allowedAssignments table of accepted words.
func (c Regular) Render() string {
	words, err := c.Words()
	return renderWords("regular", c.Variables, words, err)
}

// MapLists implements ListMapper.
func (c Regular) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Transitions = slices.Clone(c.Transitions)
	c.Final = slices.Clone(c.Final)
	return c
}

// MDD requires the variables to follow a root-to-terminal path of the
// diagram.
type MDD struct {
	Meta
	Variables   []string
	Transitions []Transition
}

func (MDD) Kind() Kind { return KindMDD }
func (MDD) sealed()    {}

// Root returns the node without incoming arcs. When the diagram has none
// (or several), the source of the first transition is used.
func (c MDD) Root() string {
	if len(c.Transitions) == 0 {
		return ""
	}
	incoming := make(map[string]bool)
	for _, t := range c.Transitions {
		incoming[t.To] = true
	}
	var roots []string
	for _, t := range c.Transitions {
		if !incoming[t.From] && !slices.Contains(roots, t.From) {
			roots = append(roots, t.From)
		}
	}
	if len(roots) == 1 {
		return roots[0]
	}
	return c.Transitions[0].From
}

// Paths returns the symbol sequences of all root-to-terminal paths of length
// len(Variables).
func (c MDD) Paths() ([][]int, error) {
	outgoing := make(map[string]bool)
	for _, t := range c.Transitions {
		outgoing[t.From] = true
	}
	return AcceptedWords(c.Transitions, c.Root(), func(s string) bool {
		return !outgoing[s]
	}, len(c.Variables))
}

// Render returns the allowedAssignments table of diagram paths.
func (c MDD) Render() string {
	paths, err := c.Paths()
	return renderWords("mdd", c.Variables, paths, err)
}

// MapLists implements ListMapper.
func (c MDD) MapLists(f func([]string) []string) Constraint {
	c.Variables = f(slices.Clone(c.Variables))
	c.Transitions = slices.Clone(c.Transitions)
	return c
}
