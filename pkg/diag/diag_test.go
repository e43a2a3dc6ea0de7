package diag

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ReportOnceDeduplicates(t *testing.T) {
	c := NewCollector()
	assert.True(t, c.ReportOnce(ResidualKind, "circuit", "no decomposition"))
	assert.False(t, c.ReportOnce(ResidualKind, "circuit", "no decomposition"))
	assert.True(t, c.ReportOnce(ResidualKind, "mdd", "no decomposition"))

	c.Report(UnrecognizedConstraint, "knapsack", "tag %q has no parser", "knapsack")
	c.Report(UnrecognizedConstraint, "knapsack", "tag %q has no parser", "knapsack")

	assert.Equal(t, 2, c.Count(ResidualKind))
	assert.Equal(t, 2, c.Count(UnrecognizedConstraint))
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, `unrecognized-constraint: knapsack: tag "knapsack" has no parser`, c.Diagnostics()[2].String())
}

func TestCollector_IndependentInstances(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	require.True(t, a.ReportOnce(ResidualKind, "circuit", "x"))
	assert.True(t, b.ReportOnce(ResidualKind, "circuit", "x"))
}

func TestCollector_LogsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(WithLogger(zerolog.New(&buf)))
	c.Report(MalformedTuple, "t1", "bad field %s", "a")
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"kind":"malformed-tuple"`)
	assert.Contains(t, out, `"subject":"t1"`)
	assert.Contains(t, out, `"message":"bad field a"`)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.Report(ResidualKind, "x", "y")
	assert.False(t, c.ReportOnce(ResidualKind, "x", "y"))
	assert.Nil(t, c.Diagnostics())
	assert.Zero(t, c.Len())
}

func TestCollector_ConcurrentReports(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ReportOnce(ResidualKind, "circuit", "x")
			c.Report(UnsupportedVariable, "v", "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Count(ResidualKind))
	assert.Equal(t, 16, c.Count(UnsupportedVariable))
}
