package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohaibafifi/xcsp2cpo/pkg/diag"
	"github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

func mustParse(t *testing.T, doc string) (*model.Model, *Parser) {
	t.Helper()
	p := New()
	m, err := p.Parse([]byte(doc))
	require.NoError(t, err)
	return m, p
}

func TestParse_MalformedDocument(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":        "",
		"plain text":   "not xml at all",
		"mismatched":   "<instance><variables></instance>",
		"unclosed":     "<instance><variables>",
		"two elements": "<a/><b/>",
	} {
		t.Run(name, func(t *testing.T) {
			m, err := Parse([]byte(doc))
			require.ErrorIs(t, err, ErrMalformedDocument)
			assert.Nil(t, m)
		})
	}
}

func TestParse_SingleVariable(t *testing.T) {
	m, _ := mustParse(t, `
	<instance format="XCSP3" type="CSP">
	  <variables>
	    <var id="x"> 1..10 </var>
	  </variables>
	  <constraints></constraints>
	</instance>`)
	require.Len(t, m.Variables(), 1)
	v := m.Variables()[0]
	assert.Equal(t, "x", v.ID)
	assert.Equal(t, []model.Range{{Lo: 1, Hi: 10}}, v.Domain.Ranges())
	assert.Equal(t, model.CSP, m.ProblemType())
}

func TestParse_VariablesAndArrays(t *testing.T) {
	m, p := mustParse(t, `
	<instance type="COP">
	  <variables>
	    <var id="x"> 1..10 </var>
	    <var id="b"/>
	    <var> 1..2 </var>
	    <array id="q" size="[5]"> 0..4 </array>
	    <array id="g" size="[3][4]" startIndex="1"> 0 1 </array>
	    <array id="d" size="junk"> 0..1 </array>
	  </variables>
	</instance>`)
	assert.Equal(t, model.COP, m.ProblemType())
	require.Len(t, m.Variables(), 2)
	assert.Equal(t, "0..1", m.Variables()[1].Domain.Render())

	arrays := m.Arrays()
	require.Len(t, arrays, 3)
	assert.Equal(t, []int{5}, arrays[0].Size)
	assert.Equal(t, []int{3, 4}, arrays[1].Size)
	assert.Equal(t, 12, arrays[1].Total())
	assert.Equal(t, 1, arrays[1].StartIndex)
	assert.Equal(t, []int{1}, arrays[2].Size)
	assert.Empty(t, p.Diagnostics())
}

func TestParse_SkipsUnsupportedVariables(t *testing.T) {
	m, p := mustParse(t, `
	<instance>
	  <variables>
	    <var id="c" type="symbolic"> red green </var>
	    <var id="y" as="x"/>
	    <var id="z"> a..b </var>
	    <array id="w" size="[2]"><domain for="w[0]">1</domain><domain for="w[1]">2</domain></array>
	    <var id="ok"> 0 1 </var>
	  </variables>
	</instance>`)
	require.Len(t, m.Variables(), 1)
	assert.Equal(t, "ok", m.Variables()[0].ID)
	assert.Empty(t, m.Arrays())

	diags := p.Diagnostics()
	require.Len(t, diags, 4)
	for _, d := range diags {
		assert.Equal(t, diag.UnsupportedVariable, d.Kind)
	}
	assert.Equal(t, "c", diags[0].Subject)
}

func TestParse_OptionalSections(t *testing.T) {
	m, _ := mustParse(t, `<instance><objectives><minimize> x </minimize></objectives></instance>`)
	assert.Empty(t, m.Variables())
	assert.Empty(t, m.Constraints())
	require.Len(t, m.Objectives(), 1)
}

func TestParse_DiagnosticsAreCallLocal(t *testing.T) {
	p := New()
	_, err := p.Parse([]byte(`<instance><constraints><knapsack/></constraints></instance>`))
	require.NoError(t, err)
	assert.Len(t, p.Diagnostics(), 1)

	_, err = p.Parse([]byte(`<instance><constraints><knapsack/></constraints></instance>`))
	require.NoError(t, err)
	assert.Len(t, p.Diagnostics(), 1)
}

func TestParse_SharedCollector(t *testing.T) {
	c := diag.NewCollector()
	_, err := Parse([]byte(`<instance><constraints><foo/><bar/></constraints></instance>`), WithCollector(c))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count(diag.UnrecognizedConstraint))
}
