package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomain_Render(t *testing.T) {
	cases := []struct {
		name string
		dom  Domain
		want string
	}{
		{"single range", RangeDomain(1, 10), "1..10"},
		{"singleton range", RangeDomain(5, 5), "5"},
		{"empty", NewDomain(nil, nil), "0..0"},
		{"values only", NewDomain(nil, []int{0, 2, 4}), "0, 2, 4"},
		{"covered values dropped", NewDomain([]Range{{Lo: 1, Hi: 3}}, []int{2, 7}), "1..3, 7"},
		{"ranges before values", NewDomain([]Range{{Lo: 8, Hi: 9}}, []int{1}), "8..9, 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.dom.Render())
		})
	}
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("-5..-1 3, 7..9")
	require.NoError(t, err)
	assert.Equal(t, []Range{{Lo: -5, Hi: -1}, {Lo: 7, Hi: 9}}, d.Ranges())
	assert.Equal(t, []int{3}, d.Values())
	assert.True(t, d.Has(-3))
	assert.True(t, d.Has(3))
	assert.False(t, d.Has(4))

	d, err = ParseDomain("   ")
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	for _, bad := range []string{"a b", "1..x", "y..3", "1.5"} {
		_, err := ParseDomain(bad)
		assert.Error(t, err, bad)
	}
}

func TestDomain_Immutable(t *testing.T) {
	ranges := []Range{{Lo: 0, Hi: 3}}
	values := []int{9}
	d := NewDomain(ranges, values)
	ranges[0].Hi = 100
	values[0] = 100

	got := d.Ranges()
	got[0].Lo = -1
	assert.Equal(t, "0..3, 9", d.Render())
	assert.True(t, d.Equal(NewDomain([]Range{{Lo: 0, Hi: 3}}, []int{9})))
}

func TestArray_RenderAndTotal(t *testing.T) {
	a := NewArray("x", []int{2, 3}, RangeDomain(0, 1), 0)
	assert.Equal(t, 6, a.Total())
	assert.Equal(t, "x[4]", a.Cell(4))

	small := NewArray("y", []int{2}, RangeDomain(1, 10), 1)
	assert.Equal(t, "y = [intVar(1..10), intVar(1..10)];", small.Render())
	assert.Equal(t, "v = intVar(1..10);", Variable{ID: "v", Domain: RangeDomain(1, 10)}.Render())
}
