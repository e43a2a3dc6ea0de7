package model

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegular_Words(t *testing.T) {
	// Words over {0,1} of length 3 ending with 1.
	r := Regular{
		Variables: []string{"x", "y", "z"},
		Transitions: []Transition{
			{"a", 0, "a"}, {"a", 1, "b"},
			{"b", 0, "a"}, {"b", 1, "b"},
		},
		Start: "a",
		Final: []string{"b"},
	}
	words, err := r.Words()
	require.NoError(t, err)
	assert.Equal(t, [][]int{
		{0, 0, 1}, {0, 1, 1}, {1, 0, 1}, {1, 1, 1},
	}, words)
	assert.Equal(t,
		"allowedAssignments([x, y, z], [(0, 0, 1), (0, 1, 1), (1, 0, 1), (1, 1, 1)]);",
		r.Render())
}

func TestRegular_NondeterministicDeduplicates(t *testing.T) {
	r := Regular{
		Variables:   []string{"x"},
		Transitions: []Transition{{"q", 1, "f"}, {"q", 1, "g"}},
		Start:       "q",
		Final:       []string{"f", "g"},
	}
	words, err := r.Words()
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}}, words)
}

func selfLoop(n int, final string) Regular {
	vars := make([]string, n)
	for i := range vars {
		vars[i] = fmt.Sprintf("x[%d]", i)
	}
	return Regular{
		Variables:   vars,
		Transitions: []Transition{{"a", 0, "a"}, {"a", 1, "a"}},
		Start:       "a",
		Final:       []string{final},
	}
}

func TestRegular_TooManyWords(t *testing.T) {
	// 2^24 accepted words.
	r := selfLoop(24, "a")
	_, err := r.Words()
	assert.ErrorIs(t, err, ErrTooManyWords)
	assert.ErrorIs(t, TableError(r), ErrTooManyWords)
	assert.True(t, strings.HasPrefix(r.Render(), "// regular([x[0], x[1], "), r.Render())
	assert.Contains(t, r.Render(), "not expanded")

	small := selfLoop(3, "a")
	assert.NoError(t, TableError(small))
	assert.NoError(t, TableError(Intension{Expression: "x"}))
}

func TestRegular_UnreachableFinalIsEmpty(t *testing.T) {
	words, err := selfLoop(64, "f").Words()
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestMDD_Paths(t *testing.T) {
	m := MDD{
		Variables: []string{"x", "y"},
		Transitions: []Transition{
			{"n1", 0, "n2"}, {"n0", 1, "n1"}, {"n0", 2, "n2"},
			{"n1", 1, "t"}, {"n2", 0, "t"},
		},
	}
	assert.Equal(t, "n0", m.Root())
	paths, err := m.Paths()
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 1}, {2, 0}}, paths)
	assert.Equal(t, "allowedAssignments([x, y], [(1, 1), (2, 0)]);", m.Render())
	assert.Equal(t, "", MDD{}.Root())
}

func TestTransition_String(t *testing.T) {
	assert.Equal(t, "(a,1,b)", Transition{"a", 1, "b"}.String())
}
