package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"less than", "lt(x,y)", "(x < y)"},
		{"nested equality", "eq(add(x,y),z)", "((x + y) == z)"},
		{"both sides nested", "lt(add(x,y),mul(z,2))", "((x + y) < (z * 2))"},
		{"every binary operator", "sub(div(a,b),mod(pow(c,2),d))", "((a / b) - ((c ^ 2) % d))"},
		{"relational", "and(le(x,1),or(ge(y,2),ne(z,3)))", "((x <= 1) && ((y >= 2) || (z != 3)))"},
		{"implication", "imp(gt(x,0),eq(y,1))", "((x > 0) => (y == 1))"},
		{"iff maps to equality", "iff(x,y)", "(x == y)"},
		{"n-ary add", "add(a,b,c,d)", "(a + b + c + d)"},
		{"n-ary mul", "mul(a,b,c)", "(a * b * c)"},
		{"n-ary and", "and(a,b,c)", "(a && b && c)"},
		{"n-ary or", "or(a,b,c)", "(a || b || c)"},
		{"negation", "neg(x)", "(-x)"},
		{"not", "not(eq(x,y))", "(!(x == y))"},
		{"abs", "abs(sub(x,y))", "abs((x - y))"},
		{"min any arity", "min(x,y,z)", "min([x, y, z])"},
		{"max single", "max(x)", "max([x])"},
		{"if-then-else", "if(lt(x,y),x,y)", "((x < y) ? x : y)"},
		{"dist", "dist(x,y)", "abs(x - y)"},
		{"case-insensitive head", "ADD(x,y)", "(x + y)"},
		{"unknown head passes through", "xor(a,lt(b,c))", "xor(a, (b < c))"},
		{"unknown head keeps spelling", "allDifferent(x,y)", "allDifferent(x, y)"},
		{"sub with wrong arity", "sub(a,b,c)", "sub(a, b, c)"},
		{"if with wrong arity", "if(a,b)", "if(a, b)"},
		{"array cell", "x[3]", "x[3]"},
		{"array cell inside call", "eq(x[0],x[1])", "(x[0] == x[1])"},
		{"literal", "  42 ", "42"},
		{"identifier", "foo", "foo"},
		{"empty call body", "f()", "f()"},
		{"spaces around args", "add( x , y )", "(x + y)"},
		{"not a call", "(x)", "(x)"},
		{"trailing text", "add(x,y) z", "add(x,y) z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Convert(tc.in))
		})
	}
}

func TestConvert_DeepNestingTerminates(t *testing.T) {
	const depth = 500
	in := strings.Repeat("neg(", depth) + "x" + strings.Repeat(")", depth)
	out := Convert(in)
	require.True(t, strings.HasPrefix(out, strings.Repeat("(-", depth)))
	require.True(t, strings.HasSuffix(out, "x"+strings.Repeat(")", depth)))
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"x", "add(y,z)"}, SplitArgs("x,add(y,z)"))
	assert.Equal(t, []string{"a"}, SplitArgs("a,"))
	assert.Equal(t, []string{"", "a"}, SplitArgs(",a"))
	assert.Equal(t, []string{"a", "", "b"}, SplitArgs("a,,b"))
	assert.Nil(t, SplitArgs("   "))
}
