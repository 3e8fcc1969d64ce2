package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symmetrica/expr"
)

func TestDigestDependsOnlyOnStructure(t *testing.T) {
	build := func() (*expr.Store, expr.Handle) {
		s := expr.NewStore()
		x := s.Symbol("x")
		y := s.Symbol("y")
		return s, s.Add([]expr.Handle{s.Mul([]expr.Handle{s.Integer(2), x}), y})
	}

	s1, h1 := build()
	s2, h2 := build()
	require.Equal(t, s1.Digest(h1), s2.Digest(h2))
}

func TestDigestDiffersOnDifferentStructure(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	require.NotEqual(t, s.Digest(x), s.Digest(y))

	sum := s.Add([]expr.Handle{x, y})
	prod := s.Mul([]expr.Handle{x, y})
	require.NotEqual(t, s.Digest(sum), s.Digest(prod))
}

func TestDistinctFunctionNamesDoNotCollapse(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	sin := s.Function("sin", []expr.Handle{x})
	cos := s.Function("cos", []expr.Handle{x})
	require.NotEqual(t, sin, cos)
}
