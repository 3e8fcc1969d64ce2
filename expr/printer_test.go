package expr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"symmetrica/expr"
)

func TestFormatSimpleProduct(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	h := s.Mul([]expr.Handle{s.Integer(5), x})
	require.Equal(t, "5 * x", s.Format(h))
}

func TestFormatRational(t *testing.T) {
	s := expr.NewStore()
	h, err := s.Rational(1, 2)
	require.NoError(t, err)
	require.Equal(t, "1/2", s.Format(h))
}

func TestFormatFunctionCall(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	pow2 := s.Pow(x, s.Integer(2))
	cos := s.Function("cos", []expr.Handle{pow2})
	require.Equal(t, "cos(x^2)", s.Format(cos))
}

func TestFormatParenthesizesLowerPrecedenceOperands(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	sum := s.Add([]expr.Handle{x, y})
	prod := s.Mul([]expr.Handle{s.Integer(2), sum})
	require.Contains(t, s.Format(prod), "(x + y)")
}

func TestFormatPowOfSumParenthesizesBase(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	sum := s.Add([]expr.Handle{x, s.Integer(1)})
	h := s.Pow(sum, s.Integer(2))
	require.Equal(t, "(x + 1)^2", s.Format(h))
}

func TestFormatSubtractionReadsNaturally(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	diff := s.Add([]expr.Handle{x, s.Integer(-3)})
	require.True(t, strings.Contains(s.Format(diff), " - 3"))
}

func TestFormatRationalExponentParenthesized(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	half, _ := s.Rational(1, 2)
	h := s.Pow(x, half)
	require.Equal(t, "x^(1/2)", s.Format(h))
}
