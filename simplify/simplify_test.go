package simplify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symmetrica/assume"
	"symmetrica/expr"
	"symmetrica/simplify"
)

func TestSimplify_CollectsLikeTerms(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	// x + x -> 2x
	sum := s.Add([]expr.Handle{x, x})
	got := simplify.Simplify(s, sum, nil)
	want := s.Mul([]expr.Handle{s.Integer(2), x})
	require.Equal(t, want, got)
}

func TestSimplify_CollectsLikeTermsWithCoefficients(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	// 2x + 3x -> 5x
	term1 := s.Mul([]expr.Handle{s.Integer(2), x})
	term2 := s.Mul([]expr.Handle{s.Integer(3), x})
	got := simplify.Simplify(s, s.Add([]expr.Handle{term1, term2}), nil)
	want := s.Mul([]expr.Handle{s.Integer(5), x})
	require.Equal(t, want, got)
}

func TestSimplify_CancelsOppositeTerms(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	negX := s.Mul([]expr.Handle{s.Integer(-1), x})
	got := simplify.Simplify(s, s.Add([]expr.Handle{x, negX}), nil)
	require.Equal(t, s.Integer(0), got)
}

func TestSimplify_MergesPowers(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	// x * x -> x^2
	got := simplify.Simplify(s, s.Mul([]expr.Handle{x, x}), nil)
	want := s.Pow(x, s.Integer(2))
	require.Equal(t, want, got)
}

func TestSimplify_SqrtOfSquareKeptWithoutPositiveAssumption(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	half, _ := s.Rational(1, 2)
	inner := s.Pow(x, s.Integer(2))
	// (x^2)^(1/2) is |x|, so with nothing known about x it stays as is.
	got := simplify.Simplify(s, s.Pow(inner, half), nil)
	require.Equal(t, s.Pow(inner, half), got)
}

func TestSimplify_LnExpCancel(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	got := simplify.Simplify(s, s.Function("ln", []expr.Handle{s.Function("exp", []expr.Handle{x})}), nil)
	require.Equal(t, x, got)
}

func TestSimplify_ExpLnCancel(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	got := simplify.Simplify(s, s.Function("exp", []expr.Handle{s.Function("ln", []expr.Handle{x})}), nil)
	require.Equal(t, x, got)
}

func TestSimplify_PythagoreanIdentity(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	sinSq := s.Pow(s.Function("sin", []expr.Handle{x}), s.Integer(2))
	cosSq := s.Pow(s.Function("cos", []expr.Handle{x}), s.Integer(2))
	got := simplify.Simplify(s, s.Add([]expr.Handle{sinSq, cosSq}), nil)
	require.Equal(t, s.Integer(1), got)
}

func TestSimplify_HyperbolicIdentity(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	coshSq := s.Pow(s.Function("cosh", []expr.Handle{x}), s.Integer(2))
	sinhSq := s.Pow(s.Function("sinh", []expr.Handle{x}), s.Integer(2))
	negSinhSq := s.Mul([]expr.Handle{s.Integer(-1), sinhSq})
	got := simplify.Simplify(s, s.Add([]expr.Handle{coshSq, negSinhSq}), nil)
	require.Equal(t, s.Integer(1), got)
}

func TestSimplify_DoubleAngle(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	sin := s.Function("sin", []expr.Handle{x})
	cos := s.Function("cos", []expr.Handle{x})
	got := simplify.Simplify(s, s.Mul([]expr.Handle{s.Integer(2), sin, cos}), nil)
	want := s.Function("sin", []expr.Handle{s.Mul([]expr.Handle{s.Integer(2), x})})
	require.Equal(t, want, got)
}

func TestSimplify_SqrtDesugarsToHalfPower(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	half, _ := s.Rational(1, 2)
	got := simplify.Simplify(s, s.Function("sqrt", []expr.Handle{x}), nil)
	want := s.Pow(x, half)
	require.Equal(t, want, got)
}

func TestSimplify_IsIdempotent(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	expr1 := s.Add([]expr.Handle{
		s.Mul([]expr.Handle{s.Integer(2), x}),
		s.Mul([]expr.Handle{s.Integer(3), x}),
		y,
	})
	once := simplify.Simplify(s, expr1, nil)
	twice := simplify.Simplify(s, once, nil)
	require.Equal(t, once, twice)
}

func TestSimplify_SqrtOfSquareReducesUnderPositiveAssumption(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	half, _ := s.Rational(1, 2)
	inner := s.Pow(x, s.Integer(2))
	a := assume.New()
	a.Assume("x", assume.Positive)
	got := simplify.Simplify(s, s.Pow(inner, half), a)
	require.Equal(t, x, got)
}

func TestSimplify_LnProductUnderPositiveAssumptions(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	a := assume.New()
	a.Assume("x", assume.Positive)
	a.Assume("y", assume.Positive)
	ln := s.Function("ln", []expr.Handle{s.Mul([]expr.Handle{x, y})})
	got := simplify.Simplify(s, ln, a)
	want := s.Add([]expr.Handle{
		s.Function("ln", []expr.Handle{x}),
		s.Function("ln", []expr.Handle{y}),
	})
	require.Equal(t, want, got)
}

func TestSimplify_LnProductUnchangedWithoutAssumptions(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	ln := s.Function("ln", []expr.Handle{s.Mul([]expr.Handle{x, y})})
	got := simplify.Simplify(s, ln, nil)
	require.Equal(t, s.Function("ln", []expr.Handle{s.Mul([]expr.Handle{x, y})}), got)
}

func TestSimplify_LnPowerUnderPositiveAssumptions(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	a := assume.New()
	a.Assume("x", assume.Positive)
	third, _ := s.Rational(1, 3)
	ln := s.Function("ln", []expr.Handle{s.Pow(x, third)})
	got := simplify.Simplify(s, ln, a)
	want := s.Mul([]expr.Handle{third, s.Function("ln", []expr.Handle{x})})
	require.Equal(t, want, got)
}

func TestSimplify_LnPowerUnchangedWithoutAssumptions(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	third, _ := s.Rational(1, 3)
	ln := s.Function("ln", []expr.Handle{s.Pow(x, third)})
	got := simplify.Simplify(s, ln, nil)
	require.Equal(t, s.Function("ln", []expr.Handle{s.Pow(x, third)}), got)
}

func TestSimplify_HalfAngleSine(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	half, _ := s.Rational(1, 2)
	halfX := s.Mul([]expr.Handle{half, x})
	sinHalfSq := s.Pow(s.Function("sin", []expr.Handle{halfX}), s.Integer(2))
	got := simplify.Simplify(s, sinHalfSq, nil)

	negCosX := s.Mul([]expr.Handle{s.Integer(-1), s.Function("cos", []expr.Handle{x})})
	want := s.Mul([]expr.Handle{half, s.Add([]expr.Handle{s.Integer(1), negCosX})})
	require.Equal(t, want, got)
}

func TestSimplify_HalfAngleCosine(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	half, _ := s.Rational(1, 2)
	halfX := s.Mul([]expr.Handle{half, x})
	cosHalfSq := s.Pow(s.Function("cos", []expr.Handle{halfX}), s.Integer(2))
	got := simplify.Simplify(s, cosHalfSq, nil)

	want := s.Mul([]expr.Handle{half, s.Add([]expr.Handle{s.Integer(1), s.Function("cos", []expr.Handle{x})})})
	require.Equal(t, want, got)
}

func TestSimplify_SumToProduct(t *testing.T) {
	s := expr.NewStore()
	a := s.Symbol("a")
	b := s.Symbol("b")
	got := simplify.Simplify(s, s.Add([]expr.Handle{
		s.Function("sin", []expr.Handle{a}),
		s.Function("sin", []expr.Handle{b}),
	}), nil)

	half, _ := s.Rational(1, 2)
	negB := s.Mul([]expr.Handle{s.Integer(-1), b})
	sumHalf := s.Mul([]expr.Handle{half, s.Add([]expr.Handle{a, b})})
	diffHalf := s.Mul([]expr.Handle{half, s.Add([]expr.Handle{a, negB})})
	want := s.Mul([]expr.Handle{
		s.Integer(2),
		s.Function("sin", []expr.Handle{sumHalf}),
		s.Function("cos", []expr.Handle{diffHalf}),
	})
	require.Equal(t, want, got)
}

func TestSimplify_RadicalExtractsPerfectPowerFactor(t *testing.T) {
	s := expr.NewStore()
	half, _ := s.Rational(1, 2)
	got := simplify.Simplify(s, s.Pow(s.Integer(8), half), nil)
	want := s.Mul([]expr.Handle{s.Integer(2), s.Pow(s.Integer(2), half)})
	require.Equal(t, want, got)
}

func TestSimplify_RadicalOfPerfectPowerFoldsToInteger(t *testing.T) {
	s := expr.NewStore()
	half, _ := s.Rational(1, 2)
	got := simplify.Simplify(s, s.Pow(s.Integer(4), half), nil)
	require.Equal(t, s.Integer(2), got)
}

func TestSimplify_RadicalLeavesIrreducibleBaseAlone(t *testing.T) {
	s := expr.NewStore()
	half, _ := s.Rational(1, 2)
	got := simplify.Simplify(s, s.Pow(s.Integer(2), half), nil)
	require.Equal(t, s.Pow(s.Integer(2), half), got)
}

func TestSimplify_LeavesUnrelatedFunctionsAlone(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	got := simplify.Simplify(s, s.Function("sin", []expr.Handle{x}), nil)
	require.Equal(t, s.Function("sin", []expr.Handle{x}), got)
}
