package expr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"symmetrica/expr"
)

func TestHashConsingIdentity(t *testing.T) {
	s := expr.NewStore()
	x1 := s.Symbol("x")
	x2 := s.Symbol("x")
	require.Equal(t, x1, x2)

	a1 := s.Add([]expr.Handle{x1, s.Integer(1)})
	a2 := s.Add([]expr.Handle{x2, s.Integer(1)})
	require.Equal(t, a1, a2)
}

func TestAddCommutativity(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	z := s.Symbol("z")

	a := s.Add([]expr.Handle{x, y, z})
	b := s.Add([]expr.Handle{z, y, x})
	c := s.Add([]expr.Handle{y, z, x})
	require.Equal(t, a, b)
	require.Equal(t, a, c)
}

func TestMulCommutativity(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	require.Equal(t, s.Mul([]expr.Handle{x, y}), s.Mul([]expr.Handle{y, x}))
}

func TestAddAssociativity(t *testing.T) {
	s := expr.NewStore()
	a := s.Symbol("a")
	b := s.Symbol("b")
	c := s.Symbol("c")

	left := s.Add([]expr.Handle{s.Add([]expr.Handle{a, b}), c})
	flat := s.Add([]expr.Handle{a, b, c})
	right := s.Add([]expr.Handle{a, s.Add([]expr.Handle{b, c})})

	require.Equal(t, flat, left)
	require.Equal(t, flat, right)
}

func TestAddNumericFolding(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	sum := s.Add([]expr.Handle{s.Integer(2), x, s.Integer(3)})
	n := s.Get(sum)
	require.Equal(t, expr.OpAdd, n.Op)
	require.Len(t, n.Children, 2)
}

func TestAddZeroNumericOmitted(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	sum := s.Add([]expr.Handle{s.Integer(0), x})
	require.Equal(t, x, sum)
}

func TestMulZeroShortCircuits(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	prod := s.Mul([]expr.Handle{x, s.Integer(0), y})
	require.Equal(t, s.Integer(0), prod)
}

func TestMulIdentityOneOmitted(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	prod := s.Mul([]expr.Handle{s.Integer(1), x})
	require.Equal(t, x, prod)
}

func TestRationalNormalizesToInteger(t *testing.T) {
	s := expr.NewStore()
	h, err := s.Rational(6, 3)
	require.NoError(t, err)
	n := s.Get(h)
	require.Equal(t, expr.OpInteger, n.Op)
	require.Equal(t, int64(2), n.Int)
}

func TestRationalZeroDenominator(t *testing.T) {
	s := expr.NewStore()
	_, err := s.Rational(1, 0)
	require.Error(t, err)
}

func TestPowTrivialExponents(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")

	require.Equal(t, x, s.Pow(x, s.Integer(1)))
	require.Equal(t, s.Integer(1), s.Pow(x, s.Integer(0)))
}

func TestPowZeroToZeroIsLiteral(t *testing.T) {
	s := expr.NewStore()
	zero := s.Integer(0)
	h := s.Pow(zero, zero)
	n := s.Get(h)
	require.Equal(t, expr.OpPow, n.Op)
	require.Equal(t, []expr.Handle{zero, zero}, n.Children)
}

func TestDegenerateArities(t *testing.T) {
	s := expr.NewStore()
	require.Equal(t, s.Integer(0), s.Add(nil))
	require.Equal(t, s.Integer(1), s.Mul(nil))

	x := s.Symbol("x")
	require.Equal(t, x, s.Add([]expr.Handle{x}))
	require.Equal(t, x, s.Mul([]expr.Handle{x}))
}

// TestMulFlattensAndSortsRegardlessOfNestingShape builds the same product
// three different nested ways and checks the resulting node's Op and
// Children agree in one structural comparison. cmp.Diff, rather than
// require.Equal on each field, names exactly which field diverges when it
// doesn't; Digest is excluded because it is derived from Op and Children,
// so the comparison covers only the structural fields.
func TestMulFlattensAndSortsRegardlessOfNestingShape(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	z := s.Symbol("z")

	flat := s.Mul([]expr.Handle{x, y, z})
	nestedLeft := s.Mul([]expr.Handle{s.Mul([]expr.Handle{x, y}), z})
	nestedRight := s.Mul([]expr.Handle{x, s.Mul([]expr.Handle{y, z})})

	want := s.Get(flat)
	ignoreDigest := cmpopts.IgnoreFields(expr.Node{}, "Digest")
	for _, got := range []expr.Node{s.Get(nestedLeft), s.Get(nestedRight)} {
		if diff := cmp.Diff(want, got, ignoreDigest); diff != "" {
			t.Errorf("node mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFunctionArgOrderSignificant(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	y := s.Symbol("y")
	f1 := s.Function("atan2", []expr.Handle{y, x})
	f2 := s.Function("atan2", []expr.Handle{x, y})
	require.NotEqual(t, f1, f2)
}

func TestDigestStability(t *testing.T) {
	s1 := expr.NewStore()
	s2 := expr.NewStore()
	x1 := s1.Symbol("x")
	x2 := s2.Symbol("x")
	require.Equal(t, s1.Digest(x1), s2.Digest(x2))

	sum1 := s1.Add([]expr.Handle{x1, s1.Integer(5)})
	sum2 := s2.Add([]expr.Handle{x2, s2.Integer(5)})
	require.Equal(t, s1.Digest(sum1), s2.Digest(sum2))
}

func TestWalkVisitsEachHandleOnce(t *testing.T) {
	s := expr.NewStore()
	x := s.Symbol("x")
	shared := s.Add([]expr.Handle{x, s.Integer(1)})
	top := s.Mul([]expr.Handle{shared, shared})

	visits := 0
	s.Walk(top, func(expr.Handle) bool {
		visits++
		return true
	})
	// top, shared, x, Integer(1) — each exactly once despite shared
	// appearing twice as a child of top.
	require.Equal(t, 4, visits)
}
