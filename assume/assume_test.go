package assume_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symmetrica/assume"
)

func TestUnassertedIsUnknown(t *testing.T) {
	a := assume.New()
	require.Equal(t, assume.Unknown, a.Has("x", assume.Positive))
}

func TestAssumeThenHas(t *testing.T) {
	a := assume.New()
	a.Assume("x", assume.Positive)
	require.Equal(t, assume.True, a.Has("x", assume.Positive))
	require.Equal(t, assume.Unknown, a.Has("x", assume.Integer))
}

func TestPropertiesDoNotImplyEachOther(t *testing.T) {
	a := assume.New()
	a.Assume("x", assume.Positive)
	require.False(t, a.IsNonzero("x"))
}

func TestMultiplePropertiesPerSymbol(t *testing.T) {
	a := assume.New()
	a.Assume("x", assume.Positive)
	a.Assume("x", assume.Real)
	require.True(t, a.IsPositive("x"))
	require.True(t, a.IsReal("x"))
	require.False(t, a.IsInteger("x"))
}

func TestNilAssumptionsAnswerUnknown(t *testing.T) {
	var a *assume.Assumptions
	require.Equal(t, assume.Unknown, a.Has("x", assume.Positive))
	require.False(t, a.IsPositive("x"))
}

func TestPropertyString(t *testing.T) {
	p := assume.Positive | assume.Real
	require.Equal(t, "real, positive", p.String())
}
