package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEitherReturnsLeftOnSuccess(t *testing.T) {
	calls := 0
	p := Either[string, string](Eq("a"), counted[string](Eq("b"), &calls))

	val, err := p.Parse(tokens("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a", val)
	assert.Zero(t, calls, "right branch must not run when left succeeds")
}

func TestEitherFallsBackWithoutProgress(t *testing.T) {
	st := tokens("a", "b")
	p := Either[string, string](consumeThenFail(0, "left"), Then[string, string](One[string](), Pack[string]("right")))

	val, err := p.Parse(st)
	require.NoError(t, err)
	assert.Equal(t, "right", val)
	assert.Equal(t, Pos(1), st.Pos(), "result position is the right branch's")
}

func TestEitherReturnsRightFailure(t *testing.T) {
	st := tokens("a")
	_, err := Either[string, string](Fail[string, string]("left"), Fail[string, string]("right")).Parse(st)

	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "right", perr.Message)
}

func TestEitherProgressLock(t *testing.T) {
	calls := 0
	st := tokens("a", "b", "c")
	p := Either[string, string](consumeThenFail(2, "left"), counted[string](Pack[string]("right"), &calls))

	_, err := p.Parse(st)
	require.Error(t, err)
	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "left", perr.Message)
	assert.Equal(t, Pos(2), perr.Pos)
	assert.Equal(t, Pos(2), st.Pos(), "no rewind after partial consumption")
	assert.Zero(t, calls)
}

func TestEitherWithTryBacktracks(t *testing.T) {
	st := tokens("a", "c")
	ab := Then[string, string](Eq("a"), Eq("b"))
	ac := Then[string, string](Eq("a"), Eq("c"))

	_, err := Either[string, string](ab, ac).Parse(tokens("a", "c"))
	require.Error(t, err, "without try the first branch commits after 'a'")

	val, err := Either[string, string](Try[string, string](ab), ac).Parse(st)
	require.NoError(t, err)
	assert.Equal(t, "c", val)
	assert.Equal(t, Pos(2), st.Pos())
}

func TestEitherOrChains(t *testing.T) {
	p := Either[string, string](Eq("a"), Eq("b")).Or(Eq("c"))

	for _, tok := range []string{"a", "b", "c"} {
		val, err := p.Parse(tokens(tok))
		require.NoError(t, err)
		assert.Equal(t, tok, val)
	}

	st := tokens("d")
	_, err := p.Parse(st)
	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "expected c", perr.Message)
	assert.Equal(t, Pos(0), st.Pos())
}

func TestEitherOrKeepsProgressLock(t *testing.T) {
	calls := 0
	p := Either[string, string](Eq("x"), consumeThenFail(1, "middle")).Or(counted[string](Eq("a"), &calls))

	_, err := p.Parse(tokens("a"))
	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "middle", perr.Message)
	assert.Zero(t, calls)
}
