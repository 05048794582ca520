package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVecState(t *testing.T) {
	st := tokens("a", "b")
	assert.Equal(t, 2, st.Len())

	tok, err := st.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", tok)
	mark := st.Pos()

	_, err = st.Next()
	require.NoError(t, err)
	assert.True(t, st.AtEnd())

	_, err = st.Next()
	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, Pos(2), perr.Pos)
	assert.Equal(t, Pos(2), st.Pos(), "next at end does not advance")

	st.SeekTo(mark)
	st.SeekTo(mark)
	tok, err = st.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok)
}

func TestStringState(t *testing.T) {
	p := Then[rune, rune](Eq('h'), Eq('é'))
	val, err := p.Parse(NewStringState("hé"))
	require.NoError(t, err)
	assert.Equal(t, 'é', val)
}

func TestAtomsRewindOnMismatch(t *testing.T) {
	atoms := map[string]Func[string, string]{
		"eq":      Eq("x"),
		"ne":      Ne("a"),
		"oneOf":   OneOf("x", "y"),
		"noneOf":  NoneOf("a", "b"),
		"satisfy": Satisfy(func(s string) bool { return len(s) > 1 }, "expected long token"),
	}
	for name, atom := range atoms {
		st := tokens("a")
		_, err := atom.Parse(st)
		require.Error(t, err, name)
		assert.Equal(t, Pos(0), st.Pos(), "%s must not consume on mismatch", name)
	}
}

func TestAtomsMatch(t *testing.T) {
	val, err := OneOf("x", "y").Parse(tokens("y"))
	require.NoError(t, err)
	assert.Equal(t, "y", val)

	val, err = NoneOf("x", "y").Parse(tokens("z"))
	require.NoError(t, err)
	assert.Equal(t, "z", val)

	val, err = Ne("x").Parse(tokens("q"))
	require.NoError(t, err)
	assert.Equal(t, "q", val)
}

func TestSatisfyAtEnd(t *testing.T) {
	_, err := Eq("x").Parse(tokens())
	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "expected x, found end of input", perr.Message)
}

func TestEOF(t *testing.T) {
	st := tokens("a")
	_, err := EOF[string]().Parse(st)
	perr, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "expected end of input", perr.Message)
	assert.Equal(t, Pos(0), st.Pos())

	_, err = Then[string, struct{}](One[string](), EOF[string]()).Parse(st)
	assert.NoError(t, err)
}
