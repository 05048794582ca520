package parsec

// Pos marks a position in a token stream. It is only meaningful for the
// State it was obtained from.
type Pos int

// State is a mutable cursor over an ordered sequence of tokens.
type State[T any] interface {
	// Pos returns the current position without side effects.
	Pos() Pos
	// SeekTo moves the cursor back (or forward) to a position previously
	// returned by Pos.
	SeekTo(pos Pos)
	// Next returns the token at the cursor and advances past it. At the end
	// of input it returns a *ParseError and does not advance.
	Next() (T, error)
}

// VecState is a State over an in-memory slice of tokens.
type VecState[T any] struct {
	tokens []T
	pos    int
}

// NewVecState returns a state positioned at the first of tokens.
func NewVecState[T any](tokens []T) *VecState[T] {
	return &VecState[T]{tokens: tokens}
}

// NewStringState returns a State over the runes of s.
func NewStringState(s string) *VecState[rune] {
	return NewVecState([]rune(s))
}

// Pos returns the index of the next token.
func (s *VecState[T]) Pos() Pos {
	return Pos(s.pos)
}

// SeekTo moves the cursor to a marker returned by Pos.
func (s *VecState[T]) SeekTo(pos Pos) {
	s.pos = int(pos)
}

// Next returns the current token and advances past it.
func (s *VecState[T]) Next() (T, error) {
	if s.pos >= len(s.tokens) {
		var zero T
		return zero, &ParseError{Pos: Pos(s.pos), Message: "unexpected end of input"}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

// Len returns the total number of tokens.
func (s *VecState[T]) Len() int {
	return len(s.tokens)
}

// AtEnd reports whether every token has been consumed.
func (s *VecState[T]) AtEnd() bool {
	return s.pos >= len(s.tokens)
}
