package parsec

// EitherParser tries x, and falls back to y only when x failed without
// consuming input.
type EitherParser[T, R any] struct {
	x Parser[T, R]
	y Parser[T, R]
}

// Either returns the left-biased alternation of x and y. If x fails after
// advancing the state, its failure is returned and y is never attempted.
func Either[T, R any](x, y Parser[T, R]) *EitherParser[T, R] {
	return &EitherParser[T, R]{x: x, y: y}
}

// Parse runs the alternation against st.
func (e *EitherParser[T, R]) Parse(st State[T]) (R, error) {
	pos := st.Pos()
	val, err := e.x.Parse(st)
	if err == nil {
		return val, nil
	}
	if st.Pos() != pos {
		var zero R
		return zero, err
	}
	return e.y.Parse(st)
}

// Run parses and discards the value.
func (e *EitherParser[T, R]) Run(st State[T]) error {
	_, err := e.Parse(st)
	return err
}

// Or extends the alternation with another branch: x, then y, then p.
func (e *EitherParser[T, R]) Or(p Parser[T, R]) *EitherParser[T, R] {
	return Either[T, R](e, p)
}

// Then runs next after this parser and returns next's value.
func (e *EitherParser[T, R]) Then(next Parser[T, R]) *ThenParser[T, R] {
	return Then[T, R](e, next)
}

// Over runs next after this parser, keeping this parser's value.
func (e *EitherParser[T, R]) Over(next Runner[T]) *OverParser[T, R] {
	return Over[T, R](e, next)
}

// Bind continues with the parser built from this parser's value.
func (e *EitherParser[T, R]) Bind(binder func(R) Parser[T, R]) *BindParser[T, R, R] {
	return Bind[T, R, R](e, binder)
}
