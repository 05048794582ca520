package parsec

// BindParser runs a parser and builds its continuation from the parsed
// value.
type BindParser[T, C, R any] struct {
	parser Parser[T, C]
	binder func(C) Parser[T, R]
}

// Bind returns a parser that runs p and, on success, calls binder with the
// value to construct the next parser, which then runs at the position p
// left. binder is not called when p fails. A nil parser from binder fails at
// the current position.
func Bind[T, C, R any](p Parser[T, C], binder func(C) Parser[T, R]) *BindParser[T, C, R] {
	return &BindParser[T, C, R]{parser: p, binder: binder}
}

// Parse runs the continuation chain against st.
func (b *BindParser[T, C, R]) Parse(st State[T]) (R, error) {
	val, err := b.parser.Parse(st)
	if err != nil {
		var zero R
		return zero, err
	}
	next := b.binder(val)
	if next == nil {
		return failAt[R](st.Pos(), "bind continuation is nil")
	}
	return next.Parse(st)
}

// Run parses and discards the value.
func (b *BindParser[T, C, R]) Run(st State[T]) error {
	_, err := b.Parse(st)
	return err
}

// Then runs next after this parser and returns next's value.
func (b *BindParser[T, C, R]) Then(next Parser[T, R]) *ThenParser[T, R] {
	return Then[T, R](b, next)
}

// Over runs next after this parser, keeping this parser's value.
func (b *BindParser[T, C, R]) Over(next Runner[T]) *OverParser[T, R] {
	return Over[T, R](b, next)
}

// Bind continues with the parser built from this parser's value.
func (b *BindParser[T, C, R]) Bind(binder func(R) Parser[T, R]) *BindParser[T, R, R] {
	return Bind[T, R, R](b, binder)
}
