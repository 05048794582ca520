package parsec

// ThenParser runs a prefix for its effect and returns the postfix value.
type ThenParser[T, R any] struct {
	prefix  Runner[T]
	postfix Parser[T, R]
}

// Then returns a parser that runs prefix, discards its value and returns the
// result of postfix. postfix is not run when prefix fails. Input consumed by
// prefix is kept even if postfix fails.
func Then[T, R any](prefix Runner[T], postfix Parser[T, R]) *ThenParser[T, R] {
	return &ThenParser[T, R]{prefix: prefix, postfix: postfix}
}

// Parse runs the sequence against st.
func (t *ThenParser[T, R]) Parse(st State[T]) (R, error) {
	if err := t.prefix.Run(st); err != nil {
		var zero R
		return zero, err
	}
	return t.postfix.Parse(st)
}

// Run parses and discards the value.
func (t *ThenParser[T, R]) Run(st State[T]) error {
	_, err := t.Parse(st)
	return err
}

// Then runs next after this parser and returns next's value.
func (t *ThenParser[T, R]) Then(next Parser[T, R]) *ThenParser[T, R] {
	return Then[T, R](t, next)
}

// Over runs next after this parser, keeping this parser's value.
func (t *ThenParser[T, R]) Over(next Runner[T]) *OverParser[T, R] {
	return Over[T, R](t, next)
}

// Bind continues with the parser built from this parser's value.
func (t *ThenParser[T, R]) Bind(binder func(R) Parser[T, R]) *BindParser[T, R, R] {
	return Bind[T, R, R](t, binder)
}
