package parsec

// OverParser returns the prefix value once the postfix has also matched.
type OverParser[T, R any] struct {
	prefix  Parser[T, R]
	postfix Runner[T]
}

// Over returns a parser that runs prefix, then postfix, and yields the
// prefix value. postfix is skipped when prefix fails; a postfix failure is
// returned as-is without rewinding prefix.
func Over[T, R any](prefix Parser[T, R], postfix Runner[T]) *OverParser[T, R] {
	return &OverParser[T, R]{prefix: prefix, postfix: postfix}
}

// Parse runs the sequence against st.
func (o *OverParser[T, R]) Parse(st State[T]) (R, error) {
	var zero R
	val, err := o.prefix.Parse(st)
	if err != nil {
		return zero, err
	}
	if err := o.postfix.Run(st); err != nil {
		return zero, err
	}
	return val, nil
}

// Run parses and discards the value.
func (o *OverParser[T, R]) Run(st State[T]) error {
	_, err := o.Parse(st)
	return err
}

// Then runs next after this parser and returns next's value.
func (o *OverParser[T, R]) Then(next Parser[T, R]) *ThenParser[T, R] {
	return Then[T, R](o, next)
}

// Over runs next after this parser, keeping this parser's value.
func (o *OverParser[T, R]) Over(next Runner[T]) *OverParser[T, R] {
	return Over[T, R](o, next)
}

// Bind continues with the parser built from this parser's value.
func (o *OverParser[T, R]) Bind(binder func(R) Parser[T, R]) *BindParser[T, R, R] {
	return Bind[T, R, R](o, binder)
}
