package parsec

// Runner runs a parser for its effect on the State, discarding the value.
// Every Parser is a Runner, which lets Then and Over accept a discarded side
// of any result type.
type Runner[T any] interface {
	Run(st State[T]) error
}

// Parser parses a value of type R from a stream of T tokens.
type Parser[T, R any] interface {
	Runner[T]
	Parse(st State[T]) (R, error)
}

// Func adapts a plain function into a Parser.
type Func[T, R any] func(st State[T]) (R, error)

// Parse runs the wrapped function against st.
func (f Func[T, R]) Parse(st State[T]) (R, error) {
	return f(st)
}

// Run parses and discards the value.
func (f Func[T, R]) Run(st State[T]) error {
	_, err := f(st)
	return err
}

// Then runs next after this parser and returns next's value.
func (f Func[T, R]) Then(next Parser[T, R]) *ThenParser[T, R] {
	return Then[T, R](f, next)
}

// Over runs next after this parser, keeping this parser's value.
func (f Func[T, R]) Over(next Runner[T]) *OverParser[T, R] {
	return Over[T, R](f, next)
}

// Bind continues with the parser built from this parser's value.
func (f Func[T, R]) Bind(binder func(R) Parser[T, R]) *BindParser[T, R, R] {
	return Bind[T, R, R](f, binder)
}
