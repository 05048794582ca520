package parsec

import "fmt"

// Pack returns a parser that always succeeds with value and consumes
// nothing. Every invocation yields the same value.
func Pack[T, R any](value R) Func[T, R] {
	return func(State[T]) (R, error) {
		return value, nil
	}
}

// Fail returns a parser that always fails at the current position with
// message. It consumes nothing.
func Fail[T, R any](message string) Func[T, R] {
	return func(st State[T]) (R, error) {
		return failAt[R](st.Pos(), message)
	}
}

// Failf is Fail with a formatted message.
func Failf[T, R any](format string, args ...any) Func[T, R] {
	return Fail[T, R](fmt.Sprintf(format, args...))
}

// Try returns a parser that behaves like p, except that on failure the
// state is rewound to where p started, however much p consumed.
func Try[T, R any](p Parser[T, R]) Func[T, R] {
	return func(st State[T]) (R, error) {
		pos := st.Pos()
		val, err := p.Parse(st)
		if err != nil {
			st.SeekTo(pos)
		}
		return val, err
	}
}
