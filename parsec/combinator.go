package parsec

import "sync"

// Map runs p and transforms its value with f.
func Map[T, C, R any](p Parser[T, C], f func(C) R) Func[T, R] {
	return func(st State[T]) (R, error) {
		val, err := p.Parse(st)
		if err != nil {
			var zero R
			return zero, err
		}
		return f(val), nil
	}
}

// Lazy defers building a parser until it is first run. It is how recursive
// grammars refer to rules that are not yet defined.
func Lazy[T, R any](build func() Parser[T, R]) Func[T, R] {
	var (
		once sync.Once
		p    Parser[T, R]
	)
	return func(st State[T]) (R, error) {
		once.Do(func() { p = build() })
		return p.Parse(st)
	}
}

// Label replaces the message of a failure of p that consumed no input.
// Failures after progress are returned unchanged, since they point at a more
// specific problem.
func Label[T, R any](p Parser[T, R], message string) Func[T, R] {
	return func(st State[T]) (R, error) {
		pos := st.Pos()
		val, err := p.Parse(st)
		if err != nil && st.Pos() == pos {
			return failAt[R](pos, message)
		}
		return val, err
	}
}
