package parsec

import (
	"fmt"
	"slices"
)

// Token atoms read a single token. On a mismatch they rewind their own read,
// so their failures never consume input.

// One accepts any single token.
func One[T any]() Func[T, T] {
	return func(st State[T]) (T, error) {
		return st.Next()
	}
}

// Satisfy accepts a token for which pred holds. Otherwise it fails with
// message at the token's position.
func Satisfy[T any](pred func(T) bool, message string) Func[T, T] {
	return func(st State[T]) (T, error) {
		pos := st.Pos()
		tok, err := st.Next()
		if err != nil {
			return failAt[T](pos, message+", found end of input")
		}
		if !pred(tok) {
			st.SeekTo(pos)
			return failAt[T](pos, message)
		}
		return tok, nil
	}
}

// Eq accepts a token equal to want.
func Eq[T comparable](want T) Func[T, T] {
	return Satisfy(func(tok T) bool { return tok == want }, fmt.Sprintf("expected %v", want))
}

// Ne accepts any token other than reject.
func Ne[T comparable](reject T) Func[T, T] {
	return Satisfy(func(tok T) bool { return tok != reject }, fmt.Sprintf("unexpected %v", reject))
}

// OneOf accepts a token equal to any of set.
func OneOf[T comparable](set ...T) Func[T, T] {
	return Satisfy(func(tok T) bool { return slices.Contains(set, tok) }, fmt.Sprintf("expected one of %v", set))
}

// NoneOf accepts a token equal to none of set.
func NoneOf[T comparable](set ...T) Func[T, T] {
	return Satisfy(func(tok T) bool { return !slices.Contains(set, tok) }, fmt.Sprintf("unexpected token from %v", set))
}

// EOF succeeds only when no input remains.
func EOF[T any]() Func[T, struct{}] {
	return func(st State[T]) (struct{}, error) {
		pos := st.Pos()
		if _, err := st.Next(); err != nil {
			return struct{}{}, nil
		}
		st.SeekTo(pos)
		return failAt[struct{}](pos, "expected end of input")
	}
}
