package parsec

func tokens(ts ...string) *VecState[string] {
	return NewVecState(ts)
}

// consumeThenFail reads n tokens and then fails at the resulting position.
func consumeThenFail(n int, message string) Func[string, string] {
	return func(st State[string]) (string, error) {
		for i := 0; i < n; i++ {
			if _, err := st.Next(); err != nil {
				return "", err
			}
		}
		return "", &ParseError{Pos: st.Pos(), Message: message}
	}
}

// counted wraps p and counts how many times it is invoked.
func counted[R any](p Parser[string, R], calls *int) Func[string, R] {
	return func(st State[string]) (R, error) {
		*calls++
		return p.Parse(st)
	}
}
