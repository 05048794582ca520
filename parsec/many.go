package parsec

// Many runs p until it fails without consuming input and returns the
// collected values, possibly none. A failure of p after it consumed input is
// returned as the failure of Many. A success of p that consumed nothing is
// reported as an error, because repeating it would never terminate.
func Many[T, R any](p Parser[T, R]) Func[T, []R] {
	return func(st State[T]) ([]R, error) {
		var vals []R
		for {
			pos := st.Pos()
			val, err := p.Parse(st)
			if err != nil {
				if st.Pos() == pos {
					return vals, nil
				}
				return nil, err
			}
			if st.Pos() == pos {
				return failAt[[]R](pos, "repeated parser succeeded without consuming input")
			}
			vals = append(vals, val)
		}
	}
}

// Many1 is like Many but requires at least one match. When the first
// attempt fails, its error is returned.
func Many1[T, R any](p Parser[T, R]) Func[T, []R] {
	rest := Many(p)
	return func(st State[T]) ([]R, error) {
		pos := st.Pos()
		first, err := p.Parse(st)
		if err != nil {
			return nil, err
		}
		if st.Pos() == pos {
			return failAt[[]R](pos, "repeated parser succeeded without consuming input")
		}
		more, err := rest(st)
		if err != nil {
			return nil, err
		}
		return append([]R{first}, more...), nil
	}
}
