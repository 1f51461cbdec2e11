package hyperellipse

// memo holds a value computed on first use. The zero value is empty.
type memo[T any] struct {
	done bool
	val  T
	err  error
}

func (m *memo[T]) get(compute func() (T, error)) (T, error) {
	if !m.done {
		m.val, m.err = compute()
		m.done = true
	}
	return m.val, m.err
}

func (m *memo[T]) reset() {
	*m = memo[T]{}
}
