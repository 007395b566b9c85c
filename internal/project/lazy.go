package project

// lazy memoizes the first result of a computation, error included.
type lazy[T any] struct {
	done  bool
	value T
	err   error
}

func (l *lazy[T]) get(compute func() (T, error)) (T, error) {
	if !l.done {
		l.value, l.err = compute()
		l.done = true
	}
	return l.value, l.err
}
