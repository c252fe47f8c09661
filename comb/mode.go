package comb

// Mode selects whether a run materializes output values.
type Mode uint8

const (
	// ModeEmit builds every intermediate value.
	ModeEmit Mode = iota
	// ModeCheck follows the same control flow but only tracks positions and
	// errors; outputs are zero values.
	ModeCheck
)

func (m Mode) String() string {
	if m == ModeCheck {
		return "check"
	}
	return "emit"
}

// Bind produces a value with f in emit mode.
func Bind[O any](m Mode, f func() O) O {
	if m == ModeCheck {
		var zero O
		return zero
	}
	return f()
}

// Combine joins two values with f in emit mode.
func Combine[A, B, O any](m Mode, a A, b B, f func(A, B) O) O {
	if m == ModeCheck {
		var zero O
		return zero
	}
	return f(a, b)
}

// MapValue transforms a value with f in emit mode.
func MapValue[A, O any](m Mode, a A, f func(A) O) O {
	if m == ModeCheck {
		var zero O
		return zero
	}
	return f(a)
}

// Invoke runs p in mode m.
func Invoke[T comparable, O any](m Mode, p Parser[T, O], c *Cursor[T]) (O, *Located[T]) {
	return p.Go(c, m)
}
