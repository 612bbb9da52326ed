package roles

// Outcome is either a value (Ok) or a diagnostic describing why no value
// could be produced (Err).
type Outcome[T any] struct {
	value T
	diag  string
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// Err wraps a diagnostic.
func Err[T any](diag string) Outcome[T] {
	return Outcome[T]{diag: diag}
}

// Get unpacks the outcome. ok reports which side is set.
func (o Outcome[T]) Get() (value T, diag string, ok bool) {
	return o.value, o.diag, o.ok
}
