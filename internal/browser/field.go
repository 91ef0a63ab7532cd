package browser

// FieldResult is the outcome of a single selector lookup: either a
// present value or an explicit absent marker. Element-not-found is the
// expected, common case, so it is data, not an error.
type FieldResult[T any] struct {
	value   T
	present bool
}

// Present wraps a found value.
func Present[T any](v T) FieldResult[T] {
	return FieldResult[T]{value: v, present: true}
}

// Absent is the typed not-found marker.
func Absent[T any]() FieldResult[T] {
	return FieldResult[T]{}
}

// Found reports whether the lookup resolved.
func (r FieldResult[T]) Found() bool { return r.present }

// Get returns the value and whether it was present.
func (r FieldResult[T]) Get() (T, bool) { return r.value, r.present }

// Or returns the value when present, def otherwise. Callers pick the
// absent-case default at the point of composition.
func (r FieldResult[T]) Or(def T) T {
	if r.present {
		return r.value
	}
	return def
}
