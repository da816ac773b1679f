package domain

import "encoding/json"

// Field is an optional value that records whether it was present in the
// request body at all. This distinguishes an omitted field from one that was
// explicitly set, including to null, which plain pointers cannot express.
type Field[T any] struct {
	value T
	set   bool
}

// NewField returns a present Field holding v.
func NewField[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Set returns whether the field was present.
func (f Field[T]) Set() bool {
	return f.set
}

// Value returns the field's value. The zero value is returned when the field
// was absent; callers should check Set first.
func (f Field[T]) Value() T {
	return f.value
}

// Get returns the field's value and whether it was present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys that
// appear in the document, so reaching it at all marks the field as present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &f.value); err != nil {
		return err
	}
	f.set = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}
