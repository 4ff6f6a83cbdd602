package ledger

import "github.com/google/uuid"

// Identified pairs a value with a process-generated unique identifier.
// It is used only at the persistence boundary: the identifier becomes the
// storage row's primary key. The id is generated once, at wrap time, and
// never recomputed; the wrapper carries no storage-format knowledge.
type Identified[T any] struct {
	ID   uuid.UUID
	Data T
}

// NewIdentified wraps data with a fresh random identifier.
func NewIdentified[T any](data T) Identified[T] {
	return Identified[T]{ID: uuid.New(), Data: data}
}

// IdentifyAll wraps each element of a slice, preserving order.
func IdentifyAll[T any](items []T) []Identified[T] {
	out := make([]Identified[T], len(items))
	for i, item := range items {
		out[i] = NewIdentified(item)
	}
	return out
}
