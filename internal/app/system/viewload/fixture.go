// internal/app/system/viewload/fixture.go
package viewload

import "slices"

// Fixture is a section's constant sample data. It is handed out by copy so
// a rendered state can never mutate the original rows.
type Fixture[T any] struct {
	items []T
}

// NewFixture captures items as the sample data for a section.
func NewFixture[T any](items ...T) Fixture[T] {
	return Fixture[T]{items: slices.Clone(items)}
}

// Items returns a fresh copy of the sample rows (never nil).
func (f Fixture[T]) Items() []T {
	if len(f.items) == 0 {
		return []T{}
	}
	return slices.Clone(f.items)
}

// Len returns the number of sample rows.
func (f Fixture[T]) Len() int { return len(f.items) }
