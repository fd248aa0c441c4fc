// internal/datacontainer/list.go
//
// Roster – Data containers.
//
// Context
//   The application keeps every saved entity in memory for its lifetime.
//   A List owns one ordered sequence: insertion order is meaningful,
//   duplicates are allowed, and nothing is ever removed.  Only a successful
//   Save appends to it.
//
//   Reads hand out copies of the slice so callers can range without holding
//   the lock.  The entities themselves are shared, not cloned.
//
//------------------------------------------------------------------------------

package datacontainer

import (
	"sync"

	"github.com/yanizio/roster/internal/entity"
	"github.com/yanizio/roster/internal/metrics"
)

// List is an append-only, ordered collection safe for concurrent use.
type List[T any] struct {
	kind  string
	mu    sync.RWMutex
	items []T
}

// NewList returns an empty list.  kind labels the entity counter.
func NewList[T any](kind string) *List[T] {
	return &List[T]{kind: kind}
}

// Add appends v.
func (l *List[T]) Add(v T) {
	l.mu.Lock()
	l.items = append(l.items, v)
	l.mu.Unlock()
	metrics.EntitiesTotal.WithLabelValues(l.kind).Inc()
}

// All returns a copy in insertion order.
func (l *List[T]) All() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the current size.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the i-th entry.  ok is false when i is out of range.
func (l *List[T]) At(i int) (v T, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		return v, false
	}
	return l.items[i], true
}

// Container is the application data model: one list per entity kind.
type Container struct {
	Classrooms *List[*entity.Classroom]
	Courses    *List[*entity.Course]
}

// New returns a Container with empty lists.
func New() *Container {
	return &Container{
		Classrooms: NewList[*entity.Classroom](entity.KindClassroom),
		Courses:    NewList[*entity.Course](entity.KindCourse),
	}
}
