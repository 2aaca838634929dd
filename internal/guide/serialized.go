package guide

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Serialized lets one generation run at a time; later callers wait their turn
// or give up when their context ends.
type Serialized struct {
	next Generator
	sem  *semaphore.Weighted
}

func NewSerialized(next Generator) *Serialized {
	return &Serialized{next: next, sem: semaphore.NewWeighted(1)}
}

func (s *Serialized) Generate(ctx context.Context, in Input) (Result, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer s.sem.Release(1)
	return s.next.Generate(ctx, in)
}

// Busy reports whether a generation is in flight.
func (s *Serialized) Busy() bool {
	if s.sem.TryAcquire(1) {
		s.sem.Release(1)
		return false
	}
	return true
}
