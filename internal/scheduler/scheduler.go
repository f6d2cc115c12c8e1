// Package scheduler is the Box Scheduler (spec.md §4.7): it hands out
// disjoint box ids to concurrent evaluations up to a fixed ceiling and
// takes them back when an evaluation finishes. Admission is non-blocking:
// a request that can't be satisfied right now is rejected, not queued.
package scheduler

import "sync"

// Scheduler tracks which box ids (0..Capacity) are currently in use.
type Scheduler struct {
	mu       sync.Mutex
	capacity uint8
	used     map[uint8]struct{}
}

func New(capacity uint8) *Scheduler {
	return &Scheduler{
		capacity: capacity,
		used:     make(map[uint8]struct{}, capacity),
	}
}

// TryAcquire reserves `need` disjoint box ids if capacity allows, returning
// ok=false (and no ids) otherwise. remainingFree is the number of ids still
// free after a successful acquire, used by the caller to decide whether to
// apply back-pressure before pulling the next job off the queue.
func (s *Scheduler) TryAcquire(need int) (ids []uint8, remainingFree int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if int(s.capacity)-len(s.used) < need {
		return nil, int(s.capacity) - len(s.used), false
	}

	ids = make([]uint8, 0, need)
	for id := uint8(0); id < s.capacity && len(ids) < need; id++ {
		if _, taken := s.used[id]; !taken {
			ids = append(ids, id)
		}
	}

	for _, id := range ids {
		s.used[id] = struct{}{}
	}

	return ids, int(s.capacity) - len(s.used), true
}

// Release returns a set of box ids to the free pool.
func (s *Scheduler) Release(ids []uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.used, id)
	}
}

// FreeCount reports the number of box ids not currently in use.
func (s *Scheduler) FreeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.capacity) - len(s.used)
}
