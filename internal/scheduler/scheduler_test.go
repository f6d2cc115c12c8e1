package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireRejectsWhenInsufficientCapacity(t *testing.T) {
	s := New(2)

	ids1, free1, ok1 := s.TryAcquire(2)
	assert.True(t, ok1)
	assert.ElementsMatch(t, []uint8{0, 1}, ids1)
	assert.Equal(t, 0, free1)

	_, _, ok2 := s.TryAcquire(1)
	assert.False(t, ok2)
}

func TestAcquiredIDsAreDisjointAcrossCalls(t *testing.T) {
	s := New(4)

	first, _, ok := s.TryAcquire(2)
	assert.True(t, ok)

	second, free, ok := s.TryAcquire(2)
	assert.True(t, ok)
	assert.Equal(t, 0, free)

	for _, id := range second {
		assert.NotContains(t, first, id)
	}
}

func TestReleaseFreesIDsForReuse(t *testing.T) {
	s := New(1)

	ids, _, ok := s.TryAcquire(1)
	assert.True(t, ok)

	_, _, ok = s.TryAcquire(1)
	assert.False(t, ok)

	s.Release(ids)

	_, free, ok := s.TryAcquire(1)
	assert.True(t, ok)
	assert.Equal(t, 0, free)
}

func TestFreeCountReflectsUsage(t *testing.T) {
	s := New(3)
	assert.Equal(t, 3, s.FreeCount())

	ids, _, _ := s.TryAcquire(2)
	assert.Equal(t, 1, s.FreeCount())

	s.Release(ids)
	assert.Equal(t, 3, s.FreeCount())
}
