package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLStoreExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewTTLStore[string]()
	s.now = func() time.Time { return now }

	s.Set("a", "alpha", time.Minute)
	s.Set("b", "beta", 0)

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)

	now = now.Add(2 * time.Minute)
	_, ok = s.Get("a")
	assert.False(t, ok)

	v, ok = s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "beta", v)
	assert.Equal(t, 1, s.Len())

	s.Set("c", "gamma", time.Minute)
	s.mu.RLock()
	_, stillThere := s.data["a"]
	s.mu.RUnlock()
	assert.False(t, stillThere)
}

func TestTTLStoreValuesInInsertionOrder(t *testing.T) {
	s := NewTTLStore[int]()
	s.Set("x", 1, time.Hour)
	s.Set("y", 2, time.Hour)
	s.Set("z", 3, time.Hour)
	s.Set("x", 4, time.Hour)

	assert.Equal(t, []int{2, 3, 4}, s.Values())
}
