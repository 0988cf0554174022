package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Load()
	assert.False(t, ok)

	s.Store("sk-123")
	key, ok := s.Load()
	assert.True(t, ok)
	assert.Equal(t, "sk-123", key)

	s.Clear()
	_, ok = s.Load()
	assert.False(t, ok)
}

func TestMemoryStoreSatisfiesInterface(t *testing.T) {
	var _ Store = NewMemoryStore()
}
