package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSetNoDuplicates(t *testing.T) {
	s := NewOrderedSet()

	if !s.Add("abc") {
		t.Error("first Add should return true")
	}
	if s.Add("abc") {
		t.Error("second Add of same key should return false")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestOrderedSetPreservesFirstSeenOrder(t *testing.T) {
	s := NewOrderedSet()
	for _, k := range []string{"c", "a", "c", "b", "a"} {
		s.Add(k)
	}

	assert.Equal(t, []string{"c", "a", "b"}, s.Keys())
	assert.Equal(t, 3, s.Size())
}
