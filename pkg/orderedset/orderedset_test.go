package orderedset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_KeepsFirstSeenOrder(t *testing.T) {
	s := New[string]()
	assert.True(t, s.Add("c"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("c"))
	assert.True(t, s.Add("b"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"c", "a", "b"}, s.Values())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))
}

func TestSet_ValuesIsACopy(t *testing.T) {
	s := New[int]()
	s.Add(1)
	vals := s.Values()
	vals[0] = 42
	assert.Equal(t, []int{1}, s.Values())
}

func TestSet_Empty(t *testing.T) {
	s := New[int]()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Values())
}
