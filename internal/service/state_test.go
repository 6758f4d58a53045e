package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderState(t *testing.T) {
	s := NewOrderState()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "", s.Last())

	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 2, s.Next())
	s.Remember("sesame bun + beef + ketchup and mustard + cheddar cheese")

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "sesame bun + beef + ketchup and mustard + cheddar cheese", s.Last())

	s.Reset()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "", s.Last())
}
