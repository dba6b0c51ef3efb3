package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorQueueIsFIFO(t *testing.T) {
	var q errorQueue
	assert.NoError(t, q.pop())

	first, second := errors.New("invalid operation"), errors.New("invalid value")
	q.push(first)
	q.push(second)
	require.ErrorIs(t, q.pop(), first)
	require.ErrorIs(t, q.pop(), second)
	assert.NoError(t, q.pop())
}

func TestLineWidthRange(t *testing.T) {
	assert.Equal(t, Range{Min: 1, Max: 10}, lineWidthRange([2]float32{1, 10}, false))
	assert.Equal(t, Range{Min: 1, Max: 1}, lineWidthRange([2]float32{1, 10}, true))
	assert.Equal(t, Range{Min: 0.5, Max: 1}, lineWidthRange([2]float32{0.5, 7.5}, true))
	assert.Equal(t, float32(1), lineWidthRange([2]float32{1, 10}, true).Clamp(4))
}
