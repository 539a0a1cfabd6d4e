package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, MakeChunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, MakeChunks([]int{1, 2, 3, 4, 5, 6}, 3))
	assert.Empty(t, MakeChunks([]int{}, 3))
	assert.Empty(t, MakeChunks([]int{1, 2}, 0))
}

func TestMakeChunks_DoesNotLeakCapacity(t *testing.T) {
	ts := []int{1, 2, 3, 4}
	chunks := MakeChunks(ts, 2)
	chunks[0] = append(chunks[0], 9)

	assert.Equal(t, []int{1, 2, 3, 4}, ts)
}
