package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShallowCopy(t *testing.T) {
	ts := []string{"Hips", "Spine"}
	tsCopy := ShallowCopy(ts)
	tsCopy[0] = "Chest"

	assert.Equal(t, []string{"Hips", "Spine"}, ts)
	assert.Equal(t, []string{"Chest", "Spine"}, tsCopy)
}
