package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/scalegen/internal/scene"
)

func TestDescribeLeftHeavy(t *testing.T) {
	st := &scene.State{
		LeftWeights:  []int{3, 5},
		RightWeights: []int{2},
		TotalLeft:    8,
		TotalRight:   2,
		HeavierSide:  scene.Left,
	}

	text := Describe(st)

	assert.Contains(t, text, "- LEFT: 3 + 5 = 8")
	assert.Contains(t, text, "- RIGHT: 2 = 2")
	assert.Contains(t, text, "Answer: LEFT side tips down (8 > 2).")
	assert.Contains(t, text, "red dashed line")
}

func TestDescribeRightHeavy(t *testing.T) {
	st := &scene.State{
		LeftWeights:  []int{1},
		RightWeights: []int{4, 4, 2},
		TotalLeft:    1,
		TotalRight:   10,
		HeavierSide:  scene.Right,
	}

	text := Describe(st)

	assert.Contains(t, text, "- LEFT: 1 = 1")
	assert.Contains(t, text, "- RIGHT: 4 + 4 + 2 = 10")
	assert.Contains(t, text, "Answer: RIGHT side tips down (10 > 1).")
}
