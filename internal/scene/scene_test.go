package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scalegen/internal/config"
)

func TestGenerateNeverBalanced(t *testing.T) {
	gen := NewGenerator(config.Default(), 1)

	for i := 0; i < 200; i++ {
		st, err := gen.Generate()
		require.NoError(t, err)

		assert.NotEqual(t, st.TotalLeft, st.TotalRight)
		if st.TotalLeft > st.TotalRight {
			assert.Equal(t, Left, st.HeavierSide)
		} else {
			assert.Equal(t, Right, st.HeavierSide)
		}
	}
}

func TestGenerateRespectsRanges(t *testing.T) {
	cfg := config.Default()
	gen := NewGenerator(cfg, 7)

	for i := 0; i < 100; i++ {
		st, err := gen.Generate()
		require.NoError(t, err)

		for _, side := range [][]int{st.LeftWeights, st.RightWeights} {
			assert.GreaterOrEqual(t, len(side), cfg.MinObjects)
			assert.LessOrEqual(t, len(side), cfg.MaxObjects)
			for _, w := range side {
				assert.GreaterOrEqual(t, w, cfg.MinWeight)
				assert.LessOrEqual(t, w, cfg.MaxWeight)
			}
		}
		assert.Equal(t, sum(st.LeftWeights), st.TotalLeft)
		assert.Equal(t, sum(st.RightWeights), st.TotalRight)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg := config.Default()

	a, err := NewGenerator(cfg, 42).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(cfg, 42).Generate()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// A single-value weight range with one object per side makes equal
// totals unavoidable; the re-roll cap must turn that into an error
// instead of an infinite loop.
func TestGenerateDegenerateRangeErrors(t *testing.T) {
	cfg := config.Default()
	cfg.MinObjects, cfg.MaxObjects = 1, 1
	cfg.MinWeight, cfg.MaxWeight = 5, 5

	st, err := NewGenerator(cfg, 3).Generate()
	require.Error(t, err)
	assert.Nil(t, st)
	assert.Contains(t, err.Error(), "re-rolls")
}

func TestGenerateForcedRerollResolves(t *testing.T) {
	// One object per side with a two-value range: equal draws are
	// frequent, so the re-roll path fires and must still resolve.
	cfg := config.Default()
	cfg.MinObjects, cfg.MaxObjects = 1, 1
	cfg.MinWeight, cfg.MaxWeight = 5, 6

	gen := NewGenerator(cfg, 9)
	for i := 0; i < 100; i++ {
		st, err := gen.Generate()
		require.NoError(t, err)
		assert.NotEqual(t, st.TotalLeft, st.TotalRight)
	}
}
