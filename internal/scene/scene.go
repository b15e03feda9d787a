package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ivlev/scalegen/internal/config"
)

// Side identifies one pan of the scale.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// State is one weight configuration. Totals are never equal: Generate
// re-rolls until the heavier side is unambiguous. Immutable once returned.
type State struct {
	LeftWeights  []int
	RightWeights []int
	TotalLeft    int
	TotalRight   int
	HeavierSide  Side
}

// Generator draws random weight configurations. Not safe for concurrent
// use; give each worker its own instance.
type Generator struct {
	cfg *config.Config
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with seed, or with the current
// time when seed is zero.
func NewGenerator(cfg *config.Config, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// maxRerolls bounds the equal-totals retry loop. With any usable weight
// range the loop exits after a handful of iterations; the cap only trips
// on degenerate single-value ranges where equal totals are unavoidable.
const maxRerolls = 10000

func (g *Generator) Generate() (*State, error) {
	left := g.drawSide()
	right := g.drawSide()

	for i := 0; sum(left) == sum(right); i++ {
		if i >= maxRerolls {
			return nil, fmt.Errorf("totals still equal after %d re-rolls; weight range [%d, %d] with %d-%d objects per side cannot break the tie",
				maxRerolls, g.cfg.MinWeight, g.cfg.MaxWeight, g.cfg.MinObjects, g.cfg.MaxObjects)
		}
		if g.rng.Float64() < 0.5 {
			left[g.rng.Intn(len(left))] = g.drawWeight()
		} else {
			right[g.rng.Intn(len(right))] = g.drawWeight()
		}
	}

	st := &State{
		LeftWeights:  left,
		RightWeights: right,
		TotalLeft:    sum(left),
		TotalRight:   sum(right),
	}
	if st.TotalLeft > st.TotalRight {
		st.HeavierSide = Left
	} else {
		st.HeavierSide = Right
	}
	return st, nil
}

func (g *Generator) drawSide() []int {
	n := g.cfg.MinObjects + g.rng.Intn(g.cfg.MaxObjects-g.cfg.MinObjects+1)
	weights := make([]int, n)
	for i := range weights {
		weights[i] = g.drawWeight()
	}
	return weights
}

func (g *Generator) drawWeight() int {
	return g.cfg.MinWeight + g.rng.Intn(g.cfg.MaxWeight-g.cfg.MinWeight+1)
}

func sum(ws []int) int {
	total := 0
	for _, w := range ws {
		total += w
	}
	return total
}
