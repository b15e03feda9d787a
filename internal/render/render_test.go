package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/geometry"
	"github.com/ivlev/scalegen/internal/scene"
)

func testState() *scene.State {
	return &scene.State{
		LeftWeights:  []int{3, 5},
		RightWeights: []int{2},
		TotalLeft:    8,
		TotalRight:   2,
		HeavierSide:  scene.Left,
	}
}

func countColor(img *image.RGBA, c color.RGBA) (count int, sumX int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				count++
				sumX += x
			}
		}
	}
	return count, sumX
}

func TestRenderDimensions(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	st := testState()

	stopAngle := geometry.New(cfg).StopAngle(st.HeavierSide)
	initial := r.Render(st, Frame{})
	final := r.Render(st, Frame{TiltDeg: stopAngle, ShowStopLine: true, HighlightHeavy: true})

	assert.Equal(t, initial.Bounds(), final.Bounds())
	assert.Equal(t, cfg.Width, initial.Bounds().Dx())
	assert.Equal(t, cfg.Height, initial.Bounds().Dy())
}

func TestRenderDeterministic(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	st := testState()
	fr := Frame{TiltDeg: -12.5, ShowStopLine: true}

	a := r.Render(st, fr)
	b := r.Render(st, fr)

	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderHighlightOnlyInFinalFrame(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	st := testState()
	heavy := cfg.HeavyColor.RGBA()

	initial := r.Render(st, Frame{})
	count, _ := countColor(initial, heavy)
	assert.Zero(t, count, "balanced frame must not carry the highlight color")

	stopAngle := geometry.New(cfg).StopAngle(st.HeavierSide)
	final := r.Render(st, Frame{TiltDeg: stopAngle, ShowStopLine: true, HighlightHeavy: true})
	count, sumX := countColor(final, heavy)
	require.Positive(t, count)

	// Left side is heavier, so the highlighted pan sits left of center.
	assert.Less(t, sumX/count, cfg.Width/2)
}

func TestRenderStopLineToggle(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	st := testState()
	stop := cfg.StopLineColor.RGBA()

	off := r.Render(st, Frame{})
	count, _ := countColor(off, stop)
	assert.Zero(t, count)

	on := r.Render(st, Frame{ShowStopLine: true})
	count, _ = countColor(on, stop)
	assert.Positive(t, count)
}

func TestRenderNeutralPansWhenBalanced(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)

	img := r.Render(testState(), Frame{})
	count, _ := countColor(img, cfg.PanColor.RGBA())
	assert.Positive(t, count, "both pans should be drawn in the neutral color")
}
