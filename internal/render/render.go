package render

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/geometry"
	"github.com/ivlev/scalegen/internal/scene"
)

// Frame fully determines one rendered image of a given scene: the tilt
// angle plus the two visual cues that appear near the end of the motion.
type Frame struct {
	TiltDeg        float64
	ShowStopLine   bool
	HighlightHeavy bool
}

// Renderer draws static frames of the scale. Rendering is a pure
// function of (state, frame); the renderer itself only caches config,
// derived geometry and font faces.
type Renderer struct {
	cfg        *config.Config
	geo        geometry.Scale
	labelFace  font.Face
	weightFace font.Face
}

func New(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg:        cfg,
		geo:        geometry.New(cfg),
		labelFace:  loadFace(goregular.TTF, 12),
		weightFace: loadFace(gobold.TTF, 14),
	}
}

// Render draws one frame back to front: base, stop line, beam, chains,
// pans, weights, labels. Returns a fresh image every call.
func (r *Renderer) Render(st *scene.State, fr Frame) *image.RGBA {
	cfg := r.cfg
	g := r.geo
	c := newCanvas(cfg.Width, cfg.Height, cfg.Background.RGBA())

	cx := int(g.CenterX)
	baseY := int(g.BaseBottomY)
	pivotY := int(g.PivotY)

	// Fulcrum triangle and base platform
	fw := float64(cfg.FulcrumWidth)
	c.fillPolygon([]geometry.Point{
		{X: g.CenterX, Y: g.PivotY},
		{X: g.CenterX - fw/2, Y: g.BaseBottomY},
		{X: g.CenterX + fw/2, Y: g.BaseBottomY},
	}, cfg.FulcrumColor.RGBA())
	c.fillRect(cx-cfg.PlatformHalfWidth, baseY, cx+cfg.PlatformHalfWidth, baseY+cfg.PlatformThickness,
		cfg.FulcrumColor.RGBA())

	// Dashed stop line at base height
	if fr.ShowStopLine {
		for i := 0; i < 240; i += 20 {
			c.line(float64(cx-120+i), g.BaseBottomY, float64(cx-110+i), g.BaseBottomY, 3,
				cfg.StopLineColor.RGBA())
		}
	}

	// Beam: a rectangle rotated about the pivot
	rad := fr.TiltDeg * math.Pi / 180
	bh := float64(cfg.BeamHeight)
	corners := []geometry.Point{
		{X: g.CenterX - g.HalfBeam, Y: g.PivotY - bh/2},
		{X: g.CenterX + g.HalfBeam, Y: g.PivotY - bh/2},
		{X: g.CenterX + g.HalfBeam, Y: g.PivotY + bh/2},
		{X: g.CenterX - g.HalfBeam, Y: g.PivotY + bh/2},
	}
	beam := make([]geometry.Point, len(corners))
	for i, p := range corners {
		x, y := geometry.RotatePoint(p.X, p.Y, g.CenterX, g.PivotY, rad)
		beam[i] = geometry.Point{X: x, Y: y}
	}
	c.fillPolygon(beam, cfg.BeamColor.RGBA())

	leftEnd, rightEnd := g.BeamEnds(fr.TiltDeg)
	pw := cfg.PanWidth
	ph := cfg.PanHeight
	leftPanX, leftPanY := int(leftEnd.X), int(leftEnd.Y)+cfg.PanDrop
	rightPanX, rightPanY := int(rightEnd.X), int(rightEnd.Y)+cfg.PanDrop

	// Chains: two segments from each pan's corners to its beam end
	chains := []struct {
		px, py int
		bx, by float64
	}{
		{leftPanX, leftPanY, leftEnd.X, leftEnd.Y},
		{rightPanX, rightPanY, rightEnd.X, rightEnd.Y},
	}
	for _, ch := range chains {
		c.line(float64(ch.px-pw/3), float64(ch.py), ch.bx, ch.by, 2, cfg.ChainColor.RGBA())
		c.line(float64(ch.px+pw/3), float64(ch.py), ch.bx, ch.by, 2, cfg.ChainColor.RGBA())
	}

	// Pans, highlighted on the heavier side once the cue is active
	leftCol := cfg.PanColor
	rightCol := cfg.PanColor
	if fr.HighlightHeavy {
		if st.HeavierSide == scene.Left {
			leftCol = cfg.HeavyColor
		} else {
			rightCol = cfg.HeavyColor
		}
	}
	c.fillRect(leftPanX-pw/2, leftPanY, leftPanX+pw/2, leftPanY+ph, leftCol.RGBA())
	c.strokeRect(leftPanX-pw/2, leftPanY, leftPanX+pw/2, leftPanY+ph, 2, cfg.OutlineColor.RGBA())
	c.fillRect(rightPanX-pw/2, rightPanY, rightPanX+pw/2, rightPanY+ph, rightCol.RGBA())
	c.strokeRect(rightPanX-pw/2, rightPanY, rightPanX+pw/2, rightPanY+ph, 2, cfg.OutlineColor.RGBA())

	// Weight boxes, evenly spaced across each pan
	sides := []struct {
		weights    []int
		panX, panY int
	}{
		{st.LeftWeights, leftPanX, leftPanY},
		{st.RightWeights, rightPanX, rightPanY},
	}
	for _, s := range sides {
		if len(s.weights) == 0 {
			continue
		}
		spacing := pw / (len(s.weights) + 1)
		for i, w := range s.weights {
			wx := s.panX - pw/2 + spacing*(i+1)
			r.drawWeightBox(c, wx, s.panY, w)
		}
	}

	// Side labels track the pans horizontally; sum labels follow the
	// pans' rotated positions so totals move with the tilt.
	c.text(leftPanX-20, pivotY-50, "LEFT", r.labelFace, cfg.LabelColor.RGBA())
	c.text(rightPanX-25, pivotY-50, "RIGHT", r.labelFace, cfg.LabelColor.RGBA())
	c.text(leftPanX-25, leftPanY+ph+15, fmt.Sprintf("Sum: %d", st.TotalLeft),
		r.labelFace, cfg.SumColor.RGBA())
	c.text(rightPanX-25, rightPanY+ph+15, fmt.Sprintf("Sum: %d", st.TotalRight),
		r.labelFace, cfg.SumColor.RGBA())

	return c.img
}

// drawWeightBox draws one weight sitting on a pan: a box whose size
// scales with the weight, with the numeric value centered inside.
func (r *Renderer) drawWeightBox(c *canvas, x, y, weight int) {
	size := r.geo.WeightBoxSize(weight)
	c.fillRect(x-size/2, y-size, x+size/2, y, r.cfg.WeightColor.RGBA())
	c.strokeRect(x-size/2, y-size, x+size/2, y, 2, r.cfg.OutlineColor.RGBA())

	label := fmt.Sprintf("%d", weight)
	tw := textWidth(r.weightFace, label)
	th := textHeight(r.weightFace)
	c.text(x-tw/2, y-size/2-th/2, label, r.weightFace, r.cfg.WeightTextColor.RGBA())
}
