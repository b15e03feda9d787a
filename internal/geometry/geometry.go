// Package geometry maps abstract scale state (tilt angle, config) to
// pixel coordinates. All functions are pure.
//
// Sign convention, used everywhere and derived nowhere else:
//
//	angle < 0  counter-clockwise on screen  left pan descends
//	angle > 0  clockwise on screen          right pan descends
//
// Image y grows downward, so a positive rotation moves the right beam
// end down and the left end up.
package geometry

import (
	"math"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/scene"
)

type Point struct {
	X, Y float64
}

// Scale carries the fixed pixel geometry derived from a Config: pivot
// position, beam half-length and the base line the descending pan stops
// at.
type Scale struct {
	CenterX     float64
	PivotY      float64
	BaseBottomY float64
	HalfBeam    float64
	PanDrop     float64
	SinCeiling  float64

	boxBase  int
	boxScale int
}

func New(cfg *config.Config) Scale {
	baseBottomY := float64(cfg.Height - cfg.BaseMargin)
	return Scale{
		CenterX:     float64(cfg.Width) / 2,
		PivotY:      baseBottomY - float64(cfg.FulcrumHeight),
		BaseBottomY: baseBottomY,
		HalfBeam:    float64(cfg.BeamLength) / 2,
		PanDrop:     float64(cfg.PanDrop),
		SinCeiling:  cfg.SinCeiling,
		boxBase:     cfg.WeightBoxBase,
		boxScale:    cfg.WeightBoxScale,
	}
}

// RotatePoint rotates (x, y) about (cx, cy) by rad radians. Positive
// angles rotate clockwise as rendered.
func RotatePoint(x, y, cx, cy, rad float64) (float64, float64) {
	cos, sin := math.Cos(rad), math.Sin(rad)
	return cos*(x-cx) - sin*(y-cy) + cx,
		sin*(x-cx) + cos*(y-cy) + cy
}

// BeamEnds returns the rotated beam endpoints for a tilt in degrees.
func (s Scale) BeamEnds(tiltDeg float64) (left, right Point) {
	rad := tiltDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	left = Point{X: s.CenterX - s.HalfBeam*cos, Y: s.PivotY - s.HalfBeam*sin}
	right = Point{X: s.CenterX + s.HalfBeam*cos, Y: s.PivotY + s.HalfBeam*sin}
	return left, right
}

// PanAnchors returns the hanging points the pans attach to: the beam
// ends offset straight down by the pan drop.
func (s Scale) PanAnchors(tiltDeg float64) (left, right Point) {
	left, right = s.BeamEnds(tiltDeg)
	left.Y += s.PanDrop
	right.Y += s.PanDrop
	return left, right
}

// StopAngle solves for the tilt at which the heavier side's pan anchor
// reaches the base line. The sine argument is clamped to the configured
// ceiling, so a beam too short for the required travel yields a steep
// but valid angle instead of an asin domain error. The result is always
// finite.
func (s Scale) StopAngle(heavier scene.Side) float64 {
	verticalReach := s.BaseBottomY - s.PivotY - s.PanDrop
	sin := verticalReach / s.HalfBeam
	if sin > s.SinCeiling {
		sin = s.SinCeiling
	}
	if sin < -s.SinCeiling {
		sin = -s.SinCeiling
	}
	deg := math.Asin(sin) * 180 / math.Pi
	if heavier == scene.Left {
		return -deg
	}
	return deg
}

// WeightBoxSize returns the rendered box edge for a weight. Size grows
// linearly with the weight, a visual proxy for magnitude independent of
// the numeric label.
func (s Scale) WeightBoxSize(weight int) int {
	return s.boxBase + weight*s.boxScale
}
