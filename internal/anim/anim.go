// Package anim turns a single target angle into a temporally coherent
// frame sequence: hold the balanced state, tilt with ease-out settling,
// hold the terminal state.
package anim

import (
	"github.com/tanema/gween/ease"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/geometry"
	"github.com/ivlev/scalegen/internal/render"
	"github.com/ivlev/scalegen/internal/scene"
)

// Plan is an ordered frame sequence plus the rate it should be encoded
// at. Built once per task, consumed once.
type Plan struct {
	Frames []render.Frame
	FPS    int
}

type Sequencer struct {
	cfg *config.Config
	geo geometry.Scale
}

func NewSequencer(cfg *config.Config) *Sequencer {
	return &Sequencer{cfg: cfg, geo: geometry.New(cfg)}
}

// Thresholds of eased progress at which the visual cues switch on, so
// the stop line and highlight appear only in the final third of the
// motion.
const (
	stopLineThreshold  = 0.7
	highlightThreshold = 0.8
)

// BuildPlan produces hold + eased tilt + hold. The ease-out cubic curve
// slows angular velocity near the stop, mimicking settling rather than
// an abrupt halt.
func (s *Sequencer) BuildPlan(st *scene.State) Plan {
	finalAngle := s.geo.StopAngle(st.HeavierSide)
	hold := s.cfg.HoldFrames
	steps := s.cfg.AnimationFrames

	frames := make([]render.Frame, 0, hold*3+steps)

	for i := 0; i < hold; i++ {
		frames = append(frames, render.Frame{})
	}

	for i := 0; i < steps; i++ {
		p := float64(ease.OutCubic(float32(i), 0, 1, float32(steps-1)))
		frames = append(frames, render.Frame{
			TiltDeg:        finalAngle * p,
			ShowStopLine:   p > stopLineThreshold,
			HighlightHeavy: p > highlightThreshold,
		})
	}

	final := render.Frame{TiltDeg: finalAngle, ShowStopLine: true, HighlightHeavy: true}
	for i := 0; i < hold*2; i++ {
		frames = append(frames, final)
	}

	return Plan{Frames: frames, FPS: s.cfg.VideoFPS}
}
