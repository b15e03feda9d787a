package task

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/scalegen/internal/anim"
	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/geometry"
	"github.com/ivlev/scalegen/internal/prompt"
	"github.com/ivlev/scalegen/internal/render"
	"github.com/ivlev/scalegen/internal/scene"
	"github.com/ivlev/scalegen/internal/video"
)

// Example is one finished dataset entry. VideoPath is empty when the
// encoder is unavailable or failed; that is not an error.
type Example struct {
	TaskID       string `yaml:"task_id"`
	Domain       string `yaml:"domain"`
	Prompt       string `yaml:"prompt"`
	InitialImage string `yaml:"initial_image"`
	FinalImage   string `yaml:"final_image"`
	VideoPath    string `yaml:"video,omitempty"`
}

// Assembler builds complete examples: scene, two stills, optional
// ground-truth video, prompt.
type Assembler struct {
	cfg      *config.Config
	geo      geometry.Scale
	renderer *render.Renderer
	seq      *anim.Sequencer
	encoder  video.Encoder
}

func NewAssembler(cfg *config.Config, enc video.Encoder) *Assembler {
	return &Assembler{
		cfg:      cfg,
		geo:      geometry.New(cfg),
		renderer: render.New(cfg),
		seq:      anim.NewSequencer(cfg),
		encoder:  enc,
	}
}

// Build produces one example. Rendering or file-write failures fail the
// task; a failed or unavailable video encoder only drops the video.
func (a *Assembler) Build(ctx context.Context, taskID string, gen *scene.Generator) (*Example, error) {
	st, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	initial := a.renderer.Render(st, render.Frame{})
	final := a.renderer.Render(st, render.Frame{
		TiltDeg:        a.geo.StopAngle(st.HeavierSide),
		ShowStopLine:   true,
		HighlightHeavy: true,
	})

	if a.cfg.QRStamp {
		stampQR(initial, taskID)
		stampQR(final, taskID)
	}

	initialPath := filepath.Join(a.cfg.OutputDir, taskID+"_first.png")
	finalPath := filepath.Join(a.cfg.OutputDir, taskID+"_final.png")
	if err := writePNG(initialPath, initial); err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}
	if err := writePNG(finalPath, final); err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	videoPath := ""
	if a.cfg.GenerateVideos && a.encoder.Available() {
		path := filepath.Join(a.cfg.OutputDir, taskID+"_ground_truth.mp4")
		if err := a.encodeVideo(ctx, st, path); err != nil {
			log.Printf("[!] Video for %s skipped: %v", taskID, err)
		} else {
			videoPath = path
		}
	}

	return &Example{
		TaskID:       taskID,
		Domain:       a.cfg.Domain,
		Prompt:       prompt.Describe(st),
		InitialImage: initialPath,
		FinalImage:   finalPath,
		VideoPath:    videoPath,
	}, nil
}

func (a *Assembler) encodeVideo(ctx context.Context, st *scene.State, path string) error {
	plan := a.seq.BuildPlan(st)
	frames := make([]*image.RGBA, 0, len(plan.Frames))
	for _, fr := range plan.Frames {
		frames = append(frames, a.renderer.Render(st, fr))
	}
	return a.encoder.Encode(ctx, frames, plan.FPS, path)
}

// stampQR draws a small provenance QR of the task id into the
// bottom-right corner. Encoding failure just skips the stamp.
func stampQR(img *image.RGBA, taskID string) {
	q, err := qrcode.New(taskID, qrcode.Low)
	if err != nil {
		return
	}
	const size, margin = 48, 8
	qi := q.Image(size)
	b := img.Bounds()
	target := image.Rect(b.Max.X-size-margin, b.Max.Y-size-margin, b.Max.X-margin, b.Max.Y-margin)
	draw.Draw(img, target, qi, qi.Bounds().Min, draw.Over)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
