// Package video is the external encoding sink: it consumes an ordered
// frame sequence at a fixed rate and produces a file, or nothing when
// no encoder is available. Callers must treat it as optional.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/ivlev/scalegen/internal/system"
)

type Encoder interface {
	Available() bool
	Encode(ctx context.Context, frames []*image.RGBA, fps int, path string) error
}

// FFmpegEncoder streams raw RGBA frames to ffmpeg over stdin, avoiding
// any intermediate files on disk.
type FFmpegEncoder struct {
	Codec   string
	Quality int
}

// NewFFmpeg picks the best available H264 encoder and a matching
// default quality.
func NewFFmpeg(quality int) *FFmpegEncoder {
	codec := system.BestH264Encoder()
	if quality == 0 {
		switch codec {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23
		}
	}
	return &FFmpegEncoder{Codec: codec, Quality: quality}
}

func (e *FFmpegEncoder) Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func (e *FFmpegEncoder) buildArgs(width, height, fps int, path string) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", e.Codec,
	}

	switch e.Codec {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", e.Quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", e.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", e.Quality), "-preset", "medium")
	}

	return append(args, path)
}

func (e *FFmpegEncoder) Encode(ctx context.Context, frames []*image.RGBA, fps int, path string) error {
	if len(frames) == 0 {
		return fmt.Errorf("empty frame sequence")
	}
	bounds := frames[0].Bounds()

	cmd := exec.CommandContext(ctx, "ffmpeg", e.buildArgs(bounds.Dx(), bounds.Dy(), fps, path)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	for _, frame := range frames {
		if err := writeRawRGBA(stdin, frame); err != nil {
			stdin.Close()
			cmd.Wait()
			return fmt.Errorf("write frame: %w", err)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w, log: %s", err, out.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		tmp := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(tmp, tmp.Bounds(), img, bounds.Min, draw.Src)
		img = tmp
	}
	_, err := w.Write(img.Pix)
	return err
}

// NullEncoder reports itself unavailable; used when videos are disabled
// and in tests.
type NullEncoder struct{}

func (NullEncoder) Available() bool { return false }

func (NullEncoder) Encode(context.Context, []*image.RGBA, int, string) error {
	return fmt.Errorf("video encoding unavailable")
}
