package task

import (
	"context"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/scene"
	"github.com/ivlev/scalegen/internal/video"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func decodePNG(t *testing.T, path string) (width, height int) {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestBuildWritesImages(t *testing.T) {
	cfg := testConfig(t)
	asm := NewAssembler(cfg, video.NullEncoder{})

	ex, err := asm.Build(context.Background(), "scale_balance_0000", scene.NewGenerator(cfg, 11))
	require.NoError(t, err)

	assert.Equal(t, "scale_balance_0000", ex.TaskID)
	assert.Equal(t, "scale_balance", ex.Domain)
	assert.Contains(t, ex.Prompt, "Answer:")

	w, h := decodePNG(t, ex.InitialImage)
	assert.Equal(t, cfg.Width, w)
	assert.Equal(t, cfg.Height, h)
	w, h = decodePNG(t, ex.FinalImage)
	assert.Equal(t, cfg.Width, w)
	assert.Equal(t, cfg.Height, h)
}

func TestBuildVideoUnavailableIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.GenerateVideos = true
	asm := NewAssembler(cfg, video.NullEncoder{})

	ex, err := asm.Build(context.Background(), "t1", scene.NewGenerator(cfg, 12))
	require.NoError(t, err)
	assert.Empty(t, ex.VideoPath)
}

func TestBuildWithQRStamp(t *testing.T) {
	cfg := testConfig(t)
	cfg.QRStamp = true
	asm := NewAssembler(cfg, video.NullEncoder{})

	ex, err := asm.Build(context.Background(), "t2", scene.NewGenerator(cfg, 13))
	require.NoError(t, err)

	// Stamp must not change the image dimensions or break encoding.
	w, h := decodePNG(t, ex.InitialImage)
	assert.Equal(t, cfg.Width, w)
	assert.Equal(t, cfg.Height, h)
}

func TestBuildPromptMatchesScene(t *testing.T) {
	cfg := testConfig(t)
	asm := NewAssembler(cfg, video.NullEncoder{})

	// Same seed as the assembler's generator: reproduce the scene to
	// cross-check the prompt's answer line.
	st, err := scene.NewGenerator(cfg, 21).Generate()
	require.NoError(t, err)

	ex, err := asm.Build(context.Background(), "t3", scene.NewGenerator(cfg, 21))
	require.NoError(t, err)

	if st.HeavierSide == scene.Left {
		assert.Contains(t, ex.Prompt, "Answer: LEFT side tips down")
	} else {
		assert.Contains(t, ex.Prompt, "Answer: RIGHT side tips down")
	}
}

func TestBuildDegenerateConfigFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.MinObjects, cfg.MaxObjects = 1, 1
	cfg.MinWeight, cfg.MaxWeight = 5, 5
	asm := NewAssembler(cfg, video.NullEncoder{})

	_, err := asm.Build(context.Background(), "t4", scene.NewGenerator(cfg, 14))
	assert.Error(t, err)
}
