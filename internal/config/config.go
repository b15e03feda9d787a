package config

import (
	"fmt"
	"image/color"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// RGB is an opaque color as it appears in config files: a [r, g, b] triple.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) MarshalYAML() (interface{}, error) {
	return []int{int(c.R), int(c.G), int(c.B)}, nil
}

func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var v []int
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("color must have exactly 3 components, got %d", len(v))
	}
	for _, comp := range v {
		if comp < 0 || comp > 255 {
			return fmt.Errorf("color component %d out of range [0, 255]", comp)
		}
	}
	c.R, c.G, c.B = uint8(v[0]), uint8(v[1]), uint8(v[2])
	return nil
}

// Config holds every knob of a generation run: batch parameters, scene
// geometry, palette and video settings. It is built once at startup and
// passed read-only into every component.
type Config struct {
	// Batch parameters
	Count     int    `yaml:"count"`
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
	Seed      int64  `yaml:"seed"`
	Domain    string `yaml:"domain"`
	ShowStats bool   `yaml:"show_stats"`
	QRStamp   bool   `yaml:"qr_stamp"`

	// Image dimensions
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Weight configuration ranges
	MinObjects int `yaml:"min_objects"`
	MaxObjects int `yaml:"max_objects"`
	MinWeight  int `yaml:"min_weight"`
	MaxWeight  int `yaml:"max_weight"`

	// Scale geometry
	BeamLength        int     `yaml:"beam_length"`
	BeamHeight        int     `yaml:"beam_height"`
	FulcrumHeight     int     `yaml:"fulcrum_height"`
	FulcrumWidth      int     `yaml:"fulcrum_width"`
	PanWidth          int     `yaml:"pan_width"`
	PanHeight         int     `yaml:"pan_height"`
	PanDrop           int     `yaml:"pan_drop"`
	BaseMargin        int     `yaml:"base_margin"`
	PlatformHalfWidth int     `yaml:"platform_half_width"`
	PlatformThickness int     `yaml:"platform_thickness"`
	WeightBoxBase     int     `yaml:"weight_box_base"`
	WeightBoxScale    int     `yaml:"weight_box_scale"`
	SinCeiling        float64 `yaml:"sin_ceiling"`

	// Animation and video
	GenerateVideos  bool `yaml:"generate_videos"`
	VideoFPS        int  `yaml:"video_fps"`
	HoldFrames      int  `yaml:"hold_frames"`
	AnimationFrames int  `yaml:"animation_frames"`
	Quality         int  `yaml:"quality"`

	// Palette
	Background      RGB `yaml:"bg_color"`
	BeamColor       RGB `yaml:"beam_color"`
	FulcrumColor    RGB `yaml:"fulcrum_color"`
	PanColor        RGB `yaml:"pan_color"`
	WeightColor     RGB `yaml:"weight_color"`
	HeavyColor      RGB `yaml:"heavy_side_color"`
	ChainColor      RGB `yaml:"chain_color"`
	StopLineColor   RGB `yaml:"stop_line_color"`
	LabelColor      RGB `yaml:"label_color"`
	SumColor        RGB `yaml:"sum_color"`
	OutlineColor    RGB `yaml:"outline_color"`
	WeightTextColor RGB `yaml:"weight_text_color"`
}

func Default() *Config {
	return &Config{
		Count:     10,
		OutputDir: "output",
		Workers:   runtime.NumCPU(),
		Domain:    "scale_balance",

		Width:  512,
		Height: 512,

		MinObjects: 1,
		MaxObjects: 4,
		MinWeight:  1,
		MaxWeight:  10,

		BeamLength:        300,
		BeamHeight:        8,
		FulcrumHeight:     100,
		FulcrumWidth:      60,
		PanWidth:          100,
		PanHeight:         10,
		PanDrop:           40,
		BaseMargin:        80,
		PlatformHalfWidth: 80,
		PlatformThickness: 10,
		WeightBoxBase:     25,
		WeightBoxScale:    2,
		SinCeiling:        0.9,

		GenerateVideos:  true,
		VideoFPS:        10,
		HoldFrames:      8,
		AnimationFrames: 25,

		Background:      RGB{255, 255, 255},
		BeamColor:       RGB{139, 90, 43},
		FulcrumColor:    RGB{100, 100, 100},
		PanColor:        RGB{180, 180, 180},
		WeightColor:     RGB{80, 80, 200},
		HeavyColor:      RGB{200, 50, 50},
		ChainColor:      RGB{100, 100, 100},
		StopLineColor:   RGB{255, 100, 100},
		LabelColor:      RGB{80, 80, 80},
		SumColor:        RGB{100, 100, 100},
		OutlineColor:    RGB{0, 0, 0},
		WeightTextColor: RGB{255, 255, 255},
	}
}

// LoadFile overlays the values found in a YAML file onto c. Keys absent
// from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Count < 1:
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	case c.MinObjects < 1 || c.MinObjects > c.MaxObjects:
		return fmt.Errorf("invalid object count range [%d, %d]", c.MinObjects, c.MaxObjects)
	case c.MinWeight < 1 || c.MinWeight > c.MaxWeight:
		return fmt.Errorf("invalid weight range [%d, %d]", c.MinWeight, c.MaxWeight)
	case c.BeamLength < 2:
		return fmt.Errorf("beam length too short: %d", c.BeamLength)
	case c.SinCeiling <= 0 || c.SinCeiling > 1:
		return fmt.Errorf("sin ceiling must be in (0, 1], got %f", c.SinCeiling)
	case c.VideoFPS < 1:
		return fmt.Errorf("video fps must be at least 1, got %d", c.VideoFPS)
	case c.HoldFrames < 1 || c.AnimationFrames < 2:
		return fmt.Errorf("invalid frame counts: hold=%d animation=%d", c.HoldFrames, c.AnimationFrames)
	}
	return nil
}
