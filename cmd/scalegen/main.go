package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/engine"
	"github.com/ivlev/scalegen/internal/system"
	"github.com/ivlev/scalegen/internal/video"
)

func main() {
	system.InitResourceLimits()

	countPtr := flag.Int("n", 10, "Number of examples to generate")
	outPtr := flag.String("out", "output", "Output directory for images, videos and manifest")
	widthPtr := flag.Int("width", 512, "Image width")
	heightPtr := flag.Int("height", 512, "Image height")
	seedPtr := flag.Int64("seed", 0, "Base RNG seed (0 = non-deterministic)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Parallel workers")
	fpsPtr := flag.Int("fps", 10, "Video frame rate")
	videoPtr := flag.Bool("video", true, "Generate ground-truth videos (requires ffmpeg)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto per encoder)")
	configPtr := flag.String("config", "", "Optional YAML config overlay")
	qrPtr := flag.Bool("qr", false, "Stamp a task-id QR code into each image")
	statsPtr := flag.Bool("stats", false, "Print a performance report after the run")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		if err := cfg.LoadFile(*configPtr); err != nil {
			log.Fatalf("[-] Config error: %v", err)
		}
		fmt.Printf("[*] Config overlay: %s\n", *configPtr)
	}

	// Explicitly set flags win over both defaults and the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Count = *countPtr
		case "out":
			cfg.OutputDir = *outPtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "seed":
			cfg.Seed = *seedPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "fps":
			cfg.VideoFPS = *fpsPtr
		case "video":
			cfg.GenerateVideos = *videoPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "qr":
			cfg.QRStamp = *qrPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid configuration: %v", err)
	}

	var enc video.Encoder = video.NullEncoder{}
	if cfg.GenerateVideos {
		fe := video.NewFFmpeg(cfg.Quality)
		if fe.Available() {
			enc = fe
			fmt.Printf("[*] Video encoder: %s\n", fe.Codec)
		} else {
			fmt.Println("[!] ffmpeg not found, videos disabled")
		}
	}

	fmt.Printf("[*] Generating %d examples (%dx%d) into %s with %d workers\n",
		cfg.Count, cfg.Width, cfg.Height, cfg.OutputDir, cfg.Workers)

	batch := engine.NewBatch(cfg, enc)
	if err := batch.Run(context.Background()); err != nil {
		log.Fatalf("[-] Generation failed: %v", err)
	}

	fmt.Printf("[+++] Done! %d examples in %s\n", cfg.Count, cfg.OutputDir)
}
