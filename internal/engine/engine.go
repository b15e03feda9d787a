// Package engine drives a full generation run: N independent tasks
// across a bounded worker group, a manifest of what was produced, and
// an optional performance report.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/scalegen/internal/config"
	"github.com/ivlev/scalegen/internal/scene"
	"github.com/ivlev/scalegen/internal/system"
	"github.com/ivlev/scalegen/internal/task"
	"github.com/ivlev/scalegen/internal/video"
)

type Batch struct {
	cfg *config.Config
	asm *task.Assembler
}

func NewBatch(cfg *config.Config, enc video.Encoder) *Batch {
	return &Batch{cfg: cfg, asm: task.NewAssembler(cfg, enc)}
}

// Manifest is the run-level record written next to the artifacts.
type Manifest struct {
	Domain   string          `yaml:"domain"`
	Count    int             `yaml:"count"`
	Examples []*task.Example `yaml:"examples"`
}

// Run generates cfg.Count examples. Tasks are independent and pure with
// respect to shared memory, so they run freely in parallel; any single
// task failure aborts the run.
func (b *Batch) Run(ctx context.Context) error {
	start := time.Now()

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return err
	}

	examples := make([]*task.Example, b.cfg.Count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i := 0; i < b.cfg.Count; i++ {
		i := i
		g.Go(func() error {
			id := fmt.Sprintf("%s_%04d", b.cfg.Domain, i)
			gen := scene.NewGenerator(b.cfg, taskSeed(b.cfg.Seed, i))
			ex, err := b.asm.Build(ctx, id, gen)
			if err != nil {
				return err
			}
			examples[i] = ex
			fmt.Printf("[>] Ready: %d/%d (%s)\n", i+1, b.cfg.Count, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := b.writeManifest(examples); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	if b.cfg.ShowStats {
		b.report(time.Since(start))
	}
	return nil
}

// taskSeed derives a per-task seed so runs are reproducible from a
// single base seed while workers keep independent RNGs. A zero base
// seed means non-deterministic runs.
func taskSeed(base int64, index int) int64 {
	if base == 0 {
		return 0
	}
	return base + int64(index)
}

func (b *Batch) writeManifest(examples []*task.Example) error {
	m := Manifest{
		Domain:   b.cfg.Domain,
		Count:    len(examples),
		Examples: examples,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.cfg.OutputDir, "manifest.yaml"), data, 0644)
}

func (b *Batch) report(elapsed time.Duration) {
	snap := system.TakeSnapshot()
	rate := float64(b.cfg.Count) / elapsed.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Examples: %d\n"+
			"Total Time: %.2fs\n"+
			"Rate: %.2f tasks/s\n"+
			"%s\n"+
			"----------------------------\n",
		b.cfg.Count, elapsed.Seconds(), rate, snap,
	)

	logEntry := fmt.Sprintf("[%s] Domain: %s | Examples: %d | Workers: %d | Total: %.2fs | Rate: %.2f/s | %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		b.cfg.Domain, b.cfg.Count, b.cfg.Workers, elapsed.Seconds(), rate, snap)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
