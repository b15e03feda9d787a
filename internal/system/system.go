package system

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so parallel workers can
// hold their image and pipe handles without hitting EMFILE.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not raise file limit: %v", err)
	}
}

// BestH264Encoder probes ffmpeg for hardware H264 support.
// Priority: VideoToolbox (macOS), NVENC (NVIDIA), then software libx264.
func BestH264Encoder() string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// Snapshot captures host load at the moment of a report.
type Snapshot struct {
	NumCPU      int
	CPUPercent  float64
	MemUsedMB   float64
	MemUsedPerc float64
}

func TakeSnapshot() Snapshot {
	s := Snapshot{NumCPU: runtime.NumCPU()}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemUsedMB = float64(vm.Used) / 1024 / 1024
		s.MemUsedPerc = vm.UsedPercent
	}
	return s
}

func (s Snapshot) String() string {
	return fmt.Sprintf("CPU: %.1f%% of %d cores | Mem: %.0fMB (%.1f%%)",
		s.CPUPercent, s.NumCPU, s.MemUsedMB, s.MemUsedPerc)
}
