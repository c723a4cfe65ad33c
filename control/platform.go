// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes: CPU count, scheduler parallelism and the CPU
// features relevant to lock-free counters.

package control

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/momentics/stresskit/api"
)

// RegisterPlatformProbes sets platform debug metrics.
func RegisterPlatformProbes(dp api.Debug) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOARCH
	})
	dp.RegisterProbe("platform.cpu_features", func() any {
		return cpuFeatures()
	})
}

func cpuFeatures() map[string]bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return map[string]bool{
			"sse2":  cpu.X86.HasSSE2,
			"sse42": cpu.X86.HasSSE42,
			"avx2":  cpu.X86.HasAVX2,
		}
	case "arm64":
		return map[string]bool{
			"atomics": cpu.ARM64.HasATOMICS,
			"asimd":   cpu.ARM64.HasASIMD,
		}
	default:
		return map[string]bool{}
	}
}
