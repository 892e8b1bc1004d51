package health

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// MemoryReport is the memory section of a health report, in whole megabytes.
type MemoryReport struct {
	RSS       string `json:"rss"`
	HeapTotal string `json:"heapTotal"`
	HeapUsed  string `json:"heapUsed"`
	External  string `json:"external"`
}

// MemoryReader produces a MemoryReport.
type MemoryReader interface {
	ReadMemory() MemoryReport
}

// ProcessMemory reads the resident set size of the current process through
// gopsutil and heap figures from the Go runtime.
type ProcessMemory struct {
	proc *process.Process
}

// NewProcessMemory returns a reader for the current process.
// If the process handle cannot be opened, RSS is reported as "unknown".
func NewProcessMemory() *ProcessMemory {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &ProcessMemory{proc: proc}
}

// ReadMemory implements MemoryReader.
func (m *ProcessMemory) ReadMemory() MemoryReport {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	report := MemoryReport{
		RSS:       "unknown",
		HeapTotal: megabytes(ms.HeapSys),
		HeapUsed:  megabytes(ms.HeapAlloc),
		// Everything the runtime obtained from the OS outside the heap:
		// stacks, GC metadata, mspans, buffers.
		External: megabytes(ms.Sys - ms.HeapSys),
	}

	if m.proc != nil {
		if info, err := m.proc.MemoryInfo(); err == nil {
			report.RSS = megabytes(info.RSS)
		}
	}

	return report
}

func megabytes(b uint64) string {
	return fmt.Sprintf("%dMB", (b+(1<<19))>>20)
}
