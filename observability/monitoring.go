package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// StageTiming is the wall time spent in one named pipeline stage.
type StageTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// ResourceSample is a point-in-time view of the current process.
type ResourceSample struct {
	RSSBytes   uint64  `json:"rss_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
}

// RunStats aggregates what a RunMonitor saw during one run.
type RunStats struct {
	Stages  []StageTiming  `json:"stages"`
	Total   time.Duration  `json:"total"`
	PeakRSS uint64         `json:"peak_rss"`
	Last    ResourceSample `json:"last"`
}

// RunMonitor times the stages of a training run and samples the process after each one.
// It is safe for concurrent use.
type RunMonitor struct {
	log     *slog.Logger
	mu      sync.Mutex
	started time.Time
	proc    *process.Process
	stats   RunStats
}

func NewRunMonitor(log *slog.Logger) *RunMonitor {
	m := &RunMonitor{log: log, started: time.Now()}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debug("Process sampling disabled", "error", err)
	} else {
		m.proc = p
	}
	return m
}

// Stage starts timing name; call the returned func when the stage ends.
func (m *RunMonitor) Stage(name string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		sample := m.Sample()
		m.mu.Lock()
		m.stats.Stages = append(m.stats.Stages, StageTiming{Name: name, Duration: elapsed})
		m.stats.Last = sample
		m.stats.PeakRSS = max(m.stats.PeakRSS, sample.RSSBytes)
		m.mu.Unlock()
		m.log.Debug("Stage finished",
			"stage", name,
			"duration_ms", elapsed.Milliseconds(),
			"rss_bytes", sample.RSSBytes,
			"cpu_percent", sample.CPUPercent)
	}
}

// Sample reads RSS and CPU through gopsutil, Go heap figures always come from the runtime.
func (m *RunMonitor) Sample() ResourceSample {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	sample := ResourceSample{AllocMemMb: mem.Alloc / 1024 / 1024, NumGC: mem.NumGC}
	if m.proc == nil {
		return sample
	}
	if info, err := m.proc.MemoryInfo(); err == nil {
		sample.RSSBytes = info.RSS
	}
	if cpu, err := m.proc.CPUPercent(); err == nil {
		sample.CPUPercent = cpu
	}
	return sample
}

func (m *RunMonitor) Stats() RunStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.stats
	stats.Stages = append([]StageTiming(nil), m.stats.Stages...)
	stats.Total = time.Since(m.started)
	return stats
}

// LogSummary writes one line per stage followed by the run totals.
func (m *RunMonitor) LogSummary() {
	stats := m.Stats()
	for _, s := range stats.Stages {
		m.log.Info("Stage timing", "stage", s.Name, "duration_ms", s.Duration.Milliseconds())
	}
	m.log.Info("Run finished",
		"total_ms", stats.Total.Milliseconds(),
		"peak_rss_bytes", stats.PeakRSS,
		"alloc_mem_mb", stats.Last.AllocMemMb)
}
