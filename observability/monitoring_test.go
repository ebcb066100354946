package observability

import (
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestRunMonitor_Stages(t *testing.T) {
	req := require.New(t)
	monitor := NewRunMonitor(logs.GetLoggerFromLevel(slog.LevelDebug))

	done := monitor.Stage("build")
	time.Sleep(2 * time.Millisecond)
	done()
	monitor.Stage("train")()

	stats := monitor.Stats()
	req.Len(stats.Stages, 2)
	req.Equal("build", stats.Stages[0].Name)
	req.GreaterOrEqual(stats.Stages[0].Duration, 2*time.Millisecond)
	req.Equal("train", stats.Stages[1].Name)
	req.GreaterOrEqual(stats.Total, stats.Stages[0].Duration)
	req.GreaterOrEqual(stats.PeakRSS, stats.Last.RSSBytes)

	monitor.LogSummary()
}

func TestRunMonitor_Sample(t *testing.T) {
	req := require.New(t)
	sample := NewRunMonitor(logs.GetLoggerFromLevel(slog.LevelDebug)).Sample()
	req.GreaterOrEqual(sample.CPUPercent, 0.0)
}
