package internal

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats reports memory, CPU and uptime of the running process for the
// inspect page header.
func ProcessStats(log *slog.Logger, extra map[string]any) (StatsProvider, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	started := time.Now()

	return func() map[string]any {
		stats := map[string]any{
			"Uptime": time.Since(started).Truncate(time.Second).String(),
		}
		for k, v := range extra {
			stats[k] = v
		}
		if memInfo, err := p.MemoryInfo(); err != nil {
			log.Warn("Failed to collect memory stats", "err", err)
		} else {
			stats["RSS"] = fmt.Sprintf("%.1f MB", float64(memInfo.RSS)/(1024*1024))
		}
		if cpu, err := p.CPUPercent(); err != nil {
			log.Warn("Failed to collect cpu stats", "err", err)
		} else {
			stats["CPU"] = fmt.Sprintf("%.1f%%", cpu)
		}
		return stats
	}, nil
}
