package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps coarse in-process request and job counters. Snapshot is
// served on /metricsz.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	jobRuns         uint64
	jobFailures     uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordJob(failed bool) {
	atomic.AddUint64(&c.jobRuns, 1)
	if failed {
		atomic.AddUint64(&c.jobFailures, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal": total,
		"errorsTotal":   errs,
		"jobRunsTotal":  atomic.LoadUint64(&c.jobRuns),
		"jobFailures":   atomic.LoadUint64(&c.jobFailures),
		"avgDurationMs": avg,
	}
}
