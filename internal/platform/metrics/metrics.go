package metrics

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime request counters for /metrics.
type Collector struct {
	totalRequests   atomic.Uint64
	serverErrors    atomic.Uint64
	clientErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64

	mu         sync.Mutex
	byResource map[string]uint64
}

func New() *Collector {
	return &Collector{byResource: map[string]uint64{}}
}

// Record counts one finished request. resource is the route's
// collection name, e.g. "rent"; empty values are not broken out.
func (c *Collector) Record(resource string, status int, duration time.Duration) {
	c.totalRequests.Add(1)
	switch {
	case status == http.StatusTooManyRequests:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))

	if resource == "" {
		return
	}
	c.mu.Lock()
	c.byResource[resource]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	perResource := make(map[string]uint64, len(c.byResource))
	for k, v := range c.byResource {
		perResource[k] = v
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"serverErrorsTotal": c.serverErrors.Load(),
		"clientErrorsTotal": c.clientErrors.Load(),
		"rateLimitedTotal":  c.rateLimited.Load(),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"requestsByResource": perResource,
	}
}

func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.Snapshot())
	}
}
