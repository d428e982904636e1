package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthController reports whether the server and its database are usable.
type HealthController struct {
	db         Pinger
	version    string
	cpuPercent func() (float64, error)
	now        func() time.Time
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version, cpuPercent: sampleCPU, now: time.Now}
}

func sampleCPU() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return 0, err
	}
	return percents[0], nil
}

// Status handles GET /.
func (c *HealthController) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "FlowSync API is running",
		"version":   c.version,
		"timestamp": c.now().UTC().Format(time.RFC3339),
	})
}

// Health handles GET /api/health. A failed ping answers 503.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":    "ok",
		"database":  "ok",
		"version":   c.version,
		"timestamp": c.now().UTC().Format(time.RFC3339),
	}
	if usage, err := c.cpuPercent(); err == nil {
		body["cpu_percent"] = usage
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if c.db == nil {
		body["status"], body["database"] = "error", "not configured"
		respondJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	if err := c.db.PingContext(ctx); err != nil {
		body["status"], body["database"] = "error", err.Error()
		respondJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	respondJSON(w, http.StatusOK, body)
}
