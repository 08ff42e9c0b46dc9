package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves GET /health. Returns 200 as long as the process is
// alive; it touches no dependencies.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// dependencyCheck pings one backing store and reports how long it took.
type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

type checkResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]checkResult `json:"checks"`
}

// ReadinessHandler serves GET /health/ready. The service is ready only when
// MongoDB and Redis both answer a ping within the probe timeout.
type ReadinessHandler struct {
	checks []dependencyCheck
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{
		checks: []dependencyCheck{
			{name: "mongodb", ping: func(ctx context.Context) error {
				return db.Client().Ping(ctx, nil)
			}},
			{name: "redis", ping: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}},
		},
	}
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Checks: make(map[string]checkResult, len(h.checks))}
	httpStatus := http.StatusOK

	for _, check := range h.checks {
		start := time.Now()
		err := check.ping(ctx)
		result := checkResult{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
		if err != nil {
			result.Status = "unhealthy"
			result.Error = err.Error()
			resp.Status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
		resp.Checks[check.name] = result
	}

	return c.JSON(httpStatus, resp)
}
