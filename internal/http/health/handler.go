// Package health reports liveness and process uptime.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-world-api/internal/api"
	"github.com/janisto/hello-world-api/internal/platform/timeutil"
)

// Output wraps the health payload.
type Output struct {
	Body api.HealthStatus
}

// Register wires GET /health. startedAt is captured once at process start and
// only read afterwards; time.Since uses its monotonic reading.
func Register(humaAPI huma.API, startedAt time.Time) {
	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness and uptime",
		Tags:        []string{"Health"},
	}, func(_ context.Context, _ *struct{}) (*Output, error) {
		return &Output{Body: api.HealthStatus{
			Status:    api.HealthStatusHealthy,
			Uptime:    uptimeSeconds(startedAt),
			Timestamp: timeutil.Now(),
		}}, nil
	})
}

func uptimeSeconds(startedAt time.Time) float64 {
	up := time.Since(startedAt).Seconds()
	if up < 0 {
		return 0
	}
	return up
}
