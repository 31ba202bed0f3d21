// Package root serves the service landing endpoint.
package root

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-world-api/internal/api"
	"github.com/janisto/hello-world-api/internal/platform/timeutil"
)

// Output wraps the landing payload.
type Output struct {
	Body api.RootResponse
}

// Register wires GET / into the API.
func Register(humaAPI huma.API) {
	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Landing greeting",
		Tags:        []string{"Hello"},
	}, handler)
}

func handler(_ context.Context, _ *struct{}) (*Output, error) {
	return &Output{Body: api.RootResponse{
		Message:   api.RootMessage,
		Timestamp: timeutil.Now(),
		Status:    api.RootStatus,
	}}, nil
}
