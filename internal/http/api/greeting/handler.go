package greeting

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/api"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
	"github.com/janisto/hello-world-api/internal/platform/timeutil"
)

// Register wires GET /api/greeting/{name}.
func Register(humaAPI huma.API) {
	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/api/greeting/{name}",
		Summary:     "Personalized greeting",
		Tags:        []string{"Hello"},
	}, handler)
}

func handler(ctx context.Context, input *Input) (*Output, error) {
	applog.LogDebug(ctx, "greeting get", zap.Int("nameLength", len(input.Name)))
	return &Output{Body: Build(input.Name)}, nil
}

// Build interpolates name into both greeting templates without sanitizing it.
func Build(name string) api.GreetingResponse {
	return api.GreetingResponse{
		Message:   fmt.Sprintf("Hello %s!", name),
		Greeting:  fmt.Sprintf("Welcome to our Hello World application, %s!", name),
		Timestamp: timeutil.Now(),
	}
}
