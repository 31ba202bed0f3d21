package hello

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/api"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
)

// Register wires GET /api/hello.
func Register(humaAPI huma.API) {
	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        "/api/hello",
		Summary:     "Static API metadata",
		Tags:        []string{"Hello"},
	}, getHandler)
}

var info = api.HelloInfo{
	Message:     api.HelloMessage,
	Description: api.HelloDescription,
	Version:     api.HelloVersion,
}

func getHandler(ctx context.Context, _ *struct{}) (*Output, error) {
	applog.LogDebug(ctx, "hello get", zap.String("version", info.Version))
	return &Output{Body: info}, nil
}
