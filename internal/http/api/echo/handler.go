package echo

import (
	"context"
	"net/http"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/api"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
	"github.com/janisto/hello-world-api/internal/platform/respond"
	"github.com/janisto/hello-world-api/internal/platform/timeutil"
)

// Register wires POST /api/echo.
func Register(humaAPI huma.API) {
	schema := humaAPI.OpenAPI().Components.Schemas.Schema(reflect.TypeOf(api.EchoRequest{}), true, "EchoRequest")
	huma.Register(humaAPI, huma.Operation{
		OperationID:   "create-echo",
		Method:        http.MethodPost,
		Path:          "/api/echo",
		Summary:       "Echo the submitted message",
		Tags:          []string{"Echo"},
		DefaultStatus: http.StatusOK,
		RequestBody: &huma.RequestBody{
			Description: "Optional. JSON, CBOR and urlencoded form bodies are read; other content types are ignored.",
			Content: map[string]*huma.MediaType{
				"application/json":                  {Schema: schema},
				"application/x-www-form-urlencoded": {Schema: schema},
			},
		},
	}, handler)
}

func handler(ctx context.Context, input *Input) (*Output, error) {
	msg, err := messageFrom(input.ContentType, input.RawBody)
	if err != nil {
		return nil, respond.Error(ctx, http.StatusInternalServerError, err.Error())
	}
	applog.LogDebug(ctx, "echo post", zap.Bool("provided", msg != ""))
	return &Output{Body: Reply(msg)}, nil
}

// Reply builds the echo payload; an empty message falls back to the placeholder.
func Reply(msg string) api.EchoResponse {
	if msg == "" {
		msg = api.EchoPlaceholder
	}
	return api.EchoResponse{
		Message:     api.EchoLabel,
		YourMessage: msg,
		Timestamp:   timeutil.Now(),
	}
}
