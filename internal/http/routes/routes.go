package routes

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-world-api/internal/http/api/echo"
	"github.com/janisto/hello-world-api/internal/http/api/greeting"
	"github.com/janisto/hello-world-api/internal/http/api/hello"
	"github.com/janisto/hello-world-api/internal/http/health"
	"github.com/janisto/hello-world-api/internal/http/root"
)

// Register wires all JSON routes into the provided API.
func Register(humaAPI huma.API, startedAt time.Time) {
	root.Register(humaAPI)
	hello.Register(humaAPI)
	greeting.Register(humaAPI)
	echo.Register(humaAPI)
	health.Register(humaAPI, startedAt)
}
