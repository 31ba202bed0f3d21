package echo

import "github.com/janisto/hello-world-api/internal/api"

// Output wraps the echo payload.
type Output struct {
	Body api.EchoResponse
}
