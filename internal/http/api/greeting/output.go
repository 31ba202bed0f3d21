package greeting

import "github.com/janisto/hello-world-api/internal/api"

// Output wraps the greeting payload.
type Output struct {
	Body api.GreetingResponse
}
