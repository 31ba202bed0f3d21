package hello

import "github.com/janisto/hello-world-api/internal/api"

// Output wraps the static API metadata.
type Output struct {
	Body api.HelloInfo
}
