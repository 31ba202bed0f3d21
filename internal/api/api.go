// Package api holds the request and response shapes shared by the HTTP
// handlers and the client.
package api

import "github.com/janisto/hello-world-api/internal/platform/timeutil"

// Fixed strings returned by the service.
const (
	RootMessage         = "Hello World from Backend!"
	RootStatus          = "success"
	HelloMessage        = "Hello World API endpoint"
	HelloDescription    = "This is a simple Hello World API"
	HelloVersion        = "1.0.0"
	EchoLabel           = "Echo endpoint"
	EchoPlaceholder     = "No message provided"
	HealthStatusHealthy = "healthy"

	// HealthStatusUnavailable is never sent by the service; clients show it
	// when the health check itself fails.
	HealthStatusUnavailable = "unavailable"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	Message   string        `json:"message"   doc:"Fixed greeting"         example:"Hello World from Backend!"`
	Timestamp timeutil.Time `json:"timestamp" doc:"Server time (ISO 8601)" example:"2024-01-15T10:30:00.000Z"`
	Status    string        `json:"status"    doc:"Always success"         example:"success"`
}

// HelloInfo is the static API metadata returned by GET /api/hello.
type HelloInfo struct {
	Message     string `json:"message"     doc:"API name"        example:"Hello World API endpoint"`
	Description string `json:"description" doc:"API description" example:"This is a simple Hello World API"`
	Version     string `json:"version"     doc:"API version"     example:"1.0.0"`
}

// GreetingResponse is returned by GET /api/greeting/{name}.
type GreetingResponse struct {
	Message   string        `json:"message"   doc:"Short greeting"         example:"Hello Ada!"`
	Greeting  string        `json:"greeting"  doc:"Long greeting"          example:"Welcome to our Hello World application, Ada!"`
	Timestamp timeutil.Time `json:"timestamp" doc:"Server time (ISO 8601)" example:"2024-01-15T10:30:00.000Z"`
}

// EchoRequest is the optional body of POST /api/echo. Unknown fields are
// ignored; a non-string message is echoed as text.
type EchoRequest struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	Message string   `json:"message,omitempty" required:"false" doc:"Text to echo back" example:"hi"`
}

// EchoResponse is returned by POST /api/echo.
type EchoResponse struct {
	Message     string        `json:"message"     doc:"Fixed label"                     example:"Echo endpoint"`
	YourMessage string        `json:"yourMessage" doc:"Submitted text or a placeholder" example:"hi"`
	Timestamp   timeutil.Time `json:"timestamp"   doc:"Server time (ISO 8601)"          example:"2024-01-15T10:30:00.000Z"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status    string        `json:"status"    doc:"Liveness"                    example:"healthy" enum:"healthy"`
	Uptime    float64       `json:"uptime"    doc:"Seconds since process start" example:"12.345"  minimum:"0"`
	Timestamp timeutil.Time `json:"timestamp" doc:"Server time (ISO 8601)"      example:"2024-01-15T10:30:00.000Z"`
}

// ErrorResponse is the body of every 4xx and 5xx response.
type ErrorResponse struct {
	Error   string       `json:"error"             doc:"HTTP status text"     example:"Not Found"`
	Message string       `json:"message"           doc:"Human readable cause" example:"The requested resource does not exist"`
	Details []FieldIssue `json:"details,omitempty" doc:"Request validation issues"`
}

// FieldIssue describes one request validation problem.
type FieldIssue struct {
	Field string `json:"field,omitempty" example:"body.message"`
	Issue string `json:"issue"           example:"expected string"`
}

// Endpoint describes one public route.
type Endpoint struct {
	Method string
	Path   string
}

// Endpoints lists the public routes in registration order.
var Endpoints = []Endpoint{
	{"GET", "/"},
	{"GET", "/api/hello"},
	{"GET", "/api/greeting/:name"},
	{"POST", "/api/echo"},
	{"GET", "/health"},
}
