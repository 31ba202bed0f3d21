package ui

import (
	"fmt"
	"io"
	"text/template"

	"github.com/janisto/hello-world-api/internal/api"
)

// View is everything Render draws.
type View struct {
	State
	BaseURL   string
	Endpoints []api.Endpoint
}

// NewView combines a state snapshot with static page content.
func NewView(st State, baseURL string) View {
	return View{State: st, BaseURL: baseURL, Endpoints: api.Endpoints}
}

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"badge": func(status string) string {
		if status == api.HealthStatusHealthy {
			return "[+]"
		}
		return "[-]"
	},
}).Parse(`=== Hello World Application ===
Interactive terminal client connected to the Hello World API
{{badge .HealthStatus}} Backend Status: {{if .HealthStatus}}{{.HealthStatus}}{{else}}checking...{{end}}
{{- if .Error}}

!! {{.Error}}
{{- end}}

-- Message from Backend --
{{if .HelloMessage}}{{.HelloMessage}}{{else}}Loading...{{end}}
{{- with .APIInfo}}

-- API Information --
API: {{.Message}}
Version: {{.Version}}
Description: {{.Description}}
{{- end}}

-- Personalized Greeting --
{{if .Greeting}}{{.Greeting}}{{else}}(greet <name>){{end}}

-- Echo Message Tester --
{{if .EchoResponse}}Echo Response: {{.EchoResponse}}{{else}}(echo <message>){{end}}

-- Available API Endpoints --
{{range .Endpoints}}{{printf "%-4s" .Method}} {{.Path}}
{{end}}
Backend API: {{.BaseURL}}
`))

// Render writes the view as plain text.
func Render(w io.Writer, v View) error {
	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("render view: %w", err)
	}
	return nil
}
