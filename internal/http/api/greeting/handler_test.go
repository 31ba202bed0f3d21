package greeting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/hello-world-api/internal/api"
	"github.com/janisto/hello-world-api/internal/platform/respond"
)

func newTestRouter() chi.Router {
	respond.Install()
	router := chi.NewRouter()
	cfg := huma.DefaultConfig("GreetingTest", "test")
	cfg.CreateHooks = nil
	Register(humachi.New(router, cfg))
	return router
}

func TestGreetingInterpolatesNameVerbatim(t *testing.T) {
	router := newTestRouter()

	names := []string{
		"Ada",
		"Ada Lovelace",
		"Zoë",
		"O'Brien",
		"<script>alert(1)</script>",
		"名前",
		"a+b=c",
		"!!!",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/greeting/"+url.PathEscape(name), nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
			}
			var got api.GreetingResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
				t.Fatalf("json unmarshal: %v", err)
			}
			if got.Message != "Hello "+name+"!" {
				t.Errorf("unexpected message %q", got.Message)
			}
			if got.Greeting != "Welcome to our Hello World application, "+name+"!" {
				t.Errorf("unexpected greeting %q", got.Greeting)
			}
			if got.Timestamp.IsZero() {
				t.Errorf("expected timestamp to be set")
			}
		})
	}
}

func TestGreetingBodyHasExactFields(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/greeting/Ada", nil))

	var raw map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("expected message, greeting and timestamp only, got %v", raw)
	}
	ts, _ := raw["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Fatalf("timestamp %q is not ISO 8601: %v", ts, err)
	}
}

func TestBuild(t *testing.T) {
	got := Build("")
	if got.Message != "Hello !" || got.Greeting != "Welcome to our Hello World application, !" {
		t.Fatalf("unexpected templates for empty name: %+v", got)
	}
}
