package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/janisto/hello-world-api/internal/api"
	"github.com/janisto/hello-world-api/internal/platform/metrics"
)

func newTestServer(t *testing.T, m *metrics.Metrics) http.Handler {
	t.Helper()
	return New(Options{Version: "test", StartedAt: time.Now().Add(-time.Second), Metrics: m})
}

func do(handler http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var got api.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal %q: %v", resp.Body.String(), err)
	}
	return got
}

func TestEndpoints(t *testing.T) {
	handler := newTestServer(t, nil)

	tests := []struct {
		method string
		target string
		body   string
		fields []string
	}{
		{http.MethodGet, "/", "", []string{"message", "timestamp", "status"}},
		{http.MethodGet, "/api/hello", "", []string{"message", "description", "version"}},
		{http.MethodGet, "/api/greeting/Ada", "", []string{"message", "greeting", "timestamp"}},
		{http.MethodPost, "/api/echo", `{"message":"hi"}`, []string{"message", "yourMessage", "timestamp"}},
		{http.MethodGet, "/health", "", []string{"status", "uptime", "timestamp"}},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp := do(handler, tt.method, tt.target, tt.body, nil)
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
			}
			var raw map[string]any
			if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
				t.Fatalf("json unmarshal: %v", err)
			}
			if len(raw) != len(tt.fields) {
				t.Fatalf("expected fields %v, got %v", tt.fields, raw)
			}
			for _, f := range tt.fields {
				if _, ok := raw[f]; !ok {
					t.Errorf("missing field %s in %v", f, raw)
				}
			}
		})
	}
}

func TestUnmatchedRoutesReturnNotFound(t *testing.T) {
	handler := newTestServer(t, nil)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/api"},
		{http.MethodGet, "/api/greeting"},
		{http.MethodGet, "/api/greeting/a/b"},
		{http.MethodPost, "/health"},
		{http.MethodGet, "/api/echo"},
		{http.MethodDelete, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp := do(handler, tt.method, tt.target, "", nil)
			if resp.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", resp.Code)
			}
			got := decodeError(t, resp)
			if got.Error != "Not Found" || got.Message != "The requested resource does not exist" {
				t.Fatalf("unexpected body: %+v", got)
			}
		})
	}
}

func TestRoutingIgnoresCaseAndTrailingSlash(t *testing.T) {
	handler := newTestServer(t, nil)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/hello/"},
		{http.MethodGet, "/API/HELLO"},
		{http.MethodGet, "/Health/"},
		{http.MethodGet, "/API/Greeting/Ada/"},
		{http.MethodPost, "/API/ECHO/"},
		{http.MethodHead, "/"},
		{http.MethodHead, "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp := do(handler, tt.method, tt.target, "", nil)
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestGreetingNameKeepsCaseUnderFolding(t *testing.T) {
	handler := newTestServer(t, nil)

	resp := do(handler, http.MethodGet, "/API/GREETING/McAda", "", nil)
	var got api.GreetingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if got.Message != "Hello McAda!" {
		t.Fatalf("expected name case preserved, got %q", got.Message)
	}
}

func TestHeadOnUnknownPathIsNotFound(t *testing.T) {
	handler := newTestServer(t, nil)

	if resp := do(handler, http.MethodHead, "/nope", "", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestEchoBodyParsing(t *testing.T) {
	handler := newTestServer(t, nil)

	tests := []struct {
		name        string
		body        string
		contentType string
		status      int
		want        string
	}{
		{"extra field", `{"message":"hi","extra":1}`, "application/json", http.StatusOK, "hi"},
		{"number", `{"message":5}`, "application/json", http.StatusOK, "5"},
		{"form", "message=hi", "application/x-www-form-urlencoded", http.StatusOK, "hi"},
		{"plain text", "hello", "text/plain", http.StatusOK, api.EchoPlaceholder},
		{"malformed json", "{bad", "application/json", http.StatusInternalServerError, ""},
		{"null", "null", "application/json", http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)

			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
			if tt.status != http.StatusOK {
				got := decodeError(t, resp)
				if got.Error != "Internal Server Error" || got.Message == "" {
					t.Fatalf("unexpected error body: %+v", got)
				}
				return
			}
			var got api.EchoResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
				t.Fatalf("json unmarshal: %v", err)
			}
			if got.YourMessage != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got.YourMessage)
			}
		})
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	handler := newTestServer(t, nil)

	resp := do(handler, http.MethodGet, "/api/hello", "", map[string]string{"Origin": "http://example.com"})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}

	preflight := do(handler, http.MethodOptions, "/api/echo", "", map[string]string{
		"Origin":                         "http://localhost:5173",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Content-Type",
	})
	if preflight.Code != http.StatusOK && preflight.Code != http.StatusNoContent {
		t.Fatalf("expected preflight success, got %d", preflight.Code)
	}
	if got := preflight.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin on preflight, got %q", got)
	}
}

func TestSecurityAndRequestIDHeaders(t *testing.T) {
	handler := newTestServer(t, nil)

	resp := do(handler, http.MethodGet, "/", "", nil)
	if resp.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("expected nosniff header")
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Errorf("expected generated request id")
	}

	resp = do(handler, http.MethodGet, "/", "", map[string]string{"X-Request-Id": "abc-123"})
	if got := resp.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("expected propagated request id, got %q", got)
	}
}

func TestCBORNegotiation(t *testing.T) {
	handler := newTestServer(t, nil)

	resp := do(handler, http.MethodGet, "/", "", map[string]string{"Accept": "application/cbor"})
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %s", ct)
	}
	var got struct {
		Message string `cbor:"message"`
		Status  string `cbor:"status"`
	}
	if err := cbor.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if got.Message != api.RootMessage || got.Status != api.RootStatus {
		t.Fatalf("unexpected body: %+v", got)
	}
	if !strings.Contains(resp.Header().Get("Vary"), "Accept") {
		t.Errorf("expected Vary: Accept, got %q", resp.Header().Get("Vary"))
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	handler := newTestServer(t, nil)

	body := `{"message":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	resp := do(handler, http.MethodPost, "/api/echo", body, nil)
	if resp.Code < http.StatusBadRequest {
		t.Fatalf("expected oversized body to be rejected, got %d", resp.Code)
	}
	got := decodeError(t, resp)
	if got.Error == "" || got.Message == "" {
		t.Fatalf("expected error envelope, got %+v", got)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	handler := newTestServer(t, nil)

	resp := do(handler, http.MethodGet, "/openapi.json", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if doc.Info.Title != Title {
		t.Errorf("expected title %q, got %q", Title, doc.Info.Title)
	}
	for _, p := range []string{"/", "/api/hello", "/api/greeting/{name}", "/api/echo", "/health"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}

	docs := do(handler, http.MethodGet, DocsPath, "", nil)
	if docs.Code != http.StatusOK {
		t.Fatalf("expected docs page, got %d", docs.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	handler := newTestServer(t, m)

	do(handler, http.MethodGet, "/api/greeting/Ada", "", nil)
	do(handler, http.MethodGet, "/api/greeting/Bob", "", nil)
	do(handler, http.MethodGet, "/missing", "", nil)

	resp := do(handler, http.MethodGet, MetricsPath, "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`hello_world_http_requests_total{method="GET",route="/api/greeting/{name}",status="200"} 2`,
		`hello_world_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in exposition", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	handler := newTestServer(t, nil)

	if resp := do(handler, http.MethodGet, MetricsPath, "", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics, got %d", resp.Code)
	}
}
