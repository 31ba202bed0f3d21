// Package ui holds the interactive client's session state and renders it.
package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/janisto/hello-world-api/internal/api"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
)

// Banner texts shown when a user-visible fetch fails.
const (
	ErrMsgHelloWorld = "Failed to fetch Hello World message"
	ErrMsgGreeting   = "Failed to fetch personalized greeting"
	ErrMsgEcho       = "Failed to send echo message"
)

// Alert prompts for empty form input.
const (
	AlertEmptyName    = "Please enter a name"
	AlertEmptyMessage = "Please enter a message to echo"
)

// ErrEmptyInput is returned when a submission was refused before any request.
var ErrEmptyInput = errors.New("empty input")

// API is the subset of the HTTP client the session needs.
type API interface {
	Root(ctx context.Context) (*api.RootResponse, error)
	Hello(ctx context.Context) (*api.HelloInfo, error)
	Greeting(ctx context.Context, name string) (*api.GreetingResponse, error)
	Echo(ctx context.Context, message string) (*api.EchoResponse, error)
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// Alerter shows a message and returns once the user has acknowledged it.
type Alerter interface {
	Alert(ctx context.Context, msg string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(ctx context.Context, msg string)

// Alert calls f.
func (f AlerterFunc) Alert(ctx context.Context, msg string) {
	f(ctx, msg)
}

// State is a copy of the session state.
type State struct {
	HelloMessage string
	APIInfo      *api.HelloInfo
	Name         string
	Greeting     string
	EchoMessage  string
	EchoResponse string
	HealthStatus string
	Loading      bool
	Error        string
}

// Session is the per-run UI state. Safe for concurrent use; responses are
// applied in completion order, so a slow reply can overwrite a newer one.
type Session struct {
	api   API
	alert Alerter

	mu    sync.Mutex
	state State
}

// NewSession starts with empty state.
func NewSession(client API, alerter Alerter) *Session {
	return &Session{api: client, alert: alerter}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.APIInfo != nil {
		info := *st.APIInfo
		st.APIInfo = &info
	}
	return st
}

func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

// Mount runs the three initial fetches concurrently. Every fetch runs to
// completion; the first failure is returned after all have finished.
func (s *Session) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.FetchHelloWorld(ctx) })
	g.Go(func() error { return s.FetchAPIInfo(ctx) })
	g.Go(func() error { return s.CheckHealth(ctx) })
	return g.Wait()
}

// FetchHelloWorld loads the root message. It is also the refresh action.
func (s *Session) FetchHelloWorld(ctx context.Context) error {
	s.update(func(st *State) { st.Loading = true })
	defer s.update(func(st *State) { st.Loading = false })

	resp, err := s.api.Root(ctx)
	if err != nil {
		applog.LogError(ctx, "hello world fetch failed", err)
		s.update(func(st *State) { st.Error = ErrMsgHelloWorld })
		return err
	}
	s.update(func(st *State) {
		st.HelloMessage = resp.Message
		st.Error = ""
	})
	return nil
}

// Refresh re-fetches the root message.
func (s *Session) Refresh(ctx context.Context) error {
	return s.FetchHelloWorld(ctx)
}

// FetchAPIInfo loads the static API metadata. Failures are only logged.
func (s *Session) FetchAPIInfo(ctx context.Context) error {
	info, err := s.api.Hello(ctx)
	if err != nil {
		applog.LogError(ctx, "api info fetch failed", err)
		return err
	}
	s.update(func(st *State) { st.APIInfo = info })
	return nil
}

// CheckHealth records the reported status, or "unavailable" on failure.
func (s *Session) CheckHealth(ctx context.Context) error {
	health, err := s.api.Health(ctx)
	if err != nil {
		applog.LogError(ctx, "health check failed", err)
		s.update(func(st *State) { st.HealthStatus = api.HealthStatusUnavailable })
		return err
	}
	s.update(func(st *State) { st.HealthStatus = health.Status })
	return nil
}

// SetName stores the greeting input as typed.
func (s *Session) SetName(name string) {
	s.update(func(st *State) { st.Name = name })
}

// SetEchoMessage stores the echo input as typed.
func (s *Session) SetEchoMessage(msg string) {
	s.update(func(st *State) { st.EchoMessage = msg })
}

// SubmitGreeting requests a greeting for the stored name. Blank input alerts
// and returns ErrEmptyInput without a request. The untrimmed name is sent.
func (s *Session) SubmitGreeting(ctx context.Context) error {
	name := s.Snapshot().Name
	if strings.TrimSpace(name) == "" {
		s.alert.Alert(ctx, AlertEmptyName)
		return ErrEmptyInput
	}

	s.update(func(st *State) { st.Loading = true })
	defer s.update(func(st *State) { st.Loading = false })

	resp, err := s.api.Greeting(ctx, name)
	if err != nil {
		applog.LogError(ctx, "greeting fetch failed", err)
		s.update(func(st *State) { st.Error = ErrMsgGreeting })
		return err
	}
	s.update(func(st *State) {
		st.Greeting = resp.Greeting
		st.Error = ""
	})
	return nil
}

// SubmitEcho posts the stored echo message, with the same blank-input guard
// as SubmitGreeting.
func (s *Session) SubmitEcho(ctx context.Context) error {
	msg := s.Snapshot().EchoMessage
	if strings.TrimSpace(msg) == "" {
		s.alert.Alert(ctx, AlertEmptyMessage)
		return ErrEmptyInput
	}

	s.update(func(st *State) { st.Loading = true })
	defer s.update(func(st *State) { st.Loading = false })

	resp, err := s.api.Echo(ctx, msg)
	if err != nil {
		applog.LogError(ctx, "echo failed", err)
		s.update(func(st *State) { st.Error = ErrMsgEcho })
		return err
	}
	s.update(func(st *State) {
		st.EchoResponse = resp.YourMessage
		st.Error = ""
	})
	return nil
}
