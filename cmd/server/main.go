package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/api"
	"github.com/janisto/hello-world-api/internal/platform/config"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
	"github.com/janisto/hello-world-api/internal/platform/metrics"
	"github.com/janisto/hello-world-api/internal/server"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// startedAt is the process start time reported through /health uptime.
var startedAt = time.Now()

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()

	cfg, err := config.LoadServer(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applog.SetProjectID(cfg.ProjectID)
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		applog.LogFatal(context.Background(), "listen failed", err, zap.String("addr", cfg.Addr()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, ln, cfg); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

func newHandler(cfg *config.Server) http.Handler {
	opts := server.Options{
		Version:     Version,
		StartedAt:   startedAt,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.MetricsEnabled {
		opts.Metrics = metrics.New()
	}
	return server.New(opts)
}

// serve runs the HTTP server on ln until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func serve(ctx context.Context, ln net.Listener, cfg *config.Server) error {
	srv := &http.Server{
		Handler:           newHandler(cfg),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		logStartup(ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func logStartup(addr string) {
	endpoints := make([]string, 0, len(api.Endpoints))
	for _, ep := range api.Endpoints {
		endpoints = append(endpoints, ep.Method+" "+ep.Path)
	}
	applog.LogInfo(context.Background(), "server listening",
		zap.String("addr", addr),
		zap.String("version", Version),
		zap.Stringer("logLevel", applog.Level()),
		zap.String("endpoints", strings.Join(endpoints, ", ")),
	)
}
