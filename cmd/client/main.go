// Command client is an interactive terminal front end for the Hello World API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/janisto/hello-world-api/internal/client"
	"github.com/janisto/hello-world-api/internal/platform/config"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
	"github.com/janisto/hello-world-api/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "client",
		Short:         "Interactive client for the Hello World API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadClient(cmd.Flags(), ".env")
			if err != nil {
				return err
			}
			// Keep stdout for the page.
			applog.SetOutputPaths("stderr")
			if err := applog.SetLevel(cfg.LogLevel); err != nil {
				return err
			}
			defer func() { _ = applog.Sync() }()
			ctx := applog.WithLogger(cmd.Context(), applog.Logger().With(
				zap.String("component", "client"),
				zap.String("apiBaseUrl", cfg.APIBaseURL),
			))

			console := ui.NewConsole(in, out, cfg.APIBaseURL)
			session := ui.NewSession(client.NewClient(nil, client.WithBaseURL(cfg.APIBaseURL)), console)
			if err := console.Run(ctx, session); err != nil {
				return fmt.Errorf("client: %w", err)
			}
			return nil
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.Flags().String("api", client.DefaultBaseURL, "base URL of the Hello World API (env API_BASE_URL)")
	return cmd
}
