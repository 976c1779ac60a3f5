package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/split-engine/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/split-engine/internal/core/services"
	"github.com/custodia-labs/split-engine/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  GET  /healthz           liveness probe
  POST /upload            multipart field "file"; returns the document id
  POST /split             {"file_id","mode","params"}; returns split-pack.zip
  GET  /documents/{id}    metadata of a registered document

The listen address, rate limit and shutdown timeout come from the
server.* configuration keys; --addr overrides server.addr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if ingestService == nil || splitService == nil || settingsService == nil {
		return errNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cfg := settings.Server
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server, err := httpapi.NewServer(
		&httpapi.Ports{Ingest: ingestService, Split: splitService},
		cfg,
		httpapi.WithMaxBody(services.MaxCap(services.DefaultCaps())+1<<20),
	)
	if err != nil {
		return err
	}
	if err := server.Listen(); err != nil {
		return err
	}

	logger.SetTimestamps(true)
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", server.Addr())

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return server.Run(ctx)
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
