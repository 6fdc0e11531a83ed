package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-roaster/internal/extraction"
	"github.com/jonathan/resume-roaster/internal/llm"
	"github.com/jonathan/resume-roaster/internal/roasting"
	"github.com/jonathan/resume-roaster/internal/server"
	"github.com/jonathan/resume-roaster/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server that exposes POST /api/roast, PDF upload and the upload page.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT, default 8080)")
	rootCmd.AddCommand(serveCmd)
}

// newServer wires the configured model client into an HTTP server.
func newServer(ctx context.Context) (*server.Server, func(), error) {
	cfg := *appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := buildLLMClient(ctx, &cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close LLM client", slog.Any("error", err))
		}
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      ratelimit.LoadConfig(),
	}, roasting.NewRequester(client), extraction.NewPDFExtractor())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}

	slog.Info("server configured",
		slog.String("provider", string(client.Provider())),
		slog.String("model", client.GetModel(llm.TierStandard)),
		slog.Int("port", cfg.Port),
	)
	return srv, cleanup, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, cleanup, err := newServer(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Start()
}
