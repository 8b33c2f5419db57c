package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdullah/dombili/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		idleTimeout time.Duration
		maxBody     int64
		jsonLog     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document inspection server",
		Long: `Run the HTTP and WebSocket server that exposes query and mutation
endpoints over the dombili façade.

Endpoints:
  POST /v1/query    run a selector against a posted document
  POST /v1/mutate   apply mutation ops to a posted document
  GET  /v1/session  stateful WebSocket document session
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, idleTimeout, maxBody, jsonLog)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default :8561)")
	cmd.Flags().DurationVar(&idleTimeout, "session-idle", 0, "WebSocket session idle timeout")
	cmd.Flags().Int64Var(&maxBody, "max-body", 0, "Request body size cap in bytes")
	cmd.Flags().BoolVar(&jsonLog, "json-log", false, "Log in JSON instead of text")

	return cmd
}

func runServe(addr string, idleTimeout time.Duration, maxBody int64, jsonLog bool) error {
	if jsonLog {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	srv, err := server.New(&server.Config{
		Addr:               addr,
		SessionIdleTimeout: idleTimeout,
		MaxBodyBytes:       maxBody,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
