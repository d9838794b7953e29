package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger) *Server {
	server := &Server{
		logger: logger.With("component", "http_server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", server.handlePing)

	server.srv = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return server
}

// Start - serves the health endpoint on addr until ctx is done.
func (that *Server) Start(ctx context.Context, addr string) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- that.srv.Serve(listener)
	}()

	log.Info("HTTP server started")

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	log.Info("HTTP server stopped")

	return nil
}
