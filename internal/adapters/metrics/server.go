package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

const shutdownGrace = 5 * time.Second

// Server exposes the scrape endpoint. With an empty address the server
// is inert and Serve returns immediately.
type Server struct {
	addr     string
	registry *prom.Registry
	logger   ports.Logger
}

func NewServer(addr string, registry *prom.Registry, logger ports.Logger) *Server {
	return &Server{addr: addr, registry: registry, logger: logger}
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	if s.addr == "" || s.registry == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: s.addr, Handler: mux}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	s.logger.Info("metrics listening on " + s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, "metrics listener failed")
	}
}
