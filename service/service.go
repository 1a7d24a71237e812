package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/ethereum-optimism/infra/op-bench/metrics"
)

const readHeaderTimeout = 10 * time.Second

// Service exposes /healthz and /metrics while a benchmark run is in progress
type Service struct {
	log      log.Logger
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

func New(logger log.Logger) *Service {
	if logger == nil {
		logger = log.New()
	}
	return &Service{log: logger}
}

// Handler returns the routes served by the service
func (s *Service) Handler() http.Handler {
	hdlr := http.NewServeMux()
	hdlr.HandleFunc("/healthz", s.handleHealthz)
	hdlr.Handle("/metrics", promhttp.Handler())
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	return c.Handler(hdlr)
}

// Start listens on addr and serves in the background. Listen errors are
// returned directly.
func (s *Service) Start(addr string) error {
	s.log.Info("service starting", "addr", addr)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		metrics.RecordErrorDetails("service_listen", err)
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error serving", "err", err)
			metrics.RecordErrorDetails("service_serve", err)
		}
	}()

	s.log.Info("service started", "addr", s.Addr())
	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Service) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Service) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.log.Info("service shutting down")
	err := s.server.Shutdown(ctx)
	<-s.done
	s.log.Info("service stopped")
	return err
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.log.Debug("Received health check request", "path", r.URL.Path)
	w.Write([]byte("OK")) //nolint:errcheck
}
