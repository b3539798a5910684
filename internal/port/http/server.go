package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/guitarshop/cart-service/internal/app/config"
	"github.com/guitarshop/cart-service/internal/platform/logger"
)

type Server struct {
	srv *http.Server
	log logger.Logger
}

func NewServer(cfg config.HTTPServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Attempting to gracefully stop HTTP server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
