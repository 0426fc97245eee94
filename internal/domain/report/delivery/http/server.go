package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/config"
)

// NewRouter builds the gin engine with all API routes registered
func NewRouter(handlers *Handlers, authToken string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api", BearerAuth(authToken))
	{
		api.GET("/reports", handlers.ListReports)
		api.GET("/reports/:id", handlers.GetReport)
		api.PATCH("/reports/:id/status", handlers.UpdateStatus)
		api.GET("/subscribers", handlers.ListSubscribers)
	}

	return r
}

// Server wraps the admin API http server
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates the admin API server
func NewServer(cfg *config.HTTPConfig, handlers *Handlers, logger zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(handlers, cfg.AuthToken),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving in the background
func (s *Server) Start() {
	s.logger.Info().Str("addr", s.srv.Addr).Msg("Starting admin API server")
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Admin API server failed")
		}
	}()
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping admin API server...")
	return s.srv.Shutdown(ctx)
}
