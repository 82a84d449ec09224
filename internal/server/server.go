// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// DashboardService is the read surface the HTTP API serves
type DashboardService interface {
	SourceName() string
	Symbol() string
	Interval() domain.Interval
	Latest() (domain.Snapshot, bool)
	HistorySince(ctx context.Context, since time.Time) ([]domain.Snapshot, error)
	CombinedView(ctx context.Context, interval domain.Interval, limit int) (domain.Snapshot, error)
}

// SentimentFeed relays sentiment cards from an external index
type SentimentFeed interface {
	FetchLatest(ctx context.Context, limit int) ([]domain.SentimentCard, error)
}

// Server wires the gin engine around the dashboard service
type Server struct {
	router    *gin.Engine
	service   DashboardService
	sentiment SentimentFeed
	logger    *zap.Logger
}

// New creates a Server around the given service.
// The sentiment feed is optional; without it /api/sentiment returns 503.
func New(service DashboardService, sentiment SentimentFeed, logger *zap.Logger) (*Server, error) {
	if service == nil {
		return nil, errors.New("dashboard service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// the dashboard UI is served from a different origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	router.Use(cors.New(corsConfig))

	s := &Server{
		router:    router,
		service:   service,
		sentiment: sentiment,
		logger:    logger,
	}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.getHealth)
		api.GET("/combined", s.getCombined)
		api.GET("/rsi", s.getRSI)
		api.GET("/sentiment", s.getSentiment)
		api.GET("/snapshots", s.getSnapshots)
	}
}

// Router exposes the gin engine, mostly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves the API until the context is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("HTTP API listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
