// Package dashboard serves the club's Interclubs results and the current rankings over HTTP.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/pkg/core/model"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/metrics"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// RankingsLoader reads the last saved ranking of a gender
type RankingsLoader interface {
	LoadRankings(genre string) ([]model.RankedPlayer, error)
}

// Server holds the dependencies of the dashboard handlers
type Server struct {
	results  db.ResultStore
	rankings RankingsLoader
	metrics  *metrics.Manager
	logger   *zap.Logger
	clubName string
}

// NewServer creates a dashboard server. rankings may be nil, in which case
// the rankings endpoint answers 404.
func NewServer(results db.ResultStore, rankings RankingsLoader, m *metrics.Manager, logger *zap.Logger, clubName string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewManager()
	}
	return &Server{
		results:  results,
		rankings: rankings,
		metrics:  m,
		logger:   logger,
		clubName: clubName,
	}
}

// Router builds the chi router with its middleware stack
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/results", s.handleResults)
		r.Get("/results/{competition}", s.handleCompetitionResults)
		r.Get("/rankings/{genre}", s.handleRankings)
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// ListenAndServe serves the dashboard on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dashboard: %w", err)
		}
		return nil
	}
}

// requestLogger logs each request once completed and records it in the metrics
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			latency := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("latency", latency),
				zap.Int("bytes", ww.BytesWritten()),
			}
			switch {
			case status >= http.StatusInternalServerError:
				s.logger.Error("Request completed", fields...)
			case status >= http.StatusBadRequest:
				s.logger.Warn("Request completed", fields...)
			default:
				s.logger.Debug("Request completed", fields...)
			}

			s.metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), latency.Seconds())
		}()

		next.ServeHTTP(ww, r)
	})
}
