// Package server exposes the report tables and chart series as a JSON API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/ledger"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/risk"
	"github.com/labstack/echo/v4"
)

// Server serves dashboard data over HTTP. The record set is immutable for
// the server's lifetime; every response is recomputed from it on demand,
// except the payment ledger, which is built once and only re-filtered.
type Server struct {
	echo       *echo.Echo
	logger     *slog.Logger
	classifier *risk.Classifier
	records    []model.AccountRecord
	events     []model.PaymentEvent
	loadedAt   time.Time
}

// New creates a server over the loaded record set.
func New(records []model.AccountRecord, loadedAt time.Time, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		echo:       echo.New(),
		logger:     logger,
		classifier: risk.NewClassifier(),
		records:    records,
		events:     ledger.Build(records),
		loadedAt:   loadedAt,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(s.requestLogger)

	s.echo.GET("/api/kpis", s.handleKPIs)
	s.echo.GET("/api/summary/:group", s.handleSummary)
	s.echo.GET("/api/charts/:group", s.handleChart)
	s.echo.GET("/api/risk/summary", s.handleRiskSummary)
	s.echo.GET("/api/risk/critical", s.handleCritical)
	s.echo.GET("/api/ledger", s.handleLedger)
	s.echo.GET("/api/ledger/series", s.handleLedgerSeries)
	s.echo.GET("/api/export/critical", s.handleExportCritical)

	return s
}

// Start listens on addr until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	s.logger.Info("dashboard API listening", "addr", addr, "records", len(s.records))

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// Handler exposes the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Info("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start))
		return err
	}
}
