// Package server assembles the HTTP surface: Connect services, health and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1/ledgerv1connect"
)

const shutdownTimeout = 15 * time.Second

// Deps are the long-lived resources the handlers share.
type Deps struct {
	Store     storage.Store
	JWT       *auth.JWTManager
	Metrics   *metrics.Metrics
	Publisher events.Publisher
	Logger    *slog.Logger
}

// NewRouter wires every route. ctx bounds background work such as the
// rate limiter's sweeper.
func NewRouter(ctx context.Context, cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
			"X-Request-Id",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", deps.Metrics.Handler())

	// Outermost first. Logging runs inside auth so it sees the caller.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(deps.Metrics),
		middleware.RequireAuth(deps.JWT, ledgerv1connect.PublicProcedures...),
		middleware.LoggingInterceptor(),
		middleware.TimeoutInterceptor(cfg.RequestTimeout),
	)

	authenticator := auth.NewPasswordAuthenticator(deps.Store)
	ledgerSvc := service.NewLedgerService(deps.Store, deps.Metrics, ledger.WithPublisher(deps.Publisher))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}))
		mount(r, ledgerv1connect.NewAuthServiceHandler(
			service.NewAuthService(authenticator, deps.JWT, deps.Store, deps.Logger), interceptors))
		mount(r, ledgerv1connect.NewGroupServiceHandler(service.NewGroupService(deps.Store), interceptors))
		mount(r, ledgerv1connect.NewLedgerServiceHandler(ledgerSvc, interceptors))
	})

	return r
}

// mount routes everything under a Connect service path to its handler.
func mount(r chi.Router, path string, h http.Handler) {
	r.Handle(path+"*", h)
}

// New returns an HTTP server speaking HTTP/1.1 and cleartext HTTP/2.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
