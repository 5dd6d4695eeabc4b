package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrops/internal/domain/audit"
	"hrops/internal/domain/auth"
	"hrops/internal/domain/cycle"
	"hrops/internal/domain/directory"
	"hrops/internal/domain/feedback"
	"hrops/internal/domain/goal"
	"hrops/internal/domain/notifications"
	"hrops/internal/domain/pip"
	"hrops/internal/domain/reports"
	"hrops/internal/domain/review"
	"hrops/internal/platform/config"
	"hrops/internal/platform/db"
	"hrops/internal/platform/metrics"
	"hrops/internal/transport/http/api"
	audithandler "hrops/internal/transport/http/handlers/audit"
	authhandler "hrops/internal/transport/http/handlers/auth"
	cyclehandler "hrops/internal/transport/http/handlers/cycles"
	directoryhandler "hrops/internal/transport/http/handlers/directory"
	feedbackhandler "hrops/internal/transport/http/handlers/feedback"
	goalhandler "hrops/internal/transport/http/handlers/goals"
	notificationshandler "hrops/internal/transport/http/handlers/notifications"
	piphandler "hrops/internal/transport/http/handlers/pips"
	reportshandler "hrops/internal/transport/http/handlers/reports"
	reviewhandler "hrops/internal/transport/http/handlers/reviews"
	"hrops/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New wires the full application: pool, domain services, router. Migrations
// and seed run here when enabled so journey tests get a ready database from
// a single constructor.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, Pool: pool, Metrics: metrics.New()}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config
	pool := a.Pool

	authStore := auth.NewStore(pool)
	auditSvc := audit.New(pool)
	notifSvc := notifications.New(pool)
	directorySvc := directory.NewService(directory.NewStore(pool))
	cycleSvc := cycle.NewService(cycle.NewStore(pool))
	reviewSvc := review.NewService(review.NewStore(pool))
	goalSvc := goal.NewService(goal.NewStore(pool))
	feedbackSvc := feedback.NewService(feedback.NewStore(pool))
	pipSvc := pip.NewService(pip.NewStore(pool))
	reportsSvc := reports.NewService(pool, cfg.ReportsDir)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, directorySvc, cfg.JWTSecret).RegisterRoutes(r)
		directoryhandler.NewHandler(directorySvc, authStore, auditSvc).RegisterRoutes(r)
		cyclehandler.NewHandler(cycleSvc, directorySvc, notifSvc, authStore, auditSvc).RegisterRoutes(r)
		reviewhandler.NewHandler(reviewSvc, authStore, auditSvc).RegisterRoutes(r)
		goalhandler.NewHandler(goalSvc, authStore, auditSvc).RegisterRoutes(r)
		feedbackhandler.NewHandler(feedbackSvc, directorySvc, notifSvc, authStore, auditSvc).RegisterRoutes(r)
		piphandler.NewHandler(pipSvc, directorySvc, notifSvc, authStore, auditSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, authStore).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.RequirePermission(auth.PermAuditRead, authStore)).Get("/admin/metrics", func(w http.ResponseWriter, req *http.Request) {
				api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(req.Context()))
			})
		}
	})

	return router
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	slog.Info("server listening", "addr", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}
