package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"idms/internal/domain/asset"
	"idms/internal/domain/attendance"
	"idms/internal/domain/auth"
	"idms/internal/domain/document"
	"idms/internal/domain/finance"
	"idms/internal/domain/leave"
	"idms/internal/domain/memo"
	"idms/internal/domain/performance"
	"idms/internal/platform/config"
	"idms/internal/platform/db"
	"idms/internal/platform/metrics"
	assethandler "idms/internal/transport/http/handlers/asset"
	attendancehandler "idms/internal/transport/http/handlers/attendance"
	authhandler "idms/internal/transport/http/handlers/auth"
	documenthandler "idms/internal/transport/http/handlers/document"
	financehandler "idms/internal/transport/http/handlers/finance"
	leavehandler "idms/internal/transport/http/handlers/leave"
	memohandler "idms/internal/transport/http/handlers/memo"
	performancehandler "idms/internal/transport/http/handlers/performance"
	"idms/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

type stores struct {
	finance     finance.StoreAPI
	leave       leave.StoreAPI
	attendance  attendance.StoreAPI
	memo        memo.StoreAPI
	asset       asset.StoreAPI
	performance performance.StoreAPI
	documents   document.StoreAPI
	users       auth.StoreAPI
}

func memoryStores() stores {
	return stores{
		finance:     finance.NewMemoryStore(),
		leave:       leave.NewMemoryStore(),
		attendance:  attendance.NewMemoryStore(),
		memo:        memo.NewMemoryStore(),
		asset:       asset.NewMemoryStore(),
		performance: performance.NewMemoryStore(),
		documents:   document.NewMemoryStore(),
		users:       auth.NewMemoryStore(),
	}
}

func postgresStores(q db.Querier) stores {
	return stores{
		finance:     finance.NewStore(q),
		leave:       leave.NewStore(q),
		attendance:  attendance.NewStore(q),
		memo:        memo.NewStore(q),
		asset:       asset.NewStore(q),
		performance: performance.NewStore(q),
		documents:   document.NewStore(q),
		users:       auth.NewStore(q),
	}
}

// New builds the application: storage, migrations, seed data and router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{Config: cfg, Metrics: metrics.New()}
	var st stores
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		st = memoryStores()
	default:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.Pool = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		st = postgresStores(pool)
	}

	authService := auth.NewService(st.users, cfg.JWTSecret, cfg.TokenTTL)
	switch {
	case cfg.RunSeed && cfg.SeedAdminPassword == "":
		slog.Warn("RUN_SEED is set without SEED_ADMIN_PASSWORD; skipping admin seed")
	case cfg.RunSeed:
		if err := db.Seed(ctx, authService, cfg); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	policy, err := auth.NewPolicy(auth.DefaultPolicies())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load policy: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(app.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	router.Get("/metrics", app.Metrics.Handler())

	authHandler := authhandler.NewHandler(authService)
	loginLimit := middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)

	router.Route("/api", func(r chi.Router) {
		r.With(loginLimit).Post("/auth/login", authHandler.HandleLogin)
		r.With(loginLimit).Post("/employees/login", authHandler.HandleEmployeeLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
			r.Use(middleware.Authorize(policy))

			r.Post("/auth/register", authHandler.HandleRegister)
			financehandler.NewHandler(finance.NewService(st.finance, cfg.ReportCurrency)).RegisterRoutes(r)
			leavehandler.NewHandler(leave.NewService(st.leave)).RegisterRoutes(r)
			attendancehandler.NewHandler(attendance.NewService(st.attendance)).RegisterRoutes(r)
			memohandler.NewHandler(memo.NewService(st.memo)).RegisterRoutes(r)
			assethandler.NewHandler(asset.NewService(st.asset)).RegisterRoutes(r)
			performancehandler.NewHandler(performance.NewService(st.performance)).RegisterRoutes(r)
			documenthandler.NewHandler(document.NewService(st.documents)).RegisterRoutes(r)
		})
	})

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.Pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// Run loads configuration from the environment and serves until SIGINT or
// SIGTERM.
func Run() error {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("IDMS server listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
