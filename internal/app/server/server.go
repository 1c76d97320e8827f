package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"feedback360/internal/domain/auth"
	"feedback360/internal/domain/employee"
	"feedback360/internal/domain/evaluation"
	"feedback360/internal/domain/question"
	"feedback360/internal/domain/reports"
	"feedback360/internal/domain/response"
	"feedback360/internal/platform/config"
	"feedback360/internal/platform/db"
	"feedback360/internal/platform/email"
	authhandler "feedback360/internal/transport/http/handlers/auth"
	employeehandler "feedback360/internal/transport/http/handlers/employee"
	evaluationhandler "feedback360/internal/transport/http/handlers/evaluation"
	questionhandler "feedback360/internal/transport/http/handlers/question"
	reportshandler "feedback360/internal/transport/http/handlers/reports"
	responsehandler "feedback360/internal/transport/http/handlers/response"
	"feedback360/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// New connects, migrates, seeds and builds the full router. The caller
// owns the pool via Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	notifier, err := email.New(cfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("email: %w", err)
	}

	authStore := auth.NewStore(pool)
	authService := auth.NewService(authStore, cfg.JWTSecret)
	employeeStore := employee.NewStore(pool)
	questionStore := question.NewStore(pool)
	evaluationStore := evaluation.NewStore(pool)
	evaluationService := evaluation.NewService(evaluationStore, notifier)
	responseStore := response.NewStore(pool)
	responseService := response.NewService(responseStore)
	reportsStore := reports.NewStore(pool)
	reportsService := reports.NewService(reportsStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

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
		authhandler.NewHandler(authService).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret, authStore))

			employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
			questionhandler.NewHandler(questionStore).RegisterRoutes(r)
			evaluationhandler.NewHandler(evaluationService).RegisterRoutes(r)
			responsehandler.NewHandler(responseService).RegisterRoutes(r)
			reportshandler.NewHandler(reportsService).RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("server init failed: %v", err)
	}
	defer app.Close()

	log.Printf("feedback360 server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
