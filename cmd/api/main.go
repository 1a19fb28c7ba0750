package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/config"
	"github.com/georgemunganga/jfsolar-inventory/internal/database"
	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/auth"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/category"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/dashboard"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/dataexchange"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/ledger"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/snapshot"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/staff"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

func main() {
	logger := config.GetLogger()
	cfg := config.Load()
	config.SetLogLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("could not connect to the database")
	}
	defer db.Close()

	// ── Snapshot persistence ────────────────────────────────
	var persister snapshot.Persister
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable, snapshot fallback disabled")
		} else {
			logger.WithField("addr", cfg.RedisAddr).Info("connected to redis")
			persister = snapshot.NewRedisPersister(rdb)
			defer rdb.Close()
		}
	}

	// ── Stores ──────────────────────────────────────────────
	itemRepo := inventory.NewPostgresRepository(db)
	txRepo := transaction.NewPostgresRepository(db)
	projectRepo := project.NewPostgresRepository(db)
	categoryRepo := category.NewPostgresRepository(db)
	staffRepo := staff.NewPostgresRepository(db)

	// ── Services ────────────────────────────────────────────
	recorder := transaction.NewRecorder(txRepo)
	inventoryService := inventory.NewService(itemRepo, cfg.DefaultThreshold)
	projectService := project.NewService(projectRepo, recorder)
	categoryService := category.NewService(categoryRepo)
	ledgerService := ledger.NewService(itemRepo, projectRepo, recorder)
	staffService := staff.NewService(staffRepo)
	authService := auth.NewService(staffRepo, cfg.JWTSecret)
	exchangeService := dataexchange.NewService(inventoryService, recorder, projectService, categoryService, persister)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seedAdmin(staffService, cfg.AdminEmail, cfg.AdminPassword)
	}

	cache := snapshot.NewCache(persister)
	view := snapshot.NewView(cache, snapshot.StoreSource{
		ItemRepo:     itemRepo,
		Recorder:     recorder,
		ProjectRepo:  projectRepo,
		CategoryRepo: categoryRepo,
	})
	if err := view.Refresh(context.Background()); err != nil {
		config.LogError(logger, "main", "main", "initial snapshot refresh", nil, err)
	}
	dashboardService := dashboard.NewService(view)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	router.Get("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	auth.NewHandler(authService).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authService))
		r.Use(snapshot.InvalidateOnWrite(cache))

		staff.NewHandler(staffService).RegisterRoutes(r)
		inventory.NewHandler(inventoryService).RegisterRoutes(r)
		ledger.NewHandler(ledgerService, view).RegisterRoutes(r)
		transaction.NewHandler(recorder).RegisterRoutes(r)
		project.NewHandler(projectService).RegisterRoutes(r)
		category.NewHandler(categoryService).RegisterRoutes(r)
		dataexchange.NewHandler(exchangeService, view).RegisterRoutes(r)
		dashboard.NewHandler(dashboardService).RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	logger.WithField("port", cfg.AppPort).Info("JF Solar inventory API starting")
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.Fatal(err)
	}
}

func seedAdmin(svc staff.Service, email, password string) {
	_, err := svc.Register(context.Background(), staff.RegisterRequest{Email: email, Password: password, Name: "Administrador"})
	switch {
	case err == nil:
		config.GetLogger().WithField("email", email).Info("admin staff account created")
	case errors.Is(err, apperr.ErrConflict):
	default:
		config.LogError(config.GetLogger(), "main", "seedAdmin", "creating admin staff account", email, err)
	}
}
