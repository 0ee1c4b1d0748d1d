package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/db"
	"paydesk/internal/domain/money"
	"paydesk/internal/domain/payroll"
	"paydesk/internal/domain/tax"
	"paydesk/internal/platform/config"
	"paydesk/internal/platform/metrics"
	authhandler "paydesk/internal/transport/http/handlers/auth"
	employeeshandler "paydesk/internal/transport/http/handlers/employees"
	payslipshandler "paydesk/internal/transport/http/handlers/payslips"
	"paydesk/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	rules, err := loadRules(cfg)
	if err != nil {
		log.Fatalf("pay rules invalid: %v", err)
	}

	store := payroll.NewStore(pool)
	service := payroll.NewService(store, rules)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

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

	if cfg.MetricsEnabled {
		router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
				log.Printf("metrics snapshot write failed: %v", err)
			}
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		loginHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
		r.Post("/auth/login", loginHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			employeesHandler := employeeshandler.NewHandler(service)
			employeesHandler.RegisterRoutes(r)

			payslipsHandler := payslipshandler.NewHandler(service, collector)
			payslipsHandler.RegisterRoutes(r)
		})
	})

	log.Printf("paydesk listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func loadRules(cfg config.Config) (payroll.Rules, error) {
	pfPercent, err := money.Parse(cfg.PFPercent)
	if err != nil {
		return payroll.Rules{}, err
	}
	standardDeduction, err := money.Parse(cfg.StandardDeduction)
	if err != nil {
		return payroll.Rules{}, err
	}
	return payroll.NewRules(pfPercent, standardDeduction, tax.DefaultSlabs())
}
