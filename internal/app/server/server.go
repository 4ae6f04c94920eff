package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"crewhub/internal/domain/compensation"
	"crewhub/internal/domain/employee"
	"crewhub/internal/domain/points"
	"crewhub/internal/domain/projectcost"
	"crewhub/internal/domain/reports"
	"crewhub/internal/platform/config"
	"crewhub/internal/platform/db"
	"crewhub/internal/platform/jira"
	"crewhub/internal/platform/jobs"
	"crewhub/internal/platform/metrics"
	"crewhub/internal/transport/http/api"
	authhandler "crewhub/internal/transport/http/handlers/auth"
	employeeshandler "crewhub/internal/transport/http/handlers/employees"
	jirahandler "crewhub/internal/transport/http/handlers/jira"
	pointshandler "crewhub/internal/transport/http/handlers/points"
	projectcosthandler "crewhub/internal/transport/http/handlers/projectcost"
	reportshandler "crewhub/internal/transport/http/handlers/reports"
	"crewhub/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
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

	calc := compensation.NewCalculator(cfg.SalaryPeriod)
	employeeService := employee.NewService(employee.NewStore(pool), calc, cfg.DefaultUserPassword, cfg.DefaultMonthlyHours)
	pointsService := points.NewService(points.NewStore(pool))
	reportsService := reports.NewService(employeeService, pointsService)
	projectCostStore := projectcost.NewStore(pool)
	jiraClient := jira.NewClient(jira.Config{
		BaseURL:  cfg.JiraBaseURL,
		Email:    cfg.JiraEmail,
		APIToken: cfg.JiraAPIToken,
	})
	collector := metrics.New()

	jobService := jobs.New(pool, cfg, pointsService, collector)
	jobService.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
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

	router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(employeeService, cfg.JWTSecret, cfg.DefaultUserPassword)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.With(middleware.RequireAuth).Put("/auth/change-password", authHandler.HandleChangePassword)
		r.With(middleware.RequireAuth).Get("/auth/me", authHandler.HandleMe)

		employeesHandler := employeeshandler.NewHandler(employeeService, jiraClient)
		employeesHandler.RegisterRoutes(r)

		pointsHandler := pointshandler.NewHandler(pointsService, jobService)
		pointsHandler.RegisterRoutes(r)

		jiraHandler := jirahandler.NewHandler(jiraClient)
		jiraHandler.RegisterRoutes(r)

		projectCostHandler := projectcosthandler.NewHandler(projectCostStore)
		projectCostHandler.RegisterRoutes(r)

		reportsHandler := reportshandler.NewHandler(reportsService)
		reportsHandler.RegisterRoutes(r)
	})

	log.Printf("crewhub server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
