package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parish-ledger/internal/config"
	"parish-ledger/internal/database"
	"parish-ledger/internal/handlers"
	"parish-ledger/internal/middleware"
	"parish-ledger/internal/models"
	"parish-ledger/internal/repositories"
	"parish-ledger/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err.Error())
		os.Exit(1)
	}

	// Repositories
	transactionRepo := repositories.NewTransactionRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	restrictionRepo := repositories.NewRestrictionRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)

	// Services
	catalog := models.DefaultCatalog()
	metrics := services.NewPrometheusMetrics()
	classifier := services.NewClassifierService()
	aggregator := services.NewAggregationService(transactionRepo, restrictionRepo, classifier, metrics)
	reportService := services.NewReportService(aggregator, reportRepo, transactionRepo, catalog, metrics)
	budgetService := services.NewBudgetService(aggregator, budgetRepo, catalog, metrics)
	comparatorService := services.NewComparatorService()

	// Handlers
	reportHandler := handlers.NewReportHandler(reportService, comparatorService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(echomw.Gzip())
	e.Use(middleware.RateLimiterWithConfig(cfg.Engine.RateLimitPerSecond, cfg.Engine.RateLimitBurst))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/locations/:locationId/reports/:year/:month", reportHandler.GetReport)
	api.PATCH("/reports/:reportId/status", reportHandler.UpdateReportStatus)
	api.POST("/reports/compare", reportHandler.CompareReports)
	api.POST("/budgets/forecast", budgetHandler.ForecastBudget)
	api.POST("/budgets", budgetHandler.CreateBudgetPlan)
	api.PATCH("/budgets/:planId/status", budgetHandler.UpdateBudgetStatus)
	api.GET("/locations/:locationId/budgets/:year/realization/:month", budgetHandler.GetRealization)

	if cfg.IsDevelopment() {
		generator := services.NewLedgerGenerator(cfg.Engine.GeneratorSeed)
		devHandler := handlers.NewDevHandler(transactionRepo, accountRepo, generator)
		dev := api.Group("/dev")
		dev.POST("/accounts/seed", devHandler.SeedChartOfAccounts)
		dev.POST("/locations/:locationId/seed/:year/:month", devHandler.SeedLedgerMonth)
		slog.Info("Development endpoints enabled")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err.Error())
	}
}
