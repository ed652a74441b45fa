package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/protrack-app/protrack/internal/app"
	"github.com/protrack-app/protrack/internal/auth"
	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/employees"
	"github.com/protrack-app/protrack/internal/invoices"
	"github.com/protrack-app/protrack/internal/platform/cache"
	"github.com/protrack-app/protrack/internal/platform/db"
	"github.com/protrack-app/protrack/internal/projects"
	"github.com/protrack-app/protrack/internal/summary"
	"github.com/protrack-app/protrack/internal/users"
	"github.com/protrack-app/protrack/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	projectRepo := projects.NewRepository(pool)
	costRepo := costs.NewRepository(pool)
	invoiceRepo := invoices.NewRepository(pool)
	budgetRepo := budgets.NewRepository(pool)
	userRepo := users.NewRepository(pool)
	employeeRepo := employees.NewRepository(pool)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	summaryCache := summary.NewCache(redisClient, cfg.SummaryCacheTTL)
	summaryService := summary.NewService(logger, projectRepo, costRepo, budgetRepo, invoiceRepo, summaryCache, jobClient)
	if err := summaryCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("subscribe cache invalidation", slog.Any("error", err))
	}

	projectService := projects.NewService(logger, projectRepo, summaryService)
	costService := costs.NewService(logger, costRepo, summaryService)
	invoiceService := invoices.NewService(logger, invoiceRepo, summaryService)
	budgetService := budgets.NewService(logger, budgetRepo, summaryService)
	userService := users.NewService(logger, userRepo)
	employeeService := employees.NewService(logger, employeeRepo)

	sessions := auth.NewSessions(redisClient, cfg.SessionTTL)
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Sessions:         sessions,
		AuthHandler:      auth.NewHandler(logger, userService, sessions),
		ProjectsHandler:  projects.NewHandler(logger, projectService),
		CostsHandler:     costs.NewHandler(logger, costService),
		InvoicesHandler:  invoices.NewHandler(logger, invoiceService),
		BudgetsHandler:   budgets.NewHandler(logger, budgetService),
		UsersHandler:     users.NewHandler(logger, userService),
		EmployeesHandler: employees.NewHandler(logger, employeeService),
		SummaryHandler:   summary.NewHandler(logger, summaryService),
		JobHandler:       jobs.NewHandler(inspector, logger),
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
