package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/config"
	"github.com/dilshanuk/salespoint/internal/repository/mongodb"
	"github.com/dilshanuk/salespoint/internal/repository/sheets"
	"github.com/dilshanuk/salespoint/internal/scheduler"
	"github.com/dilshanuk/salespoint/internal/server/handlers"
	"github.com/dilshanuk/salespoint/internal/server/router"
	authsvc "github.com/dilshanuk/salespoint/internal/service/auth"
	customersvc "github.com/dilshanuk/salespoint/internal/service/customers"
	inventorysvc "github.com/dilshanuk/salespoint/internal/service/inventory"
	ordersvc "github.com/dilshanuk/salespoint/internal/service/orders"
	reportingsvc "github.com/dilshanuk/salespoint/internal/service/reporting"
	"github.com/dilshanuk/salespoint/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	repo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("google sheets report export enabled")
	}

	tokens := authsvc.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := authsvc.NewService(repo.Users(), tokens, baseLogger.Named("svc.auth"))
	inventoryService := inventorysvc.NewService(repo.Stocks(), baseLogger.Named("svc.inventory"))
	orderService := ordersvc.NewService(repo.Orders(), repo.Stocks(), loc, baseLogger.Named("svc.orders"))
	customerService := customersvc.NewService(repo.Customers(), baseLogger.Named("svc.customers"))
	reportingService := reportingsvc.NewService(repo.Orders(), repo.Reports(), sheetsRepo, loc, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Profile:  handlers.NewProfileHandler(authService, baseLogger.Named("handlers.profile")),
		Stock:    handlers.NewStockHandler(inventoryService, baseLogger.Named("handlers.stock")),
		Orders:   handlers.NewOrderHandler(orderService, baseLogger.Named("handlers.orders")),
		Customer: handlers.NewCustomerHandler(customerService, baseLogger.Named("handlers.customers")),
	}, tokens, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, loc, reportingService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
