package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"hallbook/internal/config"
	"hallbook/internal/repository/mongodb"
	"hallbook/internal/repository/sheets"
	"hallbook/internal/scheduler"
	"hallbook/internal/server/handlers"
	"hallbook/internal/server/router"
	activitysvc "hallbook/internal/service/activity"
	contractsvc "hallbook/internal/service/contracts"
	reportingsvc "hallbook/internal/service/reporting"
	studiosvc "hallbook/internal/service/studio"
	usersvc "hallbook/internal/service/users"
	"hallbook/pkg/clients/sms"
	"hallbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoClient, err := mongodb.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	db := mongoClient.Database()
	contractRepo := mongodb.NewContractRepository(db)
	rateRepo := mongodb.NewRateRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	studioRepo := mongodb.NewStudioRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	userSvc := usersvc.NewService(userRepo, cfg.Auth, baseLogger.Named("svc.users"))
	if err := userSvc.EnsureDefaultAdmin(context.Background()); err != nil {
		baseLogger.Fatal("failed to bootstrap admin user", zap.Error(err))
	}

	activitySvc := activitysvc.NewService(activityRepo, baseLogger.Named("svc.activity"))
	contractSvc := contractsvc.NewService(contractRepo, rateRepo, baseLogger.Named("svc.contracts"))
	studioSvc := studiosvc.NewService(studioRepo, baseLogger.Named("svc.studio"))

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("google sheets report export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, report export disabled")
	}

	var smsClient sms.Client
	if cfg.SMS.Enabled() {
		smsClient = sms.NewClient(cfg.SMS)
		baseLogger.Info("sms notifications enabled")
	} else {
		baseLogger.Warn("sms gateway not configured, manager notifications disabled")
	}

	reportingSvc := reportingsvc.NewService(contractSvc, exporter, smsClient, cfg.SMS.ManagerPhone, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(userSvc, baseLogger.Named("handlers.auth")),
		Settings: handlers.NewSettingsHandler(rateRepo, activitySvc, baseLogger.Named("handlers.settings")),
		Contract: handlers.NewContractHandler(contractSvc, activitySvc, baseLogger.Named("handlers.contracts")),
		Studio:   handlers.NewStudioHandler(studioSvc, activitySvc, baseLogger.Named("handlers.studio")),
		User:     handlers.NewUserHandler(userSvc, activitySvc, baseLogger.Named("handlers.users")),
		Report:   handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
		Activity: handlers.NewActivityHandler(activitySvc, baseLogger.Named("handlers.activity")),
	}, userSvc, cfg.Auth.JWTSecret, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
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
