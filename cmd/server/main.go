package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/camposoft/tambero/internal/catalog"
	"github.com/camposoft/tambero/internal/config"
	"github.com/camposoft/tambero/internal/repository/mongodb"
	"github.com/camposoft/tambero/internal/repository/sheets"
	"github.com/camposoft/tambero/internal/scheduler"
	"github.com/camposoft/tambero/internal/server/handlers"
	"github.com/camposoft/tambero/internal/server/router"
	"github.com/camposoft/tambero/internal/service/breedingsvc"
	"github.com/camposoft/tambero/internal/service/cropsvc"
	"github.com/camposoft/tambero/pkg/clients/weather"
	"github.com/camposoft/tambero/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// A structurally invalid species table is the one hard failure the
	// domain allows; it must stop the process before anything serves.
	speciesCatalog, err := catalog.New(catalog.DefaultSpecies())
	if err != nil {
		baseLogger.Fatal("invalid species table", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var ledger sheets.Ledger
	if cfg.LedgerEnabled() {
		ledger, err = sheets.NewGoogleSheetLedger(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		baseLogger.Info("sheets ledger enabled")
	} else {
		baseLogger.Warn("sheets ledger not configured, alerts stay in logs only")
	}

	weatherClient := weather.NewClient(cfg.Weather)

	cropService := cropsvc.NewService(speciesCatalog, weatherClient, mongoRepo, baseLogger.Named("svc.crops"))
	breedingService := breedingsvc.NewService(mongoRepo, ledger, baseLogger.Named("svc.breeding"))

	cropHandler := handlers.NewCropHandler(cropService, baseLogger.Named("handlers.crops"))
	breedingHandler := handlers.NewBreedingHandler(breedingService, baseLogger.Named("handlers.breeding"))
	engine := router.New(cropHandler, breedingHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Monitor, cropService, ledger, baseLogger.Named("scheduler"))
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
