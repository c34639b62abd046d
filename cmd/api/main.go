package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/config"
	"github.com/agrifarm-platform/finance-service/internal/infrastructure/audit"
	"github.com/agrifarm-platform/finance-service/internal/infrastructure/cache"
	"github.com/agrifarm-platform/finance-service/internal/infrastructure/mongodb"
	"github.com/agrifarm-platform/finance-service/internal/server/handlers"
	"github.com/agrifarm-platform/finance-service/internal/server/router"
	"github.com/agrifarm-platform/finance-service/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoCfg := mongodb.DefaultConfig()
	mongoCfg.URI = cfg.MongoDB.URI
	mongoCfg.Database = cfg.MongoDB.DBName
	mongoClient, err := mongodb.NewClient(ctx, mongoCfg)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database()

	uow := mongodb.NewUnitOfWork(mongoClient)
	parties := mongodb.NewPartyRepository(db)
	entries := mongodb.NewLedgerEntryRepository(db)
	materials := mongodb.NewRawMaterialRepository(db)
	feeds := mongodb.NewFinishedFeedRepository(db)
	eggs := mongodb.NewEggStockRepository(db)
	packaging := mongodb.NewPackagingStockRepository(db)
	formulas := mongodb.NewFormulaRepository(db)
	batches := mongodb.NewFeedBatchRepository(db)

	reportCache := cache.NewReportCache(log)
	janitor := cron.New()
	if err := reportCache.ScheduleJanitor(janitor, cfg.Cache.JanitorCron); err != nil {
		log.Fatal("failed to schedule cache janitor", zap.Error(err))
	}
	janitor.Start()

	var auditLog application.AuditLog
	if cfg.Audit.BaseURL != "" {
		auditLog = audit.NewClient(cfg.Audit.BaseURL, logger.Named(log, "audit"))
	}

	ledgerSvc := application.NewLedgerService(parties, entries, cfg.Finance.BaseCurrency, cfg.Finance.SecondaryCurrency, log)
	partySvc := application.NewPartyService(uow, parties, entries, ledgerSvc, log)
	stockSvc := application.NewStockService(uow, materials, feeds, eggs, packaging, cfg.Finance.BaseCurrency, cfg.Finance.SecondaryCurrency, log)
	formulaSvc := application.NewFormulaService(uow, formulas, materials, log)
	coordinator := application.NewTransactionCoordinator(
		uow, ledgerSvc, materials, feeds, eggs, packaging, formulas, batches,
		reportCache, auditLog,
		cfg.Finance.BaseCurrency, cfg.Finance.SecondaryCurrency, cfg.Finance.CostingPolicy,
		log,
	)

	httpLog := logger.Named(log, "http")
	engine := router.New(
		handlers.NewPartyHandler(partySvc, ledgerSvc, reportCache, cfg.Cache.TTL, httpLog),
		handlers.NewStockHandler(stockSvc, reportCache, cfg.Cache.TTL, httpLog),
		handlers.NewFormulaHandler(formulaSvc, batches, httpLog),
		handlers.NewTransactionHandler(coordinator, ledgerSvc, httpLog),
		httpLog,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		log.Info("finance service listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	<-janitor.Stop().Done()
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect failed", zap.Error(err))
	}
	log.Info("shutdown complete")
}
