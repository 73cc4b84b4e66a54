package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/ranjan-27/SmartLog/internal/adapter/grpc"
	"github.com/ranjan-27/SmartLog/internal/adapter/repository/memory"
	"github.com/ranjan-27/SmartLog/internal/adapter/repository/pgstore"
	"github.com/ranjan-27/SmartLog/internal/adapter/repository/postgres"
	"github.com/ranjan-27/SmartLog/internal/config"
	"github.com/ranjan-27/SmartLog/internal/pkg/grpcserver"
	"github.com/ranjan-27/SmartLog/internal/usecase/entry"
	"github.com/ranjan-27/SmartLog/internal/usecase/summary"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 2. Open the transaction store
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open transaction store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()
	logger.Info("Transaction store ready", zap.String("driver", cfg.StoreDriver))

	// 3. Initialize services
	summaryService := summary.NewService(store)

	// 4. Start gRPC server
	server := grpcserver.New(cfg.GRPCAddr,
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	formServer := grpcadapter.NewServer(store, summaryService, logger,
		entry.WithCurrency(cfg),
		entry.WithCloseDelay(cfg.CloseDelay),
		entry.WithDuplicateOnEdit(cfg.AllowDuplicateOnEdit),
	)
	grpcadapter.RegisterEntryFormServiceServer(server.Server, formServer)

	// 5. Expire form sessions abandoned by their clients
	janitor := cron.New()
	if _, err := formServer.ScheduleExpiry(janitor, cfg.SessionSweepSchedule, cfg.SessionIdleTimeout); err != nil {
		logger.Fatal("Failed to schedule session expiry", zap.Error(err))
	}
	janitor.Start()

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to serve gRPC server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(logger, server, formServer, janitor)
}

// openStore builds the repository selected by STORE_DRIVER and returns its cleanup func
func openStore(ctx context.Context, cfg *config.Config) (grpcadapter.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.DBConnStr)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewTransactionRepository(db), func() { db.Close() }, nil

	case config.DriverPgx:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgstore.Connect(connectCtx, cfg.DBConnStr)
		if err != nil {
			return nil, nil, err
		}
		repo := pgstore.NewTransactionRepository(pool)
		if err := repo.EnsureSchema(connectCtx, postgres.Schema); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	}

	return memory.NewTransactionRepository(), func() {}, nil
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(logger *zap.Logger, server *grpcserver.Server, formServer *grpcadapter.Server, janitor *cron.Cron) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))

	<-janitor.Stop().Done()
	server.Stop()
	formServer.Shutdown()
	logger.Info("gRPC server stopped")
}
