package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/accident-dashboard/internal/api"
	"github.com/jengzang/accident-dashboard/internal/config"
	"github.com/jengzang/accident-dashboard/internal/database"
	"github.com/jengzang/accident-dashboard/internal/dataset"
	"github.com/jengzang/accident-dashboard/internal/logging"
	"github.com/jengzang/accident-dashboard/internal/repository"
	"github.com/jengzang/accident-dashboard/internal/service"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(gin.ReleaseMode)

	// 加载数据, a malformed file stops startup before anything is served
	table, err := dataset.Load(cfg.Data.Path, cfg.Data.Properties)
	if err != nil {
		var fe *dataset.FormatError
		if errors.As(err, &fe) {
			logger.Fatal("dataset is not a valid point feature collection",
				zap.String("path", cfg.Data.Path), zap.Int("feature", fe.Feature), zap.Error(err))
		}
		logger.Fatal("failed to load dataset", zap.String("path", cfg.Data.Path), zap.Error(err))
	}
	logger.Info("dataset loaded", zap.String("path", cfg.Data.Path), zap.Int("records", table.Len()))

	svc, err := service.NewDashboardService(cfg, table, logger)
	if err != nil {
		logger.Fatal("failed to build dashboard", zap.Error(err))
	}

	if cfg.Archive.DBPath != "" {
		if err := archive(cfg, svc, logger); err != nil {
			logger.Error("archive failed", zap.String("db", cfg.Archive.DBPath), zap.Error(err))
		}
	}

	// 初始化路由
	router, err := api.SetupRouter(cfg, svc, logger)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// archive snapshots the loaded records into SQLite
func archive(cfg *config.Config, svc *service.DashboardService, logger *zap.Logger) error {
	db, err := database.Open(database.Config{Path: cfg.Archive.DBPath})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.NewMigrationManager(db, logger).RunMigrations(); err != nil {
		return err
	}

	archiver := service.NewArchiveService(repository.NewRecordRepository(db), logger)
	return archiver.Archive(context.Background(), svc.Dashboard())
}
