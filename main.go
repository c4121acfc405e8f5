package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/center-locator/app/bootstrap"
	"github.com/center-locator/app/config"
	"github.com/center-locator/app/controllers"
	"github.com/center-locator/app/services"
	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/resolver"
	"github.com/center-locator/routes"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config/app.yaml)")
	flag.Parse()

	// 1. Load .env rồi configuration
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: cannot read .env: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}

	// 2. Khởi tạo logger
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Center Locator Service",
		zap.String("env", cfg.App.Env),
		zap.String("catalog_source", cfg.Catalog.Source))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Nguồn catalog
	source, closeSource, err := bootstrap.NewCatalogSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize catalog source", zap.Error(err))
	}
	defer closeSource()

	// 4. Resolver + catalog (lỗi nạp lần đầu không làm dừng service)
	centerResolver := resolver.NewResolver(normalizer.Default(), logger)
	catalogService := services.NewCatalogService(source, centerResolver, bootstrap.NewMirror(cfg, logger), logger)
	_ = catalogService.Init(ctx)

	// 5. Cache + services
	answerCache := bootstrap.NewAnswerCache(ctx, cfg, logger)
	if answerCache != nil {
		defer answerCache.Close()
	}
	chatService := services.NewChatService(catalogService, answerCache, services.ChatOptions{
		Timeout:      cfg.Chat.Timeout,
		MaxBatch:     cfg.Chat.MaxBatch,
		BatchWorkers: cfg.Chat.BatchWorkers,
	}, logger)
	adminService := services.NewAdminService(catalogService, chatService, logger)

	// 6. Controllers + routes
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router,
		routes.Options{ServiceName: cfg.App.Name, Version: version, CORSOrigins: cfg.App.CORSOrigins},
		controllers.NewChatController(chatService, catalogService, cfg.App.Name, logger),
		controllers.NewAdminController(adminService, logger),
		logger)

	// 7. SIGHUP nạp lại catalog
	go watchReload(ctx, adminService, logger)

	// 8. Khởi động server
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}
	go func() {
		logger.Info("Center Locator Service listening", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down", zap.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// watchReload nạp lại catalog mỗi khi nhận SIGHUP
func watchReload(ctx context.Context, adminService *services.AdminService, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			report, err := adminService.ReloadCatalog(ctx)
			if err != nil {
				continue
			}
			logger.Info("Catalog reloaded on SIGHUP",
				zap.String("version", report.Version),
				zap.Bool("changed", report.Changed))
		}
	}
}
