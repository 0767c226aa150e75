package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"netaudit/internal/config"
	"netaudit/internal/handler"
	"netaudit/internal/hub"
	"netaudit/internal/loader"
	"netaudit/internal/logging"
	"netaudit/internal/repository/sqlite"
	"netaudit/internal/service"
	"netaudit/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		os.Stderr.WriteString("failed to init logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting netaudit server", zap.String("listen", cfg.Listen))
	if cfgPath != "" {
		log.Info("config loaded", zap.String("path", cfgPath))
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer repo.Close()
	log.Info("database opened", zap.String("path", cfg.Database.Path))

	eventBus := service.NewEventBus()

	sseHub := hub.New(log)
	go sseHub.Run()

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	runSvc := service.NewRunService(repo, eventBus, log)
	invSvc := service.NewInventoryService(repo, eventBus, log)

	// Optional inventory file: import on startup and re-import on change
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	if cfg.Inventory.Path != "" {
		importInventory(rootCtx, log, invSvc, cfg.Inventory.Path)

		if cfg.Inventory.Watch {
			w := watcher.New(cfg.Inventory.Path, log, func() {
				importInventory(rootCtx, log, invSvc, cfg.Inventory.Path)
			})
			go func() {
				if err := w.Watch(rootCtx); err != nil && err != context.Canceled {
					log.Warn("inventory watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	mux := http.NewServeMux()
	apiHandler := handler.NewAPIHandler(runSvc, invSvc, log)
	apiHandler.Routes(mux)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover(log),
		handler.CORS,
		handler.Logger(log),
	)

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Listen))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	rootCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warn("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func importInventory(ctx context.Context, log *zap.Logger, invSvc *service.InventoryService, path string) {
	inv, err := loader.LoadFile(path)
	if err != nil {
		log.Error("failed to load inventory file", zap.String("path", path), zap.Error(err))
		return
	}

	counts, err := invSvc.Replace(ctx, inv)
	if err != nil {
		log.Error("failed to import inventory", zap.String("path", path), zap.Error(err))
		return
	}

	log.Info("inventory imported",
		zap.String("path", path),
		zap.Int("devices", counts.Devices),
		zap.Int("circuits", counts.Circuits))
}
