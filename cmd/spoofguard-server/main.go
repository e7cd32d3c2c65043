package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stoik/spoofguard/internal/adapters/httpapi"
	"github.com/stoik/spoofguard/internal/adapters/registryfile"
	"github.com/stoik/spoofguard/internal/adapters/storage"
	"github.com/stoik/spoofguard/internal/application"
	"github.com/stoik/spoofguard/internal/config"
	"github.com/stoik/spoofguard/internal/domain/detection"
	"github.com/stoik/spoofguard/internal/logger"
	"github.com/stoik/spoofguard/internal/ports"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting spoofguard server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	reg, err := registryfile.Load(cfg.Registry.SafeDomainsPath)
	if err != nil {
		log.Fatal("Failed to load safe domain registry", zap.Error(err))
	}
	log.Info("Loaded safe domain registry",
		zap.Int("domains", reg.Len()),
		zap.Strings("categories", reg.Categories),
	)

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize scan store", zap.Error(err))
	}
	defer store.Close()

	// Hexagonal wiring: main builds the adapters and injects them inward
	detector := detection.NewDetector(reg.Domains, detection.WithThresholds(cfg.Thresholds))
	service := application.NewSpoofCheckService(store, detector, log)
	handler := httpapi.NewHandler(service, detector.Registry().Len())

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpapi.NewRouter(handler, log),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// newStore picks PostgreSQL when DATABASE_URL is set, memory otherwise
func newStore(cfg *config.Config, log *zap.Logger) (ports.ScanStore, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, scan records are kept in memory")
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	log.Info("Connected to PostgreSQL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.InitSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	log.Info("Database schema initialized")

	return store, nil
}
