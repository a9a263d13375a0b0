package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prediction-service/internal/adapters/primary/http/handlers"
	"prediction-service/internal/adapters/primary/http/middleware"
	"prediction-service/internal/adapters/secondary/artifact"
	"prediction-service/internal/adapters/secondary/kube"
	"prediction-service/internal/adapters/secondary/postgres"
	"prediction-service/internal/adapters/secondary/sqlite"
	"prediction-service/internal/config"
	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
	"prediction-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	records, err := openRecordSource(cfg)
	if err != nil {
		log.Fatalf("open record source: %v", err)
	}
	defer records.Close()

	if err := records.Ping(context.Background()); err != nil {
		// Regression does not need the database; classification requests
		// will fail until it is reachable.
		log.Warnf("ping db (continuing): %v", err)
	} else {
		log.Info("database connection established")
	}

	// ============================================================================
	// Artifacts
	// ============================================================================

	sources := map[string]ports.ArtifactSource{
		artifact.SchemeFile: artifact.NewFileSource(),
	}
	if usesScheme(cfg.Artifacts.Locations(), kube.Scheme) {
		src, err := kube.NewConfigMapSource(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("ConfigMap artifact source init failed (configmap artifacts will be unavailable): %v", err)
		} else {
			sources[kube.Scheme] = src
			log.Info("ConfigMap artifact source initialized")
		}
	}

	locations := services.ArtifactLocations{
		ClassifierBundle: cfg.Artifacts.ClassifierBundle,
		RegressorModel:   cfg.Artifacts.RegressorModel,
		RegressorScaler:  cfg.Artifacts.RegressorScaler,
	}
	store := services.LoadArtifacts(context.Background(), artifact.NewLoader(sources), locations)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfg.Artifacts.Watch {
		startArtifactWatcher(watchCtx, locations.Files())
	}

	// ============================================================================
	// Wiring
	// ============================================================================

	classificationSvc := services.NewClassificationService(records, store, domain.CategoryLabels, domain.ProductLabels)
	regressionSvc := services.NewRegressionService(store, domain.CropColumnMapping)
	healthSvc := services.NewHealthService(records, store)

	h := handlers.New(classificationSvc, regressionSvc, healthSvc)

	router := gin.New()
	router.Use(middleware.Trace(), middleware.AccessLog(), gin.Recovery())
	h.RegisterRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func openRecordSource(cfg *config.Config) (ports.ProductRecordSource, error) {
	if cfg.Database.Driver == config.DriverSQLite {
		log.Infof("using sqlite product store at %s", cfg.Database.Path)
		return sqlite.Open(cfg.Database.Path)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	return postgres.NewProductRecordRepository(pool), nil
}

func startArtifactWatcher(ctx context.Context, locations []string) {
	watcher, err := artifact.NewWatcher(locations)
	if err != nil {
		log.Warnf("artifact watcher init failed (continuing without it): %v", err)
		return
	}
	changes, err := watcher.Watch(ctx)
	if err != nil {
		log.Warnf("artifact watcher start failed (continuing without it): %v", err)
		watcher.Stop()
		return
	}

	go func() {
		defer watcher.Stop()
		for change := range changes {
			log.WithFields(log.Fields{
				"path": change.Path,
				"op":   change.Op,
			}).Warn("artifact changed on disk; restart to serve the new version")
		}
	}()
	log.Info("artifact watcher started")
}

func usesScheme(locations []string, scheme string) bool {
	for _, loc := range locations {
		if artifact.Scheme(loc) == scheme {
			return true
		}
	}
	return false
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
