package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/brainboost/internal/api"
	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/db"
	"github.com/vytor/brainboost/internal/jobs"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/metrics"
	"github.com/vytor/brainboost/internal/repository/sqlite"
	"github.com/vytor/brainboost/internal/services"
	"github.com/vytor/brainboost/internal/worker"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if path, _ := cmd.Flags().GetString("db"); path != "" {
				cfg.DBPath = path
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration:\n%w", err)
			}

			log := setupLogger(cmd, cfg, true)
			log.Info("===========================================")
			log.Info("brainboost server starting")
			log.Info("===========================================")
			log.Debug("addr=%s", cfg.Addr)
			log.Debug("db_path=%s", cfg.DBPath)
			log.Debug("content_path=%s", cfg.ContentPath)
			log.Debug("log_level=%s", cfg.LogLevel)
			log.Debug("attempt_worker_count=%d", cfg.AttemptWorkerCount)
			log.Debug("attempt_queue_size=%d", cfg.AttemptQueueSize)

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				log.Debug("closing database connection")
				database.Close()
			}()

			metrics.Init()

			contentRepo := sqlite.NewContentRepository(database.DB)
			reportRepo := sqlite.NewReportRepository(database.DB)
			attemptRepo := sqlite.NewAttemptRepository(database.DB)

			holder := catalog.NewHolder()
			contentService := services.NewContentService(contentRepo, holder)
			go loadCatalog(log, holder, contentService, cfg.ContentPath)

			attemptPool := worker.NewPool(cfg.AttemptWorkerCount, cfg.AttemptQueueSize)
			attemptPool.Observe(metrics.ObserveJob)
			attemptPool.Start(context.Background())

			engine := recommender()
			srv := &api.Server{
				QuizService: services.NewQuizService(holder, reportRepo, jobs.NewWorkerQueue(attemptPool, attemptRepo),
					cfg.Scoring(), engine, reportConfig(cfg)),
				LessonService:  services.NewLessonService(holder, engine),
				ReportService:  services.NewReportService(reportRepo, attemptRepo),
				ContentService: contentService,
				Catalog:        holder,
				DB:             database,
			}

			httpServer := &http.Server{
				Addr:         cfg.Addr,
				Handler:      srv.Routes(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				log.Info("HTTP server listening on %s", cfg.Addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					attemptPool.Stop()
					return fmt.Errorf("http server: %w", err)
				}
			case <-ctx.Done():
				log.Info("received shutdown signal, initiating graceful shutdown")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			log.Debug("shutting down HTTP server")
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP server shutdown error: %v", err)
			}

			log.Debug("draining attempt pool")
			attemptPool.Stop()

			log.Info("===========================================")
			log.Info("brainboost server stopped")
			log.Info("===========================================")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides ADDR)")
	cmd.Flags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	return cmd
}

// loadCatalog seeds storage from the content pack and publishes the catalog
// read back from it. Until it finishes, catalog-backed endpoints answer 503.
func loadCatalog(log *logger.Logger, holder *catalog.Holder, content services.ContentService, path string) {
	start := time.Now()
	err := holder.Init(func() (*catalog.Catalog, error) {
		ctx := logger.NewContext(context.Background(), log)
		pack, err := loadPack(path)
		if err != nil {
			return nil, err
		}
		if err := content.Seed(ctx, pack); err != nil {
			return nil, err
		}
		return content.BuildCatalog(ctx)
	})
	if err != nil {
		log.Error("failed to load content catalog: %v", err)
		return
	}
	log.Info("content catalog ready in %v", time.Since(start))
}
