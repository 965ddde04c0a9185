package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	log "github.com/sirupsen/logrus"

	"cinetech/internal/auth"
	"cinetech/internal/clients"
	"cinetech/internal/config"
	"cinetech/internal/domain"
	"cinetech/internal/handler"
	"cinetech/internal/service"
	"cinetech/internal/storage"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	cfg        *config.Config
	server     *fiber.App
	store      *storage.BoltStore
	authSvc    *auth.Service
	categories domain.CategoryRepository
	importSvc  *service.ImportService
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(cfg.DBPath(), cfg.DBFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	authSvc, err := auth.Open(cfg.AuthDBPath(), cfg.DBFilePermissions)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("opening auth store: %w", err)
	}

	app := &App{
		cfg:     cfg,
		store:   store,
		authSvc: authSvc,
	}
	app.wireServices()

	return app, nil
}

func (a *App) wireServices() {
	categoryRepo := storage.NewCategoryRepository(a.store)
	movieRepo := storage.NewMovieRepository(a.store, categoryRepo)

	searcher := clients.NewTVMazeClient(a.cfg.TVMazeBaseURL, a.cfg.HTTPTimeout)
	importSvc := service.NewImportService(a.cfg, movieRepo, categoryRepo, searcher)
	statsSvc := service.NewStatsService(movieRepo, categoryRepo)

	a.categories = categoryRepo
	a.importSvc = importSvc

	engine := html.New(a.cfg.ViewsDir, ".html")
	a.server = fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})

	handler.New(movieRepo, categoryRepo, importSvc, statsSvc, a.authSvc).RegisterRoutes(a.server)
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.categories.EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	// One-shot: fills an empty library before the server takes traffic.
	a.importSvc.AutoPopulate(ctx)

	go a.startServer()

	return a.waitForShutdown(ctx, cancel)
}

func (a *App) startServer() {
	log.WithFields(log.Fields{
		"component": "server",
		"address":   a.cfg.ServerPort,
	}).Info("http server listening")

	if err := a.server.Listen(a.cfg.ServerPort); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Fatal("http server failed to start")
	}
}

func (a *App) waitForShutdown(ctx context.Context, cancel context.CancelFunc) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		log.WithField("reason", "context_cancelled").Info("initiating graceful shutdown")
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("received shutdown signal")
	}

	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	log.Info("graceful shutdown started")

	if err := a.server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Error("http server shutdown failed")
	}

	if err := a.authSvc.Close(); err != nil {
		log.WithFields(log.Fields{
			"component": "auth",
			"error":     err,
		}).Error("auth store close failed")
	}

	if err := a.store.Close(); err != nil {
		log.WithFields(log.Fields{
			"component": "database",
			"error":     err,
		}).Error("database connection close failed")
		return err
	}

	log.Info("graceful shutdown completed")
	return nil
}
