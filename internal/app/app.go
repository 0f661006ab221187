package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/CareerCraft/internal/config"
	"github.com/GoArmGo/CareerCraft/internal/core/ports"
)

// Resource — ресурс, который нужно закрыть при остановке.
type Resource struct {
	Name   string
	Closer io.Closer
}

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	router          http.Handler
	fileStorage     ports.FileStorage
	cleanupConsumer ports.ResumeCleanupConsumer
	resources       []Resource
}

// NewApp собирает приложение. cleanupConsumer может быть nil, если
// RabbitMQ не настроен; тогда режим worker недоступен.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	fileStorage ports.FileStorage,
	cleanupConsumer ports.ResumeCleanupConsumer,
	resources ...Resource,
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		router:          router,
		fileStorage:     fileStorage,
		cleanupConsumer: cleanupConsumer,
		resources:       resources,
	}
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = runServer(ctx, a.Config.ServerPort, a.router, a.logger)
	case "worker":
		err = runWorker(ctx, a.cleanupConsumer, a.fileStorage, a.logger)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'worker')", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown finished with errors", "error", closeErr)
	}
	return err
}

// Shutdown закрывает ресурсы в обратном порядке открытия.
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.resources) - 1; i >= 0; i-- {
		res := a.resources[i]
		if res.Closer == nil {
			continue
		}
		if err := res.Closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", res.Name, err))
			continue
		}
		a.logger.Info("resource closed", "resource", res.Name)
	}
	a.resources = nil
	return errors.Join(errs...)
}
