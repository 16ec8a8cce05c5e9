package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Run starts the metrics server, performs the preload, and shuts down.
// An interrupt or SIGTERM cancels the preload through its context.
func (a *App) Run(ctx context.Context) error {
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := a.Preload(ctx)
	if err != nil {
		logrus.Errorf("preload failed: %v", err)
	}

	if shutdownErr := a.Shutdown(context.Background()); shutdownErr != nil {
		logrus.Errorf("shutdown error: %v", shutdownErr)
	}
	return err
}

// Shutdown stops the metrics server and closes external connections.
// Errors are logged so every component gets a chance to clean up.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down...")

	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("redis close error: %v", err)
		}
	}

	logrus.Info("shutdown complete")
	return nil
}
