package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"route_editor/internal/config"
	"route_editor/internal/logger"
	"route_editor/internal/middleware"
	"route_editor/internal/routes"
	"route_editor/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}

	// Structured logging to stdout and a rotating file
	logOut := logger.Setup(cfg.LogFile, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	if cfg.DotEnvErr != nil {
		logrus.WithError(cfg.DotEnvErr).Debug("No .env file found – relying on env vars")
	}

	db, err := config.InitDB(cfg, logger.GormLogger())
	if err != nil {
		logrus.Fatalf("database error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("database error: %v", err)
	}
	defer sqlDB.Close()

	r := routes.SetupRouter(routes.Dependencies{
		Store:     store.NewGormRouteStore(db, cfg.RoutesTable),
		JWTSecret: []byte(cfg.JWTSecret),
		LogWriter: logOut,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.EnableCORS(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Server running at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
