package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jeffbulltech/cosmere-api/pkg/container"
	"github.com/jeffbulltech/cosmere-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Production runs on real environment variables.
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Init(env)

	serve()
}

func serve() {
	app, err := container.New()
	if err != nil {
		logger.Error("container initialization failed", err)
		os.Exit(1)
	}
	defer app.Cleanup()

	router := SetupRouter(app)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port":        app.Config.App.Port,
			"environment": app.Config.App.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", err)
	}

	logger.Info("server stopped", nil)
}
