package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfintake/upload-service/internal/api"
	"pdfintake/upload-service/internal/config"
	"pdfintake/upload-service/internal/service"
	"pdfintake/upload-service/internal/storage"
	"pdfintake/upload-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	log := logger.New(cfg.Server.Environment)
	defer log.Sync()

	if cfg.Server.Environment == logger.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Storage Backend ---
	// Selected once at boot: the S3 backend only when the full credential
	// set is present, otherwise the local filesystem tree.
	var store storage.Store
	if cfg.S3.Enabled() {
		store, err = storage.NewS3Store(context.Background(), cfg.S3, log)
		if err != nil {
			log.Fatalf("could not initialize S3 storage: %v", err)
		}
	} else {
		store, err = storage.NewLocalStore(cfg.Upload.Dir)
		if err != nil {
			log.Fatalf("could not initialize local storage: %v", err)
		}
	}

	// --- Service & Routes ---
	uploadService := service.NewUploadService(store)
	router := api.NewRouter(cfg, store, uploadService, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("starting server on 0.0.0.0:%s | storage=%s", cfg.Server.Port, store.Mode())

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infof("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Infof("server exiting")
}
