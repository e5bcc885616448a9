package api

import (
	"pdfintake/upload-service/internal/config"
	"pdfintake/upload-service/internal/service"
	"pdfintake/upload-service/internal/storage"
	"pdfintake/upload-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes into a gin engine.
func NewRouter(cfg config.Config, store storage.Store, uploadService service.UploadService, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggingMiddleware(log))
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigin))
	router.Use(BodyLimitMiddleware(cfg.Upload.MaxBodyBytes()))

	uploadHandler := NewUploadHandler(uploadService, log)
	healthHandler := NewHealthHandler(store)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", healthHandler.Health)
		apiGroup.OPTIONS("/upload", uploadHandler.Preflight)
		apiGroup.POST("/upload", uploadHandler.Upload)
	}

	return router
}
