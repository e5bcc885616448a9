package api

import (
	"net/http"
	"time"

	"pdfintake/upload-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware attaches the CORS headers to every response, including
// errors, for the single configured origin.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Next()
	}
}

// BodyLimitMiddleware caps the request body at maxBytes before any handler
// reads it. Oversized uploads fail inside the multipart parser with an
// *http.MaxBytesError, which the upload handler maps to 413.
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// LoggingMiddleware logs one line per request: method, path, status, latency.
func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		l.Infof("%s %s %d %s", method, path, c.Writer.Status(), time.Since(start))
	}
}
