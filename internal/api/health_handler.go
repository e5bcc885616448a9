package api

import (
	"net/http"
	"time"

	"pdfintake/upload-service/internal/storage"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string  `json:"status"`
	StorageMode string  `json:"storage_mode"`
	Bucket      *string `json:"bucket"`
	Time        string  `json:"time"`
}

// HealthHandler reports liveness plus the storage mode selected at boot.
type HealthHandler struct {
	store storage.Store
}

func NewHealthHandler(store storage.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Health(c *gin.Context) {
	resp := healthResponse{
		Status:      "ok",
		StorageMode: h.store.Mode(),
		Time:        time.Now().UTC().Format(time.RFC3339),
	}
	if bucket := h.store.Bucket(); bucket != "" {
		resp.Bucket = &bucket
	}
	c.JSON(http.StatusOK, resp)
}
