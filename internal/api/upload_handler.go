package api

import (
	"errors"
	"net/http"

	"pdfintake/upload-service/internal/service"
	"pdfintake/upload-service/internal/storage"
	"pdfintake/upload-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// --- DTOs ---

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type s3UploadResponse struct {
	Status  string  `json:"status"`
	ID      string  `json:"id"`
	Storage string  `json:"storage"`
	Bucket  string  `json:"bucket"`
	PDFKey  string  `json:"pdf_key"`
	MetaKey string  `json:"meta_key"`
	PDFURL  *string `json:"pdf_url"` // null when presigning failed
}

type localUploadResponse struct {
	Status   string `json:"status"`
	ID       string `json:"id"`
	Storage  string `json:"storage"`
	Folder   string `json:"folder"`
	PDFPath  string `json:"pdf_path"`
	MetaPath string `json:"meta_path"`
}

// UploadHandler serves the intake endpoint.
type UploadHandler struct {
	uploadService service.UploadService
	log           *logger.Logger
}

func NewUploadHandler(uploadService service.UploadService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, log: log}
}

// Preflight answers the browser's CORS preflight with an empty 204.
// The CORS middleware already set the headers.
func (h *UploadHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Upload handles POST /api/upload: a multipart form with name, email,
// company (optional) and a single PDF file part.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Status: "error", Error: "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Error: "invalid multipart form"})
		return
	}

	req := service.UploadRequest{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Company: c.PostForm("company"),
	}

	if headers := form.File["file"]; len(headers) > 0 {
		file, err := headers[0].Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Error: "invalid multipart form"})
			return
		}
		defer file.Close()
		req.File = file
		req.Filename = headers[0].Filename
	}

	result, err := h.uploadService.ProcessUpload(c.Request.Context(), req)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Error: err.Error()})
			return
		}
		h.log.Errorf("upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Status: "error", Error: "upload failed", Detail: err.Error()})
		return
	}

	loc := result.Locator
	if loc.Mode == storage.ModeS3 {
		c.JSON(http.StatusCreated, s3UploadResponse{
			Status:  "ok",
			ID:      result.ID,
			Storage: storage.ModeS3,
			Bucket:  loc.Bucket,
			PDFKey:  loc.PDFKey,
			MetaKey: loc.MetaKey,
			PDFURL:  loc.PDFURL,
		})
		return
	}
	c.JSON(http.StatusCreated, localUploadResponse{
		Status:   "ok",
		ID:       result.ID,
		Storage:  storage.ModeLocal,
		Folder:   loc.Folder,
		PDFPath:  loc.PDFPath,
		MetaPath: loc.MetaPath,
	})
}
