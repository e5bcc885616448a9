package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"pdfintake/upload-service/internal/domain"
	"pdfintake/upload-service/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
// Validation errors map to HTTP 400 in the handler; their text is the
// client-facing error code.
var (
	ErrMissingFields = errors.New("name, email, file required")
	ErrNotPDF        = errors.New("Only PDF files allowed")
)

// UploadRequest is the raw multipart input before validation.
type UploadRequest struct {
	Name     string
	Email    string
	Company  string
	File     multipart.File
	Filename string // as supplied by the client, untrusted
}

// UploadResult pairs the generated identifier with the storage locator.
type UploadResult struct {
	ID      string
	Locator *storage.Locator
}

// UploadService validates submissions and persists them through the
// injected storage backend.
type UploadService interface {
	ProcessUpload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

type uploadService struct {
	store storage.Store
	now   func() time.Time
}

// NewUploadService returns an UploadService backed by store.
func NewUploadService(store storage.Store) UploadService {
	return &uploadService{store: store, now: time.Now}
}

// ProcessUpload runs the full intake path: validate, mint an identifier,
// build the metadata record, persist. Nothing is written when validation
// fails.
func (s *uploadService) ProcessUpload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	sub, err := validate(req)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	meta := domain.NewMetadata(id, sub, s.now())

	loc, err := s.store.Persist(ctx, id, sub.Extension, req.File, meta.Encode())
	if err != nil {
		return nil, err
	}
	return &UploadResult{ID: id, Locator: loc}, nil
}

// validate enforces the strict submission policy: name, email and the file
// part are all required, the filename must survive sanitization and the
// extension must be allow-listed.
func validate(req UploadRequest) (domain.Submission, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	company := strings.TrimSpace(req.Company)

	if name == "" || email == "" || req.File == nil {
		return domain.Submission{}, ErrMissingFields
	}

	original := domain.SanitizeFilename(req.Filename)
	if original == "" {
		return domain.Submission{}, ErrNotPDF
	}
	ext, ok := domain.AllowedExtension(original)
	if !ok {
		return domain.Submission{}, ErrNotPDF
	}

	return domain.Submission{
		Name:             name,
		Email:            email,
		Company:          company,
		OriginalFilename: original,
		Extension:        ext,
	}, nil
}

// IsValidationError reports whether err is a client-side rejection rather
// than a backend failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) || errors.Is(err, ErrNotPDF)
}
