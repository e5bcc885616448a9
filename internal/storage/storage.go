package storage

import (
	"context"
	"io"
	"time"
)

// Storage modes reported by the health endpoint.
const (
	ModeLocal = "local"
	ModeS3    = "s3"
)

// Expiry for presigned download URLs issued after an S3 upload.
const DefaultPresignedURLExpiry = time.Hour

// Locator describes where an upload record landed. Exactly one of the two
// field groups is populated, depending on the active backend.
type Locator struct {
	Mode string

	// Object storage backend.
	Bucket  string
	PDFKey  string
	MetaKey string
	PDFURL  *string // presigned download link; nil when generation failed

	// Local filesystem backend.
	Folder   string
	PDFPath  string
	MetaPath string
}

// Store is the persistence contract for one upload record. Implementations
// write the file bytes and the metadata blob under a namespace derived from
// id alone. There is no transactional guarantee between the two writes; a
// failure after the file write leaves an orphaned file behind.
type Store interface {
	// Persist writes the file stream as "input<ext>" and meta as
	// "meta.txt" inside the id-scoped namespace.
	Persist(ctx context.Context, id, ext string, file io.Reader, meta []byte) (*Locator, error)

	// Mode returns ModeLocal or ModeS3.
	Mode() string

	// Bucket returns the configured bucket name, or "" for local storage.
	Bucket() string
}
