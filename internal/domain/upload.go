package domain

import (
	"fmt"
	"strings"
	"time"
)

// Fixed artifact names inside an upload's namespace. The stored file is
// always renamed to "input<ext>" so downstream consumers never depend on
// the client-supplied filename.
const (
	StoredFileBase = "input"
	MetaFileName   = "meta.txt"
)

// Submission is one client-provided multipart payload, already parsed and
// trimmed. It is request-scoped and never persisted as a structured object.
type Submission struct {
	Name             string
	Email            string
	Company          string
	OriginalFilename string // sanitized client filename, e.g. "report.pdf"
	Extension        string // lowercase, including the dot, e.g. ".pdf"
}

// Metadata describes one upload record. It is flattened to the plain-text
// meta.txt artifact stored next to the file.
type Metadata struct {
	ID               string
	Name             string
	Email            string
	Company          string
	OriginalFilename string
	UploadedAt       time.Time
}

// NewMetadata builds the metadata record for a submission under the given
// generated identifier.
func NewMetadata(id string, sub Submission, uploadedAt time.Time) Metadata {
	return Metadata{
		ID:               id,
		Name:             sub.Name,
		Email:            sub.Email,
		Company:          sub.Company,
		OriginalFilename: sub.OriginalFilename,
		UploadedAt:       uploadedAt,
	}
}

// Encode renders the record as newline-separated key=value lines.
// The field order is fixed and part of the on-disk format.
func (m Metadata) Encode() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "id=%s\n", m.ID)
	fmt.Fprintf(&b, "name=%s\n", m.Name)
	fmt.Fprintf(&b, "email=%s\n", m.Email)
	fmt.Fprintf(&b, "company=%s\n", m.Company)
	fmt.Fprintf(&b, "original_filename=%s\n", m.OriginalFilename)
	fmt.Fprintf(&b, "uploaded_at_utc=%s\n", m.UploadedAt.UTC().Format(time.RFC3339))
	return []byte(b.String())
}

// StoredFileName returns the fixed name the uploaded file is stored under,
// e.g. "input.pdf".
func StoredFileName(ext string) string {
	return StoredFileBase + strings.ToLower(ext)
}
