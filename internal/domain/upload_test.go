package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadataEncode(t *testing.T) {
	uploadedAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	meta := Metadata{
		ID:               "123e4567-e89b-12d3-a456-426614174000",
		Name:             "Jane",
		Email:            "jane@x.com",
		Company:          "Acme",
		OriginalFilename: "report.pdf",
		UploadedAt:       uploadedAt,
	}

	lines := strings.Split(strings.TrimRight(string(meta.Encode()), "\n"), "\n")
	assert.Equal(t, []string{
		"id=123e4567-e89b-12d3-a456-426614174000",
		"name=Jane",
		"email=jane@x.com",
		"company=Acme",
		"original_filename=report.pdf",
		"uploaded_at_utc=2025-03-14T09:26:53Z",
	}, lines)
}

func TestMetadataEncodeEmptyCompany(t *testing.T) {
	meta := NewMetadata("id-1", Submission{Name: "Jane", Email: "jane@x.com"}, time.Now())
	assert.Contains(t, string(meta.Encode()), "company=\n")
}

func TestMetadataEncodeConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	meta := Metadata{UploadedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, loc)}
	assert.Contains(t, string(meta.Encode()), "uploaded_at_utc=2025-01-01T09:00:00Z")
}

func TestStoredFileName(t *testing.T) {
	assert.Equal(t, "input.pdf", StoredFileName(".pdf"))
	assert.Equal(t, "input.pdf", StoredFileName(".PDF"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"My Report 2025.pdf", "My_Report_2025.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\windows\\system32\\evil.pdf", "evil.pdf"},
		{"uploads/abc/../x.pdf", "x.pdf"},
		{"répört.pdf", "r_p_rt.pdf"},
		{"...", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestAllowedExtension(t *testing.T) {
	ext, ok := AllowedExtension("report.pdf")
	assert.True(t, ok)
	assert.Equal(t, ".pdf", ext)

	ext, ok = AllowedExtension("REPORT.PDF")
	assert.True(t, ok)
	assert.Equal(t, ".pdf", ext)

	_, ok = AllowedExtension("image.png")
	assert.False(t, ok)

	_, ok = AllowedExtension("noextension")
	assert.False(t, ok)
}
