package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pdfintake/upload-service/internal/domain"
)

// localStore implements Store on a local directory tree. Each record lands
// in <root>/<id>/ with deterministic filenames.
type localStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and returns a
// filesystem-backed Store.
func NewLocalStore(root string) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root %q: %w", root, err)
	}
	return &localStore{root: root}, nil
}

func (s *localStore) Persist(_ context.Context, id, ext string, file io.Reader, meta []byte) (*Locator, error) {
	folder := filepath.Join(s.root, id)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}

	pdfPath := filepath.Join(folder, domain.StoredFileName(ext))
	out, err := os.Create(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", pdfPath, err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return nil, fmt.Errorf("write %s: %w", pdfPath, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", pdfPath, err)
	}

	metaPath := filepath.Join(folder, domain.MetaFileName)
	if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", metaPath, err)
	}

	return &Locator{
		Mode:     ModeLocal,
		Folder:   folder,
		PDFPath:  pdfPath,
		MetaPath: metaPath,
	}, nil
}

func (s *localStore) Mode() string { return ModeLocal }

func (s *localStore) Bucket() string { return "" }
