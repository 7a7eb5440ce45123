package storage

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Storage persists downloaded book payloads on disk.
type Storage interface {
	SaveText(id int, title string, body []byte) (string, error)
	SaveCover(coverURL string, body []byte) (string, error)
}

type fileStorage struct {
	booksDir  string
	imagesDir string
	log       log.FieldLogger
}

// NewFileStorage creates both output directories if they are missing and
// returns a Storage writing into them.
func NewFileStorage(booksDir, imagesDir string, logger log.FieldLogger) (Storage, error) {
	for _, dir := range []string{booksDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	return &fileStorage{
		booksDir:  booksDir,
		imagesDir: imagesDir,
		log:       logger,
	}, nil
}

// SaveText writes the book text as "{id}. {title}.txt", replacing any
// earlier file for the same identifier. The title goes into the filename
// verbatim; known limitation: filesystem-unsafe characters in titles are not
// sanitized.
func (s *fileStorage) SaveText(id int, title string, body []byte) (string, error) {
	filename := filepath.Join(s.booksDir, fmt.Sprintf("%d. %s.txt", id, title))
	if err := os.WriteFile(filename, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write book text: %w", err)
	}

	s.log.Debugf("wrote %d bytes to %s", len(body), filename)
	return filename, nil
}

// SaveCover names the image after the last path segment of the cover URL.
func (s *fileStorage) SaveCover(coverURL string, body []byte) (string, error) {
	u, err := url.Parse(coverURL)
	if err != nil {
		return "", fmt.Errorf("unusable cover URL %s: %w", coverURL, err)
	}

	filename := filepath.Join(s.imagesDir, path.Base(u.Path))
	if err := os.WriteFile(filename, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cover image: %w", err)
	}

	s.log.Debugf("wrote %d bytes to %s", len(body), filename)
	return filename, nil
}
