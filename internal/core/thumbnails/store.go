package thumbnails

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// subdir is the directory under the media root holding thumbnails
const subdir = "thumbnails"

// Store persists post thumbnails and hands back their public URL
type Store interface {
	// Save processes an uploaded image and stores it, returning its public URL
	Save(ctx context.Context, data []byte) (string, error)

	// Delete removes a previously saved thumbnail by URL. Missing files are not an error.
	Delete(ctx context.Context, url string) error
}

// DiskStore implements Store on the local filesystem.
// Layout: {dir}/thumbnails/{uuid}.jpg, served at {baseURL}/thumbnails/{uuid}.jpg
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates a DiskStore rooted at dir, creating the thumbnail directory
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if dir == "" {
		return nil, errors.New("media directory cannot be empty")
	}
	if err := os.MkdirAll(filepath.Join(dir, subdir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *DiskStore) Save(ctx context.Context, data []byte) (string, error) {
	encoded, err := process(data)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ".jpg"
	dest := filepath.Join(s.dir, subdir, name)

	// Write to a temp file and rename so readers never see a partial image
	tmpPath := dest + ".tmp"
	if err := os.WriteFile(tmpPath, encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to store thumbnail: %w", err)
	}

	url := s.baseURL + "/" + path.Join(subdir, name)
	slog.Debug("thumbnail stored", slog.String("url", url), slog.Int("bytes", len(encoded)))
	return url, nil
}

func (s *DiskStore) Delete(ctx context.Context, url string) error {
	name, err := s.fileName(url)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, subdir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}
	return nil
}

// fileName extracts the stored file name from a URL, accepting only names Save produces
func (s *DiskStore) fileName(url string) (string, error) {
	prefix := s.baseURL + "/" + subdir + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", ErrInvalidPath
	}

	name := strings.TrimPrefix(url, prefix)
	id, ok := strings.CutSuffix(name, ".jpg")
	if !ok {
		return "", ErrInvalidPath
	}
	if _, err := uuid.Parse(id); err != nil || strings.ContainsAny(id, `/\`) {
		return "", ErrInvalidPath
	}
	return name, nil
}
