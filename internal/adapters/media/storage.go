package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"yatube/internal/core/apperr"

	"github.com/gofrs/uuid"
)

const uploadDir = "posts"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// FileStorage writes uploads under Root. Stored names are random so client
// filenames never reach the filesystem.
type FileStorage struct {
	Root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{Root: root}
}

// Save stores an image and returns its path relative to Root, e.g. posts/<uuid>.png.
func (s *FileStorage) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return "", apperr.Invalid("image", "upload a valid image, the file you uploaded was either not an image or a corrupted image")
	}

	dir := filepath.Join(s.Root, uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.Must(uuid.NewV4()).String() + ext
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err == nil && n == 0 {
		err = apperr.Invalid("image", "the submitted file is empty")
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	return path.Join(uploadDir, name), nil
}

// Remove deletes an image returned by Save. Paths outside the upload dir are
// rejected and a missing file is not an error.
func (s *FileStorage) Remove(_ context.Context, rel string) error {
	clean := path.Clean(rel)
	if path.Dir(clean) != uploadDir {
		return fmt.Errorf("not a stored image: %q", rel)
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
