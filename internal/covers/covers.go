// Package covers stores uploaded book cover images on local disk and hands
// back the relative path that gets persisted on the book.
package covers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shelfmark/catalog-service/internal/config"
)

// allowedExtensions is the whitelist of accepted cover image extensions.
// Anything else is stored with the default extension.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

const defaultExtension = ".jpg"

// Store writes cover images into a directory on local disk. Stored files get
// generated names so uploads can never collide or traverse paths.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates a cover store rooted at cfg.Dir, creating the directory
// if needed.
func NewStore(cfg config.CoversConfig, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create covers directory: %w", err)
	}

	return &Store{
		dir:    cfg.Dir,
		logger: logger.With().Str("component", "cover_store").Logger(),
	}, nil
}

// Save writes the cover image to disk under a generated name, keeping the
// upload's extension when it is on the whitelist. It returns the relative
// path to persist on the book, of the form "covers/<name><ext>".
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		ext = defaultExtension
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to close cover file: %w", err)
	}

	s.logger.Debug().Str("file", name).Msg("cover stored")

	return "covers/" + name, nil
}

// Remove deletes a previously stored cover by the relative path Save
// returned. A missing file is not an error.
func (s *Store) Remove(relPath string) error {
	name := filepath.Base(relPath)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cover file: %w", err)
	}

	return nil
}
