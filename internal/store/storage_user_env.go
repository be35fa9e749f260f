package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/simcop2387/usgromana/internal/logger"
)

const galleryRootFile = "gallery_root.json"

// userEnvStorage manages <usersRoot>/<username>/ folders and the gallery
// root marker stored in the output directory.
type userEnvStorage struct {
	usersRoot string
	outputDir string
	logger    *logger.Logger
}

func NewUserEnvStorage(usersRoot, outputDir string, logger *logger.Logger) UserEnvStorage {
	return &userEnvStorage{usersRoot: usersRoot, outputDir: outputDir, logger: logger}
}

// Root returns the storage root of username. The username is resolved as a
// single path element below the users root.
func (s *userEnvStorage) Root(username string) (string, error) {
	if username == "" || filepath.Base(username) != username || username == "." || username == ".." {
		return "", ErrPathTraversal
	}
	return ResolveWithinRoot(s.usersRoot, username)
}

// ListFiles returns up to limit slash-separated paths relative to the user's
// root, sorted, together with the total number of regular files.
func (s *userEnvStorage) ListFiles(ctx context.Context, username string, limit int) ([]string, int, error) {
	root, err := s.Root(username)
	if err != nil {
		return nil, 0, err
	}

	files := []string{}
	total := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		total++
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", root, err)
	}

	sort.Strings(files)
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, total, nil
}

// Purge removes everything below the user's root and recreates it empty.
func (s *userEnvStorage) Purge(ctx context.Context, username string) error {
	root, err := s.Root(username)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("purge %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("recreate %s: %w", root, err)
	}
	logger.FromContext(ctx).Info().Str("user", username).Msg("user environment purged")
	return nil
}

type galleryRoot struct {
	User string `json:"user"`
}

// GalleryRoot returns the user whose root is the shared gallery, or "".
func (s *userEnvStorage) GalleryRoot(ctx context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.outputDir, galleryRootFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var g galleryRoot
	if err := json.Unmarshal(data, &g); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCorruptFile, galleryRootFile, err)
	}
	return g.User, nil
}

// SetGalleryRoot designates username as the gallery root, or clears the
// designation when enable is false and username currently holds it.
func (s *userEnvStorage) SetGalleryRoot(ctx context.Context, username string, enable bool) error {
	if _, err := s.Root(username); err != nil {
		return err
	}
	path := filepath.Join(s.outputDir, galleryRootFile)

	if !enable {
		current, err := s.GalleryRoot(ctx)
		if err != nil || current != username {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}

	data, err := json.Marshal(galleryRoot{User: username})
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}
