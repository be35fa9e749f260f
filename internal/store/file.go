package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/simcop2387/usgromana/internal/utils"
)

// watchedFile remembers the digest of the last content parsed from path.
// Callers hold their own lock around it.
type watchedFile struct {
	path string
	hash string
}

// read returns the current content of the file and whether it differs from
// the last content marked as seen. A missing file reads as empty and counts
// as changed only once.
func (f *watchedFile) read() (data []byte, changed bool, err error) {
	data, sum, err := utils.ReadFileWithHash(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		data, sum, err = nil, "missing", nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, sum != f.hash, nil
}

func (f *watchedFile) markSeen(data []byte) {
	if data == nil {
		f.hash = "missing"
		return
	}
	f.hash = utils.SHA256Hex(data)
}

// write atomically replaces the file with data and marks it as seen so the
// next read does not reparse our own write.
func (f *watchedFile) write(data []byte) error {
	if err := writeFileAtomic(f.path, data, 0o600); err != nil {
		return err
	}
	f.markSeen(data)
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	return nil
}
