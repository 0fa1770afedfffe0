package labeler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// copyFile copies src to dst, creating dst's directory and truncating dst if present.
func copyFile(fs afero.Fs, src, dst string) error {
	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrIO, filepath.Dir(dst), err)
	}

	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, src, err)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: copy %s -> %s: %w", ErrIO, src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, dst, err)
	}
	return nil
}

// removeIfExists deletes path, treating a missing file as success.
// Returns whether a file was removed.
func removeIfExists(fs afero.Fs, path string) (bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if !exists {
		return false, nil
	}
	if err := fs.Remove(path); err != nil {
		return false, fmt.Errorf("%w: remove %s: %w", ErrIO, path, err)
	}
	return true, nil
}
