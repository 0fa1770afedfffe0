package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nikbrunner/lbl/internal/model"
	"github.com/spf13/afero"
)

var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrEmptyDirectory = errors.New("no supported images in directory")
)

// supportedExts is the set of image extensions picked up by Enumerate (lowercase).
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsSupported reports whether the file name has a supported image extension.
func IsSupported(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// Enumerate lists supported image files directly inside dir, sorted by name.
func Enumerate(fs afero.Fs, dir string) ([]model.ImageRef, error) {
	if err := requireDir(fs, dir); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, dir, err)
	}

	var images []model.ImageRef
	for _, e := range entries {
		if !IsSupported(e.Name()) || !isImageFile(fs, dir, e) {
			continue
		}
		images = append(images, model.ImageRef{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, dir)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Name < images[j].Name
	})

	return images, nil
}

// isImageFile reports whether e is a regular file or a symlink to one.
func isImageFile(fs afero.Fs, dir string, e os.FileInfo) bool {
	if e.Mode()&os.ModeSymlink == 0 {
		return e.Mode().IsRegular()
	}
	target, err := fs.Stat(filepath.Join(dir, e.Name()))
	return err == nil && target.Mode().IsRegular()
}

// LoadClassifications rebuilds the store from outputDir/<category>/<image> files.
// Categories are visited in declaration order; when the same file name exists
// under several categories the first one wins.
func LoadClassifications(fs afero.Fs, outputDir string, categories *model.Registry, images []model.ImageRef) (*model.Store, error) {
	if err := requireDir(fs, outputDir); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(images))
	for _, img := range images {
		known[img.Name] = true
	}

	store := model.NewStore()
	for _, c := range categories.All() {
		dir := filepath.Join(outputDir, c.Name)
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, dir, err)
		}

		for _, e := range entries {
			if e.IsDir() || !known[e.Name()] {
				continue
			}
			if _, taken := store.Get(e.Name()); taken {
				continue
			}
			store.Set(e.Name(), c.Name)
		}
	}

	return store, nil
}

// requireDir returns ErrInvalidPath unless path is an existing directory.
func requireDir(fs afero.Fs, path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPath, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, path)
	}
	return nil
}
