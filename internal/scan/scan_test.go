package scan_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/lbl/internal/model"
	"github.com/nikbrunner/lbl/internal/scan"
	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
)

func writeFiles(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := afero.WriteFile(fs, p, []byte("data:"+p), 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func names(images []model.ImageRef) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.Name
	}
	return out
}

func TestEnumerate_FiltersAndSorts(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/src/c.PNG",
		"/src/a.jpg",
		"/src/notes.txt",
		"/src/b.JpEg",
		"/src/.hidden",
		"/src/nested/d.jpg",
	)

	images, err := scan.Enumerate(fs, "/src")
	assert.NilError(t, err)
	assert.DeepEqual(t, names(images), []string{"a.jpg", "b.JpEg", "c.PNG"})
	assert.Equal(t, images[0].Path, filepath.Join("/src", "a.jpg"))
}

func TestEnumerate_OsFsFollowsSymlinks(t *testing.T) {
	library := t.TempDir()
	src := t.TempDir()

	target := filepath.Join(library, "original.jpg")
	assert.NilError(t, os.WriteFile(target, []byte("jpeg"), 0644))
	assert.NilError(t, os.WriteFile(filepath.Join(src, "b.png"), []byte("png"), 0644))
	if err := os.Symlink(target, filepath.Join(src, "a.jpg")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	assert.NilError(t, os.Symlink(filepath.Join(library, "gone.jpg"), filepath.Join(src, "dangling.jpg")))
	assert.NilError(t, os.Mkdir(filepath.Join(src, "album.jpg"), 0755))

	images, err := scan.Enumerate(afero.NewOsFs(), src)
	assert.NilError(t, err)
	assert.DeepEqual(t, names(images), []string{"a.jpg", "b.png"})
	assert.Equal(t, images[0].Path, filepath.Join(src, "a.jpg"))
}

func TestEnumerate_OsFsOnlySymlinks(t *testing.T) {
	library := t.TempDir()
	src := t.TempDir()

	target := filepath.Join(library, "a.jpg")
	assert.NilError(t, os.WriteFile(target, []byte("jpeg"), 0644))
	if err := os.Symlink(target, filepath.Join(src, "a.jpg")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	images, err := scan.Enumerate(afero.NewOsFs(), src)
	assert.NilError(t, err)
	assert.DeepEqual(t, names(images), []string{"a.jpg"})
}

func TestEnumerate_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/only-text/readme.txt", "/file.jpg")
	assert.NilError(t, fs.MkdirAll("/empty", 0755))

	tests := []struct {
		name    string
		dir     string
		wantErr error
	}{
		{"missing directory", "/nope", scan.ErrInvalidPath},
		{"path is a file", "/file.jpg", scan.ErrInvalidPath},
		{"empty path", "", scan.ErrInvalidPath},
		{"empty directory", "/empty", scan.ErrEmptyDirectory},
		{"no supported files", "/only-text", scan.ErrEmptyDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scan.Enumerate(fs, tt.dir)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Enumerate(%q) error = %v, want %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, name := range []string{"x.jpg", "x.JPEG", "x.png", "x.gif", "x.bmp", "x.tif", "x.TIFF", "x.webp"} {
		assert.Assert(t, scan.IsSupported(name), name)
	}
	for _, name := range []string{"x.txt", "x", "jpg", "x.jpg.bak"} {
		assert.Assert(t, !scan.IsSupported(name), name)
	}
}

func TestLoadClassifications(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/src/a.jpg", "/src/b.jpg", "/src/c.jpg",
		"/out/red/a.jpg",
		"/out/blue/b.jpg",
		"/out/blue/unknown.jpg", // not an enumerated image
		"/out/green/c.jpg",      // not a declared category
	)

	images, err := scan.Enumerate(fs, "/src")
	assert.NilError(t, err)
	reg, err := model.NewRegistry([]string{"red", "blue"})
	assert.NilError(t, err)

	store, err := scan.LoadClassifications(fs, "/out", reg, images)
	assert.NilError(t, err)

	assert.DeepEqual(t, store.Snapshot(), map[string]string{
		"a.jpg": "red",
		"b.jpg": "blue",
	})
}

func TestLoadClassifications_FirstDeclaredCategoryWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/src/a.jpg", "/out/blue/a.jpg", "/out/red/a.jpg")

	images, err := scan.Enumerate(fs, "/src")
	assert.NilError(t, err)
	reg, err := model.NewRegistry([]string{"blue", "red"})
	assert.NilError(t, err)

	store, err := scan.LoadClassifications(fs, "/out", reg, images)
	assert.NilError(t, err)

	got, _ := store.Get("a.jpg")
	assert.Equal(t, got, "blue")
}

func TestLoadClassifications_MissingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	reg, err := model.NewRegistry([]string{"red"})
	assert.NilError(t, err)

	_, err = scan.LoadClassifications(fs, "/out", reg, nil)
	assert.ErrorIs(t, err, scan.ErrInvalidPath)
}
