package imageinfo_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nikbrunner/lbl/internal/imageinfo"
	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
)

func writePNG(t *testing.T, fs afero.Fs, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	assert.NilError(t, png.Encode(&buf, img))
	assert.NilError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
}

func TestDescribe_PNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePNG(t, fs, "/src/a.png", 40, 30)

	info, err := imageinfo.Describe(fs, "/src/a.png")
	assert.NilError(t, err)

	assert.Equal(t, info.Format, "png")
	assert.Equal(t, info.Dimensions(), "40x30")
	assert.Assert(t, info.Size > 0)
	assert.Assert(t, info.TakenAt == nil, "png has no EXIF")
}

func TestDescribe_NotAnImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NilError(t, afero.WriteFile(fs, "/src/broken.jpg", []byte("not really a jpeg"), 0644))

	info, err := imageinfo.Describe(fs, "/src/broken.jpg")
	assert.NilError(t, err)
	assert.Equal(t, info.Format, "")
	assert.Equal(t, info.Dimensions(), "?")
	assert.Equal(t, info.Size, int64(17))
}

func TestDescribe_Missing(t *testing.T) {
	_, err := imageinfo.Describe(afero.NewMemMapFs(), "/nope.jpg")
	assert.Assert(t, err != nil)
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, imageinfo.Info{Size: tt.size}.HumanSize(), tt.want)
		})
	}
}
