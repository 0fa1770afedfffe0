package imageinfo

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes an image file for the details pane.
type Info struct {
	Size    int64
	Width   int
	Height  int
	Format  string     // decoder name, "" when the header could not be read
	TakenAt *time.Time // EXIF capture time, nil when absent
}

// Describe reads size, dimensions and EXIF capture time of the file at path.
// Header decode failures are not errors; only an unreadable file is.
func Describe(fs afero.Fs, path string) (Info, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Info{}, err
	}
	info := Info{Size: stat.Size()}

	if cfg, format, err := image.DecodeConfig(f); err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
		info.Format = format
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, nil
	}
	if x, err := exif.Decode(f); err == nil {
		if t, err := x.DateTime(); err == nil {
			info.TakenAt = &t
		}
	}

	return info, nil
}

// Dimensions formats width x height, or "?" when unknown.
func (i Info) Dimensions() string {
	if i.Width == 0 || i.Height == 0 {
		return "?"
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// HumanSize formats the file size with a binary unit.
func (i Info) HumanSize() string {
	const unit = 1024
	if i.Size < unit {
		return fmt.Sprintf("%d B", i.Size)
	}
	div, exp := int64(unit), 0
	for n := i.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(i.Size)/float64(div), "KMGTPE"[exp])
}
