package audit_test

import (
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/nikbrunner/lbl/internal/audit"
	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const (
	src = "/photos"
	out = "/sorted"
)

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	assert.NilError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	assert.NilError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func byImage(results []audit.Result) map[string]audit.Result {
	m := make(map[string]audit.Result, len(results))
	for _, r := range results {
		m[r.Image] = r
	}
	return m
}

func TestCheck_Statuses(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"ok.jpg", "gone.jpg", "moved.jpg", "twice.jpg", "edited.jpg", "loose.jpg"} {
		write(t, fs, filepath.Join(src, name), "pixels")
	}
	write(t, fs, filepath.Join(out, "red", "ok.jpg"), "pixels")
	write(t, fs, filepath.Join(out, "blue", "moved.jpg"), "pixels")
	write(t, fs, filepath.Join(out, "red", "twice.jpg"), "pixels")
	write(t, fs, filepath.Join(out, "blue", "twice.jpg"), "pixels")
	write(t, fs, filepath.Join(out, "red", "edited.jpg"), "pixels, cropped")
	write(t, fs, filepath.Join(out, "blue", "loose.jpg"), "pixels")
	write(t, fs, filepath.Join(out, "red", "notes.txt"), "ignored")

	results, err := audit.Check(audit.Params{
		Fs:         fs,
		SourceDir:  src,
		OutputDir:  out,
		Categories: []string{"red", "blue"},
		Labels: map[string]string{
			"ok.jpg":     "red",
			"gone.jpg":   "red",
			"moved.jpg":  "red",
			"twice.jpg":  "red",
			"edited.jpg": "red",
		},
	})
	assert.NilError(t, err)

	got := byImage(results)
	tests := []struct {
		image string
		want  audit.Status
	}{
		{"ok.jpg", audit.OK},
		{"gone.jpg", audit.Missing},
		{"moved.jpg", audit.Stray},
		{"twice.jpg", audit.Duplicate},
		{"edited.jpg", audit.Stale},
		{"loose.jpg", audit.Stray},
	}
	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			r, ok := got[tt.image]
			assert.Assert(t, ok, "no result for %s", tt.image)
			assert.Check(t, is.Equal(r.Status, tt.want), r.Detail)
		})
	}

	assert.Equal(t, len(results), 6)
	assert.DeepEqual(t, got["twice.jpg"].Found, []string{"red", "blue"})
	assert.Equal(t, len(audit.Problems(results)), 5)
}

func TestCheck_ResultsSortedAndProgress(t *testing.T) {
	fs := afero.NewMemMapFs()
	labels := map[string]string{}
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		write(t, fs, filepath.Join(src, name), name)
		write(t, fs, filepath.Join(out, "keep", name), name)
		labels[name] = "keep"
	}

	var calls atomic.Int32
	results, err := audit.Check(audit.Params{
		Fs:          fs,
		SourceDir:   src,
		OutputDir:   out,
		Categories:  []string{"keep"},
		Labels:      labels,
		Concurrency: 2,
		OnProgress: func(completed, total int) {
			calls.Add(1)
			assert.Check(t, is.Equal(total, 3))
		},
	})
	assert.NilError(t, err)

	assert.Equal(t, int(calls.Load()), 3)
	names := []string{results[0].Image, results[1].Image, results[2].Image}
	assert.DeepEqual(t, names, []string{"a.png", "b.png", "c.png"})
	assert.DeepEqual(t, audit.Summarize(results), map[audit.Status]int{audit.OK: 3})
}

func TestCheck_NothingToVerify(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NilError(t, fs.MkdirAll(out, 0755))

	results, err := audit.Check(audit.Params{Fs: fs, OutputDir: out, Categories: []string{"red"}})
	assert.NilError(t, err)
	assert.Equal(t, len(results), 0)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, audit.Duplicate.String(), "duplicate")
	assert.Equal(t, audit.Status(42).String(), "Status(42)")
}
