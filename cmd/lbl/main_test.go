package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// execute runs the root command with args. Flag values from earlier runs are reset.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	assert.NilError(t, os.MkdirAll(filepath.Dir(path), 0755))
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExportAndVerify(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(src, "a.jpg"), "pixels")
	writeFile(t, filepath.Join(src, "b.jpg"), "more pixels")
	writeFile(t, filepath.Join(out, "red", "a.jpg"), "pixels")

	common := []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--source", src,
		"--output", out,
		"--categories", "red,blue",
		"--journal=",
	}

	output, err := execute(t, append(common, "export")...)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(output, "Exported 1 of 2 images"))

	html, err := os.ReadFile(filepath.Join(out, "index.html"))
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(html), `src="red/a.jpg"`))

	output, err = execute(t, append(common, "verify")...)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(output, "All 1 copies OK"))

	writeFile(t, filepath.Join(out, "blue", "a.jpg"), "pixels")
	output, err = execute(t, append(common, "verify")...)
	assert.ErrorContains(t, err, "1 problems found")
	assert.Check(t, is.Contains(output, "duplicate"))
}

func TestExport_InvalidSource(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t,
		"--config", filepath.Join(dir, "missing.yaml"),
		"--source", filepath.Join(dir, "nope"),
		"--output", dir,
		"--categories", "red",
		"--journal=",
		"export",
	)
	assert.ErrorContains(t, err, "invalid path")
}

func TestVersion(t *testing.T) {
	output, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.NilError(t, err)
	assert.Equal(t, output, "lbl dev\n")
}
