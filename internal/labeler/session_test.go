package labeler_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/lbl/internal/labeler"
	"github.com/nikbrunner/lbl/internal/model"
	"github.com/nikbrunner/lbl/internal/storage"
	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
)

// memJournal is an in-memory storage.Journal for tests.
type memJournal struct {
	entries   []storage.Entry
	positions map[string]int
	failWith  error
}

func (j *memJournal) Record(e storage.Entry) error {
	if j.failWith != nil {
		return j.failWith
	}
	j.entries = append(j.entries, e)
	return nil
}

func (j *memJournal) SavePosition(dir string, idx int) error {
	if j.positions == nil {
		j.positions = map[string]int{}
	}
	j.positions[dir] = idx
	return nil
}

func (j *memJournal) LastPosition(dir string) (int, bool, error) {
	idx, ok := j.positions[dir]
	return idx, ok, nil
}

func (j *memJournal) Close() error { return nil }

func newFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("content of "+filepath.Base(f)), 0644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
	if err := fs.MkdirAll("/out", 0755); err != nil {
		t.Fatalf("mkdir /out: %v", err)
	}
	return fs
}

func openSession(t *testing.T, fs afero.Fs, categories ...string) *labeler.Session {
	t.Helper()
	s, err := labeler.Open(labeler.Params{
		Fs:         fs,
		SourceDir:  "/src",
		OutputDir:  "/out",
		Categories: categories,
	})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}
	return s
}

// outputTree returns every file under /out with its content.
func outputTree(t *testing.T, fs afero.Fs) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := afero.Walk(fs, "/out", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		tree[path] = string(data)
		return nil
	})
	assert.NilError(t, err)
	return tree
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	assert.NilError(t, err)
	return ok
}

func image(t *testing.T, s *labeler.Session, name string) model.ImageRef {
	t.Helper()
	idx, ok := s.IndexOf(name)
	if !ok {
		t.Fatalf("image %s not in session", name)
	}
	img, _ := s.ImageAt(idx)
	return img
}

func TestClassify_ReclassifyAndUndoScenario(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg")
	s := openSession(t, fs, "red", "blue")
	a := image(t, s, "a.jpg")

	assert.NilError(t, s.Classify(a, "red"))
	assert.Assert(t, exists(t, fs, "/out/red/a.jpg"))
	got, _ := s.CategoryOf(a)
	assert.Equal(t, got, "red")

	assert.NilError(t, s.Classify(a, "blue"))
	assert.Assert(t, !exists(t, fs, "/out/red/a.jpg"), "red copy should be removed")
	assert.Assert(t, exists(t, fs, "/out/blue/a.jpg"))
	got, _ = s.CategoryOf(a)
	assert.Equal(t, got, "blue")

	undone, err := s.Undo()
	assert.NilError(t, err)
	assert.Equal(t, undone.Name, "a.jpg")
	assert.Assert(t, !exists(t, fs, "/out/blue/a.jpg"), "blue copy should be removed")
	assert.Assert(t, exists(t, fs, "/out/red/a.jpg"), "red copy should be recreated")
	got, _ = s.CategoryOf(a)
	assert.Equal(t, got, "red")

	data, err := afero.ReadFile(fs, "/out/red/a.jpg")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "content of a.jpg")
}

func TestUndo_NothingToUndo(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/out/red/b.jpg")
	s := openSession(t, fs, "red")
	before := outputTree(t, fs)

	_, err := s.Undo()
	assert.ErrorIs(t, err, labeler.ErrNothingToUndo)
	assert.DeepEqual(t, outputTree(t, fs), before)

	_, ok := s.Pending()
	assert.Assert(t, !ok)
}

func TestClassifyThenUndo_RestoresPriorState(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		target   string
		wantPrev string
	}{
		{"from unclassified", []string{"/src/a.jpg"}, "red", ""},
		{"from other category", []string{"/src/a.jpg", "/out/blue/a.jpg"}, "red", "blue"},
		{"into same category", []string{"/src/a.jpg", "/out/red/a.jpg"}, "red", "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, tt.files...)
			s := openSession(t, fs, "red", "blue")
			a := image(t, s, "a.jpg")

			beforeTree := outputTree(t, fs)
			beforeLabels := s.Labels()

			assert.NilError(t, s.Classify(a, tt.target))
			p, ok := s.Pending()
			assert.Assert(t, ok)
			assert.Equal(t, p.Previous, tt.wantPrev)
			assert.Equal(t, p.TargetPath, filepath.Join("/out", tt.target, "a.jpg"))

			_, err := s.Undo()
			assert.NilError(t, err)

			assert.DeepEqual(t, s.Labels(), beforeLabels)
			assert.DeepEqual(t, outputTree(t, fs), beforeTree)
		})
	}
}

func TestUndo_DepthIsOne(t *testing.T) {
	fs := newFs(t, "/src/a.jpg")
	s := openSession(t, fs, "red", "blue", "green")
	a := image(t, s, "a.jpg")

	assert.NilError(t, s.Classify(a, "red"))
	assert.NilError(t, s.Classify(a, "blue"))

	_, err := s.Undo()
	assert.NilError(t, err)

	got, ok := s.CategoryOf(a)
	assert.Assert(t, ok)
	assert.Equal(t, got, "red", "only the second classification is reverted")
	assert.Assert(t, exists(t, fs, "/out/red/a.jpg"))

	_, err = s.Undo()
	assert.ErrorIs(t, err, labeler.ErrNothingToUndo)

	got, _ = s.CategoryOf(a)
	assert.Equal(t, got, "red")
}

func TestUndo_OnlyLatestImage(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg")
	s := openSession(t, fs, "red", "blue")

	assert.NilError(t, s.Classify(image(t, s, "a.jpg"), "red"))
	assert.NilError(t, s.Classify(image(t, s, "b.jpg"), "blue"))

	undone, err := s.Undo()
	assert.NilError(t, err)
	assert.Equal(t, undone.Name, "b.jpg")

	assert.DeepEqual(t, s.Labels(), map[string]string{"a.jpg": "red"})
	assert.Assert(t, !exists(t, fs, "/out/blue/b.jpg"))
}

func TestUndo_MovesCursorToImage(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg", "/src/c.jpg")
	s := openSession(t, fs, "red")

	assert.NilError(t, s.ClassifyCurrent("red"))
	s.Advance()
	s.Advance()
	assert.Equal(t, s.Index(), 2)

	_, err := s.Undo()
	assert.NilError(t, err)
	assert.Equal(t, s.Index(), 0)
	assert.Equal(t, s.Current().Name, "a.jpg")
}

func TestClassify_AtMostOneCopy(t *testing.T) {
	files := []string{"/src/a.jpg", "/src/b.jpg", "/src/c.jpg", "/src/d.png"}
	categories := []string{"red", "blue", "green"}
	fs := newFs(t, files...)
	s := openSession(t, fs, categories...)

	rng := rand.New(rand.NewSource(42))
	images := s.Images()

	for step := 0; step < 200; step++ {
		img := images[rng.Intn(len(images))]
		if rng.Intn(5) == 0 {
			_, err := s.Undo()
			if err != nil && !errors.Is(err, labeler.ErrNothingToUndo) {
				t.Fatalf("step %d: undo: %v", step, err)
			}
		} else {
			cat := categories[rng.Intn(len(categories))]
			if err := s.Classify(img, cat); err != nil {
				t.Fatalf("step %d: classify %s -> %s: %v", step, img.Name, cat, err)
			}
		}

		labels := s.Labels()
		for _, img := range images {
			var found []string
			for _, cat := range categories {
				if exists(t, fs, filepath.Join("/out", cat, img.Name)) {
					found = append(found, cat)
				}
			}
			if len(found) > 1 {
				t.Fatalf("step %d: %s has copies in %v", step, img.Name, found)
			}
			want, ok := labels[img.Name]
			if ok && (len(found) != 1 || found[0] != want) {
				t.Fatalf("step %d: %s labeled %q but copies in %v", step, img.Name, want, found)
			}
			if !ok && len(found) != 0 {
				t.Fatalf("step %d: %s unlabeled but copies in %v", step, img.Name, found)
			}
		}
	}
}

func TestClassify_Rejects(t *testing.T) {
	fs := newFs(t, "/src/a.jpg")
	s := openSession(t, fs, "red")

	err := s.Classify(image(t, s, "a.jpg"), "purple")
	assert.ErrorIs(t, err, labeler.ErrUnknownCategory)

	err = s.Classify(model.ImageRef{Name: "ghost.jpg", Path: "/src/ghost.jpg"}, "red")
	assert.ErrorIs(t, err, labeler.ErrUnknownImage)

	_, ok := s.Pending()
	assert.Assert(t, !ok)
	assert.Equal(t, s.Classified(), 0)
}

func TestClassify_IOErrorLeavesStoreUntouched(t *testing.T) {
	base := newFs(t, "/src/a.jpg")
	s := openSession(t, afero.NewReadOnlyFs(base), "red")

	err := s.Classify(image(t, s, "a.jpg"), "red")
	assert.ErrorIs(t, err, labeler.ErrIO)

	_, ok := s.CategoryOf(image(t, s, "a.jpg"))
	assert.Assert(t, !ok)
	_, err = s.Undo()
	assert.ErrorIs(t, err, labeler.ErrNothingToUndo)
}

func TestClassify_IOErrorOnDeleteIsSurfaced(t *testing.T) {
	base := newFs(t, "/src/a.jpg", "/out/red/a.jpg")
	s := openSession(t, afero.NewReadOnlyFs(base), "red", "blue")

	err := s.Classify(image(t, s, "a.jpg"), "blue")
	assert.ErrorIs(t, err, labeler.ErrIO)
	assert.Assert(t, strings.Contains(err.Error(), "remove"))
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		categories []string
		output     string
		wantErr    error
	}{
		{"missing source", nil, []string{"red"}, "/out", labeler.ErrInvalidPath},
		{"no images", []string{"/src/readme.txt"}, []string{"red"}, "/out", labeler.ErrEmptyDirectory},
		{"missing output", []string{"/src/a.jpg"}, []string{"red"}, "/missing", labeler.ErrInvalidPath},
		{"bad category", []string{"/src/a.jpg"}, []string{"a/b"}, "/out", model.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, tt.files...)
			_, err := labeler.Open(labeler.Params{
				Fs:         fs,
				SourceDir:  "/src",
				OutputDir:  tt.output,
				Categories: tt.categories,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpen_CreateOutput(t *testing.T) {
	fs := newFs(t, "/src/a.jpg")
	s, err := labeler.Open(labeler.Params{
		Fs:           fs,
		SourceDir:    "/src",
		OutputDir:    "/new/out",
		Categories:   []string{"red"},
		CreateOutput: true,
	})
	assert.NilError(t, err)
	assert.Assert(t, exists(t, fs, "/new/out"))
	assert.NilError(t, s.ClassifyCurrent("red"))
	assert.Assert(t, exists(t, fs, "/new/out/red/a.jpg"))
}

func TestOpen_LoadsExistingClassifications(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg", "/out/blue/b.jpg")
	s := openSession(t, fs, "red", "blue")

	assert.DeepEqual(t, s.Labels(), map[string]string{"b.jpg": "blue"})
	assert.DeepEqual(t, s.Counts(), map[string]int{"blue": 1})

	// Reclassifying a loaded image removes the loaded copy
	assert.NilError(t, s.Classify(image(t, s, "b.jpg"), "red"))
	assert.Assert(t, !exists(t, fs, "/out/blue/b.jpg"))
	assert.Assert(t, exists(t, fs, "/out/red/b.jpg"))
}

func TestOpen_StartAndResume(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg", "/src/c.jpg")
	journal := &memJournal{positions: map[string]int{"/src": 1}}

	s, err := labeler.Open(labeler.Params{Fs: fs, SourceDir: "/src", OutputDir: "/out", StartIndex: 9})
	assert.NilError(t, err)
	assert.Equal(t, s.Index(), 2, "start index is clamped")

	s, err = labeler.Open(labeler.Params{Fs: fs, SourceDir: "/src", OutputDir: "/out", Resume: true, Journal: journal})
	assert.NilError(t, err)
	assert.Equal(t, s.Index(), 1)

	s.Advance()
	assert.NilError(t, s.SavePosition())
	assert.Equal(t, journal.positions["/src"], 2)
}

func TestNavigation_Clamps(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg")
	s := openSession(t, fs, "red")

	assert.Assert(t, !s.Retreat())
	assert.Equal(t, s.Index(), 0)

	assert.Assert(t, s.Advance())
	assert.Assert(t, s.AtEnd())
	assert.Assert(t, !s.Advance())
	assert.Equal(t, s.Index(), 1)

	s.JumpTo(-3)
	assert.Equal(t, s.Index(), 0)
	s.JumpTo(100)
	assert.Equal(t, s.Index(), 1)
}

func TestAddCategory(t *testing.T) {
	fs := newFs(t, "/src/a.jpg")
	s := openSession(t, fs, "red")

	c, err := s.AddCategory("blue")
	assert.NilError(t, err)
	assert.Equal(t, c.ID, 1)
	assert.DeepEqual(t, s.CategoryNames(), []string{"red", "blue"})

	_, err = s.AddCategory("red")
	assert.ErrorIs(t, err, model.ErrDuplicateCategory)

	assert.NilError(t, s.ClassifyCurrent("blue"))
	assert.Assert(t, exists(t, fs, "/out/blue/a.jpg"))
}

func TestJournal_RecordsActions(t *testing.T) {
	fs := newFs(t, "/src/a.jpg")
	journal := &memJournal{}
	s, err := labeler.Open(labeler.Params{
		Fs: fs, SourceDir: "/src", OutputDir: "/out",
		Categories: []string{"red", "blue"}, Journal: journal,
	})
	assert.NilError(t, err)

	assert.NilError(t, s.ClassifyCurrent("red"))
	assert.NilError(t, s.ClassifyCurrent("blue"))
	_, err = s.Undo()
	assert.NilError(t, err)

	assert.Equal(t, len(journal.entries), 3)
	last := journal.entries[2]
	assert.Equal(t, last.Action, storage.ActionUndo)
	assert.Equal(t, last.Category, "blue")
	assert.Equal(t, last.Previous, "red")
	assert.Equal(t, last.SessionID, s.ID())
}

func TestJournal_FailureDoesNotFailClassify(t *testing.T) {
	fs := newFs(t, "/src/a.jpg")
	journal := &memJournal{failWith: errors.New("disk full")}
	s, err := labeler.Open(labeler.Params{
		Fs: fs, SourceDir: "/src", OutputDir: "/out",
		Categories: []string{"red"}, Journal: journal,
	})
	assert.NilError(t, err)

	assert.NilError(t, s.ClassifyCurrent("red"))
	got, _ := s.CategoryOf(s.Current())
	assert.Equal(t, got, "red")
}

func TestProgressAndClose(t *testing.T) {
	fs := newFs(t, "/src/a.jpg", "/src/b.jpg", "/src/c.jpg")
	journal := &memJournal{}
	s, err := labeler.Open(labeler.Params{
		Fs: fs, SourceDir: "/src", OutputDir: "/out",
		Categories: []string{"red"}, Journal: journal,
	})
	assert.NilError(t, err)

	assert.NilError(t, s.ClassifyCurrent("red"))
	s.Advance()

	classified, total := s.Progress()
	assert.Equal(t, classified, 1)
	assert.Equal(t, total, 3)
	assert.Equal(t, s.Cursor().Index(), 1)

	assert.NilError(t, s.Close())
	assert.Equal(t, journal.positions["/src"], 1)
}
