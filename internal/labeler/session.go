package labeler

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/nikbrunner/lbl/internal/model"
	"github.com/nikbrunner/lbl/internal/scan"
	"github.com/nikbrunner/lbl/internal/storage"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PendingUndo is the single retained record of the most recent classify.
type PendingUndo struct {
	Image      model.ImageRef
	Category   string
	TargetPath string
	Previous   string // "" = image was unclassified
}

// Params holds parameters for opening a Session.
type Params struct {
	Fs           afero.Fs // optional, defaults to the OS filesystem
	SourceDir    string
	OutputDir    string
	Categories   []string
	StartIndex   int
	Resume       bool // start at the position stored in the journal, if any
	CreateOutput bool // create OutputDir instead of failing when it is missing
	Journal      storage.Journal
	Logger       *zap.Logger
}

// Session is the labeling state for one source/output directory pair.
// It is not safe for concurrent use.
type Session struct {
	id        string
	fs        afero.Fs
	sourceDir string
	outputDir string

	images     []model.ImageRef
	indexOf    map[string]int
	categories *model.Registry
	store      *model.Store
	cursor     model.Cursor
	pending    *PendingUndo

	journal storage.Journal
	logger  *zap.Logger
}

// Open enumerates the source directory and rebuilds classifications from the output directory.
func Open(params Params) (*Session, error) {
	fs := params.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	journal := params.Journal
	if journal == nil {
		journal = storage.NopJournal{}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	categories, err := model.NewRegistry(params.Categories)
	if err != nil {
		return nil, err
	}

	images, err := scan.Enumerate(fs, params.SourceDir)
	if err != nil {
		return nil, err
	}

	if params.CreateOutput && params.OutputDir != "" {
		if err := fs.MkdirAll(params.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPath, params.OutputDir, err)
		}
	}

	store, err := scan.LoadClassifications(fs, params.OutputDir, categories, images)
	if err != nil {
		return nil, err
	}

	indexOf := make(map[string]int, len(images))
	for i, img := range images {
		indexOf[img.Name] = i
	}

	start := params.StartIndex
	if params.Resume {
		idx, ok, err := journal.LastPosition(params.SourceDir)
		if err != nil {
			logger.Warn("reading resume position", zap.Error(err))
		} else if ok {
			start = idx
		}
	}

	s := &Session{
		id:         model.NewID(),
		fs:         fs,
		sourceDir:  params.SourceDir,
		outputDir:  params.OutputDir,
		images:     images,
		indexOf:    indexOf,
		categories: categories,
		store:      store,
		cursor:     model.NewCursor(len(images), start),
		journal:    journal,
		logger:     logger,
	}

	logger.Info("session opened",
		zap.String("session", s.id),
		zap.String("source", s.sourceDir),
		zap.String("output", s.outputDir),
		zap.Int("images", len(images)),
		zap.Int("classified", store.Len()),
		zap.Strings("categories", categories.Names()),
		zap.Int("start", s.cursor.Index()),
	)

	return s, nil
}

// Classify assigns image to category, replacing its on-disk copy.
// On ErrIO the operation may be partially applied; nothing is rolled back.
func (s *Session) Classify(image model.ImageRef, category string) error {
	if !s.categories.Has(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if _, ok := s.indexOf[image.Name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownImage, image.Name)
	}

	previous, _ := s.store.Get(image.Name)
	if previous != "" {
		if _, err := removeIfExists(s.fs, s.copyPath(previous, image.Name)); err != nil {
			s.logger.Error("removing previous copy", zap.String("image", image.Name), zap.Error(err))
			return err
		}
	}

	target := s.copyPath(category, image.Name)
	if err := copyFile(s.fs, image.Path, target); err != nil {
		s.logger.Error("copying image", zap.String("image", image.Name), zap.Error(err))
		return err
	}

	s.pending = &PendingUndo{
		Image:      image,
		Category:   category,
		TargetPath: target,
		Previous:   previous,
	}
	s.store.Set(image.Name, category)

	s.logger.Info("classified",
		zap.String("image", image.Name),
		zap.String("category", category),
		zap.String("previous", previous),
	)
	s.record(storage.ActionClassify, image.Name, category, previous)

	return nil
}

// ClassifyCurrent classifies the image under the cursor.
func (s *Session) ClassifyCurrent(category string) error {
	return s.Classify(s.Current(), category)
}

// Undo reverts the most recent classify and moves the cursor to that image.
// Only one level is kept; a second Undo returns ErrNothingToUndo.
func (s *Session) Undo() (model.ImageRef, error) {
	if s.pending == nil {
		return model.ImageRef{}, ErrNothingToUndo
	}
	p := *s.pending

	if _, err := removeIfExists(s.fs, p.TargetPath); err != nil {
		s.logger.Error("undo: removing copy", zap.String("image", p.Image.Name), zap.Error(err))
		return p.Image, err
	}

	if p.Previous != "" {
		if err := copyFile(s.fs, p.Image.Path, s.copyPath(p.Previous, p.Image.Name)); err != nil {
			s.logger.Error("undo: restoring copy", zap.String("image", p.Image.Name), zap.Error(err))
			return p.Image, err
		}
		s.store.Set(p.Image.Name, p.Previous)
	} else {
		s.store.Clear(p.Image.Name)
	}

	s.pending = nil
	s.cursor.JumpTo(s.indexOf[p.Image.Name])

	s.logger.Info("undone",
		zap.String("image", p.Image.Name),
		zap.String("category", p.Category),
		zap.String("restored", p.Previous),
	)
	s.record(storage.ActionUndo, p.Image.Name, p.Category, p.Previous)

	return p.Image, nil
}

// Pending returns the current undo record, if any.
func (s *Session) Pending() (PendingUndo, bool) {
	if s.pending == nil {
		return PendingUndo{}, false
	}
	return *s.pending, true
}

// AddCategory appends a category at runtime. Its directory is created on first use.
func (s *Session) AddCategory(name string) (model.Category, error) {
	c, err := s.categories.Add(name)
	if err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category added", zap.String("category", c.Name), zap.Int("id", c.ID))
	return c, nil
}

// Categories returns the declared categories in display order.
func (s *Session) Categories() []model.Category {
	return s.categories.All()
}

// CategoryNames returns the declared category names in display order.
func (s *Session) CategoryNames() []string {
	return s.categories.Names()
}

// CategoryOf returns the current category of image.
func (s *Session) CategoryOf(image model.ImageRef) (string, bool) {
	return s.store.Get(image.Name)
}

// Counts returns the number of classified images per category.
func (s *Session) Counts() map[string]int {
	return s.store.Counts()
}

// Classified returns the number of classified images.
func (s *Session) Classified() int {
	return s.store.Len()
}

// Progress returns the number of classified images and the total.
func (s *Session) Progress() (classified, total int) {
	return s.store.Len(), len(s.images)
}

// Labels returns a copy of the image name -> category mapping.
func (s *Session) Labels() map[string]string {
	return s.store.Snapshot()
}

// SavePosition stores the cursor index in the journal for --resume.
func (s *Session) SavePosition() error {
	return s.journal.SavePosition(s.sourceDir, s.cursor.Index())
}

// Close saves the cursor position. The journal itself belongs to the caller.
func (s *Session) Close() error {
	classified, total := s.Progress()
	s.logger.Info("session closed",
		zap.String("session", s.id),
		zap.Int("index", s.cursor.Index()),
		zap.Int("classified", classified),
		zap.Int("images", total),
	)
	return s.SavePosition()
}

// ID returns the session identifier used in the journal.
func (s *Session) ID() string { return s.id }

// SourceDir returns the source directory.
func (s *Session) SourceDir() string { return s.sourceDir }

// OutputDir returns the output directory.
func (s *Session) OutputDir() string { return s.outputDir }

// Fs returns the filesystem the session operates on.
func (s *Session) Fs() afero.Fs { return s.fs }

func (s *Session) copyPath(category, name string) string {
	return filepath.Join(s.outputDir, category, name)
}

// record appends to the journal. Failures are logged, never returned.
func (s *Session) record(action storage.Action, image, category, previous string) {
	err := s.journal.Record(storage.Entry{
		ID:        model.NewID(),
		SessionID: s.id,
		Action:    action,
		Image:     image,
		Category:  category,
		Previous:  previous,
		At:        time.Now(),
	})
	if err != nil {
		s.logger.Warn("journal write failed", zap.String("action", string(action)), zap.Error(err))
	}
}
