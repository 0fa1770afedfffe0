package storage

import (
	"os"
	"path/filepath"
	"time"
)

// Action is the kind of journal entry.
type Action string

const (
	ActionClassify Action = "classify"
	ActionUndo     Action = "undo"
)

// Entry is a single recorded labeling action.
type Entry struct {
	ID        string
	SessionID string
	Action    Action
	Image     string
	Category  string // target category for classify, removed category for undo
	Previous  string // category before the action, "" = unclassified
	At        time.Time
}

// Journal records labeling actions and the last viewed position per source directory.
type Journal interface {
	Record(entry Entry) error
	SavePosition(sourceDir string, index int) error
	LastPosition(sourceDir string) (int, bool, error)
	Close() error
}

// NopJournal discards everything.
type NopJournal struct{}

func (NopJournal) Record(Entry) error                     { return nil }
func (NopJournal) SavePosition(string, int) error         { return nil }
func (NopJournal) LastPosition(string) (int, bool, error) { return 0, false, nil }
func (NopJournal) Close() error                           { return nil }

// DefaultJournalPath returns the default journal path: ~/.config/lbl/journal.db
func DefaultJournalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lbl", "journal.db"), nil
}

// OpenJournal opens the SQLite journal at path.
// An empty path disables journaling.
func OpenJournal(path string) (Journal, error) {
	if path == "" {
		return NopJournal{}, nil
	}
	return NewSQLiteJournal(path)
}
