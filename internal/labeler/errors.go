package labeler

import (
	"errors"

	"github.com/nikbrunner/lbl/internal/scan"
)

var (
	// ErrInvalidPath and ErrEmptyDirectory are fatal at startup.
	ErrInvalidPath    = scan.ErrInvalidPath
	ErrEmptyDirectory = scan.ErrEmptyDirectory

	// ErrIO wraps copy/delete failures. The operation may be partially applied.
	ErrIO = errors.New("filesystem operation failed")

	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownImage    = errors.New("unknown image")
)
