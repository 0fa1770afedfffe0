package labeler

import "github.com/nikbrunner/lbl/internal/model"

// Current returns the image under the cursor.
func (s *Session) Current() model.ImageRef {
	return s.images[s.cursor.Index()]
}

// Index returns the cursor position.
func (s *Session) Index() int {
	return s.cursor.Index()
}

// Cursor returns a copy of the navigation cursor.
func (s *Session) Cursor() model.Cursor {
	return s.cursor
}

// Len returns the number of images in the session.
func (s *Session) Len() int {
	return len(s.images)
}

// Advance moves to the next image. No-op on the last image.
func (s *Session) Advance() bool {
	return s.cursor.Advance()
}

// Retreat moves to the previous image. No-op on the first image.
func (s *Session) Retreat() bool {
	return s.cursor.Retreat()
}

// JumpTo moves to index i, clamped to [0, Len()-1].
func (s *Session) JumpTo(i int) {
	s.cursor.JumpTo(i)
}

// AtEnd reports whether the cursor is on the last image.
func (s *Session) AtEnd() bool {
	return s.cursor.AtEnd()
}

// ImageAt returns the image at index i.
func (s *Session) ImageAt(i int) (model.ImageRef, bool) {
	if i < 0 || i >= len(s.images) {
		return model.ImageRef{}, false
	}
	return s.images[i], true
}

// Images returns a copy of the ordered image sequence.
func (s *Session) Images() []model.ImageRef {
	out := make([]model.ImageRef, len(s.images))
	copy(out, s.images)
	return out
}

// IndexOf returns the position of an image by name.
func (s *Session) IndexOf(name string) (int, bool) {
	i, ok := s.indexOf[name]
	return i, ok
}
