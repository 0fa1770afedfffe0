package model

// Store maps image names to their current category name.
// Absence means unclassified. It never touches the filesystem.
type Store struct {
	labels map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{labels: make(map[string]string)}
}

// Get returns the category of an image and whether it is classified.
func (s *Store) Get(image string) (string, bool) {
	c, ok := s.labels[image]
	return c, ok
}

// Set records the category of an image, replacing any previous one.
func (s *Store) Set(image, category string) {
	s.labels[image] = category
}

// Clear marks an image as unclassified.
func (s *Store) Clear(image string) {
	delete(s.labels, image)
}

// Len returns the number of classified images.
func (s *Store) Len() int {
	return len(s.labels)
}

// Counts returns the number of images per category.
func (s *Store) Counts() map[string]int {
	counts := make(map[string]int)
	for _, c := range s.labels {
		counts[c]++
	}
	return counts
}

// Snapshot returns a copy of the image -> category mapping.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.labels))
	for k, v := range s.labels {
		out[k] = v
	}
	return out
}
