package model

// ImageRef identifies an image in the source directory.
// Name is the identity; it is unique because the source directory is read flat.
type ImageRef struct {
	Name string `json:"name"`
	Path string `json:"path"` // absolute or source-relative path of the original file
}

// IsZero reports whether the ref is the zero value.
func (i ImageRef) IsZero() bool {
	return i.Name == ""
}
