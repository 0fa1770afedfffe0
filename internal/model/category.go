package model

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCategory   = errors.New("invalid category name")
	ErrDuplicateCategory = errors.New("category already exists")
)

// Category is a user-declared label with its own output subdirectory.
type Category struct {
	ID   int    `json:"id"` // stable, assigned at insertion, never reused
	Name string `json:"name"`
}

// Registry is the ordered, append-only list of categories.
// Display order (and shortcut numbers) follow insertion order.
type Registry struct {
	categories []Category
	byName     map[string]int // name -> position in categories
	nextID     int
}

// NewRegistry creates a Registry from names in declaration order.
func NewRegistry(names []string) (*Registry, error) {
	r := &Registry{byName: make(map[string]int)}
	for _, name := range names {
		if _, err := r.Add(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a category and returns it.
func (r *Registry) Add(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if err := ValidateCategoryName(name); err != nil {
		return Category{}, err
	}
	if _, ok := r.byName[name]; ok {
		return Category{}, ErrDuplicateCategory
	}

	c := Category{ID: r.nextID, Name: name}
	r.nextID++
	r.byName[name] = len(r.categories)
	r.categories = append(r.categories, c)
	return c, nil
}

// ValidateCategoryName rejects names that cannot be used as a single directory name.
func ValidateCategoryName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return ErrInvalidCategory
	case strings.ContainsAny(name, `/\`):
		return ErrInvalidCategory
	}
	return nil
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

// At returns the category at display position i.
func (r *Registry) At(i int) (Category, bool) {
	if i < 0 || i >= len(r.categories) {
		return Category{}, false
	}
	return r.categories[i], true
}

// ByName finds a category by name.
func (r *Registry) ByName(name string) (Category, bool) {
	pos, ok := r.byName[name]
	if !ok {
		return Category{}, false
	}
	return r.categories[pos], true
}

// ByID finds a category by its stable ID.
func (r *Registry) ByID(id int) (Category, bool) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Has reports whether name is a declared category.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// All returns a copy of the categories in display order.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Names returns category names in display order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}
