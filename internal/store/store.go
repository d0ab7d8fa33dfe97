// Package store implements the in-memory authoritative category map.
//
// A [CategoryStore] is owned by the application controller and mutated
// only with discovery results. Lookups return an explicit found flag,
// never an error: the router uses the flag to reject invalid navigation
// targets.
//
// The reserved names "home" and "about" may be present as records but
// are excluded from ordinary grid rendering via [CategoryStore.NonReserved].
package store

import (
	"sync"

	"github.com/desertthunder/folio/internal/models"
)

// reservedNames are excluded from grid rendering and navigation menus.
var reservedNames = map[string]bool{
	"home":  true,
	"about": true,
}

// Reserved reports whether name is a reserved pseudo-category name.
func Reserved(name string) bool {
	return reservedNames[name]
}

// CategoryStore maps category names to their records, preserving
// discovery order.
type CategoryStore struct {
	mu         sync.RWMutex
	order      []string
	categories map[string]*models.Category
}

// NewCategoryStore creates an empty store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[string]*models.Category),
	}
}

// Put inserts a category record, keeping the first insertion's position.
//
// Category names are unique within a discovery pass; re-putting an
// existing name updates its display label without duplicating the entry.
func (s *CategoryStore) Put(name, displayName string) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.categories[name]; ok {
		existing.DisplayName = displayName
		return existing
	}

	category := &models.Category{Name: name, DisplayName: displayName}
	s.categories[name] = category
	s.order = append(s.order, name)
	return category
}

// Get returns the record for name and whether it exists.
func (s *CategoryStore) Get(name string) (*models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[name]
	return category, ok
}

// Has reports whether name is a known category.
func (s *CategoryStore) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// SetArtworks replaces a category's artwork list wholesale.
//
// Returns false when the category is unknown. Under the listing strategy
// this runs on every visit; under the manifest strategy it runs once.
func (s *CategoryStore) SetArtworks(name string, artworks []models.Artwork) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[name]
	if !ok {
		return false
	}

	category.Artworks = artworks
	return true
}

// Names returns all category names in insertion order.
func (s *CategoryStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.order...)
}

// NonReserved returns the categories eligible for menus and grids, in
// insertion order.
func (s *CategoryStore) NonReserved() []*models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var categories []*models.Category
	for _, name := range s.order {
		if !reservedNames[name] {
			categories = append(categories, s.categories[name])
		}
	}
	return categories
}

// Len returns the number of stored categories.
func (s *CategoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// ArtworkTotal sums artwork counts across all categories.
func (s *CategoryStore) ArtworkTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, name := range s.order {
		total += len(s.categories[name].Artworks)
	}
	return total
}

// ImagePaths returns every artwork image path in insertion order,
// duplicates included. The prefetch cache derives its fixed total and
// its de-duplicated request set from this.
func (s *CategoryStore) ImagePaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	for _, name := range s.order {
		for _, artwork := range s.categories[name].Artworks {
			paths = append(paths, artwork.Image)
		}
	}
	return paths
}
