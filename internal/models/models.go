package models

// Category represents a named grouping of artworks.
//
// Name is the unique lowercase slug used in URLs and store lookups.
// DisplayName is the human label shown in menus and page headings.
type Category struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Artworks    []Artwork `json:"artworks"`
}

// Artwork represents a single image entry within a category.
//
// ID is the filename without extension and serves as a stable identity
// across discovery passes. Image is the asset path relative to the
// portfolio root (e.g. "fibers/woven-wall-hanging.jpg").
type Artwork struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

// Manifest is a precompiled, static table of categories and artworks,
// used in place of runtime discovery when the manifest source is active.
//
// Order is significant: categories and artworks render in manifest order.
type Manifest struct {
	Categories []Category `json:"categories"`
}

// ArtworkCount returns the total number of artworks across all categories.
func (m *Manifest) ArtworkCount() int {
	count := 0
	for _, c := range m.Categories {
		count += len(c.Artworks)
	}
	return count
}

// CategoryNames returns category names in manifest order.
func (m *Manifest) CategoryNames() []string {
	names := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		names[i] = c.Name
	}
	return names
}
