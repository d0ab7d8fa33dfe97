// Manifest [Source] implementation
//
// Serves categories and artworks from a precompiled static table with no
// network I/O. The table is immutable for the lifetime of the source.
package content

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/shared"
)

//go:embed manifest.json
var defaultManifest []byte

// ManifestSource implements [Source] from a precompiled manifest.
//
// Calls return instantly from the baked-in table; artwork lists are set
// once and never reassigned.
type ManifestSource struct {
	categories []models.Category
	index      map[string][]models.Artwork
	logger     *log.Logger
}

// NewManifestSource creates a manifest-backed source.
//
// An empty manifest falls back to [DefaultCategories] with no artworks,
// per the discovery failure policy.
func NewManifestSource(manifest *models.Manifest, logger *log.Logger) *ManifestSource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	categories := manifest.Categories
	if len(categories) == 0 {
		logger.Warn("manifest has no categories, using default category set")
		categories = make([]models.Category, len(DefaultCategories))
		for i, name := range DefaultCategories {
			categories[i] = models.Category{Name: name, DisplayName: Titleize(name)}
		}
	}

	index := make(map[string][]models.Artwork, len(categories))
	for _, c := range categories {
		index[c.Name] = c.Artworks
	}

	return &ManifestSource{
		categories: categories,
		index:      index,
		logger:     logger,
	}
}

// Mode returns [ModeManifest].
func (s *ManifestSource) Mode() Mode {
	return ModeManifest
}

// ListCategories returns category names in manifest order.
func (s *ManifestSource) ListCategories(ctx context.Context) []string {
	names := make([]string, len(s.categories))
	for i, c := range s.categories {
		names[i] = c.Name
	}
	return names
}

// ListArtworks returns a copy of the category's artwork table.
//
// Unknown categories yield an empty list, never an error.
func (s *ManifestSource) ListArtworks(ctx context.Context, category string) []models.Artwork {
	artworks, ok := s.index[category]
	if !ok {
		s.logger.Warn("category not in manifest", "category", category)
		return nil
	}
	return append([]models.Artwork(nil), artworks...)
}

// LoadManifest reads and parses a manifest.json file.
func LoadManifest(path string) (*models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest models.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrManifestInvalid, err)
	}

	return &manifest, nil
}

// DefaultManifest returns the manifest baked in at build time.
func DefaultManifest() *models.Manifest {
	var manifest models.Manifest
	if err := json.Unmarshal(defaultManifest, &manifest); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default manifest: %v", err))
	}
	return &manifest
}

// BuildManifest scans a local asset tree into a manifest.
//
// Immediate subdirectories of root become categories; their eligible
// image files become artworks. Entries are ordered by name for stable
// output across runs.
func BuildManifest(root string) (*models.Manifest, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	manifest := &models.Manifest{}
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		name := strings.ToLower(dir.Name())
		category := models.Category{
			Name:        name,
			DisplayName: Titleize(name),
		}

		files, err := os.ReadDir(filepath.Join(root, dir.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read category directory %s: %w", dir.Name(), err)
		}

		sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

		for _, f := range files {
			if f.IsDir() || !EligibleImage(f.Name()) {
				continue
			}
			category.Artworks = append(category.Artworks, ArtworkFromFilename(name, f.Name()))
		}

		manifest.Categories = append(manifest.Categories, category)
	}

	return manifest, nil
}

// WriteManifest serializes a manifest to path as pretty-printed JSON.
func WriteManifest(manifest *models.Manifest, path string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
