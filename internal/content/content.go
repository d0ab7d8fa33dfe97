package content

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/shared"
)

// Mode selects the discovery strategy at configuration time.
type Mode string

const (
	ModeListing  Mode = "listing"
	ModeManifest Mode = "manifest"
)

// ParseMode validates a configured source mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeListing:
		return ModeListing, nil
	case ModeManifest:
		return ModeManifest, nil
	default:
		return "", fmt.Errorf("%w: unknown source mode %q", shared.ErrInvalidConfig, s)
	}
}

// Source defines the interface for portfolio content discovery.
//
// Both operations are guaranteed to resolve: implementations recover from
// network and parse failures locally (falling back to [DefaultCategories]
// or an empty artwork list) rather than surfacing errors to callers.
type Source interface {
	// ListCategories returns category names in discovery order.
	ListCategories(ctx context.Context) []string

	// ListArtworks returns the artworks of a category in discovery order.
	ListArtworks(ctx context.Context, category string) []models.Artwork

	// Mode returns the strategy this source implements.
	Mode() Mode
}

// DefaultCategories is the built-in fallback category set used when
// discovery fails, so navigation always has somewhere to go.
var DefaultCategories = []string{"fibers", "garments", "paintings"}

// imageExtensions is the fixed allow-set determining artwork eligibility.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// EligibleImage reports whether filename carries an allowed image
// extension (case-insensitive). Eligibility is determined solely by
// extension membership.
func EligibleImage(filename string) bool {
	return imageExtensions[strings.ToLower(path.Ext(filename))]
}

// Titleize derives a human label from a slug or filename stem:
// words are split on hyphen and underscore, title-cased, and rejoined
// with spaces. "abstract-painting-2023" becomes "Abstract Painting 2023".
func Titleize(stem string) string {
	words := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_'
	})

	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

// ArtworkFromFilename builds an [models.Artwork] from a listing entry.
//
// ID and title derive from the filename stem; the image path is the
// filename joined under its category.
func ArtworkFromFilename(category, filename string) models.Artwork {
	stem := strings.TrimSuffix(filename, path.Ext(filename))

	return models.Artwork{
		ID:    stem,
		Title: Titleize(stem),
		Image: category + "/" + filename,
	}
}

// NewSource constructs the [Source] selected by the portfolio configuration.
func NewSource(cfg shared.PortfolioConfig, client *http.Client, logger *log.Logger) (Source, error) {
	mode, err := ParseMode(cfg.SourceMode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeManifest:
		manifest := DefaultManifest()
		if cfg.ManifestPath != "" {
			loaded, err := LoadManifest(cfg.ManifestPath)
			if err != nil {
				return nil, err
			}
			manifest = loaded
		}
		return NewManifestSource(manifest, logger), nil
	default:
		return NewListingSource(cfg.RootURL, client, logger), nil
	}
}
