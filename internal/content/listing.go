// Listing-scan [Source] implementation
//
// Discovers categories and artworks by fetching the asset server's
// directory-listing documents and parsing their link elements.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/shared"
	"golang.org/x/net/html"
)

// ListingSource implements [Source] by scanning directory-listing documents.
//
// Calls never cache: each invocation issues a fresh cache-bypassing
// request so content reflects the current server state on every
// navigation. Failures fall back per the discovery error policy and are
// never propagated.
type ListingSource struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// listingEntry is one link parsed from a directory-listing document.
type listingEntry struct {
	name string
	dir  bool
}

// NewListingSource creates a listing-scan source rooted at baseURL.
func NewListingSource(baseURL string, client *http.Client, logger *log.Logger) *ListingSource {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &ListingSource{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// Mode returns [ModeListing].
func (s *ListingSource) Mode() Mode {
	return ModeListing
}

// ListCategories scans the portfolio root listing for subfolder links.
//
// On fetch or parse failure it returns [DefaultCategories] so the
// application always has navigable content.
func (s *ListingSource) ListCategories(ctx context.Context) []string {
	entries, err := s.fetchListing(ctx, "")
	if err != nil {
		s.logger.Warn("discovery failed, using default categories", "err", err)
		return append([]string(nil), DefaultCategories...)
	}

	var names []string
	for _, entry := range entries {
		if entry.dir {
			names = append(names, entry.name)
		}
	}

	return names
}

// ListArtworks scans a category subfolder listing for eligible image links.
//
// On fetch or parse failure it returns an empty list; the category then
// renders the standard empty placeholder.
func (s *ListingSource) ListArtworks(ctx context.Context, category string) []models.Artwork {
	entries, err := s.fetchListing(ctx, category)
	if err != nil {
		s.logger.Warn("category fetch failed", "category", category, "err", err)
		return nil
	}

	var artworks []models.Artwork
	for _, entry := range entries {
		if !entry.dir && EligibleImage(entry.name) {
			artworks = append(artworks, ArtworkFromFilename(category, entry.name))
		}
	}

	return artworks
}

// fetchListing requests the directory-listing document for dir ("" is the
// portfolio root) and parses it into ordered entries.
//
// A timestamp query parameter plus a no-store header defeat intermediate
// caches, matching the per-visit refresh contract.
func (s *ListingSource) fetchListing(ctx context.Context, dir string) ([]listingEntry, error) {
	listingURL := s.baseURL + "/"
	if dir != "" {
		listingURL += url.PathEscape(dir) + "/"
	}
	listingURL += fmt.Sprintf("?t=%d", time.Now().UnixNano())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDiscoveryFailed, err)
	}

	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDiscoveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrDiscoveryFailed, resp.StatusCode)
	}

	entries, err := parseListing(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrListingParse, err)
	}

	return entries, nil
}

// parseListing extracts directory entries from a listing document's link
// elements, in document order.
//
// Parent links ("../" or "..") are excluded. Query strings are stripped
// before matching, a leading "./" marker is stripped from names, and a
// trailing path separator marks a subfolder.
func parseListing(r io.Reader) ([]listingEntry, error) {
	tokenizer := html.NewTokenizer(r)

	var entries []listingEntry
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return entries, nil
			}
			return nil, tokenizer.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}

			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}
				if entry, ok := entryFromHref(attr.Val); ok {
					entries = append(entries, entry)
				}
				break
			}
		}
	}
}

// entryFromHref normalizes one link target into a listing entry.
func entryFromHref(href string) (listingEntry, bool) {
	target := href
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}

	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}

	target = strings.TrimPrefix(target, "./")
	if target == "" || target == ".." || target == "../" {
		return listingEntry{}, false
	}

	if strings.HasSuffix(target, "/") {
		return listingEntry{name: strings.TrimSuffix(target, "/"), dir: true}, true
	}

	return listingEntry{name: target}, true
}
