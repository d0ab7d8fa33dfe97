// Package prefetch implements the background image warm-up cache.
//
// A [Cache] is built once at startup from all artwork image paths known
// to the category store. [Cache.PrefetchAll] requests every distinct
// path at most once, running requests concurrently behind a bounded
// worker group and a rate limiter. Every request resolves whether or not
// the image loads; only successes count towards Loaded, but overall
// completion is reached once all requests have settled, so
// [Cache.Progress] reports 100% even when some paths are unreachable.
//
// The cache operates independently of navigation: it begins once at
// startup and is not re-triggered by route changes.
package prefetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Progress is a snapshot of warm-up progress for UI feedback.
type Progress struct {
	Loaded     int     `json:"loaded"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Update is one progress event emitted while warming images.
type Update struct {
	Path     string   // Image path that settled
	OK       bool     // Whether the image loaded
	Progress Progress // Snapshot after this settlement
}

// Opts contains tuning knobs for the warm-up run.
type Opts struct {
	// Workers bounds concurrent requests; <= 0 means unbounded.
	Workers int
	// RateLimit caps requests per second; <= 0 disables limiting.
	RateLimit float64
}

// Cache tracks which image paths have been warmed.
type Cache struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	opts       Opts

	// paths holds the distinct request set; multiplicity maps each
	// path to its artwork count so duplicated images settle the
	// progress share of every artwork using them.
	paths        []string
	multiplicity map[string]int
	total        int

	mu      sync.Mutex
	loaded  map[string]bool
	failed  map[string]bool
	settled int
	success int
}

// New creates a cache for the given artwork image paths, fixing the
// total at construction. Paths may contain duplicates; requests are
// de-duplicated while the total still reflects every artwork.
func New(baseURL string, imagePaths []string, client *http.Client, logger *log.Logger, opts Opts) *Cache {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	multiplicity := make(map[string]int)
	var distinct []string
	for _, path := range imagePaths {
		if multiplicity[path] == 0 {
			distinct = append(distinct, path)
		}
		multiplicity[path]++
	}

	return &Cache{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   client,
		logger:       logger,
		opts:         opts,
		paths:        distinct,
		multiplicity: multiplicity,
		total:        len(imagePaths),
		loaded:       make(map[string]bool),
		failed:       make(map[string]bool),
	}
}

// Total returns the fixed artwork count this cache was built with.
func (c *Cache) Total() int {
	return c.total
}

// PrefetchAll warms every distinct image path, blocking until all
// requests have settled. Individual failures never abort the run.
//
// Updates are sent to the optional channel without blocking; slow
// consumers miss events rather than stalling the warm-up.
func (c *Cache) PrefetchAll(ctx context.Context, updates chan<- Update) Progress {
	var limiter *rate.Limiter
	if c.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.opts.RateLimit), 1)
	}

	group, ctx := errgroup.WithContext(ctx)
	if c.opts.Workers > 0 {
		group.SetLimit(c.opts.Workers)
	}

	for _, path := range c.paths {
		group.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					c.settle(path, false, updates)
					return nil
				}
			}

			ok := c.fetch(ctx, path)
			c.settle(path, ok, updates)
			return nil
		})
	}

	// Workers never return errors; a failed image is a resolution,
	// not an abort.
	group.Wait()

	return c.Progress()
}

// fetch requests one image and reports whether it loaded.
func (c *Cache) fetch(ctx context.Context, path string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.imageURL(path), nil)
	if err != nil {
		c.logger.Warn("prefetch request invalid", "path", path, "err", err)
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("prefetch failed", "path", path, "err", fmt.Errorf("%w: %v", shared.ErrImageLoadFailed, err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// settle records one resolved request and emits a progress update.
func (c *Cache) settle(path string, ok bool, updates chan<- Update) {
	c.mu.Lock()
	share := c.multiplicity[path]
	c.settled += share
	if ok {
		c.success += share
		c.loaded[path] = true
	} else {
		c.failed[path] = true
	}
	progress := c.progressLocked()
	c.mu.Unlock()

	if updates == nil {
		return
	}
	select {
	case updates <- Update{Path: path, OK: ok, Progress: progress}:
	default:
	}
}

// IsPrefetched reports whether the image at path loaded successfully.
func (c *Cache) IsPrefetched(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded[path]
}

// Failed reports whether the image at path settled with a failure.
func (c *Cache) Failed(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[path]
}

// Progress returns the current warm-up snapshot.
//
// Percentage measures settled requests against the fixed total, so it
// reaches 100 once every request has resolved regardless of outcomes.
func (c *Cache) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressLocked()
}

func (c *Cache) progressLocked() Progress {
	percentage := 100.0
	if c.total > 0 {
		percentage = float64(c.settled) / float64(c.total) * 100
	}

	return Progress{
		Loaded:     c.success,
		Total:      c.total,
		Percentage: percentage,
	}
}

func (c *Cache) imageURL(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}
