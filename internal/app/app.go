// Package app wires the content source, category store, router and
// prefetch cache into one explicit controller.
//
// All application state hangs off a [Controller] instance; nothing is
// ambient or global, so tests construct as many independent instances as
// they need.
package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/content"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/prefetch"
	"github.com/desertthunder/folio/internal/router"
	"github.com/desertthunder/folio/internal/shared"
	"github.com/desertthunder/folio/internal/store"
	"github.com/desertthunder/folio/internal/view"
)

// Controller owns the application state and coordinates the subsystems.
type Controller struct {
	cfg    shared.Config
	source content.Source
	store  *store.CategoryStore
	router *router.Router
	logger *log.Logger

	// seq stamps per-category fetches so a slow response for an older
	// visit is discarded instead of overwriting newer data.
	mu  sync.Mutex
	seq map[string]uint64

	cache *prefetch.Cache
}

// New creates a controller from configuration and a content source.
//
// history and stash may be nil for an in-memory address bar.
func New(cfg shared.Config, source content.Source, history router.History, stash router.Stash, logger *log.Logger) (*Controller, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	mode, err := router.ParseRoutingMode(cfg.Portfolio.RoutingMode)
	if err != nil {
		return nil, err
	}

	categories := store.NewCategoryStore()

	return &Controller{
		cfg:    cfg,
		source: source,
		store:  categories,
		router: router.New(mode, categories, history, stash, logger),
		logger: logger,
		seq:    make(map[string]uint64),
	}, nil
}

// Store returns the category store.
func (c *Controller) Store() *store.CategoryStore {
	return c.store
}

// Router returns the navigation state machine.
func (c *Controller) Router() *router.Router {
	return c.router
}

// Start runs discovery, populates the store and derives the initial
// navigation state. It returns that state.
//
// Under the manifest source artworks load eagerly since they cost no
// I/O; under the listing source each category loads on first visit.
func (c *Controller) Start(ctx context.Context) router.State {
	names := c.source.ListCategories(ctx)
	for _, name := range names {
		c.store.Put(name, content.Titleize(name))
	}
	c.logger.Info("discovery complete", "categories", len(names))

	if c.source.Mode() == content.ModeManifest {
		for _, name := range names {
			c.store.SetArtworks(name, c.source.ListArtworks(ctx, name))
		}
	}

	state := c.router.Init()
	if state.Kind == router.KindCategory {
		c.fetchArtworks(ctx, state.Category)
	}
	return state
}

// Visit navigates to target and returns the resulting state with the
// artworks to render. An unknown target lands on Home with no artworks.
func (c *Controller) Visit(ctx context.Context, target string) (router.State, []models.Artwork) {
	state := c.router.Navigate(target)
	if state.Kind != router.KindCategory {
		return state, nil
	}

	return state, c.fetchArtworks(ctx, state.Category)
}

// Back moves one history entry backwards, reporting whether it could.
func (c *Controller) Back(ctx context.Context) (router.State, bool) {
	state, ok := c.router.Back()
	if ok && state.Kind == router.KindCategory {
		c.fetchArtworks(ctx, state.Category)
	}
	return state, ok
}

// Forward moves one history entry forwards, reporting whether it could.
func (c *Controller) Forward(ctx context.Context) (router.State, bool) {
	state, ok := c.router.Forward()
	if ok && state.Kind == router.KindCategory {
		c.fetchArtworks(ctx, state.Category)
	}
	return state, ok
}

// fetchArtworks loads a category's artworks and stores them, unless a
// newer fetch for the same category has started in the meantime.
func (c *Controller) fetchArtworks(ctx context.Context, name string) []models.Artwork {
	if c.source.Mode() == content.ModeManifest {
		category, _ := c.store.Get(name)
		if category != nil {
			return category.Artworks
		}
		return nil
	}

	c.mu.Lock()
	c.seq[name]++
	stamp := c.seq[name]
	c.mu.Unlock()

	artworks := c.source.ListArtworks(ctx, name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[name] != stamp {
		c.logger.Debug("discarding stale category fetch", "category", name, "stamp", stamp)
		category, _ := c.store.Get(name)
		if category != nil {
			return category.Artworks
		}
		return nil
	}

	c.store.SetArtworks(name, artworks)
	return artworks
}

// StartPrefetch builds the warm-up cache from every stored image path
// and runs it in the background, streaming progress to updates.
//
// Call after Start so the image set is complete; the cache's total is
// fixed at this point and later navigation does not re-trigger it.
func (c *Controller) StartPrefetch(ctx context.Context, client *http.Client, updates chan<- prefetch.Update) *prefetch.Cache {
	opts := prefetch.Opts{
		Workers:   c.cfg.Prefetch.Workers,
		RateLimit: c.cfg.Prefetch.RateLimit,
	}

	cache := prefetch.New(c.cfg.Portfolio.RootURL, c.store.ImagePaths(), client, c.logger, opts)

	c.mu.Lock()
	c.cache = cache
	c.mu.Unlock()

	go func() {
		progress := cache.PrefetchAll(ctx, updates)
		c.logger.Info("prefetch settled", "loaded", progress.Loaded, "total", progress.Total)
		if updates != nil {
			close(updates)
		}
	}()

	return cache
}

// Prefetch returns the warm-up cache, or nil before StartPrefetch runs.
func (c *Controller) Prefetch() *prefetch.Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache
}

// imageStatus adapts the prefetch cache into the view's broken-image
// predicate. Before prefetch runs, no image is considered broken.
func (c *Controller) imageStatus() view.ImageStatus {
	cache := c.Prefetch()
	if cache == nil {
		return nil
	}
	return cache.Failed
}

// Menu renders the home navigation menu from the store.
func (c *Controller) Menu() models.Node {
	return view.RenderMenu(c.store.NonReserved())
}

// Grid renders a category's artwork grid, reporting whether the
// category exists. A failed category fetch renders the standard empty
// placeholder rather than an error.
func (c *Controller) Grid(ctx context.Context, name string) (models.Node, string, bool) {
	category, ok := c.store.Get(name)
	if !ok || store.Reserved(name) {
		return models.Node{}, "", false
	}

	artworks := c.fetchArtworks(ctx, name)
	return view.RenderGrid(artworks, c.imageStatus()), category.DisplayName, true
}

// Categories returns the non-reserved category records for API output.
func (c *Controller) Categories() []*models.Category {
	return c.store.NonReserved()
}
