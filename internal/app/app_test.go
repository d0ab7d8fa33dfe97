package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/content"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/prefetch"
	"github.com/desertthunder/folio/internal/router"
	"github.com/desertthunder/folio/internal/shared"
	th "github.com/desertthunder/folio/internal/testing"
)

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

func testConfig(mode string) shared.Config {
	cfg := *shared.DefaultConfig()
	cfg.Portfolio.RoutingMode = mode
	return cfg
}

func testSource() *th.MockSource {
	return th.NewMockSource(
		[]string{"fibers", "garments"},
		map[string][]models.Artwork{
			"fibers": {
				{ID: "woven-wall-hanging", Title: "Woven Wall Hanging", Image: "fibers/woven-wall-hanging.jpg"},
				{ID: "indigo-shibori-panel", Title: "Indigo Shibori Panel", Image: "fibers/indigo-shibori-panel.jpg"},
			},
			"garments": {
				{ID: "linen-wrap-dress", Title: "Linen Wrap Dress", Image: "garments/linen-wrap-dress.jpg"},
			},
		},
	)
}

func newController(t *testing.T, source content.Source, history router.History) *Controller {
	t.Helper()

	ctrl, err := New(testConfig("path"), source, history, nil, quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ctrl
}

func TestControllerStart(t *testing.T) {
	ctx := context.Background()

	t.Run("populates the store with display names", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)

		if state := ctrl.Start(ctx); state.Kind != router.KindHome {
			t.Errorf("expected home on first load, got %v", state)
		}

		names := ctrl.Store().Names()
		if len(names) != 2 || names[0] != "fibers" || names[1] != "garments" {
			t.Fatalf("unexpected store contents: %v", names)
		}

		category, _ := ctrl.Store().Get("fibers")
		if category.DisplayName != "Fibers" {
			t.Errorf("expected title-cased display name, got %q", category.DisplayName)
		}
	})

	t.Run("manifest source loads artworks eagerly", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)

		if total := ctrl.Store().ArtworkTotal(); total != 3 {
			t.Errorf("expected 3 artworks after start, got %d", total)
		}
	})

	t.Run("invalid routing mode is rejected", func(t *testing.T) {
		if _, err := New(testConfig("query"), testSource(), nil, nil, quietLogger()); err == nil {
			t.Error("expected an error for an unknown routing mode")
		}
	})

	t.Run("initial category location loads its artworks", func(t *testing.T) {
		ctrl := newController(t, testSource(), router.NewMemoryHistory("/garments"))

		state := ctrl.Start(ctx)
		if state != router.Category("garments") {
			t.Fatalf("expected Category(garments), got %v", state)
		}
	})
}

func TestControllerVisit(t *testing.T) {
	ctx := context.Background()

	t.Run("known category returns artworks", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)

		state, artworks := ctrl.Visit(ctx, "fibers")
		if state != router.Category("fibers") {
			t.Fatalf("expected Category(fibers), got %v", state)
		}
		if len(artworks) != 2 {
			t.Errorf("expected 2 artworks, got %d", len(artworks))
		}
	})

	t.Run("unknown category lands home", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)

		state, artworks := ctrl.Visit(ctx, "sculpture")
		if state.Kind != router.KindHome {
			t.Errorf("expected home fallback, got %v", state)
		}
		if artworks != nil {
			t.Errorf("expected no artworks, got %v", artworks)
		}
	})

	t.Run("round trip restores earlier state", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)

		ctrl.Visit(ctx, "fibers")
		ctrl.Visit(ctx, "garments")

		state, ok := ctrl.Back(ctx)
		if !ok || state != router.Category("fibers") {
			t.Fatalf("expected restored Category(fibers), got %v ok=%v", state, ok)
		}

		state, ok = ctrl.Forward(ctx)
		if !ok || state != router.Category("garments") {
			t.Fatalf("expected Category(garments), got %v ok=%v", state, ok)
		}
	})
}

// gatedSource blocks its first ListArtworks call until released,
// returning stale data; later calls return fresh data immediately.
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (g *gatedSource) ListCategories(ctx context.Context) []string {
	return []string{"fibers"}
}

func (g *gatedSource) ListArtworks(ctx context.Context, category string) []models.Artwork {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	if first {
		close(g.started)
		<-g.release
		return []models.Artwork{{ID: "stale", Title: "Stale", Image: "fibers/stale.jpg"}}
	}
	return []models.Artwork{{ID: "fresh", Title: "Fresh", Image: "fibers/fresh.jpg"}}
}

func (g *gatedSource) Mode() content.Mode { return content.ModeListing }

func TestStaleFetchDiscarded(t *testing.T) {
	ctx := context.Background()

	source := &gatedSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	ctrl := newController(t, source, nil)
	ctrl.Start(ctx)

	done := make(chan struct{})
	go func() {
		ctrl.Visit(ctx, "fibers")
		close(done)
	}()

	<-source.started

	// A second visit starts while the first response is still in flight.
	_, artworks := ctrl.Visit(ctx, "fibers")
	if len(artworks) != 1 || artworks[0].ID != "fresh" {
		t.Fatalf("expected fresh artworks, got %v", artworks)
	}

	close(source.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first visit never settled")
	}

	category, _ := ctrl.Store().Get("fibers")
	if len(category.Artworks) != 1 || category.Artworks[0].ID != "fresh" {
		t.Errorf("stale response must not overwrite newer data, got %v", category.Artworks)
	}
}

func TestControllerViews(t *testing.T) {
	ctx := context.Background()

	t.Run("menu lists discovered categories", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)

		menu := ctrl.Menu()
		if len(menu.Children) != 2 {
			t.Fatalf("expected 2 menu entries, got %d", len(menu.Children))
		}
		if menu.Children[0].Target != "fibers" || menu.Children[0].Text != "Fibers" {
			t.Errorf("unexpected first entry: %+v", menu.Children[0])
		}
	})

	t.Run("grid renders artwork groups", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)

		grid, displayName, ok := ctrl.Grid(ctx, "fibers")
		if !ok || displayName != "Fibers" {
			t.Fatalf("expected Fibers grid, got ok=%v name=%q", ok, displayName)
		}
		if groups := grid.FindAll(models.ArtworkGroupNode); len(groups) != 2 {
			t.Errorf("expected 2 artwork groups, got %d", len(groups))
		}
	})

	t.Run("unknown and reserved names are rejected", func(t *testing.T) {
		ctrl := newController(t, testSource(), nil)
		ctrl.Start(ctx)
		ctrl.Store().Put("about", "About")

		if _, _, ok := ctrl.Grid(ctx, "sculpture"); ok {
			t.Error("unknown category must report not found")
		}
		if _, _, ok := ctrl.Grid(ctx, "about"); ok {
			t.Error("reserved name must not render a grid")
		}
	})

	t.Run("empty category renders the placeholder", func(t *testing.T) {
		source := th.NewMockSource([]string{"fibers"}, nil)
		ctrl := newController(t, source, nil)
		ctrl.Start(ctx)

		grid, _, ok := ctrl.Grid(ctx, "fibers")
		if !ok {
			t.Fatal("expected the category to exist")
		}
		if placeholders := grid.FindAll(models.PlaceholderNode); len(placeholders) != 1 {
			t.Errorf("expected exactly one placeholder, got %d", len(placeholders))
		}
	})
}

func TestControllerPrefetch(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garments/linen-wrap-dress.jpg" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "jpegbytes")
	}))
	defer server.Close()

	cfg := testConfig("path")
	cfg.Portfolio.RootURL = server.URL

	ctrl, err := New(cfg, testSource(), nil, nil, quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctrl.Start(ctx)

	updates := make(chan prefetch.Update, 16)
	cache := ctrl.StartPrefetch(ctx, server.Client(), updates)

	var last prefetch.Update
	for update := range updates {
		last = update
	}

	if last.Progress.Percentage != 100 {
		t.Errorf("expected settled prefetch, got %f", last.Progress.Percentage)
	}
	if cache.Total() != 3 {
		t.Errorf("expected total 3, got %d", cache.Total())
	}
	if !cache.IsPrefetched("fibers/woven-wall-hanging.jpg") {
		t.Error("expected the healthy image to be warmed")
	}
	if !cache.Failed("garments/linen-wrap-dress.jpg") {
		t.Error("expected the missing image to be marked failed")
	}
	if ctrl.Prefetch() != cache {
		t.Error("controller must expose the running cache")
	}
}
