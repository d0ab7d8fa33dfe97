package prefetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/shared"
)

func imageServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()

	var hits sync.Map
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, _ := hits.LoadOrStore(r.URL.Path, new(int))
		*(count.(*int))++

		switch r.URL.Path {
		case "/fibers/a.jpg", "/fibers/b.jpg", "/garments/c.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			io.WriteString(w, "jpegbytes")
		default:
			http.NotFound(w, r)
		}
	}))

	return server, &hits
}

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

func TestPrefetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("settles at 100 percent despite failures", func(t *testing.T) {
		server, _ := imageServer(t)
		defer server.Close()

		paths := []string{
			"fibers/a.jpg",
			"fibers/b.jpg",
			"garments/c.jpg",
			"garments/missing.jpg",
			"paintings/also-missing.png",
		}

		cache := New(server.URL, paths, server.Client(), quietLogger(), Opts{})
		progress := cache.PrefetchAll(ctx, nil)

		if progress.Total != 5 {
			t.Errorf("expected total 5, got %d", progress.Total)
		}
		if progress.Loaded != 3 {
			t.Errorf("expected 3 loaded, got %d", progress.Loaded)
		}
		if progress.Percentage != 100 {
			t.Errorf("expected percentage 100, got %f", progress.Percentage)
		}
	})

	t.Run("requests each distinct path once", func(t *testing.T) {
		server, hits := imageServer(t)
		defer server.Close()

		paths := []string{
			"fibers/a.jpg",
			"fibers/a.jpg",
			"fibers/a.jpg",
			"fibers/b.jpg",
		}

		cache := New(server.URL, paths, server.Client(), quietLogger(), Opts{})
		progress := cache.PrefetchAll(ctx, nil)

		count, ok := hits.Load("/fibers/a.jpg")
		if !ok || *(count.(*int)) != 1 {
			t.Errorf("expected exactly one request for duplicated path")
		}

		// The fixed total counts artworks, not distinct paths.
		if progress.Total != 4 || progress.Loaded != 4 {
			t.Errorf("expected 4/4, got %d/%d", progress.Loaded, progress.Total)
		}
		if progress.Percentage != 100 {
			t.Errorf("expected percentage 100, got %f", progress.Percentage)
		}
	})

	t.Run("tracks per-path outcomes", func(t *testing.T) {
		server, _ := imageServer(t)
		defer server.Close()

		cache := New(server.URL, []string{"fibers/a.jpg", "garments/missing.jpg"}, server.Client(), quietLogger(), Opts{})
		cache.PrefetchAll(ctx, nil)

		if !cache.IsPrefetched("fibers/a.jpg") {
			t.Error("expected fibers/a.jpg to be prefetched")
		}
		if cache.IsPrefetched("garments/missing.jpg") {
			t.Error("missing image should not count as prefetched")
		}
		if !cache.Failed("garments/missing.jpg") {
			t.Error("missing image should be marked failed")
		}
		if cache.Failed("fibers/a.jpg") {
			t.Error("loaded image should not be marked failed")
		}
	})

	t.Run("emits progress updates", func(t *testing.T) {
		server, _ := imageServer(t)
		defer server.Close()

		cache := New(server.URL, []string{"fibers/a.jpg", "fibers/b.jpg"}, server.Client(), quietLogger(), Opts{Workers: 1})

		updates := make(chan Update, 8)
		cache.PrefetchAll(ctx, updates)
		close(updates)

		var count int
		var last Update
		for u := range updates {
			count++
			last = u
		}

		if count != 2 {
			t.Fatalf("expected 2 updates, got %d", count)
		}
		if last.Progress.Percentage != 100 {
			t.Errorf("final update should report completion, got %f", last.Progress.Percentage)
		}
	})

	t.Run("bounded workers and rate limit still settle", func(t *testing.T) {
		server, _ := imageServer(t)
		defer server.Close()

		paths := []string{"fibers/a.jpg", "fibers/b.jpg", "garments/c.jpg"}
		cache := New(server.URL, paths, server.Client(), quietLogger(), Opts{Workers: 2, RateLimit: 1000})

		if progress := cache.PrefetchAll(ctx, nil); progress.Percentage != 100 {
			t.Errorf("expected percentage 100, got %f", progress.Percentage)
		}
	})

	t.Run("unreachable host settles as failures", func(t *testing.T) {
		cache := New("http://127.0.0.1:1", []string{"fibers/a.jpg"}, nil, quietLogger(), Opts{})

		progress := cache.PrefetchAll(ctx, nil)
		if progress.Loaded != 0 {
			t.Errorf("expected 0 loaded, got %d", progress.Loaded)
		}
		if progress.Percentage != 100 {
			t.Errorf("expected percentage 100, got %f", progress.Percentage)
		}
	})

	t.Run("empty cache reports complete", func(t *testing.T) {
		cache := New("http://127.0.0.1:1", nil, nil, quietLogger(), Opts{})

		progress := cache.Progress()
		if progress.Total != 0 || progress.Percentage != 100 {
			t.Errorf("expected empty cache at 100%%, got %+v", progress)
		}
	})
}
