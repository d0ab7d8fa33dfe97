// Package content defines the [Source] interface for portfolio discovery and implements its two strategies.
//
// # Source Interface
//
// Everything downstream (store, router, prefetch, renderers) consumes
// categories and artworks through a single abstraction, so the rest of
// the application is indifferent to where content comes from.
//
// Both operations are total: they log failures and recover locally
// instead of returning errors, so the application is never left without
// navigable content.
//
// Key Implementations:
//   - [ListingSource] : Parses server-generated directory-listing documents at runtime.
//     Every call re-fetches with cache-bypassing requests, so results track the
//     current server state on each navigation.
//   - [ManifestSource] : Serves a precompiled static table with no network I/O.
//
// The strategy is selected once at startup via [Mode]; the two are never
// mixed within one running instance.
package content
