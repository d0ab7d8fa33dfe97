// Package server implements the portfolio and asset HTTP server.
//
// # Routes
//
// GET / and GET /{category} serve formatter-rendered HTML views of the
// home menu and category grids. GET /assets/* serves the raw asset tree.
// GET /api/categories exposes the store as JSON.
//
// # Asset contract
//
// The asset handler honors the contract the listing content source
// depends on:
//
//   - File responses carry a content type from a fixed extension table;
//     unknown extensions fall back to application/octet-stream.
//   - Directory requests return a generated HTML index of the immediate
//     children, parent link first, folders with a trailing "/".
//   - Unknown paths fall back to the home document after stashing the
//     originally requested path in a one-shot cookie, which the client
//     router consumes exactly once on its next load.
//
// # Middleware
//
// A chi router wraps every handler with panic recovery, request logging
// and a session cookie carrying a per-visitor UUID.
package server
