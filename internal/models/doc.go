// Package models defines the domain entities for the folio portfolio engine.
//
// The package contains lightweight value types shared by every other layer:
//   - [Category] : A named grouping of artworks with a display label
//   - [Artwork] : A single image entry with identity, title, and asset path
//   - [Manifest] : A precompiled, ordered table of categories and artworks
//
// Categories are created once per discovery pass and owned by the category
// store. Artworks are created fresh on every discovery pass and owned
// exclusively by their category; they are never persisted independently.
package models
