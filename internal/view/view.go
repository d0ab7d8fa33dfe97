// Package view renders store contents into presentation node trees.
//
// The renderers are pure: they take artwork and category data plus an
// optional image-status predicate and return [models.Node] trees with no
// I/O, no logging and no shared state. The formatter turns the trees
// into HTML or text; the TUI walks them directly.
package view

import (
	"github.com/desertthunder/folio/internal/models"
)

// EmptyCategoryLabel is the placeholder text for a category with no
// renderable artworks.
const EmptyCategoryLabel = "Nothing here yet"

// BrokenImageLabel is the placeholder text shown in an image slot whose
// asset failed to load.
const BrokenImageLabel = "Image unavailable"

// ImageStatus reports whether the image at path is known to be broken at
// render time. The prefetch cache's Failed method satisfies this; a nil
// status treats every image as loadable.
type ImageStatus func(path string) bool

// RenderGrid builds the node tree for one category's artwork grid.
//
// An empty artwork list produces a grid containing exactly one centered
// placeholder and no artwork groups. Each artwork renders as a group of
// image (or placeholder, when broken reports true), title, and a year
// node only when the artwork has one, in that order.
func RenderGrid(artworks []models.Artwork, broken ImageStatus) models.Node {
	grid := models.Node{Kind: models.GridNode}

	if len(artworks) == 0 {
		grid.Children = []models.Node{{
			Kind: models.PlaceholderNode,
			Text: EmptyCategoryLabel,
		}}
		return grid
	}

	for _, artwork := range artworks {
		group := models.Node{Kind: models.ArtworkGroupNode}

		if broken != nil && broken(artwork.Image) {
			group.Children = append(group.Children, models.Node{
				Kind: models.PlaceholderNode,
				Text: BrokenImageLabel,
				Path: artwork.Image,
			})
		} else {
			group.Children = append(group.Children, models.Node{
				Kind: models.ImageNode,
				Text: artwork.Title,
				Path: artwork.Image,
			})
		}

		group.Children = append(group.Children, models.Node{
			Kind: models.TitleNode,
			Text: artwork.Title,
		})

		if artwork.Year != "" {
			group.Children = append(group.Children, models.Node{
				Kind: models.YearNode,
				Text: artwork.Year,
			})
		}

		grid.Children = append(grid.Children, group)
	}

	return grid
}

// RenderMenu builds the home navigation menu from the given categories,
// preserving their order. Callers pass the store's NonReserved slice so
// reserved names never appear as menu entries.
func RenderMenu(categories []*models.Category) models.Node {
	menu := models.Node{Kind: models.MenuNode}

	for _, category := range categories {
		menu.Children = append(menu.Children, models.Node{
			Kind:   models.MenuItemNode,
			Text:   category.DisplayName,
			Target: category.Name,
		})
	}

	return menu
}
