package models

// NodeKind enumerates the presentation node types produced by the view
// renderers and consumed by the formatter and the TUI.
type NodeKind int

const (
	// GridNode is the root of a rendered category view.
	GridNode NodeKind = iota
	// ArtworkGroupNode wraps the nodes for one artwork.
	ArtworkGroupNode
	// ImageNode references a loadable image by asset path.
	ImageNode
	// TitleNode carries an artwork title or page heading.
	TitleNode
	// YearNode carries an artwork's year label.
	YearNode
	// PlaceholderNode stands in for a missing image or an empty grid.
	PlaceholderNode
	// MenuNode is the root of a rendered navigation menu.
	MenuNode
	// MenuItemNode is one navigation entry with a target name.
	MenuItemNode
)

func (k NodeKind) String() string {
	switch k {
	case GridNode:
		return "grid"
	case ArtworkGroupNode:
		return "artwork"
	case ImageNode:
		return "image"
	case TitleNode:
		return "title"
	case YearNode:
		return "year"
	case PlaceholderNode:
		return "placeholder"
	case MenuNode:
		return "menu"
	case MenuItemNode:
		return "menu-item"
	default:
		return "unknown"
	}
}

// Node is one element of a presentation tree.
//
// Text holds the visible label for title, year, placeholder and menu-item
// nodes. Path holds the asset path for image nodes. Target holds the
// navigation target for menu-item nodes.
type Node struct {
	Kind     NodeKind
	Text     string
	Path     string
	Target   string
	Children []Node
}

// FindAll returns every node of kind k in the subtree rooted at n, in
// document order.
func (n Node) FindAll(k NodeKind) []Node {
	var found []Node
	if n.Kind == k {
		found = append(found, n)
	}
	for _, child := range n.Children {
		found = append(found, child.FindAll(k)...)
	}
	return found
}
