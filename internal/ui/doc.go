// Package ui implements an interactive terminal portfolio browser using
// bubbletea's Elm architecture.
//
// The TUI mirrors the web views:
//  1. [HomeView] : Browse the category menu
//  2. [CategoryView] : Walk a category's artwork grid
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. Image warm-up progress flows through a channel from the
// prefetch cache into a bubbles progress bar, providing non-blocking
// status reporting while browsing.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// left/right for history back/forward, with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
