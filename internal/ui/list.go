package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/folio/internal/models"
)

var _ list.Item = categoryItem{}

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	category *models.Category
}

func (i categoryItem) FilterValue() string { return i.category.DisplayName }
func (i categoryItem) Title() string       { return i.category.DisplayName }
func (i categoryItem) Description() string {
	count := len(i.category.Artworks)
	if count == 1 {
		return "1 work"
	}
	return fmt.Sprintf("%d works", count)
}
