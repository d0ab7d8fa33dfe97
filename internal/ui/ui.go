package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/folio/internal/app"
	"github.com/desertthunder/folio/internal/models"
	"github.com/desertthunder/folio/internal/prefetch"
	"github.com/desertthunder/folio/internal/router"
	"github.com/desertthunder/folio/internal/view"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	CategoryView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	ctrl         *app.Controller
	width        int
	height       int
	menu         list.Model
	state        router.State
	artworks     []models.Artwork
	bar          progress.Model
	warmup       prefetch.Progress
	progressChan chan prefetch.Update
	warmupDone   bool
	help         help.Model
	keys         keyMap
}

type categoryOpenedMsg struct {
	state    router.State
	artworks []models.Artwork
}

type progressUpdateMsg prefetch.Update

type prefetchDoneMsg struct{}

// NewModel creates a TUI model over a started controller.
//
// progressChan may be nil when no prefetch run is active; the progress
// bar then stays hidden.
func NewModel(ctx context.Context, ctrl *app.Controller, progressChan chan prefetch.Update) *Model {
	categories := ctrl.Categories()
	items := make([]list.Item, len(categories))
	for i, category := range categories {
		items[i] = categoryItem{category: category}
	}

	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Portfolio"
	menu.SetShowHelp(false)

	return &Model{
		ctx:          ctx,
		view:         HomeView,
		ctrl:         ctrl,
		menu:         menu,
		bar:          progress.New(progress.WithDefaultGradient()),
		progressChan: progressChan,
		warmupDone:   progressChan == nil,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts listening for prefetch progress.
func (m *Model) Init() tea.Cmd {
	return m.waitForProgress()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case CategoryView:
			return m.handleCategoryKeys(msg)
		}

	case categoryOpenedMsg:
		m.state = msg.state
		m.artworks = msg.artworks
		if msg.state.Kind == router.KindCategory {
			m.view = CategoryView
		} else {
			m.view = HomeView
		}
		return m, nil

	case progressUpdateMsg:
		m.warmup = msg.Progress
		return m, m.waitForProgress()

	case prefetchDoneMsg:
		m.warmupDone = true
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == HomeView {
		m.menu, cmd = m.menu.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case CategoryView:
		return m.renderCategory()
	default:
		return m.renderHome()
	}
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.menu.SelectedItem().(categoryItem); ok {
			return m, m.visit(item.category.Name)
		}
	case "right":
		return m, m.forward()
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "left":
		return m, m.back()
	case "right":
		return m, m.forward()
	case "g":
		return m, m.visit("home")
	}
	return m, nil
}

func (m *Model) visit(target string) tea.Cmd {
	return func() tea.Msg {
		state, artworks := m.ctrl.Visit(m.ctx, target)
		return categoryOpenedMsg{state: state, artworks: artworks}
	}
}

func (m *Model) back() tea.Cmd {
	return func() tea.Msg {
		state, _ := m.ctrl.Back(m.ctx)
		return categoryOpenedMsg{state: state, artworks: m.artworksFor(state)}
	}
}

func (m *Model) forward() tea.Cmd {
	return func() tea.Msg {
		state, _ := m.ctrl.Forward(m.ctx)
		return categoryOpenedMsg{state: state, artworks: m.artworksFor(state)}
	}
}

func (m *Model) artworksFor(state router.State) []models.Artwork {
	if state.Kind != router.KindCategory {
		return nil
	}
	category, ok := m.ctrl.Store().Get(state.Category)
	if !ok {
		return nil
	}
	return category.Artworks
}

func (m *Model) waitForProgress() tea.Cmd {
	if m.progressChan == nil {
		return nil
	}

	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return prefetchDoneMsg{}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderHome() string {
	sections := []string{m.menu.View()}

	if bar := m.renderWarmup(); bar != "" {
		sections = append(sections, bar)
	}

	sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderCategory() string {
	title := m.state.Category
	if category, ok := m.ctrl.Store().Get(m.state.Category); ok {
		title = category.DisplayName
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())

	if bar := m.renderWarmup(); bar != "" {
		b.WriteString("\n\n")
		b.WriteString(bar)
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.forward, m.keys.home, m.keys.quit}))
	return b.String()
}

// renderGrid walks the rendered node tree so the terminal view mirrors
// the web grid, placeholders included.
func (m *Model) renderGrid() string {
	var broken view.ImageStatus
	if cache := m.ctrl.Prefetch(); cache != nil {
		broken = cache.Failed
	}

	grid := view.RenderGrid(m.artworks, broken)

	var b strings.Builder
	for _, child := range grid.Children {
		switch child.Kind {
		case models.PlaceholderNode:
			b.WriteString(styles.placeholder.Render(child.Text))
			b.WriteString("\n")
		case models.ArtworkGroupNode:
			b.WriteString(m.renderArtwork(child))
		}
	}
	return b.String()
}

func (m *Model) renderArtwork(group models.Node) string {
	var b strings.Builder
	for _, node := range group.Children {
		switch node.Kind {
		case models.ImageNode:
			b.WriteString(fmt.Sprintf("  [%s]\n", node.Path))
		case models.PlaceholderNode:
			b.WriteString(styles.placeholder.Render(fmt.Sprintf("  (%s)", node.Text)))
			b.WriteString("\n")
		case models.TitleNode:
			b.WriteString(styles.ok.Render("  " + node.Text))
			b.WriteString("\n")
		case models.YearNode:
			b.WriteString(styles.year.Render("    " + node.Text))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderWarmup() string {
	if m.warmupDone && m.warmup.Total == 0 {
		return ""
	}

	label := fmt.Sprintf("warming images %d/%d", m.warmup.Loaded, m.warmup.Total)
	if m.warmupDone {
		label = styles.help.Render(fmt.Sprintf("images warmed %d/%d", m.warmup.Loaded, m.warmup.Total))
	}

	return fmt.Sprintf("%s\n%s", m.bar.ViewAs(m.warmup.Percentage/100), label)
}
