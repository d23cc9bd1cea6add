package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const menuFooter = "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"

// MenuItem is one registered variant as listed in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // 0 when nothing is recorded
}

func (it MenuItem) label() string {
	if it.Best <= 0 {
		return it.Title
	}
	return fmt.Sprintf("%s  (best %d)", it.Title, it.Best)
}

// menuItems lists the registered variants with their best scores.
func menuItems(store *storage.Store) []MenuItem {
	var items []MenuItem
	for _, info := range registry.List() {
		it := MenuItem{GameID: info.ID, Title: info.Title, Description: info.Description}
		if store != nil {
			if best, err := store.HighScore(info.ID); err == nil {
				it.Best = best
			}
		}
		items = append(items, it)
	}
	return items
}

// MenuModel picks a variant or opens the scoreboard.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting   bool
	scoreboard bool
	chosen     *MenuItem
}

// NewMenuModel lists every registered variant.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     menuItems(store),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.onKey(m.keyMapper.MapKeyToMenuAction(msg))
	}
	return m, nil
}

func (m MenuModel) onKey(action MenuAction) (tea.Model, tea.Cmd) {
	n := len(m.items)
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit
	case MenuActionUp:
		if n > 0 {
			m.cursor = wrap(m.cursor-1, n)
		}
	case MenuActionDown:
		if n > 0 {
			m.cursor = wrap(m.cursor+1, n)
		}
	case MenuActionSelect:
		if n == 0 {
			return m, nil
		}
		it := m.items[m.cursor]
		m.chosen = &it
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("M A H J O N G", m.width)),
		"",
		centerText("Choose a table", m.width),
		"",
	}
	for i, it := range m.items {
		if i == m.cursor {
			lines = append(lines, menuPickStyle.Render(centerText("> "+it.label(), m.width)))
			continue
		}
		lines = append(lines, centerText("  "+it.label(), m.width))
	}
	if m.cursor < len(m.items) {
		if desc := m.items[m.cursor].Description; desc != "" {
			lines = append(lines, "", menuDimStyle.Render(centerText(desc, m.width)))
		}
	}
	lines = append(lines, "", centerText(menuFooter, m.width), "")
	return strings.Join(lines, "\n")
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem { return m.chosen }

func (m MenuModel) IsQuitting() bool { return m.quitting }

func (m MenuModel) WantsScoreboard() bool { return m.scoreboard }

// Config returns the runtime config sized by the last resize.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

func centerText(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult is what the player did in the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.config}
	switch {
	case m.scoreboard:
		r.WantsScoreboard = true
	case m.chosen != nil && !m.quitting:
		r.GameID = m.chosen.GameID
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the menu until the player picks, opens scores, or quits.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
