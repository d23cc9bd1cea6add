package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mahjong/internal/core"
)

// SetupSelection holds the choices made on the setup screen.
// Zero sizes keep the configured board.
type SetupSelection struct {
	Difficulty string
	Width      int
	Height     int
}

// configurable is implemented by games that accept per-instance settings.
type configurable interface {
	Configure(difficulty string, width, height int)
}

// Apply passes the selection to the game when it accepts settings.
func (s SetupSelection) Apply(g any) {
	if c, ok := g.(configurable); ok {
		c.Configure(s.Difficulty, s.Width, s.Height)
	}
}

var difficultyChoices = []string{"normal", "easy", "hard", "fixed"}

type boardSize struct {
	label         string
	width, height int
}

var boardSizes = []boardSize{
	{"From config", 0, 0},
	{"Small 6x4", 6, 4},
	{"Medium 8x4", 8, 4},
	{"Large 10x6", 10, 6},
	{"Huge 12x6", 12, 6},
}

const (
	setupRowDifficulty = iota
	setupRowSize
	setupRowStart
	setupRows
)

// SetupModel lets the player choose difficulty and board size before a
// variant starts.
type SetupModel struct {
	title      string
	cursor     int
	difficulty int
	size       int
	width      int
	height     int
	keyMapper  *KeyMapper
	choosing   bool
	quitting   bool
	back       bool
}

// NewSetupModel creates the setup screen for the titled variant.
func NewSetupModel(title string, width, height int) SetupModel {
	return SetupModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < setupRows-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.cycle(-1)
	case MenuActionRight:
		m.cycle(1)
	case MenuActionSelect:
		if m.cursor != setupRowStart {
			m.cycle(1)
			return m, nil
		}
		m.choosing = false
		return m, tea.Quit
	}
	return m, nil
}

func (m *SetupModel) cycle(step int) {
	switch m.cursor {
	case setupRowDifficulty:
		m.difficulty = wrap(m.difficulty+step, len(difficultyChoices))
	case setupRowSize:
		m.size = wrap(m.size+step, len(boardSizes))
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Difficulty: < %s >", difficultyChoices[m.difficulty]),
		fmt.Sprintf("Board:      < %s >", boardSizes[m.size].label),
		"Start",
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Start  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SetupModel) Selected() *SetupSelection {
	if m.choosing {
		return nil
	}
	size := boardSizes[m.size]
	return &SetupSelection{
		Difficulty: difficultyChoices[m.difficulty],
		Width:      size.width,
		Height:     size.height,
	}
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}

// RunSetup runs the setup screen and returns the selection, or nil when
// the player backed out or quit.
func RunSetup(title string, cfg core.RuntimeConfig) (*SetupSelection, core.RuntimeConfig, error) {
	model := NewSetupModel(title, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(SetupModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
