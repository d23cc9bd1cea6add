package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressSetup(t *testing.T, m SetupModel, keys ...tea.KeyMsg) SetupModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(SetupModel)
	}
	return m
}

func TestSetupSelection(t *testing.T) {
	var (
		left  = tea.KeyMsg{Type: tea.KeyLeft}
		right = tea.KeyMsg{Type: tea.KeyRight}
		down  = tea.KeyMsg{Type: tea.KeyDown}
		enter = tea.KeyMsg{Type: tea.KeyEnter}
	)

	m := NewSetupModel("Mahjong", 80, 24)
	if m.Selected() != nil {
		t.Fatal("new setup should still be choosing")
	}

	// difficulty wraps backwards from normal to fixed
	m = pressSetup(t, m, left, down, right, right, down, enter)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after Start")
	}
	want := SetupSelection{Difficulty: "fixed", Width: 8, Height: 4}
	if *sel != want {
		t.Errorf("Selected() = %+v, want %+v", *sel, want)
	}
}

func TestSetupEnterCyclesSettingRows(t *testing.T) {
	m := NewSetupModel("Mahjong", 80, 24)
	m = pressSetup(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() != nil {
		t.Fatal("Enter on a setting row should not start")
	}
	if difficultyChoices[m.difficulty] != "easy" {
		t.Errorf("difficulty = %q, want easy", difficultyChoices[m.difficulty])
	}
}

func TestSetupBack(t *testing.T) {
	m := NewSetupModel("Mahjong", 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SetupModel)

	if !m.WantsBack() || m.IsQuitting() || cmd == nil {
		t.Errorf("Esc: back=%v quit=%v cmd=%v", m.WantsBack(), m.IsQuitting(), cmd != nil)
	}
	if m.Selected() != nil {
		t.Error("back should not produce a selection")
	}
}

func TestSetupApply(t *testing.T) {
	g := &fakeGame{}
	SetupSelection{Difficulty: "hard", Width: 10, Height: 6}.Apply(g)

	if g.difficulty != "hard" || g.width != 10 || g.height != 6 {
		t.Errorf("Configure got %q %dx%d", g.difficulty, g.width, g.height)
	}

	// games without Configure are left alone
	SetupSelection{Difficulty: "hard"}.Apply(struct{}{})
}
