package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func step(t *testing.T, m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SessionModel)
	}
	return m, cmd
}

func findItem(t *testing.T, m SessionModel, id string) SessionModel {
	t.Helper()
	for range m.menu.items {
		if m.menu.items[m.menu.cursor].GameID == id {
			return m
		}
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	t.Fatalf("menu has no %q", id)
	return m
}

func TestSessionFlowMenuSetupGame(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), ModelOptions{AllowBack: true})
	m = findItem(t, m, "fake")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenSetup {
		t.Fatalf("screen = %v, want setup", m.screen)
	}

	// easy, then Start
	m, _ = step(t, m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	g := lastFake
	if g.difficulty != "easy" || g.width != 0 || g.resets != 1 {
		t.Errorf("game configured %q %dx%d, resets %d", g.difficulty, g.width, g.height, g.resets)
	}

	// back to the menu once the game is over
	g.win(5)
	m, _ = step(t, m, TickMsg{}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.game != nil {
		t.Errorf("screen = %v after back, want menu", m.screen)
	}
}

func TestSessionSetupBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), ModelOptions{})
	m = findItem(t, m, "fake")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Errorf("screen = %v quitting = %v, want menu", m.screen, m.quitting)
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := NewSessionModel(openStore(t), testConfig(), ModelOptions{})

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	if m.View() == "" {
		t.Error("scoreboard should render")
	}

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Errorf("screen = %v after back, want menu", m.screen)
	}
	if cmd != nil {
		t.Error("going back should not quit the program")
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), ModelOptions{})
	m, cmd := step(t, m, runeKey("q"))
	if !m.quitting || cmd == nil || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}
