package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// probe records every toggle the starter makes.
type probe struct {
	controls  []bool
	hud       []bool
	starts    int
	stops     int
	enables   int
	disables  int
	cursorErr error
	cursors   int
}

func (p *probe) SetControlsEnabled(on bool) { p.controls = append(p.controls, on) }

func (p *probe) SetVisible(v bool) { p.hud = append(p.hud, v) }

func (p *probe) Start() { p.starts++ }

func (p *probe) Stop() { p.stops++ }

func (p *probe) CreateCursor() error {
	if p.cursorErr != nil {
		return p.cursorErr
	}
	p.cursors++
	return nil
}

func (p *probe) Enable() { p.enables++ }

func (p *probe) Disable() { p.disables++ }

func last(v []bool) bool {
	return len(v) > 0 && v[len(v)-1]
}

func newStarter(intro float64, p *probe, completed *int) *core.GameStarter {
	s := core.NewGameStarter(intro, p, []core.Visible{p}, p, p, func() { *completed++ })
	s.Reset()
	s.Begin()
	return s
}

func TestStarterActivation(t *testing.T) {
	p := &probe{}
	completed := 0
	s := newStarter(1, p, &completed)
	audio := &cueRecorder{}
	s.SetAudio(audio)

	s.Update(0.5)
	if s.Phase() != core.PhaseIntro || last(p.controls) || p.starts != 0 {
		t.Fatalf("activation before intro ended: phase %v", s.Phase())
	}

	s.Update(0.5)
	if s.Phase() != core.PhasePlaying {
		t.Fatalf("Phase() = %v, want playing", s.Phase())
	}
	if !last(p.controls) || !last(p.hud) || p.starts != 1 || p.enables != 1 || p.cursors != 1 {
		t.Errorf("incomplete activation: %+v", p)
	}
	if audio.count(core.CueMusic) != 1 {
		t.Errorf("music cued %d times, want 1", audio.count(core.CueMusic))
	}

	s.Update(5)
	if err := s.Skip(); err != nil {
		t.Fatalf("Skip() while playing error = %v", err)
	}
	if completed != 1 || p.starts != 1 {
		t.Errorf("completion fired %d times, timer started %d times", completed, p.starts)
	}
}

func TestStarterActivationIsAtomic(t *testing.T) {
	p := &probe{cursorErr: errors.New("no scene")}
	completed := 0
	s := newStarter(0.1, p, &completed)

	s.Update(1)

	if !s.Stalled() || s.Phase() != core.PhaseIntro {
		t.Fatalf("failed activation: stalled %v, phase %v", s.Stalled(), s.Phase())
	}
	if last(p.controls) || last(p.hud) || p.starts != 0 || p.enables != 0 || completed != 0 {
		t.Errorf("partial activation leaked: %+v, completed %d", p, completed)
	}

	p.cursorErr = nil
	if err := s.Skip(); err != nil {
		t.Fatalf("manual Skip() error = %v", err)
	}
	if s.Phase() != core.PhasePlaying || s.Stalled() || completed != 1 {
		t.Errorf("retry failed: phase %v, completed %d", s.Phase(), completed)
	}
}

func TestStarterPauseAndEnd(t *testing.T) {
	p := &probe{}
	completed := 0
	s := newStarter(0, p, &completed)
	var ends []core.Outcome
	s.SetOnEnd(func(o core.Outcome) { ends = append(ends, o) })

	if s.Pause() {
		t.Error("Pause during intro should be refused")
	}
	if err := s.Skip(); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}

	s.TogglePause()
	if s.Phase() != core.PhasePaused || p.stops != 1 {
		t.Errorf("after pause: phase %v, stops %d", s.Phase(), p.stops)
	}
	s.TogglePause()
	if s.Phase() != core.PhasePlaying || p.starts != 2 {
		t.Errorf("after resume: phase %v, starts %d", s.Phase(), p.starts)
	}

	s.End(core.OutcomeWon)
	s.End(core.OutcomeTimedOut)
	if len(ends) != 1 || s.Outcome() != core.OutcomeWon {
		t.Errorf("ends = %v, outcome %v", ends, s.Outcome())
	}
	if p.disables != 1 {
		t.Errorf("logic disabled %d times, want 1", p.disables)
	}
	if s.Resume() {
		t.Error("Resume after end should be refused")
	}
}

func TestStarterEndBeforeBegin(t *testing.T) {
	p := &probe{}
	s := core.NewGameStarter(0, p, nil, p, p, nil)
	s.Reset()
	s.End(core.OutcomeAbandoned)

	if s.Phase() != core.PhaseNotStarted || p.disables != 0 {
		t.Errorf("End before Begin changed state: %v", s.Phase())
	}
}
