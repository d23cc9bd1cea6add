package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseIntro
	PhasePlaying
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Outcome is how an ended session finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeTimedOut
	OutcomeDeadlocked
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeDeadlocked:
		return "deadlocked"
	case OutcomeAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Controls is the presentation input switch.
type Controls interface {
	SetControlsEnabled(on bool)
}

// Visible is a HUD element.
type Visible interface {
	SetVisible(v bool)
}

// Countdown is the timer side the starter drives.
type Countdown interface {
	Start()
	Stop()
}

// Activator is the controller side the starter drives.
type Activator interface {
	CreateCursor() error
	Enable()
	Disable()
}

// NopControls ignores control toggles.
type NopControls struct{}

func (NopControls) SetControlsEnabled(bool) {}

// GameStarter runs the intro and performs the one activation into play.
type GameStarter struct {
	intro    float64
	left     float64
	controls Controls
	hud      []Visible
	timer    Countdown
	logic    Activator
	audio    AudioSink
	logger   *log.Logger

	onComplete func()
	onEnd      func(Outcome)

	phase     Phase
	outcome   Outcome
	completed bool
	stalled   bool
}

// NewGameStarter wires the starter to its collaborators. onComplete fires
// once per session when play begins.
func NewGameStarter(intro float64, controls Controls, hud []Visible, timer Countdown, logic Activator, onComplete func()) *GameStarter {
	if controls == nil {
		controls = NopControls{}
	}
	return &GameStarter{
		intro:      max(intro, 0),
		controls:   controls,
		hud:        hud,
		timer:      timer,
		logic:      logic,
		audio:      NopAudio{},
		logger:     log.New(io.Discard),
		onComplete: onComplete,
	}
}

// SetAudio sets the sink for the music cue played on activation.
func (s *GameStarter) SetAudio(a AudioSink) {
	if a != nil {
		s.audio = a
	}
}

// SetLogger replaces the discard logger.
func (s *GameStarter) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetOnEnd registers the listener called once when the session ends.
func (s *GameStarter) SetOnEnd(fn func(Outcome)) {
	s.onEnd = fn
}

// Reset returns to NotStarted for a new session.
func (s *GameStarter) Reset() {
	s.phase = PhaseNotStarted
	s.outcome = OutcomeNone
	s.completed = false
	s.stalled = false
	s.left = s.intro
	s.controls.SetControlsEnabled(false)
	s.setHUD(false)
}

// Begin enters the intro.
func (s *GameStarter) Begin() {
	if s.phase != PhaseNotStarted {
		return
	}
	s.phase = PhaseIntro
	s.left = s.intro
	s.controls.SetControlsEnabled(false)
	s.setHUD(false)
}

// Update advances the intro and activates play when it runs out.
func (s *GameStarter) Update(dt float64) {
	if s.phase != PhaseIntro || s.stalled {
		return
	}
	s.left -= dt
	if s.left > 0 {
		return
	}
	s.left = 0
	if err := s.Skip(); err != nil {
		s.stalled = true
		s.logger.Error("session activation failed", "err", err)
	}
}

// Skip ends the intro now. Activation is all or nothing: the cursor is
// created first and nothing else changes if that fails.
func (s *GameStarter) Skip() error {
	if s.phase != PhaseIntro {
		return nil
	}
	if err := s.logic.CreateCursor(); err != nil {
		return fmt.Errorf("mahjong: start session: %w", err)
	}
	s.controls.SetControlsEnabled(true)
	s.setHUD(true)
	s.timer.Start()
	s.logic.Enable()
	s.phase = PhasePlaying
	s.stalled = false
	s.audio.Play(CueMusic)
	s.logger.Info("session started")

	if !s.completed {
		s.completed = true
		if s.onComplete != nil {
			s.onComplete()
		}
	}
	return nil
}

// Pause stops the clock; picks are ignored until Resume.
func (s *GameStarter) Pause() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.phase = PhasePaused
	s.timer.Stop()
	return true
}

// Resume restarts the clock after Pause.
func (s *GameStarter) Resume() bool {
	if s.phase != PhasePaused {
		return false
	}
	s.phase = PhasePlaying
	s.timer.Start()
	return true
}

// TogglePause flips between Playing and Paused.
func (s *GameStarter) TogglePause() {
	if !s.Pause() {
		s.Resume()
	}
}

// End finishes the session. Only the first call has an effect.
func (s *GameStarter) End(o Outcome) {
	if s.phase == PhaseEnded || s.phase == PhaseNotStarted {
		return
	}
	s.phase = PhaseEnded
	s.outcome = o
	s.timer.Stop()
	s.logic.Disable()
	s.logger.Info("session ended", "outcome", o)
	if s.onEnd != nil {
		s.onEnd(o)
	}
}

func (s *GameStarter) setHUD(v bool) {
	for _, h := range s.hud {
		h.SetVisible(v)
	}
}

func (s *GameStarter) Phase() Phase { return s.phase }

func (s *GameStarter) Outcome() Outcome { return s.outcome }

// IntroLeft returns the seconds of intro remaining.
func (s *GameStarter) IntroLeft() float64 { return s.left }

// Stalled reports whether automatic activation failed and waits for Skip.
func (s *GameStarter) Stalled() bool { return s.stalled }
