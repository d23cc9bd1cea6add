package core

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options configures a session.
type Options struct {
	Board    BoardOptions
	Score    ScoreOptions
	Logic    LogicOptions
	Duration float64 // countdown seconds; <= 0 plays untimed
	Intro    float64 // intro seconds before play starts on its own
	Seed     int64
}

// DefaultOptions returns a five minute classic session.
func DefaultOptions() Options {
	return Options{
		Board:    DefaultBoardOptions(),
		Score:    DefaultScoreOptions(),
		Logic:    LogicOptions{Deadlock: DeadlockDraw, FlashDuration: 0.5},
		Duration: 300,
		Intro:    2,
	}
}

// Env holds the presentation collaborators. Every field is optional.
type Env struct {
	Scene      Scene
	Controls   Controls
	Audio      AudioSink
	Logger     *log.Logger
	Scaler     WindowScaler
	OnComplete func()       // play started
	OnEnd      func(Result) // session ended
}

// Result summarises a finished session.
type Result struct {
	SessionID string
	Outcome   Outcome
	Score     int
	Matches   int
	BestCombo int
	Tiles     int
	Elapsed   float64
}

// Session is the composition root: it builds the collaborators, links
// them, and drives them in a fixed order once per frame.
type Session struct {
	Board   *Board
	Logic   *GameLogic
	Timer   *GameTimer
	Score   *ScoreManager
	Holder  *TileHolder
	Starter *GameStarter

	opts   Options
	env    Env
	logger *log.Logger

	id      string
	tiles   int
	elapsed float64
	pending []TileID
	result  *Result
}

// NewSession wires a session. Call CreateGame to deal the first board.
func NewSession(opts Options, env Env) *Session {
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if env.Scene == nil {
		env.Scene = NewMemoryScene()
	}
	if env.Audio == nil {
		env.Audio = NopAudio{}
	}
	logger := env.Logger

	rng := rand.New(rand.NewSource(opts.Seed))
	timer := NewGameTimer(opts.Duration)
	score := NewScoreManager(opts.Score, env.Scaler)
	holder := NewTileHolder(opts.Board.Reserve)
	board := NewBoard(opts.Board, rng, logger.With("component", "board"))
	logic := NewGameLogic(opts.Logic, board, timer, score, env.Scene, env.Audio, logger.With("component", "logic"))

	board.SetTileHolder(holder)
	logic.SetTileHolder(holder)
	timer.SetGameLogic(logic)

	starter := NewGameStarter(opts.Intro, env.Controls, []Visible{holder, score, timer}, timer, logic, env.OnComplete)
	starter.SetAudio(env.Audio)
	starter.SetLogger(logger.With("component", "starter"))
	logic.SetEnder(starter)

	s := &Session{
		Board:   board,
		Logic:   logic,
		Timer:   timer,
		Score:   score,
		Holder:  holder,
		Starter: starter,
		opts:    opts,
		env:     env,
		logger:  logger,
	}
	starter.SetOnEnd(s.finish)
	starter.Reset()
	return s
}

// CreateGame ends any running session and deals a new width x height
// board. On error the previous board is kept and no session starts.
func (s *Session) CreateGame(width, height int) error {
	s.abandon()
	if err := s.Board.CreateMap(width, height); err != nil {
		return err
	}
	s.begin()
	return nil
}

// CreateGameFromLayout is CreateGame over an explicit layout.
func (s *Session) CreateGameFromLayout(layout Layout) error {
	s.abandon()
	if err := s.Board.CreateMapFromLayout(layout); err != nil {
		return err
	}
	s.begin()
	return nil
}

// DealGame is CreateGame over a prepared arrangement.
func (s *Session) DealGame(tiles []Tile) error {
	s.abandon()
	if err := s.Board.Deal(tiles); err != nil {
		return err
	}
	s.begin()
	return nil
}

func (s *Session) abandon() {
	switch s.Starter.Phase() {
	case PhaseIntro, PhasePlaying, PhasePaused:
		s.Starter.End(OutcomeAbandoned)
	}
	s.Logic.DisposeCursor()
	s.pending = nil
}

func (s *Session) begin() {
	s.id = uuid.NewString()
	s.tiles = len(s.Board.Tiles())
	s.elapsed = 0
	s.result = nil
	s.Timer.Reset(s.opts.Duration)
	s.Score.Reset()
	s.Starter.Reset()
	s.Starter.Begin()
	s.logger.Info("new game", "session", s.id, "tiles", s.tiles, "reserve", s.Holder.Len())
}

// Dispose ends the session and releases the board and cursor.
// Safe to call at any time.
func (s *Session) Dispose() {
	s.abandon()
	s.Board.Dispose()
	s.Timer.Stop()
}

// Queue schedules a pick for the next frame.
func (s *Session) Queue(id TileID) {
	s.pending = append(s.pending, id)
}

// QueueCursorPick schedules a pick of the tile under the cursor.
func (s *Session) QueueCursorPick() {
	if id, ok := s.Logic.CursorTile(); ok {
		s.Queue(id)
		return
	}
	s.logger.Debug("pick ignored", "err", ErrInvalidPick, "reason", "no tile under cursor")
}

// Frame advances every collaborator by dt seconds. Picks queued since the
// last frame are applied after the timer so they see this frame's clock.
func (s *Session) Frame(dt float64) {
	s.Starter.Update(dt)
	s.Timer.Update(dt)
	for _, id := range s.pending {
		s.Logic.Pick(id)
	}
	s.pending = s.pending[:0]
	s.Logic.Update(dt)
	s.Board.Update(dt)
	s.Holder.Update(dt)
	if s.Starter.Phase() == PhasePlaying {
		s.Score.Update(dt)
		s.elapsed += dt
	}
}

// TogglePause pauses or resumes play.
func (s *Session) TogglePause() {
	s.Starter.TogglePause()
}

func (s *Session) finish(o Outcome) {
	r := Result{
		SessionID: s.id,
		Outcome:   o,
		Score:     s.Score.Score(),
		Matches:   s.Score.Matches(),
		BestCombo: s.Score.BestCombo(),
		Tiles:     s.tiles,
		Elapsed:   s.elapsed,
	}
	s.result = &r
	s.logger.Info("game over", "session", s.id, "outcome", o, "score", r.Score, "matches", r.Matches)
	if s.env.OnEnd != nil {
		s.env.OnEnd(r)
	}
}

// ID returns the current session id.
func (s *Session) ID() string { return s.id }

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.Starter.Phase() }

// Elapsed returns the seconds spent playing.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Result returns the summary of the last ended session.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}
