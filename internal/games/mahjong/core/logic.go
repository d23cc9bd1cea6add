package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// DeadlockPolicy decides what happens when no matchable pair is left.
type DeadlockPolicy string

const (
	// DeadlockDraw releases reserve tiles until a move appears and
	// reshuffles once the reserve is empty.
	DeadlockDraw DeadlockPolicy = "draw"
	// DeadlockShuffle permutes the faces of the tiles in play.
	DeadlockShuffle DeadlockPolicy = "shuffle"
	// DeadlockEnd ends the session.
	DeadlockEnd DeadlockPolicy = "end"
)

// ParseDeadlockPolicy resolves a configured policy name.
func ParseDeadlockPolicy(s string) (DeadlockPolicy, error) {
	switch p := DeadlockPolicy(s); p {
	case DeadlockDraw, DeadlockShuffle, DeadlockEnd:
		return p, nil
	case "":
		return DeadlockDraw, nil
	}
	return "", fmt.Errorf("mahjong: unknown deadlock policy %q", s)
}

// Table is the board surface the selection logic works against.
type Table interface {
	Selectable(id TileID) bool
	Mark(id TileID, selected bool)
	TryMatch(a, b TileID) MatchResult
	IsCleared() bool
	ActiveCount() int
	FindMove() (TileID, TileID, bool)
	HasAvailableMove() bool
	Release(id TileID) error
	Reshuffle() bool
	Size() (width, height, layers int)
	TopTileAt(row, col int) (Tile, bool)
	TrayTiles() []Tile
}

// Clock gates input on the countdown.
type Clock interface {
	IsPlaying() bool
	Remaining() float64
}

// Scorer receives match outcomes.
type Scorer interface {
	RegisterMatch(sym Symbol) int
	RegisterMismatch()
	RegisterTimeBonus(remaining float64) int
}

// Reserve is the draw side of the tile holder.
type Reserve interface {
	Draw() (TileID, error)
}

// Ender ends the session with an outcome.
type Ender interface {
	End(o Outcome)
}

// LogicOptions tunes the selection controller.
type LogicOptions struct {
	Deadlock      DeadlockPolicy
	FlashDuration float64 // seconds a mismatch stays highlighted
}

// selectionState is the inner state of an enabled controller, or the
// disabled gate itself. Each state implements only its legal transitions.
type selectionState interface {
	name() string
	pick(l *GameLogic, id TileID)
}

type disabledState struct{}

func (disabledState) name() string { return "disabled" }

func (disabledState) pick(*GameLogic, TileID) {}

type idleState struct{}

func (idleState) name() string { return "idle" }

func (idleState) pick(l *GameLogic, id TileID) {
	if !l.board.Selectable(id) {
		l.invalidPick(id)
		return
	}
	l.board.Mark(id, true)
	l.audio.Play(CueSelect)
	l.state = oneSelectedState{id: id}
}

type oneSelectedState struct {
	id TileID
}

func (oneSelectedState) name() string { return "one-selected" }

func (s oneSelectedState) pick(l *GameLogic, id TileID) {
	if id == s.id {
		l.board.Mark(id, false)
		l.state = idleState{}
		return
	}
	if !l.board.Selectable(id) {
		l.invalidPick(id)
		return
	}

	l.board.Mark(s.id, false)
	l.state = idleState{}
	res := l.board.TryMatch(s.id, id)
	if res.Matched {
		l.matched(res)
		return
	}
	l.rejected(s.id, id, res)
}

// GameLogic is the selection controller: it turns picks into match
// attempts and owns the enable gate.
type GameLogic struct {
	opts   LogicOptions
	board  Table
	clock  Clock
	score  Scorer
	holder Reserve
	scene  Scene
	ender  Ender
	audio  AudioSink
	logger *log.Logger

	state  selectionState
	cursor *Cursor

	flash    map[TileID]float64
	hint     [2]TileID
	hintLeft float64
}

// NewGameLogic creates a disabled controller.
func NewGameLogic(opts LogicOptions, board Table, clock Clock, score Scorer, scene Scene, audio AudioSink, logger *log.Logger) *GameLogic {
	if opts.Deadlock == "" {
		opts.Deadlock = DeadlockDraw
	}
	if opts.FlashDuration <= 0 {
		opts.FlashDuration = 0.5
	}
	if audio == nil {
		audio = NopAudio{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GameLogic{
		opts:   opts,
		board:  board,
		clock:  clock,
		score:  score,
		scene:  scene,
		audio:  audio,
		logger: logger,
		state:  disabledState{},
		flash:  make(map[TileID]float64),
		hint:   [2]TileID{NoTile, NoTile},
	}
}

// SetTileHolder binds the reserve used by the draw policy.
func (l *GameLogic) SetTileHolder(r Reserve) { l.holder = r }

// SetEnder binds the session lifecycle that receives outcomes.
func (l *GameLogic) SetEnder(e Ender) { l.ender = e }

// Enable opens the gate. It has no effect when already enabled.
func (l *GameLogic) Enable() {
	if _, ok := l.state.(disabledState); ok {
		l.state = idleState{}
	}
}

// Disable closes the gate and drops any pending selection.
func (l *GameLogic) Disable() {
	if s, ok := l.state.(oneSelectedState); ok {
		l.board.Mark(s.id, false)
	}
	l.state = disabledState{}
}

// Enabled reports whether picks are accepted.
func (l *GameLogic) Enabled() bool {
	_, off := l.state.(disabledState)
	return !off
}

// StateName returns "disabled", "idle" or "one-selected".
func (l *GameLogic) StateName() string { return l.state.name() }

// Selected returns the pending selection, if any.
func (l *GameLogic) Selected() (TileID, bool) {
	if s, ok := l.state.(oneSelectedState); ok {
		return s.id, true
	}
	return NoTile, false
}

// Pick applies one player pick. Picks are ignored while disabled or
// while the timer is not running.
func (l *GameLogic) Pick(id TileID) {
	if l.clock != nil && !l.clock.IsPlaying() {
		return
	}
	l.state.pick(l, id)
}

func (l *GameLogic) invalidPick(id TileID) {
	l.logger.Debug("pick ignored", "tile", id, "err", ErrInvalidPick)
}

func (l *GameLogic) matched(res MatchResult) {
	points := l.score.RegisterMatch(res.Symbol)
	l.clearHint()
	l.audio.Play(CueMatch)
	l.logger.Debug("pair matched", "symbol", res.Symbol, "points", points)

	if l.board.IsCleared() {
		var remaining float64
		if l.clock != nil {
			remaining = l.clock.Remaining()
		}
		bonus := l.score.RegisterTimeBonus(remaining)
		l.audio.Play(CueWin)
		l.logger.Info("board cleared", "time_bonus", bonus)
		l.end(OutcomeWon)
		return
	}
	if l.board.ActiveCount() == 0 {
		l.drawRest()
		return
	}
	if !l.board.HasAvailableMove() {
		l.resolveDeadlock()
	}
}

// drawRest puts reserve tiles on the tray once the table is empty.
// This is play continuing, not a deadlock, so the policy does not apply.
func (l *GameLogic) drawRest() {
	for !l.board.HasAvailableMove() {
		id, err := l.draw()
		if err != nil {
			l.logger.Warn("reserve draw failed", "err", err)
			l.audio.Play(CueDeadlock)
			l.end(OutcomeDeadlocked)
			return
		}
		l.audio.Play(CueDraw)
		l.logger.Debug("reserve tile drawn", "tile", id)
	}
}

func (l *GameLogic) rejected(a, b TileID, res MatchResult) {
	l.flash[a] = l.opts.FlashDuration
	l.flash[b] = l.opts.FlashDuration
	l.score.RegisterMismatch()
	l.audio.Play(CueMismatch)
	l.logger.Debug("match rejected", "a", a, "b", b, "reason", res.Reason)
}

func (l *GameLogic) resolveDeadlock() {
	l.logger.Info("no moves left", "policy", l.opts.Deadlock)
	switch l.opts.Deadlock {
	case DeadlockDraw:
		for !l.board.HasAvailableMove() {
			id, err := l.draw()
			if errors.Is(err, ErrReserveEmpty) {
				l.logger.Info("reserve empty, reshuffling")
				l.reshuffleOrEnd()
				return
			}
			if err != nil {
				l.logger.Warn("reserve draw failed", "err", err)
				l.reshuffleOrEnd()
				return
			}
			l.audio.Play(CueDraw)
			l.logger.Debug("reserve tile drawn", "tile", id)
		}
	case DeadlockShuffle:
		l.reshuffleOrEnd()
	default:
		l.audio.Play(CueDeadlock)
		l.end(OutcomeDeadlocked)
	}
}

func (l *GameLogic) draw() (TileID, error) {
	if l.holder == nil {
		return NoTile, ErrReserveEmpty
	}
	id, err := l.holder.Draw()
	if err != nil {
		return NoTile, err
	}
	return id, l.board.Release(id)
}

func (l *GameLogic) reshuffleOrEnd() {
	if l.board.Reshuffle() {
		l.audio.Play(CueShuffle)
		l.logger.Info("tiles reshuffled")
		return
	}
	l.audio.Play(CueDeadlock)
	l.end(OutcomeDeadlocked)
}

func (l *GameLogic) end(o Outcome) {
	l.Disable()
	if l.ender != nil {
		l.ender.End(o)
	}
}

// TimeUp handles timer expiry.
func (l *GameLogic) TimeUp() {
	l.audio.Play(CueTimeout)
	l.logger.Info("time up")
	l.end(OutcomeTimedOut)
}

// Hint highlights a matchable pair and breaks the current combo.
func (l *GameLogic) Hint() (TileID, TileID, bool) {
	if !l.Enabled() || (l.clock != nil && !l.clock.IsPlaying()) {
		return NoTile, NoTile, false
	}
	a, b, ok := l.board.FindMove()
	if !ok {
		return NoTile, NoTile, false
	}
	l.hint = [2]TileID{a, b}
	l.hintLeft = 4 * l.opts.FlashDuration
	l.score.RegisterMismatch()
	return a, b, true
}

func (l *GameLogic) clearHint() {
	l.hint = [2]TileID{NoTile, NoTile}
	l.hintLeft = 0
}

// Update decays the mismatch flash and hint highlight.
func (l *GameLogic) Update(dt float64) {
	for id, left := range l.flash {
		if left -= dt; left <= 0 {
			delete(l.flash, id)
		} else {
			l.flash[id] = left
		}
	}
	if l.hintLeft > 0 {
		if l.hintLeft -= dt; l.hintLeft <= 0 {
			l.clearHint()
		}
	}
}

// Flashing reports whether a tile shows the mismatch highlight.
func (l *GameLogic) Flashing(id TileID) bool {
	_, ok := l.flash[id]
	return ok
}

// Hinted reports whether a tile is part of the current hint.
func (l *GameLogic) Hinted(id TileID) bool {
	return id != NoTile && (l.hint[0] == id || l.hint[1] == id)
}

// CreateCursor attaches the selection cursor to the scene.
func (l *GameLogic) CreateCursor() error {
	if l.cursor != nil {
		return nil
	}
	if l.scene == nil {
		return ErrNoScene
	}
	c := &Cursor{}
	if err := l.scene.Attach(c); err != nil {
		return fmt.Errorf("mahjong: attach cursor: %w", err)
	}
	l.cursor = c
	return nil
}

// DisposeCursor detaches the cursor and disables the controller.
// Safe to call at any time.
func (l *GameLogic) DisposeCursor() {
	if l.cursor != nil {
		if l.scene != nil {
			l.scene.Detach(l.cursor)
		}
		l.cursor = nil
	}
	l.Disable()
	clear(l.flash)
	l.clearHint()
}

// Cursor returns the attached cursor or nil.
func (l *GameLogic) Cursor() *Cursor { return l.cursor }

// MoveCursor shifts the cursor over the table and tray.
func (l *GameLogic) MoveCursor(dr, dc int) {
	if l.cursor == nil {
		return
	}
	w, h, _ := l.board.Size()
	l.cursor.Move(dr, dc, w, h, len(l.board.TrayTiles()))
}

// CursorTile returns the tile under the cursor.
func (l *GameLogic) CursorTile() (TileID, bool) {
	if l.cursor == nil {
		return NoTile, false
	}
	_, h, _ := l.board.Size()
	if l.cursor.OnTray(h) {
		tray := l.board.TrayTiles()
		if l.cursor.Col < 0 || l.cursor.Col >= len(tray) {
			return NoTile, false
		}
		return tray[l.cursor.Col].ID, true
	}
	t, ok := l.board.TopTileAt(l.cursor.Row, l.cursor.Col)
	return t.ID, ok
}
