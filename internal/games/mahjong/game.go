// Package mahjong provides the mahjong solitaire game for the platform.
// It adapts the session engine in the core subpackage to the registry.Game
// tick contract: keys and clicks become picks, ticks become frame time.
package mahjong

import (
	"cmp"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	platformcore "github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
)

// variant is a registered flavour of the game.
type variant struct {
	id     string
	title  string
	desc   string
	rule   string // overrides rules.match when set
	layout string // overrides board.layout when set
}

var variants = []variant{
	{id: "mahjong", title: "Mahjong", desc: "Classic solitaire: only free tiles match"},
	{id: "mahjong_relaxed", title: "Mahjong (Relaxed)", desc: "Any two equal faces match", rule: "any"},
	{id: "mahjong_pyramid", title: "Mahjong (Pyramid)", desc: "Stacked layers, free tiles only", rule: "free", layout: "pyramid"},
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// boardWidth and boardHeight override the configured board size when set.
var boardWidth, boardHeight int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	switch config.DifficultyPreset(preset) {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		difficultyPreset = config.DifficultyPreset(preset)
	default:
		difficultyPreset = ""
	}
}

// SetBoardSize overrides the configured board size. Zero keeps the config.
func SetBoardSize(width, height int) {
	boardWidth, boardHeight = width, height
}

func init() {
	for _, v := range variants {
		registry.Register(v.id, func() registry.Game {
			return newGame(v)
		})
	}
}

// Game implements registry.Game on top of a core.Session.
type Game struct {
	variant variant
	session *core.Session
	cfg     config.MahjongConfig
	logger  *log.Logger
	audio   core.AudioSink

	rt      platformcore.RuntimeConfig
	tick    uint64
	loadErr error

	controls   bool // set by the starter on activation
	status     string
	statusLeft float64
	result     *core.Result

	layout boardView

	// per-instance overrides, set by menus; they win over the CLI setters
	preset        config.DifficultyPreset
	width, height int
}

// New creates the classic variant.
func New() *Game {
	return newGame(variants[0])
}

func newGame(v variant) *Game {
	return &Game{
		variant: v,
		logger:  log.New(io.Discard),
		audio:   core.NopAudio{},
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.variant.id }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.title }

// Description returns the one-line summary shown in listings.
func (g *Game) Description() string { return g.variant.desc }

// SetLogger routes engine logs. Call before Reset.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetAudio sets the sink that receives sound cues.
func (g *Game) SetAudio(a core.AudioSink) {
	if a == nil {
		a = core.NopAudio{}
	}
	g.audio = a
}

// Configure sets the difficulty preset and board size for this instance.
// Empty or zero values fall back to the package-level settings.
func (g *Game) Configure(difficulty string, width, height int) {
	g.preset = ""
	if p, err := config.ParseDifficultyPreset(difficulty); err == nil && difficulty != "" {
		g.preset = p
	}
	g.width, g.height = width, height
}

// Reset loads the configuration and deals a new session.
func (g *Game) Reset(rt platformcore.RuntimeConfig) {
	if g.session != nil {
		g.session.Dispose()
		g.session = nil
	}

	g.rt = rt
	g.tick = 0
	g.loadErr = nil
	g.controls = false
	g.status = ""
	g.statusLeft = 0
	g.result = nil

	cfg, err := g.loadConfig()
	if err != nil {
		g.fail(err)
		return
	}
	g.cfg = cfg

	opts, err := sessionOptions(cfg, rt.Seed)
	if err != nil {
		g.fail(err)
		return
	}

	s := core.NewSession(opts, core.Env{
		Controls: g,
		Audio:    g,
		Logger:   g.logger.With("game", g.variant.id),
		Scaler:   config.NewDifficultyManager(cfg.Difficulty),
		OnEnd:    g.onEnd,
	})
	layout := boardLayout(cfg.Board.Layout, cfg.Board.Width, cfg.Board.Height)
	if err := s.CreateGameFromLayout(layout); err != nil {
		g.fail(err)
		return
	}
	g.session = s
	g.layout = computeView(s.Board, rt.ScreenW, rt.ScreenH)
}

func (g *Game) loadConfig() (config.MahjongConfig, error) {
	cfg, err := config.LoadMahjong(configPath)
	if err != nil {
		return cfg, err
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyMahjongPreset(&cfg, preset)
	}
	if w := cmp.Or(g.width, boardWidth); w > 0 {
		cfg.Board.Width = w
	}
	if h := cmp.Or(g.height, boardHeight); h > 0 {
		cfg.Board.Height = h
	}
	if g.variant.rule != "" {
		cfg.Rules.Match = g.variant.rule
	}
	if g.variant.layout != "" {
		cfg.Board.Layout = g.variant.layout
	}
	return cfg, nil
}

func (g *Game) fail(err error) {
	g.loadErr = err
	g.logger.Error("cannot start game", "game", g.variant.id, "err", err)
}

// Resize updates the screen geometry without dealing a new board.
func (g *Game) Resize(width, height int) {
	g.rt.ScreenW, g.rt.ScreenH = width, height
	if g.session != nil {
		g.layout = computeView(g.session.Board, width, height)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	s := g.session
	if s == nil || g.layout.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	switch s.Phase() {
	case core.PhaseIntro:
		if in.Has(platformcore.ActionSkip) || in.Has(platformcore.ActionSelect) || len(in.Clicks) > 0 {
			if err := s.Starter.Skip(); err != nil {
				g.logger.Error("skip intro", "err", err)
			}
			in = platformcore.NewInputFrame()
		}
	case core.PhaseEnded:
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		s.TogglePause()
	}
	if g.controls && s.Phase() == core.PhasePlaying {
		g.applyInput(s, in)
	}

	dt := g.rt.DeltaTime()
	s.Frame(dt)
	if g.statusLeft > 0 {
		g.statusLeft -= dt
		if g.statusLeft <= 0 {
			g.status = ""
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) applyInput(s *core.Session, in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionUp):
		s.Logic.MoveCursor(-1, 0)
	case in.Has(platformcore.ActionDown):
		s.Logic.MoveCursor(1, 0)
	case in.Has(platformcore.ActionLeft):
		s.Logic.MoveCursor(0, -1)
	case in.Has(platformcore.ActionRight):
		s.Logic.MoveCursor(0, 1)
	}

	if in.Has(platformcore.ActionSelect) {
		s.QueueCursorPick()
	}
	if in.Has(platformcore.ActionHint) {
		if _, _, ok := s.Logic.Hint(); ok {
			g.flashStatus("Hint shown, combo reset")
		} else {
			g.flashStatus("No hint available")
		}
	}
	for _, p := range in.Clicks {
		if id, ok := g.layout.hit(s.Board, p.X, p.Y); ok {
			s.Queue(id)
		}
	}
}

// SetControlsEnabled implements core.Controls.
func (g *Game) SetControlsEnabled(on bool) {
	g.controls = on
}

// Play implements core.AudioSink. It flashes a status line and forwards
// the cue to the platform sink.
func (g *Game) Play(c core.Cue) {
	switch c {
	case core.CueMatch:
		g.flashStatus("Match!")
	case core.CueMismatch:
		g.flashStatus("Those tiles do not match")
	case core.CueDraw:
		g.flashStatus("No moves: drew a pair from the reserve")
	case core.CueShuffle:
		g.flashStatus("No moves: tiles reshuffled")
	}
	g.audio.Play(c)
}

func (g *Game) flashStatus(msg string) {
	g.status = msg
	g.statusLeft = 1.5
}

func (g *Game) onEnd(r core.Result) {
	g.result = &r
	g.controls = false
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: g.loadErr != nil}
	}
	phase := g.session.Phase()
	return platformcore.GameState{
		Score:    g.session.Score.Score(),
		GameOver: phase == core.PhaseEnded,
		Won:      phase == core.PhaseEnded && g.session.Starter.Outcome() == core.OutcomeWon,
		Paused:   phase == core.PhasePaused,
	}
}

// Result returns the summary of the session once it has ended.
func (g *Game) Result() (core.Result, bool) {
	if g.result == nil {
		return core.Result{}, false
	}
	return *g.result, true
}

// BoardSize returns the dealt board extent, for result records.
func (g *Game) BoardSize() (width, height int) {
	if g.session == nil {
		return 0, 0
	}
	w, h, _ := g.session.Board.Size()
	return w, h
}

// Session exposes the running session.
func (g *Game) Session() *core.Session { return g.session }

// Err returns the configuration or generation error that stopped Reset.
func (g *Game) Err() error { return g.loadErr }
