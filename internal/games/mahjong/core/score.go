package core

import "math"

// ScoreOptions is the scoring policy.
type ScoreOptions struct {
	Base          int            // points per match before the multiplier
	ComboStep     int            // multiplier growth per chained match
	MaxMultiplier int            // multiplier cap
	ComboWindow   float64        // seconds a combo survives without a match
	TimeBonus     int            // points per whole second left on a win
	SymbolBonus   map[Symbol]int // flat extra points for specific faces
}

// DefaultScoreOptions returns the stock policy.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{
		Base:          10,
		ComboStep:     1,
		MaxMultiplier: 5,
		ComboWindow:   4,
		TimeBonus:     2,
	}
}

// WindowScaler adjusts the combo window as the game progresses.
type WindowScaler interface {
	Window(base float64, score int, ticks int) float64
}

// ScoreManager accumulates points. The raw score never decreases; only
// the combo multiplier resets.
type ScoreManager struct {
	opts   ScoreOptions
	scaler WindowScaler

	score      int
	multiplier int
	window     float64 // seconds left before the combo lapses
	matches    int
	bestCombo  int
	elapsed    float64
	visible    bool
}

// NewScoreManager creates a manager with the given policy.
// scaler may be nil for a fixed combo window.
func NewScoreManager(opts ScoreOptions, scaler WindowScaler) *ScoreManager {
	m := &ScoreManager{opts: opts, scaler: scaler}
	m.Reset()
	return m
}

// Reset clears the score for a new session.
func (m *ScoreManager) Reset() {
	m.score = 0
	m.multiplier = 1
	m.window = 0
	m.matches = 0
	m.bestCombo = 1
	m.elapsed = 0
}

// Update decays the combo window.
func (m *ScoreManager) Update(dt float64) {
	m.elapsed += dt
	if m.window <= 0 {
		return
	}
	m.window -= dt
	if m.window <= 0 {
		m.window = 0
		m.multiplier = 1
	}
}

// RegisterMatch scores one matched pair and returns the points awarded.
func (m *ScoreManager) RegisterMatch(sym Symbol) int {
	points := m.opts.Base*m.multiplier + m.opts.SymbolBonus[sym]
	m.add(points)
	m.matches++

	m.window = m.currentWindow()
	if m.window <= 0 {
		// No window to chain within.
		m.window = 0
		m.multiplier = 1
		return points
	}
	step := max(m.opts.ComboStep, 0)
	m.multiplier = min(m.multiplier+step, max(m.opts.MaxMultiplier, 1))
	m.bestCombo = max(m.bestCombo, m.multiplier)
	return points
}

// RegisterMismatch breaks the combo.
func (m *ScoreManager) RegisterMismatch() {
	m.multiplier = 1
	m.window = 0
}

// RegisterTimeBonus adds the win bonus for the remaining seconds.
func (m *ScoreManager) RegisterTimeBonus(remaining float64) int {
	if remaining <= 0 || m.opts.TimeBonus <= 0 {
		return 0
	}
	points := int(math.Floor(remaining)) * m.opts.TimeBonus
	m.add(points)
	return points
}

func (m *ScoreManager) add(points int) {
	if points > 0 {
		m.score += points
	}
}

func (m *ScoreManager) currentWindow() float64 {
	if m.scaler == nil {
		return m.opts.ComboWindow
	}
	return m.scaler.Window(m.opts.ComboWindow, m.score, int(m.elapsed))
}

func (m *ScoreManager) Score() int { return m.score }

func (m *ScoreManager) Multiplier() int { return m.multiplier }

// ComboTimeLeft returns the seconds before the multiplier resets.
func (m *ScoreManager) ComboTimeLeft() float64 { return m.window }

func (m *ScoreManager) Matches() int { return m.matches }

func (m *ScoreManager) BestCombo() int { return m.bestCombo }

func (m *ScoreManager) SetVisible(v bool) { m.visible = v }

func (m *ScoreManager) Visible() bool { return m.visible }
