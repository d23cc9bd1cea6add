// Package config provides YAML-based game configuration loading and
// difficulty management for the mahjong platform.
package config

import (
	"errors"
	"fmt"
)

// MahjongConfig contains all configuration for a mahjong solitaire session.
type MahjongConfig struct {
	Board      MahjongBoard     `yaml:"board"`
	Rules      MahjongRules     `yaml:"rules"`
	Timer      MahjongTimer     `yaml:"timer"`
	Score      MahjongScore     `yaml:"score"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MahjongBoard defines board generation parameters.
type MahjongBoard struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Layout   string `yaml:"layout"`   // "rect" or "pyramid"
	Alphabet int    `yaml:"alphabet"` // distinct faces in use, up to 42
	Reserve  int    `yaml:"reserve"`  // tiles withheld for the tray
	Attempts int    `yaml:"attempts"`
}

// MahjongRules selects the match rule and the deadlock policy.
type MahjongRules struct {
	Match         string  `yaml:"match"`    // "free" or "any"
	Deadlock      string  `yaml:"deadlock"` // "draw", "shuffle" or "end"
	FlashDuration float64 `yaml:"flash_duration"`
}

// MahjongTimer defines the countdown and intro lengths in seconds.
type MahjongTimer struct {
	Duration float64 `yaml:"duration"` // 0 plays untimed
	Intro    float64 `yaml:"intro"`
}

// MahjongScore defines the scoring policy.
type MahjongScore struct {
	Base          int            `yaml:"base"`
	ComboStep     int            `yaml:"combo_step"`
	MaxMultiplier int            `yaml:"max_multiplier"`
	ComboWindow   float64        `yaml:"combo_window"`
	TimeBonus     int            `yaml:"time_bonus"`
	SymbolBonus   map[string]int `yaml:"symbol_bonus"` // keyed by face name, e.g. "dragon-red"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	WindowReduction float64 `yaml:"window_reduction"` // Share of the combo window removed at max difficulty
	MinWindow       float64 `yaml:"min_window"`       // Combo window floor in seconds
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every invalid field of the config.
func (c MahjongConfig) Validate() error {
	var errs []error
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board: size %dx%d must be positive", c.Board.Width, c.Board.Height))
	} else if (c.Board.Width*c.Board.Height)%2 != 0 {
		errs = append(errs, fmt.Errorf("board: %dx%d has an odd tile count", c.Board.Width, c.Board.Height))
	}
	switch c.Board.Layout {
	case "", "rect", "pyramid":
	default:
		errs = append(errs, fmt.Errorf("board: unknown layout %q", c.Board.Layout))
	}
	if c.Board.Alphabet <= 0 {
		errs = append(errs, fmt.Errorf("board: alphabet %d must be positive", c.Board.Alphabet))
	}
	if c.Board.Reserve < 0 {
		errs = append(errs, fmt.Errorf("board: reserve %d is negative", c.Board.Reserve))
	}
	switch c.Rules.Match {
	case "", "free", "any":
	default:
		errs = append(errs, fmt.Errorf("rules: unknown match rule %q", c.Rules.Match))
	}
	switch c.Rules.Deadlock {
	case "", "draw", "shuffle", "end":
	default:
		errs = append(errs, fmt.Errorf("rules: unknown deadlock policy %q", c.Rules.Deadlock))
	}
	if c.Timer.Intro < 0 {
		errs = append(errs, fmt.Errorf("timer: intro %v is negative", c.Timer.Intro))
	}
	if c.Score.Base < 0 || c.Score.ComboStep < 0 || c.Score.TimeBonus < 0 {
		errs = append(errs, errors.New("score: base, combo_step and time_bonus must not be negative"))
	}
	if c.Score.ComboWindow <= 0 {
		errs = append(errs, fmt.Errorf("score: combo_window %v must be positive", c.Score.ComboWindow))
	}
	if c.Score.MaxMultiplier < 1 {
		errs = append(errs, fmt.Errorf("score: max_multiplier %d must be at least 1", c.Score.MaxMultiplier))
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty: unknown progression %q", c.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid mahjong config: %w", err)
	}
	return nil
}
