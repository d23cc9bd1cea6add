package mahjong

import (
	"fmt"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// sessionOptions turns a validated config into engine options.
func sessionOptions(cfg config.MahjongConfig, seed int64) (core.Options, error) {
	if err := cfg.Validate(); err != nil {
		return core.Options{}, err
	}

	rule, err := core.RuleByName(cfg.Rules.Match)
	if err != nil {
		return core.Options{}, err
	}
	policy, err := core.ParseDeadlockPolicy(cfg.Rules.Deadlock)
	if err != nil {
		return core.Options{}, err
	}

	var bonus map[core.Symbol]int
	if len(cfg.Score.SymbolBonus) > 0 {
		bonus = make(map[core.Symbol]int, len(cfg.Score.SymbolBonus))
		for name, points := range cfg.Score.SymbolBonus {
			sym, err := core.ParseSymbol(name)
			if err != nil {
				return core.Options{}, fmt.Errorf("config: symbol_bonus: %w", err)
			}
			bonus[sym] = points
		}
	}

	return core.Options{
		Board: core.BoardOptions{
			Alphabet: cfg.Board.Alphabet,
			Reserve:  cfg.Board.Reserve,
			Rule:     rule,
			Attempts: cfg.Board.Attempts,
		},
		Score: core.ScoreOptions{
			Base:          cfg.Score.Base,
			ComboStep:     cfg.Score.ComboStep,
			MaxMultiplier: cfg.Score.MaxMultiplier,
			ComboWindow:   cfg.Score.ComboWindow,
			TimeBonus:     cfg.Score.TimeBonus,
			SymbolBonus:   bonus,
		},
		Logic: core.LogicOptions{
			Deadlock:      policy,
			FlashDuration: cfg.Rules.FlashDuration,
		},
		Duration: cfg.Timer.Duration,
		Intro:    cfg.Timer.Intro,
		Seed:     seed,
	}, nil
}

// boardLayout returns the table shape for the configured layout name.
func boardLayout(name string, width, height int) core.Layout {
	if name == "pyramid" {
		return core.PyramidLayout(width, height)
	}
	return core.RectLayout(width, height)
}
