package config

import (
	_ "embed"
)

//go:embed defaults/mahjong.yaml
var defaultMahjongYAML []byte

// DefaultMahjongConfig returns the default mahjong configuration.
func DefaultMahjongConfig() MahjongConfig {
	return MahjongConfig{
		Board: MahjongBoard{
			Width:    8,
			Height:   4,
			Layout:   "rect",
			Alphabet: 16,
			Reserve:  4,
			Attempts: 50,
		},
		Rules: MahjongRules{
			Match:         "free",
			Deadlock:      "draw",
			FlashDuration: 0.5,
		},
		Timer: MahjongTimer{
			Duration: 300,
			Intro:    2,
		},
		Score: MahjongScore{
			Base:          10,
			ComboStep:     1,
			MaxMultiplier: 5,
			ComboWindow:   4,
			TimeBonus:     2,
			SymbolBonus: map[string]int{
				"dragon-red":   5,
				"dragon-green": 5,
				"dragon-white": 5,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 400,
			},
			Scaling: ScalingConfig{
				WindowReduction: 0.5,
				MinWindow:       1.5,
			},
		},
	}
}
