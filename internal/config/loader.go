package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMahjong loads mahjong configuration.
// Search order: customPath -> ~/.mahjong/configs/mahjong.yaml -> ./configs/mahjong.yaml -> embedded default
//
// Files only need to set the fields they change; everything else keeps the
// embedded default.
func LoadMahjong(customPath string) (MahjongConfig, error) {
	cfg := embeddedMahjong()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		custom, err := overlay(cfg, data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return custom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("mahjong.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if user, err := overlay(cfg, data); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "mahjong.yaml")); err == nil {
		if local, err := overlay(cfg, data); err == nil {
			return local, nil
		}
	}

	return cfg, nil
}

// embeddedMahjong decodes the embedded defaults.
func embeddedMahjong() MahjongConfig {
	var cfg MahjongConfig
	if err := yaml.Unmarshal(defaultMahjongYAML, &cfg); err != nil {
		return DefaultMahjongConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// overlay decodes data over a copy of base. A symbol_bonus table in data
// replaces the base table instead of merging into it.
func overlay(base MahjongConfig, data []byte) (MahjongConfig, error) {
	cfg := base
	cfg.Score.SymbolBonus = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	if cfg.Score.SymbolBonus == nil {
		cfg.Score.SymbolBonus = base.Score.SymbolBonus
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mahjong", "configs", filename)
}

// ApplyMahjongPreset modifies the config based on a difficulty preset.
func ApplyMahjongPreset(cfg *MahjongConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timer.Duration = 600
		cfg.Board.Alphabet = 8
		cfg.Board.Reserve = 6
	case DifficultyHard:
		cfg.Timer.Duration = 180
		cfg.Board.Alphabet = 42
		cfg.Board.Reserve = 0
		cfg.Rules.Deadlock = "end"
	}
}
