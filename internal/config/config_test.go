package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadMahjong("")
	if err != nil {
		t.Fatalf("LoadMahjong() error = %v", err)
	}
	if want := DefaultMahjongConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMahjongCustomPath(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
board:
  width: 6
rules:
  match: any
score:
  symbol_bonus:
    bamboo-1: 3
`)

	cfg, err := LoadMahjong(path)
	if err != nil {
		t.Fatalf("LoadMahjong() error = %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 4 {
		t.Errorf("board = %dx%d, want 6x4", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Rules.Match != "any" || cfg.Rules.Deadlock != "draw" {
		t.Errorf("rules = %+v", cfg.Rules)
	}
	if want := map[string]int{"bamboo-1": 3}; !reflect.DeepEqual(cfg.Score.SymbolBonus, want) {
		t.Errorf("SymbolBonus = %v, want %v", cfg.Score.SymbolBonus, want)
	}
}

func TestLoadMahjongCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadMahjong(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [unclosed")
	if _, err := LoadMahjong(bad); err == nil {
		t.Error("malformed custom config should fail")
	}
}

func TestLoadMahjongUserDir(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".mahjong", "configs", "mahjong.yaml"), "timer:\n  duration: 90\n")

	cfg, err := LoadMahjong("")
	if err != nil {
		t.Fatalf("LoadMahjong() error = %v", err)
	}
	if cfg.Timer.Duration != 90 || cfg.Timer.Intro != 2 {
		t.Errorf("timer = %+v, want duration 90 intro 2", cfg.Timer)
	}
	if len(cfg.Score.SymbolBonus) != 3 {
		t.Errorf("SymbolBonus should keep defaults, got %v", cfg.Score.SymbolBonus)
	}
}

func TestLoadMahjongSkipsBrokenUserFile(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".mahjong", "configs", "mahjong.yaml"), "timer: {")

	cfg, err := LoadMahjong("")
	if err != nil {
		t.Fatalf("LoadMahjong() error = %v", err)
	}
	if cfg.Timer.Duration != 300 {
		t.Errorf("Timer.Duration = %v, want default 300", cfg.Timer.Duration)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MahjongConfig)
		wantErr []string
	}{
		{"default", func(*MahjongConfig) {}, nil},
		{"odd board", func(c *MahjongConfig) { c.Board.Width, c.Board.Height = 3, 3 }, []string{"odd tile count"}},
		{"zero size", func(c *MahjongConfig) { c.Board.Width = 0 }, []string{"must be positive"}},
		{"bad names", func(c *MahjongConfig) {
			c.Rules.Match = "loose"
			c.Rules.Deadlock = "panic"
			c.Board.Layout = "turtle"
		}, []string{`match rule "loose"`, `deadlock policy "panic"`, `layout "turtle"`}},
		{"score", func(c *MahjongConfig) { c.Score.MaxMultiplier = 0 }, []string{"max_multiplier"}},
		{"combo window", func(c *MahjongConfig) { c.Score.ComboWindow = 0 }, []string{"combo_window"}},
		{"progression", func(c *MahjongConfig) { c.Difficulty.Progression.Type = "moves" }, []string{"progression"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMahjongConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if len(tc.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tc.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, missing %q", err, want)
				}
			}
		})
	}
}

func TestApplyMahjongPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		wantEnabled  bool
		wantLevel    float64
		wantDuration float64
		wantReserve  int
	}{
		{DifficultyEasy, true, 0.0, 600, 6},
		{DifficultyNormal, true, 0.3, 300, 4},
		{DifficultyHard, true, 0.7, 180, 0},
		{DifficultyFixed, false, 0.0, 300, 4},
	}

	for _, tc := range tests {
		cfg := DefaultMahjongConfig()
		ApplyMahjongPreset(&cfg, tc.preset)
		if cfg.Difficulty.Enabled != tc.wantEnabled || cfg.Difficulty.InitialLevel != tc.wantLevel {
			t.Errorf("%s: difficulty = %+v", tc.preset, cfg.Difficulty)
		}
		if cfg.Timer.Duration != tc.wantDuration || cfg.Board.Reserve != tc.wantReserve {
			t.Errorf("%s: duration %v reserve %d, want %v %d", tc.preset, cfg.Timer.Duration, cfg.Board.Reserve, tc.wantDuration, tc.wantReserve)
		}
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if p, err := ParseDifficultyPreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParseDifficultyPreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParseDifficultyPreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficultyPreset(hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficultyPreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}
