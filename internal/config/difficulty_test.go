package config

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); !approx(got, tc.want) {
			t.Errorf("Level(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}

	d.SetEnabled(false)
	if got := d.Level(100, 0); !approx(got, 0.2) {
		t.Errorf("disabled Level() = %v, want initial 0.2", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
	})
	if got := d.Level(9999, 30); !approx(got, 0.5) {
		t.Errorf("Level(_, 30) = %v, want 0.5", got)
	}
	d.SetInitialLevel(3)
	if got := d.Level(0, 0); !approx(got, 1) {
		t.Errorf("SetInitialLevel should clamp, Level = %v", got)
	}
}

func TestDifficultyWindow(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{WindowReduction: 0.5, MinWindow: 1.5},
	})

	tests := []struct {
		base  float64
		score int
		want  float64
	}{
		{4, 0, 4},
		{4, 50, 3},
		{4, 100, 2},
		{2, 100, 1.5},
		{1, 100, 1},
	}
	for _, tc := range tests {
		if got := d.Window(tc.base, tc.score, 0); !approx(got, tc.want) {
			t.Errorf("Window(%v, %d) = %v, want %v", tc.base, tc.score, got, tc.want)
		}
	}
}
