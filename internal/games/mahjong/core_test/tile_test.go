package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func TestSymbolNamesRoundTrip(t *testing.T) {
	all := core.FullAlphabet()
	if len(all) != 42 {
		t.Fatalf("FullAlphabet() has %d faces, want 42", len(all))
	}

	shorts := make(map[string]core.Symbol)
	for _, s := range all {
		got, err := core.ParseSymbol(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSymbol(%q) = %v, %v", s.String(), got, err)
		}
		if prev, dup := shorts[s.Short()]; dup {
			t.Errorf("%v and %v share label %q", prev, s, s.Short())
		}
		shorts[s.Short()] = s
	}
}

func TestParseSymbolErrors(t *testing.T) {
	for _, name := range []string{"", "bamboo", "bamboo-0", "bamboo-10", "wind-up", "dragon-4", "joker-1"} {
		if _, err := core.ParseSymbol(name); err == nil {
			t.Errorf("ParseSymbol(%q) should fail", name)
		}
	}

	s, err := core.ParseSymbol("  Dragon-Red ")
	if err != nil || s.String() != "dragon-red" {
		t.Errorf("ParseSymbol is not case-insensitive: %v, %v", s, err)
	}
}

func TestAlphabetClamps(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-3, 0},
		{0, 0},
		{8, 8},
		{100, 42},
	}
	for _, tc := range tests {
		if got := len(core.Alphabet(tc.n)); got != tc.want {
			t.Errorf("len(Alphabet(%d)) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestTileStateInPlay(t *testing.T) {
	tests := map[core.TileState]bool{
		core.StateHidden:   false,
		core.StateRevealed: true,
		core.StateSelected: true,
		core.StateMatched:  false,
		core.StateRemoved:  false,
	}
	for state, want := range tests {
		if state.InPlay() != want {
			t.Errorf("%v.InPlay() = %v, want %v", state, !want, want)
		}
	}
}
