package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// sym parses a symbol name or fails the test.
func sym(t *testing.T, name string) core.Symbol {
	t.Helper()
	s, err := core.ParseSymbol(name)
	if err != nil {
		t.Fatalf("ParseSymbol(%q): %v", name, err)
	}
	return s
}

// grid builds table tiles from rows of symbol names on layer 0.
// An empty name leaves a hole.
func grid(t *testing.T, rows ...[]string) []core.Tile {
	t.Helper()
	var tiles []core.Tile
	for r, row := range rows {
		for c, name := range row {
			if name == "" {
				continue
			}
			tiles = append(tiles, core.Tile{
				ID:     core.TileID(len(tiles)),
				Symbol: sym(t, name),
				Pos:    core.Position{Row: r, Col: c},
			})
		}
	}
	return tiles
}

// tray appends reserve tiles after the given tiles.
func tray(t *testing.T, tiles []core.Tile, names ...string) []core.Tile {
	t.Helper()
	for _, name := range names {
		tiles = append(tiles, core.Tile{
			ID:     core.TileID(len(tiles)),
			Symbol: sym(t, name),
			Tray:   true,
		})
	}
	return tiles
}

func newBoard(opts core.BoardOptions, seed int64) *core.Board {
	return core.NewBoard(opts, rand.New(rand.NewSource(seed)), nil)
}

// symbolCounts tallies faces over every tile of the board.
func symbolCounts(b *core.Board) map[core.Symbol]int {
	counts := make(map[core.Symbol]int)
	for _, tile := range b.Tiles() {
		counts[tile.Symbol]++
	}
	return counts
}

type cueRecorder struct {
	cues []core.Cue
}

func (r *cueRecorder) Play(c core.Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c core.Cue) int {
	n := 0
	for _, x := range r.cues {
		if x == c {
			n++
		}
	}
	return n
}

// startSession deals tiles into a session with no intro and runs one
// frame so play is active.
func startSession(t *testing.T, opts core.Options, env core.Env, tiles []core.Tile) *core.Session {
	t.Helper()
	opts.Intro = 0
	s := core.NewSession(opts, env)
	if err := s.DealGame(tiles); err != nil {
		t.Fatalf("DealGame: %v", err)
	}
	s.Frame(0)
	if s.Phase() != core.PhasePlaying {
		t.Fatalf("Phase() = %v, want playing", s.Phase())
	}
	return s
}
