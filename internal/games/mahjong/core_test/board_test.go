package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func TestCreateMapParity(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		alphabet      int
		reserve       int
		rule          core.MatchRule
	}{
		{"4x4 free", 4, 4, 42, 0, core.FreeRule{}},
		{"8x6 free", 8, 6, 42, 0, core.FreeRule{}},
		{"6x4 small alphabet", 6, 4, 3, 0, core.FreeRule{}},
		{"10x8 with reserve", 10, 8, 20, 4, core.FreeRule{}},
		{"odd reserve rounds down", 6, 6, 42, 5, core.FreeRule{}},
		{"relaxed rule", 12, 6, 8, 2, core.AnyRule{}},
		{"single alphabet", 4, 2, 1, 0, core.FreeRule{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				b := newBoard(core.BoardOptions{Alphabet: tc.alphabet, Reserve: tc.reserve, Rule: tc.rule, Attempts: 50}, seed)
				holder := core.NewTileHolder(0)
				b.SetTileHolder(holder)

				if err := b.CreateMap(tc.width, tc.height); err != nil {
					t.Fatalf("seed %d: CreateMap() error = %v", seed, err)
				}

				for s, n := range symbolCounts(b) {
					if n%2 != 0 {
						t.Errorf("seed %d: symbol %s occurs %d times", seed, s, n)
					}
				}

				reserve := tc.reserve &^ 1
				if got, want := b.ActiveCount(), tc.width*tc.height-reserve; got != want {
					t.Errorf("seed %d: ActiveCount() = %d, want %d", seed, got, want)
				}
				if holder.Len() != reserve || holder.Capacity() != reserve {
					t.Errorf("seed %d: holder Len/Capacity = %d/%d, want %d", seed, holder.Len(), holder.Capacity(), reserve)
				}
				if !b.HasAvailableMove() {
					t.Errorf("seed %d: fresh board has no move", seed)
				}
			}
		})
	}
}

func TestCreateMapErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		opts          core.BoardOptions
	}{
		{"zero width", 0, 4, core.DefaultBoardOptions()},
		{"negative height", 4, -1, core.DefaultBoardOptions()},
		{"odd tile count", 3, 3, core.DefaultBoardOptions()},
		{"empty alphabet", 4, 4, core.BoardOptions{Alphabet: 0, Rule: core.FreeRule{}, Attempts: 5}},
		{"reserve eats the board", 2, 2, core.BoardOptions{Alphabet: 42, Reserve: 4, Attempts: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBoard(tc.opts, 1)
			err := b.CreateMap(tc.width, tc.height)
			if !errors.Is(err, core.ErrGeneration) {
				t.Fatalf("CreateMap() error = %v, want ErrGeneration", err)
			}
			var ge *core.GenerationError
			if !errors.As(err, &ge) || ge.Reason == "" {
				t.Errorf("CreateMap() error should be a GenerationError with a reason, got %#v", err)
			}
			if b.ActiveCount() != 0 || len(b.Tiles()) != 0 {
				t.Errorf("failed CreateMap left tiles behind: %d", len(b.Tiles()))
			}
		})
	}
}

func TestCreateMapFailureKeepsPreviousBoard(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 7)
	if err := b.CreateMap(4, 4); err != nil {
		t.Fatalf("CreateMap() error = %v", err)
	}
	before := b.Tiles()

	if err := b.CreateMap(3, 3); err == nil {
		t.Fatal("CreateMap(3, 3) should fail")
	}

	after := b.Tiles()
	if len(after) != len(before) || b.ActiveCount() != 16 {
		t.Fatalf("previous board changed: %d tiles, active %d", len(after), b.ActiveCount())
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("tile %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestStackedLayoutUnsolvable(t *testing.T) {
	// Two tiles stacked in one cell: only the top is ever free.
	layout := core.Layout{{Layer: 0, Row: 0, Col: 0}, {Layer: 1, Row: 0, Col: 0}}
	b := newBoard(core.DefaultBoardOptions(), 1)

	err := b.CreateMapFromLayout(layout)
	if !errors.Is(err, core.ErrGeneration) {
		t.Fatalf("CreateMapFromLayout() error = %v, want ErrGeneration", err)
	}
}

func TestTryMatchReasons(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	err := b.Deal(grid(t,
		[]string{"bamboo-1", "dot-3", "bamboo-1"},
		[]string{"dot-3", "dot-5", "dot-5"},
	))
	if err != nil {
		t.Fatalf("Deal() error = %v", err)
	}

	tests := []struct {
		name   string
		a, b   core.TileID
		reason core.RejectReason
	}{
		{"same tile", 0, 0, core.RejectSameTile},
		{"unknown tile", 0, 99, core.RejectAlreadyRemoved},
		{"different symbol", 0, 3, core.RejectDifferentSymbol},
		{"blocked middle tile", 1, 3, core.RejectBlocked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := b.TryMatch(tc.a, tc.b)
			if res.Matched || res.Reason != tc.reason {
				t.Errorf("TryMatch(%d, %d) = %v, want rejected %v", tc.a, tc.b, res, tc.reason)
			}
			if b.ActiveCount() != 6 {
				t.Errorf("rejection mutated board: ActiveCount() = %d", b.ActiveCount())
			}
		})
	}
}

func TestTryMatchIdempotent(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	if err := b.Deal(grid(t, []string{"bamboo-1", "bamboo-1"}, []string{"dot-3", "dot-3"})); err != nil {
		t.Fatalf("Deal() error = %v", err)
	}

	res := b.TryMatch(0, 1)
	if !res.Matched || res.Symbol != sym(t, "bamboo-1") {
		t.Fatalf("TryMatch(0, 1) = %v, want matched bamboo-1", res)
	}
	if b.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, want 2", b.ActiveCount())
	}

	again := b.TryMatch(0, 1)
	if again.Matched || again.Reason != core.RejectAlreadyRemoved {
		t.Errorf("second TryMatch(0, 1) = %v, want rejected already removed", again)
	}
	if b.ActiveCount() != 2 {
		t.Errorf("second TryMatch changed ActiveCount() to %d", b.ActiveCount())
	}
	for _, id := range []core.TileID{0, 1} {
		if tile, _ := b.Tile(id); tile.State != core.StateRemoved {
			t.Errorf("tile %d state = %v, want removed", id, tile.State)
		}
	}
}

func TestFreeRuleStacking(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	tiles := []core.Tile{
		{ID: 0, Symbol: sym(t, "dot-1"), Pos: core.Position{Layer: 0, Row: 0, Col: 0}},
		{ID: 1, Symbol: sym(t, "dot-1"), Pos: core.Position{Layer: 1, Row: 0, Col: 0}},
		{ID: 2, Symbol: sym(t, "dot-2"), Pos: core.Position{Layer: 0, Row: 1, Col: 0}},
		{ID: 3, Symbol: sym(t, "dot-2"), Pos: core.Position{Layer: 0, Row: 1, Col: 1}},
	}
	if err := b.Deal(tiles); err != nil {
		t.Fatalf("Deal() error = %v", err)
	}

	if b.IsFree(0) {
		t.Error("tile under another tile should be blocked")
	}
	if !b.IsFree(1) {
		t.Error("top tile should be free")
	}
	if top, ok := b.TopTileAt(0, 0); !ok || top.ID != 1 {
		t.Errorf("TopTileAt(0, 0) = %+v, %v, want tile 1", top, ok)
	}
	if res := b.TryMatch(0, 1); res.Reason != core.RejectBlocked {
		t.Errorf("TryMatch(0, 1) = %v, want blocked", res)
	}
}

func TestSolveByHints(t *testing.T) {
	for _, rule := range []core.MatchRule{core.FreeRule{}, core.AnyRule{}} {
		t.Run(rule.Name(), func(t *testing.T) {
			opts := core.DefaultBoardOptions()
			opts.Rule = rule
			b := newBoard(opts, 3)
			if err := b.CreateMap(8, 4); err != nil {
				t.Fatalf("CreateMap() error = %v", err)
			}
			for moves := 0; !b.IsCleared(); moves++ {
				a, c, ok := b.FindMove()
				if !ok {
					t.Fatalf("stuck after %d moves with %d tiles", moves, b.ActiveCount())
				}
				if res := b.TryMatch(a, c); !res.Matched {
					t.Fatalf("hinted pair rejected: %v", res)
				}
			}
		})
	}
}

func TestPyramidLayout(t *testing.T) {
	layout := core.PyramidLayout(6, 4)
	w, h, layers := layout.Bounds()
	if w != 6 || h != 4 || layers != 2 {
		t.Fatalf("Bounds() = %d, %d, %d, want 6, 4, 2", w, h, layers)
	}
	if len(layout) != 24+8 {
		t.Fatalf("len(layout) = %d, want 32", len(layout))
	}

	b := newBoard(core.DefaultBoardOptions(), 5)
	if err := b.CreateMapFromLayout(layout); err != nil {
		t.Fatalf("CreateMapFromLayout() error = %v", err)
	}
	if b.ActiveCount() != 32 {
		t.Errorf("ActiveCount() = %d, want 32", b.ActiveCount())
	}
}

func TestReleaseAndReshuffle(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	holder := core.NewTileHolder(0)
	b.SetTileHolder(holder)
	tiles := tray(t, grid(t, []string{"dot-1", "dot-2", "dot-1", "dot-2"}), "wind-east", "wind-east")
	if err := b.Deal(tiles); err != nil {
		t.Fatalf("Deal() error = %v", err)
	}
	if b.HasAvailableMove() {
		t.Fatal("dealt row should be deadlocked")
	}

	id, err := holder.Draw()
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if err := b.Release(id); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if b.ActiveCount() != 5 {
		t.Errorf("ActiveCount() after release = %d, want 5", b.ActiveCount())
	}
	if err := b.Release(id); !errors.Is(err, core.ErrInvalidPick) {
		t.Errorf("second Release() error = %v, want ErrInvalidPick", err)
	}

	before := symbolCounts(b)
	if !b.Reshuffle() {
		t.Fatal("Reshuffle() should find a move")
	}
	if !b.HasAvailableMove() {
		t.Error("no move after successful Reshuffle")
	}
	after := symbolCounts(b)
	for s, n := range before {
		if after[s] != n {
			t.Errorf("symbol %s count changed %d -> %d", s, n, after[s])
		}
	}
}

func TestDealRejectsOddSymbols(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	err := b.Deal(grid(t, []string{"dot-1", "dot-2"}))
	if !errors.Is(err, core.ErrGeneration) {
		t.Errorf("Deal() error = %v, want ErrGeneration", err)
	}
}

func TestDisposeIdempotent(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	holder := core.NewTileHolder(0)
	b.SetTileHolder(holder)
	if err := b.Deal(tray(t, grid(t, []string{"dot-1", "dot-1"}), "dot-9", "dot-9")); err != nil {
		t.Fatalf("Deal() error = %v", err)
	}

	b.Dispose()
	b.Dispose()

	if b.ActiveCount() != 0 || len(b.Tiles()) != 0 || holder.Len() != 0 {
		t.Errorf("Dispose left state: active %d, tiles %d, reserve %d", b.ActiveCount(), len(b.Tiles()), holder.Len())
	}
	if b.IsCleared() {
		t.Error("disposed board should not report cleared")
	}
	b.Update(1.0 / 30)
}
