package core

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// BoardOptions configures generation and the match rule.
type BoardOptions struct {
	Alphabet int       // distinct faces in use, clamped to the full set
	Reserve  int       // tiles withheld for the holder, rounded down to even
	Rule     MatchRule // defaults to FreeRule
	Attempts int       // generation retries before giving up
}

// DefaultBoardOptions returns the classic free-tile setup with no reserve.
func DefaultBoardOptions() BoardOptions {
	return BoardOptions{
		Alphabet: len(FullAlphabet()),
		Rule:     FreeRule{},
		Attempts: 50,
	}
}

// Board owns every tile of the current session and is the single source of
// truth for tile existence. All mutation goes through CreateMap, Deal,
// TryMatch, Release, Reshuffle and Dispose.
type Board struct {
	opts   BoardOptions
	rng    *rand.Rand
	logger *log.Logger
	holder *TileHolder

	width, height, layers int

	tiles       map[TileID]*Tile
	order       []TileID
	occ         positionSet // in-play table tiles
	tray        []TileID    // drawn reserve tiles, by slot
	activeCount int
}

// NewBoard creates an empty board. A nil logger discards output.
func NewBoard(opts BoardOptions, rng *rand.Rand, logger *log.Logger) *Board {
	if opts.Rule == nil {
		opts.Rule = FreeRule{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Board{opts: opts, rng: rng, logger: logger}
}

// SetTileHolder binds the reserve that receives withheld tiles.
func (b *Board) SetTileHolder(h *TileHolder) {
	b.holder = h
}

// Rule returns the active match rule.
func (b *Board) Rule() MatchRule { return b.opts.Rule }

// CreateMap generates a solvable single-layer width x height board.
// On error the previous board is left untouched.
func (b *Board) CreateMap(width, height int) error {
	if width <= 0 || height <= 0 {
		return b.genFailed(&GenerationError{Width: width, Height: height, Reason: "dimensions must be positive"})
	}
	if (width*height)%2 != 0 {
		return b.genFailed(&GenerationError{Width: width, Height: height,
			Reason: fmt.Sprintf("%d tiles cannot be split into pairs", width*height)})
	}
	if err := b.build(RectLayout(width, height)); err != nil {
		var ge *GenerationError
		if errors.As(err, &ge) {
			ge.Width, ge.Height = width, height
		}
		return b.genFailed(err)
	}
	return nil
}

// CreateMapFromLayout generates a board over an explicit, possibly stacked layout.
func (b *Board) CreateMapFromLayout(layout Layout) error {
	if err := b.build(layout); err != nil {
		return b.genFailed(err)
	}
	return nil
}

func (b *Board) genFailed(err error) error {
	b.logger.Error("board generation failed", "err", err)
	return err
}

func (b *Board) build(layout Layout) error {
	gen := &generator{
		rng:      b.rng,
		alphabet: Alphabet(b.opts.Alphabet),
		rule:     b.opts.Rule,
		attempts: b.opts.Attempts,
	}
	tiles, err := gen.generate(layout, b.opts.Reserve)
	if err != nil {
		return err
	}

	return b.install(tiles, layout.Bounds)
}

// Deal installs a prepared arrangement, e.g. a saved or hand-built board.
// Every face must occur an even number of times. Tray tiles start hidden
// in the reserve in slot order.
func (b *Board) Deal(tiles []Tile) error {
	counts := make(map[Symbol]int)
	ids := make(map[TileID]bool, len(tiles))
	cells := make(map[Position]bool, len(tiles))
	var layout Layout
	for _, t := range tiles {
		fail := func(reason string) error {
			return b.genFailed(&GenerationError{Tiles: len(tiles), Reason: fmt.Sprintf("tile %d: %s", t.ID, reason)})
		}
		if t.ID < 0 || ids[t.ID] {
			return fail("duplicate or negative id")
		}
		ids[t.ID] = true
		if !t.Tray {
			if cells[t.Pos] {
				return fail("position already taken")
			}
			cells[t.Pos] = true
			layout = append(layout, t.Pos)
		}
		counts[t.Symbol]++
	}
	if len(layout) == 0 {
		return b.genFailed(&GenerationError{Tiles: len(tiles), Reason: "no table tiles"})
	}
	for sym, n := range counts {
		if n%2 != 0 {
			return b.genFailed(&GenerationError{Tiles: len(tiles), Reason: fmt.Sprintf("%s occurs %d times", sym, n)})
		}
	}

	prepared := make([]Tile, len(tiles))
	slot := 0
	for i, t := range tiles {
		if t.Tray {
			t.State = StateHidden
			t.Pos = Position{Col: slot}
			slot++
		} else {
			t.State = StateRevealed
		}
		prepared[i] = t
	}
	return b.install(prepared, layout.Bounds)
}

func (b *Board) install(tiles []Tile, bounds func() (int, int, int)) error {
	var reserve []TileID
	for _, t := range tiles {
		if t.Tray {
			reserve = append(reserve, t.ID)
		}
	}
	if b.holder != nil {
		b.holder.Reset(len(reserve))
		if err := b.holder.Fill(reserve); err != nil {
			return err
		}
	}

	b.tiles = make(map[TileID]*Tile, len(tiles))
	b.order = make([]TileID, 0, len(tiles))
	b.occ = make(positionSet, len(tiles))
	b.tray = nil
	b.activeCount = 0
	for i := range tiles {
		t := tiles[i]
		b.tiles[t.ID] = &t
		b.order = append(b.order, t.ID)
		if !t.Tray {
			b.occ[t.Pos] = t.ID
			b.activeCount++
		}
	}
	b.width, b.height, b.layers = bounds()

	b.logger.Debug("board ready",
		"tiles", len(tiles), "active", b.activeCount, "reserve", len(reserve),
		"layers", b.layers, "rule", b.opts.Rule.Name())
	return nil
}

// TryMatch validates and, when legal, removes the pair a, b.
// A rejection leaves the board unchanged.
func (b *Board) TryMatch(a, c TileID) MatchResult {
	if a == c {
		return MatchResult{Reason: RejectSameTile}
	}
	ta, tc := b.tiles[a], b.tiles[c]
	if ta == nil || tc == nil || !ta.State.InPlay() || !tc.State.InPlay() {
		return MatchResult{Reason: RejectAlreadyRemoved}
	}
	if ta.Symbol != tc.Symbol {
		return MatchResult{Reason: RejectDifferentSymbol}
	}
	if !b.free(ta) || !b.free(tc) {
		return MatchResult{Reason: RejectBlocked}
	}

	b.remove(ta)
	b.remove(tc)
	return MatchResult{Matched: true, Symbol: ta.Symbol}
}

func (b *Board) remove(t *Tile) {
	t.State = StateRemoved
	b.activeCount--
	if !t.Tray {
		delete(b.occ, t.Pos)
		return
	}
	for i, id := range b.tray {
		if id == t.ID {
			b.tray = append(b.tray[:i], b.tray[i+1:]...)
			break
		}
	}
	for slot, id := range b.tray {
		b.tiles[id].Pos.Col = slot
	}
}

func (b *Board) free(t *Tile) bool {
	return b.opts.Rule.Free(b.occ, *t)
}

// IsFree reports whether an in-play tile can currently be matched.
func (b *Board) IsFree(id TileID) bool {
	t := b.tiles[id]
	return t != nil && t.State.InPlay() && b.free(t)
}

// Selectable reports whether the tile exists and is in play.
func (b *Board) Selectable(id TileID) bool {
	t := b.tiles[id]
	return t != nil && t.State.InPlay()
}

// Mark toggles the cosmetic Selected state of an in-play tile.
func (b *Board) Mark(id TileID, selected bool) {
	t := b.tiles[id]
	if t == nil || !t.State.InPlay() {
		return
	}
	if selected {
		t.State = StateSelected
	} else {
		t.State = StateRevealed
	}
}

// FindMove returns the first matchable pair in board order.
func (b *Board) FindMove() (TileID, TileID, bool) {
	first := make(map[Symbol]TileID)
	for _, id := range b.order {
		t := b.tiles[id]
		if !t.State.InPlay() || !b.free(t) {
			continue
		}
		if other, ok := first[t.Symbol]; ok {
			return other, id, true
		}
		first[t.Symbol] = id
	}
	return NoTile, NoTile, false
}

// HasAvailableMove reports whether any matchable pair exists.
func (b *Board) HasAvailableMove() bool {
	_, _, ok := b.FindMove()
	return ok
}

// IsCleared reports whether every tile of a generated board is removed,
// reserve included.
func (b *Board) IsCleared() bool {
	return b.tiles != nil && b.activeCount == 0 && b.ReserveCount() == 0
}

// ReserveCount returns the number of tiles still face-down in the reserve.
func (b *Board) ReserveCount() int {
	n := 0
	for _, t := range b.tiles {
		if t.Tray && t.State == StateHidden {
			n++
		}
	}
	return n
}

// Release moves a reserve tile into play on the tray. This is the only
// operation that raises the active count.
func (b *Board) Release(id TileID) error {
	t := b.tiles[id]
	if t == nil || !t.Tray || t.State != StateHidden {
		return fmt.Errorf("mahjong: tile %d is not in the reserve: %w", id, ErrInvalidPick)
	}
	t.State = StateRevealed
	t.Pos = Position{Col: len(b.tray)}
	b.tray = append(b.tray, id)
	b.activeCount++
	return nil
}

// Reshuffle permutes the faces of all in-play tiles until a move exists.
// If random permutations fail it forces a pair onto two free tiles.
// Face counts are preserved. Returns false when no move can be made.
func (b *Board) Reshuffle() bool {
	var ids []TileID
	for _, id := range b.order {
		if b.tiles[id].State.InPlay() {
			ids = append(ids, id)
		}
	}
	if len(ids) < 2 {
		return false
	}
	faces := make([]Symbol, len(ids))
	for i, id := range ids {
		faces[i] = b.tiles[id].Symbol
	}

	for range max(b.opts.Attempts, 1) {
		b.rng.Shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })
		for i, id := range ids {
			b.tiles[id].Symbol = faces[i]
		}
		if b.HasAvailableMove() {
			return true
		}
	}

	var free []*Tile
	for _, id := range ids {
		if t := b.tiles[id]; b.free(t) {
			free = append(free, t)
		}
	}
	for _, x := range free {
		for _, y := range free {
			if x == y {
				continue
			}
			for _, id := range ids {
				c := b.tiles[id]
				if c != x && c != y && c.Symbol == x.Symbol {
					y.Symbol, c.Symbol = c.Symbol, y.Symbol
					return true
				}
			}
		}
	}
	return false
}

// Update exists for frame symmetry; the board has no per-frame state.
func (b *Board) Update(float64) {}

// Dispose releases all tile state. Safe to call repeatedly.
func (b *Board) Dispose() {
	b.tiles = nil
	b.order = nil
	b.occ = nil
	b.tray = nil
	b.activeCount = 0
	b.width, b.height, b.layers = 0, 0, 0
	if b.holder != nil {
		b.holder.Clear()
	}
}

// Tile returns a copy of the tile with the given id.
func (b *Board) Tile(id TileID) (Tile, bool) {
	t := b.tiles[id]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Tiles returns copies of all tiles in generation order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.tiles[id])
	}
	return out
}

// TopTileAt returns the highest in-play table tile at row, col.
func (b *Board) TopTileAt(row, col int) (Tile, bool) {
	for layer := b.layers - 1; layer >= 0; layer-- {
		if id, ok := b.occ[Position{Layer: layer, Row: row, Col: col}]; ok {
			return *b.tiles[id], true
		}
	}
	return Tile{}, false
}

// TrayTiles returns the drawn reserve tiles in slot order.
func (b *Board) TrayTiles() []Tile {
	out := make([]Tile, 0, len(b.tray))
	for _, id := range b.tray {
		out = append(out, *b.tiles[id])
	}
	return out
}

// ActiveCount returns the number of tiles in play.
func (b *Board) ActiveCount() int { return b.activeCount }

// Size returns the grid extent in columns, rows and layers.
func (b *Board) Size() (width, height, layers int) { return b.width, b.height, b.layers }
