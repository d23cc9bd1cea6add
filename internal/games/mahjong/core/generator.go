package core

import (
	"fmt"
	"math/rand"
)

// generator builds solvable tile sets by reverse removal: it repeatedly
// takes two positions that would be free on the partially emptied layout
// and gives them the same face. Playing the pairs in the order they were
// assigned always clears the board.
type generator struct {
	rng      *rand.Rand
	alphabet []Symbol
	rule     MatchRule
	attempts int
}

func (g *generator) generate(layout Layout, reserve int) ([]Tile, error) {
	fail := func(format string, args ...any) error {
		return &GenerationError{Tiles: len(layout), Reason: fmt.Sprintf(format, args...)}
	}

	if len(layout) == 0 {
		return nil, fail("empty layout")
	}
	if len(layout)%2 != 0 {
		return nil, fail("odd tile count %d cannot be split into pairs", len(layout))
	}
	if len(g.alphabet) == 0 {
		return nil, fail("empty symbol alphabet")
	}
	seen := make(map[Position]bool, len(layout))
	for _, p := range layout {
		if p.Layer < 0 || p.Row < 0 || p.Col < 0 {
			return nil, fail("negative position %+v", p)
		}
		if seen[p] {
			return nil, fail("duplicate position %+v", p)
		}
		seen[p] = true
	}
	reserve = max(reserve, 0) &^ 1
	if len(layout)-reserve < 2 {
		return nil, fail("reserve of %d leaves no tiles on a %d-tile layout", reserve, len(layout))
	}

	attempts := max(g.attempts, 1)
	for range attempts {
		if tiles, ok := g.try(layout, reserve); ok {
			return tiles, nil
		}
	}
	return nil, fail("no solvable arrangement after %d attempts", attempts)
}

func (g *generator) try(layout Layout, reserve int) ([]Tile, bool) {
	idx := g.rng.Perm(len(layout))
	withheld := make(map[int]bool, reserve)
	for _, i := range idx[:reserve] {
		withheld[i] = true
	}

	remaining := make(positionSet, len(layout)-reserve)
	for i, p := range layout {
		if !withheld[i] {
			remaining[p] = TileID(i)
		}
	}

	faces := make([]Symbol, len(g.alphabet))
	for i, j := range g.rng.Perm(len(g.alphabet)) {
		faces[i] = g.alphabet[j]
	}

	symbols := make(map[TileID]Symbol, len(layout))
	pair := 0
	free := make([]TileID, 0, len(remaining))
	for len(remaining) > 0 {
		free = free[:0]
		for i, p := range layout {
			if _, ok := remaining[p]; !ok {
				continue
			}
			if g.rule.Free(remaining, Tile{Pos: p}) {
				free = append(free, TileID(i))
			}
		}
		if len(free) < 2 {
			return nil, false
		}
		a := g.rng.Intn(len(free))
		b := g.rng.Intn(len(free) - 1)
		if b >= a {
			b++
		}
		face := faces[pair%len(faces)]
		for _, id := range []TileID{free[a], free[b]} {
			symbols[id] = face
			delete(remaining, layout[id])
		}
		pair++
	}

	// Withheld tiles pair up among themselves in draw order.
	held := make([]TileID, 0, reserve)
	for _, i := range idx[:reserve] {
		held = append(held, TileID(i))
	}
	for k := 0; k < len(held); k += 2 {
		face := faces[pair%len(faces)]
		symbols[held[k]] = face
		symbols[held[k+1]] = face
		pair++
	}

	slot := make(map[TileID]int, reserve)
	for s, id := range held {
		slot[id] = s
	}

	tiles := make([]Tile, len(layout))
	for i, p := range layout {
		id := TileID(i)
		t := Tile{ID: id, Symbol: symbols[id], Pos: p, State: StateRevealed}
		if withheld[i] {
			t.Tray = true
			t.State = StateHidden
			t.Pos = Position{Col: slot[id]}
		}
		tiles[i] = t
	}
	return tiles, true
}
