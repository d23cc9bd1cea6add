package core

import "fmt"

// Occupancy answers whether a grid cell holds a tile still in play.
type Occupancy interface {
	Occupied(p Position) bool
}

// MatchRule decides whether a tile is reachable for matching.
type MatchRule interface {
	Name() string
	Free(occ Occupancy, t Tile) bool
}

// FreeRule is the classic solitaire rule: a tile is free when nothing lies
// directly on top of it and at least one of its left or right neighbours
// on the same layer is empty. Tray tiles are always free.
type FreeRule struct{}

func (FreeRule) Name() string { return "free" }

func (FreeRule) Free(occ Occupancy, t Tile) bool {
	if t.Tray {
		return true
	}
	p := t.Pos
	if occ.Occupied(Position{Layer: p.Layer + 1, Row: p.Row, Col: p.Col}) {
		return false
	}
	left := occ.Occupied(Position{Layer: p.Layer, Row: p.Row, Col: p.Col - 1})
	right := occ.Occupied(Position{Layer: p.Layer, Row: p.Row, Col: p.Col + 1})
	return !left || !right
}

// AnyRule matches on symbol equality alone.
type AnyRule struct{}

func (AnyRule) Name() string { return "any" }

func (AnyRule) Free(Occupancy, Tile) bool { return true }

// RuleByName resolves a configured rule name.
func RuleByName(name string) (MatchRule, error) {
	switch name {
	case "", "free":
		return FreeRule{}, nil
	case "any":
		return AnyRule{}, nil
	}
	return nil, fmt.Errorf("mahjong: unknown match rule %q", name)
}

// positionSet is an Occupancy backed by a map.
type positionSet map[Position]TileID

func (s positionSet) Occupied(p Position) bool {
	_, ok := s[p]
	return ok
}
