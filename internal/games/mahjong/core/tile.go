// Package core implements the mahjong solitaire session engine: board layout
// and match rules, the selection state machine, countdown timer, scoring,
// reserve tray and session lifecycle. It has no terminal dependencies.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit groups tile faces.
type Suit int

const (
	SuitBamboo Suit = iota
	SuitDot
	SuitCharacter
	SuitWind
	SuitDragon
	SuitFlower
	SuitSeason
)

var suitNames = [...]string{"bamboo", "dot", "character", "wind", "dragon", "flower", "season"}

// String returns the lowercase suit name.
func (s Suit) String() string {
	if s < 0 || int(s) >= len(suitNames) {
		return "unknown"
	}
	return suitNames[s]
}

var (
	windNames   = [...]string{"east", "south", "west", "north"}
	dragonNames = [...]string{"red", "green", "white"}
)

// Symbol is a tile face. Two tiles match when their symbols are equal.
type Symbol struct {
	Suit Suit
	Rank int // 1-9 for numbered suits, 1-4 winds/flowers/seasons, 1-3 dragons
}

// String returns the canonical name, e.g. "bamboo-1", "wind-east".
func (s Symbol) String() string {
	switch s.Suit {
	case SuitWind:
		if s.Rank >= 1 && s.Rank <= len(windNames) {
			return "wind-" + windNames[s.Rank-1]
		}
	case SuitDragon:
		if s.Rank >= 1 && s.Rank <= len(dragonNames) {
			return "dragon-" + dragonNames[s.Rank-1]
		}
	}
	return fmt.Sprintf("%s-%d", s.Suit, s.Rank)
}

// Short returns a two-character face label for terminal rendering.
func (s Symbol) Short() string {
	switch s.Suit {
	case SuitBamboo:
		return "B" + strconv.Itoa(s.Rank)
	case SuitDot:
		return "D" + strconv.Itoa(s.Rank)
	case SuitCharacter:
		return "C" + strconv.Itoa(s.Rank)
	case SuitWind:
		if s.Rank >= 1 && s.Rank <= len(windNames) {
			return strings.ToUpper(windNames[s.Rank-1][:1]) + "w"
		}
	case SuitDragon:
		if s.Rank >= 1 && s.Rank <= len(dragonNames) {
			return strings.ToUpper(dragonNames[s.Rank-1][:1]) + "d"
		}
	case SuitFlower:
		return "F" + strconv.Itoa(s.Rank)
	case SuitSeason:
		return "S" + strconv.Itoa(s.Rank)
	}
	return "??"
}

// ParseSymbol parses a canonical symbol name as produced by Symbol.String.
func ParseSymbol(name string) (Symbol, error) {
	suitName, rankName, ok := strings.Cut(strings.ToLower(strings.TrimSpace(name)), "-")
	if !ok {
		return Symbol{}, fmt.Errorf("mahjong: invalid symbol %q", name)
	}
	for i, sn := range suitNames {
		if sn != suitName {
			continue
		}
		suit := Suit(i)
		switch suit {
		case SuitWind:
			for r, w := range windNames {
				if w == rankName {
					return Symbol{Suit: suit, Rank: r + 1}, nil
				}
			}
		case SuitDragon:
			for r, d := range dragonNames {
				if d == rankName {
					return Symbol{Suit: suit, Rank: r + 1}, nil
				}
			}
		default:
			rank, err := strconv.Atoi(rankName)
			if err == nil && rank >= 1 && rank <= suitSize(suit) {
				return Symbol{Suit: suit, Rank: rank}, nil
			}
		}
		return Symbol{}, fmt.Errorf("mahjong: invalid rank in symbol %q", name)
	}
	return Symbol{}, fmt.Errorf("mahjong: unknown suit in symbol %q", name)
}

func suitSize(s Suit) int {
	switch s {
	case SuitBamboo, SuitDot, SuitCharacter:
		return 9
	case SuitWind, SuitFlower, SuitSeason:
		return 4
	case SuitDragon:
		return 3
	}
	return 0
}

// FullAlphabet lists every distinct face in the set, suits in declaration order.
func FullAlphabet() []Symbol {
	var out []Symbol
	for s := SuitBamboo; s <= SuitSeason; s++ {
		for r := 1; r <= suitSize(s); r++ {
			out = append(out, Symbol{Suit: s, Rank: r})
		}
	}
	return out
}

// Alphabet returns the first n faces of the full set.
// n is clamped to the size of the set.
func Alphabet(n int) []Symbol {
	all := FullAlphabet()
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// TileID identifies a tile within one generated board.
type TileID int

// NoTile is the zero value returned when no tile applies.
const NoTile TileID = -1

// Position places a tile on the stacked grid. Layer 0 is the table.
type Position struct {
	Layer int
	Row   int
	Col   int
}

// TileState is the lifecycle of a single tile.
type TileState int

const (
	// Hidden tiles sit face-down in the reserve and are not in play.
	StateHidden TileState = iota
	// Revealed tiles are in play and face-up.
	StateRevealed
	// Selected tiles are in play and currently picked by the player.
	StateSelected
	// Matched is reserved for a removal animation; the engine moves
	// matched pairs straight to Removed.
	StateMatched
	// Removed tiles have left play for good.
	StateRemoved
)

func (s TileState) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateRevealed:
		return "revealed"
	case StateSelected:
		return "selected"
	case StateMatched:
		return "matched"
	case StateRemoved:
		return "removed"
	}
	return "unknown"
}

// InPlay reports whether the tile is on the table or tray and not yet removed.
func (s TileState) InPlay() bool {
	return s == StateRevealed || s == StateSelected
}

// Tile is a single matchable piece. Board owns tiles; everything else
// refers to them by ID and receives copies only for display.
type Tile struct {
	ID     TileID
	Symbol Symbol
	Pos    Position
	State  TileState
	Tray   bool // drawn from or waiting in the reserve; Pos.Col is its slot
}
