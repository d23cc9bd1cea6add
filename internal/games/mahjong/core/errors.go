package core

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneration is wrapped by every GenerationError.
	ErrGeneration = errors.New("mahjong: board generation failed")

	// ErrReserveEmpty is returned by TileHolder.Draw when nothing is left.
	ErrReserveEmpty = errors.New("mahjong: reserve empty")

	// ErrInvalidPick marks a pick of an unknown, hidden or removed tile.
	// It is logged, never returned into the frame loop.
	ErrInvalidPick = errors.New("mahjong: invalid pick")

	// ErrNoScene is returned by CreateCursor when no scene is attached.
	ErrNoScene = errors.New("mahjong: no scene to attach cursor")
)

// GenerationError describes why a board could not be built.
// The previous board (if any) is left untouched.
type GenerationError struct {
	Width, Height int
	Tiles         int
	Reason        string
}

func (e *GenerationError) Error() string {
	if e.Width > 0 || e.Height > 0 {
		return fmt.Sprintf("mahjong: cannot generate %dx%d board: %s", e.Width, e.Height, e.Reason)
	}
	return fmt.Sprintf("mahjong: cannot generate %d-tile layout: %s", e.Tiles, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return ErrGeneration
}

// RejectReason explains a failed match.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectSameTile
	RejectAlreadyRemoved
	RejectDifferentSymbol
	RejectBlocked
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectSameTile:
		return "same tile"
	case RejectAlreadyRemoved:
		return "already removed"
	case RejectDifferentSymbol:
		return "different symbol"
	case RejectBlocked:
		return "blocked"
	}
	return "unknown"
}

// MatchResult is the value outcome of Board.TryMatch. A rejection is
// expected gameplay, not an error.
type MatchResult struct {
	Matched bool
	Reason  RejectReason // RejectNone when Matched
	Symbol  Symbol       // shared symbol when Matched
}

// Rejected reports whether the match was refused.
func (r MatchResult) Rejected() bool {
	return !r.Matched
}

func (r MatchResult) String() string {
	if r.Matched {
		return "matched " + r.Symbol.String()
	}
	return "rejected: " + r.Reason.String()
}
