package mahjong

import "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"

// Snapshot captures the visible game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Phase     string
	Outcome   string
	Score     int
	Active    int
	Reserve   int
	Remaining float64
	Faces     []string // symbol names in tile id order, tray tiles included
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Variant: g.variant.id,
		Phase:   core.PhaseNotStarted.String(),
		Outcome: core.OutcomeNone.String(),
	}
	s := g.session
	if s == nil {
		return snap
	}

	snap.Phase = s.Phase().String()
	snap.Outcome = s.Starter.Outcome().String()
	snap.Score = s.Score.Score()
	snap.Active = s.Board.ActiveCount()
	snap.Reserve = s.Holder.Len()
	snap.Remaining = s.Timer.Remaining()
	for _, t := range s.Board.Tiles() {
		snap.Faces = append(snap.Faces, t.Symbol.String())
	}
	return snap
}
