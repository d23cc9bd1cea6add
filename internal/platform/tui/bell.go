package tui

import (
	"io"
	"sync"

	mjcore "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// BellSink plays sound cues as the terminal bell.
// Only cues that need the player's attention ring.
type BellSink struct {
	mu    sync.Mutex
	w     io.Writer
	rings map[mjcore.Cue]bool
	muted bool
}

// NewBellSink returns a sink that writes BEL to w.
func NewBellSink(w io.Writer) *BellSink {
	return &BellSink{
		w: w,
		rings: map[mjcore.Cue]bool{
			mjcore.CueMismatch: true,
			mjcore.CueWin:      true,
			mjcore.CueTimeout:  true,
			mjcore.CueDeadlock: true,
		},
	}
}

// Play implements mjcore.AudioSink.
func (b *BellSink) Play(c mjcore.Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || b.w == nil || !b.rings[c] {
		return
	}
	//nolint:errcheck // A lost bell is not worth reporting
	b.w.Write([]byte{'\a'})
}

// SetMuted silences the sink.
func (b *BellSink) SetMuted(m bool) {
	b.mu.Lock()
	b.muted = m
	b.mu.Unlock()
}
