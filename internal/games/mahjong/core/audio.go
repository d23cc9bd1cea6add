package core

// Cue names a sound effect the presentation layer may play.
type Cue int

const (
	CueMusic Cue = iota
	CueSelect
	CueMatch
	CueMismatch
	CueDraw
	CueShuffle
	CueWin
	CueTimeout
	CueDeadlock
)

func (c Cue) String() string {
	switch c {
	case CueMusic:
		return "music"
	case CueSelect:
		return "select"
	case CueMatch:
		return "match"
	case CueMismatch:
		return "mismatch"
	case CueDraw:
		return "draw"
	case CueShuffle:
		return "shuffle"
	case CueWin:
		return "win"
	case CueTimeout:
		return "timeout"
	case CueDeadlock:
		return "deadlock"
	}
	return "unknown"
}

// AudioSink plays cues. Implementations must not block.
type AudioSink interface {
	Play(c Cue)
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) Play(Cue) {}
