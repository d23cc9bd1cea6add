package core

// TimeUpNotifier receives the single expiry signal of a session.
type TimeUpNotifier interface {
	TimeUp()
}

// GameTimer counts down while playing. Expiry fires once per session and
// is driven only by accumulated frame time.
type GameTimer struct {
	duration  float64
	remaining float64
	playing   bool
	expired   bool
	visible   bool
	logic     TimeUpNotifier
}

// NewGameTimer creates a stopped timer. A duration <= 0 never expires.
func NewGameTimer(duration float64) *GameTimer {
	t := &GameTimer{}
	t.Reset(duration)
	return t
}

// SetGameLogic binds the expiry target.
func (t *GameTimer) SetGameLogic(l TimeUpNotifier) {
	t.logic = l
}

// Reset stops the timer and rearms it with a new duration.
func (t *GameTimer) Reset(duration float64) {
	t.duration = duration
	t.remaining = max(duration, 0)
	t.playing = false
	t.expired = false
}

// Start resumes counting. It has no effect after expiry.
func (t *GameTimer) Start() {
	if t.expired {
		return
	}
	t.playing = true
}

// Stop pauses counting without signalling expiry.
func (t *GameTimer) Stop() {
	t.playing = false
}

// Update subtracts dt while playing and fires expiry at zero.
func (t *GameTimer) Update(dt float64) {
	if !t.playing || t.expired || t.duration <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return
	}
	t.remaining = 0
	t.playing = false
	t.expired = true
	if t.logic != nil {
		t.logic.TimeUp()
	}
}

func (t *GameTimer) IsPlaying() bool { return t.playing }

func (t *GameTimer) Expired() bool { return t.expired }

func (t *GameTimer) Remaining() float64 { return t.remaining }

func (t *GameTimer) Duration() float64 { return t.duration }

// Untimed reports whether the timer never expires.
func (t *GameTimer) Untimed() bool { return t.duration <= 0 }

func (t *GameTimer) SetVisible(v bool) { t.visible = v }

func (t *GameTimer) Visible() bool { return t.visible }
