package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

type timeUpCounter struct {
	calls int
}

func (c *timeUpCounter) TimeUp() { c.calls++ }

func TestTimerExpiresOnce(t *testing.T) {
	timer := core.NewGameTimer(3)
	counter := &timeUpCounter{}
	timer.SetGameLogic(counter)
	timer.Start()

	for i := 0; i < 10; i++ {
		timer.Update(0.5)
	}

	if counter.calls != 1 {
		t.Errorf("TimeUp called %d times, want 1", counter.calls)
	}
	if timer.IsPlaying() || !timer.Expired() || timer.Remaining() != 0 {
		t.Errorf("timer after expiry: playing %v, expired %v, remaining %v", timer.IsPlaying(), timer.Expired(), timer.Remaining())
	}

	timer.Start()
	timer.Update(1)
	if timer.IsPlaying() || counter.calls != 1 {
		t.Error("expired timer should not restart")
	}
}

func TestTimerCountsOnlyWhilePlaying(t *testing.T) {
	timer := core.NewGameTimer(10)
	timer.Update(4)
	if timer.Remaining() != 10 {
		t.Errorf("stopped timer moved to %v", timer.Remaining())
	}

	timer.Start()
	timer.SetVisible(false)
	timer.Update(4)
	if timer.Remaining() != 6 {
		t.Errorf("hidden running timer Remaining() = %v, want 6", timer.Remaining())
	}

	timer.Stop()
	timer.Update(4)
	if timer.Remaining() != 6 || timer.Expired() {
		t.Error("Stop should freeze the countdown without expiring")
	}
}

func TestUntimedTimerNeverExpires(t *testing.T) {
	timer := core.NewGameTimer(0)
	counter := &timeUpCounter{}
	timer.SetGameLogic(counter)
	timer.Start()
	timer.Update(1e6)

	if !timer.Untimed() || counter.calls != 0 || !timer.IsPlaying() {
		t.Error("untimed timer should keep playing")
	}
}

func TestTimeUpEndsSessionOnce(t *testing.T) {
	b := newBoard(core.DefaultBoardOptions(), 1)
	if err := b.Deal(grid(t, []string{"bamboo-1", "bamboo-1"})); err != nil {
		t.Fatalf("Deal() error = %v", err)
	}
	timer := core.NewGameTimer(1)
	l := core.NewGameLogic(core.LogicOptions{}, b, timer, core.NewScoreManager(core.DefaultScoreOptions(), nil), core.NewMemoryScene(), nil, nil)
	ender := &endRecorder{}
	l.SetEnder(ender)
	timer.SetGameLogic(l)
	timer.Start()
	l.Enable()

	timer.Update(1.5)
	timer.Update(1.5)

	if len(ender.outcomes) != 1 || ender.outcomes[0] != core.OutcomeTimedOut {
		t.Errorf("outcomes = %v, want one timed_out", ender.outcomes)
	}
	if l.Enabled() {
		t.Error("logic should be disabled after time up")
	}

	l.Pick(0)
	if _, ok := l.Selected(); ok {
		t.Error("pick after time up should be a no-op")
	}
}
