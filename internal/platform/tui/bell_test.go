package tui

import (
	"bytes"
	"testing"

	mjcore "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func TestBellRingsOnAttentionCues(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBellSink(&buf)

	bell.Play(mjcore.CueSelect)
	bell.Play(mjcore.CueMatch)
	if buf.Len() != 0 {
		t.Fatalf("select and match should be silent, got %q", buf.String())
	}

	bell.Play(mjcore.CueMismatch)
	bell.Play(mjcore.CueWin)
	if buf.String() != "\a\a" {
		t.Errorf("output = %q, want two bells", buf.String())
	}

	bell.SetMuted(true)
	bell.Play(mjcore.CueTimeout)
	if buf.String() != "\a\a" {
		t.Errorf("muted sink rang: %q", buf.String())
	}
}

func TestBellWithoutWriter(t *testing.T) {
	NewBellSink(nil).Play(mjcore.CueWin)
}
