package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"h", runeKey('h'), core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"l", runeKey('l'), core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionLaunch, false},
		{"q", runeKey('q'), core.ActionNone, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionNone, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionNone, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, expected %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("quit = %v, expected %v", quit, tt.quit)
			}
		})
	}
}

func TestReleaseTimer(t *testing.T) {
	r := newReleaseTimer(2)

	if r.Tick() {
		t.Fatal("unarmed timer must not fire")
	}

	r.Press()
	fired := 0
	firedAt := -1
	for i := 0; i < 6; i++ {
		if r.Tick() {
			fired++
			firedAt = i
		}
	}
	if fired != 1 {
		t.Fatalf("fired %d times, expected once", fired)
	}
	if firedAt != 2 {
		t.Errorf("fired on tick %d, expected 2", firedAt)
	}
}

func TestReleaseTimerRearm(t *testing.T) {
	r := newReleaseTimer(1)
	r.Press()
	r.Tick()
	r.Press() // A second press before it lapses restarts the wait
	if r.Tick() {
		t.Error("re-armed timer fired early")
	}
	if !r.Tick() {
		t.Error("re-armed timer did not fire")
	}
}

func TestReleaseTimerZeroTicks(t *testing.T) {
	r := newReleaseTimer(0)
	r.Press()
	if !r.Tick() {
		t.Error("zero-tick timer should fire on the next tick")
	}
}
