package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
)

func newTestCountdown() (*CountdownModel, service.CountdownService) {
	svc := service.NewCountdownService(
		domain.NewClock(domain.ClockOptions{Default: 500}),
		domain.NewEditBuffer(500),
		nil,
		nil,
	)
	return NewCountdownModel(svc), svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCountdownToggleArmsTicks(t *testing.T) {
	m, svc := newTestCountdown()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if cmd == nil {
		t.Fatal("expected start to schedule a tick")
	}
	if !svc.Armed() {
		t.Fatal("expected service armed after start")
	}

	_, cmd = m.Update(tickMsg{gen: m.gen})
	if cmd == nil {
		t.Fatal("expected tick to schedule the next tick")
	}
	if got := svc.Display().Remaining; got != 299 {
		t.Fatalf("expected 299 after one tick, got %d", got)
	}
}

func TestCountdownStaleTickDropped(t *testing.T) {
	m, svc := newTestCountdown()

	m.Update(runes("s"))
	staleGen := m.gen

	// stop then start again: the tick from the first arming must not count
	m.Update(runes("s"))
	m.Update(runes("s"))

	_, cmd := m.Update(tickMsg{gen: staleGen})
	if cmd != nil {
		t.Fatal("expected stale tick to be dropped")
	}
	if got := svc.Display().Remaining; got != 300 {
		t.Fatalf("expected stale tick to have no effect, got %d", got)
	}
}

func TestCountdownNoTickAfterStop(t *testing.T) {
	m, svc := newTestCountdown()

	m.Update(runes("s"))
	gen := m.gen
	m.Update(runes("s"))

	m.Update(tickMsg{gen: gen})
	m.Update(tickMsg{gen: m.gen})
	if got := svc.Display().Remaining; got != 300 {
		t.Fatalf("expected no ticks after stop, got %d", got)
	}
}

func TestCountdownEditFlow(t *testing.T) {
	m, svc := newTestCountdown()

	m.Update(runes("s"))
	m.Update(runes("e"))
	if !m.IsCapturingInput() {
		t.Fatal("expected edit mode to capture input")
	}
	if svc.Armed() {
		t.Fatal("expected editing to disarm the clock")
	}
	if !strings.Contains(m.View(), "00h05m00s") {
		t.Fatalf("expected buffer in view, got:\n%s", m.View())
	}

	m.Update(runes("1"))
	if got := svc.Display().Buffer; got != "005001" {
		t.Fatalf("expected 005001, got %q", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsCapturingInput() {
		t.Fatal("expected enter to commit")
	}
	d := svc.Display()
	if d.Remaining != 3001 || d.Running {
		t.Fatalf("expected stopped at 3001, got %d running=%v", d.Remaining, d.Running)
	}
	if !strings.Contains(m.View(), "50m1s") {
		t.Fatalf("expected committed value in view, got:\n%s", m.View())
	}
}

func TestCountdownBackspaceAndEscape(t *testing.T) {
	m, svc := newTestCountdown()

	m.Update(runes("e"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := svc.Display().Buffer; got != "000050" {
		t.Fatalf("expected 000050, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := svc.Display().Remaining; got != 50 {
		t.Fatalf("expected 50 seconds, got %d", got)
	}
}

func TestCountdownReset(t *testing.T) {
	m, svc := newTestCountdown()

	m.Update(runes("s"))
	m.Update(tickMsg{gen: m.gen})
	m.Update(runes("r"))

	d := svc.Display()
	if d.Remaining != 300 || d.Running {
		t.Fatalf("expected reset to 300 stopped, got %d running=%v", d.Remaining, d.Running)
	}
	if !strings.Contains(m.View(), "STOPPED") {
		t.Fatalf("expected STOPPED in view, got:\n%s", m.View())
	}
}
