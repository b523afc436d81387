package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/projshift/internal/config"
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/transition"
)

func testModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	tr, cam, err := cfg.NewTransitioner()
	if err != nil {
		t.Fatal(err)
	}
	return newModel(cfg, "test", cam, tr, sim.FixedStep{Dt: 0.1})
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg{Gen: m.gen, At: time.Time{}})
		m = next.(Model)
	}
	return m
}

func TestButtonLabel(t *testing.T) {
	if got := ButtonLabel(projection.Orthographic); got != "Orthographic -> Perspective" {
		t.Errorf("ortho label = %q", got)
	}
	if got := ButtonLabel(projection.Perspective); got != "Perspective -> Orthographic" {
		t.Errorf("persp label = %q", got)
	}
}

func TestModelTransitionRoundTrip(t *testing.T) {
	m := testModel(t, config.DefaultConfig())

	m = press(m, "t")
	if !m.tr.Running() {
		t.Fatal("expected running after t")
	}
	m = tick(m, 10)
	if m.tr.Running() {
		t.Fatal("expected finished after 1s of ticks")
	}
	if m.cam.Mode() != projection.Perspective {
		t.Errorf("mode = %v, want perspective", m.cam.Mode())
	}
	if m.cam.IsCustom() {
		t.Error("camera left with custom matrix")
	}
	if !m.last.Final {
		t.Error("last frame not final")
	}

	m = press(m, "enter")
	m = tick(m, 10)
	if m.cam.Mode() != projection.Orthographic {
		t.Errorf("mode = %v, want orthographic", m.cam.Mode())
	}
}

func TestModelIgnoresTriggerWhileRunning(t *testing.T) {
	m := testModel(t, config.DefaultConfig())
	m = press(m, "t")
	m = tick(m, 3)
	before := m.tr.State()

	m = press(m, "t")
	after := m.tr.State()
	if after.Elapsed != before.Elapsed || after.StartMode != before.StartMode || after.From != before.From {
		t.Error("re-trigger changed running state")
	}
}

func TestModelCancel(t *testing.T) {
	m := testModel(t, config.DefaultConfig())
	m = press(m, "t")
	m = tick(m, 2)
	m = press(m, "c")

	if m.tr.Running() {
		t.Fatal("still running after cancel")
	}
	if m.cam.Mode() != projection.Perspective {
		t.Errorf("mode = %v, want perspective", m.cam.Mode())
	}
}

func TestModelDurationKeys(t *testing.T) {
	m := testModel(t, config.DefaultConfig())
	m = press(m, "+")
	if m.duration != 1.25 {
		t.Errorf("duration = %g, want 1.25", m.duration)
	}
	for i := 0; i < 10; i++ {
		m = press(m, "-")
	}
	if m.duration != 0 {
		t.Errorf("duration = %g, want 0", m.duration)
	}

	m = press(m, "t")
	if m.tr.Running() {
		t.Error("zero duration should switch immediately")
	}
	if m.cam.Mode() != projection.Perspective {
		t.Errorf("mode = %v, want perspective", m.cam.Mode())
	}
}

func TestModelCycleCurve(t *testing.T) {
	m := testModel(t, config.DefaultConfig())
	start := m.curveName()
	m = press(m, "n")
	if m.curveName() == start {
		t.Error("curve did not change")
	}

	names := transition.CurveNames()
	for i := 1; i < len(names); i++ {
		m = press(m, "n")
	}
	if m.curveName() != start {
		t.Errorf("curve = %s after full cycle, want %s", m.curveName(), start)
	}
}

func TestModelView(t *testing.T) {
	m := testModel(t, config.DefaultConfig())
	v := m.View()
	if !strings.Contains(v, "Orthographic -> Perspective") {
		t.Error("view missing button label")
	}

	m = press(m, "t")
	m = tick(m, 10)
	if v := m.View(); !strings.Contains(v, "Perspective -> Orthographic") {
		t.Error("view missing reversed label")
	}
}

func TestMenuOpensPreset(t *testing.T) {
	var m tea.Model = NewMenu()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := m.(Menu)
	if menu.state != stateLive {
		t.Fatalf("state = %d, want live", menu.state)
	}
	if menu.live.name != menu.presets[0] {
		t.Errorf("live preset = %s, want %s", menu.live.name, menu.presets[0])
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(Menu).state != stateMenu {
		t.Error("esc did not return to menu")
	}
}

func TestMenuDropsTicksFromClosedViewer(t *testing.T) {
	var m tea.Model = NewMenu()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	stale := TickMsg{Gen: m.(Menu).live.gen}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := m.(Menu)
	if menu.live.gen == stale.Gen {
		t.Fatalf("reopened viewer reuses generation %d", stale.Gen)
	}

	tests := []struct {
		name    string
		msg     TickMsg
		wantCmd bool
	}{
		{"stale tick", stale, false},
		{"current tick", TickMsg{Gen: menu.live.gen}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := m.Update(tt.msg)
			if got := cmd != nil; got != tt.wantCmd {
				t.Errorf("re-armed = %v, want %v", got, tt.wantCmd)
			}
		})
	}
}

func TestModelIgnoresForeignTick(t *testing.T) {
	m := testModel(t, config.DefaultConfig())
	m = press(m, "t")
	before := m.tr.State().Elapsed

	next, cmd := m.Update(TickMsg{Gen: m.gen + 1})
	if cmd != nil {
		t.Error("foreign tick should not re-arm the loop")
	}
	if got := next.(Model).tr.State().Elapsed; got != before {
		t.Errorf("foreign tick advanced elapsed from %g to %g", before, got)
	}
}
