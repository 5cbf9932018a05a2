package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

// stubGame records what the model asks of it.
type stubGame struct {
	resets  int
	seeds   []int64
	inputs  []core.InputFrame
	state   core.GameState
	resized [2]int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	g.state.Tick++
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) { dst.Clear() }
func (g *stubGame) State() core.GameState   { return g.state }

// resizingGame also follows resizes in place.
type resizingGame struct{ stubGame }

func (g *resizingGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestKeyMapperGameKeys(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey('w'), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey('a'), core.ActionAltLeft, false},
		{runeKey('d'), core.ActionAltRight, false},
		{runeKey(' '), core.ActionFire, false},
		{runeKey('p'), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('x'), core.ActionNone, false},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('q'), core.ActionQuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestKeyMapperMenuKeys(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModelKeysReachNextTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 50, Seed: 7})
	m.Init()

	m, _ = update(t, m, runeKey(' '))
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg(time.Now()))

	if len(g.inputs) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionFire) {
		t.Error("first tick should see Fire")
	}
	if g.inputs[1].Has(core.ActionFire) {
		t.Error("input frame should be cleared after a tick")
	}
	if m.State().Tick != 2 {
		t.Errorf("State().Tick = %d, want 2", m.State().Tick)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, core.DefaultConfig())
	m.Init()

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit the program")
	}
	if m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelBackToMenuOnlyWhenStopped(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()
	m, _ = update(t, m, TickMsg(time.Now()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Esc during play should not leave the game")
	}

	g.state.Paused = true
	m, _ = update(t, m, TickMsg(time.Now()))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("Esc while paused should go back to the menu")
	}
	if cmd == nil {
		t.Error("going back should end the program")
	}

	steps := len(g.inputs)
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("tick loop should stop after going back")
	}
	if len(g.inputs) != steps {
		t.Error("no more steps after going back")
	}
}

func TestModelRestartUsesFreshSeed(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 50, Seed: 7})
	m.Init()

	g.state.GameOver = true
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, runeKey('r'))
	update(t, m, TickMsg(time.Now()))

	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	if g.seeds[0] != 7 || g.seeds[1] == 7 {
		t.Errorf("seeds = %v, want 7 then a new one", g.seeds)
	}
}

func TestModelResize(t *testing.T) {
	t.Run("resizer keeps the run", func(t *testing.T) {
		g := &resizingGame{}
		m := NewModel(g, nil, core.DefaultConfig())
		m.Init()
		update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

		if g.resets != 1 {
			t.Errorf("resets = %d, want 1", g.resets)
		}
		if g.resized != [2]int{100, 40} {
			t.Errorf("resized = %v, want [100 40]", g.resized)
		}
	})

	t.Run("other games restart", func(t *testing.T) {
		g := &stubGame{}
		m := NewModel(g, nil, core.DefaultConfig())
		m.Init()
		update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

		if g.resets != 2 {
			t.Errorf("resets = %d, want 2", g.resets)
		}
	})
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	m := NewModel(g, store, core.DefaultConfig())
	m.Init()

	g.state.Score = 250
	g.state.GameOver = true
	for range 3 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 250 {
		t.Errorf("scores = %+v, want one entry of 250", scores)
	}
}

func TestModelReload(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()

	m, _ = update(t, m, ReloadMsg{Path: "/tmp/asteroids.yaml"})
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.notice != "reloaded asteroids.yaml" {
		t.Errorf("notice = %q", m.notice)
	}
}
