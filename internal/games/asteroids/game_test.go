package asteroids

import (
	"strings"
	"testing"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 31, TickRate: core.DefaultTickRate, Seed: seed}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		inputs[i].Set(core.ActionRight)
		if i%10 == 0 {
			inputs[i].Set(core.ActionFire)
		}
		if i%40 < 5 {
			inputs[i].Set(core.ActionUp)
		}
	}

	run := func() (uint64, core.GameState) {
		g := New()
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot().Hash(), g.State()
	}

	h1, s1 := run()
	h2, s2 := run()
	if h1 != h2 {
		t.Errorf("Determinism failed: snapshot hashes differ. Run1=%x, Run2=%x", h1, h2)
	}
	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))

	snap := g.Snapshot()
	if snap.Player.Pos != core.V(400, 300) {
		t.Errorf("craft should start at the centre, got %+v", snap.Player.Pos)
	}
	if len(snap.Hazards) != 5 {
		t.Errorf("expected 5 hazards, got %d", len(snap.Hazards))
	}

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	g.Step(fire)
	if n := len(g.Snapshot().Projectiles); n != 1 {
		t.Fatalf("expected one projectile after firing, got %d", n)
	}

	g.Reset(testRuntime(42))
	if st := g.State(); st.Score != 0 || st.Tick != 0 || st.GameOver {
		t.Errorf("Reset should start a fresh run, got %+v", st)
	}
	if len(g.Snapshot().Projectiles) != 0 {
		t.Error("Reset should clear projectiles")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	idle := core.NewInputFrame()

	g.Step(idle)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	before := g.Snapshot().Hash()
	for range 20 {
		g.Step(idle)
	}
	if g.Snapshot().Hash() != before || g.State().Tick != 1 {
		t.Error("a paused game must not advance")
	}

	g.Step(pause) // unpausing ticks straight away
	g.Step(idle)
	if g.State().Paused || g.State().Tick != 3 {
		t.Errorf("unpausing should resume ticking, got %+v", g.State())
	}
}

func TestExternalInputSource(t *testing.T) {
	g := New()
	g.SetInput(sim.InputFunc(func() sim.Intent { return sim.Intent{Fire: true} }))
	g.Reset(testRuntime(3))

	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if n := len(g.Snapshot().Projectiles); n != 2 {
		t.Errorf("scripted input should fire every tick, got %d projectiles", n)
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))

	screen := core.NewScreen(80, 31)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
	x, y := g.Viewport().Cell(core.V(400, 300))
	if got := screen.Get(x, y); got != '→' {
		t.Errorf("craft glyph at (%d,%d) = %q, expected '→'", x, y, got)
	}
	if cell := screen.GetCell(x, y); cell.Color != core.ColorCraft {
		t.Errorf("craft colour = %v", cell.Color)
	}
}
