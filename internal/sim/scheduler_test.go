package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

type boundsSeq struct {
	seq   []core.Bounds
	calls int
}

func (b *boundsSeq) Bounds() core.Bounds {
	v := b.seq[min(b.calls, len(b.seq)-1)]
	b.calls++
	return v
}

func TestSchedulerTickOrder(t *testing.T) {
	b := core.B(800, 600)
	s := newSim(t, asteroidsConfig(), 1, b)

	var events []string
	input := InputFunc(func() Intent {
		events = append(events, "sample")
		return Intent{}
	})
	render := RenderFunc(func(snap Snapshot) {
		events = append(events, "present")
		if snap.Tick == 0 {
			t.Error("renderer should see the state after the tick")
		}
	})

	sched := NewScheduler(s, input, FixedBounds(b), WithRenderer(render))
	if n := sched.RunTicks(3); n != 3 {
		t.Fatalf("RunTicks(3) ran %d", n)
	}

	expected := "sample present sample present sample present"
	if got := strings.Join(events, " "); got != expected {
		t.Errorf("events = %q, expected %q", got, expected)
	}
	if s.Tick() != 3 {
		t.Errorf("Tick = %d, expected 3", s.Tick())
	}
}

func TestSchedulerReadsBoundsEachTick(t *testing.T) {
	cfg := asteroidsConfig()
	cfg.HazardTarget = 2
	s := newSim(t, cfg, 1, core.B(800, 600))
	s.Store().Clear(Hazards)
	s.Store().Insert(Hazards, Entity{Kind: KindHazard, Pos: core.V(100, 100)})
	s.Store().Insert(Hazards, Entity{Kind: KindHazard, Pos: core.V(600, 100)})

	bounds := &boundsSeq{seq: []core.Bounds{core.B(800, 600), core.B(400, 300)}}
	sched := NewScheduler(s, InputFunc(func() Intent { return Intent{} }), bounds)
	sched.RunTicks(4)

	if bounds.calls != 4 {
		t.Errorf("bounds sampled %d times, expected once per tick", bounds.calls)
	}
	hazards := s.Store().All(Hazards)
	if hazards[0].Pos != core.V(100, 100) || hazards[1].Pos != core.V(0, 100) {
		t.Errorf("hazards at %v and %v, expected (100,100) and (0,100) after the resize", hazards[0].Pos, hazards[1].Pos)
	}
	if p := s.Store().Player().Pos; p != core.V(0, 0) {
		t.Errorf("craft at %v, expected wrapped to the origin", p)
	}
}

func TestSchedulerStopsOnGameOver(t *testing.T) {
	b := core.B(800, 600)
	cfg := asteroidsConfig()
	cfg.HazardTarget = 1
	s := newSim(t, cfg, 1, b)
	s.Store().Clear(Hazards)
	s.Store().Insert(Hazards, Entity{Kind: KindHazard, Pos: core.V(401, 300)})

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	presents := 0
	sched := NewScheduler(s, InputFunc(func() Intent { return Intent{} }), FixedBounds(b),
		WithLogger(logger),
		WithRenderer(RenderFunc(func(Snapshot) { presents++ })),
	)

	if n := sched.RunTicks(10); n != 1 {
		t.Errorf("RunTicks ran %d ticks, expected to stop after 1", n)
	}
	if sched.Running() {
		t.Error("scheduler should stop on game over")
	}
	if presents != 1 {
		t.Errorf("presents = %d, expected the final state to be rendered once", presents)
	}
	if !strings.Contains(buf.String(), "game over") {
		t.Errorf("expected a game over log line, got %q", buf.String())
	}
	if _, ok := sched.Tick(); ok {
		t.Error("Tick after stop should report false")
	}
}

func TestSchedulerRunHonoursContext(t *testing.T) {
	b := core.B(800, 600)
	s := newSim(t, asteroidsConfig(), 1, b)
	sched := NewScheduler(s, InputFunc(func() Intent { return Intent{} }), FixedBounds(b))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sched.Run(ctx, 1000); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, expected context.Canceled", err)
	}
	if sched.Running() {
		t.Error("cancelled scheduler should not be running")
	}
}
