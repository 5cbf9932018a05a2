package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

func TestHeadingCardinalsAreExact(t *testing.T) {
	tests := []struct {
		deg      float64
		expected core.Vec2
	}{
		{0, core.V(1, 0)},
		{90, core.V(0, 1)},
		{180, core.V(-1, 0)},
		{270, core.V(0, -1)},
		{-90, core.V(0, -1)},
		{450, core.V(0, 1)},
		{720, core.V(1, 0)},
	}

	for _, tc := range tests {
		if got := Heading(tc.deg); got != tc.expected {
			t.Errorf("Heading(%v) = %v, expected %v", tc.deg, got, tc.expected)
		}
	}

	d := Heading(45)
	if math.Abs(d.Len()-1) > 1e-12 {
		t.Errorf("Heading(45) should be a unit vector, length %v", d.Len())
	}
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct{ in, expected float64 }{
		{0, 0},
		{360, 0},
		{-5, 355},
		{725, 5},
		{-360, 0},
	}
	for _, tc := range tests {
		if got := NormalizeHeading(tc.in); got != tc.expected {
			t.Errorf("NormalizeHeading(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestAdvanceWrap(t *testing.T) {
	b := core.B(800, 600)

	tests := []struct {
		name string
		e    Entity
		x, y float64
	}{
		{"past right edge resets to 0", Entity{Pos: core.V(799, 10), Heading: 0, Speed: 1}, 0, 10},
		{"past bottom edge resets to 0", Entity{Pos: core.V(10, 598), Heading: 90, Speed: 3}, 10, 0},
		{"inside stays", Entity{Pos: core.V(10, 10), Heading: 0, Speed: 5}, 15, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, alive := Advance(tc.e, b, BoundaryWrap)
			if !alive {
				t.Fatal("wrapped entities are never removed")
			}
			if got.Pos.X != tc.x || got.Pos.Y != tc.y {
				t.Errorf("Pos = %v, expected (%v, %v)", got.Pos, tc.x, tc.y)
			}
		})
	}

	// Leaving below zero lands just inside the far edge.
	got, _ := Advance(Entity{Pos: core.V(0.5, 0.5), Heading: 180, Speed: 1}, b, BoundaryWrap)
	if got.Pos.X >= 800 || got.Pos.X < 799.99 {
		t.Errorf("X = %v, expected just below 800", got.Pos.X)
	}
	got, _ = Advance(Entity{Pos: core.V(5, 0.5), Heading: 270, Speed: 2}, b, BoundaryWrap)
	if got.Pos.Y >= 600 || got.Pos.Y < 599.99 {
		t.Errorf("Y = %v, expected just below 600", got.Pos.Y)
	}
}

func TestAdvanceCull(t *testing.T) {
	b := core.B(800, 600)

	tests := []struct {
		name  string
		e     Entity
		alive bool
	}{
		{"on the far edge stays", Entity{Pos: core.V(793, 300), Heading: 0, Speed: 7}, true},
		{"past the far edge goes", Entity{Pos: core.V(799, 300), Heading: 0, Speed: 7}, false},
		{"above the top goes", Entity{Pos: core.V(100, 3), Heading: 270, Speed: 7}, false},
		{"box on the top edge stays", Entity{Pos: core.V(100, 10), Heading: 270, Speed: 10, W: 10, H: 20}, true},
		{"box with its position off the top goes", Entity{Pos: core.V(100, 5), Heading: 270, Speed: 10, W: 10, H: 20}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, alive := Advance(tc.e, b, BoundaryCull); alive != tc.alive {
				t.Errorf("alive = %v, expected %v", alive, tc.alive)
			}
		})
	}
}

func TestAdvanceCullBelow(t *testing.T) {
	b := core.B(400, 600)
	e := Entity{Kind: KindObstacle, Pos: core.V(0, -40), Heading: 90, Speed: 5, W: 40, H: 40}

	// Entering from above is allowed.
	e, alive := Advance(e, b, BoundaryCullBelow)
	if !alive || e.Pos.Y != -35 {
		t.Fatalf("obstacle above the area should keep falling, got Y=%v alive=%v", e.Pos.Y, alive)
	}

	e.Pos.Y = 595
	e, alive = Advance(e, b, BoundaryCullBelow)
	if !alive || e.Pos.Y != 600 {
		t.Fatalf("top edge on the bottom bound should stay, got Y=%v alive=%v", e.Pos.Y, alive)
	}
	if _, alive = Advance(e, b, BoundaryCullBelow); alive {
		t.Error("top edge past the bottom bound should be culled")
	}
}

func TestReflect(t *testing.T) {
	b := core.B(800, 600)

	tests := []struct {
		name    string
		e       Entity
		edges   Edge
		pos     core.Vec2
		heading float64
		hit     Edge
	}{
		{"left wall", Entity{Pos: core.V(-2, 50), Heading: 180}, EdgeAll, core.V(0, 50), 0, EdgeLeft},
		{"right wall diagonal", Entity{Pos: core.V(790, 100), Heading: 45, W: 20, H: 20}, EdgeAll, core.V(780, 100), 135, EdgeRight},
		{"top wall", Entity{Pos: core.V(50, -1), Heading: 270}, EdgeAll, core.V(50, 0), 90, EdgeTop},
		{"corner", Entity{Pos: core.V(-1, -1), Heading: 225}, EdgeAll, core.V(0, 0), 45, EdgeLeft | EdgeTop},
		{"open bottom", Entity{Pos: core.V(50, 610), Heading: 90}, EdgeLeft | EdgeRight | EdgeTop, core.V(50, 610), 90, EdgeNone},
		{"inside", Entity{Pos: core.V(50, 50), Heading: 30}, EdgeAll, core.V(50, 50), 30, EdgeNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, hit := Reflect(tc.e, b, tc.edges)
			if got.Pos != tc.pos {
				t.Errorf("Pos = %v, expected %v", got.Pos, tc.pos)
			}
			if math.Abs(got.Heading-tc.heading) > 1e-9 {
				t.Errorf("Heading = %v, expected %v", got.Heading, tc.heading)
			}
			if hit != tc.hit {
				t.Errorf("hit = %b, expected %b", hit, tc.hit)
			}
		})
	}
}

func TestSteer(t *testing.T) {
	c := Craft{MaxSpeed: 5, AccelerationStep: 0.1, Accelerating: true, RotationRate: 5}

	for range 100 {
		c = Steer(c)
	}
	if c.Speed != 5 {
		t.Errorf("Speed after long thrust = %v, expected max 5", c.Speed)
	}
	if c.Heading != 500 {
		t.Errorf("Heading = %v, expected 500 (heading is not normalized)", c.Heading)
	}

	c.Accelerating = false
	for range 100 {
		c = Steer(c)
		if c.Speed < 0 {
			t.Fatalf("Speed went negative: %v", c.Speed)
		}
	}
	if c.Speed != 0 {
		t.Errorf("Speed after coasting = %v, expected 0", c.Speed)
	}
}

func TestStrafe(t *testing.T) {
	b := core.B(400, 600)
	c := Craft{Entity: Entity{Pos: core.V(180, 540), W: 40, H: 40}}

	c = Strafe(c, -1, 0, 5, b)
	if c.Pos.X != 175 {
		t.Errorf("X = %v, expected 175", c.Pos.X)
	}

	for range 100 {
		c = Strafe(c, 1, 1, 5, b)
	}
	if c.Pos.X != 360 || c.Pos.Y != 560 {
		t.Errorf("Pos = %v, expected clamped to (360, 560)", c.Pos)
	}
}
