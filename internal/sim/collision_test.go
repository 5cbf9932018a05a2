package sim

import (
	"testing"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

func pt(x, y float64) Entity {
	return Entity{Pos: core.V(x, y)}
}

func TestPairsWithin(t *testing.T) {
	craft := []Entity{pt(400, 300)}
	hazards := []Entity{pt(405, 300), pt(420, 300), pt(100, 100), pt(400, 319.5)}

	got := Pairs(craft, hazards, Within(20))
	expected := []Pair{{0, 0}, {0, 3}}

	if len(got) != len(expected) {
		t.Fatalf("Pairs = %v, expected %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("pair %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestPairsOverlap(t *testing.T) {
	bullets := []Entity{
		{Pos: core.V(100, 100), W: 10, H: 20},
		{Pos: core.V(300, 100), W: 10, H: 20},
	}
	obstacles := []Entity{
		{Pos: core.V(90, 95), W: 40, H: 40},
		{Pos: core.V(310, 100), W: 40, H: 40}, // touching only
	}

	got := Pairs(bullets, obstacles, Overlap())
	if len(got) != 1 || got[0] != (Pair{0, 0}) {
		t.Errorf("Pairs = %v, expected [{0 0}]", got)
	}
}

func TestFirstHits(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []Pair
		expected []Pair
	}{
		{"empty", nil, nil},
		{"one projectile two hazards", []Pair{{0, 0}, {0, 1}}, []Pair{{0, 0}}},
		{"two projectiles one hazard", []Pair{{0, 2}, {1, 2}}, []Pair{{0, 2}}},
		{"grid", []Pair{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, []Pair{{0, 0}, {1, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FirstHits(tc.pairs)
			if len(got) != len(tc.expected) {
				t.Fatalf("FirstHits = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("pair %d = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestWithout(t *testing.T) {
	got := Without([]Pair{{0, 0}, {1, 0}, {2, 1}}, []Pair{{1, 5}})
	if len(got) != 2 || got[0] != (Pair{0, 0}) || got[1] != (Pair{2, 1}) {
		t.Errorf("Without = %v, expected [{0 0} {2 1}]", got)
	}
}

func TestPairsIsReadOnly(t *testing.T) {
	as := []Entity{pt(1, 1)}
	bs := []Entity{pt(1, 2)}
	Pairs(as, bs, Within(5))
	if as[0].Pos != core.V(1, 1) || bs[0].Pos != core.V(1, 2) {
		t.Error("Pairs must not mutate its inputs")
	}
}
