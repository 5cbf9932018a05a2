package sim

import "github.com/vovakirdan/astro-arcade/internal/core"

// Proximity decides whether two entities collide.
type Proximity func(a, b Entity) bool

// Within collides entities whose positions are closer than threshold.
// Thresholds are fixed per pair kind rather than derived from entity sizes.
func Within(threshold float64) Proximity {
	return func(a, b Entity) bool {
		return core.Dist(a.Pos, b.Pos) < threshold
	}
}

// Overlap collides entities whose boxes intersect.
func Overlap() Proximity {
	return func(a, b Entity) bool {
		return a.Box().Intersects(b.Box())
	}
}

// Pair is a collision between as[A] and bs[B].
// Indices refer to the slices passed to Pairs and expire on the next removal.
type Pair struct {
	A, B int
}

// Pairs returns every colliding pair, scanning as in the outer loop and bs
// in the inner loop. It never mutates either population.
func Pairs(as, bs []Entity, hit Proximity) []Pair {
	var out []Pair
	for i := range as {
		for j := range bs {
			if hit(as[i], bs[j]) {
				out = append(out, Pair{A: i, B: j})
			}
		}
	}
	return out
}

// FirstHits keeps the first pair in scan order for every A and B.
// Once either side has been used, later pairs touching it are dropped, so a
// projectile destroys at most one target per tick.
func FirstHits(pairs []Pair) []Pair {
	usedA := make(map[int]bool, len(pairs))
	usedB := make(map[int]bool, len(pairs))
	out := pairs[:0:0]
	for _, p := range pairs {
		if usedA[p.A] || usedB[p.B] {
			continue
		}
		usedA[p.A] = true
		usedB[p.B] = true
		out = append(out, p)
	}
	return out
}

// Without drops the pairs whose A index is already in used.
func Without(pairs []Pair, used []Pair) []Pair {
	if len(used) == 0 {
		return pairs
	}
	taken := make(map[int]bool, len(used))
	for _, p := range used {
		taken[p.A] = true
	}
	var out []Pair
	for _, p := range pairs {
		if !taken[p.A] {
			out = append(out, p)
		}
	}
	return out
}
