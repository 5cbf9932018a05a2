// Package sim is the fixed-tick entity simulation shared by the arcade
// shooters. It integrates positions, detects collisions between populations,
// keeps population invariants and ends the run on a fatal craft collision.
//
// Nothing in this package knows about terminals or keys. Input arrives as an
// Intent sampled once per tick and output leaves as a read-only Snapshot.
package sim

import "github.com/vovakirdan/astro-arcade/internal/core"

// Kind tags an entity with the role it plays in the simulation.
type Kind uint8

const (
	KindCraft Kind = iota
	KindHazard
	KindProjectile
	KindObstacle
)

func (k Kind) String() string {
	switch k {
	case KindCraft:
		return "craft"
	case KindHazard:
		return "hazard"
	case KindProjectile:
		return "projectile"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Entity is the shared shape of every simulated object.
//
// Heading is in degrees and is not normalized; trig reduces it modulo 360.
// W and H give the axis-aligned extent with Pos as the top-left corner.
// Point entities (W == H == 0) are positioned by Pos alone.
type Entity struct {
	Kind    Kind      `msgpack:"kind"`
	Pos     core.Vec2 `msgpack:"pos"`
	Heading float64   `msgpack:"heading"`
	Speed   float64   `msgpack:"speed"`
	W       float64   `msgpack:"w,omitempty"`
	H       float64   `msgpack:"h,omitempty"`
}

// Box returns the entity's axis-aligned extent.
func (e Entity) Box() core.Box {
	return core.Box{Min: e.Pos, W: e.W, H: e.H}
}

// IsPoint reports whether the entity has no extent.
func (e Entity) IsPoint() bool {
	return e.W == 0 && e.H == 0
}

// Craft is the player-controlled singleton.
// Invariant: 0 <= Speed <= MaxSpeed.
type Craft struct {
	Entity           `msgpack:"entity"`
	RotationRate     float64 `msgpack:"rotation_rate"`
	Accelerating     bool    `msgpack:"accelerating"`
	MaxSpeed         float64 `msgpack:"max_speed"`
	AccelerationStep float64 `msgpack:"acceleration_step"`
}

// Population names one of the collections owned by the Store.
type Population uint8

const (
	Hazards Population = iota
	Projectiles
	Obstacles

	numPopulations
)

func (p Population) String() string {
	switch p {
	case Hazards:
		return "hazards"
	case Projectiles:
		return "projectiles"
	case Obstacles:
		return "obstacles"
	default:
		return "unknown"
	}
}

// Intent is the input sampled at the start of a tick.
// Rotation is a signed turn input in [-1, 1] scaled by the configured
// rotation step. MoveX and MoveY are -1, 0 or +1 strafe directions.
type Intent struct {
	Rotation float64
	Thrust   bool
	Fire     bool
	MoveX    int
	MoveY    int
}
