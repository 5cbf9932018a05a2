package sim

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a deep, read-only copy of the simulation after a tick.
type Snapshot struct {
	Tick        uint64   `msgpack:"tick"`
	Phase       Phase    `msgpack:"phase"`
	Score       int      `msgpack:"score"`
	Reason      string   `msgpack:"reason,omitempty"`
	Player      Craft    `msgpack:"player"`
	Hazards     []Entity `msgpack:"hazards"`
	Projectiles []Entity `msgpack:"projectiles"`
	Obstacles   []Entity `msgpack:"obstacles"`
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:        s.tick,
		Phase:       s.machine.Phase(),
		Score:       s.score,
		Reason:      s.machine.Reason(),
		Player:      *s.store.Player(),
		Hazards:     slices.Clone(s.store.All(Hazards)),
		Projectiles: slices.Clone(s.store.All(Projectiles)),
		Obstacles:   slices.Clone(s.store.All(Obstacles)),
	}
}

// GameOver reports whether the snapshot was taken after the run ended.
func (s Snapshot) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Hash returns an FNV-1a digest of every field that affects play.
// Floats are hashed by their IEEE bits, so equal hashes mean bit-identical state.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	u := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash never fails
	}
	f := func(v float64) { u(math.Float64bits(v)) }
	ent := func(e Entity) {
		u(uint64(e.Kind))
		f(e.Pos.X)
		f(e.Pos.Y)
		f(e.Heading)
		f(e.Speed)
		f(e.W)
		f(e.H)
	}

	u(s.Tick)
	u(uint64(s.Phase))
	u(uint64(int64(s.Score)))
	ent(s.Player.Entity)
	f(s.Player.RotationRate)
	if s.Player.Accelerating {
		u(1)
	} else {
		u(0)
	}
	for _, pop := range [][]Entity{s.Hazards, s.Projectiles, s.Obstacles} {
		u(uint64(len(pop)))
		for _, e := range pop {
			ent(e)
		}
	}
	return h.Sum64()
}

// TraceTick records one tick of a run.
type TraceTick struct {
	Tick  uint64 `msgpack:"t"`
	Score int    `msgpack:"s"`
	Hash  uint64 `msgpack:"h"`
}

// Trace is a recorded headless run: per-tick hashes plus the final state.
type Trace struct {
	Game  string      `msgpack:"game"`
	Seed  int64       `msgpack:"seed"`
	Ticks []TraceTick `msgpack:"ticks"`
	Final Snapshot    `msgpack:"final"`
}

// Present implements Renderer by appending the snapshot to the trace.
func (t *Trace) Present(s Snapshot) {
	t.Ticks = append(t.Ticks, TraceTick{Tick: s.Tick, Score: s.Score, Hash: s.Hash()})
	t.Final = s
}

// EncodeTrace writes t as msgpack.
func EncodeTrace(w io.Writer, t *Trace) error {
	if err := msgpack.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("sim: encode trace: %w", err)
	}
	return nil
}

// DecodeTrace reads a trace written by EncodeTrace.
func DecodeTrace(r io.Reader) (*Trace, error) {
	var t Trace
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("sim: decode trace: %w", err)
	}
	return &t, nil
}
