// Package registry holds the games compiled into the binary. Each game
// package registers a factory from init(), so the platform can list and
// create games by ID without importing them.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// Game is a fixed-tick arcade game. Implementations hold pure game logic;
// the platform owns keys, timing and the terminal.
type Game interface {
	// ID is the stable identifier used on the command line and in storage.
	ID() string
	// Title is the display name.
	Title() string
	// Reset starts a new run sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)
	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult
	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)
	State() core.GameState
}

// Driver is implemented by games whose controls can be handed to another
// input source, such as an autopilot. Those games can run headless.
type Driver interface {
	SetInput(in sim.InputSource)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID       string
	Title    string
	Headless bool // implements Driver
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

// Register adds a game. It panics on a duplicate ID, which can only be a
// programming error.
func Register(id string, f Factory) {
	// A throwaway instance supplies the metadata
	g := f()
	_, headless := g.(Driver)

	mu.Lock()
	defer mu.Unlock()
	if _, dup := games[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{
		info:    GameInfo{ID: id, Title: g.Title(), Headless: headless},
		factory: f,
	}
}

// List returns every registered game, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(games))
	for _, e := range games {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := games[id]
	return e.info, ok
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
