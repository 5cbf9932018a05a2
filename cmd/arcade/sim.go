package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/games/arena"
	"github.com/vovakirdan/astro-arcade/internal/pilot"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/sim"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

var (
	flagTicks   int
	flagScript  string
	flagOut     string
	flagCols    int
	flagRows    int
	flagVerbose bool
	flagNoSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless and print its final state hash",
	Long: `Run a simulation-backed game without a terminal, driven by the built-in
autopilot or a tengo pilot script, as fast as possible.

The run is recorded in the database. When an earlier run with the same
game, seed, tick count and pilot exists, its state hash must match or the
command fails: the same seed and inputs always give the same run.

A pilot script defines pilot(view) and returns a map with any of
rotate (-1..1), thrust, fire, move_x and move_y (-1, 0, 1).

Examples:
  arcade sim asteroids --seed 42
  arcade sim river --seed 7 --ticks 10000 --out river.trace
  arcade sim asteroids --script ./pilots/hunter.tengo --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3000, "Maximum number of ticks to simulate")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to a tengo pilot script (default: autopilot)")
	simCmd.Flags().StringVar(&flagOut, "out", "", "Write a msgpack trace of every tick to this file")
	simCmd.Flags().IntVar(&flagCols, "cols", 80, "Virtual terminal width for terminal-sized worlds")
	simCmd.Flags().IntVar(&flagRows, "rows", 32, "Virtual terminal height for terminal-sized worlds")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log spawns and lifecycle events")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record or verify the run")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// recorder feeds a pilot and appends every presented snapshot to a trace.
type recorder struct {
	pilot sim.InputSource
	trace *sim.Trace
}

func (r recorder) Sample() sim.Intent { return r.pilot.Sample() }

func (r recorder) Present(s sim.Snapshot) {
	if p, ok := r.pilot.(sim.Renderer); ok {
		p.Present(s)
	}
	r.trace.Present(s)
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	if !info.Headless {
		return fmt.Errorf("%s has no headless mode", info.Title)
	}
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	if err := config.Check(gameID, flagConfig); err != nil {
		return err
	}
	configureGame(gameID, flagConfig, flagDifficulty)

	created, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	game, ok := created.(*arena.Game)
	if !ok {
		return fmt.Errorf("%s is not driven by the entity simulation", info.Title)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-sim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	game.SetLogger(logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  flagCols,
		ScreenH:  flagRows,
		TickRate: flagFPS,
		Seed:     seed,
	}

	// The autopilot needs the resolved config and bounds, so the first
	// reset only settles them; the run itself starts on the second.
	game.Reset(runtime)
	if err := game.Err(); err != nil {
		return err
	}

	var (
		input     sim.InputSource
		pilotName = "auto"
		script    *pilot.Script
	)
	if flagScript != "" {
		script, err = pilot.LoadScript(flagScript)
		if err != nil {
			return err
		}
		input, pilotName = script, flagScript
	} else {
		input = pilot.NewAuto(game.Simulation().Config(), game.Bounds())
	}

	trace := &sim.Trace{Game: gameID, Seed: seed}
	game.SetInput(recorder{pilot: input, trace: trace})
	game.Reset(runtime)

	logger.Debug("run started", "game", gameID, "seed", seed, "pilot", pilotName, "bounds", game.Bounds())
	start := time.Now()
	frame := core.NewInputFrame()
	for {
		state := game.State()
		if state.GameOver || state.Tick >= uint64(flagTicks) {
			break
		}
		game.Step(frame)
	}
	elapsed := time.Since(start)

	if script != nil && script.Err() != nil {
		logger.Warn("pilot script failed, craft went idle", "error", script.Err())
	}

	snap := game.Snapshot()
	hash := snap.Hash()

	fmt.Printf("game:   %s\n", gameID)
	fmt.Printf("seed:   %d\n", seed)
	fmt.Printf("pilot:  %s\n", pilotName)
	fmt.Printf("ticks:  %d\n", snap.Tick)
	fmt.Printf("score:  %d\n", snap.Score)
	fmt.Printf("phase:  %s\n", snap.Phase)
	if snap.Reason != "" {
		fmt.Printf("reason: %s\n", snap.Reason)
	}
	fmt.Printf("hash:   %016x\n", hash)
	logger.Debug("run finished", "elapsed", elapsed, "population", len(snap.Hazards)+len(snap.Projectiles)+len(snap.Obstacles))

	if flagOut != "" {
		if err := writeTrace(flagOut, trace); err != nil {
			return err
		}
		logger.Info("trace written", "path", flagOut, "ticks", len(trace.Ticks))
	}

	if flagNoSave {
		return nil
	}
	return recordRun(logger, storage.RunRecord{
		GameID: gameID,
		Seed:   seed,
		Ticks:  snap.Tick,
		Score:  snap.Score,
		Hash:   hash,
		Reason: snap.Reason,
		Pilot:  pilotName,
	})
}

func writeTrace(path string, t *sim.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace: %w", err)
	}
	if err := sim.EncodeTrace(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// recordRun compares the run with the last matching one, then saves it.
func recordRun(logger *log.Logger, run storage.RunRecord) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, run not recorded", "error", err)
		return nil
	}
	defer store.Close()

	prev, err := store.LastRun(run.GameID, run.Seed, run.Ticks, run.Pilot)
	if err != nil {
		return err
	}
	if _, err := store.SaveRun(run); err != nil {
		return err
	}

	switch {
	case prev == nil:
		logger.Debug("first run with these parameters")
	case prev.Hash == run.Hash:
		logger.Info("replay matches earlier run", "id", prev.ID, "hash", fmt.Sprintf("%016x", run.Hash))
	default:
		return fmt.Errorf("replay diverged from run %d: hash %016x, earlier %016x", prev.ID, run.Hash, prev.Hash)
	}
	return nil
}
