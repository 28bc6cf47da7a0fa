// Command worldsim runs the hearthold world simulation headless, journaling
// events and periodic statistics to SQLite.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"go.uber.org/zap"

	"github.com/talgya/hearthold/internal/config"
	"github.com/talgya/hearthold/internal/engine"
	"github.com/talgya/hearthold/internal/persistence"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	rounds := flag.Int("rounds", 0, "run this many rounds unpaced and exit (0 = run until interrupted)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := newLogger(cfg.Server.Debug)
	defer log.Sync()

	if err := run(cfg, *rounds, log); err != nil {
		log.Fatal("simulation failed", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewExample()
	}
	return log
}

func run(cfg *config.Config, rounds int, log *zap.Logger) error {
	// ── Universe ──────────────────────────────────────────────────────
	u := universe.Default()
	if cfg.Universe.Path != "" {
		loaded, err := universe.Load(cfg.Universe.Path)
		if err != nil {
			return err
		}
		u = loaded
	}
	log.Info("universe loaded",
		zap.String("name", u.Name),
		zap.Int("materials", len(u.Materials)),
		zap.Int("items", len(u.Items)),
		zap.Int("buildings", len(u.Buildings)),
	)

	// ── World ─────────────────────────────────────────────────────────
	sim := engine.Generate(u, cfg.EngineConfig(), log)
	logTerrain(sim.Map, log)

	// ── Database ──────────────────────────────────────────────────────
	var (
		db      *persistence.DB
		journal *persistence.Journal
		runID   string
	)
	if cfg.Database.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return err
		}
		var err error
		db, err = persistence.Open(cfg.Database.Path, log)
		if err != nil {
			return err
		}
		defer db.Close()

		runID, err = db.StartRun(sim.Seed, u.Name)
		if err != nil {
			return err
		}
		if err := db.SaveTerrain(runID, sim.Map); err != nil {
			return err
		}
		journal = persistence.NewJournal(db, runID)
		sim.Sink = journal
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine(log)
	eng.Interval = cfg.Interval()
	eng.Speed = cfg.Sim.Speed
	eng.Duration = cfg.Sim.RoundDuration
	eng.CheckpointEvery = cfg.Sim.CheckpointRounds

	eng.OnRound = func(uint64) {
		sim.DoRound(eng.Duration)
	}
	checkpoint := func() {
		sim.UpdateStats()
		sim.LogReport()
		if db == nil {
			return
		}
		if err := db.SaveCheckpoint(runID, sim, journal); err != nil {
			log.Error("checkpoint failed", zap.Error(err))
		}
	}
	eng.OnCheckpoint = func(uint64) { checkpoint() }

	if rounds > 0 {
		eng.Advance(rounds)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	// Final save so nothing since the last checkpoint is lost.
	checkpoint()
	log.Info("simulation finished", zap.Uint64("round", sim.Round))
	return nil
}

func logTerrain(m *world.Map, log *zap.Logger) {
	counts := m.Counts()
	lands := make([]world.Land, 0, len(counts))
	for l := range counts {
		lands = append(lands, l)
	}
	sort.Slice(lands, func(i, j int) bool { return lands[i] < lands[j] })
	for _, l := range lands {
		log.Info("terrain", zap.Stringer("land", l), zap.Int("tiles", counts[l]))
	}
}
