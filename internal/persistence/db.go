// Package persistence provides the SQLite write-side of a run: the event
// journal, periodic statistics, run metadata and a compressed terrain
// snapshot.
package persistence

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/talgya/hearthold/internal/engine"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
	log  *zap.Logger
}

// Open opens or creates a SQLite database at the given path.
func Open(path string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, log: log}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		universe TEXT NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		name TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS round_stats (
		run_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		characters INTEGER NOT NULL,
		buildings INTEGER NOT NULL,
		complete INTEGER NOT NULL,
		open INTEGER NOT NULL,
		total_money REAL NOT NULL,
		materials_held REAL NOT NULL,
		items_held REAL NOT NULL,
		avg_vitality REAL NOT NULL,
		completed INTEGER NOT NULL,
		crafted INTEGER NOT NULL,
		destroyed INTEGER NOT NULL,
		PRIMARY KEY (run_id, round)
	);

	CREATE TABLE IF NOT EXISTS terrain (
		run_id TEXT PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		tiles BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_round ON events(run_id, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun registers a new run and returns its id.
func (db *DB) StartRun(seed int64, universeName string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, universe, started_at) VALUES (?, ?, ?, ?)",
		id, seed, universeName, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	if err := db.SaveMeta("last_run", id); err != nil {
		return "", fmt.Errorf("save meta: %w", err)
	}
	db.log.Info("run started", zap.String("run", id), zap.Int64("seed", seed))
	return id, nil
}

// RunSeed returns the seed a run was generated from.
func (db *DB) RunSeed(runID string) (int64, error) {
	var seed int64
	err := db.conn.Get(&seed, "SELECT seed FROM runs WHERE id = ?", runID)
	return seed, err
}

// SaveEvents appends events to the journal of a run.
func (db *DB) SaveEvents(runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, round, kind, name, x, y, detail) VALUES (?, ?, ?, ?, ?, ?, ?)",
			runID, e.Round, e.Kind, e.Name, e.X, e.Y, e.Detail,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent events of a run, newest first.
func (db *DB) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT round, kind, name, x, y, detail FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// SaveStats records the statistics of a run at their round, replacing any
// earlier record for that round.
func (db *DB) SaveStats(runID string, st engine.SimStats) error {
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO round_stats
		(run_id, round, characters, buildings, complete, open, total_money,
		 materials_held, items_held, avg_vitality, completed, crafted, destroyed)
		VALUES (:run_id, :round, :characters, :buildings, :complete, :open, :total_money,
		 :materials_held, :items_held, :avg_vitality, :completed, :crafted, :destroyed)`,
		statsRow{RunID: runID, SimStats: st},
	)
	return err
}

// StatsHistory returns the recorded statistics of a run in round order.
func (db *DB) StatsHistory(runID string) ([]engine.SimStats, error) {
	var rows []engine.SimStats
	err := db.conn.Select(&rows, `SELECT round, characters, buildings, complete, open, total_money,
		materials_held, items_held, avg_vitality, completed, crafted, destroyed
		FROM round_stats WHERE run_id = ? ORDER BY round`, runID)
	return rows, err
}

type statsRow struct {
	RunID string `db:"run_id"`
	engine.SimStats
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// SaveCheckpoint records the current statistics and flushes the journal.
func (db *DB) SaveCheckpoint(runID string, sim *engine.Simulation, j *Journal) error {
	sim.UpdateStats()
	if err := db.SaveStats(runID, sim.Stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if j != nil {
		if err := j.Flush(); err != nil {
			return fmt.Errorf("flush journal: %w", err)
		}
	}
	if err := db.SaveMeta("last_round", strconv.FormatUint(sim.Round, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	db.log.Debug("checkpoint saved", zap.String("run", runID), zap.Uint64("round", sim.Round))
	return nil
}
