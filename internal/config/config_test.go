package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Interval())
	assert.InDelta(t, 0.1, cfg.Sim.RoundDuration, 1e-9)
	assert.InDelta(t, 1.0, cfg.Sim.Speed, 1e-9)
	assert.Equal(t, uint64(100), cfg.Sim.CheckpointRounds)
	assert.Equal(t, 5, cfg.Sim.Characters)
	assert.Equal(t, 100, cfg.World.Width)
	assert.Equal(t, 1000, cfg.World.Seeds)
	assert.Equal(t, 2, cfg.World.Relaxations)
	assert.Zero(t, cfg.World.Seed)
	assert.Empty(t, cfg.Universe.Path)
	assert.Equal(t, "data/hearthold.db", cfg.Database.Path)
	assert.False(t, cfg.Server.Debug)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
sim:
  round_ms: 50
  characters: 3
world:
  width: 30
  height: 20
  seed: 7
  clustered: true
server:
  debug: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Interval())
	assert.True(t, cfg.Server.Debug)

	gen := cfg.GenConfig()
	assert.Equal(t, 30, gen.Width)
	assert.Equal(t, 20, gen.Height)
	assert.Equal(t, int64(7), gen.Seed)
	assert.True(t, gen.Clustered)
	assert.Equal(t, 1000, gen.Seeds)

	ec := cfg.EngineConfig()
	assert.Equal(t, 3, ec.Characters)
	assert.Equal(t, gen, ec.World)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HEARTHOLD_SIM_SPEED", "2.5")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, cfg.Sim.Speed, 1e-9)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
sim:
  round_ms: 0
  characters: 0
world:
  seeds: 0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "sim.round_ms")
	assert.ErrorContains(t, err, "sim.characters")
	assert.ErrorContains(t, err, "world.seeds")
}
