// Simulation ties together the terrain, characters, mines and buildings and
// runs them each round.
package engine

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/talgya/hearthold/internal/agents"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// maxEvents bounds the in-memory event list.
const maxEvents = 1000

// Config holds world generation parameters.
type Config struct {
	World      world.GenConfig
	Characters int
}

// DefaultConfig returns the standard world: 100×100 tiles, five characters.
func DefaultConfig() Config {
	return Config{
		World:      world.DefaultGenConfig(),
		Characters: 5,
	}
}

// Simulation holds the complete world state.
type Simulation struct {
	U          *universe.Universe
	Map        *world.Map
	Characters []*agents.Character
	Mines      []*Mine
	Events     []Event // Most recent events, oldest first
	Round      uint64  // Most recent round processed
	Seed       int64
	Stats      SimStats

	// Sink receives every event as it fires, when set.
	Sink EventSink

	buildings   []buildingSlot
	free        []int
	controllers map[int]Controller
	spawner     *agents.Spawner
	rng         *rand.Rand
	log         *zap.Logger
}

// New creates an empty simulation over an existing map.
func New(u *universe.Universe, m *world.Map, seed int64, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Simulation{
		U:           u,
		Map:         m,
		Seed:        seed,
		controllers: make(map[int]Controller),
		spawner:     agents.NewSpawner(rng),
		rng:         rng,
		log:         log,
	}
}

// Generate builds a new world: terrain, characters at random positions and
// mines. Character 0 is left to the player; the others get bots when the
// universe defines bot profiles.
func Generate(u *universe.Universe, cfg Config, log *zap.Logger) *Simulation {
	seed := cfg.World.Seed
	if seed == 0 {
		seed = rand.Int63()
		cfg.World.Seed = seed
	}
	s := New(u, world.Generate(cfg.World), seed, log)

	width, height := s.Map.PixelWidth(), s.Map.PixelHeight()
	for i := 0; i < cfg.Characters; i++ {
		c := s.AddCharacter(s.rng.Float64()*width, s.rng.Float64()*height)
		if i > 0 && len(u.Bots) > 0 {
			s.SetController(c, NewBot(u.Bots[(i-1)%len(u.Bots)]))
		}
	}

	n := len(s.Map.Tiles) / 400
	if n < len(u.Mines) {
		n = len(u.Mines)
	}
	for i := 0; i < n; i++ {
		kind := i
		if i >= len(u.Mines) {
			kind = s.pickMineKind()
		}
		s.AddMine(kind, s.rng.Float64()*width, s.rng.Float64()*height)
	}

	s.UpdateStats()
	s.log.Info("world generated",
		zap.Int64("seed", seed),
		zap.Int("characters", len(s.Characters)),
		zap.Int("mines", len(s.Mines)),
	)
	return s
}

func (s *Simulation) pickMineKind() int {
	total := 0.0
	for _, m := range s.U.Mines {
		total += m.Weight
	}
	r := s.rng.Float64() * total
	for i, m := range s.U.Mines {
		r -= m.Weight
		if r < 0 {
			return i
		}
	}
	return len(s.U.Mines) - 1
}

// AddCharacter spawns a character at (x, y).
func (s *Simulation) AddCharacter(x, y float64) *agents.Character {
	c := s.spawner.Spawn(s.U, x, y)
	s.Characters = append(s.Characters, c)
	return c
}

// SetController attaches an AI controller to a character; nil detaches.
func (s *Simulation) SetController(c *agents.Character, ctl Controller) {
	if ctl == nil {
		delete(s.controllers, c.ID)
		return
	}
	s.controllers[c.ID] = ctl
}

// Controller returns the controller attached to a character, if any.
func (s *Simulation) Controller(c *agents.Character) Controller {
	return s.controllers[c.ID]
}

// Player returns character 0, or nil in an empty world.
func (s *Simulation) Player() *agents.Character {
	if len(s.Characters) == 0 {
		return nil
	}
	return s.Characters[0]
}

// DoRound advances every character by dt, then refreshes building state.
func (s *Simulation) DoRound(dt float64) {
	s.Round++
	for _, c := range s.Characters {
		s.updateCharacter(c, dt)
	}
	for _, b := range s.Buildings() {
		b.Update()
	}
}

// emit records a world event and forwards it to the sink.
func (s *Simulation) emit(name string, x, y float64, detail string) {
	e := Event{
		Round:  s.Round,
		Kind:   s.U.EventID(name),
		Name:   name,
		X:      x,
		Y:      y,
		Detail: detail,
	}
	s.Events = append(s.Events, e)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
	if s.Sink != nil {
		s.Sink.RecordEvent(e)
	}
	s.log.Debug("event", zap.Uint64("round", e.Round), zap.String("name", name), zap.String("detail", detail))
}
