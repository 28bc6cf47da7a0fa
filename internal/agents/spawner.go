package agents

import (
	"math/rand"

	"github.com/talgya/hearthold/internal/universe"
)

// Spawner creates named characters from a shared random source.
type Spawner struct {
	rng    *rand.Rand
	nextID int
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Spawn creates the next character at (x, y).
func (s *Spawner) Spawn(u *universe.Universe, x, y float64) *Character {
	c := NewCharacter(u, s.nextID, x, y)
	c.Name = s.generateName()
	s.nextID++
	return c
}

func (s *Spawner) generateName() string {
	first := firstNames[s.rng.Intn(len(firstNames))]
	last := lastNames[s.rng.Intn(len(lastNames))]
	return first + " " + last
}

// Name pools for procedural generation.
var firstNames = []string{
	"Aldric", "Bram", "Cedric", "Doran", "Erik", "Finn", "Gareth",
	"Halvard", "Jasper", "Kael", "Leif", "Magnus", "Oswin", "Rowan",
	"Astrid", "Brenna", "Calla", "Daria", "Elara", "Freya", "Greta",
	"Iris", "Kira", "Lena", "Mira", "Petra", "Runa", "Thea",
}

var lastNames = []string{
	"Voss", "Thornwood", "Ashford", "Ironhand", "Dunmore", "Greenvale",
	"Hearthstone", "Millward", "Copperfield", "Stoneheart", "Deepwell",
	"Oakenshield", "Redforge", "Marshwood", "Riverstone", "Embercroft",
	"Thatcher", "Harper", "Mercer", "Caldwell",
}
