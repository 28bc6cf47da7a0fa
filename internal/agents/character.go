// Package agents provides the character data model: skills, equipment,
// statuses and the rules that derive work rates from them.
package agents

import (
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// Character footprint in world units.
const (
	Width  = 24
	Height = 32
)

// Direction is the facing used by the renderer.
type Direction uint8

const (
	South Direction = iota
	West
	North
	East
)

func (d Direction) String() string {
	switch d {
	case South:
		return "south"
	case West:
		return "west"
	case North:
		return "north"
	default:
		return "east"
	}
}

// StepStanding is the animation step of a character that is not walking.
const StepStanding = 5

// Goal is where a character is heading: a fixed point, or the live position
// of Target while it resolves.
type Goal struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Target world.Handle `json:"target"`
}

// Character is a person in the world, controlled by the player or a bot.
type Character struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	world.Object

	Inventory economy.Inventory `json:"inventory"`

	Skills    []float64                     `json:"skills"`    // Indexed by skill id, unbounded above
	Equipment []int                         `json:"equipment"` // Slot -> item id, -1 when empty
	Reserves  []int                         `json:"reserves"`  // Slot -> hand slot held by its two-handed item, -1 when none
	Statuses  [universe.NumStatuses]float64 `json:"statuses"`  // Each in [0, StatusMax]

	Goal       Goal         `json:"goal"`
	Dir        Direction    `json:"dir"`
	Step       float64      `json:"step"`
	InWater    bool         `json:"in_water"`
	Home       world.Handle `json:"home"`
	InBuilding world.Handle `json:"in_building"`
}

// NewCharacter creates a rested character standing at (x, y) with baseline
// skills and nothing equipped.
func NewCharacter(u *universe.Universe, id int, x, y float64) *Character {
	c := &Character{
		ID:        id,
		Object:    world.Object{Kind: world.KindCharacter, X: x, Y: y, W: Width, H: Height},
		Inventory: u.NewInventory(),
		Skills:    make([]float64, len(u.Skills)),
		Equipment: make([]int, len(u.Slots)),
		Reserves:  make([]int, len(u.Slots)),
		Goal:      Goal{X: x, Y: y},
		Dir:       South,
		Step:      StepStanding,
	}
	c.Inventory.Money = u.StartMoney
	for i := range c.Skills {
		c.Skills[i] = SkillBaseline
	}
	for i := range c.Equipment {
		c.Equipment[i] = -1
		c.Reserves[i] = -1
	}
	for i := range c.Statuses {
		c.Statuses[i] = StatusMax
	}
	return c
}

// SetGoalPoint heads for a fixed position.
func (c *Character) SetGoalPoint(x, y float64) {
	c.Goal = Goal{X: x, Y: y}
}

// SetGoalObject heads for an entity; (x, y) is the fallback position used
// when the entity no longer exists.
func (c *Character) SetGoalObject(h world.Handle, x, y float64) {
	c.Goal = Goal{X: x, Y: y, Target: h}
}

// Forget drops every reference the character holds to h.
func (c *Character) Forget(h world.Handle) {
	if c.Goal.Target == h {
		c.Goal.Target = world.None
	}
	if c.InBuilding == h {
		c.InBuilding = world.None
	}
	if c.Home == h {
		c.Home = world.None
	}
}
