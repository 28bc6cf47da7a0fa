// Commands issued by the input layer or a controller. Every command checks
// its preconditions and returns false (or zero) without side effects when
// they do not hold.
package engine

import (
	"github.com/talgya/hearthold/internal/agents"
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// Site search for new buildings: each attempt widens the random offset.
const (
	siteAttempts = 64
	siteStep     = 100.0
)

// SetGoalPoint sends c toward (x, y), clamped to the world.
func (s *Simulation) SetGoalPoint(c *agents.Character, x, y float64) {
	c.SetGoalPoint(clamp(x, 0, s.Map.PixelWidth()), clamp(y, 0, s.Map.PixelHeight()))
}

// SetGoalObject sends c toward the entity behind h.
func (s *Simulation) SetGoalObject(c *agents.Character, h world.Handle) bool {
	o := s.Resolve(h).Object()
	if o == nil {
		return false
	}
	c.SetGoalObject(h, o.X, o.Y)
	return true
}

// GoMine sends c to the nearest mine of a kind (-1 for any).
func (s *Simulation) GoMine(c *agents.Character, kind int) bool {
	m := s.FindMine(c.X, c.Y, kind)
	if m == nil {
		return false
	}
	c.SetGoalObject(m.Handle, m.X, m.Y)
	return true
}

// GoMineFor sends c to the nearest mine yielding a material.
func (s *Simulation) GoMineFor(c *agents.Character, material int) bool {
	m := s.FindMineFor(c.X, c.Y, material)
	if m == nil {
		return false
	}
	c.SetGoalObject(m.Handle, m.X, m.Y)
	return true
}

// MakeBuilding places a building of the given kind near c, owned by c, and
// sends c there to build it. The site is searched randomly around c with a
// widening radius. The first building a character makes becomes its home.
func (s *Simulation) MakeBuilding(c *agents.Character, kind int) *Building {
	if kind < 0 || kind >= len(s.U.Buildings) {
		return nil
	}
	if !economy.Check(&s.U.Buildings[kind].Build, &c.Inventory) {
		return nil
	}
	spread := 0.0
	for i := 0; i < siteAttempts; i++ {
		x := c.X + (s.rng.Float64()-0.5)*spread
		y := c.Y + (s.rng.Float64()-0.5)*spread
		spread += siteStep
		if !s.CanBuild(c, kind, x, y) {
			continue
		}
		b := s.AddBuilding(kind, x, y)
		b.Owner = CharacterHandle(c)
		if c.Home.IsNone() {
			c.Home = b.Handle
		}
		c.SetGoalObject(b.Handle, b.X, b.Y)
		return b
	}
	return nil
}

// EnqueueCraft queues crafting slot on b. The owner must hold the recipe
// inputs and the building must be complete.
func (s *Simulation) EnqueueCraft(c *agents.Character, b *Building, slot int) bool {
	kind := &s.U.Buildings[b.Type]
	if !s.Owns(c, b) || !b.Complete() || slot < 0 || slot >= len(kind.Items) {
		return false
	}
	if !economy.Check(&kind.Items[slot], &c.Inventory) {
		return false
	}
	b.Enqueue(slot)
	return true
}

// Take buys (or, for the owner, collects) goods from b.
func (s *Simulation) Take(c *agents.Character, b *Building, kind economy.GoodKind, id int, amount float64) float64 {
	return b.Take(s.U, kind, id, amount, &c.Inventory, s.Owns(c, b))
}

// Put stocks b with goods held by c.
func (s *Simulation) Put(c *agents.Character, b *Building, kind economy.GoodKind, id int, amount float64) float64 {
	return b.Put(kind, id, amount, &c.Inventory, s.Owns(c, b))
}

// Withdraw collects the money of b for its owner.
func (s *Simulation) Withdraw(c *agents.Character, b *Building) float64 {
	if !s.Owns(c, b) {
		return 0
	}
	return b.Withdraw(&c.Inventory)
}

// Demolish removes a building owned by c.
func (s *Simulation) Demolish(c *agents.Character, b *Building) bool {
	if !s.live(b) || !s.Owns(c, b) {
		return false
	}
	s.destroy(b)
	return true
}

// Attack damages b. A building whose life runs out is destroyed. Returns the
// damage dealt.
func (s *Simulation) Attack(b *Building, amount float64) float64 {
	if !s.live(b) {
		return 0
	}
	dealt, destroyed := b.damage(amount)
	if destroyed {
		s.destroy(b)
	}
	return dealt
}

// live reports whether b is still in the world. Pointers to removed buildings
// may outlive them in callers.
func (s *Simulation) live(b *Building) bool {
	return b != nil && s.Building(b.Handle) == b
}

func (s *Simulation) destroy(b *Building) {
	s.emit(universe.EventBuildingDestroyed, b.X, b.Y-b.H/2, s.U.Buildings[b.Type].Name)
	s.RemoveBuilding(b.Handle)
	s.Stats.Destroyed++
}

// Equip equips an item held by c.
func (s *Simulation) Equip(c *agents.Character, item int) bool {
	return c.Equip(s.U, item)
}

// Unequip returns the item in a slot to c's inventory.
func (s *Simulation) Unequip(c *agents.Character, slot int) bool {
	return c.Unequip(slot)
}

// Eat has c eat one unit of an edible material.
func (s *Simulation) Eat(c *agents.Character, material int) bool {
	return c.Eat(s.U, material)
}
