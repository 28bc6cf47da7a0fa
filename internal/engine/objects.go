package engine

import (
	"github.com/talgya/hearthold/internal/agents"
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/world"
)

// Mine footprint in world units.
const (
	MineWidth  = 32
	MineHeight = 32
)

// Mine is a resource node. Mines never move and are never destroyed.
type Mine struct {
	world.Object
	Type   int          `json:"type"` // Index into the universe mine table
	Handle world.Handle `json:"handle"`
}

type buildingSlot struct {
	b   *Building
	gen uint32
}

// Target is the entity a handle resolves to. At most one pointer is set,
// matching Kind.
type Target struct {
	Kind      world.Kind
	Character *agents.Character
	Mine      *Mine
	Building  *Building
}

// Object returns the positioned part of the target, or nil for none.
func (t Target) Object() *world.Object {
	switch t.Kind {
	case world.KindCharacter:
		return &t.Character.Object
	case world.KindMine:
		return &t.Mine.Object
	case world.KindBuilding:
		return &t.Building.Object
	}
	return nil
}

// CharacterHandle returns the handle referring to c.
func CharacterHandle(c *agents.Character) world.Handle {
	return world.Handle{Kind: world.KindCharacter, Slot: c.ID, Gen: 1}
}

// Resolve looks up the entity behind a handle. Stale or empty handles
// resolve to a Target of kind none.
func (s *Simulation) Resolve(h world.Handle) Target {
	switch h.Kind {
	case world.KindCharacter:
		if h.Gen == 1 && h.Slot >= 0 && h.Slot < len(s.Characters) {
			return Target{Kind: world.KindCharacter, Character: s.Characters[h.Slot]}
		}
	case world.KindMine:
		if h.Gen == 1 && h.Slot >= 0 && h.Slot < len(s.Mines) {
			return Target{Kind: world.KindMine, Mine: s.Mines[h.Slot]}
		}
	case world.KindBuilding:
		if b := s.Building(h); b != nil {
			return Target{Kind: world.KindBuilding, Building: b}
		}
	}
	return Target{}
}

// AddMine places a mine of the given kind at (x, y).
func (s *Simulation) AddMine(kind int, x, y float64) *Mine {
	m := &Mine{
		Object: world.Object{Kind: world.KindMine, X: x, Y: y, W: MineWidth, H: MineHeight},
		Type:   kind,
		Handle: world.Handle{Kind: world.KindMine, Slot: len(s.Mines), Gen: 1},
	}
	s.Mines = append(s.Mines, m)
	return m
}

// Building returns the live building behind h, or nil.
func (s *Simulation) Building(h world.Handle) *Building {
	if h.Kind != world.KindBuilding || h.Slot < 0 || h.Slot >= len(s.buildings) {
		return nil
	}
	slot := s.buildings[h.Slot]
	if slot.b == nil || slot.gen != h.Gen {
		return nil
	}
	return slot.b
}

// Buildings returns the live buildings in slot order.
func (s *Simulation) Buildings() []*Building {
	out := make([]*Building, 0, len(s.buildings))
	for _, slot := range s.buildings {
		if slot.b != nil {
			out = append(out, slot.b)
		}
	}
	return out
}

// AddBuilding places an unbuilt building of the given kind at (x, y).
func (s *Simulation) AddBuilding(kind int, x, y float64) *Building {
	var idx int
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = len(s.buildings)
		s.buildings = append(s.buildings, buildingSlot{gen: 1})
	}
	b := newBuilding(s.U, kind, x, y)
	b.Handle = world.Handle{Kind: world.KindBuilding, Slot: idx, Gen: s.buildings[idx].gen}
	s.buildings[idx].b = b
	return b
}

// RemoveBuilding destroys a building. Every character reference to it is
// severed before its slot is freed, and the slot generation moves on so that
// outstanding handles go stale.
func (s *Simulation) RemoveBuilding(h world.Handle) bool {
	if s.Building(h) == nil {
		return false
	}
	for _, c := range s.Characters {
		c.Forget(h)
	}
	slot := &s.buildings[h.Slot]
	slot.b = nil
	slot.gen++
	s.free = append(s.free, h.Slot)
	return true
}

// ObjectAt returns the entity under (x, y): characters first, then mines,
// then buildings.
func (s *Simulation) ObjectAt(x, y float64) world.Handle {
	for _, c := range s.Characters {
		if c.IsAt(x, y) {
			return CharacterHandle(c)
		}
	}
	for _, m := range s.Mines {
		if m.IsAt(x, y) {
			return m.Handle
		}
	}
	for _, b := range s.Buildings() {
		if b.IsAt(x, y) {
			return b.Handle
		}
	}
	return world.None
}

// FindMine returns the mine of the given kind nearest to (x, y); kind -1
// matches any mine.
func (s *Simulation) FindMine(x, y float64, kind int) *Mine {
	return s.nearestMine(x, y, func(m *Mine) bool {
		return kind < 0 || m.Type == kind
	})
}

// FindMineFor returns the nearest mine whose harvest yields material.
func (s *Simulation) FindMineFor(x, y float64, material int) *Mine {
	return s.nearestMine(x, y, func(m *Mine) bool {
		out := s.U.Mines[m.Type].Harvest.Outputs
		return len(out) > 0 && out[0].Kind == economy.GoodMaterial && out[0].ID == material
	})
}

func (s *Simulation) nearestMine(x, y float64, match func(*Mine) bool) *Mine {
	var best *Mine
	bestD := -1.0
	for _, m := range s.Mines {
		if !match(m) {
			continue
		}
		if d := m.Distance(x, y); bestD < 0 || d < bestD {
			best, bestD = m, d
		}
	}
	return best
}

// FindShop returns the building nearest to c, other than c's own, with at
// least one unit of a good on sale at a unit price c can pay.
func (s *Simulation) FindShop(c *agents.Character, kind economy.GoodKind, id int) *Building {
	var best *Building
	bestD := -1.0
	for _, b := range s.Buildings() {
		if !s.sells(c, b, kind, id) {
			continue
		}
		if d := b.Distance(c.X, c.Y); bestD < 0 || d < bestD {
			best, bestD = b, d
		}
	}
	return best
}

func (s *Simulation) sells(c *agents.Character, b *Building, kind economy.GoodKind, id int) bool {
	return b.Open && !s.Owns(c, b) &&
		b.OnSale(s.U, kind, id) >= 1 &&
		s.U.Price(kind, id) <= c.Inventory.Money
}

// CanBeBuilt reports whether a w×h footprint at (x, y) lies inside the world
// and clear of every mine and building.
func (s *Simulation) CanBeBuilt(x, y, w, h float64) bool {
	if x-w/2 < 0 || x+w/2 > s.Map.PixelWidth() || y-h < 0 || y > s.Map.PixelHeight() {
		return false
	}
	for _, m := range s.Mines {
		if m.Overlaps(x, y, w, h) {
			return false
		}
	}
	for _, b := range s.Buildings() {
		if b.Overlaps(x, y, w, h) {
			return false
		}
	}
	return true
}

// CanBuild reports whether c holds the full build cost of a building kind
// and the site at (x, y) is free.
func (s *Simulation) CanBuild(c *agents.Character, kind int, x, y float64) bool {
	if kind < 0 || kind >= len(s.U.Buildings) {
		return false
	}
	t := &s.U.Buildings[kind]
	return economy.Check(&t.Build, &c.Inventory) && s.CanBeBuilt(x, y, t.Width, t.Height)
}
