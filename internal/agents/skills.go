package agents

import (
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
)

const (
	SkillBaseline = 20.0 // Starting level; multiplier 1
	StatusMax     = 20.0
)

// SkillLevel returns the skill level including equipment bonuses.
func (c *Character) SkillLevel(u *universe.Universe, skill int) float64 {
	if skill < 0 || skill >= len(c.Skills) {
		return 0
	}
	level := c.Skills[skill]
	for _, item := range c.Equipment {
		if item < 0 || item >= len(u.Items) {
			continue
		}
		for _, b := range u.Items[item].Bonuses {
			if b.Skill == skill {
				level += b.Amount
			}
		}
	}
	return level
}

// SkillMultiplier scales work rates: 1 at baseline with nothing equipped.
func (c *Character) SkillMultiplier(u *universe.Universe, skill int) float64 {
	return c.SkillLevel(u, skill) / SkillBaseline
}

// Train adds experience for work done with a skill and tires the character.
func (c *Character) Train(skill int, work float64) {
	if skill >= 0 && skill < len(c.Skills) && work > 0 {
		c.Skills[skill] += work / 50
	}
	c.Weary(work * 0.1)
}

// MaxOf returns how much of a material the character can carry.
func (c *Character) MaxOf(u *universe.Universe, material int) float64 {
	if material < 0 || material >= len(u.Materials) {
		return 0
	}
	return StatusMax * c.SkillMultiplier(u, u.Materials[material].Skill)
}

// Equip moves one held item into a free slot of its category. A two-handed
// item needs two free hand slots: it occupies the first and holds the second
// until unequipped.
func (c *Character) Equip(u *universe.Universe, item int) bool {
	if item < 0 || item >= len(u.Items) || c.Inventory.Get(economy.GoodItem, item) < 1 {
		return false
	}
	cat := u.Items[item].Category
	want := 1
	if cat == universe.CategoryTwoHanded {
		cat, want = universe.CategoryOneHanded, 2
	}

	var free []int
	for j, s := range u.Slots {
		if s.Category == cat && c.slotFree(j) {
			free = append(free, j)
			if len(free) == want {
				break
			}
		}
	}
	if len(free) < want {
		return false
	}

	c.Equipment[free[0]] = item
	if want == 2 {
		c.Reserves[free[0]] = free[1]
	}
	c.Inventory.Add(economy.GoodItem, item, -1)
	return true
}

// slotFree reports whether slot j holds no item and is not held by a
// two-handed item in another slot.
func (c *Character) slotFree(j int) bool {
	if c.Equipment[j] >= 0 {
		return false
	}
	for _, r := range c.Reserves {
		if r == j {
			return false
		}
	}
	return true
}

// Unequip puts the item in a slot back into the inventory, releasing any
// hand slot it held.
func (c *Character) Unequip(slot int) bool {
	if slot < 0 || slot >= len(c.Equipment) || c.Equipment[slot] < 0 {
		return false
	}
	c.Inventory.Add(economy.GoodItem, c.Equipment[slot], 1)
	c.Equipment[slot] = -1
	c.Reserves[slot] = -1
	return true
}

// Wears reports whether item is equipped in any slot.
func (c *Character) Wears(item int) bool {
	for _, k := range c.Equipment {
		if k == item {
			return true
		}
	}
	return false
}
