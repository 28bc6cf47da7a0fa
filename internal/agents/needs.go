// Statuses and vitality.
package agents

import (
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
)

// Vitality scales the effective duration of a round. Each status below half
// of its maximum costs a malus that grows as the status drops; the result
// never falls under 0.1.
func (c *Character) Vitality() float64 {
	v := 1.0
	for _, s := range c.Statuses {
		switch r := s / StatusMax; {
		case r < 0.10:
			v -= 0.45
		case r < 0.25:
			v -= 0.25
		case r < 0.5:
			v -= 0.125
		}
	}
	if v < 0.1 {
		v = 0.1
	}
	return v
}

// Weary lowers stamina by a and moral by a/3. A negative amount rests.
func (c *Character) Weary(a float64) {
	c.Statuses[universe.StatusStamina] = clampStatus(c.Statuses[universe.StatusStamina] - a)
	c.Statuses[universe.StatusMoral] = clampStatus(c.Statuses[universe.StatusMoral] - a/3)
}

// Eat consumes one unit of an edible material and applies its bonuses.
func (c *Character) Eat(u *universe.Universe, material int) bool {
	if material < 0 || material >= len(u.Materials) {
		return false
	}
	m := &u.Materials[material]
	if !m.Edible || c.Inventory.Get(economy.GoodMaterial, material) < 1 {
		return false
	}
	c.Inventory.Add(economy.GoodMaterial, material, -1)
	for i, b := range m.EatBonus {
		c.Statuses[i] = clampStatus(c.Statuses[i] + b)
	}
	return true
}

// Hungry reports whether any status has dropped under half.
func (c *Character) Hungry() bool {
	for _, s := range c.Statuses {
		if s < StatusMax/2 {
			return true
		}
	}
	return false
}

func clampStatus(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > StatusMax {
		return StatusMax
	}
	return s
}
