// Character round update: decide, walk toward the goal or work at it.
package engine

import (
	"math"

	"github.com/talgya/hearthold/internal/agents"
	"github.com/talgya/hearthold/internal/world"
)

// Movement constants, in world units.
const (
	WalkSpeed     = 100.0 // Per unit of duration at multiplier 1
	mountainSlow  = 2.0 / 3
	waterSlow     = 1 / 1.5
	waterCheckOff = 6.0 // Water is sampled this far above the feet
)

func (s *Simulation) updateCharacter(c *agents.Character, dt float64) {
	if ctl := s.controllers[c.ID]; ctl != nil {
		ctl.Decide(s, c)
	}

	dt *= c.Vitality()

	target := s.Resolve(c.Goal.Target)
	gx, gy := c.Goal.X, c.Goal.Y
	if o := target.Object(); o != nil {
		gx, gy = o.X, o.Y
	}

	dx, dy := gx-c.X, gy-c.Y
	remaining := math.Hypot(dx, dy)
	if remaining == 0 {
		c.Dir = agents.South
		c.Step = agents.StepStanding
		s.workAt(c, target, dt)
		return
	}
	c.InBuilding = world.None

	heading := headingOf(dx, dy)
	c.Dir = facing(heading)

	distance := WalkSpeed * dt * c.SkillMultiplier(s.U, s.U.WalkSkill)
	if s.Map.LandAt(c.X, c.Y) == world.LandMountain {
		distance *= mountainSlow
	}
	c.InWater = s.Map.LandAt(c.X-c.W/2, c.Y-waterCheckOff) == world.LandWater ||
		s.Map.LandAt(c.X+c.W/2, c.Y-waterCheckOff) == world.LandWater
	if c.InWater {
		distance *= waterSlow
	}

	if distance >= remaining {
		distance = remaining
		c.X, c.Y = gx, gy
	} else {
		c.X += distance * math.Cos(heading)
		c.Y += distance * math.Sin(heading)
	}
	c.X = clamp(c.X, 0, s.Map.PixelWidth())
	c.Y = clamp(c.Y, 0, s.Map.PixelHeight())

	if c.Step == agents.StepStanding {
		c.Step = 0
	}
	c.Step = math.Mod(c.Step+0.1*distance, 4)

	c.Train(s.U.WalkSkill, distance/100)
}

// headingOf returns the angle of (dx, dy) in [0, 2π). The y axis points down,
// so π/2 is south.
func headingOf(dx, dy float64) float64 {
	var a float64
	switch {
	case dx > 0:
		a = math.Atan(dy / dx)
		if dy < 0 {
			a += 2 * math.Pi
		}
	case dx < 0:
		a = math.Atan(dy/dx) + math.Pi
	default:
		a = math.Pi / 2
		if dy < 0 {
			a += math.Pi
		}
	}
	return a
}

func facing(a float64) agents.Direction {
	switch {
	case a < math.Pi*1/4:
		return agents.East
	case a < math.Pi*3/4:
		return agents.South
	case a < math.Pi*5/4:
		return agents.West
	case a < math.Pi*7/4:
		return agents.North
	default:
		return agents.East
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
