// Work-at-goal dispatch: what a character does once it stands on its goal.
package engine

import (
	"fmt"
	"math"

	"github.com/talgya/hearthold/internal/agents"
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// restRate is the status recovery per unit of duration when idle.
const restRate = 0.05

func (s *Simulation) workAt(c *agents.Character, t Target, dt float64) {
	switch t.Kind {
	case world.KindNone:
		c.Weary(-restRate * dt)
	case world.KindCharacter:
	case world.KindMine:
		s.harvest(c, t.Mine, dt)
	case world.KindBuilding:
		s.workBuilding(c, t.Building, dt)
	}
}

func (s *Simulation) harvest(c *agents.Character, m *Mine, dt float64) float64 {
	tr := &s.U.Mines[m.Type].Harvest
	out := universe.HarvestOutput("mines", m.Type, tr)
	return s.produce(c, tr, out, dt)
}

// produce applies a harvest-like transform into the character's inventory,
// bounded by its carrying capacity for the output material.
func (s *Simulation) produce(c *agents.Character, tr *economy.Transform, out economy.Component, dt float64) float64 {
	skill := s.U.Materials[out.ID].Skill
	work := dt * c.SkillMultiplier(s.U, skill) * tr.Rate
	done := economy.ApplyCapped(tr, &c.Inventory, work, c.MaxOf(s.U, out.ID))
	c.Train(skill, done)
	return done
}

// Owns reports whether c owns b.
func (s *Simulation) Owns(c *agents.Character, b *Building) bool {
	return b.Owner == CharacterHandle(c)
}

func (s *Simulation) workBuilding(c *agents.Character, b *Building, dt float64) {
	if !s.Owns(c, b) {
		return
	}
	kind := &s.U.Buildings[b.Type]

	if !b.Complete() {
		skill := s.U.BuildSkill
		work := dt * c.SkillMultiplier(s.U, skill) * kind.Build.Rate
		work = math.Min(work, 1-b.BuildProgress)
		done := b.Build(economy.Apply(&kind.Build, &c.Inventory, work))
		c.Train(skill, done)
		if b.Complete() {
			s.Stats.Completed++
			s.emit(universe.EventBuildingCompleted, b.X, b.Y-b.H/2, kind.Name)
		}
		return
	}

	c.InBuilding = b.Handle

	if len(b.Queue) > 0 {
		slot := b.Queue[0]
		if slot < 0 || slot >= len(kind.Items) {
			panic(&universe.TemplateError{Table: "buildings", ID: b.Type, Reason: fmt.Sprintf("queued slot %d out of range", slot)})
		}
		tr := &kind.Items[slot]
		out := universe.CraftOutput("buildings", b.Type, tr)
		skill := s.U.Items[out.ID].Skill
		work := dt * c.SkillMultiplier(s.U, skill) * tr.Rate
		work = math.Min(work, 1-b.WorkProgress)
		done := economy.Apply(tr, &c.Inventory, work)
		b.WorkProgress += done
		c.Train(skill, done)
		if b.WorkProgress >= 1-progressEpsilon {
			b.WorkProgress = 0
			b.Dequeue(0)
			s.Stats.Crafted++
			s.emit(universe.EventItemCrafted, b.X, b.Y-b.H/2, s.U.Items[out.ID].Name)
		}
		return
	}

	if !kind.Make.IsZero() {
		out := universe.HarvestOutput("buildings", b.Type, &kind.Make)
		s.produce(c, &kind.Make, out, dt)
	}
}
