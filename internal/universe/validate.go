package universe

import (
	"errors"
	"fmt"

	"github.com/talgya/hearthold/internal/economy"
)

// Validate checks referential integrity: every id points into its table and
// every recipe has the output shape the simulation relies on.
func (u *Universe) Validate() error {
	var errs []error
	bad := func(table string, id int, format string, args ...any) {
		errs = append(errs, &TemplateError{Table: table, ID: id, Reason: fmt.Sprintf(format, args...)})
	}

	if len(u.Statuses) != NumStatuses {
		bad("statuses", 0, "want %d statuses, have %d", NumStatuses, len(u.Statuses))
	}
	if !inRange(u.BuildSkill, len(u.Skills)) {
		bad("skills", u.BuildSkill, "build_skill out of range")
	}
	if !inRange(u.WalkSkill, len(u.Skills)) {
		bad("skills", u.WalkSkill, "walk_skill out of range")
	}

	for i, m := range u.Materials {
		if !inRange(m.Skill, len(u.Skills)) {
			bad("materials", i, "skill %d out of range", m.Skill)
		}
		if len(m.EatBonus) > NumStatuses {
			bad("materials", i, "eat_bonus has %d entries", len(m.EatBonus))
		}
	}
	for i, it := range u.Items {
		if !inRange(it.Skill, len(u.Skills)) {
			bad("items", i, "skill %d out of range", it.Skill)
		}
		for _, b := range it.Bonuses {
			if !inRange(b.Skill, len(u.Skills)) {
				bad("items", i, "bonus skill %d out of range", b.Skill)
			}
		}
	}

	check := func(table string, id int, t *economy.Transform) {
		for _, list := range [][]economy.Component{t.Inputs, t.Outputs} {
			for _, c := range list {
				if !u.goodExists(c.Kind, c.ID) {
					bad(table, id, "unknown %s %d", c.Kind, c.ID)
				}
				if c.Amount < 0 {
					bad(table, id, "negative amount for %s %d", c.Kind, c.ID)
				}
			}
		}
		if t.Rate < 0 {
			bad(table, id, "negative rate")
		}
	}

	for i := range u.Mines {
		m := &u.Mines[i]
		check("mines", i, &m.Harvest)
		if len(m.Harvest.Outputs) == 0 || m.Harvest.Outputs[0].Kind != economy.GoodMaterial {
			bad("mines", i, "harvest must produce a material first")
		}
		if m.Weight < 0 {
			bad("mines", i, "negative weight")
		}
	}
	for i := range u.Buildings {
		b := &u.Buildings[i]
		check("buildings", i, &b.Build)
		check("buildings", i, &b.Make)
		if len(b.Make.Outputs) > 0 && b.Make.Outputs[0].Kind != economy.GoodMaterial {
			bad("buildings", i, "make must produce a material first")
		}
		for j := range b.Items {
			check("buildings", i, &b.Items[j])
			if len(b.Items[j].Outputs) == 0 || b.Items[j].Outputs[0].Kind != economy.GoodItem {
				bad("buildings", i, "item recipe %d must produce an item first", j)
			}
		}
		if b.Width <= 0 || b.Height <= 0 {
			bad("buildings", i, "non-positive dimensions")
		}
	}
	for i, bp := range u.Bots {
		if !inRange(bp.Building, len(u.Buildings)) {
			bad("bots", i, "building %d out of range", bp.Building)
		}
		for _, item := range bp.Wishlist {
			if !inRange(item, len(u.Items)) {
				bad("bots", i, "wished item %d out of range", item)
			}
		}
	}
	for _, name := range []string{EventBuildingDestroyed, EventBuildingCompleted, EventItemCrafted} {
		if u.EventID(name) < 0 {
			bad("events", len(u.Events), "missing event %q", name)
		}
	}

	return errors.Join(errs...)
}

func (u *Universe) goodExists(kind economy.GoodKind, id int) bool {
	switch kind {
	case economy.GoodMaterial:
		return inRange(id, len(u.Materials))
	case economy.GoodItem:
		return inRange(id, len(u.Items))
	}
	return false
}

func inRange(id, n int) bool {
	return id >= 0 && id < n
}
