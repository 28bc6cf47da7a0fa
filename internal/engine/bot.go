// Built-in AI: a bot gathers the build cost of its profile's building, builds
// it, then runs it and stocks its output for sale. Goods are bought from other
// characters' open buildings when affordable, harvested otherwise. Wished
// items are crafted at the bot's own building or bought, then equipped.
package engine

import (
	"math"

	"github.com/talgya/hearthold/internal/agents"
	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// Controller decides for a character at the start of each of its rounds.
// It may change goals and queues through the simulation commands.
type Controller interface {
	Decide(s *Simulation, c *agents.Character)
}

// BotStep is the phase a bot is in.
type BotStep uint8

const (
	BotCollect BotStep = iota // Gathering the build cost
	BotBuild                  // Placing the building
	BotWork                   // Constructing, then producing
	BotSell                   // Stocking surplus output
)

func (b BotStep) String() string {
	switch b {
	case BotCollect:
		return "collect"
	case BotBuild:
		return "build"
	case BotWork:
		return "work"
	default:
		return "sell"
	}
}

// fetchBatch is how many units of work worth of make inputs a bot fetches in
// one trip.
const fetchBatch = 8

// Bot is the built-in Controller.
type Bot struct {
	Profile universe.BotProfile
	Step    BotStep
	Site    world.Handle

	fetching int // Material being fetched for the make recipe, -1 when none
}

// NewBot creates a bot for a profile.
func NewBot(p universe.BotProfile) *Bot {
	return &Bot{Profile: p, fetching: -1}
}

// Decide implements Controller.
func (b *Bot) Decide(s *Simulation, c *agents.Character) {
	if c.Hungry() {
		eatAnything(s, c)
	}
	kind := &s.U.Buildings[b.Profile.Building]

	switch b.Step {
	case BotCollect:
		in, ok := firstMissing(&kind.Build, &c.Inventory)
		if !ok {
			b.Step = BotBuild
			return
		}
		b.acquire(s, c, in.Kind, in.ID, in.Amount)

	case BotBuild:
		site := s.MakeBuilding(c, b.Profile.Building)
		if site == nil {
			b.Step = BotCollect
			return
		}
		b.Site = site.Handle
		b.Step = BotWork

	case BotWork:
		site := s.Building(b.Site)
		if site == nil {
			b.Site = world.None
			b.Step = BotCollect
			return
		}
		if !site.Complete() {
			b.goTo(c, site)
			return
		}
		if b.pursueWish(s, c, site, kind) {
			return
		}
		if kind.Make.IsZero() {
			b.goTo(c, site)
			return
		}
		b.operate(s, c, site, kind)

	case BotSell:
		site := s.Building(b.Site)
		if site == nil {
			b.Site = world.None
			b.Step = BotCollect
			return
		}
		if c.Goal.Target != site.Handle || c.X != site.X || c.Y != site.Y {
			b.goTo(c, site)
			return
		}
		out := kind.Make.Outputs[0]
		s.Put(c, site, out.Kind, out.ID, c.Inventory.Get(out.Kind, out.ID))
		s.Withdraw(c, site)
		b.Step = BotWork
	}
}

// operate keeps the make recipe supplied and moves to selling once the
// character can carry no more output.
func (b *Bot) operate(s *Simulation, c *agents.Character, site *Building, kind *universe.Building) {
	out := kind.Make.Outputs[0]
	if c.Inventory.Get(out.Kind, out.ID) >= c.MaxOf(s.U, out.ID)-progressEpsilon {
		b.Step = BotSell
		return
	}

	if b.fetching >= 0 {
		need := fetchNeed(&kind.Make, b.fetching)
		held := c.Inventory.Get(economy.GoodMaterial, b.fetching)
		if held < need && held < c.MaxOf(s.U, b.fetching)-progressEpsilon &&
			b.acquire(s, c, economy.GoodMaterial, b.fetching, need) {
			return
		}
		b.fetching = -1
	}

	if economy.Feasible(&kind.Make, &c.Inventory, 1) < 1 {
		if in, ok := firstMissing(&kind.Make, &c.Inventory); ok {
			if in.Kind == economy.GoodMaterial {
				b.fetching = in.ID
				in.Amount = fetchNeed(&kind.Make, in.ID)
			}
			if b.acquire(s, c, in.Kind, in.ID, in.Amount) {
				return
			}
			b.fetching = -1
		}
	}
	b.goTo(c, site)
}

// pursueWish works toward the first wished item the character neither holds
// nor wears. Items the bot's building can craft are queued there once their
// inputs are held; others are bought. Held wished items are equipped.
// Returns false when no wish can be advanced.
func (b *Bot) pursueWish(s *Simulation, c *agents.Character, site *Building, kind *universe.Building) bool {
	for _, item := range b.Profile.Wishlist {
		if c.Wears(item) {
			continue
		}
		if c.Inventory.Get(economy.GoodItem, item) >= 1 {
			s.Equip(c, item)
			continue
		}

		slot := craftSlot(kind, item)
		if slot < 0 {
			if b.acquire(s, c, economy.GoodItem, item, 1) {
				return true
			}
			continue
		}
		if len(site.Queue) > 0 {
			b.goTo(c, site)
			return true
		}

		tr := &kind.Items[slot]
		restock(s, c, site, tr)
		if in, ok := firstMissing(tr, &c.Inventory); ok {
			if b.acquire(s, c, in.Kind, in.ID, in.Amount) {
				return true
			}
			continue
		}
		if s.EnqueueCraft(c, site, slot) {
			b.goTo(c, site)
			return true
		}
	}
	return false
}

func (b *Bot) goTo(c *agents.Character, site *Building) {
	if c.Goal.Target != site.Handle {
		c.SetGoalObject(site.Handle, site.X, site.Y)
	}
}

// acquire works toward holding amount of a good. It buys from the nearest
// open building selling it at a price the character can pay, and falls back
// to the nearest mine for materials. Returns false when there is no source.
func (b *Bot) acquire(s *Simulation, c *agents.Character, kind economy.GoodKind, id int, amount float64) bool {
	t := s.Resolve(c.Goal.Target)
	if t.Kind == world.KindBuilding && !s.Owns(c, t.Building) {
		shop := t.Building
		if c.X == shop.X && c.Y == shop.Y {
			if buy(s, c, shop, kind, id, amount) > 0 {
				return true
			}
		} else if s.sells(c, shop, kind, id) {
			return true
		}
	}
	if shop := s.FindShop(c, kind, id); shop != nil {
		c.SetGoalObject(shop.Handle, shop.X, shop.Y)
		return true
	}

	if kind != economy.GoodMaterial {
		return false
	}
	if t.Kind == world.KindMine {
		out := s.U.Mines[t.Mine.Type].Harvest.Outputs
		if len(out) > 0 && out[0].ID == id {
			return true
		}
	}
	return s.GoMineFor(c, id)
}

// buy takes what c lacks of amount from shop, in whole units c can pay for.
func buy(s *Simulation, c *agents.Character, shop *Building, kind economy.GoodKind, id int, amount float64) float64 {
	want := amount - c.Inventory.Get(kind, id)
	if price := s.U.Price(kind, id); price > 0 {
		want = math.Min(want, math.Floor(c.Inventory.Money/price))
	}
	if want <= 0 {
		return 0
	}
	return s.Take(c, shop, kind, id, want)
}

// restock moves inputs of tr that c is short of from its own building.
func restock(s *Simulation, c *agents.Character, site *Building, tr *economy.Transform) {
	for _, in := range tr.Inputs {
		if short := in.Amount - c.Inventory.Get(in.Kind, in.ID); short > 0 {
			s.Take(c, site, in.Kind, in.ID, short)
		}
	}
}

// craftSlot returns the crafting slot of kind producing item, or -1.
func craftSlot(kind *universe.Building, item int) int {
	for i := range kind.Items {
		out := kind.Items[i].Outputs
		if len(out) > 0 && out[0].Kind == economy.GoodItem && out[0].ID == item {
			return i
		}
	}
	return -1
}

// firstMissing returns the first input not held in full.
func firstMissing(t *economy.Transform, inv *economy.Inventory) (economy.Component, bool) {
	for _, in := range t.Inputs {
		if inv.Get(in.Kind, in.ID) < in.Amount {
			return in, true
		}
	}
	return economy.Component{}, false
}

func fetchNeed(t *economy.Transform, material int) float64 {
	for _, in := range t.Inputs {
		if in.Kind == economy.GoodMaterial && in.ID == material {
			return in.Amount * fetchBatch
		}
	}
	return 0
}

func eatAnything(s *Simulation, c *agents.Character) {
	for id, m := range s.U.Materials {
		if m.Edible && s.Eat(c, id) {
			return
		}
	}
}
