// Building lifecycle: construction, damage, crafting queue and trade.
package engine

import (
	"math"

	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// MaxLife is the life of a fully built, undamaged building.
const MaxLife = 20

// progressEpsilon absorbs rounding when progress is accumulated in steps.
const progressEpsilon = 1e-9

// Building is a constructible structure owned by a character.
type Building struct {
	world.Object
	Type   int          `json:"type"` // Index into the universe building table
	Handle world.Handle `json:"handle"`
	Owner  world.Handle `json:"owner"`

	BuildProgress float64 `json:"build_progress"` // [0, 1]
	Life          float64 `json:"life"`           // [0, MaxLife]

	Queue        []int   `json:"queue"`         // Crafting slots, head first
	WorkProgress float64 `json:"work_progress"` // [0, 1] for the queue head

	Inventory economy.Inventory `json:"inventory"`
	Open      bool              `json:"open"` // Any stock of at least one unit
}

func newBuilding(u *universe.Universe, kind int, x, y float64) *Building {
	t := &u.Buildings[kind]
	return &Building{
		Object:    world.Object{Kind: world.KindBuilding, X: x, Y: y, W: t.Width, H: t.Height},
		Type:      kind,
		Inventory: u.NewInventory(),
	}
}

// Complete reports whether construction has finished.
func (b *Building) Complete() bool {
	return b.BuildProgress >= 1
}

// Build adds construction work, capped at what remains. Life grows with the
// work done. Returns the work actually used.
func (b *Building) Build(work float64) float64 {
	if work <= 0 {
		return 0
	}
	work = math.Min(work, 1-b.BuildProgress)
	b.BuildProgress += work
	if b.BuildProgress >= 1-progressEpsilon {
		b.BuildProgress = 1
	}
	b.Life = math.Min(b.Life+MaxLife*work, MaxLife)
	return work
}

// damage removes life, capped at what is left. Returns the damage dealt and
// whether the building is destroyed.
func (b *Building) damage(amount float64) (float64, bool) {
	if amount < 0 {
		amount = 0
	}
	amount = math.Min(amount, b.Life)
	b.Life -= amount
	return amount, b.Life <= 0
}

// Enqueue appends a crafting slot to the work queue.
func (b *Building) Enqueue(slot int) {
	b.Queue = append(b.Queue, slot)
}

// Dequeue removes the queue entry at index n.
func (b *Building) Dequeue(n int) {
	if n < 0 || n >= len(b.Queue) {
		return
	}
	b.Queue = append(b.Queue[:n], b.Queue[n+1:]...)
}

// Update refreshes the Open flag.
func (b *Building) Update() {
	b.Open = b.Inventory.HasStock(1)
}

// Take moves goods from the building to inv. Anyone but the owner pays the
// unit price for what they take, and is refused when short of money.
// Returns the amount taken.
func (b *Building) Take(u *universe.Universe, kind economy.GoodKind, id int, amount float64, inv *economy.Inventory, isOwner bool) float64 {
	amount = math.Min(amount, b.Inventory.Get(kind, id))
	if amount <= 0 {
		return 0
	}
	price := 0.0
	if !isOwner {
		price = u.Price(kind, id) * amount
	}
	if price > inv.Money {
		return 0
	}
	inv.Pay(&b.Inventory, price)
	moved := b.Inventory.Move(inv, kind, id, amount)
	b.Update()
	return moved
}

// Put moves goods from inv into the building. Only the owner may stock it.
func (b *Building) Put(kind economy.GoodKind, id int, amount float64, inv *economy.Inventory, isOwner bool) float64 {
	if !isOwner || amount <= 0 {
		return 0
	}
	moved := inv.Move(&b.Inventory, kind, id, amount)
	b.Update()
	return moved
}

// Withdraw hands the building's takings to inv.
func (b *Building) Withdraw(inv *economy.Inventory) float64 {
	return b.Inventory.Pay(inv, b.Inventory.Money)
}

// OnSale returns the stock of a good this kind of building makes, or 0 for
// goods it does not make.
func (b *Building) OnSale(u *universe.Universe, kind economy.GoodKind, id int) float64 {
	if u.Buildings[b.Type].CanMake(kind, id) == nil {
		return 0
	}
	return b.Inventory.Get(kind, id)
}
