// Package universe holds the kind-of-* template tables shared by every entity.
// A Universe is loaded once before any world exists and is read-only afterwards;
// it is passed explicitly to whatever needs it.
package universe

import (
	"fmt"

	"github.com/talgya/hearthold/internal/economy"
)

// Status indices. Every character carries exactly these three statuses.
const (
	StatusHealth = iota
	StatusStamina
	StatusMoral
	NumStatuses
)

// Item categories with special equipment handling.
const (
	CategoryOneHanded = 0 // Fits any hand slot
	CategoryTwoHanded = 1 // Equipped in a hand slot, reserves the next one
)

// Well-known event names fired by the simulation.
const (
	EventBuildingDestroyed = "building_destroyed"
	EventBuildingCompleted = "building_completed"
	EventItemCrafted       = "item_crafted"
)

// Universe is the complete template table.
type Universe struct {
	Name       string       `json:"name"`
	BuildSkill int          `json:"build_skill"`
	WalkSkill  int          `json:"walk_skill"`
	StartMoney float64      `json:"start_money,omitempty"` // Purse of every new character
	Skills     []Skill      `json:"skills"`
	Statuses   []Status     `json:"statuses"`
	Materials  []Material   `json:"materials"`
	Items      []Item       `json:"items"`
	Slots      []Slot       `json:"slots"`
	Mines      []Mine       `json:"mines"`
	Buildings  []Building   `json:"buildings"`
	Events     []Event      `json:"events"`
	Bots       []BotProfile `json:"bots,omitempty"`
}

// Skill is a trainable capability.
type Skill struct {
	Name string `json:"name"`
}

// Status is one of the vitality statuses (health, stamina, moral).
type Status struct {
	Name string `json:"name"`
}

// Material is a fractional good, harvested from mines or made in buildings.
type Material struct {
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Skill    int       `json:"skill"`                // Skill trained when producing it
	Edible   bool      `json:"edible,omitempty"`
	EatBonus []float64 `json:"eat_bonus,omitempty"` // Per status, added when eaten
}

// Item is a whole crafted good, possibly equippable.
type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category int     `json:"category"` // Matches Slot.Category
	Skill    int     `json:"skill"`    // Skill used to craft it
	Bonuses  []Bonus `json:"bonuses,omitempty"`
}

// Bonus adds to a skill level while the item is equipped.
type Bonus struct {
	Skill  int     `json:"skill"`
	Amount float64 `json:"amount"`
}

// Slot is one equipment position on a character.
type Slot struct {
	Name     string `json:"name"`
	Category int    `json:"category"`
}

// Mine is a kind of harvestable resource node.
type Mine struct {
	Name    string            `json:"name"`
	Weight  float64           `json:"weight"` // Relative frequency at world generation
	Harvest economy.Transform `json:"harvest"`
}

// Building is a kind of constructible building.
type Building struct {
	Name    string              `json:"name"`
	Width   float64             `json:"width"`
	Height  float64             `json:"height"`
	Sprites int                 `json:"sprites"`
	Build   economy.Transform   `json:"build"`
	Make    economy.Transform   `json:"make"`
	Items   []economy.Transform `json:"items,omitempty"`
}

// CanMake returns the transform producing the given good as its first output,
// or nil if this kind of building cannot make it.
func (b *Building) CanMake(kind economy.GoodKind, id int) *economy.Transform {
	if len(b.Make.Outputs) > 0 && b.Make.Outputs[0].Kind == kind && b.Make.Outputs[0].ID == id {
		return &b.Make
	}
	for i := range b.Items {
		out := b.Items[i].Outputs
		if len(out) > 0 && out[0].Kind == kind && out[0].ID == id {
			return &b.Items[i]
		}
	}
	return nil
}

// Event is a kind of world event consumed by presentation layers.
type Event struct {
	Name string `json:"name"`
}

// BotProfile configures a built-in AI controller.
type BotProfile struct {
	Name     string `json:"name"`
	Building int    `json:"building"`           // Kind of building the bot sets up and runs
	Wishlist []int  `json:"wishlist,omitempty"` // Items the bot crafts or buys for itself, in order
}

// EventID returns the index of the named event, or -1.
func (u *Universe) EventID(name string) int {
	for i, e := range u.Events {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Price returns the unit price of a good, or 0 for unknown ids.
func (u *Universe) Price(kind economy.GoodKind, id int) float64 {
	switch kind {
	case economy.GoodMaterial:
		if id >= 0 && id < len(u.Materials) {
			return u.Materials[id].Price
		}
	case economy.GoodItem:
		if id >= 0 && id < len(u.Items) {
			return u.Items[id].Price
		}
	}
	return 0
}

// NewInventory creates an empty inventory sized for this universe.
func (u *Universe) NewInventory() economy.Inventory {
	return economy.NewInventory(len(u.Materials), len(u.Items))
}

// TemplateError reports malformed template data. Loading returns it as an
// error; the simulation panics with it if malformed data slips through, since
// it is never a recoverable runtime condition.
type TemplateError struct {
	Table  string
	ID     int
	Reason string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("universe: %s[%d]: %s", e.Table, e.ID, e.Reason)
}

// HarvestOutput returns the material produced first by a harvest-like
// transform. It panics with a TemplateError when the first output is not a
// material.
func HarvestOutput(table string, id int, t *economy.Transform) economy.Component {
	if len(t.Outputs) == 0 || t.Outputs[0].Kind != economy.GoodMaterial {
		panic(&TemplateError{Table: table, ID: id, Reason: "first output must be a material"})
	}
	return t.Outputs[0]
}

// CraftOutput returns the item produced first by a crafting transform. It
// panics with a TemplateError when the first output is not an item.
func CraftOutput(table string, id int, t *economy.Transform) economy.Component {
	if len(t.Outputs) == 0 || t.Outputs[0].Kind != economy.GoodItem {
		panic(&TemplateError{Table: table, ID: id, Reason: "first output must be an item"})
	}
	return t.Outputs[0]
}
