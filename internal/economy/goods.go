// Package economy provides inventories and the transform engine that converts
// input resources into output resources.
package economy

import "fmt"

// GoodKind distinguishes raw/processed materials from crafted items.
type GoodKind uint8

const (
	GoodMaterial GoodKind = iota // Fractional, harvested or processed
	GoodItem                     // Whole crafted objects (tools, gear)
)

func (k GoodKind) String() string {
	switch k {
	case GoodMaterial:
		return "material"
	case GoodItem:
		return "item"
	default:
		return fmt.Sprintf("GoodKind(%d)", uint8(k))
	}
}

// Component is one entry of a transform: an amount of a material or item.
type Component struct {
	Kind   GoodKind `json:"kind" yaml:"kind"`
	ID     int      `json:"id" yaml:"id"`
	Amount float64  `json:"amount" yaml:"amount"`
}

// Inventory holds the goods and money of a character or building.
// Quantities never go negative: every debit clamps to what is held.
type Inventory struct {
	Materials []float64 `json:"materials"`
	Items     []float64 `json:"items"`
	Money     float64   `json:"money"`
}

// NewInventory creates an empty inventory sized for the given template tables.
func NewInventory(nMaterials, nItems int) Inventory {
	return Inventory{
		Materials: make([]float64, nMaterials),
		Items:     make([]float64, nItems),
	}
}

// slot returns a pointer to the stored quantity, or nil for unknown ids.
func (inv *Inventory) slot(kind GoodKind, id int) *float64 {
	switch kind {
	case GoodMaterial:
		if id >= 0 && id < len(inv.Materials) {
			return &inv.Materials[id]
		}
	case GoodItem:
		if id >= 0 && id < len(inv.Items) {
			return &inv.Items[id]
		}
	}
	return nil
}

// Get returns the held quantity of a good (0 for unknown ids).
func (inv *Inventory) Get(kind GoodKind, id int) float64 {
	if p := inv.slot(kind, id); p != nil {
		return *p
	}
	return 0
}

// Add changes the held quantity by delta, clamping at zero.
// Returns the change actually applied.
func (inv *Inventory) Add(kind GoodKind, id int, delta float64) float64 {
	p := inv.slot(kind, id)
	if p == nil {
		return 0
	}
	if *p+delta < 0 {
		delta = -*p
	}
	*p += delta
	return delta
}

// Move transfers goods between inv and dst. A positive amount moves from inv
// to dst, a negative amount from dst to inv. The transfer is clamped to the
// source stock. Returns the signed amount moved.
func (inv *Inventory) Move(dst *Inventory, kind GoodKind, id int, amount float64) float64 {
	src, to := inv, dst
	if amount < 0 {
		src, to = dst, inv
		amount = -amount
	}
	if held := src.Get(kind, id); amount > held {
		amount = held
	}
	if to.slot(kind, id) == nil {
		return 0
	}
	src.Add(kind, id, -amount)
	to.Add(kind, id, amount)
	if src == dst {
		return -amount
	}
	return amount
}

// Pay transfers money from inv to dst, clamped to available funds.
// Returns the amount paid.
func (inv *Inventory) Pay(dst *Inventory, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > inv.Money {
		amount = inv.Money
	}
	inv.Money -= amount
	dst.Money += amount
	return amount
}

// HasStock returns true if any material or item is held at or above min.
func (inv *Inventory) HasStock(min float64) bool {
	for _, q := range inv.Materials {
		if q >= min {
			return true
		}
	}
	for _, q := range inv.Items {
		if q >= min {
			return true
		}
	}
	return false
}

// MarshalText encodes the kind as "material" or "item".
func (k GoodKind) MarshalText() ([]byte, error) {
	switch k {
	case GoodMaterial, GoodItem:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown good kind %d", uint8(k))
}

// UnmarshalText decodes "material" or "item".
func (k *GoodKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "material":
		*k = GoodMaterial
	case "item":
		*k = GoodItem
	default:
		return fmt.Errorf("unknown good kind %q", string(b))
	}
	return nil
}
