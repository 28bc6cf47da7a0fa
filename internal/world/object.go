// Package world provides the spatial primitives shared by every entity, the
// tile map and the procedural terrain generator.
package world

import (
	"fmt"
	"math"
)

// Kind discriminates the entities placed in the world. It never changes after
// creation.
type Kind uint8

const (
	KindNone Kind = iota
	KindCharacter
	KindMine
	KindBuilding
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCharacter:
		return "character"
	case KindMine:
		return "mine"
	case KindBuilding:
		return "building"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Object is the positioned part of every entity. X and Y locate the feet:
// the object spans [X-W/2, X+W/2] horizontally and [Y-H, Y] vertically.
type Object struct {
	Kind Kind    `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// IsAt is the hit test used for picking.
func (o *Object) IsAt(x, y float64) bool {
	return o.X-o.W/2 <= x && x <= o.X+o.W/2 &&
		o.Y-o.H <= y && y <= o.Y
}

// Overlaps reports whether the object intersects a footprint of size w×h
// anchored the same way at (x, y).
func (o *Object) Overlaps(x, y, w, h float64) bool {
	return o.X-o.W/2 < x+w/2 && x-w/2 < o.X+o.W/2 &&
		o.Y-o.H < y && y-h < o.Y
}

// Distance returns the euclidean distance from the anchor to (x, y).
func (o *Object) Distance(x, y float64) float64 {
	return math.Hypot(x-o.X, y-o.Y)
}

// Handle is a weak reference to an entity. The zero value refers to nothing.
// Gen must match the generation of the referenced slot; a handle to a removed
// entity therefore resolves to nothing even if its slot was reused.
type Handle struct {
	Kind Kind   `json:"kind"`
	Slot int    `json:"slot"`
	Gen  uint32 `json:"gen"`
}

// None is the empty handle.
var None Handle

// IsNone reports whether h refers to nothing.
func (h Handle) IsNone() bool {
	return h.Kind == KindNone
}

func (h Handle) String() string {
	if h.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s#%d.%d", h.Kind, h.Slot, h.Gen)
}
