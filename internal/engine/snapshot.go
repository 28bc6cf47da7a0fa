package engine

import (
	"github.com/talgya/hearthold/internal/agents"
)

// Snapshot is a read-only copy of the state a renderer draws.
type Snapshot struct {
	Round      uint64             `json:"round"`
	Characters []agents.Character `json:"characters"`
	Mines      []Mine             `json:"mines"`
	Buildings  []Building         `json:"buildings"`
	Events     []Event            `json:"events"`
}

// Snapshot copies the current world state. Slices inside characters and
// buildings are copied too, so the snapshot stays valid across rounds.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Round:      s.Round,
		Characters: make([]agents.Character, len(s.Characters)),
		Mines:      make([]Mine, len(s.Mines)),
		Events:     append([]Event(nil), s.Events...),
	}
	for i, c := range s.Characters {
		cp := *c
		cp.Skills = append([]float64(nil), c.Skills...)
		cp.Equipment = append([]int(nil), c.Equipment...)
		cp.Reserves = append([]int(nil), c.Reserves...)
		cp.Inventory.Materials = append([]float64(nil), c.Inventory.Materials...)
		cp.Inventory.Items = append([]float64(nil), c.Inventory.Items...)
		snap.Characters[i] = cp
	}
	for i, m := range s.Mines {
		snap.Mines[i] = *m
	}
	for _, b := range s.Buildings() {
		cp := *b
		cp.Queue = append([]int(nil), b.Queue...)
		cp.Inventory.Materials = append([]float64(nil), b.Inventory.Materials...)
		cp.Inventory.Items = append([]float64(nil), b.Inventory.Items...)
		snap.Buildings = append(snap.Buildings, cp)
	}
	return snap
}
