package economy

import "math"

// Transform converts inputs into outputs. Amounts are per unit of work:
// applying one unit of work consumes every input amount once and produces
// every output amount once.
type Transform struct {
	Inputs  []Component `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []Component `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Rate    float64     `json:"rate" yaml:"rate"`
}

// IsZero returns true if the transform produces nothing.
func (t *Transform) IsZero() bool {
	return len(t.Outputs) == 0
}

// Check returns true if every input is held in full.
func Check(t *Transform, inv *Inventory) bool {
	for _, c := range t.Inputs {
		if inv.Get(c.Kind, c.ID) < c.Amount {
			return false
		}
	}
	return true
}

// Feasible returns the largest work, at most the requested one, that the
// held inputs can support.
func Feasible(t *Transform, inv *Inventory, work float64) float64 {
	if work <= 0 || math.IsNaN(work) {
		return 0
	}
	for _, c := range t.Inputs {
		if c.Amount <= 0 {
			continue
		}
		if ratio := inv.Get(c.Kind, c.ID) / c.Amount; ratio < work {
			work = ratio
		}
	}
	return work
}

// Apply performs as much of the requested work as the inputs allow, debiting
// inputs and crediting outputs proportionally. Returns the work actually done;
// callers must use it rather than the requested amount.
func Apply(t *Transform, inv *Inventory, work float64) float64 {
	work = Feasible(t, inv, work)
	if work == 0 {
		return 0
	}
	for _, c := range t.Inputs {
		inv.Add(c.Kind, c.ID, -work*c.Amount)
	}
	for _, c := range t.Outputs {
		inv.Add(c.Kind, c.ID, work*c.Amount)
	}
	return work
}

// ApplyCapped is Apply with the work further limited so that the first
// output never exceeds capacity. Used for harvesting into a carrying limit.
func ApplyCapped(t *Transform, inv *Inventory, work, capacity float64) float64 {
	if len(t.Outputs) > 0 {
		out := t.Outputs[0]
		if out.Amount > 0 {
			room := (capacity - inv.Get(out.Kind, out.ID)) / out.Amount
			if room < 0 {
				room = 0
			}
			work = math.Min(work, room)
		}
	}
	return Apply(t, inv, work)
}
