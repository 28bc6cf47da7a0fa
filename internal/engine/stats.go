package engine

import (
	"go.uber.org/zap"
)

// SimStats tracks aggregate world statistics. Counters accumulate for the
// whole run; the rest is recomputed by UpdateStats.
type SimStats struct {
	Round         uint64  `json:"round" db:"round"`
	Characters    int     `json:"characters" db:"characters"`
	Buildings     int     `json:"buildings" db:"buildings"`
	Complete      int     `json:"complete" db:"complete"`
	Open          int     `json:"open" db:"open"`
	TotalMoney    float64 `json:"total_money" db:"total_money"`
	MaterialsHeld float64 `json:"materials_held" db:"materials_held"`
	ItemsHeld     float64 `json:"items_held" db:"items_held"`
	AvgVitality   float64 `json:"avg_vitality" db:"avg_vitality"`

	Completed int `json:"completed" db:"completed"` // Buildings finished
	Crafted   int `json:"crafted" db:"crafted"`     // Items crafted
	Destroyed int `json:"destroyed" db:"destroyed"` // Buildings destroyed or demolished
}

// UpdateStats recomputes the aggregate statistics.
func (s *Simulation) UpdateStats() {
	st := &s.Stats
	st.Round = s.Round
	st.Characters = len(s.Characters)
	st.TotalMoney, st.MaterialsHeld, st.ItemsHeld, st.AvgVitality = 0, 0, 0, 0

	for _, c := range s.Characters {
		st.TotalMoney += c.Inventory.Money
		st.MaterialsHeld += sum(c.Inventory.Materials)
		st.ItemsHeld += sum(c.Inventory.Items)
		st.AvgVitality += c.Vitality()
	}
	if st.Characters > 0 {
		st.AvgVitality /= float64(st.Characters)
	}

	st.Buildings, st.Complete, st.Open = 0, 0, 0
	for _, b := range s.Buildings() {
		st.Buildings++
		st.TotalMoney += b.Inventory.Money
		if b.Complete() {
			st.Complete++
		}
		if b.Open {
			st.Open++
		}
	}
}

// LogReport writes a summary of the current statistics.
func (s *Simulation) LogReport() {
	st := s.Stats
	s.log.Info("round report",
		zap.Uint64("round", st.Round),
		zap.Int("characters", st.Characters),
		zap.Int("buildings", st.Buildings),
		zap.Int("complete", st.Complete),
		zap.Int("open", st.Open),
		zap.Float64("money", st.TotalMoney),
		zap.Float64("materials", st.MaterialsHeld),
		zap.Float64("items", st.ItemsHeld),
		zap.Float64("avg_vitality", st.AvgVitality),
		zap.Int("completed", st.Completed),
		zap.Int("crafted", st.Crafted),
		zap.Int("destroyed", st.Destroyed),
	)
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}
