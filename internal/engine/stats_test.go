package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

func TestSimulation_LogReport(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := New(universe.Default(), world.NewMap(40, 40), 1, zap.New(core))
	c := s.AddCharacter(300, 300)
	b := s.AddBuilding(buildingHut, 300, 300)
	b.Owner = CharacterHandle(c)
	c.Inventory.Add(economy.GoodMaterial, matWood, 10)
	c.Inventory.Add(economy.GoodMaterial, matStone, 4)
	require.True(t, s.SetGoalObject(c, b.Handle))
	for i := 0; i < 40 && !b.Complete(); i++ {
		s.DoRound(1)
	}
	require.True(t, b.Complete())
	require.True(t, s.Demolish(c, b))

	s.UpdateStats()
	s.LogReport()

	reports := logs.FilterMessage("round report").All()
	require.Len(t, reports, 1)
	fields := reports[0].ContextMap()
	assert.EqualValues(t, 1, fields["completed"])
	assert.EqualValues(t, 1, fields["destroyed"])
	assert.EqualValues(t, 0, fields["crafted"])
	assert.EqualValues(t, 1, fields["characters"])
}
