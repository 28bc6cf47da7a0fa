package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plankRecipe() *Transform {
	return &Transform{
		Inputs: []Component{
			{Kind: GoodMaterial, ID: 0, Amount: 2},
			{Kind: GoodMaterial, ID: 1, Amount: 1},
		},
		Outputs: []Component{
			{Kind: GoodMaterial, ID: 2, Amount: 1},
			{Kind: GoodItem, ID: 0, Amount: 0.5},
		},
		Rate: 1,
	}
}

func TestCheck_AllInputsHeld(t *testing.T) {
	inv := NewInventory(3, 1)
	inv.Materials[0] = 2
	inv.Materials[1] = 1
	assert.True(t, Check(plankRecipe(), &inv))
}

func TestCheck_MissingInput(t *testing.T) {
	inv := NewInventory(3, 1)
	inv.Materials[0] = 1.99
	inv.Materials[1] = 5
	assert.False(t, Check(plankRecipe(), &inv))
}

func TestApply_FullWork(t *testing.T) {
	inv := NewInventory(3, 1)
	inv.Materials[0] = 10
	inv.Materials[1] = 10

	done := Apply(plankRecipe(), &inv, 3)
	assert.InDelta(t, 3, done, 1e-9)
	assert.InDelta(t, 4, inv.Materials[0], 1e-9)
	assert.InDelta(t, 7, inv.Materials[1], 1e-9)
	assert.InDelta(t, 3, inv.Materials[2], 1e-9)
	assert.InDelta(t, 1.5, inv.Items[0], 1e-9)
}

func TestApply_ScarcestInputBoundsWork(t *testing.T) {
	inv := NewInventory(3, 1)
	inv.Materials[0] = 3 // supports 1.5 units
	inv.Materials[1] = 10

	done := Apply(plankRecipe(), &inv, 5)
	assert.InDelta(t, 1.5, done, 1e-9)
	assert.InDelta(t, 0, inv.Materials[0], 1e-9)
	assert.InDelta(t, 8.5, inv.Materials[1], 1e-9)
	assert.InDelta(t, 1.5, inv.Materials[2], 1e-9)
}

func TestApply_NeverNegative(t *testing.T) {
	for _, work := range []float64{0, 0.1, 1, 7, 1e6} {
		inv := NewInventory(3, 1)
		inv.Materials[0] = 1.3
		inv.Materials[1] = 0.4

		done := Apply(plankRecipe(), &inv, work)
		assert.LessOrEqual(t, done, work)
		for _, q := range inv.Materials {
			assert.GreaterOrEqual(t, q, 0.0)
		}
	}
}

func TestApply_NoInputsAlwaysSucceeds(t *testing.T) {
	harvest := &Transform{
		Outputs: []Component{{Kind: GoodMaterial, ID: 0, Amount: 1}},
		Rate:    1,
	}
	inv := NewInventory(1, 0)

	done := Apply(harvest, &inv, 5)
	assert.InDelta(t, 5, done, 1e-9)
	assert.InDelta(t, 5, inv.Materials[0], 1e-9)
}

func TestApply_NegativeWork(t *testing.T) {
	inv := NewInventory(3, 1)
	inv.Materials[0] = 5
	assert.Zero(t, Apply(plankRecipe(), &inv, -2))
	assert.InDelta(t, 5, inv.Materials[0], 1e-9)
}

func TestInventory_Move_ClampsToSource(t *testing.T) {
	a := NewInventory(2, 0)
	b := NewInventory(2, 0)
	a.Materials[1] = 3

	moved := a.Move(&b, GoodMaterial, 1, 10)
	assert.InDelta(t, 3, moved, 1e-9)
	assert.Zero(t, a.Materials[1])
	assert.InDelta(t, 3, b.Materials[1], 1e-9)

	back := a.Move(&b, GoodMaterial, 1, -1)
	assert.InDelta(t, -1, back, 1e-9)
	assert.InDelta(t, 1, a.Materials[1], 1e-9)
	assert.InDelta(t, 2, b.Materials[1], 1e-9)
}

func TestInventory_Move_UnknownID(t *testing.T) {
	a := NewInventory(1, 0)
	b := NewInventory(1, 0)
	a.Materials[0] = 1
	assert.Zero(t, a.Move(&b, GoodItem, 3, 1))
	assert.InDelta(t, 1, a.Materials[0], 1e-9)
}

func TestInventory_Pay(t *testing.T) {
	a := Inventory{Money: 5}
	b := Inventory{}
	require.InDelta(t, 5, a.Pay(&b, 8), 1e-9)
	assert.Zero(t, a.Money)
	assert.InDelta(t, 5, b.Money, 1e-9)
	assert.Zero(t, a.Pay(&b, -1))
}

func TestInventory_HasStock(t *testing.T) {
	inv := NewInventory(2, 2)
	inv.Materials[0] = 0.9
	assert.False(t, inv.HasStock(1))
	inv.Items[1] = 1
	assert.True(t, inv.HasStock(1))
}

func woodHarvest() *Transform {
	return &Transform{
		Outputs: []Component{{Kind: GoodMaterial, ID: 0, Amount: 1}},
		Rate:    1,
	}
}

func TestApplyCapped_RoomForAll(t *testing.T) {
	inv := NewInventory(1, 0)
	got := ApplyCapped(woodHarvest(), &inv, 5, 20)
	assert.InDelta(t, 5, got, 1e-9)
	assert.InDelta(t, 5, inv.Materials[0], 1e-9)
}

func TestApplyCapped_LimitedRoom(t *testing.T) {
	inv := NewInventory(1, 0)
	inv.Materials[0] = 1
	got := ApplyCapped(woodHarvest(), &inv, 5, 3)
	assert.InDelta(t, 2, got, 1e-9)
	assert.InDelta(t, 3, inv.Materials[0], 1e-9)
}

func TestApplyCapped_OverCapacity(t *testing.T) {
	inv := NewInventory(1, 0)
	inv.Materials[0] = 4
	assert.Zero(t, ApplyCapped(woodHarvest(), &inv, 5, 3))
	assert.InDelta(t, 4, inv.Materials[0], 1e-9)
}
