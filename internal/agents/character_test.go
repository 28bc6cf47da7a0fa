package agents

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
	"github.com/talgya/hearthold/internal/world"
)

// Default universe ids used below.
const (
	skillWoodcutting = 2
	skillMining      = 4
	matWood          = 0
	matBerries       = 2
	matBread         = 10
	itemAxe          = 0
	itemPickaxe      = 1
	itemHammer       = 2
	itemSandals      = 3
)

func newTestCharacter(t *testing.T) (*universe.Universe, *Character) {
	t.Helper()
	u := universe.Default()
	return u, NewCharacter(u, 0, 100, 100)
}

func TestNewCharacter_Defaults(t *testing.T) {
	u, c := newTestCharacter(t)
	assert.Equal(t, world.KindCharacter, c.Kind)
	assert.Len(t, c.Skills, len(u.Skills))
	for _, s := range c.Skills {
		assert.Equal(t, SkillBaseline, s)
	}
	for _, e := range c.Equipment {
		assert.Equal(t, -1, e)
	}
	assert.Equal(t, float64(StepStanding), c.Step)
	assert.InDelta(t, 1.0, c.Vitality(), 1e-9)
	assert.True(t, c.Home.IsNone())
}

func TestCharacter_Vitality(t *testing.T) {
	_, c := newTestCharacter(t)

	c.Statuses = [universe.NumStatuses]float64{20, 8, 20}
	assert.InDelta(t, 0.875, c.Vitality(), 1e-9)

	c.Statuses = [universe.NumStatuses]float64{20, 4, 20}
	assert.InDelta(t, 0.75, c.Vitality(), 1e-9)

	// Stamina under a tenth of the maximum costs 0.45 on its own.
	c.Statuses = [universe.NumStatuses]float64{20, 1, 20}
	assert.InDelta(t, 0.55, c.Vitality(), 1e-9)

	c.Statuses = [universe.NumStatuses]float64{20, 1.99, 20}
	assert.InDelta(t, 0.55, c.Vitality(), 1e-9)

	// From a tenth up to a quarter the malus drops to 0.25.
	c.Statuses = [universe.NumStatuses]float64{20, 2, 20}
	assert.InDelta(t, 0.75, c.Vitality(), 1e-9)

	c.Statuses = [universe.NumStatuses]float64{20, 2.4, 20}
	assert.InDelta(t, 0.75, c.Vitality(), 1e-9)

	c.Statuses = [universe.NumStatuses]float64{20, 1, 1}
	assert.InDelta(t, 0.1, c.Vitality(), 1e-9)

	c.Statuses = [universe.NumStatuses]float64{1, 1, 20}
	assert.InDelta(t, 0.1, c.Vitality(), 1e-9)

	c.Statuses = [universe.NumStatuses]float64{0, 0, 0}
	assert.InDelta(t, 0.1, c.Vitality(), 1e-9)
}

func TestCharacter_Weary(t *testing.T) {
	_, c := newTestCharacter(t)
	c.Weary(3)
	assert.InDelta(t, 17, c.Statuses[universe.StatusStamina], 1e-9)
	assert.InDelta(t, 19, c.Statuses[universe.StatusMoral], 1e-9)
	assert.InDelta(t, 20, c.Statuses[universe.StatusHealth], 1e-9)

	c.Weary(100)
	assert.Zero(t, c.Statuses[universe.StatusStamina])
	assert.Zero(t, c.Statuses[universe.StatusMoral])

	c.Weary(-300)
	assert.Equal(t, StatusMax, c.Statuses[universe.StatusStamina])
	assert.Equal(t, StatusMax, c.Statuses[universe.StatusMoral])
}

func TestCharacter_Train(t *testing.T) {
	_, c := newTestCharacter(t)
	c.Train(skillWoodcutting, 5)
	assert.InDelta(t, 20.1, c.Skills[skillWoodcutting], 1e-9)
	assert.InDelta(t, 19.5, c.Statuses[universe.StatusStamina], 1e-9)

	before := c.Skills[skillWoodcutting]
	c.Train(skillWoodcutting, 0)
	assert.Equal(t, before, c.Skills[skillWoodcutting])
}

func TestCharacter_SkillMultiplier_Equipment(t *testing.T) {
	u, c := newTestCharacter(t)
	assert.InDelta(t, 1.0, c.SkillMultiplier(u, skillWoodcutting), 1e-9)
	assert.InDelta(t, 20.0, c.MaxOf(u, matWood), 1e-9)

	c.Inventory.Add(economy.GoodItem, itemAxe, 1)
	require.True(t, c.Equip(u, itemAxe))
	assert.InDelta(t, 1.5, c.SkillMultiplier(u, skillWoodcutting), 1e-9)
	assert.InDelta(t, 30.0, c.MaxOf(u, matWood), 1e-9)
	assert.Zero(t, c.Inventory.Get(economy.GoodItem, itemAxe))

	require.True(t, c.Unequip(0))
	assert.InDelta(t, 1.0, c.SkillMultiplier(u, skillWoodcutting), 1e-9)
	assert.Equal(t, 1.0, c.Inventory.Get(economy.GoodItem, itemAxe))
	assert.False(t, c.Unequip(0))
}

func TestCharacter_Equip_TwoHanded(t *testing.T) {
	u, c := newTestCharacter(t)
	c.Inventory.Add(economy.GoodItem, itemPickaxe, 1)
	c.Inventory.Add(economy.GoodItem, itemAxe, 1)
	c.Inventory.Add(economy.GoodItem, itemHammer, 1)

	require.True(t, c.Equip(u, itemPickaxe))
	assert.Equal(t, itemPickaxe, c.Equipment[0])
	assert.Equal(t, -1, c.Equipment[1])
	assert.InDelta(t, 1.5, c.SkillMultiplier(u, skillMining), 1e-9)

	// The second hand is reserved by the pickaxe.
	assert.False(t, c.Equip(u, itemAxe))
	assert.Equal(t, 1.0, c.Inventory.Get(economy.GoodItem, itemAxe))

	require.True(t, c.Unequip(0))
	require.True(t, c.Equip(u, itemAxe))
	require.True(t, c.Equip(u, itemHammer))
	// Both hands busy: no room for a two-handed item.
	assert.False(t, c.Equip(u, itemPickaxe))
}

func TestCharacter_Equip_TwoHanded_HoldsCheckedSlot(t *testing.T) {
	u := universe.Default()
	u.Slots = append(u.Slots, universe.Slot{Name: "Third hand", Category: universe.CategoryOneHanded})
	c := NewCharacter(u, 0, 100, 100)
	c.Inventory.Add(economy.GoodItem, itemPickaxe, 1)
	c.Inventory.Add(economy.GoodItem, itemHammer, 1)
	c.Equipment[1] = itemAxe // Right hand free, left hand busy, third hand free

	require.True(t, c.Equip(u, itemPickaxe))
	assert.Equal(t, itemPickaxe, c.Equipment[0])
	assert.Equal(t, 4, c.Reserves[0])
	assert.False(t, c.Equip(u, itemHammer), "third hand is held by the pickaxe")

	require.True(t, c.Unequip(0))
	assert.Equal(t, -1, c.Reserves[0])
	require.True(t, c.Equip(u, itemHammer))
	assert.Equal(t, itemHammer, c.Equipment[0])
}

func TestCharacter_Wears(t *testing.T) {
	u, c := newTestCharacter(t)
	c.Inventory.Add(economy.GoodItem, itemSandals, 1)
	assert.False(t, c.Wears(itemSandals))
	require.True(t, c.Equip(u, itemSandals))
	assert.True(t, c.Wears(itemSandals))
}

func TestCharacter_Equip_OtherCategory(t *testing.T) {
	u, c := newTestCharacter(t)
	assert.False(t, c.Equip(u, itemSandals), "not held")

	c.Inventory.Add(economy.GoodItem, itemSandals, 2)
	require.True(t, c.Equip(u, itemSandals))
	assert.Equal(t, itemSandals, c.Equipment[2])
	assert.False(t, c.Equip(u, itemSandals), "feet slot taken")
	assert.Equal(t, 1.0, c.Inventory.Get(economy.GoodItem, itemSandals))
}

func TestCharacter_Eat(t *testing.T) {
	u, c := newTestCharacter(t)
	c.Statuses = [universe.NumStatuses]float64{10, 10, 10}

	assert.False(t, c.Eat(u, matBread), "nothing held")
	c.Inventory.Add(economy.GoodMaterial, matBread, 1)
	require.True(t, c.Eat(u, matBread))
	assert.Equal(t, [universe.NumStatuses]float64{11, 14, 12}, c.Statuses)
	assert.Zero(t, c.Inventory.Get(economy.GoodMaterial, matBread))

	c.Inventory.Add(economy.GoodMaterial, matWood, 5)
	assert.False(t, c.Eat(u, matWood), "wood is not edible")

	c.Statuses[universe.StatusStamina] = 19.5
	c.Inventory.Add(economy.GoodMaterial, matBerries, 1)
	require.True(t, c.Eat(u, matBerries))
	assert.Equal(t, StatusMax, c.Statuses[universe.StatusStamina])
}

func TestCharacter_Forget(t *testing.T) {
	_, c := newTestCharacter(t)
	h := world.Handle{Kind: world.KindBuilding, Slot: 2, Gen: 1}
	c.SetGoalObject(h, 50, 60)
	c.Home = h
	c.InBuilding = h

	c.Forget(world.Handle{Kind: world.KindBuilding, Slot: 2, Gen: 2})
	assert.Equal(t, h, c.Home)

	c.Forget(h)
	assert.True(t, c.Goal.Target.IsNone())
	assert.True(t, c.Home.IsNone())
	assert.True(t, c.InBuilding.IsNone())
	assert.Equal(t, 50.0, c.Goal.X)
}

func TestSpawner_Spawn(t *testing.T) {
	u := universe.Default()
	s := NewSpawner(rand.New(rand.NewSource(1)))
	a := s.Spawn(u, 1, 2)
	b := s.Spawn(u, 3, 4)
	assert.Equal(t, 0, a.ID)
	assert.Equal(t, 1, b.ID)
	assert.NotEmpty(t, a.Name)
	assert.Equal(t, 3.0, b.X)
}
