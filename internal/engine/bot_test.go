package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hearthold/internal/economy"
	"github.com/talgya/hearthold/internal/universe"
)

func TestBot_Potter_FullCycle(t *testing.T) {
	s := newTestSim(t)
	s.AddMine(mineRocks, 100, 100)
	s.AddMine(mineClayPit, 300, 100)
	s.AddMine(mineCoalSeam, 300, 300)
	c := s.AddCharacter(100, 100)
	bot := NewBot(universe.BotProfile{Name: "Potter", Building: buildingKiln})
	s.SetController(c, bot)

	steps := map[BotStep]bool{}
	var site *Building
	for i := 0; i < 1500; i++ {
		s.DoRound(1)
		steps[bot.Step] = true
		if site == nil {
			site = s.Building(bot.Site)
		}
		if site != nil && site.Complete() &&
			c.Inventory.Get(economy.GoodMaterial, matBrick)+site.Inventory.Get(economy.GoodMaterial, matBrick) >= 1 {
			break
		}
	}

	require.NotNil(t, site, "bot placed its building")
	assert.Equal(t, CharacterHandle(c), site.Owner)
	assert.Equal(t, buildingKiln, site.Type)
	assert.True(t, site.Complete())
	assert.Equal(t, site.Handle, c.Home)
	assert.True(t, steps[BotWork])
	bricks := c.Inventory.Get(economy.GoodMaterial, matBrick) + site.Inventory.Get(economy.GoodMaterial, matBrick)
	assert.GreaterOrEqual(t, bricks, 1.0)
}

func TestBot_SiteDestroyed_RestartsCollecting(t *testing.T) {
	s := newTestSim(t)
	s.AddMine(mineRocks, 100, 100)
	c := s.AddCharacter(300, 300)
	bot := NewBot(universe.BotProfile{Name: "Potter", Building: buildingKiln})
	s.SetController(c, bot)

	b := ownedBuilding(s, c, buildingKiln, 300, 300)
	bot.Site = b.Handle
	bot.Step = BotWork
	s.Attack(b, MaxLife)

	s.DoRound(1)
	assert.Equal(t, BotCollect, bot.Step)
	assert.True(t, bot.Site.IsNone())
}

func TestBot_EatsWhenHungry(t *testing.T) {
	s := newTestSim(t)
	c := s.AddCharacter(300, 300)
	s.SetController(c, NewBot(universe.BotProfile{Building: buildingKiln}))
	c.Statuses[universe.StatusStamina] = 5
	c.Inventory.Add(economy.GoodMaterial, matBread, 1)

	s.DoRound(0)
	assert.Zero(t, c.Inventory.Get(economy.GoodMaterial, matBread))
	assert.Equal(t, 9.0, c.Statuses[universe.StatusStamina])
}

func TestBot_Collect_GoesToMine(t *testing.T) {
	s := newTestSim(t)
	rocks := s.AddMine(mineRocks, 500, 500)
	c := s.AddCharacter(100, 100)
	bot := NewBot(universe.BotProfile{Building: buildingKiln})
	s.SetController(c, bot)

	s.DoRound(0.1)
	assert.Equal(t, rocks.Handle, c.Goal.Target)
	assert.Equal(t, BotCollect, bot.Step)
}

func TestSimulation_SetController_Detach(t *testing.T) {
	s := newTestSim(t)
	c := s.AddCharacter(1, 1)
	s.SetController(c, NewBot(universe.BotProfile{}))
	require.NotNil(t, s.Controller(c))
	s.SetController(c, nil)
	assert.Nil(t, s.Controller(c))
}

// More default universe ids for the trading bots.
const (
	buildingSawmill  = 1
	buildingWorkshop = 5
	matFibre         = 5
	itemSandals      = 3
)

func TestBot_BuysAnotherBotsOutput(t *testing.T) {
	s := newTestSim(t)

	woodsman := s.AddCharacter(400, 400)
	sawmill := ownedBuilding(s, woodsman, buildingSawmill, 400, 400)
	sawmill.Inventory.Add(economy.GoodMaterial, matPlank, 10)
	sawmill.Update()
	seller := NewBot(universe.BotProfile{Name: "Woodsman", Building: buildingSawmill})
	seller.Site, seller.Step = sawmill.Handle, BotWork
	s.SetController(woodsman, seller)

	carpenter := s.AddCharacter(100, 100)
	carpenter.Inventory.Add(economy.GoodMaterial, matWood, 12)
	buyer := NewBot(universe.BotProfile{Name: "Carpenter", Building: buildingWorkshop})
	s.SetController(carpenter, buyer)

	for i := 0; i < 20 && carpenter.Inventory.Get(economy.GoodMaterial, matPlank) < 4; i++ {
		s.DoRound(1)
	}

	require.InDelta(t, 4, carpenter.Inventory.Get(economy.GoodMaterial, matPlank), 1e-9)
	price := s.U.Materials[matPlank].Price
	assert.InDelta(t, s.U.StartMoney-4*price, carpenter.Inventory.Money, 1e-9)
	assert.InDelta(t, s.U.StartMoney+4*price, woodsman.Inventory.Money+sawmill.Inventory.Money, 1e-9)
	assert.InDelta(t, 6, sawmill.Inventory.Get(economy.GoodMaterial, matPlank), 1e-9)

	// With the cost in hand the buyer moves on to building.
	s.DoRound(1)
	assert.Equal(t, BotBuild, buyer.Step)
	s.DoRound(1)
	assert.Equal(t, BotWork, buyer.Step)
	site := s.Building(buyer.Site)
	require.NotNil(t, site)
	assert.Equal(t, buildingWorkshop, site.Type)
}

func TestBot_Collect_NoShopWithoutMoney(t *testing.T) {
	s := newTestSim(t)
	owner := s.AddCharacter(400, 400)
	sawmill := ownedBuilding(s, owner, buildingSawmill, 400, 400)
	sawmill.Inventory.Add(economy.GoodMaterial, matPlank, 10)
	sawmill.Update()

	c := s.AddCharacter(100, 100)
	c.Inventory.Money = 1
	c.Inventory.Add(economy.GoodMaterial, matWood, 12)
	s.SetController(c, NewBot(universe.BotProfile{Building: buildingWorkshop}))

	assert.Nil(t, s.FindShop(c, economy.GoodMaterial, matPlank))
	s.DoRound(1)
	assert.True(t, c.Goal.Target.IsNone())
	assert.Zero(t, sawmill.Inventory.Money)
}

func TestSimulation_FindShop(t *testing.T) {
	s := newTestSim(t)
	owner := s.AddCharacter(100, 100)
	near := ownedBuilding(s, owner, buildingSawmill, 200, 100)
	far := ownedBuilding(s, owner, buildingSawmill, 500, 100)
	c := s.AddCharacter(100, 100)

	assert.Nil(t, s.FindShop(c, economy.GoodMaterial, matPlank), "nothing on sale")

	far.Inventory.Add(economy.GoodMaterial, matPlank, 2)
	far.Update()
	near.Inventory.Add(economy.GoodMaterial, matPlank, 0.5)
	near.Update()
	assert.Same(t, far, s.FindShop(c, economy.GoodMaterial, matPlank), "under one unit is not for sale")

	near.Inventory.Add(economy.GoodMaterial, matPlank, 1)
	near.Update()
	assert.Same(t, near, s.FindShop(c, economy.GoodMaterial, matPlank))
	assert.Nil(t, s.FindShop(owner, economy.GoodMaterial, matPlank), "own buildings are not shops")
	assert.Nil(t, s.FindShop(c, economy.GoodMaterial, matWood), "sawmills do not sell wood")
}

func TestBot_Wish_CraftsAndEquips(t *testing.T) {
	s := newTestSim(t)
	c := s.AddCharacter(300, 300)
	workshop := ownedBuilding(s, c, buildingWorkshop, 300, 300)
	c.Inventory.Add(economy.GoodMaterial, matFibre, 3)
	c.Inventory.Add(economy.GoodMaterial, matPlank, 1)

	bot := NewBot(universe.BotProfile{Name: "Carpenter", Building: buildingWorkshop, Wishlist: []int{itemSandals}})
	bot.Site, bot.Step = workshop.Handle, BotWork
	s.SetController(c, bot)

	s.DoRound(1)
	assert.Equal(t, []int{0}, workshop.Queue)

	for i := 0; i < 12 && !c.Wears(itemSandals); i++ {
		s.DoRound(1)
	}
	assert.True(t, c.Wears(itemSandals))
	assert.Zero(t, c.Inventory.Get(economy.GoodItem, itemSandals))
	assert.Empty(t, workshop.Queue)
	assert.Equal(t, 1, s.Stats.Crafted)

	// Nothing left to wish for: the bot stays at its building.
	s.DoRound(1)
	assert.Empty(t, workshop.Queue)
	assert.Equal(t, workshop.Handle, c.Goal.Target)
}

func TestBot_Wish_BuysWhatItCannotCraft(t *testing.T) {
	s := newTestSim(t)
	maker := s.AddCharacter(400, 100)
	workshop := ownedBuilding(s, maker, buildingWorkshop, 400, 100)
	workshop.Inventory.Add(economy.GoodItem, itemSandals, 2)
	workshop.Update()

	c := s.AddCharacter(100, 100)
	sawmill := ownedBuilding(s, c, buildingSawmill, 100, 100)
	bot := NewBot(universe.BotProfile{Name: "Woodsman", Building: buildingSawmill, Wishlist: []int{itemSandals}})
	bot.Site, bot.Step = sawmill.Handle, BotWork
	s.SetController(c, bot)

	for i := 0; i < 20 && !c.Wears(itemSandals); i++ {
		s.DoRound(1)
	}
	require.True(t, c.Wears(itemSandals))
	price := s.U.Items[itemSandals].Price
	assert.InDelta(t, s.U.StartMoney-price, c.Inventory.Money, 1e-9)
	assert.InDelta(t, price, workshop.Inventory.Money, 1e-9)
	assert.InDelta(t, 1, workshop.Inventory.Get(economy.GoodItem, itemSandals), 1e-9)
}
