package runloop

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wolfden/rng"
)

func TestRewardKillAdvancesToChoose(t *testing.T) {
	Convey("3 kills since the last choice enters PhaseChoose on the next Step", t, func() {
		c := NewController()
		stream := rng.New(1)
		c.RewardKill(false, stream)
		c.RewardKill(false, stream)
		c.RewardKill(false, stream)
		c.Step(0, 0.1, ElementNone, 1, stream)
		So(c.Phase, ShouldEqual, PhaseChoose)
		So(c.Offers[0].Filled || c.Offers[1].Filled || c.Offers[2].Filled, ShouldBeTrue)
	})
}

func TestCommitChoiceMarksTaken(t *testing.T) {
	Convey("CommitChoice marks the id taken and advances to PhasePowerUp", t, func() {
		c := NewController()
		stream := rng.New(2)
		c.enterChoose(ElementNone, stream)
		id := -1
		for _, o := range c.Offers {
			if o.Filled {
				id = o.ID
				break
			}
		}
		So(id, ShouldBeGreaterThanOrEqualTo, 0)

		_, ok := c.CommitChoice(id, 0)
		So(ok, ShouldEqual, 1)
		So(c.Phase, ShouldEqual, PhasePowerUp)

		_, ok2 := c.CommitChoice(id, 0)
		So(ok2, ShouldEqual, 0)
	})
}

func TestPityUpgradesRarity(t *testing.T) {
	Convey("3 choose rounds with no rare+ upgrades a slot to Rare", t, func() {
		c := NewController()
		stream := rng.New(99)
		for i := 0; i < 3; i++ {
			c.enterChoose(ElementNone, stream)
			c.Offers = [3]Offer{}
		}
		So(c.RoundsSinceRare, ShouldBeLessThanOrEqualTo, 3)

		c.RoundsSinceRare = 3
		c.enterChoose(ElementNone, stream)
		rareOffered := false
		for _, o := range c.Offers {
			if o.Filled && Pool[o.ID].Rarity >= RarityRare {
				rareOffered = true
			}
		}
		So(rareOffered, ShouldBeTrue)
		So(c.RoundsSinceRare, ShouldEqual, 0)
	})
}

func TestRiskEscapeRequiresStamina(t *testing.T) {
	Convey("EscapeRisk", t, func() {
		c := NewController()
		stream := rng.New(3)
		c.TotalChoicesOffered = 10
		c.enterRisk(0, stream)
		So(c.Phase, ShouldEqual, PhaseRisk)

		Convey("fails below the stamina threshold", func() {
			ok := c.EscapeRisk(0)
			So(ok, ShouldEqual, 0)
			So(c.Phase, ShouldEqual, PhaseRisk)
		})

		Convey("succeeds and resets risk_multiplier at sufficient stamina", func() {
			ok := c.EscapeRisk(1)
			So(ok, ShouldEqual, 1)
			So(c.Phase, ShouldEqual, PhaseExplore)
			So(c.RiskMultiplier, ShouldEqual, float32(1))
		})
	})
}

func TestEscalateLevelRisesAndCaps(t *testing.T) {
	Convey("EscalateState.Update rises at 0.01/s and caps at 1", t, func() {
		e := newEscalateState()
		e.Update(50)
		So(e.Level, ShouldEqual, float32(0.5))
		e.Update(1000)
		So(e.Level, ShouldEqual, float32(1))
	})
}

func TestCashOutShopAndHeal(t *testing.T) {
	Convey("CashOut shop", t, func() {
		c := NewController()
		stream := rng.New(5)
		c.Gold = 1000
		c.Essence = 100
		c.enterCashOut(stream)
		So(len(c.Shop.Items), ShouldBeBetweenOrEqual, 3, 5)

		item, ok := c.BuyShopItem(0)
		So(ok, ShouldEqual, 1)
		So(item.Purchased, ShouldBeTrue)

		_, again := c.BuyShopItem(0)
		So(again, ShouldEqual, 0)

		ok = c.BuyHeal()
		So(ok, ShouldEqual, 1)
		So(c.Shop.HealGoldCost, ShouldEqual, float32(75))
	})

	Convey("ExitCashOut fires once gold and essence both run low", t, func() {
		c := NewController()
		c.Gold, c.Essence = 10, 1
		c.Phase = PhaseCashOut
		c.Step(0, 0.1, ElementNone, 1, rng.New(1))
		So(c.Phase, ShouldEqual, PhaseExplore)
	})
}

func TestNextRoomTriggersEscalate(t *testing.T) {
	Convey("roomsPerEscalation rooms without a choose enters PhaseEscalate", t, func() {
		c := NewController()
		stream := rng.New(7)
		for i := 0; i < roomsPerEscalation; i++ {
			c.NextRoom()
		}
		c.Step(0, 0.1, ElementNone, 1, stream)
		So(c.Phase, ShouldEqual, PhaseEscalate)
	})
}
