package runloop

import "wolfden/rng"

// ShopItemKind is the 30/25/20/15/10-weighted shop catalogue category
// (spec.md §4.H "CashOut phase").
type ShopItemKind int

const (
	ShopWeapon ShopItemKind = iota
	ShopArmor
	ShopConsumable
	ShopBlessing
	ShopMystery
)

var shopWeights = []struct {
	Kind   ShopItemKind
	Weight int
}{
	{ShopWeapon, 30}, {ShopArmor, 25}, {ShopConsumable, 20}, {ShopBlessing, 15}, {ShopMystery, 10},
}

// ShopItem is one of the 3-5 generated CashOut offers.
type ShopItem struct {
	Kind        ShopItemKind
	Power       float32
	GoldPrice   float32
	EssencePrice float32
	Purchased   bool
}

// ForgeOption is one of the Sharpen/Reinforce/Enchant/Reroll actions.
type ForgeOption int

const (
	ForgeSharpen ForgeOption = iota
	ForgeReinforce
	ForgeEnchant
	ForgeReroll
)

var forgeSuccessChance = map[ForgeOption]float32{
	ForgeSharpen:   0.8,
	ForgeReinforce: 0.85,
	ForgeEnchant:   0.7,
	ForgeReroll:    0.6,
}

// ShopState holds every field active only during PhaseCashOut.
type ShopState struct {
	Items         []ShopItem
	HealGoldCost  float32
	HealEssenceCost float32
	HealUses      int
}

func weightedShopKind(stream *rng.Stream) ShopItemKind {
	total := 0
	for _, w := range shopWeights {
		total += w.Weight
	}
	r := stream.IntN(total)
	acc := 0
	for _, w := range shopWeights {
		acc += w.Weight
		if r < acc {
			return w.Kind
		}
	}
	return ShopMystery
}

// enterCashOut generates 3-5 shop items and resets heal pricing
// (spec.md §4.H "CashOut phase"), then enters PhaseCashOut.
func (c *Controller) enterCashOut(stream *rng.Stream) {
	n := 3 + stream.IntN(3)
	items := make([]ShopItem, n)
	for i := 0; i < n; i++ {
		power := 0.3 + stream.F01()*0.7
		items[i] = ShopItem{
			Kind:         weightedShopKind(stream),
			Power:        power,
			GoldPrice:    20 + power*80,
			EssencePrice: power * 10,
		}
	}
	c.Shop = ShopState{
		Items:           items,
		HealGoldCost:    50,
		HealEssenceCost: 5,
	}
	c.Phase = PhaseCashOut
}

// BuyShopItem implements the setter of the same name (spec.md §6):
// returns 1 and deducts price on success, 0 if unaffordable/out of range.
func (c *Controller) BuyShopItem(i int) (ShopItem, int) {
	if i < 0 || i >= len(c.Shop.Items) {
		return ShopItem{}, 0
	}
	item := &c.Shop.Items[i]
	if item.Purchased || c.Gold < item.GoldPrice || c.Essence < item.EssencePrice {
		return ShopItem{}, 0
	}
	c.Gold -= item.GoldPrice
	c.Essence -= item.EssencePrice
	item.Purchased = true
	return *item, 1
}

// BuyHeal implements the setter of the same name: on success costs
// multiply by (1.5, 1.3) per use.
func (c *Controller) BuyHeal() int {
	if c.Gold < c.Shop.HealGoldCost || c.Essence < c.Shop.HealEssenceCost {
		return 0
	}
	c.Gold -= c.Shop.HealGoldCost
	c.Essence -= c.Shop.HealEssenceCost
	c.Shop.HealGoldCost *= 1.5
	c.Shop.HealEssenceCost *= 1.3
	c.Shop.HealUses++
	return 1
}

// RerollShop implements the setter of the same name: regenerates the
// unpurchased item slots.
func (c *Controller) RerollShop(stream *rng.Stream) int {
	for i := range c.Shop.Items {
		if c.Shop.Items[i].Purchased {
			continue
		}
		power := 0.3 + stream.F01()*0.7
		c.Shop.Items[i] = ShopItem{
			Kind:         weightedShopKind(stream),
			Power:        power,
			GoldPrice:    20 + power*80,
			EssencePrice: power * 10,
		}
	}
	return 1
}

// UseForgeOption implements the setter of the same name: rolls the
// option's success chance, returning 1/0 for success/failure regardless
// (the roll itself always consumes the attempt).
func (c *Controller) UseForgeOption(i int, stream *rng.Stream) int {
	opt := ForgeOption(i)
	chance, ok := forgeSuccessChance[opt]
	if !ok {
		return 0
	}
	if stream.F01() < chance {
		return 1
	}
	return 0
}

// ExitCashOut implements exit_cashout(): clears the shop and leaves
// PhaseCashOut for PhaseExplore unconditionally. Step calls it on its own
// once gold<20 and essence<3 (spec.md §4.H).
func (c *Controller) ExitCashOut() {
	c.Shop = ShopState{}
	c.Phase = PhaseExplore
}
