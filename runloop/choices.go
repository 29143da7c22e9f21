package runloop

import "wolfden/rng"

// ChoiceType is the slot-0/1/2 category a choice belongs to (spec.md §4.H).
type ChoiceType int

const (
	ChoicePassive ChoiceType = iota
	ChoiceDefensive
	ChoiceActive
	ChoiceOffensive
	ChoiceEconomy
	ChoiceUtility
)

// Rarity gates the 50/30/15/5 sampling weights.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityLegendary
)

// EffectTag bitmasks the stat the committed choice pushes into the player
// (spec.md §4.H "applies tagged effects").
type EffectTag uint32

const (
	EffectStaminaCap EffectTag = 1 << iota
	EffectSpeed
	EffectDamage
	EffectDefense
	EffectLifesteal
	EffectTreasure
)

// Choice is one static catalogue entry (spec.md §3 "~18 choices").
type Choice struct {
	ID      int
	Type    ChoiceType
	Rarity  Rarity
	Tags    EffectTag
	Element ElementalTag
	Magnitude float32
}

// Pool is the ~18-entry static catalogue (spec.md §3 "Choice pool").
var Pool = []Choice{
	{ID: 0, Type: ChoicePassive, Rarity: RarityCommon, Tags: EffectStaminaCap, Magnitude: 0.15},
	{ID: 1, Type: ChoicePassive, Rarity: RarityCommon, Tags: EffectDefense, Magnitude: 0.1},
	{ID: 2, Type: ChoiceDefensive, Rarity: RarityUncommon, Tags: EffectDefense, Magnitude: 0.2},
	{ID: 3, Type: ChoiceDefensive, Rarity: RarityRare, Tags: EffectDefense | EffectStaminaCap, Magnitude: 0.3},
	{ID: 4, Type: ChoiceDefensive, Rarity: RarityLegendary, Tags: EffectDefense, Magnitude: 0.5, Element: ElementIce},
	{ID: 5, Type: ChoiceActive, Rarity: RarityCommon, Tags: EffectDamage, Magnitude: 0.1},
	{ID: 6, Type: ChoiceActive, Rarity: RarityUncommon, Tags: EffectDamage, Magnitude: 0.2, Element: ElementFire},
	{ID: 7, Type: ChoiceActive, Rarity: RarityRare, Tags: EffectDamage | EffectSpeed, Magnitude: 0.3},
	{ID: 8, Type: ChoiceActive, Rarity: RarityLegendary, Tags: EffectDamage, Magnitude: 0.6, Element: ElementShock},
	{ID: 9, Type: ChoiceOffensive, Rarity: RarityCommon, Tags: EffectSpeed, Magnitude: 0.1},
	{ID: 10, Type: ChoiceOffensive, Rarity: RarityUncommon, Tags: EffectSpeed, Magnitude: 0.2},
	{ID: 11, Type: ChoiceOffensive, Rarity: RarityRare, Tags: EffectLifesteal, Magnitude: 0.15, Element: ElementPoison},
	{ID: 12, Type: ChoiceEconomy, Rarity: RarityCommon, Tags: EffectTreasure, Magnitude: 0.2},
	{ID: 13, Type: ChoiceEconomy, Rarity: RarityUncommon, Tags: EffectTreasure, Magnitude: 0.35},
	{ID: 14, Type: ChoiceEconomy, Rarity: RarityRare, Tags: EffectTreasure | EffectLifesteal, Magnitude: 0.3},
	{ID: 15, Type: ChoiceUtility, Rarity: RarityCommon, Tags: EffectStaminaCap, Magnitude: 0.1},
	{ID: 16, Type: ChoiceUtility, Rarity: RarityUncommon, Tags: EffectSpeed | EffectStaminaCap, Magnitude: 0.15},
	{ID: 17, Type: ChoiceUtility, Rarity: RarityLegendary, Tags: EffectLifesteal, Magnitude: 0.5, Element: ElementFire},
}

var slotTypeOptions = [3][2]ChoiceType{
	{ChoicePassive, ChoiceDefensive},
	{ChoiceActive, ChoiceOffensive},
	{ChoiceEconomy, ChoiceUtility},
}

func sampleRarity(stream *rng.Stream) Rarity {
	r := stream.F01()
	switch {
	case r < 0.50:
		return RarityCommon
	case r < 0.80:
		return RarityUncommon
	case r < 0.95:
		return RarityRare
	default:
		return RarityLegendary
	}
}

func (c *Controller) isTaken(id int) bool {
	for _, t := range c.Taken {
		if t == id {
			return true
		}
	}
	return false
}

func (c *Controller) eligible(slot int, rarity Rarity, playerTag ElementalTag) []Choice {
	types := slotTypeOptions[slot]
	var out []Choice
	for _, ch := range Pool {
		if c.isTaken(ch.ID) {
			continue
		}
		if ch.Rarity != rarity {
			continue
		}
		if ch.Type != types[0] && ch.Type != types[1] {
			continue
		}
		if playerTag != ElementNone && ch.Element != ElementNone && ch.Element != playerTag {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// enterChoose fills the 3 offer slots, applying pity rules, and enters
// PhaseChoose (spec.md §4.H "Choice generation").
func (c *Controller) enterChoose(playerTag ElementalTag, stream *rng.Stream) {
	c.RoundNumber++
	anyRareOrBetter := false
	pityApplied := false

	for slot := 0; slot < 3; slot++ {
		rarity := sampleRarity(stream)

		if !pityApplied && c.RoundsSinceRare >= 3 && rarity < RarityRare {
			rarity = RarityRare
			pityApplied = true
		}
		if c.LegendaryGrantedBy == 0 && c.RoundNumber >= 10 && rarity < RarityLegendary {
			rarity = RarityLegendary
		}

		pick := c.eligible(slot, rarity, playerTag)
		for rarity > RarityCommon && len(pick) == 0 {
			rarity--
			pick = c.eligible(slot, rarity, playerTag)
		}

		if len(pick) == 0 {
			c.Offers[slot] = Offer{}
			continue
		}
		chosen := pick[stream.IntN(len(pick))]
		c.Offers[slot] = Offer{ID: chosen.ID, Filled: true}
		if rarity >= RarityRare {
			anyRareOrBetter = true
		}
		if rarity == RarityLegendary {
			c.LegendaryGrantedBy = c.RoundNumber
		}
	}

	if anyRareOrBetter {
		c.RoundsSinceRare = 0
	} else {
		c.RoundsSinceRare++
	}

	c.TotalChoicesOffered += 3
	c.WolfKillsSinceChoice = 0
	c.Phase = PhaseChoose
}

// ChoiceEffect is the resolved set of multiplier deltas commit_choice
// applies; sim.World pushes these onto the player's multiplier fields.
type ChoiceEffect struct {
	Tags      EffectTag
	Magnitude float32
	Element   ElementalTag
}

// CommitChoice implements the setter of the same name (spec.md §6):
// marks id taken, advances phase, and returns the effect to apply plus
// 1 on success or the zero value and 0 if id was not a current offer.
func (c *Controller) CommitChoice(id int, simTime float32) (ChoiceEffect, int) {
	offered := false
	for _, o := range c.Offers {
		if o.Filled && o.ID == id {
			offered = true
			break
		}
	}
	if !offered {
		return ChoiceEffect{}, 0
	}
	var chosen Choice
	for _, ch := range Pool {
		if ch.ID == id {
			chosen = ch
			break
		}
	}
	if len(c.Taken) < maxTakenChoices {
		c.Taken = append(c.Taken, id)
	}
	c.Offers = [3]Offer{}
	c.Phase = PhasePowerUp
	c.powerUpEnteredAt = simTime
	return ChoiceEffect{Tags: chosen.Tags, Magnitude: chosen.Magnitude, Element: chosen.Element}, 1
}
