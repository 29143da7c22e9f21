package pack

import (
	"math"

	"wolfden/geom"
	"wolfden/rng"
	"wolfden/wolf"
)

func cos32(a float32) float32 { return float32(math.Cos(float64(a))) }
func sin32(a float32) float32 { return float32(math.Sin(float64(a))) }

// AlphaAbility enumerates the alpha's priority-ordered ability choices
// (spec.md §4.F).
type AlphaAbility int

const (
	RallyPack AlphaAbility = iota
	CoordinatedStrike
	Intimidate
	CallReinforcements
	BerserkRage
)

var abilityCooldowns = map[AlphaAbility]float32{
	RallyPack:          10,
	CoordinatedStrike:  15,
	Intimidate:         12,
	CallReinforcements: 20,
	BerserkRage:        30,
}

// updateAlpha selects the alpha each tick and dispatches its highest
// priority ready ability; on alpha death, lets a surviving wolf emit a
// single Mourning howl.
func (c *Controller) updateAlpha(simTime float32, stream *rng.Stream) {
	prevAlpha := c.AlphaIndex
	c.AlphaIndex = -1

	bestScore := float32(-1)
	for _, w := range c.ActiveWolves() {
		if !(w.Health > 0.8 && w.Aggression > 0.6 && w.Intelligence > 0.6) {
			continue
		}
		score := w.Health + w.Aggression + w.Intelligence + w.Coordination
		if score > bestScore {
			bestScore = score
			c.AlphaIndex = w.ID()
		}
	}

	if prevAlpha >= 0 && !c.Wolves[prevAlpha].Alive() && c.alphaMournedFor != prevAlpha {
		for _, w := range c.ActiveWolves() {
			w.StateVal = wolf.Howl
			break
		}
		c.alphaMournedFor = prevAlpha
	}

	if c.AlphaIndex < 0 {
		return
	}
	alpha := c.Wolves[c.AlphaIndex]

	for _, w := range c.ActiveWolves() {
		if w == alpha {
			continue
		}
		if geom.Distance(w.Pos, alpha.Pos) <= alphaAuraRange {
			w.Coordination = minF32(1, w.Coordination+0.05)
		}
	}

	c.dispatchAlphaAbility(alpha, simTime, stream)
}

func (c *Controller) dispatchAlphaAbility(alpha *wolf.Wolf, simTime float32, stream *rng.Stream) {
	ready := func(a AlphaAbility) bool {
		return simTime >= c.AlphaCooldowns[a]
	}
	fire := func(a AlphaAbility) {
		c.AlphaCooldowns[a] = simTime + abilityCooldowns[a]
	}

	switch {
	case ready(CallReinforcements) && len(c.ActiveWolves()) < 6:
		for s := range c.Slots {
			if !c.Slots[s].Alive {
				c.SpawnPack(s, alpha.Pos, 2, stream)
				break
			}
		}
		fire(CallReinforcements)
	case ready(BerserkRage) && c.Morale > 0.7:
		c.EnrageActive = true
		c.EnrageEndTime = simTime + 10
		fire(BerserkRage)
	case ready(CoordinatedStrike):
		for _, w := range c.ActiveWolves() {
			w.Coordination = minF32(1, w.Coordination+0.15)
		}
		fire(CoordinatedStrike)
	case ready(RallyPack):
		for _, w := range c.ActiveWolves() {
			w.Morale = minF32(1, w.Morale+0.1)
		}
		fire(RallyPack)
	case ready(Intimidate):
		fire(Intimidate)
	}

	if simTime >= c.EnrageEndTime {
		c.EnrageActive = false
	}
}

// IntimidateActive reports whether the alpha's Intimidate ability is
// currently suppressing the player's stamina regen within range 0.15.
func (c *Controller) IntimidateActive(playerPos geom.Vec2) bool {
	if c.AlphaIndex < 0 {
		return false
	}
	alpha := c.Wolves[c.AlphaIndex]
	if !alpha.Alive() {
		return false
	}
	return geom.Distance(alpha.Pos, playerPos) <= 0.15 && c.AlphaCooldowns[Intimidate] > 0
}
