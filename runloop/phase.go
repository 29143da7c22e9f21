// Package runloop implements component I: the run-phase state machine
// and choice/economy loop (spec.md §4.H). It owns no player or wolf
// state directly — sim.World calls Controller.Step once per tick,
// passing in the player/pack facts the phase logic needs and receiving
// back reward/transition side effects to apply.
package runloop

import "wolfden/rng"

// Phase is the run-level state machine (spec.md §3).
type Phase int

const (
	PhaseExplore Phase = iota
	PhaseFight
	PhaseChoose
	PhasePowerUp
	PhaseRisk
	PhaseEscalate
	PhaseCashOut
	PhaseReset
)

const maxTakenChoices = 32

// Controller owns every run-economy field outside the player/pack/grid
// (spec.md §3 "Choice pool (run economy)" plus the Risk/Escalate/CashOut
// state each phase needs).
type Controller struct {
	Phase               Phase
	RoomCount           uint32
	WolfKillsSinceChoice uint32
	TotalChoicesOffered int
	RoundsSinceRare     int
	LegendaryGrantedBy  int // round number a legendary was first offered, 0 if none yet
	RoundNumber         int

	Gold, Essence   float32
	RiskMultiplier  float32

	Taken  []int
	Offers [3]Offer

	Risk     RiskState
	Escalate EscalateState
	Shop     ShopState

	roomsSinceEscalate int
	roomsSinceCashOut  int
	powerUpEnteredAt   float32
}

const (
	roomsPerEscalation = 4
	roomsPerCashOut     = 8
	powerUpDuration    float32 = 1.5
)

// Offer is one of the 3 slots shown during PhaseChoose.
type Offer struct {
	ID     int
	Filled bool
}

// NewController returns a controller reset to run start (spec.md §6
// init_run: "reset all timers to -1000" — economy counters reset to 0/1
// since they have no time-based semantics).
func NewController() *Controller {
	return &Controller{
		Phase:          PhaseExplore,
		RiskMultiplier: 1,
		Taken:          make([]int, 0, maxTakenChoices),
		Escalate:       newEscalateState(),
	}
}

// Step advances the phase FSM by dt, given the facts from outside this
// package it needs to make transition decisions (spec.md §5 step 13).
func (c *Controller) Step(simTime, dt float32, playerTag ElementalTag, playerStamina float32, stream *rng.Stream) {
	switch c.Phase {
	case PhaseExplore, PhaseFight:
		switch {
		case c.WolfKillsSinceChoice >= 3:
			c.enterChoose(playerTag, stream)
		case c.roomsSinceEscalate >= roomsPerEscalation:
			c.roomsSinceEscalate = 0
			c.enterEscalate(stream)
		case c.roomsSinceCashOut >= roomsPerCashOut:
			c.roomsSinceCashOut = 0
			c.enterCashOut(stream)
		case c.TotalChoicesOffered >= 9 && stream.F01() < 0.3:
			c.enterRisk(simTime, stream)
		}
	case PhaseChoose:
		// Waits for commit_choice (see choices.go); no time-based exit.
	case PhasePowerUp:
		if simTime-c.powerUpEnteredAt >= powerUpDuration {
			c.Phase = PhaseExplore
		}
	case PhaseRisk:
		c.Risk.Update(simTime, dt)
		if c.Risk.EventKind == RiskTimedChallenge && simTime >= c.Risk.EndTime {
			c.escapeRiskNow()
		}
	case PhaseEscalate:
		c.Escalate.Update(dt)
	case PhaseCashOut:
		if c.Gold < 20 && c.Essence < 3 {
			c.ExitCashOut()
		}
	case PhaseReset:
		c.Phase = PhaseExplore
	}
}

// NextRoom advances room_count when the player reaches an exit; it feeds
// the Escalate/CashOut room-cadence counters (an implementer decision —
// see DESIGN.md's Open Question log for spec.md §4.H's silence on exact
// Escalate/CashOut entry triggers).
func (c *Controller) NextRoom() {
	c.RoomCount++
	c.roomsSinceEscalate++
	c.roomsSinceCashOut++
}

// ForcePhaseTransition implements the setter of the same name (spec.md §6).
func (c *Controller) ForcePhaseTransition(phaseID int) int {
	if phaseID < 0 || phaseID > int(PhaseReset) {
		return 0
	}
	c.Phase = Phase(phaseID)
	return 1
}

// RewardKill applies a wolf kill's gold/essence reward and advances the
// choose-counter (spec.md §4.H "Rewards").
func (c *Controller) RewardKill(eliteActive bool, stream *rng.Stream) {
	c.Gold += (10 + stream.F01()*5) * c.RiskMultiplier
	if eliteActive {
		c.Essence += 2 + stream.F01()*2
	}
	c.WolfKillsSinceChoice++
}

// ElementalTag is the player's current elemental affinity, used to filter
// conflicting choice offers.
type ElementalTag int

const (
	ElementNone ElementalTag = iota
	ElementFire
	ElementIce
	ElementPoison
	ElementShock
)
