package runloop

import (
	"wolfden/geom"
	"wolfden/rng"
)

// RiskEventKind enumerates the Risk-phase random event table (spec.md §4.H).
type RiskEventKind int

const (
	RiskCurse RiskEventKind = iota
	RiskElite
	RiskTimedChallenge
	RiskGamble
	RiskTrap
)

// CurseKind is the typed multiplier a Curse risk event applies.
type CurseKind int

const (
	CurseWeakness CurseKind = iota
	CurseFragility
	CurseExhaustion
	CurseSlowness
	CurseBlindness
)

// Curse is one active, ticking-down debuff.
type Curse struct {
	Kind      CurseKind
	Magnitude float32
	EndsAt    float32
	Permanent bool
}

// TrapZone is one of the 3 danger zones a Trap event instantiates.
type TrapZone struct {
	Pos      geom.Vec2
	Radius   float32
	Strength float32
}

// RiskState holds every field active only during PhaseRisk.
type RiskState struct {
	Active               bool
	EventKind            RiskEventKind
	Intensity            float32
	Curses               []Curse
	TargetKills          int
	KillsSoFar           int
	EndTime              float32
	Traps                []TrapZone
}

// enterRisk rolls a random risk event and intensity (spec.md §4.H "Risk
// phase"), then enters PhaseRisk. GambleStaminaCost reports the stamina
// cost a Gamble event rolls; Controller.Step discards it, so no stamina
// is deducted for a Gamble.
func (c *Controller) enterRisk(simTime float32, stream *rng.Stream) (gambleStaminaCost float32) {
	c.Risk = RiskState{
		Active:    true,
		EventKind: RiskEventKind(stream.IntN(5)),
		Intensity: 0.3 + stream.F01()*0.7,
	}
	c.RiskMultiplier = 1 + c.Risk.Intensity*0.5

	switch c.Risk.EventKind {
	case RiskCurse:
		c.Risk.Curses = append(c.Risk.Curses, Curse{
			Kind:      CurseKind(stream.IntN(5)),
			Magnitude: c.Risk.Intensity,
			EndsAt:    simTime + 20 + c.Risk.Intensity*20,
		})
	case RiskElite:
		// elite_active is surfaced to the combat layer via EliteActive().
	case RiskTimedChallenge:
		c.Risk.TargetKills = 3 + int(c.Risk.Intensity*5)
		c.Risk.EndTime = simTime + 30
	case RiskGamble:
		gambleStaminaCost = 0.2 + c.Risk.Intensity*0.3
	case RiskTrap:
		for i := 0; i < 3; i++ {
			c.Risk.Traps = append(c.Risk.Traps, TrapZone{
				Pos:      geom.Vec2{X: 0.2 + float32(i)*0.2, Y: 0.5},
				Radius:   0.05,
				Strength: c.Risk.Intensity,
			})
		}
	}

	c.Phase = PhaseRisk
	return gambleStaminaCost
}

// EliteActive reports whether the current risk event is the Elite kind.
func (c *Controller) EliteActive() bool {
	return c.Risk.Active && c.Risk.EventKind == RiskElite
}

// Update drops curses whose end time has passed (permanent curses are
// kept). The timed challenge's deadline is checked by Controller.Step.
func (r *RiskState) Update(simTime, dt float32) {
	if !r.Active {
		return
	}
	kept := r.Curses[:0]
	for _, cu := range r.Curses {
		if cu.Permanent || simTime < cu.EndsAt {
			kept = append(kept, cu)
		}
	}
	r.Curses = kept
}

// NoteKill records a kill toward a timed challenge's target.
func (r *RiskState) NoteKill() {
	if r.Active {
		r.KillsSoFar++
	}
}

// EscapeRisk implements the setter of the same name (spec.md §6):
// requires stamina >= 0.3 + (risk_multiplier-1)*0.2; on success clears
// non-permanent curses and risk state, returning 1, else 0.
func (c *Controller) EscapeRisk(stamina float32) int {
	if stamina < 0.3+(c.RiskMultiplier-1)*0.2 {
		return 0
	}
	c.escapeRiskNow()
	return 1
}

func (c *Controller) escapeRiskNow() {
	var permanent []Curse
	for _, cu := range c.Risk.Curses {
		if cu.Permanent {
			permanent = append(permanent, cu)
		}
	}
	c.Risk = RiskState{Curses: permanent}
	c.RiskMultiplier = 1
	c.Phase = PhaseExplore
}
