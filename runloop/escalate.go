package runloop

import "wolfden/rng"

// EscalateEventKind enumerates the events PhaseEscalate can trigger
// (spec.md §4.H "Escalate phase").
type EscalateEventKind int

const (
	EscalateDensity EscalateEventKind = iota
	EscalateModifiers
	EscalateMiniBoss
	EscalateFrenzy
	EscalateSwarm
)

// EnemyModifierBits is a bitmask of miscellaneous enemy buffs the
// Modifiers event can grant.
type EnemyModifierBits uint32

const (
	ModExtraArmor EnemyModifierBits = 1 << iota
	ModRegen
	ModThorns
)

// MiniBoss is the single chasing entity spawned by an EscalateMiniBoss
// event (spec.md §4.H).
type MiniBoss struct {
	Active         bool
	Health         float32
	LastAttackTime float32
}

// EscalateState holds escalation_level and the active event multipliers.
type EscalateState struct {
	Level float32 // 0..1, rises at 0.01/s

	ActiveEvent  EscalateEventKind
	EventActive  bool
	SpawnRateMult float32
	EnemySpeedMult float32
	EnemyDamageMult float32
	EnemyModifiers EnemyModifierBits

	Boss MiniBoss
}

func newEscalateState() EscalateState {
	return EscalateState{SpawnRateMult: 1, EnemySpeedMult: 1, EnemyDamageMult: 1}
}

// Update rises escalation_level at 0.01/s, capped at 1.
func (e *EscalateState) Update(dt float32) {
	e.Level += 0.01 * dt
	if e.Level > 1 {
		e.Level = 1
	}
}

// enterEscalate rolls a random escalation event (spec.md §4.H) and enters
// PhaseEscalate.
func (c *Controller) enterEscalate(stream *rng.Stream) {
	c.Escalate.EventActive = true
	c.Escalate.ActiveEvent = EscalateEventKind(stream.IntN(5))

	switch c.Escalate.ActiveEvent {
	case EscalateDensity:
		c.Escalate.SpawnRateMult = 1.5 + c.Escalate.Level*0.5
	case EscalateModifiers:
		c.Escalate.EnemyModifiers = EnemyModifierBits(1 + stream.IntN(7))
	case EscalateMiniBoss:
		c.Escalate.Boss = MiniBoss{Active: true, Health: 50 + stream.F01()*50, LastAttackTime: -1000}
	case EscalateFrenzy:
		c.Escalate.EnemySpeedMult = 1.3 + c.Escalate.Level*0.3
	case EscalateSwarm:
		c.Escalate.EnemyDamageMult = 0.7
		c.Escalate.SpawnRateMult = 2
	}

	c.Phase = PhaseEscalate
}

// MiniBossAttackCooldown returns the cooldown between MiniBoss attacks,
// 2-(intensity*0.5) where intensity is escalation_level (spec.md §4.H).
func (c *Controller) MiniBossAttackCooldown() float32 {
	return 2 - c.Escalate.Level*0.5
}

// MiniBossReadyToAttack reports whether the boss is within range 0.1 of
// the player and its cooldown has elapsed.
func (c *Controller) MiniBossReadyToAttack(simTime, distToPlayer float32) bool {
	if !c.Escalate.Boss.Active {
		return false
	}
	return distToPlayer <= 0.1 && simTime-c.Escalate.Boss.LastAttackTime >= c.MiniBossAttackCooldown()
}
