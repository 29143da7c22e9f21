package player

// StatusKind enumerates the 22 status-effect kinds named in
// spec.md §3/§4.C, grounded directly on original_source's
// archive/legacy-wasm/headers/status_effects.h StatusEffectType enum.
type StatusKind int

const (
	Burning StatusKind = iota
	Bleeding
	Poisoned
	Frozen
	Shocked
	Stunned
	Rooted
	Slowed
	Silenced
	Blinded
	Hitstun
	Blockstun
	Knockback
	Knockdown
	DamageBoost
	SpeedBoost
	ArmorBoost
	Lifesteal
	Berserk
	Weakened
	Vulnerable
	Exhausted
	// Cursed is intentionally not a status-effect slot: curses are a
	// run-phase modifier (component I), not a per-entity timed effect.

	statusKindCount
)

// MaxStatusSlots bounds the per-entity status-effect table (spec.md §3).
const MaxStatusSlots = 16

// StatusEffect is one active slot, grounded on the original source's
// StatusEffect struct.
type StatusEffect struct {
	Kind             StatusKind
	DurationRemaining float32
	Intensity        float32
	TickRate         float32
	LastTickTime     float32
	Stacks           int
	MaxStacks        int
	CanStack         bool
	SourceID         int
}

func (e *StatusEffect) expired() bool {
	return e.DurationRemaining <= 0
}

func (e *StatusEffect) shouldTick(now float32) bool {
	return now-e.LastTickTime >= e.TickRate
}

// DamagePerTick mirrors get_damage_per_tick: only DoT kinds deal damage.
func (e *StatusEffect) DamagePerTick() float32 {
	switch e.Kind {
	case Burning:
		return e.Intensity * 0.05
	case Bleeding:
		return e.Intensity * 0.03
	case Poisoned:
		return e.Intensity * 0.02
	case Frozen:
		return e.Intensity * 0.01
	case Shocked:
		return e.Intensity * 0.04
	default:
		return 0
	}
}

func (e *StatusEffect) movementModifier() float32 {
	switch e.Kind {
	case Frozen:
		return 1 - e.Intensity*0.5
	case Slowed:
		return 1 - e.Intensity*0.4
	case Rooted:
		return 0
	case SpeedBoost:
		return 1 + e.Intensity*0.3
	case Exhausted:
		return 1 - e.Intensity*0.2
	default:
		return 1
	}
}

func (e *StatusEffect) damageModifier() float32 {
	switch e.Kind {
	case DamageBoost:
		return 1 + e.Intensity*0.25
	case Weakened:
		return 1 - e.Intensity*0.3
	case Berserk:
		return 1 + e.Intensity*0.5
	default:
		return 1
	}
}

func (e *StatusEffect) defenseModifier() float32 {
	switch e.Kind {
	case ArmorBoost:
		return 1 - e.Intensity*0.3
	case Vulnerable:
		return 1 + e.Intensity*0.25
	case Berserk:
		return 1 + e.Intensity*0.3
	default:
		return 1
	}
}

// StatusTable is the fixed-capacity (≤16) status-effect manager for one
// entity, directly adapted from the original source's
// StatusEffectManager.
type StatusTable struct {
	effects []StatusEffect

	MovementModifier float32
	DamageModifier   float32
	DefenseModifier  float32
}

// NewStatusTable returns an empty table with neutral (1.0) modifiers.
func NewStatusTable() *StatusTable {
	return &StatusTable{MovementModifier: 1, DamageModifier: 1, DefenseModifier: 1}
}

// Update decrements every slot's duration, recomputes the three aggregate
// modifiers as the product of each active effect's contribution, fires
// any DoT tick callbacks due this tick, and evicts expired slots.
func (t *StatusTable) Update(dt, now float32, onTick func(kind StatusKind, dmg float32)) {
	move, dmg, def := float32(1), float32(1), float32(1)

	for i := range t.effects {
		e := &t.effects[i]
		e.DurationRemaining -= dt
		if e.expired() {
			continue
		}
		move *= e.movementModifier()
		dmg *= e.damageModifier()
		def *= e.defenseModifier()

		if e.shouldTick(now) {
			e.LastTickTime = now
			if d := e.DamagePerTick(); d > 0 && onTick != nil {
				onTick(e.Kind, d)
			}
		}
	}

	t.MovementModifier = move
	t.DamageModifier = dmg
	t.DefenseModifier = def

	kept := t.effects[:0]
	for _, e := range t.effects {
		if !e.expired() {
			kept = append(kept, e)
		}
	}
	t.effects = kept
}

// Apply inserts or merges newEffect per the original source's apply_effect
// stacking rules: stack if can-stack and below max, else refresh to the
// max of old/new duration and intensity; add a new slot if room remains.
func (t *StatusTable) Apply(newEffect StatusEffect) bool {
	for i := range t.effects {
		e := &t.effects[i]
		if e.Kind != newEffect.Kind {
			continue
		}
		if e.CanStack && e.Stacks < e.MaxStacks {
			e.Stacks++
			sum := e.Intensity + newEffect.Intensity
			if sum > 1 {
				sum = 1
			}
			e.Intensity = sum
			if newEffect.DurationRemaining > e.DurationRemaining {
				e.DurationRemaining = newEffect.DurationRemaining
			}
		} else {
			if newEffect.DurationRemaining > e.DurationRemaining {
				e.DurationRemaining = newEffect.DurationRemaining
			}
			if newEffect.Intensity > e.Intensity {
				e.Intensity = newEffect.Intensity
			}
		}
		return true
	}

	if len(t.effects) >= MaxStatusSlots {
		return false
	}
	t.effects = append(t.effects, newEffect)
	return true
}

// Remove drops the slot of the given kind, if present.
func (t *StatusTable) Remove(kind StatusKind) {
	kept := t.effects[:0]
	for _, e := range t.effects {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	t.effects = kept
}

// Has reports whether kind is currently active.
func (t *StatusTable) Has(kind StatusKind) bool {
	for _, e := range t.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Intensity returns the active intensity for kind, or 0 if absent.
func (t *StatusTable) Intensity(kind StatusKind) float32 {
	for _, e := range t.effects {
		if e.Kind == kind {
			return e.Intensity
		}
	}
	return 0
}

// Stunned mirrors is_stunned: Stunned, Hitstun or Knockdown all count.
func (t *StatusTable) Stunned() bool {
	return t.Has(Stunned) || t.Has(Hitstun) || t.Has(Knockdown)
}

// Count returns the number of active slots.
func (t *StatusTable) Count() int { return len(t.effects) }
