package player

import (
	"wolfden/geom"
	"wolfden/rng"
)

// tryAttack attempts to fire attackType from Idle. Returns true if the
// attack state machine entered Windup.
func (p *Player) tryAttack(simTime float32, attackType AttackType) bool {
	if p.AttackStateVal != AttackIdle || p.Stunned {
		return false
	}
	timing := attackTimings[attackType]

	cooldownMult := float32(1)
	if simTime < p.ComboWindowEnd {
		switch {
		case attackType == Special:
			cooldownMult = 0.6
		case p.LastAttackType == Light && attackType == Heavy:
			cooldownMult = 0.8
		default:
			cooldownMult = 0.7
		}
	}

	requiredCooldown := attackCooldownSec * cooldownMult
	if simTime-p.LastAttackTime < requiredCooldown {
		return false
	}

	staminaCost := timing.StaminaCost * p.Weapon.StaminaCostMult
	if p.Stamina < staminaCost {
		return false
	}

	p.Stamina = geom.Clamp(p.Stamina-staminaCost, 0, p.MaxStamina)
	p.AttackDir = p.Facing
	p.AttackStateVal = AttackWindup
	p.AttackTypeVal = attackType
	p.attackStateEnteredAt = simTime
	p.LastAttackTime = simTime
	p.hitThisActive = map[int]bool{}

	if simTime < p.ComboWindowEnd {
		p.ComboCount++
		if p.ComboCount > MaxCombo {
			p.ComboCount = MaxCombo
		}
	} else {
		p.ComboCount = 1
	}
	if attackType == Special {
		p.ComboWindowEnd = simTime
	} else {
		p.ComboWindowEnd = simTime + requiredCooldown + timing.Recovery
	}
	p.LastAttackType = attackType

	if p.Weapon.HasTag(WeaponTagHyperarmor) {
		p.Hyperarmor = true
		p.HyperarmorEnd = simTime + timing.Windup + timing.Active
	}
	return true
}

// updateAttackState advances the attack state machine only (spec.md §5
// step 3): dispatching a newly-pressed attack from Idle, and the
// Windup/Active/Recovery timer transitions. The active-frame hit test
// itself is evaluateActiveHits, called separately at step 11.
func (p *Player) updateAttackState(simTime float32, in Input) {
	switch p.AttackStateVal {
	case AttackIdle:
		switch {
		case in.Special:
			p.tryAttack(simTime, Special)
		case in.Heavy:
			p.tryAttack(simTime, Heavy)
		case in.Light:
			p.tryAttack(simTime, Light)
		}
	case AttackWindup:
		if p.AttackTypeVal == Heavy && in.Block {
			p.AttackStateVal = AttackIdle
			return
		}
		if simTime-p.attackStateEnteredAt >= attackTimings[p.AttackTypeVal].Windup {
			p.AttackStateVal = AttackActive
			p.attackStateEnteredAt = simTime
		}
	case AttackActive:
		if simTime-p.attackStateEnteredAt >= attackTimings[p.AttackTypeVal].Active {
			p.AttackStateVal = AttackRecovery
			p.attackStateEnteredAt = simTime
		}
	case AttackRecovery:
		if simTime-p.attackStateEnteredAt >= attackTimings[p.AttackTypeVal].Recovery {
			p.AttackStateVal = AttackIdle
		}
	}
}

func (p *Player) evaluateActiveHits(simTime float32, enemies []EnemyTarget, stream *rng.Stream) {
	timing := attackTimings[p.AttackTypeVal]
	for _, e := range enemies {
		if !e.Alive() || p.hitThisActive[e.ID()] {
			continue
		}
		toEnemy := geom.Sub(e.Position(), p.Pos)
		dist := geom.Length(toEnemy)
		if dist > attackRange*p.Weapon.ReachMult {
			continue
		}
		dir := geom.Normalize(toEnemy)
		if geom.Dot(dir, p.AttackDir) < attackArcCos {
			continue
		}

		damage := timing.Damage * p.AttackDamageMult * p.Weapon.DamageMult * p.CurseWeaknessMult
		if e.IsWolf() {
			damage *= p.WolfDamageBonus
		}
		critChance := p.CritChance + p.Weapon.CritBonus
		if stream.F01() < critChance {
			damage *= 2
		}

		e.ApplyHit(damage, geom.Scale(p.AttackDir, attackKnockback))
		p.HP = geom.Clamp01(p.HP + damage*p.LifestealFraction)
		e.CancelFeintAndLunge()
		p.hitThisActive[e.ID()] = true
	}
}

func (p *Player) tryBlock(simTime float32, in Input) {
	if !p.Blocking {
		p.Stamina = geom.Clamp(p.Stamina-blockStartCost, 0, p.MaxStamina)
		p.BlockStartTime = simTime
	}
	p.Blocking = true
	p.BlockFace = in.BlockFace
}

// HandleIncomingAttack resolves an attack against this player from
// attackerPos moving in attackDir. Return contract per spec.md §4.C.
func (p *Player) HandleIncomingAttack(simTime float32, attackerPos, attackDir geom.Vec2) HitResult {
	dist := geom.Distance(p.Pos, attackerPos)
	if dist > attackRange || p.RollStateVal == RollActive || p.Hyperarmor {
		return HitOutOfRangeOrInvuln
	}

	toSelf := geom.DirectionTo(attackerPos, p.Pos)
	if p.Blocking && geom.Dot(p.BlockFace, toSelf) >= 0.5 {
		if simTime-p.BlockStartTime <= parryWindow {
			p.Stamina = p.MaxStamina
			p.CanCounter = true
			p.CounterEndTime = simTime + counterWindow
			return HitPerfectParry
		}
		return HitBlocked
	}
	return HitLanded
}

// ApplyLatchDrag pulls the player toward targetPos at latchPullSpeed,
// implementing spec.md §5 step 7 ("latch drag if applicable"). The caller
// (sim.World) owns the latching wolf's position, so it supplies it here
// each tick while p.Latched is true.
func (p *Player) ApplyLatchDrag(targetPos geom.Vec2, dt float32) {
	if !p.Latched {
		return
	}
	toTarget := geom.Sub(targetPos, p.Pos)
	if geom.Length(toTarget) <= latchPullSpeed*dt {
		p.Pos = targetPos
		return
	}
	dir := geom.Normalize(toTarget)
	p.Pos = geom.ClampVec01(geom.Add(p.Pos, geom.Scale(dir, latchPullSpeed*dt)))
}

// ApplyWolfDamage applies a landed wolf lunge's damage, scaled by the
// player's defense multiplier and clamped to [0,1]. Called by
// wolf.TryLungeHit once handle_incoming_attack reports a landed hit.
func (p *Player) ApplyWolfDamage(damage float32) {
	p.HP = geom.Clamp01(p.HP - damage*p.DefenseMult)
}

// ApplyBurning/Stun/Slow/DamageBoost are the status-effect pushers named
// in spec.md §6.
func (p *Player) ApplyBurning(duration, intensity float32) bool {
	return p.Statuses.Apply(StatusEffect{Kind: Burning, DurationRemaining: duration, Intensity: intensity, TickRate: 0.5, CanStack: true, MaxStacks: 3})
}

func (p *Player) ApplyStun(duration, intensity float32) bool {
	return p.Statuses.Apply(StatusEffect{Kind: Stunned, DurationRemaining: duration, Intensity: intensity})
}

func (p *Player) ApplySlow(duration, intensity float32) bool {
	return p.Statuses.Apply(StatusEffect{Kind: Slowed, DurationRemaining: duration, Intensity: intensity})
}

func (p *Player) ApplyDamageBoost(duration, intensity float32) bool {
	return p.Statuses.Apply(StatusEffect{Kind: DamageBoost, DurationRemaining: duration, Intensity: intensity})
}

// RemoveStatusEffect drops an active effect by kind, per spec.md §6.
func (p *Player) RemoveStatusEffect(kind StatusKind) {
	p.Statuses.Remove(kind)
}

// OnLightAttack, OnHeavyAttack, and OnSpecialAttack are the spec.md §6
// "attempt-now" shortcuts: they run the same gate tryAttack uses and
// report success immediately, rather than waiting for the next Tick to
// read the latched Input.
func (p *Player) OnLightAttack(simTime float32) int  { return boolToInt(p.tryAttack(simTime, Light)) }
func (p *Player) OnHeavyAttack(simTime float32) int  { return boolToInt(p.tryAttack(simTime, Heavy)) }
func (p *Player) OnSpecialAttack(simTime float32) int { return boolToInt(p.tryAttack(simTime, Special)) }

// OnRollStart is the spec.md §6 attempt-now shortcut for rolling.
func (p *Player) OnRollStart(simTime float32) int {
	if p.RollStateVal != RollIdle || p.Stamina < rollStaminaCost || simTime-p.lastRollTime < rollCooldown {
		return 0
	}
	p.RollStateVal = RollActive
	p.rollStartedAt = simTime
	p.RollDir = p.Facing
	p.Stamina = geom.Clamp(p.Stamina-rollStaminaCost, 0, p.MaxStamina)
	p.lastRollTime = simTime
	return 1
}

// SetBlocking is the spec.md §6 setter pairing set_blocking(on, face_x,
// face_y).
func (p *Player) SetBlocking(on bool, face geom.Vec2, simTime float32) int {
	if !on {
		p.Blocking = false
		return 1
	}
	p.tryBlock(simTime, Input{Block: true, BlockFace: face})
	return 1
}

// OnParry is the spec.md §6 attempt-now shortcut: blocking must already be
// active and within parryWindow of BlockStartTime.
func (p *Player) OnParry(simTime float32) int {
	if !p.Blocking || simTime-p.BlockStartTime > parryWindow {
		return 0
	}
	p.CanCounter = true
	p.CounterEndTime = simTime + counterWindow
	return 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Perfect Parry (HitPerfectParry) opens the counter window in
// HandleIncomingAttack and reports the result; the caller
// (wolf.TryLungeHit) applies the 0.30s stun to the attacking wolf using
// ParryStunDuration.
const ParryStunDuration = parryStunDuration
