package sim

import (
	"wolfden/geom"
	"wolfden/player"
	"wolfden/runloop"
	"wolfden/worldgrid"
)

// SetPlayerInput latches the per-tick control surface (spec.md §6); it
// must only be called between ticks, applied wholesale at the top of the
// next Step.
func (w *World) SetPlayerInput(ix, iy float32, rolling, jumping, light, heavy, block, special bool) {
	w.pendingInput = player.Input{
		MoveX: ix, MoveY: iy,
		Rolling: rolling, Jumping: jumping,
		Light: light, Heavy: heavy, Block: block, Special: special,
		BlockFace: w.pendingInput.BlockFace,
	}
}

// OnLightAttack, OnHeavyAttack, OnSpecialAttack, OnRollStart and OnParry
// are the spec.md §6 attempt-now shortcuts, delegating straight through
// to the player package's own implementation of the same gates Tick uses.
func (w *World) OnLightAttack() int   { return w.Player.OnLightAttack(w.SimTime) }
func (w *World) OnHeavyAttack() int   { return w.Player.OnHeavyAttack(w.SimTime) }
func (w *World) OnSpecialAttack() int { return w.Player.OnSpecialAttack(w.SimTime) }
func (w *World) OnRollStart() int     { return w.Player.OnRollStart(w.SimTime) }
func (w *World) OnParry() int         { return w.Player.OnParry(w.SimTime) }

// SetBlocking implements set_blocking(on, face_x, face_y) (spec.md §6).
func (w *World) SetBlocking(on bool, faceX, faceY float32) int {
	face := geom.Vec2{X: faceX, Y: faceY}
	w.pendingInput.BlockFace = face
	return w.Player.SetBlocking(on, face, w.SimTime)
}

// HandleIncomingAttack implements handle_incoming_attack (spec.md §6),
// the same callback wolves use against the player.
func (w *World) HandleIncomingAttack(attackerX, attackerY, dirX, dirY float32) int {
	return int(w.Player.HandleIncomingAttack(w.SimTime, geom.Vec2{X: attackerX, Y: attackerY}, geom.Vec2{X: dirX, Y: dirY}))
}

// SetWind implements set_wind(wx, wy) (spec.md §6).
func (w *World) SetWind(wx, wy float32) {
	w.Wind = geom.Vec2{X: wx, Y: wy}
}

// PostSound implements post_sound(x, y, intensity) (spec.md §6).
func (w *World) PostSound(x, y, intensity float32) {
	w.Grid.Sounds.Emit(worldgrid.SoundPing{Pos: geom.Vec2{X: x, Y: y}, Intensity: intensity, Time: w.SimTime})
}

// PostDanger implements post_danger(x, y, r, strength, ttl) (spec.md §6).
func (w *World) PostDanger(x, y, r, strength, ttl float32) {
	w.Grid.Dangers.Add(worldgrid.DangerZone{
		Pos: geom.Vec2{X: x, Y: y}, Radius: r, Strength: strength,
		ExpiresAt: w.SimTime + ttl,
	})
}

// SetDen implements set_den(x, y, r) (spec.md §6): den location feeds
// PlanRetreat steering, stored as slot 0's territory/retreat center.
func (w *World) SetDen(x, y, r float32) {
	w.Pack.Slots[0].Center = geom.Vec2{X: x, Y: y}
	_ = r
}

// ClearEnemies implements clear_enemies() (spec.md §6).
func (w *World) ClearEnemies() {
	w.Pack.ClearEnemies()
}

// SpawnWolves implements spawn_wolves(n) -> spawned_count (spec.md §6),
// spawning around the player's current position.
func (w *World) SpawnWolves(n int) int {
	return w.Pack.SpawnWolves(w.Player.Pos, n, w.Stream)
}

// ForcePhaseTransition implements force_phase_transition(phase_id)
// (spec.md §6).
func (w *World) ForcePhaseTransition(phaseID int) int {
	return w.Runloop.ForcePhaseTransition(phaseID)
}

// CommitChoice implements commit_choice(id) -> 0|1 (spec.md §6), applying
// the resolved ChoiceEffect's tagged multiplier deltas onto the player
// and updating the curse-recompute base values and elemental tag to
// match, so subsequent curse ticks never clobber the gain.
func (w *World) CommitChoice(id int) int {
	effect, ok := w.Runloop.CommitChoice(id, w.SimTime)
	if ok == 0 {
		return 0
	}
	w.applyChoiceEffect(effect)
	return 1
}

func (w *World) applyChoiceEffect(effect runloop.ChoiceEffect) {
	if effect.Tags&runloop.EffectStaminaCap != 0 {
		w.Player.MaxStamina += effect.Magnitude
	}
	if effect.Tags&runloop.EffectSpeed != 0 {
		w.Player.SpeedMult += effect.Magnitude
		w.baseSpeedMult = w.Player.SpeedMult
	}
	if effect.Tags&runloop.EffectDamage != 0 {
		w.Player.AttackDamageMult += effect.Magnitude
	}
	if effect.Tags&runloop.EffectDefense != 0 {
		w.Player.DefenseMult = geom.Clamp(w.Player.DefenseMult-effect.Magnitude, 0.1, 2)
		w.baseDefenseMult = w.Player.DefenseMult
	}
	if effect.Tags&runloop.EffectLifesteal != 0 {
		w.Player.LifestealFraction += effect.Magnitude
	}
	if effect.Tags&runloop.EffectTreasure != 0 {
		w.Player.TreasureMult += effect.Magnitude
	}
	if effect.Element != runloop.ElementNone {
		w.PlayerElementTag = effect.Element
	}
}

// EscapeRisk implements escape_risk() -> 0|1 (spec.md §6).
func (w *World) EscapeRisk() int {
	return w.Runloop.EscapeRisk(w.Player.Stamina)
}

// ExitCashOut implements exit_cashout() (spec.md §6).
func (w *World) ExitCashOut() {
	w.Runloop.ExitCashOut()
}

// BuyShopItem implements buy_shop_item(i) -> 0|1 (spec.md §6), deducting
// gold/essence via the runloop controller and applying the purchased
// item's power by kind: damage for weapons, defense for armor, HP for
// consumables, crit chance for blessings, lifesteal for mystery items.
func (w *World) BuyShopItem(i int) int {
	item, ok := w.Runloop.BuyShopItem(i)
	if ok == 0 {
		return 0
	}
	switch item.Kind {
	case runloop.ShopWeapon:
		w.Player.AttackDamageMult += item.Power * 0.2
	case runloop.ShopArmor:
		w.Player.DefenseMult = geom.Clamp(w.Player.DefenseMult-item.Power*0.15, 0.1, 2)
		w.baseDefenseMult = w.Player.DefenseMult
	case runloop.ShopBlessing:
		w.Player.CritChance = geom.Clamp01(w.Player.CritChance + item.Power*0.1)
		w.baseCritChance = w.Player.CritChance
	case runloop.ShopConsumable:
		w.Player.HP = geom.Clamp01(w.Player.HP + item.Power*0.5)
	case runloop.ShopMystery:
		w.Player.LifestealFraction += item.Power * 0.1
	}
	return 1
}

// BuyHeal implements buy_heal() -> 0|1 (spec.md §6).
func (w *World) BuyHeal() int {
	ok := w.Runloop.BuyHeal()
	if ok == 1 {
		w.Player.HP = 1
	}
	return ok
}

// RerollShop implements reroll_shop() -> 0|1 (spec.md §6).
func (w *World) RerollShop() int {
	return w.Runloop.RerollShop(w.Stream)
}

// UseForgeOption implements use_forge_option(i) -> 0|1 (spec.md §6),
// applying a small permanent weapon buff on a successful roll.
func (w *World) UseForgeOption(i int) int {
	ok := w.Runloop.UseForgeOption(i, w.Stream)
	if ok == 1 {
		switch runloop.ForgeOption(i) {
		case runloop.ForgeSharpen:
			w.Player.AttackDamageMult += 0.05
		case runloop.ForgeReinforce:
			w.Player.DefenseMult = geom.Clamp(w.Player.DefenseMult-0.05, 0.1, 2)
			w.baseDefenseMult = w.Player.DefenseMult
		case runloop.ForgeEnchant:
			w.Player.CritChance = geom.Clamp01(w.Player.CritChance + 0.03)
			w.baseCritChance = w.Player.CritChance
		}
	}
	return ok
}

// ApplyBurning/Stun/Slow/DamageBoost and RemoveStatusEffect implement the
// status-effect pushers (spec.md §6), delegating directly to the player
// package's own implementation.
func (w *World) ApplyBurning(duration, intensity float32) int {
	return boolToInt(w.Player.ApplyBurning(duration, intensity))
}
func (w *World) ApplyStun(duration, intensity float32) int {
	return boolToInt(w.Player.ApplyStun(duration, intensity))
}
func (w *World) ApplySlow(duration, intensity float32) int {
	return boolToInt(w.Player.ApplySlow(duration, intensity))
}
func (w *World) ApplyDamageBoost(duration, intensity float32) int {
	return boolToInt(w.Player.ApplyDamageBoost(duration, intensity))
}
func (w *World) RemoveStatusEffect(kind player.StatusKind) {
	w.Player.RemoveStatusEffect(kind)
}

// DamageMiniboss implements damage_miniboss(d) (spec.md §6).
func (w *World) DamageMiniboss(d float32) {
	if !w.Runloop.Escalate.Boss.Active {
		return
	}
	w.Runloop.Escalate.Boss.Health -= d
	if w.Runloop.Escalate.Boss.Health <= 0 {
		w.Runloop.Escalate.Boss.Active = false
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
