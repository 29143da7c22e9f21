package sim

import (
	"wolfden/geom"
	"wolfden/player"
	"wolfden/wolf"
)

// The getters below implement the read side of spec.md §6: every field a
// host (debugserver, replay tool, or test) observes is exposed as a plain
// value method on *World, never a pointer into mutable state.

// Player kinematics/state getters.
func (w *World) GetX() float32       { return w.Player.Pos.X }
func (w *World) GetY() float32       { return w.Player.Pos.Y }
func (w *World) GetVelX() float32    { return w.Player.Vel.X }
func (w *World) GetVelY() float32    { return w.Player.Vel.Y }
func (w *World) GetHP() float32      { return w.Player.HP }
func (w *World) GetStamina() float32 { return w.Player.Stamina }

func (w *World) GetPlayerAnimState() int { return int(w.Player.AttackStateVal) }
func (w *World) GetIsGrounded() bool     { return w.Player.Grounded }
func (w *World) GetJumpCount() int       { return w.Player.JumpCount }
func (w *World) GetIsWallSliding() bool  { return w.Player.IsWallSliding }
func (w *World) GetIsRolling() bool      { return w.Player.RollStateVal != player.RollIdle }
func (w *World) GetIsInvulnerable() bool {
	return w.Player.RollStateVal == player.RollActive || w.Player.Hyperarmor
}
func (w *World) GetIsStunned() bool { return w.Player.Stunned }
func (w *World) GetStunRemaining() float32 {
	if !w.Player.Stunned {
		return 0
	}
	return w.Player.StunEndTime - w.SimTime
}
func (w *World) GetBlockState() bool       { return w.Player.Blocking }
func (w *World) GetComboCount() int        { return w.Player.ComboCount }
func (w *World) GetCanCounter() bool       { return w.Player.CanCounter }
func (w *World) GetHasHyperarmor() bool    { return w.Player.Hyperarmor }
func (w *World) GetArmorValue() float32    { return w.Player.DefenseMult }
func (w *World) GetNearWall() bool         { return w.Player.NearWall }
func (w *World) GetWallDistance() float32  { return w.Player.WallDistance }
func (w *World) GetNearLedge() bool        { return w.Player.NearLedge }
func (w *World) GetLedgeDistance() float32 { return w.Player.LedgeDistance }
func (w *World) GetRollState() int         { return int(w.Player.RollStateVal) }
func (w *World) GetSpeed() float32         { return geom.Length(w.Player.Vel) }
func (w *World) GetTimeSeconds() float32   { return w.SimTime }
func (w *World) GetPhase() int             { return int(w.Runloop.Phase) }
func (w *World) GetRoomCount() uint32      { return w.Runloop.RoomCount }
func (w *World) GetCurrentBiome() int      { return int(w.Grid.Biome) }
func (w *World) GetPlayerLatched() bool    { return w.Player.Latched }

// Attack timing constants (spec.md §6): exposed so a host can draw
// precise windup/active/recovery bars without duplicating the table.
func (w *World) GetAttackCooldownSec() float32 { return 0.4 }
func (w *World) GetParryWindow() float32       { return 0.12 }
func (w *World) GetCounterWindow() float32     { return 0.5 }
func (w *World) GetParryStunDuration() float32 { return player.ParryStunDuration }

// wolfByIndex resolves getter index i against the live active-wolf list,
// the same ordering GetEnemyCount reports over.
func (w *World) wolfByIndex(i int) *wolf.Wolf {
	active := w.Pack.ActiveWolves()
	if i < 0 || i >= len(active) {
		return nil
	}
	return active[i]
}

// Enemy getters, indexed by enemy i over the active-wolf list.
func (w *World) GetEnemyCount() int { return len(w.Pack.ActiveWolves()) }

func (w *World) GetEnemyX(i int) float32 {
	if wf := w.wolfByIndex(i); wf != nil {
		return wf.Pos.X
	}
	return 0
}
func (w *World) GetEnemyY(i int) float32 {
	if wf := w.wolfByIndex(i); wf != nil {
		return wf.Pos.Y
	}
	return 0
}

// GetEnemyType always reports "wolf" (0): this sim has a single enemy
// species, kept distinct from GetEnemyState/GetEnemyRole for hosts that
// expect a type/state/role triad per spec.md §6.
func (w *World) GetEnemyType(i int) int { return 0 }

func (w *World) GetEnemyState(i int) int {
	if wf := w.wolfByIndex(i); wf != nil {
		return int(wf.StateVal)
	}
	return 0
}
func (w *World) GetEnemyRole(i int) int {
	if wf := w.wolfByIndex(i); wf != nil {
		return int(wf.Role)
	}
	return 0
}
func (w *World) GetEnemyFatigue(i int) float32 {
	if wf := w.wolfByIndex(i); wf != nil {
		return wf.Fatigue
	}
	return 0
}

func (w *World) GetPackMorale() float32 { return w.Pack.Morale }
func (w *World) GetPackPlan() int       { return int(w.Pack.Plan) }

// Wolf animation scalars (12 per enemy, spec.md §6).
func (w *World) GetEnemyAnimScaleX(i int) float32      { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimScaleX }) }
func (w *World) GetEnemyAnimScaleY(i int) float32      { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimScaleY }) }
func (w *World) GetEnemyAnimRotation(i int) float32    { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimRotation }) }
func (w *World) GetEnemyAnimOffsetX(i int) float32     { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimOffsetX }) }
func (w *World) GetEnemyAnimOffsetY(i int) float32     { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimOffsetY }) }
func (w *World) GetEnemyAnimLegPhase(i int) float32    { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimLegPhase }) }
func (w *World) GetEnemyAnimHeadTilt(i int) float32    { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimHeadTilt }) }
func (w *World) GetEnemyAnimTailWag(i int) float32     { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimTailWag }) }
func (w *World) GetEnemyAnimEarPerk(i int) float32     { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimEarPerk }) }
func (w *World) GetEnemyAnimBodyStretch(i int) float32 { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimBodyStretch }) }
func (w *World) GetEnemyAnimGrowlPulse(i int) float32  { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimGrowlPulse }) }
func (w *World) GetEnemyAnimHackles(i int) float32     { return w.wolfF32(i, func(wf *wolf.Wolf) float32 { return wf.AnimHackles }) }

func (w *World) wolfF32(i int, get func(*wolf.Wolf) float32) float32 {
	wf := w.wolfByIndex(i)
	if wf == nil {
		return 0
	}
	return get(wf)
}

// World/obstacle/hazard getters.
func (w *World) GetObstacleCount() int { return len(w.Grid.Obstacles.All()) }
func (w *World) GetObstacleX(i int) float32 {
	obs := w.Grid.Obstacles.All()
	if i < 0 || i >= len(obs) {
		return 0
	}
	return obs[i].Pos.X
}
func (w *World) GetObstacleY(i int) float32 {
	obs := w.Grid.Obstacles.All()
	if i < 0 || i >= len(obs) {
		return 0
	}
	return obs[i].Pos.Y
}
func (w *World) GetObstacleRadius(i int) float32 {
	obs := w.Grid.Obstacles.All()
	if i < 0 || i >= len(obs) {
		return 0
	}
	return obs[i].Radius
}
func (w *World) GetHazardCount() int { return w.Grid.Hazards.Count() }
func (w *World) GetHazardX(i int) float32 {
	if h, ok := w.Grid.Hazards.At(i); ok {
		return h.Pos.X
	}
	return 0
}
func (w *World) GetHazardY(i int) float32 {
	if h, ok := w.Grid.Hazards.At(i); ok {
		return h.Pos.Y
	}
	return 0
}
func (w *World) GetHazardKind(i int) int {
	if h, ok := w.Grid.Hazards.At(i); ok {
		return int(h.Kind)
	}
	return -1
}
func (w *World) GetExitCount() int { return len(w.Grid.Exits) }
func (w *World) GetExitX(i int) float32 {
	if i < 0 || i >= len(w.Grid.Exits) {
		return 0
	}
	return w.Grid.Exits[i].Pos.X
}
func (w *World) GetExitY(i int) float32 {
	if i < 0 || i >= len(w.Grid.Exits) {
		return 0
	}
	return w.Grid.Exits[i].Pos.Y
}

func (w *World) IsPlayerTrapped() bool {
	for _, t := range w.Grid.Dangers.All() {
		if geom.Distance(w.Player.Pos, t.Pos) <= t.Radius {
			return true
		}
	}
	return false
}
func (w *World) IsPlayerBurning() bool  { return w.Player.Statuses.Has(player.Burning) }
func (w *World) IsPlayerPoisoned() bool { return w.Player.Statuses.Has(player.Poisoned) }
func (w *World) IsPlayerSlowed() bool   { return w.Player.Statuses.Has(player.Slowed) }

// Choice/economy getters.
func (w *World) GetGold() float32    { return w.Runloop.Gold }
func (w *World) GetEssence() float32 { return w.Runloop.Essence }
func (w *World) GetOfferID(slot int) int {
	if slot < 0 || slot >= len(w.Runloop.Offers) {
		return -1
	}
	if !w.Runloop.Offers[slot].Filled {
		return -1
	}
	return w.Runloop.Offers[slot].ID
}
func (w *World) GetRoundNumber() int { return w.Runloop.RoundNumber }

// Risk/escalate getters.
func (w *World) GetRiskActive() bool        { return w.Runloop.Risk.Active }
func (w *World) GetRiskEventKind() int      { return int(w.Runloop.Risk.EventKind) }
func (w *World) GetRiskIntensity() float32  { return w.Runloop.Risk.Intensity }
func (w *World) GetRiskKillsSoFar() int     { return w.Runloop.Risk.KillsSoFar }
func (w *World) GetRiskTargetKills() int    { return w.Runloop.Risk.TargetKills }
func (w *World) GetEscalateLevel() float32  { return w.Runloop.Escalate.Level }
func (w *World) GetEscalateEventActive() bool { return w.Runloop.Escalate.EventActive }
func (w *World) GetMiniBossActive() bool    { return w.Runloop.Escalate.Boss.Active }
func (w *World) GetMiniBossHealth() float32 { return w.Runloop.Escalate.Boss.Health }

// Animation overlay getters (22 scalars, spec.md §6).
func (w *World) GetAnimScaleX() float32            { return w.Player.AnimScaleX }
func (w *World) GetAnimScaleY() float32            { return w.Player.AnimScaleY }
func (w *World) GetAnimRotation() float32          { return w.Player.AnimRotation }
func (w *World) GetAnimOffsetX() float32           { return w.Player.AnimOffsetX }
func (w *World) GetAnimOffsetY() float32           { return w.Player.AnimOffsetY }
func (w *World) GetAnimPelvisY() float32           { return w.Player.AnimPelvisY }
func (w *World) GetAnimSpineCurve() float32        { return w.Player.AnimSpineCurve }
func (w *World) GetAnimShoulderRotation() float32  { return w.Player.AnimShoulderRotation }
func (w *World) GetAnimHeadBobX() float32          { return w.Player.AnimHeadBobX }
func (w *World) GetAnimHeadBobY() float32          { return w.Player.AnimHeadBobY }
func (w *World) GetAnimArmSwingL() float32         { return w.Player.AnimArmSwingL }
func (w *World) GetAnimArmSwingR() float32         { return w.Player.AnimArmSwingR }
func (w *World) GetAnimLegLiftL() float32          { return w.Player.AnimLegLiftL }
func (w *World) GetAnimLegLiftR() float32          { return w.Player.AnimLegLiftR }
func (w *World) GetAnimTorsoTwist() float32        { return w.Player.AnimTorsoTwist }
func (w *World) GetAnimBreathingIntensity() float32 { return w.Player.AnimBreathingIntensity }
func (w *World) GetAnimFatigueFactor() float32     { return w.Player.AnimFatigueFactor }
func (w *World) GetAnimMomentumX() float32         { return w.Player.AnimMomentumX }
func (w *World) GetAnimMomentumY() float32         { return w.Player.AnimMomentumY }
func (w *World) GetAnimClothSway() float32         { return w.Player.AnimClothSway }
func (w *World) GetAnimHairBounce() float32        { return w.Player.AnimHairBounce }
func (w *World) GetAnimEquipmentJiggle() float32   { return w.Player.AnimEquipmentJiggle }
func (w *World) GetAnimWindResponse() float32      { return w.Player.AnimWindResponse }
func (w *World) GetAnimGroundAdapt() float32       { return w.Player.AnimGroundAdapt }
func (w *World) GetAnimTemperatureShiver() float32 { return w.Player.AnimTemperatureShiver }

// Atomic spectator reads: a debugserver goroutine calls these instead of
// the plain getters above to avoid racing the tick goroutine.
func (w *World) AtomicHP() float32      { return float32(w.hpAtomic.AtomicRead()) }
func (w *World) AtomicStamina() float32 { return float32(w.staminaAtomic.AtomicRead()) }
func (w *World) AtomicMorale() float32  { return float32(w.moraleAtomic.AtomicRead()) }
// GetWolfSlotCount reports the number of fixed pack slots (including
// inactive/dead ones), the index space AtomicWolfHealth iterates over —
// distinct from GetEnemyCount's live-wolf-only count.
func (w *World) GetWolfSlotCount() int { return len(w.wolfHealthAtomics) }

func (w *World) AtomicWolfHealth(i int) float32 {
	if i < 0 || i >= len(w.wolfHealthAtomics) {
		return 0
	}
	return float32(w.wolfHealthAtomics[i].AtomicRead())
}
