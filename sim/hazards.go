package sim

import (
	"wolfden/geom"
	"wolfden/player"
	"wolfden/runloop"
	"wolfden/worldgrid"
)

// applyHazards implements spec.md §5 step 10: a ready, active hazard
// within range of the player damages or debuffs it directly, bypassing
// the block/parry resolver (hazards are environmental, not an attack).
func (w *World) applyHazards(dt float32) {
	for i := 0; i < w.Grid.Hazards.Count(); i++ {
		h, ok := w.Grid.Hazards.At(i)
		if !ok || !h.ReadyToTrigger(w.SimTime) {
			continue
		}
		if h.Kind == worldgrid.HazardCollapsing && h.TriggeredOnce {
			continue
		}
		if geom.Distance(w.Player.Pos, h.Pos) > h.Radius {
			continue
		}

		switch h.Kind {
		case worldgrid.HazardFire:
			w.Player.ApplyBurning(h.Duration, h.Damage/100)
		case worldgrid.HazardIce:
			w.Player.ApplySlow(1.5, 0.5)
		case worldgrid.HazardSpikes:
			w.Player.HP = geom.Clamp01(w.Player.HP - h.Damage/100*w.Player.DefenseMult)
		case worldgrid.HazardPoisonGas:
			w.Player.Statuses.Apply(player.StatusEffect{
				Kind: player.Poisoned, DurationRemaining: h.Duration,
				Intensity: h.Damage / 100, TickRate: 0.5,
			})
		case worldgrid.HazardCollapsing:
			w.Player.HP = geom.Clamp01(w.Player.HP - h.Damage/50*w.Player.DefenseMult)
			h.TriggeredOnce = true
		}
		h.LastTrigger = w.SimTime
	}
}

// curseFieldSums totals the active-curse magnitude per kind, used to
// recompute the player's curse-modified stat multipliers from their
// choice-granted base values every tick.
func (w *World) curseFieldSums() (weakness, fragility, exhaustion, slowness, blindness float32) {
	for _, cu := range w.Runloop.Risk.Curses {
		switch cu.Kind {
		case runloop.CurseWeakness:
			weakness += cu.Magnitude
		case runloop.CurseFragility:
			fragility += cu.Magnitude
		case runloop.CurseExhaustion:
			exhaustion += cu.Magnitude
		case runloop.CurseSlowness:
			slowness += cu.Magnitude
		case runloop.CurseBlindness:
			blindness += cu.Magnitude
		}
	}
	return
}

// recomputeCurseModifiers implements the curse-modifier half of spec.md
// §5 step 13: every tick, the player's curse-affected multipliers are
// rederived from their permanent (choice-granted) base value and the
// currently active Risk-phase curses, so an expired curse cleanly falls
// back to the base rather than leaving a permanent discount behind.
func (w *World) recomputeCurseModifiers() {
	weakness, fragility, exhaustion, slowness, blindness := w.curseFieldSums()

	w.Player.CurseWeaknessMult = geom.Clamp(1-weakness, 0.1, 1)
	w.Player.DefenseMult = w.baseDefenseMult * (1 + fragility)
	w.Player.StaminaRegenMult = geom.Clamp(w.baseStaminaRegenMult*(1-exhaustion), 0.1, w.baseStaminaRegenMult)
	w.Player.SpeedMult = geom.Clamp(w.baseSpeedMult*(1-slowness), 0.2, w.baseSpeedMult)
	w.Player.CritChance = geom.Clamp(w.baseCritChance-blindness, 0, 1)
}

// checkRoomTransition implements the room/exit-detection half of spec.md
// §5 step 13: reaching an exit advances room_count, regenerates the grid
// for the next room, clears surviving wolves, and respawns the player at
// the new spawn corner.
func (w *World) checkRoomTransition() {
	for _, exit := range w.Grid.Exits {
		if geom.Distance(w.Player.Pos, exit.Pos) > exitRadius {
			continue
		}
		w.Runloop.NextRoom()
		w.Pack.ClearEnemies()
		w.Grid = worldgrid.Init(w.Stream)
		w.Player.Pos = w.Grid.Spawn
		w.Player.Vel = geom.Vec2{}
		return
	}
}
