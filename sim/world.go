// Package sim implements component J: the top-level World that wires
// together player, pack, worldgrid and runloop into the single
// step(dt) lockstep tick spec.md §5 specifies. World owns every mutable
// field in the simulation; external callers touch it only through the
// setters in setters.go and read it only through the getters in
// getters.go (spec.md §6).
package sim

import (
	"wolfden/atomic_float"
	"wolfden/geom"
	"wolfden/pack"
	"wolfden/player"
	"wolfden/rng"
	"wolfden/runloop"
	"wolfden/simconfig"
	"wolfden/wolf"
	"wolfden/worldgrid"
)

const exitRadius float32 = 0.035

// World is the entire sim core for one run (spec.md §3). A single
// goroutine calls Step; atomics below exist only so a read-only
// spectator (the debugserver) can sample hot scalars between ticks
// without racing that goroutine.
type World struct {
	SimTime     float32
	Seed        uint64
	StartWeapon uint32

	Stream  *rng.Stream
	Config  *simconfig.SimConfig
	Player  *player.Player
	Pack    *pack.Controller
	Grid    *worldgrid.Grid
	Runloop *runloop.Controller

	Wind             geom.Vec2
	PlayerElementTag runloop.ElementalTag

	pendingInput player.Input

	baseDefenseMult      float32
	baseStaminaRegenMult float32
	baseSpeedMult        float32
	baseCritChance       float32

	hpAtomic      *atomic_float.AtomicFloat64
	staminaAtomic *atomic_float.AtomicFloat64
	moraleAtomic  *atomic_float.AtomicFloat64
	wolfHealthAtomics []*atomic_float.AtomicFloat64
}

// InitRun implements the init_run lifecycle call (spec.md §6): seeds the
// RNG, rebuilds the grid, spawns a fresh player and pack controller, and
// resets every timer via the sub-packages' own New/Init constructors
// (each of which already seeds its -1000 "never fired" timers).
func InitRun(seed uint64, startWeapon uint32) *World {
	w := &World{StartWeapon: startWeapon, Seed: seed}
	w.Stream = rng.New(seed)
	w.Grid = worldgrid.Init(w.Stream)
	w.Player = player.New(startWeapon, w.Grid.Spawn)
	w.Pack = pack.New()
	w.Runloop = runloop.NewController()
	w.Config = simconfig.Default()

	w.baseDefenseMult = w.Player.DefenseMult
	w.baseStaminaRegenMult = w.Player.StaminaRegenMult
	w.baseSpeedMult = w.Player.SpeedMult
	w.baseCritChance = w.Player.CritChance

	w.initAtomics()
	w.syncAtomics()
	return w
}

// ResetRun implements reset_run(seed): equivalent to init_run(seed, 0)
// (spec.md §6), replacing every field in place so existing holders of
// *World keep observing the same instance.
func (w *World) ResetRun(seed uint64) {
	fresh := InitRun(seed, 0)
	*w = *fresh
}

// WithConfig stores cfg on the World (nil stores Default()). No sim
// package reads World.Config, and InitRun/ResetRun replace it with
// Default().
func (w *World) WithConfig(cfg *simconfig.SimConfig) {
	if cfg == nil {
		cfg = simconfig.Default()
	}
	w.Config = cfg
}

func (w *World) initAtomics() {
	w.hpAtomic = atomic_float.NewAtomicFloat64(float64(w.Player.HP))
	w.staminaAtomic = atomic_float.NewAtomicFloat64(float64(w.Player.Stamina))
	w.moraleAtomic = atomic_float.NewAtomicFloat64(float64(w.Pack.Morale))
	w.wolfHealthAtomics = make([]*atomic_float.AtomicFloat64, len(w.Pack.Wolves))
	for i := range w.wolfHealthAtomics {
		w.wolfHealthAtomics[i] = atomic_float.NewAtomicFloat64(0)
	}
}

// syncAtomics mirrors the plain float32 hot scalars into their atomic
// shadows once per tick (end of Step), so a spectator goroutine reading
// them between ticks never observes a torn value. The player/pack/wolf
// fields themselves stay plain float32, mutated throughout the tick by
// code with no reason to pay CAS overhead on every write.
func (w *World) syncAtomics() {
	w.hpAtomic.AtomicSet(float64(w.Player.HP))
	w.staminaAtomic.AtomicSet(float64(w.Player.Stamina))
	w.moraleAtomic.AtomicSet(float64(w.Pack.Morale))
	for i, wf := range w.Pack.Wolves {
		w.wolfHealthAtomics[i].AtomicSet(float64(wf.Health))
	}
}

// Start implements the start() lifecycle call (spec.md §6): a soft reset
// of the player (position, velocity, stamina, hp, clock) without
// rebuilding the grid or pack.
func (w *World) Start() {
	w.SimTime = 0
	w.Player.Pos = w.Grid.Spawn
	w.Player.Vel = geom.Vec2{}
	w.Player.HP = 1
	w.Player.Stamina = w.Player.MaxStamina
	w.syncAtomics()
}

// Step advances the world by dt, implementing the fixed 14-step
// subsystem order of spec.md §5.
func (w *World) Step(dt float32) {
	// 1. Advance sim clock.
	w.SimTime += dt

	// 2. Input latches were already applied by the setters in
	// setters.go; w.pendingInput is read-only for the remainder of
	// this tick.
	in := w.pendingInput

	enemies := make([]player.EnemyTarget, 0, len(w.Pack.ActiveWolves()))
	for _, wf := range w.Pack.ActiveWolves() {
		enemies = append(enemies, wf.AsEnemyTarget())
	}
	healthBefore := make([]float32, len(w.Pack.Wolves))
	aliveBefore := make([]bool, len(w.Pack.Wolves))
	for i, wf := range w.Pack.Wolves {
		healthBefore[i] = wf.Health
		aliveBefore[i] = wf.Alive()
	}

	// Steps 3 (roll/attack/stun/hyperarmor/counter/combo timers), 4
	// (status ticks), 5 (environment detection), 6 (movement + obstacle
	// push-out), 8 (facing), 9 (stamina/block) and 11 (active-frame hit
	// sweep) all live inside Player.Tick, called in that fixed order.
	w.Player.Tick(dt, w.SimTime, in, w.Grid.Obstacles, enemies, w.Stream)

	// Player.Tick's active-frame sweep damages wolves through the
	// EnemyTarget interface, which carries no sim_time; stamp it here by
	// diffing health, and reward/retarget any kill that sweep caused.
	for i, wf := range w.Pack.Wolves {
		if wf.Health < healthBefore[i] {
			wf.NoteDamageTime(w.SimTime)
		}
		if aliveBefore[i] && !wf.Alive() {
			w.onWolfKilled()
		}
	}

	// 7 (cont'd): latch drag pulls the player toward whichever wolf
	// latched it, once Tick has committed this tick's movement.
	if w.Player.Latched {
		if wf := w.latchedWolf(); wf != nil {
			w.Player.ApplyLatchDrag(wf.Pos, dt)
		}
	}

	// 10. Hazards: may damage the player directly or apply a status
	// effect (Burn/Slow/Poison).
	w.applyHazards(dt)

	// 12. Scent field advection/decay, danger-zone expiry and territory
	// decay (Grid.Step), then pack morale/howl, update_pack_controller,
	// the per-wolf update loop, and alpha/vocalization/scent-tracking
	// (Pack.Step). Pack.Step itself notes block/hit-taken against the
	// adaptive-AI retarget from each wolf's lunge result.
	w.Grid.Step(w.Wind, w.SimTime, dt)
	w.Grid.DepositPlayerScent(w.Player.Pos, dt)
	w.Pack.Step(w.SimTime, dt, w.Player, w.Grid, w.Wind, w.Stream)

	// Player-enemy and enemy-enemy disc-disc push-out (two relaxation
	// passes), run once both the player's and every wolf's position for
	// this tick are final (spec.md §3 invariant, §4.D "player push-out
	// (disc-disc)").
	w.resolveEntityCollisions()

	// 13. Phase transitions (Risk/Escalate/CashOut), curse modifiers,
	// room/exit detection, then HP regen.
	w.Runloop.Step(w.SimTime, dt, w.PlayerElementTag, w.Player.Stamina, w.Stream)
	w.recomputeCurseModifiers()
	w.checkRoomTransition()
	w.Player.ApplyHPRegen(dt)

	// 14. Animation overlay outputs.
	w.Player.RecomputeAnimationOverlay(w.Wind, w.SimTime)

	w.syncAtomics()
}

// resolveEntityCollisions runs two relaxation passes of disc-disc
// push-out between the player and every active wolf, and between every
// pair of active wolves, splitting each overlap's depth evenly between
// the two discs involved. Wolf steering already applies a soft
// inverse-square repulsion to velocity (wolf.separationAndAvoidance);
// this is the hard position correction spec.md §3/§4.D require on top of
// that, so no two active discs overlap once the tick ends.
func (w *World) resolveEntityCollisions() {
	wolves := w.Pack.ActiveWolves()
	for pass := 0; pass < 2; pass++ {
		for _, wf := range wolves {
			overlap, ok := geom.ResolveDiscs(w.Player.Pos, player.CollisionRadius, wf.Pos, wolf.CollisionRadius)
			if !ok {
				continue
			}
			push := geom.Scale(overlap.Direction, overlap.Depth*0.5)
			w.Player.Pos = geom.ClampVec01(geom.Add(w.Player.Pos, push))
			wf.Pos = geom.ClampVec01(geom.Sub(wf.Pos, push))
		}

		for i := 0; i < len(wolves); i++ {
			for j := i + 1; j < len(wolves); j++ {
				a, b := wolves[i], wolves[j]
				overlap, ok := geom.ResolveDiscs(a.Pos, wolf.CollisionRadius, b.Pos, wolf.CollisionRadius)
				if !ok {
					continue
				}
				push := geom.Scale(overlap.Direction, overlap.Depth*0.5)
				a.Pos = geom.ClampVec01(geom.Add(a.Pos, push))
				b.Pos = geom.ClampVec01(geom.Sub(b.Pos, push))
			}
		}
	}
}

// latchedWolf resolves the wolf currently holding the player's latch, if
// any, via the index Pack.Step copied from TryLungeHit's result onto
// Player.LatchEnemyIdx.
func (w *World) latchedWolf() *wolf.Wolf {
	if w.Player.LatchEnemyIdx < 0 || w.Player.LatchEnemyIdx >= len(w.Pack.Wolves) {
		return nil
	}
	wf := w.Pack.Wolves[w.Player.LatchEnemyIdx]
	if !wf.Alive() {
		return nil
	}
	return wf
}

// onWolfKilled feeds the kill reward and the adaptive-AI/risk-challenge
// retargeting signals a wolf death produces (spec.md §4.H "Rewards",
// §4.F adaptive AI).
func (w *World) onWolfKilled() {
	w.Pack.NoteKill()
	w.Runloop.Risk.NoteKill()
	w.Runloop.RewardKill(w.Runloop.EliteActive(), w.Stream)
}
