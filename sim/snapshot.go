package sim

import (
	"wolfden/geom"
	"wolfden/wolf"
)

// Snapshot captures every field that is part of this run's deterministic
// state (spec.md §8): two peers stepped from the same seed with the same
// input trace must produce byte-for-bit equal snapshots. It excludes
// atomics and anything derived purely for display (the animation overlay
// is deterministic too, but it's large and redundant with player state,
// so callers that need it compare Player.Anim* directly instead).
type Snapshot struct {
	SimTime float32
	Seed    uint64

	Player PlayerSnapshot
	Wolves []WolfSnapshot
	Pack   PackSnapshot
	Grid   GridSnapshot
	Run    RunSnapshot
}

// PlayerSnapshot mirrors the subset of player.Player that is part of the
// deterministic simulation state (excludes animation overlay outputs).
type PlayerSnapshot struct {
	Pos, Vel geom.Vec2
	Facing   geom.Vec2
	Grounded bool

	HP, Stamina, MaxStamina float32

	AttackDamageMult, DefenseMult, SpeedMult, StaminaRegenMult float32
	LifestealFraction, CritChance, WolfDamageBonus, TreasureMult float32
	CurseWeaknessMult float32

	AttackState int
	RollState   int
	Blocking    bool
	Stunned     bool
	Hyperarmor  bool
	ComboCount  int
	Latched     bool
}

// WolfSnapshot mirrors the subset of wolf.Wolf that is part of the
// deterministic simulation state.
type WolfSnapshot struct {
	ID     int
	Active bool
	Pos    geom.Vec2
	Health float32
	Fatigue float32
	State  int
	Role   int
	Emotion int
}

// PackSnapshot mirrors package pack's Controller.
type PackSnapshot struct {
	Plan   int
	Morale float32
	AlphaIndex int
}

// GridSnapshot mirrors the parts of worldgrid.Grid relevant to
// determinism (obstacle/hazard/exit layout is fixed after Init, so only
// its size and the mutable hazard cooldown timers matter run-to-run).
type GridSnapshot struct {
	Biome         int
	HazardTimers  []float32
	DangerCount   int
}

// RunSnapshot mirrors runloop.Controller's economy/phase state.
type RunSnapshot struct {
	Phase     int
	RoomCount uint32
	Gold, Essence float32
	RiskActive bool
	EscalateLevel float32
}

// Snapshot captures the current deterministic state of the world for
// byte-for-bit comparison between peers (spec.md §8).
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		SimTime: w.SimTime,
		Seed:    w.Seed,
		Player: PlayerSnapshot{
			Pos: w.Player.Pos, Vel: w.Player.Vel, Facing: w.Player.Facing,
			Grounded: w.Player.Grounded,
			HP: w.Player.HP, Stamina: w.Player.Stamina, MaxStamina: w.Player.MaxStamina,
			AttackDamageMult: w.Player.AttackDamageMult, DefenseMult: w.Player.DefenseMult,
			SpeedMult: w.Player.SpeedMult, StaminaRegenMult: w.Player.StaminaRegenMult,
			LifestealFraction: w.Player.LifestealFraction, CritChance: w.Player.CritChance,
			WolfDamageBonus: w.Player.WolfDamageBonus, TreasureMult: w.Player.TreasureMult,
			CurseWeaknessMult: w.Player.CurseWeaknessMult,
			AttackState:       int(w.Player.AttackStateVal),
			RollState:         int(w.Player.RollStateVal),
			Blocking:          w.Player.Blocking,
			Stunned:           w.Player.Stunned,
			Hyperarmor:        w.Player.Hyperarmor,
			ComboCount:        w.Player.ComboCount,
			Latched:           w.Player.Latched,
		},
		Pack: PackSnapshot{
			Plan: int(w.Pack.Plan), Morale: w.Pack.Morale, AlphaIndex: w.Pack.AlphaIndex,
		},
		Grid: GridSnapshot{
			Biome:       int(w.Grid.Biome),
			DangerCount: w.Grid.Dangers.Count(),
		},
		Run: RunSnapshot{
			Phase: int(w.Runloop.Phase), RoomCount: w.Runloop.RoomCount,
			Gold: w.Runloop.Gold, Essence: w.Runloop.Essence,
			RiskActive: w.Runloop.Risk.Active, EscalateLevel: w.Runloop.Escalate.Level,
		},
	}

	s.Wolves = make([]WolfSnapshot, len(w.Pack.Wolves))
	for i, wf := range w.Pack.Wolves {
		s.Wolves[i] = snapshotWolf(wf)
	}

	for j := 0; j < w.Grid.Hazards.Count(); j++ {
		if h, ok := w.Grid.Hazards.At(j); ok {
			s.Grid.HazardTimers = append(s.Grid.HazardTimers, h.LastTrigger)
		}
	}

	return s
}

func snapshotWolf(wf *wolf.Wolf) WolfSnapshot {
	return WolfSnapshot{
		ID: wf.ID(), Active: wf.Alive(), Pos: wf.Pos,
		Health: wf.Health, Fatigue: wf.Fatigue,
		State: int(wf.StateVal), Role: int(wf.Role), Emotion: int(wf.EmotionVal),
	}
}
