// Package player implements components D and E: player kinematics and the
// combat resolver. The Player type owns all per-tick mutation; callers
// drive it once per tick via Tick with a latched Input and the live
// obstacle/enemy collision context.
package player

import (
	"wolfden/geom"
	"wolfden/rng"
	"wolfden/worldgrid"
)

// Tunable constants not pinned to a literal by spec.md are implementer
// decisions: attackCooldownSec (ATTACK_COOLDOWN_SEC), MaxCombo (MAX_COMBO),
// and the per-attack stamina costs in attackTimings.
const (
	baseSpeed    float32 = 0.3
	accel        float32 = 12
	friction     float32 = 9
	gravity      float32 = 1.2
	jumpPower    float32 = -0.45
	secondJumpMult float32 = 0.85
	maxJumps     = 2
	coyoteWindow float32 = 0.15
	jumpBuffer   float32 = 0.10

	rollIframeDuration float32 = 0.30
	rollSlideDuration  float32 = 0.20
	rollSpeedMult      float32 = 2.6
	rollStaminaCost    float32 = 0.50
	rollCooldown       float32 = 0.80
	rollSlideFriction  float32 = 0.3

	staminaBlockDrain float32 = 0.10
	staminaRegen      float32 = 0.10
	blockStartCost    float32 = 0.10

	attackRange     float32 = 0.055
	attackArcCos    float32 = 0.34
	attackKnockback float32 = 0.12
	attackCooldownSec float32 = 0.4

	parryWindow    float32 = 0.12
	counterWindow  float32 = 0.5
	parryStunDuration float32 = 0.30

	latchDuration float32 = 1.0
	latchPullSpeed float32 = 0.22

	// MaxCombo bounds the combo counter (implementer decision, spec names
	// only the cap symbol MAX_COMBO without a literal).
	MaxCombo = 5

	// CollisionRadius is the player's disc radius for both obstacle
	// push-out and the player-enemy disc-disc resolution sim.World runs
	// after Pack.Step each tick (spec.md §4.B/§4.D).
	CollisionRadius float32 = 0.02
)

type AttackState int

const (
	AttackIdle AttackState = iota
	AttackWindup
	AttackActive
	AttackRecovery
)

type AttackType int

const (
	Light AttackType = iota
	Heavy
	Special
)

type attackTiming struct {
	Windup, Active, Recovery, Damage, StaminaCost float32
}

var attackTimings = map[AttackType]attackTiming{
	Light:   {Windup: 0.05, Active: 0.08, Recovery: 0.15, Damage: 0.20, StaminaCost: 0.12},
	Heavy:   {Windup: 0.15, Active: 0.12, Recovery: 0.25, Damage: 0.45, StaminaCost: 0.22},
	Special: {Windup: 0.20, Active: 0.15, Recovery: 0.30, Damage: 0.60, StaminaCost: 0.35},
}

type RollState int

const (
	RollIdle RollState = iota
	RollActive
	RollSliding
)

// HitResult is handle_incoming_attack's return contract (spec.md §4.C).
type HitResult int

const (
	HitOutOfRangeOrInvuln HitResult = -1
	HitLanded              HitResult = 0
	HitBlocked             HitResult = 1
	HitPerfectParry        HitResult = 2
)

// EnemyTarget is the minimal surface the combat resolver needs from an
// attackable enemy, kept abstract so this package never imports wolf
// (wolf imports player, not the reverse).
type EnemyTarget interface {
	ID() int
	Position() geom.Vec2
	Facing() geom.Vec2
	Alive() bool
	IsWolf() bool
	ApplyHit(damage float32, knockback geom.Vec2)
	CancelFeintAndLunge()
}

// Input is the latched per-tick control surface (spec.md §4.B/C).
type Input struct {
	MoveX, MoveY float32
	Rolling      bool
	Jumping      bool
	Light        bool
	Heavy        bool
	Block        bool
	Special      bool
	BlockFace    geom.Vec2
}

// Player is the single player entity (spec.md §3).
type Player struct {
	Pos, Vel geom.Vec2
	Facing   geom.Vec2
	Grounded bool
	JumpCount int
	lastGroundedTime float32
	jumpBufferedAt   float32

	HP      float32
	Stamina float32
	MaxStamina float32

	AttackDamageMult  float32
	DefenseMult       float32
	SpeedMult         float32
	StaminaRegenMult  float32
	LifestealFraction float32
	CritChance        float32
	WolfDamageBonus   float32
	HPRegenPerSec     float32
	TreasureMult      float32

	AttackStateVal AttackState
	AttackTypeVal  AttackType
	attackStateEnteredAt float32
	AttackDir      geom.Vec2
	LastAttackTime float32
	hitThisActive  map[int]bool

	RollStateVal RollState
	rollStartedAt float32
	RollDir       geom.Vec2
	lastRollTime  float32

	Blocking       bool
	BlockFace      geom.Vec2
	BlockStartTime float32

	Stunned        bool
	StunEndTime    float32
	Hyperarmor     bool
	HyperarmorEnd  float32
	CanCounter     bool
	CounterEndTime float32

	ComboCount     int
	ComboWindowEnd float32
	LastAttackType AttackType

	Latched       bool
	LatchEndTime  float32
	LatchEnemyIdx int

	IsWallSliding bool
	NearWall      bool
	WallDistance  float32
	NearLedge     bool
	LedgeDistance float32

	Statuses *StatusTable
	Weapon   WeaponStats

	CurseWeaknessMult float32

	// Animation overlay outputs (spec.md §6, 22 scalars), write-only from
	// the core's perspective and recomputed once per tick.
	AnimScaleX, AnimScaleY       float32
	AnimRotation                 float32
	AnimOffsetX, AnimOffsetY     float32
	AnimPelvisY                  float32
	AnimSpineCurve               float32
	AnimShoulderRotation         float32
	AnimHeadBobX, AnimHeadBobY   float32
	AnimArmSwingL, AnimArmSwingR float32
	AnimLegLiftL, AnimLegLiftR   float32
	AnimTorsoTwist               float32
	AnimBreathingIntensity       float32
	AnimFatigueFactor            float32
	AnimMomentumX, AnimMomentumY float32
	AnimClothSway                float32
	AnimHairBounce               float32
	AnimEquipmentJiggle          float32
	AnimWindResponse             float32
	AnimGroundAdapt              float32
	AnimTemperatureShiver        float32
}

// New returns a freshly spawned player wielding weaponID, all timers reset
// to -1000 per spec.md §6 init_run.
func New(weaponID uint32, spawn geom.Vec2) *Player {
	w := WeaponFor(weaponID)
	p := &Player{
		Pos:      spawn,
		Facing:   geom.Vec2{X: 1, Y: 0},
		HP:       1,
		MaxStamina: 1,
		Stamina:  1,

		AttackDamageMult: w.DamageMult,
		DefenseMult:      1,
		SpeedMult:        w.SpeedMult,
		StaminaRegenMult: 1,
		CritChance:       w.CritBonus,
		WolfDamageBonus:  1,
		TreasureMult:     1,
		CurseWeaknessMult: 1,

		lastGroundedTime: -1000,
		jumpBufferedAt:   -1000,
		LastAttackTime:   -1000,
		lastRollTime:     -1000,
		rollStartedAt:    -1000,
		BlockStartTime:   -1000,
		StunEndTime:      -1000,
		HyperarmorEnd:    -1000,
		CounterEndTime:   -1000,
		ComboWindowEnd:   -1000,
		LatchEndTime:     -1000,
		LatchEnemyIdx:    -1,

		Statuses: NewStatusTable(),
		Weapon:   w,
		hitThisActive: map[int]bool{},
	}
	return p
}

// Tick advances the player one step, in the literal internal order
// spec.md §5 assigns to the player's sub-steps (3, 4, 5, 6, 8, 9, 11).
// Steps 1/2 (clock, input latch), 7 (latch drag), 10 (hazards), 12
// (pack), 13 (phases/curse/HP regen) and 14 (animation overlay) are
// driven by sim.World around this call; the player-enemy disc-disc pass
// named in step 6 also runs there, once wolf positions for this tick are
// final. enemies is the live attackable set for this tick's active-frame
// hit sweep.
func (p *Player) Tick(dt, simTime float32, in Input, obstacles *worldgrid.Obstacles, enemies []EnemyTarget, stream *rng.Stream) {
	// evaluateActiveHits fires based on whether the attack was already
	// Active entering this tick, not whether updateAttackState just
	// transitioned into or out of Active this tick.
	wasAttackActive := p.AttackStateVal == AttackActive

	// 3. roll/attack/stun/hyperarmor/counter/combo timers.
	p.updateRoll(dt, simTime, in)
	p.updateAttackState(simTime, in)
	p.expireTimers(simTime)

	// 4. status effects.
	p.updateStatuses(dt, simTime)

	// 5. environment detection.
	p.detectEnvironment(obstacles)

	// 6. movement integration, then obstacle push-out (two passes).
	p.integrateMovement(dt, simTime, in, obstacles)
	p.resolveObstacleCollisions(obstacles)
	p.NoteGrounded(simTime)

	// 8. facing.
	p.updateFacing(in)

	// 9. stamina & block update.
	p.updateStaminaAndBlock(dt, simTime, in)

	// 11. active-frame hit sweep.
	if wasAttackActive {
		p.evaluateActiveHits(simTime, enemies, stream)
	}
}

// expireTimers clears Latched/Stunned/Hyperarmor/CanCounter once their
// end time has passed, as part of spec.md §5 step 3's timer sweep.
func (p *Player) expireTimers(simTime float32) {
	if p.Latched && simTime >= p.LatchEndTime {
		p.Latched = false
		p.LatchEnemyIdx = -1
	}
	if p.Stunned && simTime >= p.StunEndTime {
		p.Stunned = false
	}
	if p.Hyperarmor && simTime >= p.HyperarmorEnd {
		p.Hyperarmor = false
	}
	if p.CanCounter && simTime >= p.CounterEndTime {
		p.CanCounter = false
	}
}

// ApplyHPRegen applies passive HP regeneration. Called by sim.World.Step
// at step 13, after Runloop.Step and the curse/phase recompute, not from
// Tick — HP regen sits downstream of this tick's phase transitions.
func (p *Player) ApplyHPRegen(dt float32) {
	p.HP = geom.Clamp01(p.HP + p.HPRegenPerSec*dt)
}

func (p *Player) updateStatuses(dt, simTime float32) {
	p.Statuses.Update(dt, simTime, func(kind StatusKind, dmg float32) {
		p.HP = geom.Clamp01(p.HP - dmg)
	})
	p.Stunned = p.Stunned || p.Statuses.Stunned()
}

func (p *Player) updateRoll(dt, simTime float32, in Input) {
	switch p.RollStateVal {
	case RollIdle:
		if in.Rolling && p.Stamina >= rollStaminaCost && simTime-p.lastRollTime >= rollCooldown {
			p.RollStateVal = RollActive
			p.rollStartedAt = simTime
			dir := geom.Vec2{X: in.MoveX, Y: in.MoveY}
			if geom.Length(dir) < 1e-6 {
				dir = p.Facing
			}
			p.RollDir = geom.Normalize(dir)
			p.Stamina = geom.Clamp(p.Stamina-rollStaminaCost, 0, p.MaxStamina)
			p.lastRollTime = simTime
		}
	case RollActive:
		if simTime-p.rollStartedAt >= rollIframeDuration {
			p.RollStateVal = RollSliding
		}
	case RollSliding:
		if simTime-p.rollStartedAt >= rollIframeDuration+rollSlideDuration {
			p.RollStateVal = RollIdle
		}
	}
}

// updateStaminaAndBlock implements spec.md §5 step 9: the block-press
// gate moved here (out of the attack FSM, which now only covers step 3)
// since block state is this step's concern, followed by the
// drain/regen it feeds.
func (p *Player) updateStaminaAndBlock(dt, simTime float32, in Input) {
	if in.Block {
		p.tryBlock(simTime, in)
	} else {
		p.Blocking = false
	}

	switch {
	case p.RollStateVal == RollActive:
		// no drain; start cost already paid.
	case p.Blocking:
		p.Stamina = geom.Clamp(p.Stamina-staminaBlockDrain*dt, 0, p.MaxStamina)
		if p.Stamina <= 0 {
			p.Blocking = false
		}
	default:
		p.Stamina = geom.Clamp(p.Stamina+staminaRegen*dt*p.StaminaRegenMult, 0, p.MaxStamina)
	}
}

// movementInputVec normalizes the raw movement input if its length
// exceeds 1 (spec.md §4.B).
func movementInputVec(in Input) geom.Vec2 {
	v := geom.Vec2{X: in.MoveX, Y: in.MoveY}
	if geom.Length(v) > 1 {
		return geom.Normalize(v)
	}
	return v
}

func (p *Player) integrateMovement(dt, simTime float32, in Input, obstacles *worldgrid.Obstacles) {
	statusMove := p.Statuses.MovementModifier
	rollMult := float32(1)
	input := movementInputVec(in)

	switch p.RollStateVal {
	case RollActive:
		input = p.RollDir
		rollMult = rollSpeedMult
	case RollSliding:
		input = geom.Scale(input, 0.5)
	}

	desired := geom.Scale(input, baseSpeed*p.SpeedMult*rollMult*statusMove)
	if p.Blocking || p.Latched {
		desired = geom.Vec2{}
	}

	p.Vel.X += (desired.X - p.Vel.X) * accel * dt
	p.Vel.Y += (desired.Y - p.Vel.Y) * accel * dt

	frictionMult := float32(1)
	if p.RollStateVal == RollSliding {
		frictionMult = rollSlideFriction
	}
	fric := maxF32(0, 1-friction*frictionMult*dt)
	p.Vel.X *= fric
	p.Vel.Y *= fric

	if !p.Grounded {
		p.Vel.Y += gravity * dt
	}

	cap := baseSpeed * p.SpeedMult * rollMult
	if speed := geom.Length(p.Vel); speed > cap && cap > 0 {
		scaled := geom.Scale(geom.Normalize(p.Vel), cap)
		p.Vel = scaled
	}

	if in.Jumping {
		p.jumpBufferedAt = simTime
	}
	canCoyote := simTime-p.lastGroundedTime <= coyoteWindow
	bufferedJump := simTime-p.jumpBufferedAt <= jumpBuffer
	if bufferedJump && (canCoyote && p.JumpCount == 0 || p.JumpCount < maxJumps) {
		impulse := jumpPower
		if p.JumpCount > 0 {
			impulse *= secondJumpMult
		}
		p.Vel.Y = impulse
		p.JumpCount++
		p.Grounded = false
		p.jumpBufferedAt = -1000
	}

	p.Pos.X += p.Vel.X * dt
	p.Pos.Y += p.Vel.Y * dt
	p.Pos = geom.ClampVec01(p.Pos)

	if p.Latched {
		// dragged toward the latching wolf is resolved by the caller
		// (sim.World, via ApplyLatchDrag) since it owns the wolf position; here we only
		// maintain the zero-desired-velocity contract above.
		_ = latchPullSpeed
	}
}

// updateFacing recomputes Facing, spec.md §5 step 8. Blocking here still
// reflects last tick's block-press decision, since stamina & block
// update (step 9) hasn't run yet this tick.
func (p *Player) updateFacing(in Input) {
	if !p.Blocking {
		if geom.Length(p.Vel) > 1e-6 {
			p.Facing = geom.Normalize(p.Vel)
		}
	} else {
		p.Facing = in.BlockFace
		p.BlockFace = in.BlockFace
	}
}

const wallDetectRadius float32 = 0.04
const ledgeDetectMargin float32 = 0.03

// detectEnvironment implements spec.md §5 step 5: wall/ledge proximity and
// wall-slide detection, computed from the nearest obstacle and the arena
// boundary before movement integration commits a new position.
func (p *Player) detectEnvironment(obstacles *worldgrid.Obstacles) {
	p.NearWall, p.WallDistance = false, 1
	if obstacles != nil {
		for _, ob := range obstacles.All() {
			d := geom.Distance(p.Pos, ob.Pos) - ob.Radius
			if d < p.WallDistance {
				p.WallDistance = d
			}
		}
		p.NearWall = p.WallDistance <= wallDetectRadius
	}
	p.IsWallSliding = p.NearWall && !p.Grounded && p.Vel.Y > 0

	distToEdge := minF32(minF32(p.Pos.X, 1-p.Pos.X), minF32(p.Pos.Y, 1-p.Pos.Y))
	p.LedgeDistance = distToEdge
	p.NearLedge = distToEdge <= ledgeDetectMargin
}

func (p *Player) resolveObstacleCollisions(obstacles *worldgrid.Obstacles) {
	if obstacles == nil {
		return
	}
	wasAirborne := !p.Grounded
	p.Grounded = false
	for _, pass := range [2]int{0, 1} {
		_ = pass
		for _, ob := range obstacles.All() {
			overlap, ok := geom.ResolveDiscs(p.Pos, CollisionRadius, ob.Pos, ob.Radius)
			if !ok {
				continue
			}
			p.Pos = geom.Add(p.Pos, geom.Scale(overlap.Direction, overlap.Depth))
			p.Pos = geom.ClampVec01(p.Pos)

			absX := overlap.Direction.X
			if absX < 0 {
				absX = -absX
			}
			switch {
			case overlap.Direction.Y < -0.6 && p.Vel.Y >= 0:
				// landing: pushed upward out of the disc while falling.
				p.Grounded = true
				p.JumpCount = 0
				if p.Vel.Y > 0 {
					p.Vel.Y = 0
				}
			case overlap.Direction.Y > 0.6 && p.Vel.Y < 0:
				// ceiling
				if p.Vel.Y < 0 {
					p.Vel.Y = 0
				}
			case absX > 0.6:
				// wall
				if wasAirborne && p.Vel.Y > 0.1 {
					p.Vel.Y *= 0.6
				}
				p.Vel.X = 0
			}
		}
	}
}

// NoteGrounded lets the caller stamp the current sim_time into the coyote
// window tracker whenever Grounded is true this tick (kept as an explicit
// call so Tick's internal collision step never needs sim_time threaded
// through resolveObstacleCollisions just for bookkeeping).
func (p *Player) NoteGrounded(simTime float32) {
	if p.Grounded {
		p.lastGroundedTime = simTime
		p.JumpCount = 0
	}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
