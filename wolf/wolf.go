// Package wolf implements component F: per-wolf perception, emotional
// state, steering, lunge/feint decisions, collision, and the procedural
// animation outputs. Pack-level orchestration (plan selection, roles,
// alpha, vocalizations, scent tracking, adaptive AI) lives in package
// pack, which drives Wolf.Update once per tick per active slot.
package wolf

import (
	"wolfden/geom"
	"wolfden/player"
	"wolfden/rng"
	"wolfden/worldgrid"
)

const (
	enemySeekRange float32 = 0.45
	memoryDecayPerSec float32 = 0.8
	maxAudibleDist float32 = 0.5
	soundWindowSec float32 = 1.0

	baseSpeed float32 = 0.26 // MAX_SPEED cap; desired speed scales below it
	maxSpeed  float32 = 0.26
	accel     float32 = 12
	friction  float32 = 9

	lungeRange    float32 = 0.10
	lungeCooldown float32 = 2.0
	lungeSpeed    float32 = 0.42
	lungeDuration float32 = 0.16
	feintDuration float32 = 0.10
	lungeFatigueCost float32 = 0.15
	baseFeintProb float32 = 0.25
	attackRange   float32 = 0.055

	noticeDelay float32 = 0.75

	separationRadius float32 = 0.03

	// lungeDamage is the base bite damage a landed lunge deals to the
	// player (implementer decision: spec.md §4.D names the lunge/feint
	// gate and collision but never a literal wolf damage constant).
	lungeDamage float32 = 0.12
)

// CollisionRadius is a wolf's disc radius for obstacle push-out and the
// wolf-wolf/player-wolf disc-disc resolution sim.World runs after
// Pack.Step each tick (spec.md §4.D).
const CollisionRadius float32 = 0.018

type State int

const (
	Idle State = iota
	Seek
	Circle
	Harass
	Recover
	Ambush
	Flank
	Retreat
	Prowl
	Howl
)

type Emotion int

const (
	Calm Emotion = iota
	Aggressive
	Fearful
	Desperate
	Confident
	Frustrated
	Hurt
)

type Role int

const (
	RoleNone Role = iota
	RoleLead
	RoleFlankL
	RoleFlankR
	RoleAmbusher
	RoleScout
	RolePupGuard
)

type Plan int

const (
	PlanStalk Plan = iota
	PlanEncircle
	PlanHarass
	PlanCommit
	PlanAmbush
	PlanPincer
	PlanRetreat
)

// Wolf is one enemy slot (spec.md §3, ≤16 active at once).
type Wolf struct {
	idx    int
	Active bool
	StateVal State

	Pos, Vel, Facing geom.Vec2
	Stamina, Health, Fatigue float32

	LastSeenPos geom.Vec2
	LastScentPos geom.Vec2
	MemoryConfidence float32
	Noticed bool
	NoticeTime float32

	LastLungeTime, LungeEndTime, FeintEndTime float32
	LungeDir geom.Vec2
	lunging, feinting bool

	Aggression, Intelligence, Coordination, Morale float32
	TargetLocked bool
	AmbushReadyTime, RetreatUntilTime float32

	EmotionVal Emotion
	EmotionIntensity float32
	LastDamageTime float32
	SuccessfulAttacks, FailedAttacks int

	Role Role
	PackID int

	AnimScaleX, AnimScaleY float32
	AnimRotation float32
	AnimOffsetX, AnimOffsetY float32
	AnimLegPhase float32
	AnimHeadTilt float32
	AnimTailWag float32
	AnimEarPerk float32
	AnimBodyStretch float32
	AnimGrowlPulse float32
	AnimHackles float32

	hitThisLunge map[int]bool
}

// New returns an inactive wolf slot; Spawn activates it at a position.
func New(idx int, packID int) *Wolf {
	return &Wolf{
		idx: idx, PackID: packID,
		LastLungeTime: -1000, LungeEndTime: -1000, FeintEndTime: -1000,
		NoticeTime: -1000, LastDamageTime: -1000,
		AmbushReadyTime: -1000, RetreatUntilTime: -1000,
		EmotionIntensity: 0.3,
		hitThisLunge: map[int]bool{},
	}
}

// Spawn activates the slot at pos with fresh traits drawn from stream.
func (w *Wolf) Spawn(pos geom.Vec2, stream *rng.Stream) {
	w.Active = true
	w.Pos = pos
	w.Vel = geom.Vec2{}
	w.Facing = geom.Vec2{X: -1, Y: 0}
	w.StateVal = Idle
	w.Health = 1
	w.Stamina = 1
	w.Fatigue = 0
	w.MemoryConfidence = 0
	w.Noticed = false
	w.NoticeTime = -1000
	w.Aggression = 0.3 + stream.F01()*0.4
	w.Intelligence = 0.3 + stream.F01()*0.4
	w.Coordination = 0.3 + stream.F01()*0.4
	w.Morale = 0.5
	w.EmotionVal = Calm
	w.EmotionIntensity = 0.3
	w.LastDamageTime = -1000
	w.LastLungeTime = -1000
	w.LungeEndTime = -1000
	w.FeintEndTime = -1000
	w.RetreatUntilTime = -1000
	w.AmbushReadyTime = -1000
	w.Role = RoleNone
}

// ID satisfies player.EnemyTarget.
func (w *Wolf) ID() int { return w.idx }

// Position satisfies player.EnemyTarget.
func (w *Wolf) Position() geom.Vec2 { return w.Pos }

// FacingDir returns the facing vector. Wolf cannot declare a Facing
// method beside its Facing field, so wolfAdapter exposes this as
// player.EnemyTarget's Facing.
func (w *Wolf) FacingDir() geom.Vec2 { return w.Facing }

// Alive satisfies player.EnemyTarget.
func (w *Wolf) Alive() bool { return w.Active && w.Health > 0 }

// IsWolf satisfies player.EnemyTarget.
func (w *Wolf) IsWolf() bool { return true }

// ApplyHit satisfies player.EnemyTarget: reduces health, applies
// knockback, and kills the slot at health<=0 (spec.md §3 lifecycle).
func (w *Wolf) ApplyHit(damage float32, knockback geom.Vec2) {
	w.Health = maxF32(0, w.Health-damage)
	w.Vel = geom.Add(w.Vel, knockback)
	w.LastDamageTime = 0 // caller overwrites via NoteDamageTime with sim_time
	if w.Health <= 0 {
		w.Active = false
	}
}

// NoteDamageTime stamps the actual sim_time of the most recent hit; kept
// separate from ApplyHit because the player.EnemyTarget interface does
// not carry sim_time through ApplyHit's signature.
func (w *Wolf) NoteDamageTime(simTime float32) {
	w.LastDamageTime = simTime
}

// CancelFeintAndLunge satisfies player.EnemyTarget.
func (w *Wolf) CancelFeintAndLunge() {
	w.lunging = false
	w.feinting = false
}

// Deactivate forcibly kills the slot, used by the clear_enemies setter
// (spec.md §6) rather than combat damage.
func (w *Wolf) Deactivate() {
	w.Active = false
	w.Health = 0
	w.lunging = false
	w.feinting = false
}

// ApplyStun is used by a Perfect Parry result against this wolf; Update
// skips steering, movement and lunges until the stun ends.
func (w *Wolf) ApplyStun(duration float32, simTime float32) {
	w.RetreatUntilTime = maxF32(w.RetreatUntilTime, simTime+duration)
}

var _ player.EnemyTarget = (*wolfAdapter)(nil)

// wolfAdapter adapts *Wolf's FacingDir method to player.EnemyTarget's
// Facing method name without colliding with the Wolf.Facing field.
type wolfAdapter struct{ *Wolf }

func (a *wolfAdapter) Facing() geom.Vec2 { return a.Wolf.FacingDir() }

// AsEnemyTarget exposes w as a player.EnemyTarget for the combat resolver.
func (w *Wolf) AsEnemyTarget() player.EnemyTarget { return &wolfAdapter{w} }

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

// PerceptionContext bundles the environment inputs a wolf's Update needs,
// gathered once per tick by the pack controller.
type PerceptionContext struct {
	PlayerPos    geom.Vec2
	PlayerFacing geom.Vec2
	Wind         geom.Vec2
	SimTime, Dt  float32
	Grid         *worldgrid.Grid
	Obstacles    *worldgrid.Obstacles
	Plan         Plan
	PackMorale   float32
	PlayerSkillEstimate float32
	OtherWolves  []*Wolf
	Den          geom.Vec2
}

// Update runs one tick of perception, emotion, steering, movement,
// collision, and lunge/feint decision for this wolf (spec.md §4.D).
func (w *Wolf) Update(ctx PerceptionContext, stream *rng.Stream) {
	if !w.Active {
		return
	}
	if ctx.SimTime < w.RetreatUntilTime {
		// Stunned by a perfect parry: no steering, movement or lunge.
		w.lunging, w.feinting = false, false
		w.updateAnimation(ctx)
		return
	}
	w.perceive(ctx)
	w.updateEmotion(ctx)
	dir := w.steeringTarget(ctx)
	w.separationAndAvoidance(ctx, &dir)
	w.decideLungeOrFeint(ctx, dir, stream)
	w.integrateMovement(ctx, dir)
	w.resolveCollisions(ctx)
	w.updateAnimation(ctx)
}

func (w *Wolf) perceive(ctx PerceptionContext) {
	dist := geom.Distance(w.Pos, ctx.PlayerPos)
	if dist < enemySeekRange {
		w.MemoryConfidence = 1
		if !w.Noticed {
			w.Noticed = true
			w.NoticeTime = ctx.SimTime
		}
		w.LastSeenPos = ctx.PlayerPos
	} else {
		w.MemoryConfidence = geom.Clamp01(w.MemoryConfidence - memoryDecayPerSec*ctx.Dt)
	}

	if ctx.Grid != nil {
		w.LastScentPos = ctx.PlayerPos
	}
}

func (w *Wolf) updateEmotion(ctx PerceptionContext) {
	switch {
	case w.Health < 0.3 && w.Fatigue > 0.7:
		w.EmotionVal, w.EmotionIntensity = Fearful, 0.8
	case ctx.PackMorale > 0.7 && w.successRate() > 0.6:
		w.EmotionVal, w.EmotionIntensity = Confident, 0.7
	case w.FailedAttacks > 3 && w.SuccessfulAttacks == 0:
		w.EmotionVal, w.EmotionIntensity = Frustrated, 0.9
	case w.Health < 0.5 && ctx.PackMorale < 0.4:
		w.EmotionVal, w.EmotionIntensity = Desperate, 0.85
	case ctx.SimTime-w.LastDamageTime < 2.0:
		w.EmotionVal, w.EmotionIntensity = Aggressive, 0.75
	default:
		w.EmotionVal = Calm
		w.EmotionIntensity = maxF32(0.3, w.EmotionIntensity*0.98)
	}
}

func (w *Wolf) successRate() float32 {
	total := w.SuccessfulAttacks + w.FailedAttacks
	if total == 0 {
		return 0
	}
	return float32(w.SuccessfulAttacks) / float32(total)
}

func (w *Wolf) steeringTarget(ctx PerceptionContext) geom.Vec2 {
	var dir geom.Vec2
	switch {
	case w.MemoryConfidence >= 1:
		dir = geom.DirectionTo(w.Pos, ctx.PlayerPos)
	default:
		if ping, ok := w.recentLoudPing(ctx); ok {
			dir = geom.Scale(geom.DirectionTo(w.Pos, ping), 0.75)
		} else if w.MemoryConfidence > 0.1 {
			dir = geom.DirectionTo(w.Pos, w.LastSeenPos)
		} else if ctx.Grid != nil {
			grad := ctx.Grid.Scent.GradientAt(w.Pos)
			dir = geom.Sub(grad, geom.Scale(ctx.Wind, 0.25))
		} else {
			dir = geom.Fallback
		}
	}

	switch w.Role {
	case RoleFlankL:
		dir = geom.Add(dir, geom.Rotate(dir, 1.2))
	case RoleFlankR:
		dir = geom.Add(dir, geom.Rotate(dir, -1.2))
	case RoleAmbusher:
		target := geom.Add(ctx.PlayerPos, geom.Scale(ctx.PlayerFacing, 0.3))
		dir = geom.DirectionTo(w.Pos, target)
	}
	if ctx.Plan == PlanRetreat {
		away := geom.DirectionTo(ctx.PlayerPos, w.Pos)
		toDen := geom.DirectionTo(w.Pos, ctx.Den)
		dir = geom.Normalize(geom.Add(geom.Scale(away, 0.6), geom.Scale(toDen, 0.4)))
	}

	return geom.Normalize(dir)
}

// recentLoudPing returns the loudest sound ping from the last
// soundWindowSec, weighted by age and 1/distance from this wolf, and
// false if none is within maxAudibleDist.
func (w *Wolf) recentLoudPing(ctx PerceptionContext) (geom.Vec2, bool) {
	if ctx.Grid == nil {
		return geom.Vec2{}, false
	}
	var best geom.Vec2
	bestScore := float32(-1)
	found := false
	for _, p := range ctx.Grid.Sounds.RecentWithin(ctx.SimTime, soundWindowSec) {
		d := geom.Distance(w.Pos, p.Pos)
		if d > maxAudibleDist {
			continue
		}
		age := ctx.SimTime - p.Time
		weight := p.Intensity * (1 - age/soundWindowSec) / (d + 0.01)
		if weight > bestScore {
			bestScore = weight
			best = p.Pos
			found = true
		}
	}
	return best, found
}

func (w *Wolf) separationAndAvoidance(ctx PerceptionContext, dir *geom.Vec2) {
	var push geom.Vec2
	for _, other := range ctx.OtherWolves {
		if other == w || !other.Active {
			continue
		}
		d := geom.Distance(w.Pos, other.Pos)
		if d < separationRadius && d > 1e-6 {
			away := geom.DirectionTo(other.Pos, w.Pos)
			push = geom.Add(push, geom.Scale(away, 1/(d*d)))
		}
	}
	for _, z := range ctx.Grid.Dangers.All() {
		d := geom.Distance(w.Pos, z.Pos)
		if d < z.Radius {
			away := geom.DirectionTo(z.Pos, w.Pos)
			push = geom.Add(push, geom.Scale(away, z.Strength*(1-d/z.Radius)))
		}
	}
	toPlayer := geom.DirectionTo(w.Pos, ctx.PlayerPos)
	if geom.Dot(toPlayer, ctx.PlayerFacing) >= 0.5 {
		push = geom.Add(push, geom.Scale(ctx.PlayerFacing, 0.5))
	}
	*dir = geom.Normalize(geom.Add(*dir, push))
}

func (w *Wolf) emotionSpeedMult() float32 {
	switch w.EmotionVal {
	case Fearful, Desperate:
		return 0.8
	case Aggressive, Confident:
		return 1.15
	case Frustrated:
		return 1.05
	default:
		return 1.0
	}
}

func (w *Wolf) emotionRangeBonus() float32 {
	if w.EmotionVal == Aggressive || w.EmotionVal == Confident {
		return 0.05
	}
	return 0
}

func (w *Wolf) emotionCooldownMod() float32 {
	if w.EmotionVal == Desperate || w.EmotionVal == Frustrated {
		return 0.8
	}
	return 1.0
}

func (w *Wolf) fatigueThreshold() float32 {
	if w.EmotionVal == Desperate {
		return 0.9
	}
	return 0.75
}

func (w *Wolf) planSpeedMult(plan Plan) float32 {
	switch plan {
	case PlanHarass:
		return 0.85
	case PlanCommit:
		return 1.35
	default:
		return 1.0
	}
}

func (w *Wolf) decideLungeOrFeint(ctx PerceptionContext, dir geom.Vec2, stream *rng.Stream) {
	if w.lunging || w.feinting {
		if w.lunging && ctx.SimTime >= w.LungeEndTime {
			w.lunging = false
		}
		if w.feinting && ctx.SimTime >= w.FeintEndTime {
			w.feinting = false
		}
		return
	}

	dist := geom.Distance(w.Pos, ctx.PlayerPos)
	gate := w.Noticed &&
		ctx.SimTime-w.NoticeTime >= noticeDelay &&
		dist < lungeRange+w.emotionRangeBonus() &&
		ctx.SimTime-w.LastLungeTime > lungeCooldown*w.emotionCooldownMod() &&
		w.Fatigue < w.fatigueThreshold()

	if !gate {
		return
	}

	if ctx.Plan == PlanCommit {
		attacking := 0
		for _, o := range ctx.OtherWolves {
			if o.lunging {
				attacking++
			}
		}
		if w.Role == RoleLead {
			if attacking > 0 {
				return
			}
		} else if attacking == 0 || attacking > 2 {
			return
		}
	}

	feintProb := baseFeintProb * (0.5 + ctx.PlayerSkillEstimate)
	if ctx.Plan == PlanCommit {
		feintProb *= 0.4
	}

	predicted := geom.Add(ctx.PlayerPos, geom.Scale(geom.Sub(ctx.PlayerPos, w.LastSeenPos), 0.2))
	w.LungeDir = geom.DirectionTo(w.Pos, predicted)
	w.LastLungeTime = ctx.SimTime

	if stream.F01() < feintProb {
		w.feinting = true
		w.FeintEndTime = ctx.SimTime + feintDuration
	} else {
		w.lunging = true
		w.LungeEndTime = ctx.SimTime + lungeDuration
		w.Fatigue = geom.Clamp01(w.Fatigue + lungeFatigueCost)
		w.hitThisLunge = map[int]bool{}
	}
}

func (w *Wolf) integrateMovement(ctx PerceptionContext, dir geom.Vec2) {
	speed := baseSpeed * w.emotionSpeedMult() * w.planSpeedMult(ctx.Plan)
	cautious := float32(1)
	if w.EmotionVal == Fearful {
		cautious = 0.7
	}
	adaptive := 0.8 + ctx.PlayerSkillEstimate*0.4
	intel := 0.9 + w.Intelligence*0.2

	moveDir := dir
	if w.lunging {
		moveDir = w.LungeDir
		speed = lungeSpeed
	} else if w.feinting {
		moveDir = w.LungeDir
		speed = lungeSpeed * 0.5
	}

	desired := geom.Add(geom.Scale(moveDir, speed*cautious*adaptive*intel), geom.Scale(ctx.Wind, 0.02))

	w.Vel.X += (desired.X - w.Vel.X) * accel * ctx.Dt
	w.Vel.Y += (desired.Y - w.Vel.Y) * accel * ctx.Dt
	fric := maxF32(0, 1-friction*ctx.Dt)
	w.Vel.X *= fric
	w.Vel.Y *= fric

	if s := geom.Length(w.Vel); s > maxSpeed {
		w.Vel = geom.Scale(geom.Normalize(w.Vel), maxSpeed)
	}

	w.Pos = geom.ClampVec01(geom.Add(w.Pos, geom.Scale(w.Vel, ctx.Dt)))
	if geom.Length(w.Vel) > 1e-6 {
		w.Facing = geom.Normalize(w.Vel)
	}

	exertion := float32(0.5)
	if w.lunging {
		exertion = 1
	}
	w.Fatigue = geom.Clamp01(w.Fatigue + (exertion*0.3-0.2)*ctx.Dt)
}

func (w *Wolf) resolveCollisions(ctx PerceptionContext) {
	if ctx.Obstacles == nil {
		return
	}
	for pass := 0; pass < 2; pass++ {
		for _, ob := range ctx.Obstacles.All() {
			overlap, ok := geom.ResolveDiscs(w.Pos, CollisionRadius, ob.Pos, ob.Radius)
			if !ok {
				continue
			}
			w.Pos = geom.ClampVec01(geom.Add(w.Pos, geom.Scale(overlap.Direction, overlap.Depth)))
		}
	}

	for i := range ctx.Grid.Hazards.All() {
		h, _ := ctx.Grid.Hazards.At(i)
		if h.Kind == worldgrid.HazardIce {
			continue
		}
		d := geom.Distance(w.Pos, h.Pos)
		if d < h.Radius {
			away := geom.DirectionTo(h.Pos, w.Pos)
			w.Pos = geom.ClampVec01(geom.Add(w.Pos, geom.Scale(away, h.Radius-d)))
		}
	}
}

// LatchResult reports the outcome of one TryLungeHit call: whether the
// lunge landed (good for the wolf, bad for the player), was
// blocked/parried (bad for the wolf), and whether it triggered a
// back-attack latch.
type LatchResult struct {
	Landed    bool
	Blocked   bool
	Latched   bool
	WolfIndex int
}

func (w *Wolf) emotionDamageMult() float32 {
	if w.EmotionVal == Aggressive || w.EmotionVal == Confident {
		return 1.2
	}
	return 1
}

// TryLungeHit resolves this wolf's lunge against the player, per
// spec.md §4.D's collision step: while lunging and within ATTACK_RANGE,
// call handle_incoming_attack. A landed hit (0) deals lungeDamage scaled
// by aggression and emotion; one landing on the player's back (player
// facing dot the player-to-wolf direction < -0.5) additionally starts a
// latch. A parry
// stuns the wolf; any other non-landed result is a whiff/block.
func (w *Wolf) TryLungeHit(p *player.Player, simTime float32) LatchResult {
	if !w.lunging {
		return LatchResult{}
	}
	dist := geom.Distance(w.Pos, p.Pos)
	if dist > attackRange {
		return LatchResult{}
	}

	result := p.HandleIncomingAttack(simTime, w.Pos, w.LungeDir)
	switch result {
	case player.HitPerfectParry:
		w.ApplyStun(player.ParryStunDuration, simTime)
		w.FailedAttacks++
		return LatchResult{Blocked: true, WolfIndex: w.idx}
	case player.HitBlocked:
		w.FailedAttacks++
		return LatchResult{Blocked: true, WolfIndex: w.idx}
	case player.HitOutOfRangeOrInvuln:
		return LatchResult{}
	}

	damage := lungeDamage * (0.8 + w.Aggression*0.4) * w.emotionDamageMult()
	p.ApplyWolfDamage(damage)
	w.SuccessfulAttacks++

	attackerDir := geom.DirectionTo(p.Pos, w.Pos)
	if geom.Dot(p.Facing, attackerDir) < -0.5 {
		return LatchResult{Landed: true, Latched: true, WolfIndex: w.idx}
	}
	return LatchResult{Landed: true, WolfIndex: w.idx}
}

func (w *Wolf) updateAnimation(ctx PerceptionContext) {
	speed := geom.Length(w.Vel)
	w.AnimLegPhase = speed / maxSpeed
	w.AnimScaleX, w.AnimScaleY = 1, 1
	w.AnimBodyStretch = 1 + speed*0.3
	w.AnimHeadTilt = w.EmotionIntensity * 0.2
	w.AnimTailWag = w.Morale
	w.AnimEarPerk = boolToF32(w.Noticed)
	w.AnimGrowlPulse = boolToF32(w.lunging)
	w.AnimHackles = boolToF32(w.EmotionVal == Aggressive || w.EmotionVal == Frustrated)
	if geom.Length(w.Vel) > 1e-6 {
		w.AnimRotation = 0
	}
}

func boolToF32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
