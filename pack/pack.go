// Package pack implements components G and H: the pack controller (plan
// selection, role assignment, morale, respawn slots) layered on top of
// package wolf, plus the alpha/vocalization/scent-tracking/adaptive-AI
// subsystems from spec.md §4.E/§4.F.
package pack

import (
	"wolfden/geom"
	"wolfden/player"
	"wolfden/rng"
	"wolfden/wolf"
	"wolfden/worldgrid"
)

const (
	maxWolves      = 16
	maxSlots       = 3
	respawnTimer   float32 = 30
	howlCooldown   float32 = 8
	encircleCooldown float32 = 5
	commBroadcastRange float32 = 0.4
	alphaAuraRange float32 = 0.4
)

// Slot tracks one of the 3 independent wolf-pack spawn groups.
type Slot struct {
	Alive        bool
	DeathTime    float32
	RespawnTimer float32
	MemberIndices []int
	Center       geom.Vec2
}

// Controller is the pack-level state shared by every wolf in a run
// (spec.md §3 "Pack-level state").
type Controller struct {
	Wolves []*wolf.Wolf

	Plan           wolf.Plan
	Morale         float32
	SyncTimer      float32
	LastSuccessTime, LastFailureTime float32
	PlayerSkillEstimate float32
	PeakWolves     int
	HowlCooldownUntil float32
	LastEncircleTime  float32

	AlphaIndex     int // -1 if none
	AlphaCooldowns map[AlphaAbility]float32
	EnrageActive   bool
	EnrageEndTime  float32
	alphaMournedFor int // wolf index the mourning howl has already fired for; -1 if none pending

	Slots [maxSlots]Slot

	Vocalizations VocalRing

	adaptive adaptiveState
}

// New returns a pack controller with maxWolves inactive slots and the 3
// respawn slots seeded (all dead, ready to spawn on first update).
func New() *Controller {
	c := &Controller{
		Wolves:         make([]*wolf.Wolf, maxWolves),
		AlphaIndex:     -1,
		AlphaCooldowns: map[AlphaAbility]float32{},
		alphaMournedFor: -1,
		adaptive:       newAdaptiveState(),
		LastSuccessTime: -1000,
		LastFailureTime: -1000,
	}
	for i := range c.Wolves {
		c.Wolves[i] = wolf.New(i, i%maxSlots)
	}
	for s := range c.Slots {
		c.Slots[s].Alive = false
		c.Slots[s].DeathTime = -1000
		c.Slots[s].RespawnTimer = 0
	}
	return c
}

// ActiveWolves returns every currently-alive wolf.
func (c *Controller) ActiveWolves() []*wolf.Wolf {
	out := make([]*wolf.Wolf, 0, maxWolves)
	for _, w := range c.Wolves {
		if w.Alive() {
			out = append(out, w)
		}
	}
	return out
}

// SpawnPack activates n wolves (3-5 typical) around center for slot s.
func (c *Controller) SpawnPack(s int, center geom.Vec2, n int, stream *rng.Stream) int {
	spawned := 0
	var members []int
	for _, w := range c.Wolves {
		if spawned >= n {
			break
		}
		if w.Alive() {
			continue
		}
		offset := geom.Vec2{X: (stream.F01() - 0.5) * 0.1, Y: (stream.F01() - 0.5) * 0.1}
		w.Spawn(geom.ClampVec01(geom.Add(center, offset)), stream)
		members = append(members, w.ID())
		spawned++
	}
	c.Slots[s].Alive = spawned > 0
	c.Slots[s].MemberIndices = members
	c.Slots[s].Center = center
	return spawned
}

// ClearEnemies deactivates every wolf and resets respawn slots, per the
// clear_enemies setter (spec.md §6).
func (c *Controller) ClearEnemies() {
	for _, w := range c.Wolves {
		w.Deactivate()
	}
	for s := range c.Slots {
		c.Slots[s] = Slot{DeathTime: -1000}
	}
	c.AlphaIndex = -1
	c.alphaMournedFor = -1
}

// SpawnWolves spawns n wolves around center into the first dead slot (or
// slot 0 if all are alive), per the spawn_wolves setter (spec.md §6).
func (c *Controller) SpawnWolves(center geom.Vec2, n int, stream *rng.Stream) int {
	for s := range c.Slots {
		if !c.Slots[s].Alive {
			return c.SpawnPack(s, center, n, stream)
		}
	}
	return c.SpawnPack(0, center, n, stream)
}

// aggregates is the per-tick summary computed once before any per-wolf
// update (spec.md §4.E).
type aggregates struct {
	avgHealth, avgFatigue, avgDist float32
	n, healthy int
}

func (c *Controller) computeAggregates(playerPos geom.Vec2) aggregates {
	var a aggregates
	active := c.ActiveWolves()
	a.n = len(active)
	if a.n == 0 {
		return a
	}
	var sumHealth, sumFatigue, sumDist float32
	for _, w := range active {
		sumHealth += w.Health
		sumFatigue += w.Fatigue
		sumDist += geom.Distance(w.Pos, playerPos)
		if w.Health > 0.5 {
			a.healthy++
		}
	}
	a.avgHealth = sumHealth / float32(a.n)
	a.avgFatigue = sumFatigue / float32(a.n)
	a.avgDist = sumDist / float32(a.n)
	return a
}

func (c *Controller) selectPlan(a aggregates) wolf.Plan {
	switch {
	case a.avgHealth < 0.3 || a.avgFatigue > 0.8:
		return wolf.PlanRetreat
	case a.avgDist > 0.35 && c.PlayerSkillEstimate < 0.4 && a.n >= 3:
		return wolf.PlanAmbush
	case a.avgDist > 0.35:
		return wolf.PlanStalk
	case a.avgDist > 0.16 && a.n >= 4 && c.Morale > 0.6:
		return wolf.PlanPincer
	case a.avgDist > 0.16:
		return wolf.PlanEncircle
	case c.Morale > 0.65 && a.avgFatigue < 0.5:
		return wolf.PlanCommit
	default:
		return wolf.PlanHarass
	}
}

// UpdatePackController performs the once-per-tick aggregate update,
// player-skill retargeting, morale, plan selection and role assignment
// (spec.md §4.E), ahead of the per-wolf Update loop.
func (c *Controller) UpdatePackController(simTime, dt float32, playerPos geom.Vec2, playerHPDeficit float32, stream *rng.Stream) {
	a := c.computeAggregates(playerPos)
	if a.n > c.PeakWolves {
		c.PeakWolves = a.n
	}

	recentSuccess := simTime-c.LastSuccessTime < 5
	recentFailure := simTime-c.LastFailureTime < 5
	switch {
	case recentSuccess:
		c.PlayerSkillEstimate = minF32(1, c.PlayerSkillEstimate*0.98)
	case recentFailure:
		c.PlayerSkillEstimate = minF32(1, c.PlayerSkillEstimate*1.02)
	}

	healthyFraction := float32(0)
	if a.n > 0 {
		healthyFraction = float32(a.healthy) / float32(a.n)
	}
	successBonus := float32(0)
	if recentSuccess && !recentFailure {
		successBonus = 0.1
	}
	c.Morale = 0.4*a.avgHealth + 0.3*(1-a.avgFatigue) + 0.3*healthyFraction + successBonus
	c.Morale = geom.Clamp01(c.Morale)

	c.Plan = c.selectPlan(a)
	c.assignRoles(playerPos, a)

	if c.Morale > 0.75 && playerHPDeficit > 0.35 && simTime >= c.HowlCooldownUntil {
		c.reinforcementHowl(playerPos, stream)
		c.HowlCooldownUntil = simTime + howlCooldown
	} else if simTime >= c.LastEncircleTime+encircleCooldown {
		c.Plan = wolf.PlanEncircle
		c.LastEncircleTime = simTime
	}

	c.updateSlots(simTime, dt, playerPos, stream)
	c.updateAlpha(simTime, stream)
	c.adaptive.update(simTime, c)
}

func (c *Controller) reinforcementHowl(playerPos geom.Vec2, stream *rng.Stream) {
	angle := stream.F01() * 6.28318
	dist := 0.55 + stream.F01()*0.30
	point := geom.Vec2{
		X: geom.Clamp01(playerPos.X + dist*cos32(angle)),
		Y: geom.Clamp01(playerPos.Y + dist*sin32(angle)),
	}
	for s := range c.Slots {
		if c.Slots[s].Alive {
			c.SpawnPack(s, point, 1, stream)
			return
		}
	}
}

func (c *Controller) assignRoles(playerPos geom.Vec2, a aggregates) {
	active := c.ActiveWolves()
	for _, w := range active {
		w.Role = wolf.RoleNone
	}
	if len(active) == 0 {
		return
	}

	lead := active[0]
	bestScore := float32(-1)
	for _, w := range active {
		d := geom.Distance(w.Pos, playerPos)
		score := (1 / (d*d + 1e-4)) * w.Health * (1 - w.Fatigue)
		if score > bestScore {
			bestScore = score
			lead = w
		}
	}
	lead.Role = wolf.RoleLead

	toPlayer := geom.Sub(playerPos, lead.Pos)
	for _, w := range active {
		if w == lead {
			continue
		}
		toW := geom.Sub(w.Pos, playerPos)
		cross := toPlayer.X*toW.Y - toPlayer.Y*toW.X
		if cross > 0 {
			w.Role = wolf.RoleFlankL
		} else {
			w.Role = wolf.RoleFlankR
		}
	}

	if c.Plan == wolf.PlanAmbush {
		var furthest *wolf.Wolf
		best := float32(-1)
		for _, w := range active {
			if w.Health <= 0.5 {
				continue
			}
			d := geom.Distance(w.Pos, playerPos)
			if d > best {
				best = d
				furthest = w
			}
		}
		if furthest != nil {
			furthest.Role = wolf.RoleAmbusher
		}
	}
	if c.Plan == wolf.PlanPincer {
		for _, w := range active {
			if w.Role == wolf.RoleFlankR {
				w.Role = wolf.RoleScout
				break
			}
		}
	}

	var harasser *wolf.Wolf
	best := float32(-1)
	for _, w := range active {
		d := geom.Distance(w.Pos, playerPos)
		if d > best {
			best = d
			harasser = w
		}
	}
	if harasser != nil && harasser.Role == wolf.RoleNone {
		harasser.Role = wolf.RolePupGuard
	}

	for _, w := range active {
		if geom.Distance(w.Pos, lead.Pos) <= commBroadcastRange {
			w.MemoryConfidence = minF32(1, w.MemoryConfidence+0.1)
		}
	}
}

func (c *Controller) updateSlots(simTime, dt float32, playerPos geom.Vec2, stream *rng.Stream) {
	for s := range c.Slots {
		slot := &c.Slots[s]
		stillAlive := false
		for _, idx := range slot.MemberIndices {
			if c.Wolves[idx].Alive() {
				stillAlive = true
				break
			}
		}
		if slot.Alive && !stillAlive {
			slot.Alive = false
			slot.DeathTime = simTime
		}
		if !slot.Alive && simTime-slot.DeathTime >= respawnTimer {
			away := geom.Normalize(geom.Vec2{X: stream.F01() - 0.5, Y: stream.F01() - 0.5})
			center := geom.ClampVec01(geom.Add(playerPos, geom.Scale(away, 0.6)))
			n := 3 + stream.IntN(3)
			c.SpawnPack(s, center, n, stream)
			slot.DeathTime = -1000
		}
	}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Step drives the full per-tick pack pipeline: controller aggregates,
// then every active wolf's perception/steering/movement, then the
// resulting lunge collision against the player.
func (c *Controller) Step(simTime, dt float32, p *player.Player, grid *worldgrid.Grid, wind geom.Vec2, stream *rng.Stream) {
	playerHPDeficit := 1 - p.HP
	c.UpdatePackController(simTime, dt, p.Pos, playerHPDeficit, stream)

	active := c.ActiveWolves()
	for _, w := range active {
		ctx := wolf.PerceptionContext{
			PlayerPos:           p.Pos,
			PlayerFacing:        p.Facing,
			Wind:                wind,
			SimTime:             simTime,
			Dt:                  dt,
			Grid:                grid,
			Obstacles:           grid.Obstacles,
			Plan:                c.Plan,
			PackMorale:          c.Morale,
			PlayerSkillEstimate: c.PlayerSkillEstimate,
			OtherWolves:         active,
			Den:                 c.Slots[w.PackID].Center,
		}
		w.Update(ctx, stream)

		result := w.TryLungeHit(p, simTime)
		if result.Landed {
			c.LastSuccessTime = simTime
			c.NoteHitTaken()
		}
		if result.Blocked {
			c.LastFailureTime = simTime
			c.NoteBlock()
		}
		if result.Latched {
			p.Latched = true
			p.LatchEndTime = simTime + 1.0
			p.LatchEnemyIdx = result.WolfIndex
		}
	}

	c.updateVocalizations(simTime, active)
	c.updateScentTracking(simTime, dt, p.Pos, grid)
}
