package wolf

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wolfden/geom"
	"wolfden/player"
	"wolfden/rng"
	"wolfden/worldgrid"
)

func newCtx(g *worldgrid.Grid, playerPos geom.Vec2) PerceptionContext {
	return PerceptionContext{
		PlayerPos:    playerPos,
		PlayerFacing: geom.Vec2{X: 1, Y: 0},
		Grid:         g,
		Obstacles:    g.Obstacles,
		Dt:           0.1,
	}
}

func TestSpawnAndLifecycle(t *testing.T) {
	Convey("Spawn activates a wolf with full health", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{X: 0.2, Y: 0.2}, rng.New(1))
		So(w.Active, ShouldBeTrue)
		So(w.Health, ShouldEqual, float32(1))
		So(w.Alive(), ShouldBeTrue)
	})

	Convey("ApplyHit deactivates the slot at health<=0", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{}, rng.New(1))
		w.ApplyHit(1.5, geom.Vec2{})
		So(w.Health, ShouldEqual, float32(0))
		So(w.Active, ShouldBeFalse)
		So(w.Alive(), ShouldBeFalse)
	})
}

func TestPerceptionSight(t *testing.T) {
	Convey("a wolf within ENEMY_SEEK_RANGE notices and sets full memory confidence", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{X: 0.5, Y: 0.5}, rng.New(1))
		g := worldgrid.Init(rng.New(2))
		ctx := newCtx(g, geom.Vec2{X: 0.52, Y: 0.5})
		w.perceive(ctx)
		So(w.MemoryConfidence, ShouldEqual, float32(1))
		So(w.Noticed, ShouldBeTrue)
	})

	Convey("memory confidence decays when the player is out of sight", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{X: 0.1, Y: 0.1}, rng.New(1))
		w.MemoryConfidence = 1
		g := worldgrid.Init(rng.New(2))
		ctx := newCtx(g, geom.Vec2{X: 0.9, Y: 0.9})
		ctx.Dt = 0.5
		w.perceive(ctx)
		So(w.MemoryConfidence, ShouldBeLessThan, float32(1))
	})
}

func TestEmotionalTransitions(t *testing.T) {
	Convey("low hp and high fatigue transitions to Fearful", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{}, rng.New(1))
		w.Health = 0.2
		w.Fatigue = 0.8
		w.updateEmotion(PerceptionContext{})
		So(w.EmotionVal, ShouldEqual, Fearful)
	})

	Convey("recent damage transitions to Aggressive", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{}, rng.New(1))
		w.LastDamageTime = 0.9
		w.updateEmotion(PerceptionContext{SimTime: 1.0})
		So(w.EmotionVal, ShouldEqual, Aggressive)
	})
}

func TestLungeGateRequiresNoticeDelay(t *testing.T) {
	Convey("a wolf does not lunge before the notice delay elapses", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{X: 0.5, Y: 0.5}, rng.New(1))
		w.Noticed = true
		w.NoticeTime = 0
		g := worldgrid.Init(rng.New(2))
		ctx := newCtx(g, geom.Vec2{X: 0.52, Y: 0.5})
		ctx.SimTime = 0.1
		stream := rng.New(3)
		w.decideLungeOrFeint(ctx, geom.Vec2{X: 1, Y: 0}, stream)
		So(w.lunging, ShouldBeFalse)
		So(w.feinting, ShouldBeFalse)
	})
}

func TestTryLungeHit(t *testing.T) {
	Convey("a lunging wolf within attack range can land a hit and latch on a back attack", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{X: 0.5, Y: 0.45}, rng.New(1))
		w.lunging = true
		w.LungeDir = geom.Vec2{X: 0, Y: 1}

		p := player.New(3, geom.Vec2{X: 0.5, Y: 0.5})
		p.Facing = geom.Vec2{X: 0, Y: 1} // player facing away from the wolf: back-attack

		result := w.TryLungeHit(p, 0)
		So(result.Latched, ShouldBeTrue)
		So(result.WolfIndex, ShouldEqual, 0)
	})

	Convey("a lunge outside attack range does not resolve a hit", t, func() {
		w := New(0, 0)
		w.Spawn(geom.Vec2{X: 0.1, Y: 0.1}, rng.New(1))
		w.lunging = true
		p := player.New(3, geom.Vec2{X: 0.9, Y: 0.9})
		result := w.TryLungeHit(p, 0)
		So(result.Latched, ShouldBeFalse)
	})
}

func TestAsEnemyTargetSatisfiesInterface(t *testing.T) {
	Convey("AsEnemyTarget exposes a player.EnemyTarget", t, func() {
		w := New(2, 0)
		w.Spawn(geom.Vec2{X: 0.3, Y: 0.3}, rng.New(1))
		var target player.EnemyTarget = w.AsEnemyTarget()
		So(target.ID(), ShouldEqual, 2)
		So(target.Alive(), ShouldBeTrue)
		So(target.IsWolf(), ShouldBeTrue)
	})
}
