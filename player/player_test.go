package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wolfden/geom"
	"wolfden/rng"
	"wolfden/worldgrid"
)

type fakeEnemy struct {
	id     int
	pos    geom.Vec2
	facing geom.Vec2
	alive  bool
	hp     float32
	hits   int
}

func (e *fakeEnemy) ID() int               { return e.id }
func (e *fakeEnemy) Position() geom.Vec2   { return e.pos }
func (e *fakeEnemy) Facing() geom.Vec2     { return e.facing }
func (e *fakeEnemy) Alive() bool           { return e.alive }
func (e *fakeEnemy) IsWolf() bool          { return true }
func (e *fakeEnemy) CancelFeintAndLunge()  {}
func (e *fakeEnemy) ApplyHit(dmg float32, kb geom.Vec2) {
	e.hits++
	e.hp -= dmg
	if e.hp <= 0 {
		e.alive = false
	}
}

func TestNewPlayer(t *testing.T) {
	Convey("New", t, func() {
		p := New(0, geom.Vec2{X: 0.05, Y: 0.05})
		So(p.HP, ShouldEqual, float32(1))
		So(p.Stamina, ShouldEqual, float32(1))
		So(p.LatchEnemyIdx, ShouldEqual, -1)
		So(p.AttackStateVal, ShouldEqual, AttackIdle)
	})
}

func TestAttackHitsAndDamagesEnemy(t *testing.T) {
	Convey("a light attack in range and arc damages the enemy", t, func() {
		p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
		p.Facing = geom.Vec2{X: 1, Y: 0}
		enemy := &fakeEnemy{id: 1, pos: geom.Vec2{X: 0.53, Y: 0.5}, alive: true, hp: 1}
		stream := rng.New(1)

		in := Input{Light: true}
		simTime := float32(0)
		p.Tick(0.016, simTime, in, &worldgrid.Obstacles{}, []EnemyTarget{enemy}, stream)
		So(p.AttackStateVal, ShouldEqual, AttackWindup)

		for p.AttackStateVal != AttackActive {
			simTime += 0.016
			p.Tick(0.016, simTime, Input{}, &worldgrid.Obstacles{}, []EnemyTarget{enemy}, stream)
		}
		simTime += 0.016
		p.Tick(0.016, simTime, Input{}, &worldgrid.Obstacles{}, []EnemyTarget{enemy}, stream)

		So(enemy.hits, ShouldEqual, 1)
		So(enemy.hp, ShouldBeLessThan, float32(1))
	})
}

func TestHandleIncomingAttack(t *testing.T) {
	Convey("HandleIncomingAttack", t, func() {
		Convey("out of range returns -1", func() {
			p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
			result := p.HandleIncomingAttack(0, geom.Vec2{X: 0.9, Y: 0.9}, geom.Vec2{X: 1, Y: 0})
			So(result, ShouldEqual, HitOutOfRangeOrInvuln)
		})

		Convey("rolling grants i-frames", func() {
			p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
			p.RollStateVal = RollActive
			result := p.HandleIncomingAttack(0, geom.Vec2{X: 0.52, Y: 0.5}, geom.Vec2{X: -1, Y: 0})
			So(result, ShouldEqual, HitOutOfRangeOrInvuln)
		})

		Convey("a perfect parry within the window restores stamina and opens a counter window", func() {
			p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
			p.Stamina = 0.2
			p.Blocking = true
			p.BlockFace = geom.Vec2{X: -1, Y: 0}
			p.BlockStartTime = 1.0
			result := p.HandleIncomingAttack(1.05, geom.Vec2{X: 0.52, Y: 0.5}, geom.Vec2{X: -1, Y: 0})
			So(result, ShouldEqual, HitPerfectParry)
			So(p.Stamina, ShouldEqual, float32(1))
			So(p.CanCounter, ShouldBeTrue)
		})

		Convey("blocking outside the parry window is a normal block", func() {
			p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
			p.Blocking = true
			p.BlockFace = geom.Vec2{X: -1, Y: 0}
			p.BlockStartTime = 0
			result := p.HandleIncomingAttack(1.0, geom.Vec2{X: 0.52, Y: 0.5}, geom.Vec2{X: -1, Y: 0})
			So(result, ShouldEqual, HitBlocked)
		})

		Convey("an undefended hit within range lands", func() {
			p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
			result := p.HandleIncomingAttack(0, geom.Vec2{X: 0.52, Y: 0.5}, geom.Vec2{X: -1, Y: 0})
			So(result, ShouldEqual, HitLanded)
		})
	})
}

func TestStatusEffectRoundTrip(t *testing.T) {
	Convey("applying then removing a status effect restores modifiers to 1", t, func() {
		p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
		p.ApplyDamageBoost(5, 0.5)
		p.Statuses.Update(0, 0, nil)
		So(p.Statuses.DamageModifier, ShouldBeGreaterThan, float32(1))

		p.RemoveStatusEffect(DamageBoost)
		p.Statuses.Update(0, 0, nil)
		So(p.Statuses.DamageModifier, ShouldEqual, float32(1))
	})
}

func TestRollIframesAndMovementLock(t *testing.T) {
	Convey("rolling grants i-frames and locks movement to the roll direction", t, func() {
		p := New(3, geom.Vec2{X: 0.5, Y: 0.5})
		stream := rng.New(1)
		p.Tick(0.016, 0, Input{Rolling: true, MoveX: 1, MoveY: 0}, &worldgrid.Obstacles{}, nil, stream)
		So(p.RollStateVal, ShouldEqual, RollActive)
		So(p.RollDir, ShouldResemble, geom.Vec2{X: 1, Y: 0})
		result := p.HandleIncomingAttack(0.016, geom.Add(p.Pos, geom.Vec2{X: 0.02, Y: 0}), geom.Vec2{X: -1, Y: 0})
		So(result, ShouldEqual, HitOutOfRangeOrInvuln)
	})
}

func TestPositionStaysClamped(t *testing.T) {
	Convey("position never leaves the unit square", t, func() {
		p := New(3, geom.Vec2{X: 0.01, Y: 0.01})
		p.Vel = geom.Vec2{X: -5, Y: -5}
		stream := rng.New(1)
		for i := 0; i < 10; i++ {
			p.Tick(0.1, float32(i)*0.1, Input{}, &worldgrid.Obstacles{}, nil, stream)
		}
		So(p.Pos.X, ShouldBeGreaterThanOrEqualTo, float32(0))
		So(p.Pos.Y, ShouldBeGreaterThanOrEqualTo, float32(0))
	})
}
