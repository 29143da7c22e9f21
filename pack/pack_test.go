package pack

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wolfden/geom"
	"wolfden/player"
	"wolfden/rng"
	"wolfden/wolf"
	"wolfden/worldgrid"
)

func TestNewController(t *testing.T) {
	Convey("New seeds maxWolves inactive slots and no active wolves", t, func() {
		c := New()
		So(len(c.Wolves), ShouldEqual, maxWolves)
		So(len(c.ActiveWolves()), ShouldEqual, 0)
		So(c.AlphaIndex, ShouldEqual, -1)
	})
}

func TestSpawnPack(t *testing.T) {
	Convey("SpawnPack activates n wolves clustered around center", t, func() {
		c := New()
		stream := rng.New(11)
		n := c.SpawnPack(0, geom.Vec2{X: 0.4, Y: 0.4}, 4, stream)
		So(n, ShouldEqual, 4)
		So(len(c.ActiveWolves()), ShouldEqual, 4)
		So(c.Slots[0].Alive, ShouldBeTrue)
	})
}

func TestSelectPlan(t *testing.T) {
	Convey("selectPlan", t, func() {
		c := New()
		Convey("low average health triggers Retreat", func() {
			So(c.selectPlan(aggregates{avgHealth: 0.1, n: 3}), ShouldEqual, wolf.PlanRetreat)
		})
		Convey("far average distance with low player skill triggers Ambush", func() {
			c.PlayerSkillEstimate = 0.1
			So(c.selectPlan(aggregates{avgHealth: 1, avgDist: 0.5, n: 3}), ShouldEqual, wolf.PlanAmbush)
		})
		Convey("close distance and high morale triggers Commit", func() {
			c.Morale = 0.8
			So(c.selectPlan(aggregates{avgHealth: 1, avgFatigue: 0.1, avgDist: 0.05, n: 3}), ShouldEqual, wolf.PlanCommit)
		})
	})
}

func TestAssignRoles(t *testing.T) {
	Convey("assignRoles gives exactly one Lead and splits flanks by side", t, func() {
		c := New()
		stream := rng.New(3)
		c.SpawnPack(0, geom.Vec2{X: 0.5, Y: 0.5}, 3, stream)
		c.Wolves[0].Pos = geom.Vec2{X: 0.49, Y: 0.5}
		c.Wolves[1].Pos = geom.Vec2{X: 0.5, Y: 0.6}
		c.Wolves[2].Pos = geom.Vec2{X: 0.5, Y: 0.4}

		a := c.computeAggregates(geom.Vec2{X: 0.5, Y: 0.5})
		c.assignRoles(geom.Vec2{X: 0.5, Y: 0.5}, a)

		leads := 0
		for _, w := range c.ActiveWolves() {
			if w.Role == wolf.RoleLead {
				leads++
			}
		}
		So(leads, ShouldEqual, 1)
	})
}

func TestUpdateSlotsRespawns(t *testing.T) {
	Convey("a dead slot respawns 3-5 wolves after respawnTimer seconds", t, func() {
		c := New()
		stream := rng.New(5)
		c.SpawnPack(0, geom.Vec2{X: 0.5, Y: 0.5}, 3, stream)
		for _, idx := range c.Slots[0].MemberIndices {
			c.Wolves[idx].ApplyHit(2, geom.Vec2{})
		}
		c.updateSlots(0, 0.1, geom.Vec2{X: 0.5, Y: 0.5}, stream)
		So(c.Slots[0].Alive, ShouldBeFalse)

		c.updateSlots(respawnTimer+1, 0.1, geom.Vec2{X: 0.5, Y: 0.5}, stream)
		So(c.Slots[0].Alive, ShouldBeTrue)
		So(len(c.Slots[0].MemberIndices), ShouldBeGreaterThanOrEqualTo, 3)
	})
}

func TestUpdateAlphaSelectsAndMourns(t *testing.T) {
	Convey("updateAlpha", t, func() {
		c := New()
		stream := rng.New(9)
		c.SpawnPack(0, geom.Vec2{X: 0.5, Y: 0.5}, 3, stream)
		for _, w := range c.ActiveWolves() {
			w.Health, w.Aggression, w.Intelligence = 0.9, 0.9, 0.9
		}

		c.updateAlpha(0, stream)
		So(c.AlphaIndex, ShouldBeGreaterThanOrEqualTo, 0)

		alphaIdx := c.AlphaIndex
		c.Wolves[alphaIdx].ApplyHit(2, geom.Vec2{})
		c.updateAlpha(1, stream)
		So(c.AlphaIndex, ShouldBeGreaterThanOrEqualTo, 0)
		So(c.AlphaIndex, ShouldNotEqual, alphaIdx)
		So(c.alphaMournedFor, ShouldEqual, alphaIdx)
	})
}

func TestVocalRingOverwritesOldest(t *testing.T) {
	Convey("VocalRing holds at most maxVocalizations entries", t, func() {
		var r VocalRing
		for i := 0; i < maxVocalizations+5; i++ {
			r.emit(Vocalization{Kind: VocalBark, Pos: geom.Vec2{}, Time: float32(i)})
		}
		So(r.count, ShouldEqual, maxVocalizations)
		So(r.items[0].Time, ShouldEqual, float32(maxVocalizations))
	})
}

func TestAdaptiveStateRetargets(t *testing.T) {
	Convey("adaptiveState.update only retargets every adaptiveRetargetInterval seconds", t, func() {
		a := newAdaptiveState()
		c := New()
		a.NoteDodge()
		a.NoteKill()
		a.update(1, c)
		So(a.lastRetarget, ShouldEqual, float32(0))

		a.update(adaptiveRetargetInterval+1, c)
		So(a.lastRetarget, ShouldEqual, adaptiveRetargetInterval+1)
	})
}

func TestControllerStep(t *testing.T) {
	Convey("Step runs the full pack pipeline without panicking", t, func() {
		c := New()
		stream := rng.New(21)
		grid := worldgrid.Init(stream)
		c.SpawnPack(0, geom.Vec2{X: 0.2, Y: 0.2}, 3, stream)
		p := player.New(0, geom.Vec2{X: 0.5, Y: 0.5})

		c.Step(0, 1.0/60.0, p, grid, geom.Vec2{X: 0.1, Y: 0}, stream)
		So(len(c.ActiveWolves()), ShouldBeGreaterThan, 0)
	})
}
