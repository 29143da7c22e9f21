package sim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"wolfden/geom"
	"wolfden/player"
	"wolfden/wolf"
)

func TestInitRunSeedsDeterministicGrid(t *testing.T) {
	Convey("InitRun with the same seed produces identical grids", t, func() {
		a := InitRun(42, 0)
		b := InitRun(42, 0)
		So(a.Grid.Biome, ShouldEqual, b.Grid.Biome)
		So(a.Grid.Spawn, ShouldResemble, b.Grid.Spawn)
		So(a.Player.Pos, ShouldResemble, b.Player.Pos)
	})

	Convey("InitRun builds a grid for other seeds too", t, func() {
		a := InitRun(1, 0)
		b := InitRun(2, 0)
		So(a.Grid.Obstacles.Count(), ShouldBeGreaterThanOrEqualTo, 0)
		So(b.Grid.Obstacles.Count(), ShouldBeGreaterThanOrEqualTo, 0)
	})
}

func TestStepAdvancesClockAndRecomputesOverlay(t *testing.T) {
	Convey("Step advances SimTime and recomputes the animation overlay", t, func() {
		w := InitRun(7, 0)
		w.Start()
		before := w.SimTime
		w.Step(0.016)
		So(w.SimTime, ShouldAlmostEqual, before+0.016, 1e-6)
		So(w.Player.AnimScaleX, ShouldEqual, float32(1))
	})
}

func TestSetPlayerInputDrivesMovement(t *testing.T) {
	Convey("a sustained rightward input moves the player right over several ticks", t, func() {
		w := InitRun(11, 0)
		w.Start()
		w.Player.Pos = geom.Vec2{X: 0.5, Y: 0.5}
		startX := w.Player.Pos.X

		w.SetPlayerInput(1, 0, false, false, false, false, false, false)
		for i := 0; i < 30; i++ {
			w.Step(0.016)
		}
		So(w.Player.Pos.X, ShouldBeGreaterThan, startX)
	})
}

func TestHandleIncomingAttackBlockedWhileBlocking(t *testing.T) {
	Convey("an attack from the blocked direction is absorbed", t, func() {
		w := InitRun(13, 0)
		w.Start()
		w.Player.Pos = geom.Vec2{X: 0.5, Y: 0.5}
		w.SetBlocking(true, -1, 0)
		w.SimTime += 0.5 // past the parry window, so this is a plain block

		result := w.HandleIncomingAttack(0.52, 0.5, -1, 0)
		So(result, ShouldEqual, 1) // HitBlocked
	})
}

func TestClearAndSpawnWolves(t *testing.T) {
	Convey("ClearEnemies empties the pack, SpawnWolves repopulates it", t, func() {
		w := InitRun(21, 0)
		w.Start()
		w.ClearEnemies()
		So(w.GetEnemyCount(), ShouldEqual, 0)

		spawned := w.SpawnWolves(3)
		So(spawned, ShouldBeGreaterThan, 0)
		So(w.GetEnemyCount(), ShouldEqual, spawned)
	})
}

func TestCommitChoiceAppliesEffect(t *testing.T) {
	Convey("committing an offered choice applies its tagged multiplier", t, func() {
		w := InitRun(31, 0)
		w.Start()
		w.Runloop.WolfKillsSinceChoice = 3
		w.Runloop.Step(0, 0.1, w.PlayerElementTag, w.Player.Stamina, w.Stream)
		So(w.GetPhase(), ShouldEqual, 2) // PhaseChoose

		id := w.GetOfferID(0)
		if id < 0 {
			id = w.GetOfferID(1)
		}
		if id < 0 {
			id = w.GetOfferID(2)
		}
		So(id, ShouldBeGreaterThanOrEqualTo, 0)

		mults := func() [6]float32 {
			p := w.Player
			return [6]float32{p.MaxStamina, p.DefenseMult, p.AttackDamageMult, p.SpeedMult, p.LifestealFraction, p.TreasureMult}
		}
		before := mults()
		ok := w.CommitChoice(id)
		So(ok, ShouldEqual, 1)
		So(w.GetPhase(), ShouldEqual, 3) // PhasePowerUp
		So(mults(), ShouldNotResemble, before)
	})
}

func TestRoomTransitionRegeneratesGrid(t *testing.T) {
	Convey("reaching an exit advances room_count and respawns the player", t, func() {
		w := InitRun(41, 0)
		w.Start()
		w.Player.Pos = w.Grid.Exits[0].Pos
		startRoom := w.Runloop.RoomCount
		w.Step(0.016)
		So(w.Runloop.RoomCount, ShouldEqual, startRoom+1)
		So(w.Player.Pos, ShouldResemble, w.Grid.Spawn)
	})
}

func TestResolveEntityCollisionsPushesOverlappingDiscsApart(t *testing.T) {
	Convey("a wolf spawned on top of the player is pushed off by the end of the tick", t, func() {
		w := InitRun(61, 0)
		w.Start()
		w.ClearEnemies()
		w.Player.Pos = geom.Vec2{X: 0.5, Y: 0.5}

		So(w.SpawnWolves(1), ShouldBeGreaterThan, 0)
		wf := w.Pack.Wolves[0]
		wf.Pos = w.Player.Pos

		w.Step(0.016)

		dist := geom.Distance(w.Player.Pos, wf.Pos)
		So(dist, ShouldBeGreaterThanOrEqualTo, player.CollisionRadius+wolf.CollisionRadius-1e-3)
	})
}

func TestSnapshotDeterminismAcrossPeers(t *testing.T) {
	Convey("two worlds stepped from the same seed with the same inputs snapshot identically", t, func() {
		a := InitRun(77, 0)
		b := InitRun(77, 0)
		a.Start()
		b.Start()

		for i := 0; i < 20; i++ {
			a.SetPlayerInput(0.3, -0.2, false, false, i%7 == 0, false, false, false)
			b.SetPlayerInput(0.3, -0.2, false, false, i%7 == 0, false, false, false)
			a.Step(0.016)
			b.Step(0.016)
		}

		diff := cmp.Diff(a.Snapshot(), b.Snapshot())
		So(diff, ShouldBeEmpty)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	Convey("Snapshot reflects the current player HP and phase", t, func() {
		w := InitRun(51, 0)
		w.Start()
		w.Player.HP = 0.75
		snap := w.Snapshot()
		So(snap.Player.HP, ShouldEqual, float32(0.75))
		So(snap.Run.Phase, ShouldEqual, int(w.Runloop.Phase))
	})
}
