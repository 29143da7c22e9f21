package worldgrid

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wolfden/geom"
	"wolfden/rng"
)

func TestGenerateObstacles(t *testing.T) {
	Convey("GenerateObstacles", t, func() {
		Convey("always leaves a walkable path from spawn to center", func() {
			for seed := uint64(1); seed < 40; seed++ {
				stream := rng.New(seed)
				spawn := spawnCorners[stream.IntN(4)]
				obs := GenerateObstacles(stream, spawn)
				So(bfsReachable(obs.All(), spawn, geom.Vec2{X: 0.5, Y: 0.5}), ShouldBeTrue)
			}
		})

		Convey("never exceeds MaxObstacles", func() {
			stream := rng.New(7)
			obs := GenerateObstacles(stream, geom.Vec2{X: 0.05, Y: 0.05})
			So(obs.Count(), ShouldBeLessThanOrEqualTo, MaxObstacles)
		})
	})
}

func TestScentField(t *testing.T) {
	Convey("ScentField", t, func() {
		Convey("deposit then step keeps every cell in [0,1]", func() {
			s := NewScentField()
			for i := 0; i < 100; i++ {
				s.Deposit(geom.Vec2{X: 0.5, Y: 0.5}, 0.1)
				s.Step(geom.Vec2{X: 0.3, Y: 0.1}, 0.1)
			}
			for y := 0; y < ScentH; y++ {
				for x := 0; x < ScentW; x++ {
					v := s.At(x, y)
					So(v, ShouldBeGreaterThanOrEqualTo, float32(0))
					So(v, ShouldBeLessThanOrEqualTo, float32(1))
				}
			}
		})

		Convey("gradient points at the player after sustained deposit with zero wind", func() {
			s := NewScentField()
			player := geom.Vec2{X: 0.8, Y: 0.8}
			wolf := geom.Vec2{X: 0.2, Y: 0.2}
			for i := 0; i < 30; i++ {
				s.Deposit(player, 0.1)
				s.Step(geom.Vec2{X: 0, Y: 0}, 0.1)
			}
			grad := s.GradientAt(wolf)
			toPlayer := geom.DirectionTo(wolf, player)
			So(geom.Dot(grad, toPlayer), ShouldBeGreaterThan, 0)
		})
	})
}

func TestDangerZones(t *testing.T) {
	Convey("DangerZones", t, func() {
		Convey("evicts the soonest-to-expire entry when full", func() {
			var d DangerZones
			for i := 0; i < MaxDangerZones; i++ {
				d.Add(DangerZone{ExpiresAt: float32(i + 1)})
			}
			So(d.Count(), ShouldEqual, MaxDangerZones)
			d.Add(DangerZone{ExpiresAt: 1000})
			So(d.Count(), ShouldEqual, MaxDangerZones)
			for _, z := range d.All() {
				So(z.ExpiresAt, ShouldNotEqual, float32(1))
			}
		})

		Convey("ExpireBefore drops stale zones", func() {
			var d DangerZones
			d.Add(DangerZone{ExpiresAt: 5})
			d.Add(DangerZone{ExpiresAt: 50})
			d.ExpireBefore(10)
			So(d.Count(), ShouldEqual, 1)
			So(d.All()[0].ExpiresAt, ShouldEqual, float32(50))
		})
	})
}

func TestSoundPings(t *testing.T) {
	Convey("SoundPings ring buffer overwrites oldest on overflow", t, func() {
		var s SoundPings
		for i := 0; i < MaxSoundPings+5; i++ {
			s.Emit(SoundPing{Time: float32(i)})
		}
		So(s.Count(), ShouldEqual, MaxSoundPings)
		So(s.All()[0].Time, ShouldEqual, float32(MaxSoundPings))
	})
}

func TestHazardActivation(t *testing.T) {
	Convey("Hazard.Active respects ActivationTime", t, func() {
		h := Hazard{ActivationTime: 5}
		So(h.Active(4.9), ShouldBeFalse)
		So(h.Active(5.0), ShouldBeTrue)
	})
}

func TestTerritoryDecay(t *testing.T) {
	Convey("Territory decays once unreinforced past the 60s window", t, func() {
		terr := Territory{Strength: 1, LastMarked: 0}
		terr.DecayIfUnreinforced(61, 1)
		So(terr.Strength, ShouldBeLessThan, float32(1))

		terr2 := Territory{Strength: 1, LastMarked: 0}
		terr2.DecayIfUnreinforced(30, 1)
		So(terr2.Strength, ShouldEqual, float32(1))
	})
}

func TestGridInitDeterminism(t *testing.T) {
	Convey("Init is deterministic for a fixed seed", t, func() {
		g1 := Init(rng.New(42))
		g2 := Init(rng.New(42))
		So(g1.Biome, ShouldEqual, g2.Biome)
		So(g1.Spawn, ShouldResemble, g2.Spawn)
		So(g1.Obstacles.Count(), ShouldEqual, g2.Obstacles.Count())
		So(g1.Hazards.Count(), ShouldEqual, g2.Hazards.Count())
	})
}
