package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatusTableApply(t *testing.T) {
	Convey("StatusTable.Apply", t, func() {
		Convey("a stackable effect increments stacks up to max", func() {
			st := NewStatusTable()
			st.Apply(StatusEffect{Kind: Burning, DurationRemaining: 2, Intensity: 0.3, CanStack: true, MaxStacks: 3})
			st.Apply(StatusEffect{Kind: Burning, DurationRemaining: 2, Intensity: 0.3, CanStack: true, MaxStacks: 3})
			So(st.Intensity(Burning), ShouldAlmostEqual, 0.6, 1e-6)
		})

		Convey("a non-stackable effect refreshes to the max of old/new", func() {
			st := NewStatusTable()
			st.Apply(StatusEffect{Kind: Slowed, DurationRemaining: 2, Intensity: 0.2})
			st.Apply(StatusEffect{Kind: Slowed, DurationRemaining: 5, Intensity: 0.5})
			So(st.Intensity(Slowed), ShouldEqual, float32(0.5))
		})

		Convey("MaxStatusSlots caps total slots", func() {
			st := NewStatusTable()
			for i := 0; i < MaxStatusSlots; i++ {
				ok := st.Apply(StatusEffect{Kind: StatusKind(i), DurationRemaining: 5, Intensity: 0.1})
				So(ok, ShouldBeTrue)
			}
			ok := st.Apply(StatusEffect{Kind: statusKindCount, DurationRemaining: 5, Intensity: 0.1})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestStatusTableUpdateExpires(t *testing.T) {
	Convey("Update removes expired effects and recomputes modifiers", t, func() {
		st := NewStatusTable()
		st.Apply(StatusEffect{Kind: SpeedBoost, DurationRemaining: 0.5, Intensity: 1})
		st.Update(0.1, 0.1, nil)
		So(st.Count(), ShouldEqual, 1)
		So(st.MovementModifier, ShouldBeGreaterThan, float32(1))

		st.Update(1.0, 1.1, nil)
		So(st.Count(), ShouldEqual, 0)
		So(st.MovementModifier, ShouldEqual, float32(1))
	})
}

func TestStunnedAggregatesControlEffects(t *testing.T) {
	Convey("Stunned is true for Stunned, Hitstun, or Knockdown", t, func() {
		st := NewStatusTable()
		So(st.Stunned(), ShouldBeFalse)
		st.Apply(StatusEffect{Kind: Hitstun, DurationRemaining: 1, Intensity: 1})
		So(st.Stunned(), ShouldBeTrue)
	})
}
