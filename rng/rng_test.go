package rng

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStream(t *testing.T) {
	Convey("When seeding a Stream", t, func() {
		Convey("A zero seed is remapped to 1", func() {
			s := New(0)
			So(s.State(), ShouldEqual, uint64(1))
		})

		Convey("SetState(0) is also remapped to 1", func() {
			s := New(42)
			s.SetState(0)
			So(s.State(), ShouldEqual, uint64(1))
		})

		Convey("A nonzero seed is kept as-is", func() {
			s := New(7)
			So(s.State(), ShouldEqual, uint64(7))
		})
	})

	Convey("When drawing from a Stream", t, func() {
		Convey("Two streams seeded identically produce identical sequences", func() {
			a := New(1234)
			b := New(1234)
			for i := 0; i < 1000; i++ {
				So(a.F01(), ShouldEqual, b.F01())
			}
		})

		Convey("F01 always returns a value in [0,1)", func() {
			s := New(99)
			for i := 0; i < 10000; i++ {
				v := s.F01()
				So(v, ShouldBeGreaterThanOrEqualTo, float32(0))
				So(v, ShouldBeLessThan, float32(1))
			}
		})

		Convey("the internal state never returns to zero", func() {
			s := New(1)
			for i := 0; i < 10000; i++ {
				s.next()
				So(s.State(), ShouldNotEqual, uint64(0))
			}
		})

		Convey("IntN(n) stays within [0,n)", func() {
			s := New(55)
			for i := 0; i < 1000; i++ {
				v := s.IntN(7)
				So(v, ShouldBeGreaterThanOrEqualTo, 0)
				So(v, ShouldBeLessThan, 7)
			}
		})
	})
}
