package geom

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Normalize", t, func() {
		Convey("returns a unit vector for a nonzero input", func() {
			v := Normalize(Vec2{3, 4})
			So(Length(v), ShouldAlmostEqual, 1, 1e-5)
		})

		Convey("falls back to (1,0) for the zero vector", func() {
			v := Normalize(Vec2{0, 0})
			So(v, ShouldResemble, Fallback)
		})
	})
}

func TestClamp01(t *testing.T) {
	Convey("Clamp01", t, func() {
		So(Clamp01(-1), ShouldEqual, float32(0))
		So(Clamp01(2), ShouldEqual, float32(1))
		So(Clamp01(0.5), ShouldEqual, float32(0.5))
	})
}

func TestResolveDiscs(t *testing.T) {
	Convey("ResolveDiscs", t, func() {
		Convey("non-overlapping discs report ok=false", func() {
			_, ok := ResolveDiscs(Vec2{0, 0}, 0.1, Vec2{1, 1}, 0.1)
			So(ok, ShouldBeFalse)
		})

		Convey("overlapping discs report the correct depth", func() {
			overlap, ok := ResolveDiscs(Vec2{0, 0}, 0.1, Vec2{0.1, 0}, 0.1)
			So(ok, ShouldBeTrue)
			So(overlap.Depth, ShouldAlmostEqual, 0.1, 1e-5)
		})

		Convey("touching-exactly discs do not overlap (boundary is exclusive)", func() {
			_, ok := ResolveDiscs(Vec2{0, 0}, 0.1, Vec2{0.2, 0}, 0.1)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestBilinearSample(t *testing.T) {
	Convey("BilinearSample", t, func() {
		grid := [][]float32{
			{0, 1},
			{2, 3},
		}
		Convey("exact grid points return the cell value", func() {
			So(BilinearSample(grid, 0, 0), ShouldEqual, float32(0))
			So(BilinearSample(grid, 1, 1), ShouldEqual, float32(3))
		})

		Convey("the midpoint averages all four neighbors", func() {
			So(BilinearSample(grid, 0.5, 0.5), ShouldAlmostEqual, 1.5, 1e-5)
		})

		Convey("out of range coordinates clamp to the border", func() {
			So(BilinearSample(grid, -5, -5), ShouldEqual, float32(0))
			So(BilinearSample(grid, 50, 50), ShouldEqual, float32(3))
		})
	})
}
