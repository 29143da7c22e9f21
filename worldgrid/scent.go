package worldgrid

import "wolfden/geom"

const (
	ScentW = 48
	ScentH = 27

	scentAdvectCellsPerSec = 6
	scentDecayPerSec       = 0.35
	scentDepositPerSec     = 2.2
)

// ScentField is the 48x27 prey-scent grid plus its advection scratch
// buffer (spec.md §3/§4.G). Values stay in [0,1] after every Step.
type ScentField struct {
	grid    [ScentH][ScentW]float32
	scratch [ScentH][ScentW]float32
}

// NewScentField returns an all-zero scent field.
func NewScentField() *ScentField {
	return &ScentField{}
}

// At returns the scent value at integer cell (ix,iy), clamped to bounds.
func (s *ScentField) At(ix, iy int) float32 {
	ix = clampInt(ix, 0, ScentW-1)
	iy = clampInt(iy, 0, ScentH-1)
	return s.grid[iy][ix]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cellOf maps a world-space (x,y) in [0,1] to continuous grid coordinates.
func cellOf(pos geom.Vec2) (float32, float32) {
	return pos.X * float32(ScentW-1), pos.Y * float32(ScentH-1)
}

// rows exposes the grid as [][]float32 for geom.BilinearSample.
func (s *ScentField) rows() [][]float32 {
	out := make([][]float32, ScentH)
	for y := 0; y < ScentH; y++ {
		out[y] = s.grid[y][:]
	}
	return out
}

// SampleAt bilinearly samples the scent field at world-space pos.
func (s *ScentField) SampleAt(pos geom.Vec2) float32 {
	cx, cy := cellOf(pos)
	return geom.BilinearSample(s.rows(), cx, cy)
}

// GradientAt returns the normalized central-difference gradient of the
// scent field at world-space pos, sampled over the 4-neighborhood.
func (s *ScentField) GradientAt(pos geom.Vec2) geom.Vec2 {
	cx, cy := cellOf(pos)
	rows := s.rows()
	const h = 1
	gx := geom.BilinearSample(rows, cx+h, cy) - geom.BilinearSample(rows, cx-h, cy)
	gy := geom.BilinearSample(rows, cx, cy+h) - geom.BilinearSample(rows, cx, cy-h)
	return geom.Normalize(geom.Vec2{X: gx, Y: gy})
}

// Deposit raises the scent at the cell containing pos, per spec.md §4.G's
// `g[iy][ix] = min(1, g[iy][ix] + 2.2*dt)`.
func (s *ScentField) Deposit(pos geom.Vec2, dt float32) {
	cx, cy := cellOf(pos)
	ix := clampInt(int(cx+0.5), 0, ScentW-1)
	iy := clampInt(int(cy+0.5), 0, ScentH-1)
	s.grid[iy][ix] = minF32(1, s.grid[iy][ix]+scentDepositPerSec*dt)
}

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

// Step advects the grid opposite wind, then decays it. Advection resamples
// into the scratch buffer by bilinear lookup, then the scratch buffer is
// copied back so every cell reads the same pre-advection snapshot.
func (s *ScentField) Step(wind geom.Vec2, dt float32) {
	rows := s.rows()
	shiftX := -wind.X * scentAdvectCellsPerSec * dt
	shiftY := -wind.Y * scentAdvectCellsPerSec * dt

	for iy := 0; iy < ScentH; iy++ {
		for ix := 0; ix < ScentW; ix++ {
			srcX := float32(ix) + shiftX
			srcY := float32(iy) + shiftY
			s.scratch[iy][ix] = geom.BilinearSample(rows, srcX, srcY)
		}
	}

	decay := maxF32(0, 1-scentDecayPerSec*dt)
	for iy := 0; iy < ScentH; iy++ {
		for ix := 0; ix < ScentW; ix++ {
			s.grid[iy][ix] = geom.Clamp01(s.scratch[iy][ix] * decay)
		}
	}
}
