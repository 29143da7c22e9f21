// Package worldgrid implements component C: obstacles, the scent field,
// danger zones, hazards, sound pings, territory markers, landmarks and
// exits. None of it is stochastic except the layout Init builds at
// init_run (biome, spawn, obstacles, hazards, landmarks, territories),
// which draws from the caller's *rng.Stream in a fixed order.
package worldgrid

import (
	"wolfden/geom"
	"wolfden/rng"
)

const (
	MaxObstacles   = 16
	MaxDangerZones = 16
	MaxHazards     = 24
	MaxSoundPings  = 32
	MaxMarkers     = 64
	MaxTerritories = 4
	MaxLandmarks   = 3
	MaxExits       = 1

	// BFSGridW/H is the walkability-check grid resolution (spec.md §6).
	BFSGridW = 41
	BFSGridH = 23
)

// Obstacle is a static circular collider.
type Obstacle struct {
	Pos    geom.Vec2
	Radius float32
}

// Obstacles holds the fixed-capacity obstacle set for one run.
type Obstacles struct {
	items []Obstacle
}

func (o *Obstacles) Count() int { return len(o.items) }
func (o *Obstacles) At(i int) (Obstacle, bool) {
	if i < 0 || i >= len(o.items) {
		return Obstacle{}, false
	}
	return o.items[i], true
}
func (o *Obstacles) All() []Obstacle { return o.items }

func (o *Obstacles) add(ob Obstacle) bool {
	if len(o.items) >= MaxObstacles {
		return false
	}
	o.items = append(o.items, ob)
	return true
}

// bfsReachable walks the BFSGridW x BFSGridH grid (each cell unit square
// / (W,H)) from spawn to center, treating any cell whose center lies
// inside an obstacle disc as blocked. It returns true if a path exists.
func bfsReachable(obs []Obstacle, spawn, target geom.Vec2) bool {
	cellW := float32(1) / float32(BFSGridW)
	cellH := float32(1) / float32(BFSGridH)

	blocked := func(cx, cy int) bool {
		p := geom.Vec2{X: (float32(cx) + 0.5) * cellW, Y: (float32(cy) + 0.5) * cellH}
		for _, ob := range obs {
			if geom.Distance(p, ob.Pos) < ob.Radius {
				return true
			}
		}
		return false
	}

	toCell := func(p geom.Vec2) (int, int) {
		cx := int(p.X / cellW)
		cy := int(p.Y / cellH)
		if cx < 0 {
			cx = 0
		}
		if cx >= BFSGridW {
			cx = BFSGridW - 1
		}
		if cy < 0 {
			cy = 0
		}
		if cy >= BFSGridH {
			cy = BFSGridH - 1
		}
		return cx, cy
	}

	sx, sy := toCell(spawn)
	tx, ty := toCell(target)
	if blocked(sx, sy) || blocked(tx, ty) {
		return false
	}

	visited := make([][]bool, BFSGridH)
	for i := range visited {
		visited[i] = make([]bool, BFSGridW)
	}
	type cell struct{ x, y int }
	queue := []cell{{sx, sy}}
	visited[sy][sx] = true

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.x == tx && c.y == ty {
			return true
		}
		for _, d := range dirs {
			nx, ny := c.x+d[0], c.y+d[1]
			if nx < 0 || nx >= BFSGridW || ny < 0 || ny >= BFSGridH {
				continue
			}
			if visited[ny][nx] || blocked(nx, ny) {
				continue
			}
			visited[ny][nx] = true
			queue = append(queue, cell{nx, ny})
		}
	}
	return false
}

// GenerateObstacles draws a deterministic obstacle layout from stream,
// retrying (bounded) until a BFS path from spawn to the arena center
// exists, per spec.md's "guaranteed walkable topology" invariant.
func GenerateObstacles(stream *rng.Stream, spawn geom.Vec2) *Obstacles {
	center := geom.Vec2{X: 0.5, Y: 0.5}

	const maxAttempts = 64
	for attempt := 0; attempt < maxAttempts; attempt++ {
		o := &Obstacles{}
		count := 1 + stream.IntN(MaxObstacles-1)
		for i := 0; i < count; i++ {
			pos := geom.Vec2{
				X: 0.15 + stream.F01()*0.70,
				Y: 0.15 + stream.F01()*0.70,
			}
			radius := 0.03 + stream.F01()*0.05
			// Never place an obstacle on top of the spawn corner.
			if geom.Distance(pos, spawn) < 0.12 {
				continue
			}
			o.add(Obstacle{Pos: pos, Radius: radius})
		}

		if bfsReachable(o.items, spawn, center) {
			return o
		}
	}

	// Fall back to an empty obstacle set: always walkable, satisfies the
	// invariant trivially, and never blocks determinism (bounded loop).
	return &Obstacles{}
}
