package worldgrid

import (
	"wolfden/geom"
	"wolfden/rng"
)

// Biome is the RNG-derived arena theme picked at init_run.
type Biome int

const (
	BiomeForest Biome = iota
	BiomeCave
	BiomeRuins
	BiomeSnowfield
)

var spawnCorners = [4]geom.Vec2{
	{X: 0.05, Y: 0.05},
	{X: 0.95, Y: 0.05},
	{X: 0.05, Y: 0.95},
	{X: 0.95, Y: 0.95},
}

// Grid bundles every environmental subsystem component C owns: obstacles,
// scent field, danger zones, hazards, sound pings, territories/markers,
// landmarks and exits. It is rebuilt wholesale by Init (init_run/reset_run)
// and stepped once per tick by Step.
type Grid struct {
	Biome     Biome
	Spawn     geom.Vec2
	Obstacles *Obstacles
	Scent     *ScentField
	Dangers   DangerZones
	Hazards   Hazards
	Sounds    SoundPings
	Markers   Markers
	Territories Territories
	Landmarks []Landmark
	Exits     []Exit
}

// Init (re)builds the grid deterministically from stream: biome, spawn
// corner, obstacles (BFS-verified walkable), hazards, landmarks (3),
// exits (1). Every draw happens in this fixed order so two peers seeded
// identically reach an identical Grid (spec.md §6 init_run).
func Init(stream *rng.Stream) *Grid {
	g := &Grid{}

	g.Biome = Biome(stream.IntN(4))
	g.Spawn = spawnCorners[stream.IntN(4)]

	g.Obstacles = GenerateObstacles(stream, g.Spawn)
	g.Scent = NewScentField()

	g.Hazards = Hazards{}
	hazardCount := stream.IntN(MaxHazards/2 + 1)
	for i := 0; i < hazardCount; i++ {
		g.Hazards.Add(Hazard{
			Kind:   HazardKind(stream.IntN(5)),
			Pos:    geom.Vec2{X: 0.1 + stream.F01()*0.8, Y: 0.1 + stream.F01()*0.8},
			Radius: 0.02 + stream.F01()*0.04,
			Damage: 5 + stream.F01()*10,
			Cooldown: 1 + stream.F01()*3,
			LastTrigger: -1000,
			Duration: 2 + stream.F01()*3,
			ActivationTime: stream.F01() * 5,
		})
	}

	g.Landmarks = make([]Landmark, MaxLandmarks)
	for i := 0; i < MaxLandmarks; i++ {
		g.Landmarks[i] = Landmark{Pos: geom.Vec2{X: 0.1 + stream.F01()*0.8, Y: 0.1 + stream.F01()*0.8}}
	}

	g.Exits = make([]Exit, MaxExits)
	for i := 0; i < MaxExits; i++ {
		g.Exits[i] = Exit{Pos: geom.Vec2{X: 1 - g.Spawn.X, Y: 1 - g.Spawn.Y}}
	}

	g.Territories = Territories{}
	for pack := 0; pack < 3; pack++ {
		g.Territories.Add(Territory{
			Center:     geom.Vec2{X: stream.F01(), Y: stream.F01()},
			Radius:     0.15 + stream.F01()*0.1,
			PackID:     pack,
			Strength:   1,
			LastMarked: -1000,
		})
	}

	return g
}

// Step advances every per-tick grid subsystem: hazards are read by the
// caller directly (they carry no internal clock state to advance besides
// LastTrigger, which the combat/hazard-resolution step mutates), the
// scent field advects/decays, territories decay if unreinforced, and
// expired danger zones are dropped.
func (g *Grid) Step(wind geom.Vec2, simTime, dt float32) {
	g.Scent.Step(wind, dt)
	g.Dangers.ExpireBefore(simTime)
	g.Territories.Step(simTime, dt)
}

// DepositPlayerScent deposits into the continuous ScentField (every tick,
// from Step's caller). The discrete ScentMarkers are added by the pack
// package's scent tracking, not here.
func (g *Grid) DepositPlayerScent(pos geom.Vec2, dt float32) {
	g.Scent.Deposit(pos, dt)
}

// MarkTerritory refreshes the territory owned by packID's LastMarked and
// strength, per the alpha's 5s territorial marking cadence.
func (g *Grid) MarkTerritory(packID int, simTime float32) {
	if t, ok := g.Territories.ForPack(packID); ok {
		t.LastMarked = simTime
		t.Strength = 1
	}
}
