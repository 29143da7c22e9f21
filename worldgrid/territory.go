package worldgrid

import "wolfden/geom"

const (
	markerDecaySeconds      = 30
	territoryReinforceWindow = 60
)

// ScentMarker is one player-scent deposit left behind for tracking
// purposes (distinct from the ScentField grid), decaying linearly over
// markerDecaySeconds.
type ScentMarker struct {
	Pos      geom.Vec2
	PlacedAt float32
}

// Strength returns the marker's remaining strength at simTime, in [0,1].
func (m ScentMarker) Strength(simTime float32) float32 {
	age := simTime - m.PlacedAt
	return geom.Clamp01(1 - age/markerDecaySeconds)
}

// Territory is a pack's claimed area (spec.md §3/§4.F). Strength decays
// once LastMarked falls more than territoryReinforceWindow seconds behind
// simTime (original_source scent_tracking.h, carried into SPEC_FULL.md §3).
type Territory struct {
	Center     geom.Vec2
	Radius     float32
	PackID     int
	Strength   float32
	LastMarked float32
}

// DecayIfUnreinforced reduces Strength once the territory has gone
// unmarked for longer than territoryReinforceWindow seconds.
func (t *Territory) DecayIfUnreinforced(simTime, dt float32) {
	if simTime-t.LastMarked > territoryReinforceWindow {
		t.Strength = geom.Clamp01(t.Strength - 0.05*dt)
	}
}

// Contains reports whether pos lies within the territory's radius.
func (t *Territory) Contains(pos geom.Vec2) bool {
	return geom.Distance(pos, t.Center) <= t.Radius
}

// Markers is the fixed-capacity (≤64) player-scent-marker pool, evicting
// the oldest marker when full.
type Markers struct {
	items []ScentMarker
}

func (m *Markers) Add(marker ScentMarker) {
	if len(m.items) < MaxMarkers {
		m.items = append(m.items, marker)
		return
	}
	oldest := 0
	for i := 1; i < len(m.items); i++ {
		if m.items[i].PlacedAt < m.items[oldest].PlacedAt {
			oldest = i
		}
	}
	m.items[oldest] = marker
}

func (m *Markers) All() []ScentMarker { return m.items }
func (m *Markers) Count() int         { return len(m.items) }

// StrongestWithin returns the strongest marker within radius of pos, and
// whether one was found (spec.md §4.F: "follow the strongest nearby
// marker within 0.5").
func (m *Markers) StrongestWithin(pos geom.Vec2, radius, simTime float32) (ScentMarker, bool) {
	best := ScentMarker{}
	bestStrength := float32(-1)
	found := false
	for _, marker := range m.items {
		if geom.Distance(pos, marker.Pos) > radius {
			continue
		}
		st := marker.Strength(simTime)
		if st > bestStrength {
			bestStrength = st
			best = marker
			found = true
		}
	}
	return best, found
}

// Territories is the fixed-capacity (≤4) pack territory set.
type Territories struct {
	items []Territory
}

func (t *Territories) Count() int         { return len(t.items) }
func (t *Territories) All() []Territory   { return t.items }
func (t *Territories) AllPtrs() []*Territory {
	out := make([]*Territory, len(t.items))
	for i := range t.items {
		out[i] = &t.items[i]
	}
	return out
}

func (t *Territories) Add(territory Territory) bool {
	if len(t.items) >= MaxTerritories {
		return false
	}
	t.items = append(t.items, territory)
	return true
}

// ForPack returns the territory belonging to packID, if any.
func (t *Territories) ForPack(packID int) (*Territory, bool) {
	for i := range t.items {
		if t.items[i].PackID == packID {
			return &t.items[i], true
		}
	}
	return nil, false
}

// Step decays every territory's strength if it has gone unreinforced.
func (t *Territories) Step(simTime, dt float32) {
	for i := range t.items {
		t.items[i].DecayIfUnreinforced(simTime, dt)
	}
}
