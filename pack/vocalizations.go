package pack

import (
	"wolfden/geom"
	"wolfden/wolf"
)

// VocalKind enumerates the pack's vocalization repertoire (spec.md §4.F,
// REDESIGN FLAG (i): a fixed ring buffer rather than an unbounded log).
type VocalKind int

const (
	VocalRally VocalKind = iota
	VocalHunt
	VocalBarkAlert
	VocalBarkCommand
	VocalWhineDistress
	VocalGrowlWarning
	VocalHowlLong
	VocalYip
	VocalSnarl
	VocalWhimper
	VocalPantingPant
	VocalBark
)

var vocalRange = map[VocalKind]float32{
	VocalRally:          0.5,
	VocalHunt:           0.45,
	VocalBarkAlert:      0.4,
	VocalBarkCommand:    0.35,
	VocalWhineDistress:  0.25,
	VocalGrowlWarning:   0.2,
	VocalHowlLong:       0.8,
	VocalYip:            0.2,
	VocalSnarl:          0.15,
	VocalWhimper:        0.15,
	VocalPantingPant:    0.1,
	VocalBark:           0.3,
}

var vocalCooldown = map[VocalKind]float32{
	VocalRally:         8,
	VocalHunt:          6,
	VocalBarkAlert:     3,
	VocalBarkCommand:   3,
	VocalWhineDistress: 4,
	VocalGrowlWarning:  2,
	VocalHowlLong:      10,
	VocalYip:           2,
	VocalSnarl:         2,
	VocalWhimper:       4,
	VocalPantingPant:   5,
	VocalBark:          2,
}

const vocalDecaySeconds = 2
const maxVocalizations = 16

// Vocalization is a single emitted call, still audible until Time+decay.
type Vocalization struct {
	Kind   VocalKind
	Pos    geom.Vec2
	Time   float32
	Source int
}

// VocalRing is the ≤16 overwrite-oldest vocalization buffer.
type VocalRing struct {
	items     [maxVocalizations]Vocalization
	count     int
	next      int
	lastEmit  map[int]map[VocalKind]float32
}

func (r *VocalRing) emit(v Vocalization) {
	r.items[r.next] = v
	r.next = (r.next + 1) % maxVocalizations
	if r.count < maxVocalizations {
		r.count++
	}
}

// Active returns every vocalization still within vocalDecaySeconds of now.
func (r *VocalRing) Active(simTime float32) []Vocalization {
	out := make([]Vocalization, 0, r.count)
	for i := 0; i < r.count; i++ {
		v := r.items[i]
		if simTime-v.Time <= vocalDecaySeconds {
			out = append(out, v)
		}
	}
	return out
}

func (r *VocalRing) ready(wolfIdx int, kind VocalKind, simTime float32) bool {
	if r.lastEmit == nil {
		return true
	}
	byKind, ok := r.lastEmit[wolfIdx]
	if !ok {
		return true
	}
	last, ok := byKind[kind]
	return !ok || simTime-last >= vocalCooldown[kind]
}

func (r *VocalRing) markEmitted(wolfIdx int, kind VocalKind, simTime float32) {
	if r.lastEmit == nil {
		r.lastEmit = map[int]map[VocalKind]float32{}
	}
	if r.lastEmit[wolfIdx] == nil {
		r.lastEmit[wolfIdx] = map[VocalKind]float32{}
	}
	r.lastEmit[wolfIdx][kind] = simTime
}

// updateVocalizations has lead/low-health/alert wolves emit calls, applies
// the reaction table to every nearby pack-mate, and lets entries age out
// of the ring automatically via Active's decay check.
func (c *Controller) updateVocalizations(simTime float32, active []*wolf.Wolf) {
	for _, w := range active {
		var kind VocalKind
		emit := false
		switch {
		case w.Role == wolf.RoleLead && w.Noticed && w.EmotionVal == wolf.Aggressive:
			kind, emit = VocalBarkCommand, true
		case w.Health < 0.25:
			kind, emit = VocalWhineDistress, true
		case w.Noticed && c.Plan == wolf.PlanCommit:
			kind, emit = VocalRally, true
		case w.Noticed && !w.TargetLocked:
			kind, emit = VocalBarkAlert, true
		case w.EmotionVal == wolf.Aggressive && w.Fatigue < 0.3:
			kind, emit = VocalGrowlWarning, true
		}
		if !emit || !c.Vocalizations.ready(w.ID(), kind, simTime) {
			continue
		}
		c.Vocalizations.emit(Vocalization{Kind: kind, Pos: w.Pos, Time: simTime, Source: w.ID()})
		c.Vocalizations.markEmitted(w.ID(), kind, simTime)
	}

	for _, v := range c.Vocalizations.Active(simTime) {
		for _, w := range active {
			if w.ID() == v.Source {
				continue
			}
			if geom.Distance(w.Pos, v.Pos) > vocalRange[v.Kind] {
				continue
			}
			c.applyReaction(w, v)
		}
	}
}

func (c *Controller) applyReaction(w *wolf.Wolf, v Vocalization) {
	switch v.Kind {
	case VocalRally, VocalHunt:
		w.LastSeenPos = v.Pos
		w.Aggression = minF32(1, w.Aggression+0.05)
		w.Coordination = minF32(1, w.Coordination+0.05)
	case VocalBarkAlert:
		w.LastSeenPos = v.Pos
		w.Noticed = true
	case VocalBarkCommand:
		w.Coordination = minF32(1, w.Coordination+0.1)
		w.TargetLocked = true
	case VocalWhineDistress:
		w.LastSeenPos = v.Pos
	case VocalGrowlWarning:
		w.Aggression = minF32(1, w.Aggression+0.1)
	}
}
