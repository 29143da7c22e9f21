package pack

import (
	"wolfden/geom"
	"wolfden/wolf"
	"wolfden/worldgrid"
)

const (
	markerEmitInterval    float32 = 2
	territoryMarkInterval float32 = 5
	markerFollowRadius    float32 = 0.5
)

// updateScentTracking emits a discrete player scent marker every 2s, lets
// the alpha reinforce its pack's territory every 5s, and has Seek/Prowl
// wolves steer toward the strongest nearby marker (spec.md §4.F).
func (c *Controller) updateScentTracking(simTime, dt float32, playerPos geom.Vec2, grid *worldgrid.Grid) {
	c.SyncTimer += dt
	if c.SyncTimer >= markerEmitInterval {
		c.SyncTimer = 0
		grid.Markers.Add(worldgrid.ScentMarker{Pos: playerPos, PlacedAt: simTime})
	}

	if c.AlphaIndex >= 0 {
		alpha := c.Wolves[c.AlphaIndex]
		if t, ok := grid.Territories.ForPack(alpha.PackID); ok {
			if simTime-t.LastMarked >= territoryMarkInterval {
				grid.MarkTerritory(alpha.PackID, simTime)
				if t.Contains(alpha.Pos) && alpha.EmotionVal == wolf.Calm {
					alpha.EmotionVal = wolf.Confident
					alpha.Morale = minF32(1, alpha.Morale+0.1)
				}
			}
		}
	}

	for _, w := range c.ActiveWolves() {
		if w.StateVal != wolf.Seek && w.StateVal != wolf.Prowl {
			continue
		}
		if marker, ok := grid.Markers.StrongestWithin(w.Pos, markerFollowRadius, simTime); ok {
			w.LastSeenPos = marker.Pos
		}
	}
}
