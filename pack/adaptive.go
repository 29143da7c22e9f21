package pack

const adaptiveRetargetInterval float32 = 10
const adaptiveBlend float32 = 0.1

// Baselines mirror wolf package's BASE_FEINT_PROB / NOTICE_DELAY constants;
// duplicated here since adaptive targets are pack-controller state, not
// per-wolf behavior, and the two packages must not import each other's
// unexported internals.
const baseFeintProb float32 = 0.25
const noticeDelay float32 = 0.75

// adaptiveState tracks rolling player-performance signals and derives a
// global difficulty retarget every adaptiveRetargetInterval seconds, blended
// in slowly so swings in wolf traits never feel abrupt (spec.md §4.F).
type adaptiveState struct {
	dodges, blocks, hitsTaken, kills, encounters int
	lastRetarget                                 float32
	skillScore                                   float32

	TargetSpeedMult   float32
	TargetAggression  float32
	TargetIntelligence float32
	TargetCoordination float32
	TargetFeintRate   float32
	TargetCooldownMult float32
	TargetReactionDelay float32
	TargetVisionMult  float32
	TargetHearingMult float32
}

func newAdaptiveState() adaptiveState {
	return adaptiveState{
		skillScore:          0.5,
		TargetSpeedMult:     1,
		TargetAggression:    0.5,
		TargetIntelligence:  0.5,
		TargetCoordination:  0.5,
		TargetFeintRate:     baseFeintProb,
		TargetCooldownMult:  1,
		TargetReactionDelay: noticeDelay,
		TargetVisionMult:    1,
		TargetHearingMult:   1,
	}
}

// NoteDodge, NoteBlock, NoteHitTaken, and NoteKill record player-performance
// events the sim layer observes; they feed the next 10s retarget.
func (a *adaptiveState) NoteDodge()    { a.dodges++ }
func (a *adaptiveState) NoteBlock()    { a.blocks++ }
func (a *adaptiveState) NoteHitTaken() { a.hitsTaken++; a.encounters++ }
func (a *adaptiveState) NoteKill()     { a.kills++; a.encounters++ }

// NoteDodge, NoteBlock, NoteHitTaken, and NoteKill are the Controller-level
// entry points; they delegate to the adaptive-AI retargeting state.
// sim.World calls NoteKill on a wolf death, Step calls NoteBlock and
// NoteHitTaken from each lunge result, and nothing in the module calls
// NoteDodge.
func (c *Controller) NoteDodge()    { c.adaptive.NoteDodge() }
func (c *Controller) NoteBlock()    { c.adaptive.NoteBlock() }
func (c *Controller) NoteHitTaken() { c.adaptive.NoteHitTaken() }
func (c *Controller) NoteKill()     { c.adaptive.NoteKill() }

func (a *adaptiveState) computeSkill() float32 {
	total := a.dodges + a.blocks + a.hitsTaken
	if total == 0 {
		return a.skillScore
	}
	avoidance := float32(a.dodges+a.blocks) / float32(total)
	killRate := float32(0)
	if a.encounters > 0 {
		killRate = float32(a.kills) / float32(a.encounters)
	}
	return geom01(0.6*avoidance + 0.4*killRate)
}

func geom01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// update retargets difficulty every adaptiveRetargetInterval seconds,
// low-pass blending the new target into the skill score by adaptiveBlend so
// the pack's traits drift rather than jump (c.PlayerSkillEstimate mirrors
// this score for plan selection).
func (a *adaptiveState) update(simTime float32, c *Controller) {
	if simTime-a.lastRetarget < adaptiveRetargetInterval {
		return
	}
	a.lastRetarget = simTime

	newSkill := a.computeSkill()
	a.skillScore += (newSkill - a.skillScore) * adaptiveBlend
	a.dodges, a.blocks, a.hitsTaken, a.kills, a.encounters = 0, 0, 0, 0, 0

	s := a.skillScore
	a.TargetSpeedMult = 0.9 + s*0.2
	a.TargetAggression = 0.3 + s*0.5
	a.TargetIntelligence = 0.3 + s*0.5
	a.TargetCoordination = 0.3 + s*0.5
	a.TargetFeintRate = baseFeintProb * (0.6 + s*0.8)
	a.TargetCooldownMult = 1.2 - s*0.4
	a.TargetReactionDelay = noticeDelay * (1.3 - s*0.5)
	a.TargetVisionMult = 0.85 + s*0.3
	a.TargetHearingMult = 0.85 + s*0.3

	c.PlayerSkillEstimate += (s - c.PlayerSkillEstimate) * adaptiveBlend

	for _, w := range c.ActiveWolves() {
		w.Aggression += (a.TargetAggression - w.Aggression) * adaptiveBlend
		w.Intelligence += (a.TargetIntelligence - w.Intelligence) * adaptiveBlend
		w.Coordination += (a.TargetCoordination - w.Coordination) * adaptiveBlend
	}
}
