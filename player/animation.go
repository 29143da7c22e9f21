package player

import (
	"math"

	"wolfden/geom"
)

// RecomputeAnimationOverlay derives the 22 write-only animation scalars
// (spec.md §6) from this tick's kinematic and combat state. Called last in
// the tick order (spec.md §5 step 14), once wind and room state for the
// tick are settled, so the values a renderer reads reflect everything else
// this step changed.
func (p *Player) RecomputeAnimationOverlay(wind geom.Vec2, simTime float32) {
	speed := geom.Length(p.Vel)

	p.AnimScaleX, p.AnimScaleY = 1, 1
	if p.RollStateVal != RollIdle {
		p.AnimScaleY = 0.7
		p.AnimScaleX = 1.15
	}
	p.AnimRotation = 0
	if p.IsWallSliding {
		p.AnimRotation = 0.15
	}

	p.AnimOffsetX, p.AnimOffsetY = 0, 0
	if p.Blocking {
		p.AnimOffsetX = p.BlockFace.X * 0.02
		p.AnimOffsetY = p.BlockFace.Y * 0.02
	}

	p.AnimPelvisY = -speed * 0.05
	p.AnimSpineCurve = p.CurseWeaknessMult - 1
	p.AnimShoulderRotation = 0
	if p.AttackStateVal != AttackIdle {
		p.AnimShoulderRotation = float32(p.AttackTypeVal+1) * 0.2
	}

	p.AnimHeadBobX = sin32(simTime*10) * speed * 0.01
	p.AnimHeadBobY = cos32(simTime*10) * speed * 0.01

	swing := speed / (baseSpeed * rollSpeedMult)
	p.AnimArmSwingL = sin32(simTime * 8) * swing
	p.AnimArmSwingR = -sin32(simTime * 8) * swing
	p.AnimLegLiftL = maxF32(0, sin32(simTime*10)) * swing
	p.AnimLegLiftR = maxF32(0, -sin32(simTime*10)) * swing

	p.AnimTorsoTwist = 0
	if p.AttackStateVal == AttackActive {
		p.AnimTorsoTwist = 0.3
	}

	p.AnimBreathingIntensity = 0.2 + (1-p.Stamina)*0.5
	p.AnimFatigueFactor = 1 - p.Stamina

	p.AnimMomentumX, p.AnimMomentumY = p.Vel.X, p.Vel.Y

	p.AnimClothSway = wind.X*0.3 + sin32(simTime*2)*0.05
	p.AnimHairBounce = speed * 0.4
	p.AnimEquipmentJiggle = speed * 0.25
	p.AnimWindResponse = geom.Length(wind)

	p.AnimGroundAdapt = 0
	if !p.Grounded {
		p.AnimGroundAdapt = 1
	}

	p.AnimTemperatureShiver = 0
	if p.Statuses.Has(Frozen) {
		p.AnimTemperatureShiver = p.Statuses.Intensity(Frozen)
	}
}

func sin32(a float32) float32 { return float32(math.Sin(float64(a))) }
func cos32(a float32) float32 { return float32(math.Cos(float64(a))) }
