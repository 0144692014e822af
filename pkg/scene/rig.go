package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Rig defaults.
const (
	DefaultZ        = -8.0
	DefaultSpinRate = math.Pi / 10 // radians per second
)

// Keys holds which control keys are currently pressed.
type Keys struct {
	Left, Right, Up, Down bool
}

// Rig animates the modelview transform: a translation to (X, 0, Z) applied
// after a yaw of -1.5*Rotation and a roll of Rotation.
//
// Z follows a target distance through a critically damped spring, and
// impulses add spin that decays back to the base SpinRate.
type Rig struct {
	X        float64
	Z        float64
	Rotation float64
	SpinRate float64
	Held     Keys

	targetZ    float64
	zVel       float64
	zSpring    harmonica.Spring
	spin       float64
	spinAccel  float64
	spinSpring harmonica.Spring
	springStep float64 // seconds the springs were built for
	fps        int

	modelview math3d.Mat4
	cached    [3]float64 // X, Z, Rotation the modelview was built from
	dirty     bool
}

// NewRig creates a rig stepped at the given frame rate.
func NewRig(fps int) *Rig {
	if fps <= 0 {
		fps = 60
	}
	r := &Rig{fps: fps}
	r.Reset()
	return r
}

// Reset restores the starting distance and rotation.
func (r *Rig) Reset() {
	r.setSpringStep(harmonica.FPS(r.fps))
	r.X = 0
	r.Z = DefaultZ
	r.targetZ = DefaultZ
	r.zVel = 0
	r.Rotation = 0
	r.SpinRate = DefaultSpinRate
	r.spin = 0
	r.spinAccel = 0
	r.Held = Keys{}
	r.dirty = true
}

// setSpringStep rebuilds both springs for a step of dt seconds.
func (r *Rig) setSpringStep(dt float64) {
	// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
	r.zSpring = harmonica.NewSpring(dt, 4.0, 1.0)
	r.spinSpring = harmonica.NewSpring(dt, 4.0, 1.0)
	r.springStep = dt
}

// TargetZ returns the distance Z is easing toward.
func (r *Rig) TargetZ() float64 {
	return r.targetZ
}

// Dolly moves the target distance by dz; positive moves toward the camera.
func (r *Rig) Dolly(dz float64) {
	r.targetZ += dz
}

// ApplyImpulse adds spin velocity in radians per second.
func (r *Rig) ApplyImpulse(spin float64) {
	r.spin += spin
}

// Update advances the rig by dt seconds. The springs follow the measured dt,
// so a late frame eases as far as the frames it replaced.
func (r *Rig) Update(dt float64) {
	if dt != r.springStep {
		r.setSpringStep(dt)
	}

	step := dt * 5
	if r.Held.Left {
		r.Rotation -= math.Pi * step / 30
	}
	if r.Held.Right {
		r.Rotation += math.Pi * step / 30
	}
	if r.Held.Up {
		r.targetZ += step
	}
	if r.Held.Down {
		r.targetZ -= step
	}

	r.Rotation += (r.SpinRate + r.spin) * dt
	r.spin, r.spinAccel = r.spinSpring.Update(r.spin, r.spinAccel, 0)
	r.Z, r.zVel = r.zSpring.Update(r.Z, r.zVel, r.targetZ)
	r.dirty = true
}

// Modelview returns the current modelview matrix.
func (r *Rig) Modelview() math3d.Mat4 {
	if key := [3]float64{r.X, r.Z, r.Rotation}; r.dirty || key != r.cached {
		r.cached = key
		mt := math3d.Translation(math3d.V4(r.X, 0, r.Z, 1))
		my := math3d.YawRotation(-r.Rotation * 1.5)
		mr := math3d.RollRotation(r.Rotation)
		r.modelview = mt.Mul(my.Mul(mr))
		r.dirty = false
	}
	return r.modelview
}
