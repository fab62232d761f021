package game

import (
	"math"

	"github.com/pthm-cable/snakeclash/systems"
)

// DefaultJoystickRadius is the drag distance in pixels for full strength.
const DefaultJoystickRadius = 50

// Joystick turns a pointer drag into steering. The angle runs from the press
// point to the pointer in screen space, where screen down is arena +Y.
// Strength is min(distance, Radius)/Radius.
type Joystick struct {
	Radius float32

	active         bool
	startX, startY float32
	knobX, knobY   float32
	steer          systems.Steering
}

// NewJoystick creates an idle joystick.
func NewJoystick(radius float32) *Joystick {
	if radius <= 0 {
		radius = DefaultJoystickRadius
	}
	return &Joystick{Radius: radius}
}

// Press anchors the joystick at the pointer.
func (j *Joystick) Press(x, y float32) {
	j.active = true
	j.startX, j.startY = x, y
	j.knobX, j.knobY = 0, 0
	j.steer = systems.NoSteering
}

// Drag updates the steering from the pointer position. Ignored while idle.
func (j *Joystick) Drag(x, y float32) {
	if !j.active {
		return
	}
	dx := x - j.startX
	dy := y - j.startY
	d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if d == 0 {
		j.knobX, j.knobY = 0, 0
		j.steer = systems.NoSteering
		return
	}
	reach := min(d, j.Radius)
	j.knobX = dx / d * reach
	j.knobY = dy / d * reach
	j.steer = systems.Steering{
		Angle:    systems.HeadingTo(dx, dy),
		Strength: reach / j.Radius,
	}
}

// Release returns the joystick to idle with zero strength.
func (j *Joystick) Release() {
	j.active = false
	j.knobX, j.knobY = 0, 0
	j.steer = systems.NoSteering
}

// Active reports whether a drag is in progress.
func (j *Joystick) Active() bool { return j.active }

// Origin returns the press point.
func (j *Joystick) Origin() (x, y float32) { return j.startX, j.startY }

// Knob returns the handle offset from the origin, at most Radius long.
func (j *Joystick) Knob() (x, y float32) { return j.knobX, j.knobY }

// Steering returns the current steering input.
func (j *Joystick) Steering() systems.Steering { return j.steer }
