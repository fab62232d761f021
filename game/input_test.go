package game

import (
	"math"
	"testing"
)

func TestJoystickDrag(t *testing.T) {
	j := NewJoystick(50)

	// Dragging while idle does nothing
	j.Drag(100, 100)
	if j.Steering().Strength != 0 {
		t.Fatal("idle joystick produced steering")
	}

	j.Press(200, 200)
	if !j.Active() {
		t.Fatal("joystick not active after press")
	}

	// Straight down the screen is heading 0 at half strength
	j.Drag(200, 225)
	s := j.Steering()
	if math.Abs(float64(s.Angle)) > 1e-6 || math.Abs(float64(s.Strength-0.5)) > 1e-6 {
		t.Errorf("down drag: angle=%v strength=%v", s.Angle, s.Strength)
	}

	// Right is +pi/2, and strength saturates at the radius
	j.Drag(400, 200)
	s = j.Steering()
	if math.Abs(float64(s.Angle)-math.Pi/2) > 1e-6 || s.Strength != 1 {
		t.Errorf("right drag: angle=%v strength=%v", s.Angle, s.Strength)
	}
	kx, ky := j.Knob()
	if math.Abs(float64(kx-50)) > 1e-4 || ky != 0 {
		t.Errorf("knob = (%v, %v), want (50, 0)", kx, ky)
	}

	j.Release()
	if j.Active() || j.Steering().Strength != 0 {
		t.Error("release did not reset the joystick")
	}
}

func TestJoystickDeadCentre(t *testing.T) {
	j := NewJoystick(0)
	if j.Radius != DefaultJoystickRadius {
		t.Errorf("Radius = %v, want default", j.Radius)
	}
	j.Press(10, 10)
	j.Drag(10, 10)
	if j.Steering().Strength != 0 {
		t.Error("zero-length drag should not steer")
	}
}
