package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snakeclash/systems"
)

// KeySteering holds the last direction pressed. Terminals report no key
// release, so a direction stays held until another one or stop is pressed.
type KeySteering struct {
	steer systems.Steering
}

// Handle applies a key event and reports whether it was a steering key.
// Arrows and WASD pick a direction; space stops turning.
func (k *KeySteering) Handle(ev *tcell.EventKey) bool {
	var dx, dy float32
	switch ev.Key() {
	case tcell.KeyUp:
		dy = -1
	case tcell.KeyDown:
		dy = 1
	case tcell.KeyLeft:
		dx = -1
	case tcell.KeyRight:
		dx = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			dy = -1
		case 's', 'S':
			dy = 1
		case 'a', 'A':
			dx = -1
		case 'd', 'D':
			dx = 1
		case ' ':
			k.steer = systems.NoSteering
			return true
		default:
			return false
		}
	default:
		return false
	}
	k.steer = systems.Steering{Angle: systems.HeadingTo(dx, dy), Strength: 1}
	return true
}

// Steering returns the held steering input.
func (k *KeySteering) Steering() systems.Steering { return k.steer }

// Reset releases any held direction.
func (k *KeySteering) Reset() { k.steer = systems.NoSteering }
