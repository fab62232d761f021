package tui

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/game"
	"github.com/pthm-cable/snakeclash/systems"
)

func TestKeySteeringDirections(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		angle float64
	}{
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), 0},
		{"right arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), math.Pi / 2},
		{"up w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), math.Pi},
		{"left a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k KeySteering
			assert.True(t, k.Handle(tt.ev))
			s := k.Steering()
			assert.InDelta(t, tt.angle, float64(s.Angle), 1e-5)
			assert.InDelta(t, 1.0, float64(s.Strength), 1e-9)
		})
	}
}

func TestKeySteeringHoldAndStop(t *testing.T) {
	var k KeySteering
	assert.Equal(t, systems.NoSteering, k.Steering())

	k.Handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.False(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	assert.InDelta(t, math.Pi/2, float64(k.Steering().Angle), 1e-5, "unrelated keys keep the held direction")

	assert.True(t, k.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, systems.NoSteering, k.Steering())

	k.Handle(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	k.Reset()
	assert.Equal(t, systems.NoSteering, k.Steering())
}

func TestChimeFor(t *testing.T) {
	assert.Len(t, chimeFor(game.Event{Kind: game.EventPickup, Item: components.KindFood}), 1)
	assert.Len(t, chimeFor(game.Event{Kind: game.EventPickup, Item: components.KindChest}), 2)
	assert.Len(t, chimeFor(game.Event{Kind: game.EventBossDefeated}), 4)

	win := chimeFor(game.Event{Kind: game.EventOutcome, Outcome: game.OutcomeTimeExpired})
	loss := chimeFor(game.Event{Kind: game.EventOutcome, Outcome: game.OutcomeDefeated})
	assert.Greater(t, win[len(win)-1].freq, loss[len(loss)-1].freq)

	assert.Nil(t, chimeFor(game.Event{Kind: game.EventComboChange}))
}

func TestMutedChimesAreSilent(t *testing.T) {
	c := &Chimes{}
	assert.NotPanics(t, func() {
		c.OnEvent(game.Event{Kind: game.EventKill})
		c.Close()
	})
}
