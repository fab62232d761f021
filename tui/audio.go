package tui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/game"
)

const sampleRate = beep.SampleRate(44100)

// tone is one note of a chime.
type tone struct {
	freq float64
	dur  time.Duration
}

// chimeFor maps a session event to the notes it plays. Events without a
// chime return nil.
func chimeFor(e game.Event) []tone {
	switch e.Kind {
	case game.EventPickup:
		if e.Item == components.KindChest {
			return []tone{{660, 60 * time.Millisecond}, {990, 90 * time.Millisecond}}
		}
		return []tone{{880, 40 * time.Millisecond}}
	case game.EventKill:
		return []tone{{440, 60 * time.Millisecond}, {660, 60 * time.Millisecond}, {880, 80 * time.Millisecond}}
	case game.EventBossSpawned:
		return []tone{{110, 300 * time.Millisecond}}
	case game.EventBossDefeated:
		return []tone{{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1047, 200 * time.Millisecond}}
	case game.EventOutcome:
		if e.Outcome == game.OutcomeTimeExpired {
			return []tone{{784, 120 * time.Millisecond}, {1047, 200 * time.Millisecond}}
		}
		return []tone{{220, 150 * time.Millisecond}, {165, 250 * time.Millisecond}}
	default:
		return nil
	}
}

// Chimes plays short sine-tone cues for session events.
// A failed speaker init leaves it silent; the game runs without sound.
type Chimes struct {
	mu      sync.Mutex
	enabled bool
}

// NewChimes initialises the speaker. Audio failure is logged, not returned.
func NewChimes(logger *slog.Logger) *Chimes {
	c := &Chimes{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn("audio unavailable", "error", err)
		return c
	}
	c.enabled = true
	return c
}

// OnEvent plays the chime for e, if any.
func (c *Chimes) OnEvent(e game.Event) {
	notes := chimeFor(e)
	if len(notes) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}

	seq := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			continue
		}
		seq = append(seq, beep.Take(sampleRate.N(n.dur), sine))
	}
	// Quarter volume; raw sine tones are full scale
	speaker.Play(&effects.Volume{Streamer: beep.Seq(seq...), Base: 2, Volume: -2})
}

// Close stops audio output.
func (c *Chimes) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}
