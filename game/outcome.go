package game

import (
	"log/slog"

	"github.com/pthm-cable/snakeclash/components"
)

// Outcome is the result of a session.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeDefeated
	OutcomeOutOfBounds
	OutcomeTimeExpired
	// OutcomeVictoryContinues marks a boss victory. Play goes on.
	OutcomeVictoryContinues
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeDefeated:
		return "defeated_by_opponent"
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	case OutcomeTimeExpired:
		return "time_expired"
	case OutcomeVictoryContinues:
		return "victory_continues"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeDefeated, OutcomeOutOfBounds, OutcomeTimeExpired:
		return true
	default:
		return false
	}
}

// EventKind identifies a discrete simulation event.
type EventKind uint8

const (
	EventPickup EventKind = iota
	EventKill
	EventComboChange
	EventBossSpawned
	EventBossDefeated
	EventOutcome
)

func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventKill:
		return "kill"
	case EventComboChange:
		return "combo_change"
	case EventBossSpawned:
		return "boss_spawned"
	case EventBossDefeated:
		return "boss_defeated"
	case EventOutcome:
		return "outcome"
	default:
		return "unknown"
	}
}

// Event is emitted by the session for the render and audio layers.
// Fields not relevant to a kind are zero.
type Event struct {
	Kind       EventKind
	Item       components.ItemKind // EventPickup
	LevelGain  float64             // EventPickup, EventKill, EventBossDefeated
	CoinGain   float64
	Combo      int     // EventComboChange
	Multiplier float64 // EventComboChange
	Outcome    Outcome // EventOutcome, EventBossDefeated
	X, Y       float32 // Where it happened
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", e.Kind.String())}
	switch e.Kind {
	case EventPickup:
		attrs = append(attrs, slog.String("item", e.Item.String()),
			slog.Float64("level_gain", e.LevelGain), slog.Float64("coin_gain", e.CoinGain))
	case EventKill:
		attrs = append(attrs, slog.Float64("level_gain", e.LevelGain), slog.Float64("coin_gain", e.CoinGain))
	case EventComboChange:
		attrs = append(attrs, slog.Int("combo", e.Combo), slog.Float64("multiplier", e.Multiplier))
	case EventOutcome, EventBossDefeated:
		attrs = append(attrs, slog.String("outcome", e.Outcome.String()))
	}
	return slog.GroupValue(attrs...)
}
