package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the end-of-session arena state for inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Session int   `json:"session"`

	Outcome      string  `json:"outcome"`
	Elapsed      float64 `json:"elapsed"`
	ArenaRadius  float64 `json:"arena_radius"`
	SessionCoins float64 `json:"session_coins"`
	ComboCount   int     `json:"combo_count"`

	Player   CreatureState   `json:"player"`
	Bots     []CreatureState `json:"bots"`
	Boss     *CreatureState  `json:"boss,omitempty"`
	BossFrac float64         `json:"boss_health,omitempty"`
	Items    []ItemState     `json:"items"`
}

// CreatureState holds one creature's state.
type CreatureState struct {
	ID       uint32  `json:"id"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Heading  float32 `json:"heading"`
	Level    float64 `json:"level"`
	Segments int     `json:"segments"`
}

// ItemState holds one item's state.
type ItemState struct {
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Kind string  `json:"kind"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%03d_%s.json", snapshot.Session, snapshot.Outcome)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
