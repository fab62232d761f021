package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/snakeclash/telemetry"
)

// Recorder feeds session events into the telemetry collector and writes
// window stats, session summaries and end-of-session snapshots.
type Recorder struct {
	collector   *telemetry.Collector
	output      *telemetry.OutputManager
	logStats    bool
	snapshotDir string

	session int
	seed    int64
	tally   telemetry.SessionTally
}

// NewRecorder creates a recorder. output may be nil.
func NewRecorder(windowSec float64, output *telemetry.OutputManager, logStats bool, snapshotDir string) *Recorder {
	return &Recorder{
		collector:   telemetry.NewCollector(windowSec),
		output:      output,
		logStats:    logStats,
		snapshotDir: snapshotDir,
	}
}

// Begin starts recording a new session.
func (r *Recorder) Begin(session int, seed int64) {
	r.session = session
	r.seed = seed
	r.tally = telemetry.SessionTally{}
	r.collector.Reset(0)
}

// OnEvent records one session event. Pass it as Options.OnEvent.
func (r *Recorder) OnEvent(e Event) {
	switch e.Kind {
	case EventPickup:
		r.collector.RecordPickup(e.Item, e.LevelGain, e.CoinGain)
	case EventKill:
		r.collector.RecordKill(e.LevelGain, e.CoinGain)
	case EventComboChange:
		r.collector.RecordCombo(e.Combo)
	case EventBossSpawned:
		r.collector.RecordBossSpawn()
	case EventBossDefeated:
		r.collector.RecordBossVictory(e.LevelGain, e.CoinGain)
	}
}

// AfterTick flushes the stats window when it is due.
func (r *Recorder) AfterTick(s *Session) {
	if !r.collector.ShouldFlush(s.Elapsed()) {
		return
	}
	r.flush(s.View())
}

// flush writes the current window.
func (r *Recorder) flush(v View) {
	botLevels := make([]float64, len(v.Bots))
	for i, b := range v.Bots {
		botLevels[i] = b.Level
	}

	stats := r.collector.Flush(telemetry.Sample{
		Session:         r.session,
		Elapsed:         v.Elapsed,
		PlayerLevel:     v.Player.Level,
		ArenaRadius:     v.ArenaRadius,
		ComboMultiplier: v.ComboMultiplier,
		SessionCoins:    v.SessionCoins,
		ItemCount:       len(v.Items),
		BotLevels:       botLevels,
	})
	r.tally.Add(stats)

	if r.logStats {
		stats.LogStats()
	}
	if err := r.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}

// Finish flushes the last partial window and writes the session summary
// and snapshot. Call after the session ends and before Teardown.
func (r *Recorder) Finish(s *Session) telemetry.SessionSummary {
	v := s.View()
	r.flush(v)

	summary := telemetry.SessionSummary{
		Session:      r.session,
		Seed:         r.seed,
		Outcome:      s.Outcome().String(),
		Elapsed:      s.Elapsed(),
		Ticks:        s.Ticks(),
		FinalLevel:   math.Floor(v.Player.Level),
		SessionCoins: s.SessionCurrency(),
	}
	if s.Outcome().Terminal() {
		summary.CoinsBanked = int(math.Floor(s.SessionCurrency()))
	}
	r.tally.Apply(&summary)

	if r.logStats {
		slog.Info("session_summary", "summary", summary)
	}
	if err := r.output.WriteSession(summary); err != nil {
		slog.Error("failed to write session summary", "error", err)
	}
	if r.snapshotDir != "" {
		r.saveSnapshot(s, v)
	}
	return summary
}

// saveSnapshot writes the final arena state to disk.
func (r *Recorder) saveSnapshot(s *Session, v View) {
	snap := &telemetry.Snapshot{
		Version:      telemetry.SnapshotVersion,
		RNGSeed:      r.seed,
		Session:      r.session,
		Outcome:      s.Outcome().String(),
		Elapsed:      v.Elapsed,
		ArenaRadius:  v.ArenaRadius,
		SessionCoins: v.SessionCoins,
		ComboCount:   v.ComboCount,
		Player:       creatureState(v.Player),
	}
	for _, b := range v.Bots {
		snap.Bots = append(snap.Bots, creatureState(b))
	}
	if v.Boss != nil {
		boss := creatureState(*v.Boss)
		snap.Boss = &boss
		snap.BossFrac = v.BossHealth
	}
	for _, it := range v.Items {
		snap.Items = append(snap.Items, telemetry.ItemState{X: it.X, Y: it.Y, Kind: it.Kind.String()})
	}

	path, err := telemetry.SaveSnapshot(snap, r.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "session", r.session)
}

func creatureState(c CreatureView) telemetry.CreatureState {
	return telemetry.CreatureState{
		ID:       c.ID,
		X:        c.X,
		Y:        c.Y,
		Heading:  c.Heading,
		Level:    c.Level,
		Segments: c.SegmentCount(),
	}
}
