package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
)

// DefaultStep is the fixed tick length for headless runs.
const DefaultStep float32 = 1.0 / 60.0

// HeadlessOptions configures a batch of autopilot sessions.
type HeadlessOptions struct {
	Sessions int          // Number of sessions (min 1)
	Seed     int64        // Base seed; session i uses Seed+i (0 = time-based)
	Step     float32      // Tick length (0 = DefaultStep)
	Recorder *Recorder    // Optional telemetry
	Perf     *PerfStats   // Optional tick timing
	Logger   *slog.Logger // nil = slog.Default()
}

// RunResult summarises one headless session.
type RunResult struct {
	Outcome       Outcome
	Elapsed       float64
	Level         float64
	SessionCoins  float64
	Kills         int
	BossVictories int
}

// RunHeadless plays sessions back to back with the autopilot, committing
// each session's currency to repo.
func RunHeadless(cfg *config.Config, repo economy.Repository, opts HeadlessOptions) ([]RunResult, error) {
	sessions := max(opts.Sessions, 1)
	step := opts.Step
	if step <= 0 {
		step = DefaultStep
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pilot := NewAutopilot(cfg.Autopilot)

	results := make([]RunResult, 0, sessions)
	for i := 0; i < sessions; i++ {
		var res RunResult
		onEvent := func(e Event) {
			switch e.Kind {
			case EventKill:
				res.Kills++
			case EventBossDefeated:
				res.BossVictories++
			}
			if opts.Recorder != nil {
				opts.Recorder.OnEvent(e)
			}
		}

		s, err := NewSession(cfg, repo, Options{Seed: seed + int64(i), Logger: opts.Logger, OnEvent: onEvent})
		if err != nil {
			return results, err
		}
		if opts.Recorder != nil {
			opts.Recorder.Begin(i+1, seed+int64(i))
		}
		if err := s.Start(); err != nil {
			return results, fmt.Errorf("starting session %d: %w", i+1, err)
		}

		for s.Playing() {
			steer := pilot.Steer(s.View())
			if opts.Perf != nil {
				start := time.Now()
				s.Tick(step, steer)
				opts.Perf.Record("tick", time.Since(start))
			} else {
				s.Tick(step, steer)
			}
			if opts.Recorder != nil {
				opts.Recorder.AfterTick(s)
			}
		}

		res.Outcome = s.Outcome()
		res.Elapsed = s.Elapsed()
		res.Level = s.PlayerLevel()
		res.SessionCoins = s.SessionCurrency()
		if opts.Recorder != nil {
			opts.Recorder.Finish(s)
		}
		s.Teardown()

		results = append(results, res)
	}
	return results, nil
}
