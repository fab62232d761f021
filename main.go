package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/game"
	"github.com/pthm-cable/snakeclash/telemetry"
	"github.com/pthm-cable/snakeclash/tui"
	"github.com/pthm-cable/snakeclash/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	economyPath := flag.String("economy", "snakeclash-save.json", "Path to the persistent economy record")
	headless := flag.Bool("headless", false, "Run autopilot sessions without graphics")
	terminal := flag.Bool("tui", false, "Play in the terminal instead of a window")
	mute := flag.Bool("mute", false, "Disable terminal audio")
	sessions := flag.Int("sessions", 1, "Headless sessions to play back to back")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for end-of-session snapshots")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal owns stdout while the TUI runs, so logs go to a file there
	logger, closeLog, err := newLogger(*terminal)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
	}

	var recorder *game.Recorder
	if *logStats || output != nil || *snapshotDir != "" {
		recorder = game.NewRecorder(statsWindowSec, output, *logStats, *snapshotDir)
	}

	repo := economy.NewFileRepository(*economyPath)

	switch {
	case *headless:
		runHeadless(cfg, repo, logger, recorder, rngSeed, *sessions)

	case *terminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			logger.Error("failed to create terminal screen", "error", err)
			os.Exit(1)
		}
		if err := screen.Init(); err != nil {
			logger.Error("failed to init terminal screen", "error", err)
			os.Exit(1)
		}
		app := tui.NewApp(cfg, repo, screen, tui.Options{
			Seed:     rngSeed,
			Logger:   logger,
			Recorder: recorder,
			Mute:     *mute,
		})
		if err := app.Run(); err != nil {
			logger.Error("terminal session failed", "error", err)
			os.Exit(1)
		}

	default:
		app := ui.NewApp(cfg, repo, ui.Options{
			Seed:     rngSeed,
			Logger:   logger,
			Recorder: recorder,
		})
		if err := app.Run(); err != nil {
			logger.Error("session failed", "error", err)
			os.Exit(1)
		}
	}
}

// runHeadless plays autopilot sessions and logs their results.
func runHeadless(cfg *config.Config, repo *economy.FileRepository, logger *slog.Logger, recorder *game.Recorder, seed int64, sessions int) {
	logger.Info("starting headless sessions",
		"seed", seed,
		"sessions", sessions,
		"economy", repo.Path(),
	)

	perf := game.NewPerfStats(0)
	start := time.Now()
	results, err := game.RunHeadless(cfg, repo, game.HeadlessOptions{
		Sessions: sessions,
		Seed:     seed,
		Recorder: recorder,
		Perf:     perf,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("headless run failed", "error", err, "completed", len(results))
		os.Exit(1)
	}

	for i, r := range results {
		logger.Info("session_result",
			"session", i+1,
			"outcome", r.Outcome.String(),
			"elapsed", r.Elapsed,
			"level", math.Floor(r.Level),
			"coins", math.Floor(r.SessionCoins),
			"kills", r.Kills,
			"boss_victories", r.BossVictories,
		)
	}

	rec, _, err := economy.Load(repo, &cfg.Economy)
	if err != nil {
		logger.Error("failed to reload economy", "error", err)
		os.Exit(1)
	}
	logger.Info("headless run complete",
		"wall_time", time.Since(start).String(),
		"avg_tick_us", perf.Avg("tick").Microseconds(),
		"coins", rec.Coins,
	)
}

// newLogger returns a JSON logger on stdout, or on logs/snakeclash.log when
// the terminal front-end needs the screen.
func newLogger(toFile bool) (*slog.Logger, func(), error) {
	if !toFile {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil)), func() {}, nil
	}
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join("logs", "snakeclash.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}
