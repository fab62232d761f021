// Package main tunes the autopilot steering weights with CMA-ES, scoring each
// candidate by the currency it earns across headless sessions.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/snakeclash/config"
)

// options are the parsed command-line flags.
type options struct {
	configPath string
	sessions   int
	seeds      int
	maxEvals   int
	population int
	outputDir  string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.IntVar(&opts.sessions, "sessions", 4, "Sessions per seed")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = 4 + 3 ln n)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	// Session lifecycle logs stay below the progress lines
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "balance:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	params := NewParamVector()
	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, opts.sessions, seeds, baseCfg)

	logFile, err := os.Create(filepath.Join(opts.outputDir, "balance_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	tracker := newProgress(params, opts.maxEvals, csv.NewWriter(logFile))
	defer tracker.log.Flush()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			tracker.record(fitness, evaluator.LastQuality(), params.Clamp(raw))
			return fitness
		},
	}

	dim := params.Dim()
	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	// Seeds already run in parallel inside Evaluate
	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, opts.maxEvals)
	fmt.Printf("Seeds per evaluation: %d, sessions per seed: %d\n", opts.seeds, opts.sessions)

	result, err := optimize.Minimize(problem, params.Normalize(params.ExtractFromConfig(baseCfg)), settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	// Best params may come from any evaluation, not just the final mean
	best := tracker.bestParams
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		return fmt.Errorf("no evaluations completed")
	}

	fmt.Printf("\nFinished %d evaluations in %s, best fitness %.0f\n",
		tracker.evals, formatDuration(time.Since(tracker.start)), tracker.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, best[i])
	}
	for i, r := range evaluator.BestResults() {
		fmt.Printf("  session %d: %s level=%.0f coins=%.0f kills=%d\n",
			i+1, r.Outcome, math.Floor(r.Level), math.Floor(r.SessionCoins), r.Kills)
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, best)
	out := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("Best config saved to: %s\n", out)
	return nil
}

// progress logs every evaluation to CSV and stdout and keeps the best one.
type progress struct {
	params   *ParamVector
	maxEvals int
	log      *csv.Writer
	start    time.Time

	evals       int
	bestFitness float64
	bestParams  []float64
}

func newProgress(params *ParamVector, maxEvals int, w *csv.Writer) *progress {
	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	w.Write(header)

	return &progress{
		params:      params,
		maxEvals:    maxEvals,
		log:         w,
		start:       time.Now(),
		bestFitness: math.Inf(1),
	}
}

func (p *progress) record(fitness, quality float64, values []float64) {
	p.evals++
	if fitness < p.bestFitness {
		p.bestFitness = fitness
		p.bestParams = values
	}

	row := []string{strconv.Itoa(p.evals), strconv.FormatFloat(fitness, 'f', 3, 64), strconv.FormatFloat(quality, 'f', 4, 64)}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	p.log.Write(row)
	p.log.Flush()

	elapsed := time.Since(p.start)
	eta := time.Duration(p.maxEvals-p.evals) * (elapsed / time.Duration(p.evals))

	// Fitness = -(meanCoins × (1 + 0.2×quality))
	meanCoins := -fitness / (1.0 + 0.2*quality)
	fmt.Printf("Eval %d/%d: coins=%.0f quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
		p.evals, p.maxEvals, meanCoins, quality, p.bestFitness,
		formatDuration(elapsed), formatDuration(eta))
}

// formatDuration formats a duration as HhMMmSSs or MmSSs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
