// Package simulation estimates race win probabilities by resampling
// historical seasons.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/pitwall/internal/logger"
	"github.com/yourusername/pitwall/internal/metrics"
	"github.com/yourusername/pitwall/internal/models"
	"github.com/yourusername/pitwall/internal/service"
)

// Option customizes a simulation run
type Option func(*runOptions)

type runOptions struct {
	seed     int64
	workers  int
	adjuster Adjuster
	logger   *logger.SimulationLogger
}

// progressStride is how many completed trials pass between progress calls
const progressStride = 1000

// WithSeed fixes the base seed. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(o *runOptions) { o.seed = seed }
}

// WithWorkers sets the number of concurrent workers
func WithWorkers(workers int) Option {
	return func(o *runOptions) { o.workers = workers }
}

// WithAdjuster replaces the default adjustment model
func WithAdjuster(adjuster Adjuster) Option {
	return func(o *runOptions) { o.adjuster = adjuster }
}

// WithLogger attaches a simulation logger for progress output
func WithLogger(l *logger.SimulationLogger) Option {
	return func(o *runOptions) { o.logger = l }
}

// RunSimulation runs trials independent trials and returns each winning
// driver's probability. Trials are split across workers that each own a
// tally and a random stream; tallies are merged once all workers return.
// Output is reproducible for a fixed seed and worker count.
//
// If ctx is cancelled the partial result is returned along with ctx.Err().
func RunSimulation(ctx context.Context, trials int, sampler Sampler, resolver Resolver, opts ...Option) (*models.SimulationResult, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidTrialCount, trials)
	}
	if sampler == nil || resolver == nil {
		return nil, fmt.Errorf("sampler and resolver are required")
	}

	o := runOptions{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.adjuster == nil {
		o.adjuster = DefaultAdjustmentModel()
	}
	if o.workers <= 0 {
		o.workers = 1
	}
	if o.workers > trials {
		o.workers = trials
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}

	start := time.Now()
	seeds := workerSeeds(o.seed, o.workers)
	tallies := make([]models.WinTally, o.workers)
	draws := make([]map[string]int, o.workers)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < o.workers; w++ {
		w := w // per-iteration copy; go.mod targets go 1.21 loop semantics
		share := trials / o.workers
		if w < trials%o.workers {
			share++
		}
		tallies[w] = make(models.WinTally)
		draws[w] = make(map[string]int)

		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[w]))
			for i := 0; i < share; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				season := sampler.Sample(rng)
				if season == nil {
					return models.ErrEmptyPool
				}
				result, err := resolver.Resolve(season, o.adjuster)
				if err != nil {
					return err
				}
				tallies[w].Record(result.Winner)
				draws[w][season.ID]++

				done := completed.Add(1)
				if o.logger != nil && reportProgress(int(done), trials) {
					o.logger.LogProgress(int(done), trials)
				}
			}
			return nil
		})
	}
	err := g.Wait()

	tally := make(models.WinTally)
	seasonDraws := make(map[string]int)
	for w := range tallies {
		tally.Merge(tallies[w])
		for id, n := range draws[w] {
			seasonDraws[id] += n
		}
	}

	result := &models.SimulationResult{
		RunID:           uuid.New(),
		TrialsRequested: trials,
		TrialsCompleted: tally.Total(),
		Seed:            o.seed,
		Workers:         o.workers,
		Tally:           tally,
		Probabilities:   tally.Probabilities(tally.Total()),
		SeasonDraws:     seasonDraws,
		Duration:        time.Since(start),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return result, ctxErr
		}
		return nil, err
	}
	return result, nil
}

// workerSeeds derives one independent seed per worker from the base seed
func workerSeeds(seed int64, workers int) []int64 {
	base := rand.New(rand.NewSource(seed))
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = base.Int63()
	}
	return seeds
}

// Engine runs simulations over a validated season pool
type Engine struct {
	cfg       Config
	seasons   []*models.SeasonDataset
	sampler   *UniformSampler
	resolver  Resolver
	logger    *logrus.Logger
	simLogger *logger.SimulationLogger
}

// NewEngine validates the season pool and creates a simulation engine
func NewEngine(cfg Config, seasons []*models.SeasonDataset, log *logrus.Logger) (*Engine, error) {
	if log == nil {
		log = logrus.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	validator := service.NewSeasonValidator(cfg.Adjustment.Policy == PolicyFallback, log)
	if err := validator.ValidatePool(seasons); err != nil {
		return nil, fmt.Errorf("invalid season pool: %w", err)
	}

	sampler, err := NewUniformSampler(seasons...)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		seasons:   seasons,
		sampler:   sampler,
		resolver:  NewMeanLapResolver(),
		logger:    log,
		simLogger: logger.NewSimulationLogger(log, cfg.ProgressInterval),
	}, nil
}

// Run executes the configured number of trials and records metrics
func (e *Engine) Run(ctx context.Context) (*models.SimulationResult, error) {
	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.simLogger.LogRunStarted(e.cfg.Trials, e.cfg.Workers, seed, e.seasonIDs())

	result, err := RunSimulation(ctx, e.cfg.Trials, e.sampler, e.resolver,
		WithSeed(seed),
		WithWorkers(e.cfg.Workers),
		WithAdjuster(e.cfg.Adjustment),
		WithLogger(e.simLogger),
	)

	switch {
	case err != nil && result != nil:
		runLogger := e.simLogger.WithRun(result.RunID.String())
		runLogger.LogRunInterrupted(result.TrialsCompleted, result.TrialsRequested, err)
		e.record("interrupted", result)
	case err != nil:
		metrics.RecordSimulationRun("failure", 0, 0)
		return nil, err
	default:
		runLogger := e.simLogger.WithRun(result.RunID.String())
		runLogger.LogRunCompleted(result.TrialsCompleted, len(result.Probabilities), result.Duration)
		e.record("success", result)
	}

	return result, err
}

func (e *Engine) record(status string, result *models.SimulationResult) {
	metrics.RecordSimulationRun(status, result.Duration.Seconds(), result.TrialsCompleted)
	metrics.RecordSeasonDraws(result.SeasonDraws)
	metrics.UpdateWinProbabilities(result.Probabilities)
}

func (e *Engine) seasonIDs() []string {
	ids := make([]string, 0, len(e.seasons))
	for _, season := range e.seasons {
		ids = append(ids, season.ID)
	}
	return ids
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Logger returns the engine logger
func (e *Engine) Logger() *logrus.Logger {
	return e.logger
}

// Seasons returns the season pool
func (e *Engine) Seasons() []*models.SeasonDataset {
	return e.seasons
}

// reportProgress reports whether done completed trials should emit progress
func reportProgress(done, trials int) bool {
	return done%progressStride == 0 || done == trials
}
