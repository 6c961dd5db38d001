package trainer

import (
	"context"
	"time"

	"github.com/YuminosukeSato/ovatrain/core/model"
	"github.com/YuminosukeSato/ovatrain/multiclass"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
	"github.com/YuminosukeSato/ovatrain/pkg/log"
	"github.com/YuminosukeSato/ovatrain/sampling"
)

// Trainer owns a validated configuration, the sampling policy, the
// assembled one-vs-all model, and the training strategy the configuration
// selected. Construction does all validation and file I/O; a Trainer that
// exists is ready to train.
type Trainer struct {
	cfg      Config
	policy   *sampling.Policy
	model    *multiclass.Model
	strategy TrainingStrategy
	logger   log.Logger
	seed     int64
}

// Option customizes trainer construction.
type Option func(*Trainer)

// WithStrategy overrides the configuration-selected training strategy.
// The pipeline driving a distributed engine injects its own strategy here.
func WithStrategy(s TrainingStrategy) Option {
	return func(t *Trainer) { t.strategy = s }
}

// WithLogger overrides the default logger.
func WithLogger(l log.Logger) Option {
	return func(t *Trainer) { t.logger = l }
}

// WithSeed fixes the sampling seed, making keep/drop decisions
// reproducible.
func WithSeed(seed int64) Option {
	return func(t *Trainer) { t.seed = seed }
}

// New validates the configuration, builds the sampling policy, and
// assembles the one-vs-all model for the fixed category set. Any
// configuration error, incompatible model/optimizer pairing, or sampling
// file problem fails construction here, before any training work begins.
func New(cfg Config, categories []string, opts ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy, err := sampling.NewPolicy(categories, cfg.ClassProbs, cfg.ClassProbFile)
	if err != nil {
		return nil, err
	}

	newOpt := func() (optimize.Optimizer, error) {
		return optimize.New(cfg.Optimizer, cfg.optimizerParams())
	}
	m, err := multiclass.Assemble(cfg.Model, categories, newOpt, cfg.truncation())
	if err != nil {
		return nil, err
	}

	t := &Trainer{
		cfg:    cfg,
		policy: policy,
		model:  m,
		logger: log.GetLoggerWithName("trainer"),
		seed:   time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.strategy == nil {
		if cfg.Large {
			t.strategy = &largeStrategy{
				iters:     cfg.Iters,
				batchSize: cfg.MiniBatchSize,
				bins:      cfg.Bins,
				seed:      t.seed,
				logger:    t.logger,
				newOpt:    newOpt,
			}
		} else {
			t.strategy = &smallStrategy{
				iters:     cfg.Iters,
				batchSize: cfg.MiniBatchSize,
				seed:      t.seed,
				logger:    t.logger,
			}
		}
	}

	t.logger.Info("trainer assembled",
		log.ModelFamilyKey, cfg.Model.String(),
		log.OptimizerFamilyKey, cfg.Optimizer.String(),
		log.CategoriesKey, len(categories),
		log.StrategyKey, strategyName(cfg.Large))
	return t, nil
}

func strategyName(large bool) string {
	if large {
		return "large"
	}
	return "small"
}

// Config returns the resolved configuration.
func (t *Trainer) Config() Config { return t.cfg }

// Policy returns the per-class sampling policy.
func (t *Trainer) Policy() *sampling.Policy { return t.policy }

// Model returns the assembled model. Before Train returns it is unfitted
// and rejects prediction.
func (t *Trainer) Model() *multiclass.Model { return t.model }

// Train consumes the instance stream, runs the configured strategy, and
// returns the finalized model.
func (t *Trainer) Train(ctx context.Context, stream <-chan model.Instance) (*multiclass.Model, error) {
	return t.run(ctx, t.model, stream)
}

// Retrain continues training an existing model on a fresh stream with this
// trainer's configuration and strategy, then finalizes it again.
func (t *Trainer) Retrain(ctx context.Context, existing *multiclass.Model, stream <-chan model.Instance) (*multiclass.Model, error) {
	if existing == nil {
		return nil, errors.New("retrain requires an existing model")
	}
	return t.run(ctx, existing, stream)
}

func (t *Trainer) run(ctx context.Context, m *multiclass.Model, stream <-chan model.Instance) (*multiclass.Model, error) {
	started := time.Now()
	if err := t.strategy.Run(ctx, m, t.policy, stream); err != nil {
		return nil, err
	}
	Finalize(m, t.cfg.FinalThresholding, t.cfg.String())
	t.logger.Info("training complete",
		log.DurationMsKey, time.Since(started).Milliseconds())
	return m, nil
}
