package trainer

import (
	"context"
	"math/rand"

	"github.com/YuminosukeSato/ovatrain/core/model"
	"github.com/YuminosukeSato/ovatrain/core/parallel"
	"github.com/YuminosukeSato/ovatrain/multiclass"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
	"github.com/YuminosukeSato/ovatrain/pkg/log"
	"github.com/YuminosukeSato/ovatrain/sampling"
)

// TrainingStrategy consumes a stream of labeled instances and updates the
// assembled model in place. Implementations must preserve the sequential
// update contract per binary model: each submodel sees one update at a time
// in a fixed order, because the learning-rate schedule depends on the
// examples-seen counter.
type TrainingStrategy interface {
	Run(ctx context.Context, m *multiclass.Model, policy *sampling.Policy, stream <-chan model.Instance) error
}

// collect drains the stream, applying the per-class sampling policy. It is
// shared by both strategies: each queries the policy once per example and
// makes the keep/drop decision with its own seeded source.
func collect(ctx context.Context, policy *sampling.Policy, stream <-chan model.Instance, rng *rand.Rand, logger log.Logger) ([]model.Instance, error) {
	var kept []model.Instance
	seen, dropped := 0, 0
	for {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "collecting training instances")
		case inst, ok := <-stream:
			if !ok {
				if seen == 0 {
					return nil, errors.WithStack(errors.ErrEmptyStream)
				}
				logger.Debug("instance stream drained",
					log.ExamplesKey, seen,
					log.DroppedKey, dropped)
				return kept, nil
			}
			seen++
			if prob := policy.Resolve(inst.Label); prob < 1.0 && rng.Float64() >= prob {
				dropped++
				continue
			}
			kept = append(kept, inst)
		}
	}
}

// smallStrategy runs a single coordinating sequential pass: every kept
// instance updates the one shared model, in stream order, for the
// configured number of iterations.
type smallStrategy struct {
	iters     int
	batchSize int
	seed      int64
	logger    log.Logger
}

func (s *smallStrategy) Run(ctx context.Context, m *multiclass.Model, policy *sampling.Policy, stream <-chan model.Instance) error {
	rng := rand.New(rand.NewSource(s.seed))
	kept, err := collect(ctx, policy, stream, rng, s.logger)
	if err != nil {
		return err
	}

	for iter := 0; iter < s.iters; iter++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "training iteration %d", iter)
		}
		if err := sequentialPass(m, kept, s.batchSize); err != nil {
			return err
		}
		s.logger.Info("training pass complete",
			log.IterationKey, iter+1,
			log.ExamplesKey, len(kept))
	}
	m.SetFitted()
	return nil
}

// sequentialPass applies instances to the model in order, grouped into
// update batches. Groups only bound how often truncation and bookkeeping
// interleave with delivery; within a group the updates stay sequential.
func sequentialPass(m *multiclass.Model, instances []model.Instance, batchSize int) error {
	for start := 0; start < len(instances); start += batchSize {
		end := start + batchSize
		if end > len(instances) {
			end = len(instances)
		}
		for _, inst := range instances[start:end] {
			if err := m.Update(inst.Features, inst.Label); err != nil {
				return err
			}
		}
	}
	return nil
}

// largeStrategy partitions the kept instances into bins, trains one model
// clone per partition with a partition-local sequential pass, and merges
// the clones back by averaging their weights. Partition passes run in
// parallel; each clone is confined to its own goroutine, preserving the
// sequential contract per model being trained.
type largeStrategy struct {
	iters     int
	batchSize int
	bins      int
	seed      int64
	logger    log.Logger
	newOpt    func() (optimize.Optimizer, error)
}

func (s *largeStrategy) Run(ctx context.Context, m *multiclass.Model, policy *sampling.Policy, stream <-chan model.Instance) error {
	rng := rand.New(rand.NewSource(s.seed))
	kept, err := collect(ctx, policy, stream, rng, s.logger)
	if err != nil {
		return err
	}

	bins := s.bins
	if bins > len(kept) {
		bins = len(kept)
	}
	partitions := make([][]model.Instance, bins)
	for i, inst := range kept {
		partitions[i%bins] = append(partitions[i%bins], inst)
	}

	clones := make([]*multiclass.Model, bins)
	partErrs := make([]error, bins)
	parallel.Parallelize(bins, func(start, end int) {
		for p := start; p < end; p++ {
			partErrs[p] = errors.SafeExecute("partition training pass", func() error {
				clone, err := m.Clone(s.newOpt)
				if err != nil {
					return err
				}
				for iter := 0; iter < s.iters; iter++ {
					if err := ctx.Err(); err != nil {
						return errors.Wrapf(err, "partition %d iteration %d", p, iter)
					}
					if err := sequentialPass(clone, partitions[p], s.batchSize); err != nil {
						return errors.Wrapf(err, "partition %d", p)
					}
				}
				clones[p] = clone
				return nil
			})
		}
	})
	for _, err := range partErrs {
		if err != nil {
			return err
		}
	}

	if err := m.AverageInto(clones); err != nil {
		return err
	}
	m.SetFitted()
	s.logger.Info("partition passes merged",
		log.PartitionsKey, bins,
		log.ExamplesKey, len(kept))
	return nil
}
