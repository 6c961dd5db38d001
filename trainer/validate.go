package trainer

import (
	"github.com/YuminosukeSato/ovatrain/linear"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Validate checks cross-parameter constraints. It runs at trainer
// construction, before any data is touched, so a bad pairing fails fast
// instead of after expensive setup.
func (c Config) Validate() error {
	if c.Model == linear.MIRA && c.Optimizer != optimize.FamilyMIRA {
		return errors.NewConfigurationError("optimizer",
			"the MIRA model family requires the MIRA optimizer", c.Optimizer.String())
	}
	if c.Iters < 1 {
		return errors.NewConfigurationError("iters", "must be at least 1", c.Iters)
	}
	if c.Bins < 1 {
		return errors.NewConfigurationError("bins", "must be at least 1", c.Bins)
	}
	if c.MiniBatchSize < 1 {
		return errors.NewConfigurationError("mini_batch_size", "must be at least 1", c.MiniBatchSize)
	}
	if c.FinalThresholding < 0 {
		return errors.NewConfigurationError("final_thresholding", "must not be negative", c.FinalThresholding)
	}
	if c.Period < 1 {
		return errors.NewConfigurationError("period", "must be at least 1", c.Period)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return errors.NewConfigurationError("alpha", "must be in [0, 1]", c.Alpha)
	}
	if c.Thresh < 0 {
		return errors.NewConfigurationError("thresh", "must not be negative", c.Thresh)
	}
	// Rate, regularization, and family-specific parameters are validated
	// by the optimizer constructor with the same fail-fast contract.
	return c.optimizerParams().Validate()
}
