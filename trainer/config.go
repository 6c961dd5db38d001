// Package trainer turns a set of hyperparameters into a runnable training
// strategy: it resolves and validates configuration, builds the per-class
// sampling policy, assembles the one-vs-all model with one optimizer per
// class, runs a small- or large-scale training pass over an instance
// stream, and finalizes the trained model.
package trainer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/YuminosukeSato/ovatrain/linear"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Config is the full resolved hyperparameter set. It is built once by
// DefaultConfig or ResolveOptions and never mutated afterwards; every
// downstream component reads from it.
type Config struct {
	// Iters is the number of passes over the data.
	Iters int
	// Model selects the binary model family trained per class.
	Model linear.ModelFamily
	// Optimizer selects the update rule bound to each binary model.
	Optimizer optimize.Family

	// Aggressiveness is the passive-aggressive margin parameter C.
	Aggressiveness float64
	// FinalThresholding zeroes coefficients below this magnitude once,
	// after training completes.
	FinalThresholding float64

	// Rate is the initial learning rate.
	Rate float64
	// ExponentialDecay selects the exponential learning-rate schedule.
	// Setting the exponential_learning_rate_base option turns it on.
	ExponentialDecay bool
	// ExponentialBase is the per-epoch decay base for the exponential
	// schedule.
	ExponentialBase float64
	// ExamplesPerEpoch converts the examples-seen counter into the
	// fractional epoch that drives rate decay.
	ExamplesPerEpoch float64

	// Laplace is the L1 regularization weight.
	Laplace float64
	// Gauss is the L2 regularization weight.
	Gauss float64

	// Period applies gradient truncation every Period updates. The
	// default of math.MaxInt never fires.
	Period int
	// Alpha is the truncation shrinkage factor.
	Alpha float64
	// Thresh is the truncation zeroing threshold.
	Thresh float64

	// FTRLAlpha and FTRLBeta are the FTRL learning-rate parameters.
	FTRLAlpha float64
	FTRLBeta  float64

	// ClassProbs is an inline `label:prob,label:prob` sampling override.
	ClassProbs string
	// ClassProbFile is a newline-delimited `label:prob` override file.
	// File entries win over inline entries.
	ClassProbFile string

	// Bins is the partition count for the large-scale strategy.
	Bins int
	// Large selects the large-scale strategy over the sequential one.
	Large bool
	// MiniBatchSize is the number of examples aggregated per update group.
	MiniBatchSize int
}

// DefaultConfig returns the configuration with every option at its
// documented default.
func DefaultConfig() Config {
	return Config{
		Iters:             1,
		Model:             linear.LogisticRegression,
		Optimizer:         optimize.FamilyElasticNet,
		Aggressiveness:    2.0,
		FinalThresholding: 0.0,
		Rate:              0.1,
		ExponentialDecay:  false,
		ExponentialBase:   1.0,
		ExamplesPerEpoch:  10000,
		Laplace:           0.0,
		Gauss:             0.0,
		Period:            math.MaxInt,
		Alpha:             0.0,
		Thresh:            0.0,
		FTRLAlpha:         1.0,
		FTRLBeta:          1.0,
		Bins:              100,
		Large:             false,
		MiniBatchSize:     1,
	}
}

// ResolveOptions resolves a string-keyed option map into a typed Config,
// applying the documented default for every absent option. Unknown option
// names and unparseable values are configuration errors.
func ResolveOptions(opts map[string]string) (Config, error) {
	cfg := DefaultConfig()
	for name, raw := range opts {
		var err error
		switch name {
		case "iters":
			cfg.Iters, err = parseInt(name, raw)
		case "model":
			cfg.Model, err = linear.ParseModelFamily(raw)
		case "optimizer":
			cfg.Optimizer, err = optimize.ParseFamily(raw)
		case "aggressiveness":
			cfg.Aggressiveness, err = parseFloat(name, raw)
		case "final_thresholding":
			cfg.FinalThresholding, err = parseFloat(name, raw)
		case "rate":
			cfg.Rate, err = parseFloat(name, raw)
		case "exponential_learning_rate_base":
			// Presence of the option toggles the exponential schedule.
			cfg.ExponentialDecay = true
			cfg.ExponentialBase, err = parseFloat(name, raw)
		case "examples_per_epoch":
			cfg.ExamplesPerEpoch, err = parseFloat(name, raw)
		case "laplace":
			cfg.Laplace, err = parseFloat(name, raw)
		case "gauss":
			cfg.Gauss, err = parseFloat(name, raw)
		case "period":
			cfg.Period, err = parseInt(name, raw)
		case "alpha":
			cfg.Alpha, err = parseFloat(name, raw)
		case "thresh":
			cfg.Thresh, err = parseFloat(name, raw)
		case "ftrlAlpha":
			cfg.FTRLAlpha, err = parseFloat(name, raw)
		case "ftrlBeta":
			cfg.FTRLBeta, err = parseFloat(name, raw)
		case "class_probs":
			cfg.ClassProbs = raw
		case "class_prob_file":
			cfg.ClassProbFile = raw
		case "bins":
			cfg.Bins, err = parseInt(name, raw)
		case "large":
			cfg.Large, err = parseBool(name, raw)
		case "mini_batch_size":
			cfg.MiniBatchSize, err = parseInt(name, raw)
		default:
			err = errors.NewConfigurationError(name, "unknown option", raw)
		}
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func parseInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewConfigurationError(name, "not an integer", raw)
	}
	return v, nil
}

func parseFloat(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewConfigurationError(name, "not a number", raw)
	}
	return v, nil
}

func parseBool(name, raw string) (bool, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewConfigurationError(name, "not a boolean", raw)
	}
	return v, nil
}

// String renders the full configuration in a fixed field order. The
// post-processor stamps this string onto the trained model for auditing.
func (c Config) String() string {
	s := fmt.Sprintf(
		"iters=%d model=%s optimizer=%s aggressiveness=%g final_thresholding=%g "+
			"rate=%g exponential=%t exponential_learning_rate_base=%g examples_per_epoch=%g "+
			"laplace=%g gauss=%g period=%d alpha=%g thresh=%g ftrlAlpha=%g ftrlBeta=%g "+
			"bins=%d large=%t mini_batch_size=%d",
		c.Iters, c.Model, c.Optimizer, c.Aggressiveness, c.FinalThresholding,
		c.Rate, c.ExponentialDecay, c.ExponentialBase, c.ExamplesPerEpoch,
		c.Laplace, c.Gauss, c.Period, c.Alpha, c.Thresh, c.FTRLAlpha, c.FTRLBeta,
		c.Bins, c.Large, c.MiniBatchSize)
	if c.ClassProbs != "" {
		s += " class_probs=" + c.ClassProbs
	}
	if c.ClassProbFile != "" {
		s += " class_prob_file=" + c.ClassProbFile
	}
	return s
}

// optimizerParams maps the configuration onto the optimizer parameter set.
func (c Config) optimizerParams() optimize.Params {
	return optimize.Params{
		Gauss:            c.Gauss,
		Laplace:          c.Laplace,
		InitialRate:      c.Rate,
		ExponentialDecay: c.ExponentialDecay,
		DecayBase:        c.ExponentialBase,
		ExamplesPerEpoch: c.ExamplesPerEpoch,
		Aggressiveness:   c.Aggressiveness,
		FTRLAlpha:        c.FTRLAlpha,
		FTRLBeta:         c.FTRLBeta,
	}
}

// truncation maps the configuration onto the gradient-truncation settings.
func (c Config) truncation() linear.Truncation {
	return linear.Truncation{Period: c.Period, Alpha: c.Alpha, Threshold: c.Thresh}
}
