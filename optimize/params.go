package optimize

import (
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Params is the immutable configuration an optimizer is built from. The
// factory passes it wholesale to the family constructor; nothing mutates a
// built optimizer's configuration afterwards.
type Params struct {
	// Gauss is the Gaussian (L2) regularization weight.
	Gauss float64
	// Laplace is the Laplace (L1) regularization weight.
	Laplace float64

	// InitialRate is the learning rate at epoch zero.
	InitialRate float64
	// ExponentialDecay selects the exponential schedule
	// rate = InitialRate * DecayBase^epoch. When false, the rate decays as
	// InitialRate / (1 + epoch).
	ExponentialDecay bool
	// DecayBase is the base of the exponential schedule.
	DecayBase float64
	// ExamplesPerEpoch scales the continuous epoch counter: one epoch
	// elapses after this many examples.
	ExamplesPerEpoch float64

	// Aggressiveness is the passive-aggressive C parameter.
	Aggressiveness float64

	// FTRLAlpha and FTRLBeta are the FTRL learning-rate terms.
	FTRLAlpha float64
	FTRLBeta  float64
}

// DefaultParams returns parameters matching the documented option defaults.
func DefaultParams() Params {
	return Params{
		InitialRate:      0.1,
		DecayBase:        1.0,
		ExamplesPerEpoch: 10000,
		Aggressiveness:   2.0,
		FTRLAlpha:        1.0,
		FTRLBeta:         1.0,
	}
}

// Validate checks the parameter ranges shared by every optimizer family.
func (p Params) Validate() error {
	if p.InitialRate < 0 {
		return errors.NewConfigurationError("rate", "initial learning rate must be non-negative", p.InitialRate)
	}
	if p.ExamplesPerEpoch <= 0 {
		return errors.NewConfigurationError("examples_per_epoch", "must be positive", p.ExamplesPerEpoch)
	}
	if p.Gauss < 0 {
		return errors.NewConfigurationError("gauss", "L2 weight must be non-negative", p.Gauss)
	}
	if p.Laplace < 0 {
		return errors.NewConfigurationError("laplace", "L1 weight must be non-negative", p.Laplace)
	}
	if p.Aggressiveness <= 0 {
		return errors.NewConfigurationError("aggressiveness", "must be positive", p.Aggressiveness)
	}
	if p.FTRLAlpha <= 0 {
		return errors.NewConfigurationError("ftrlAlpha", "must be positive", p.FTRLAlpha)
	}
	return nil
}
