// Package optimize implements the optimizer families available to the
// trainer: elastic-net SGD, Adagrad, passive-aggressive, FTRL-proximal, and
// MIRA. An optimizer is built fully configured by the factory and owned by
// exactly one binary model; it mutates that model's weight vector one
// example at a time and tracks its own examples-seen counter to drive the
// learning-rate schedule.
package optimize

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Family identifies an optimizer family.
type Family int

const (
	// FamilyElasticNet is plain SGD with L1+L2 regularization.
	FamilyElasticNet Family = iota
	// FamilyAdagrad uses a per-coordinate adaptive learning rate.
	FamilyAdagrad
	// FamilyPassiveAggressive is the margin-based PA update in hinge-loss
	// mode, parameterized by an aggressiveness value.
	FamilyPassiveAggressive
	// FamilyFTRL is follow-the-regularized-leader with its own alpha/beta
	// learning-rate terms.
	FamilyFTRL
	// FamilyMIRA is the margin infused relaxed algorithm.
	FamilyMIRA
)

// String returns the configuration name of the family.
func (f Family) String() string {
	switch f {
	case FamilyElasticNet:
		return "elastic_net"
	case FamilyAdagrad:
		return "adagrad"
	case FamilyPassiveAggressive:
		return "passive_aggressive"
	case FamilyFTRL:
		return "ftrl"
	case FamilyMIRA:
		return "mira"
	default:
		return "unknown"
	}
}

// ParseFamily resolves a configuration name to a Family. Unknown names are
// rejected here, at the boundary, not inside assembly.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "elastic_net":
		return FamilyElasticNet, nil
	case "adagrad":
		return FamilyAdagrad, nil
	case "passive_aggressive":
		return FamilyPassiveAggressive, nil
	case "ftrl":
		return FamilyFTRL, nil
	case "mira":
		return FamilyMIRA, nil
	default:
		return 0, errors.NewConfigurationError("optimizer", "unknown optimizer family", name)
	}
}

// Example carries the per-example quantities an update rule may need. The
// binary model computes the score and the loss gradient for its own family;
// margin-based optimizers recompute their update from X, Target, and Score
// and ignore Gradient.
type Example struct {
	X        mat.Vector
	Target   float64 // +1 or -1
	Score    float64 // current w·x
	Gradient float64 // dLoss/dScore, zero when the example incurs no loss
}

// Optimizer mutates a weight vector one example at a time. Implementations
// are not safe for concurrent use; each instance is owned by a single
// binary model and sees a single sequential update stream.
type Optimizer interface {
	// ApplyUpdate applies one example to w in place.
	ApplyUpdate(w *mat.VecDense, ex Example)

	// EffectiveRate returns the learning rate at the current epoch.
	EffectiveRate() float64

	// Epoch returns the continuous epoch count
	// (examples seen / examples per epoch).
	Epoch() float64

	// ExamplesSeen returns the number of updates applied so far.
	ExamplesSeen() int64

	// Family identifies the update rule.
	Family() Family
}

// New builds one fresh, fully configured optimizer. Instances are never
// pooled or shared; callers needing one optimizer per class call New once
// per class.
func New(family Family, p Params) (Optimizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch family {
	case FamilyElasticNet:
		return newElasticNet(p), nil
	case FamilyAdagrad:
		return newAdagrad(p), nil
	case FamilyPassiveAggressive:
		return newPassiveAggressive(p), nil
	case FamilyFTRL:
		return newFTRL(p), nil
	case FamilyMIRA:
		return newMIRA(p), nil
	default:
		return nil, errors.NewConfigurationError("optimizer", "unknown optimizer family", family)
	}
}
