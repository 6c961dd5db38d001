// Package linear implements the per-class binary linear classifiers that a
// one-vs-all multiclass model is assembled from. A binary model couples a
// weight vector with the optimizer that owns its update rule and with the
// gradient-truncation parameters that keep the vector sparse during long
// training runs.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// ModelFamily identifies a binary-model family, i.e. the loss the model
// trains against.
type ModelFamily int

const (
	// Perceptron trains against hinge loss with a zero margin threshold.
	Perceptron ModelFamily = iota
	// LinearSVM trains against hinge loss with a unit margin threshold.
	LinearSVM
	// LogisticRegression trains against log loss.
	LogisticRegression
	// MIRA is the margin-based family updated only by the MIRA optimizer.
	MIRA
)

// String returns the configuration name of the family.
func (f ModelFamily) String() string {
	switch f {
	case Perceptron:
		return "perceptron"
	case LinearSVM:
		return "linear_svm"
	case LogisticRegression:
		return "logistic_regression"
	case MIRA:
		return "mira"
	default:
		return "unknown"
	}
}

// ParseModelFamily resolves a configuration name to a ModelFamily. Unknown
// names are rejected here, at the boundary.
func ParseModelFamily(name string) (ModelFamily, error) {
	switch name {
	case "perceptron":
		return Perceptron, nil
	case "linear_svm":
		return LinearSVM, nil
	case "logistic_regression":
		return LogisticRegression, nil
	case "mira":
		return MIRA, nil
	default:
		return 0, errors.NewConfigurationError("model", "unknown model family", name)
	}
}

// Truncation holds the gradient-truncation parameters. Every Period
// updates the weights are shrunk by Alpha and coordinates whose magnitude
// falls below Threshold are zeroed. The default Period of math.MaxInt
// effectively disables truncation.
type Truncation struct {
	Period    int
	Alpha     float64
	Threshold float64
}

// DefaultTruncation returns truncation parameters that never fire.
func DefaultTruncation() Truncation {
	return Truncation{Period: math.MaxInt}
}

// BinaryModel is one class's linear classifier: a weight vector plus the
// optimizer that owns its updates. The vector is sized on the first update
// and every later example must match that dimension. A BinaryModel must see
// one sequential update stream at a time; concurrent Score calls are safe
// only once updates have stopped.
type BinaryModel struct {
	family  ModelFamily
	opt     optimize.Optimizer
	coef    *mat.VecDense
	trunc   Truncation
	updates int64
}

// New builds a binary model of the given family bound to opt. The optimizer
// is owned by the returned model and must not be shared with another model.
func New(family ModelFamily, opt optimize.Optimizer, trunc Truncation) (*BinaryModel, error) {
	switch family {
	case Perceptron, LinearSVM, LogisticRegression, MIRA:
	default:
		return nil, errors.NewConfigurationError("model", "unknown model family", family)
	}
	if opt == nil {
		return nil, errors.NewConfigurationError("optimizer", "binary model requires an optimizer", nil)
	}
	if trunc.Period <= 0 {
		return nil, errors.NewConfigurationError("period", "truncation period must be positive", trunc.Period)
	}
	return &BinaryModel{
		family: family,
		opt:    opt,
		trunc:  trunc,
	}, nil
}

// Family returns the model's family tag.
func (m *BinaryModel) Family() ModelFamily { return m.family }

// Optimizer exposes the owned optimizer for inspection.
func (m *BinaryModel) Optimizer() optimize.Optimizer { return m.opt }

// Updates returns the number of updates applied so far.
func (m *BinaryModel) Updates() int64 { return m.updates }

// Score returns the raw linear score w·x. A model that has never been
// updated scores zero for any input.
func (m *BinaryModel) Score(x mat.Vector) float64 {
	if m.coef == nil {
		return 0
	}
	return mat.Dot(m.coef, x)
}

// Update applies one example with target in {-1, +1}: it computes the
// family's loss gradient at the current score, hands the example to the
// owned optimizer, and fires truncation when the period elapses.
func (m *BinaryModel) Update(x mat.Vector, target float64) error {
	if m.coef == nil {
		m.coef = mat.NewVecDense(x.Len(), nil)
	} else if x.Len() != m.coef.Len() {
		return errors.NewDimensionError("Update", m.coef.Len(), x.Len())
	}

	score := mat.Dot(m.coef, x)
	ex := optimize.Example{
		X:        x,
		Target:   target,
		Score:    score,
		Gradient: m.gradient(score, target),
	}
	m.opt.ApplyUpdate(m.coef, ex)
	m.updates++

	if err := errors.CheckScalar("weight_update", mat.Norm(m.coef, 1), m.updates); err != nil {
		return err
	}

	if m.updates%int64(m.trunc.Period) == 0 {
		m.truncate()
	}
	return nil
}

// gradient returns dLoss/dScore for the model's family. Margin-based
// optimizers recompute their own step from the score and ignore this value.
func (m *BinaryModel) gradient(score, target float64) float64 {
	switch m.family {
	case Perceptron:
		// Hinge at margin zero: update only on misclassification.
		if target*score <= 0 {
			return -target
		}
		return 0
	case LinearSVM, MIRA:
		// Hinge at unit margin.
		if target*score < 1 {
			return -target
		}
		return 0
	case LogisticRegression:
		return -target / (1.0 + math.Exp(target*score))
	default:
		return 0
	}
}

// truncate shrinks every coordinate by the truncation alpha and zeroes
// those whose magnitude falls below the threshold.
func (m *BinaryModel) truncate() {
	if m.coef == nil {
		return
	}
	raw := m.coef.RawVector()
	for i := 0; i < raw.N; i++ {
		v := raw.Data[i*raw.Inc] * (1.0 - m.trunc.Alpha)
		if math.Abs(v) < m.trunc.Threshold {
			v = 0
		}
		raw.Data[i*raw.Inc] = v
	}
}

// ApplyThreshold zeroes every coordinate whose magnitude falls below
// threshold. The post-processor calls this once, globally, after training
// completes.
func (m *BinaryModel) ApplyThreshold(threshold float64) {
	if m.coef == nil || threshold <= 0 {
		return
	}
	raw := m.coef.RawVector()
	for i := 0; i < raw.N; i++ {
		if math.Abs(raw.Data[i*raw.Inc]) < threshold {
			raw.Data[i*raw.Inc] = 0
		}
	}
}

// Weights returns a copy of the weight vector, or nil when the model has
// never been updated.
func (m *BinaryModel) Weights() []float64 {
	if m.coef == nil {
		return nil
	}
	return append([]float64(nil), m.coef.RawVector().Data...)
}

// SetWeights replaces the weight vector. It exists for deserialization and
// for merging partition-local passes; it is not part of the training path.
func (m *BinaryModel) SetWeights(w []float64) {
	if w == nil {
		m.coef = nil
		return
	}
	m.coef = mat.NewVecDense(len(w), append([]float64(nil), w...))
}

// Clone returns a model with copied weights bound to a fresh optimizer.
// Partition-local passes in the large-scale strategy train on clones and
// merge the results back.
func (m *BinaryModel) Clone(opt optimize.Optimizer) (*BinaryModel, error) {
	c, err := New(m.family, opt, m.trunc)
	if err != nil {
		return nil, err
	}
	c.SetWeights(m.Weights())
	return c, nil
}
