// Package multiclass packages per-class binary models into a one-vs-all
// multiclass classifier. The assembler builds one independent submodel per
// category; the model routes updates to every submodel and predicts by
// argmax over the per-class scores.
package multiclass

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ovatrain/core/model"
	"github.com/YuminosukeSato/ovatrain/linear"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Model is a one-vs-all multiclass classifier. The key set of the submodel
// map equals the fixed category set captured at assembly; neither changes
// afterwards. Reads are safe from multiple goroutines; Update must be
// confined to one logical stream per submodel at a time.
type Model struct {
	model.BaseEstimator

	family       linear.ModelFamily
	categories   []string
	models       map[string]*linear.BinaryModel
	configString string
	finalized    bool
}

var _ model.Classifier = (*Model)(nil)

// Family returns the model-type tag.
func (m *Model) Family() linear.ModelFamily { return m.family }

// Categories returns a copy of the fixed category set.
func (m *Model) Categories() []string {
	return append([]string(nil), m.categories...)
}

// SubModel returns the binary model for a label, or nil when the label is
// not a configured category.
func (m *Model) SubModel(label string) *linear.BinaryModel {
	return m.models[label]
}

// ConfigString returns the full configuration the model was produced with.
// Empty until the post-processor stamps it.
func (m *Model) ConfigString() string { return m.configString }

// SetConfigString stamps the configuration audit string. Called once by the
// post-processor.
func (m *Model) SetConfigString(s string) { m.configString = s }

// Finalized reports whether the post-processor has run.
func (m *Model) Finalized() bool { return m.finalized }

// SetFinalized marks the model safe to serialize. Called once by the
// post-processor.
func (m *Model) SetFinalized() { m.finalized = true }

// Update applies one labeled example to every submodel: target +1 for the
// submodel of the example's label, -1 for all others. Labels outside the
// category set update every submodel with target -1, treating the example
// as a negative for all classes.
func (m *Model) Update(x mat.Vector, label string) error {
	for _, cat := range m.categories {
		target := -1.0
		if cat == label {
			target = 1.0
		}
		if err := m.models[cat].Update(x, target); err != nil {
			return errors.Wrapf(err, "updating submodel %q", cat)
		}
	}
	return nil
}

// Scores returns the raw per-class scores for a feature vector.
func (m *Model) Scores(x mat.Vector) (map[string]float64, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MulticlassModel", "Scores")
	}
	scores := make(map[string]float64, len(m.categories))
	for _, cat := range m.categories {
		scores[cat] = m.models[cat].Score(x)
	}
	return scores, nil
}

// Predict returns the label with the highest score. Ties break toward the
// earlier category in the configured order, keeping prediction
// deterministic.
func (m *Model) Predict(x mat.Vector) (string, error) {
	if !m.IsFitted() {
		return "", errors.NewNotFittedError("MulticlassModel", "Predict")
	}
	best := ""
	bestScore := math.Inf(-1)
	for _, cat := range m.categories {
		if score := m.models[cat].Score(x); score > bestScore {
			bestScore = score
			best = cat
		}
	}
	return best, nil
}

// Clone returns a deep copy whose submodels own fresh optimizers produced
// by newOpt. The large-scale strategy trains partition-local clones and
// merges them back with AverageInto.
func (m *Model) Clone(newOpt func() (optimize.Optimizer, error)) (*Model, error) {
	clone := &Model{
		family:       m.family,
		categories:   append([]string(nil), m.categories...),
		models:       make(map[string]*linear.BinaryModel, len(m.models)),
		configString: m.configString,
	}
	for _, cat := range m.categories {
		opt, err := newOpt()
		if err != nil {
			return nil, err
		}
		sub, err := m.models[cat].Clone(opt)
		if err != nil {
			return nil, err
		}
		clone.models[cat] = sub
	}
	if m.IsFitted() {
		clone.SetFitted()
	}
	return clone, nil
}

// AverageInto overwrites m's weights with the coordinate-wise average of
// the given clones' weights. Clones must share m's category set.
func (m *Model) AverageInto(clones []*Model) error {
	if len(clones) == 0 {
		return nil
	}
	for _, cat := range m.categories {
		var sum []float64
		n := 0
		for _, c := range clones {
			sub := c.models[cat]
			if sub == nil {
				return errors.Newf("clone missing submodel %q", cat)
			}
			w := sub.Weights()
			if w == nil {
				continue
			}
			if sum == nil {
				sum = make([]float64, len(w))
			} else if len(sum) != len(w) {
				return errors.NewDimensionError("AverageInto", len(sum), len(w))
			}
			for i, v := range w {
				sum[i] += v
			}
			n++
		}
		if n == 0 {
			continue
		}
		for i := range sum {
			sum[i] /= float64(n)
		}
		m.models[cat].SetWeights(sum)
	}
	return nil
}

// modelJSON is the serialized form of a finalized model.
type modelJSON struct {
	Family       string               `json:"family"`
	Categories   []string             `json:"categories"`
	Weights      map[string][]float64 `json:"weights"`
	ConfigString string               `json:"config"`
	Fitted       bool                 `json:"fitted"`
	Finalized    bool                 `json:"finalized"`
}

// MarshalJSON serializes the model for hand-off to downstream consumers.
func (m *Model) MarshalJSON() ([]byte, error) {
	out := modelJSON{
		Family:       m.family.String(),
		Categories:   m.Categories(),
		Weights:      make(map[string][]float64, len(m.models)),
		ConfigString: m.configString,
		Fitted:       m.IsFitted(),
		Finalized:    m.finalized,
	}
	sort.Strings(out.Categories)
	for cat, sub := range m.models {
		if w := sub.Weights(); w != nil {
			out.Weights[cat] = w
		}
	}
	return json.Marshal(out)
}
