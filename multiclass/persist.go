package multiclass

import (
	"encoding/json"

	"github.com/YuminosukeSato/ovatrain/linear"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// LoadJSON reconstructs a model serialized with MarshalJSON. The caller
// supplies the optimizer factory so the loaded model can be retrained; a
// model loaded only for prediction still gets working optimizers but never
// exercises them.
func LoadJSON(data []byte, trunc linear.Truncation, newOpt func() (optimize.Optimizer, error)) (*Model, error) {
	var raw modelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding multiclass model")
	}
	family, err := linear.ParseModelFamily(raw.Family)
	if err != nil {
		return nil, err
	}
	m, err := Assemble(family, raw.Categories, newOpt, trunc)
	if err != nil {
		return nil, err
	}
	for cat, w := range raw.Weights {
		sub := m.models[cat]
		if sub == nil {
			return nil, errors.Newf("weights for unknown category %q", cat)
		}
		sub.SetWeights(w)
	}
	m.configString = raw.ConfigString
	if raw.Fitted {
		m.SetFitted()
	}
	m.finalized = raw.Finalized
	return m, nil
}
