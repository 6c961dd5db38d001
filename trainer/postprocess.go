package trainer

import (
	"github.com/YuminosukeSato/ovatrain/multiclass"
)

// Finalize applies the one-time global coefficient thresholding, stamps the
// model with the configuration string that produced it, and marks it safe
// to serialize. It runs exactly once per training pass, after the strategy
// returns, never during training.
func Finalize(m *multiclass.Model, threshold float64, configString string) *multiclass.Model {
	for _, cat := range m.Categories() {
		m.SubModel(cat).ApplyThreshold(threshold)
	}
	m.SetConfigString(configString)
	m.SetFinalized()
	return m
}
