package multiclass

import (
	"github.com/YuminosukeSato/ovatrain/linear"
	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Assemble builds a one-vs-all model with one binary submodel per category.
// Every submodel is given its own optimizer from newOpt so learning-rate
// schedules and accumulated state never leak across classes. The category
// order is preserved for deterministic iteration and tie-breaking.
func Assemble(family linear.ModelFamily, categories []string, newOpt func() (optimize.Optimizer, error), trunc linear.Truncation) (*Model, error) {
	if len(categories) == 0 {
		return nil, errors.WithStack(errors.ErrNoCategories)
	}
	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		if cat == "" {
			return nil, errors.NewConfigurationError("categories", "category name must not be empty", cat)
		}
		if _, dup := seen[cat]; dup {
			return nil, errors.NewConfigurationError("categories", "duplicate category", cat)
		}
		seen[cat] = struct{}{}
	}

	m := &Model{
		family:     family,
		categories: append([]string(nil), categories...),
		models:     make(map[string]*linear.BinaryModel, len(categories)),
	}
	for _, cat := range categories {
		opt, err := newOpt()
		if err != nil {
			return nil, errors.Wrapf(err, "building optimizer for category %q", cat)
		}
		sub, err := linear.New(family, opt, trunc)
		if err != nil {
			return nil, errors.Wrapf(err, "building submodel for category %q", cat)
		}
		m.models[cat] = sub
	}
	return m, nil
}
