// Package metrics evaluates trained multiclass models against labeled
// instances.
package metrics

import (
	"github.com/YuminosukeSato/ovatrain/core/model"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

// Accuracy returns the fraction of instances whose predicted label matches
// the true label.
func Accuracy(clf model.Classifier, instances []model.Instance) (float64, error) {
	if len(instances) == 0 {
		return 0, errors.New("metrics: no instances to evaluate")
	}
	correct := 0
	for _, inst := range instances {
		label, err := clf.Predict(inst.Features)
		if err != nil {
			return 0, errors.Wrap(err, "evaluating accuracy")
		}
		if label == inst.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(instances)), nil
}

// ConfusionMatrix counts (true label, predicted label) pairs. Rows are true
// labels, columns are predictions.
type ConfusionMatrix struct {
	counts map[string]map[string]int
	total  int
}

// Confusion builds the confusion matrix for a classifier over labeled
// instances.
func Confusion(clf model.Classifier, instances []model.Instance) (*ConfusionMatrix, error) {
	cm := &ConfusionMatrix{counts: make(map[string]map[string]int)}
	for _, inst := range instances {
		predicted, err := clf.Predict(inst.Features)
		if err != nil {
			return nil, errors.Wrap(err, "building confusion matrix")
		}
		row := cm.counts[inst.Label]
		if row == nil {
			row = make(map[string]int)
			cm.counts[inst.Label] = row
		}
		row[predicted]++
		cm.total++
	}
	return cm, nil
}

// Count returns how many instances with the given true label were predicted
// as the given label.
func (cm *ConfusionMatrix) Count(trueLabel, predicted string) int {
	return cm.counts[trueLabel][predicted]
}

// Total returns the number of evaluated instances.
func (cm *ConfusionMatrix) Total() int { return cm.total }

// Precision returns the fraction of predictions of label that were correct.
// Zero predictions of label yields 0.
func (cm *ConfusionMatrix) Precision(label string) float64 {
	tp := cm.counts[label][label]
	predicted := 0
	for _, row := range cm.counts {
		predicted += row[label]
	}
	if predicted == 0 {
		return 0
	}
	return float64(tp) / float64(predicted)
}

// Recall returns the fraction of instances with true label that were
// predicted as label. Zero instances of label yields 0.
func (cm *ConfusionMatrix) Recall(label string) float64 {
	tp := cm.counts[label][label]
	actual := 0
	for _, n := range cm.counts[label] {
		actual += n
	}
	if actual == 0 {
		return 0
	}
	return float64(tp) / float64(actual)
}

// F1 returns the harmonic mean of precision and recall for a label.
func (cm *ConfusionMatrix) F1(label string) float64 {
	p, r := cm.Precision(label), cm.Recall(label)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
