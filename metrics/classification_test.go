package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ovatrain/core/model"
)

// fixedClassifier predicts "pos" when the first feature is positive.
type fixedClassifier struct{}

func (fixedClassifier) Predict(x mat.Vector) (string, error) {
	if x.AtVec(0) > 0 {
		return "pos", nil
	}
	return "neg", nil
}

func (fixedClassifier) Scores(x mat.Vector) (map[string]float64, error) {
	return map[string]float64{"pos": x.AtVec(0), "neg": -x.AtVec(0)}, nil
}

func TestAccuracy(t *testing.T) {
	insts := []model.Instance{
		model.NewInstance("pos", []float64{1}),
		model.NewInstance("pos", []float64{2}),
		model.NewInstance("pos", []float64{-1}), // misclassified
		model.NewInstance("neg", []float64{-2}),
	}
	acc, err := Accuracy(fixedClassifier{}, insts)
	if err != nil {
		t.Fatalf("Accuracy failed: %v", err)
	}
	if math.Abs(acc-0.75) > 1e-12 {
		t.Errorf("Accuracy = %v, want 0.75", acc)
	}

	if _, err := Accuracy(fixedClassifier{}, nil); err == nil {
		t.Error("Accuracy on empty slice succeeded")
	}
}

func TestConfusionMatrix(t *testing.T) {
	insts := []model.Instance{
		model.NewInstance("pos", []float64{1}),
		model.NewInstance("pos", []float64{1}),
		model.NewInstance("pos", []float64{-1}),
		model.NewInstance("neg", []float64{-1}),
		model.NewInstance("neg", []float64{1}),
	}
	cm, err := Confusion(fixedClassifier{}, insts)
	if err != nil {
		t.Fatalf("Confusion failed: %v", err)
	}
	if cm.Total() != 5 {
		t.Errorf("Total = %d, want 5", cm.Total())
	}
	if got := cm.Count("pos", "pos"); got != 2 {
		t.Errorf("Count(pos,pos) = %d, want 2", got)
	}
	if got := cm.Count("pos", "neg"); got != 1 {
		t.Errorf("Count(pos,neg) = %d, want 1", got)
	}

	// pos: tp=2, predicted pos = 3, actual pos = 3.
	if p := cm.Precision("pos"); math.Abs(p-2.0/3.0) > 1e-12 {
		t.Errorf("Precision(pos) = %v, want 2/3", p)
	}
	if r := cm.Recall("pos"); math.Abs(r-2.0/3.0) > 1e-12 {
		t.Errorf("Recall(pos) = %v, want 2/3", r)
	}
	if f := cm.F1("pos"); math.Abs(f-2.0/3.0) > 1e-12 {
		t.Errorf("F1(pos) = %v, want 2/3", f)
	}
	if cm.Precision("absent") != 0 || cm.Recall("absent") != 0 || cm.F1("absent") != 0 {
		t.Error("metrics for absent label should be 0")
	}
}
