package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ovatrain/optimize"
	"github.com/YuminosukeSato/ovatrain/pkg/errors"
)

func newTestOptimizer(t *testing.T) optimize.Optimizer {
	t.Helper()
	p := optimize.DefaultParams()
	p.InitialRate = 0.5
	p.ExponentialDecay = true // constant rate with base 1.0
	opt, err := optimize.New(optimize.FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("optimizer construction failed: %v", err)
	}
	return opt
}

func TestParseModelFamily(t *testing.T) {
	cases := []struct {
		name string
		want ModelFamily
	}{
		{"perceptron", Perceptron},
		{"linear_svm", LinearSVM},
		{"logistic_regression", LogisticRegression},
		{"mira", MIRA},
	}
	for _, c := range cases {
		got, err := ParseModelFamily(c.name)
		if err != nil {
			t.Errorf("ParseModelFamily(%q) failed: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseModelFamily(%q) = %v, want %v", c.name, got, c.want)
		}
		if got.String() != c.name {
			t.Errorf("String() = %q, want %q", got.String(), c.name)
		}
	}

	if _, err := ParseModelFamily("decision_tree"); err == nil {
		t.Error("expected error for unknown model family")
	}
}

func TestPerceptronUpdatesOnlyOnMistake(t *testing.T) {
	m, err := New(Perceptron, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	x := mat.NewVecDense(2, []float64{1, 0})

	// First example is misclassified (score 0, margin 0), so the weights
	// move: w += rate * target * x.
	if err := m.Update(x, 1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := m.Score(x); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("score after mistake update = %v, want 0.5", got)
	}

	// Now correctly classified with positive margin: no movement.
	before := m.Score(x)
	if err := m.Update(x, 1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := m.Score(x); got != before {
		t.Errorf("weights moved on a correct prediction: %v -> %v", before, got)
	}
}

func TestLinearSVMUnitMargin(t *testing.T) {
	m, err := New(LinearSVM, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	x := mat.NewVecDense(1, []float64{1})

	// Keeps updating until the margin reaches 1, not just until the sign is
	// right.
	for i := 0; i < 10; i++ {
		if err := m.Update(x, 1); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if got := m.Score(x); got < 1 {
		t.Errorf("score after repeated hinge updates = %v, want >= 1", got)
	}

	before := m.Score(x)
	if err := m.Update(x, 1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := m.Score(x); got != before {
		t.Errorf("weights moved despite unit margin: %v -> %v", before, got)
	}
}

func TestLogisticGradientAlwaysNonzero(t *testing.T) {
	m, err := New(LogisticRegression, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	x := mat.NewVecDense(1, []float64{1})
	var prev float64
	for i := 0; i < 5; i++ {
		if err := m.Update(x, 1); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		score := m.Score(x)
		if score <= prev {
			t.Fatalf("log-loss updates should keep increasing the score: %v -> %v", prev, score)
		}
		prev = score
	}
}

func TestUpdateDimensionMismatch(t *testing.T) {
	m, err := New(LinearSVM, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := m.Update(mat.NewVecDense(3, []float64{1, 2, 3}), 1); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	err = m.Update(mat.NewVecDense(2, []float64{1, 2}), 1)
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected *DimensionError, got %T", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 {
		t.Errorf("Expected/Got = %d/%d, want 3/2", dimErr.Expected, dimErr.Got)
	}
}

func TestTruncationFiresAtPeriod(t *testing.T) {
	trunc := Truncation{Period: 3, Alpha: 0, Threshold: 10}

	p := optimize.DefaultParams()
	p.InitialRate = 0.5
	p.ExponentialDecay = true
	opt, err := optimize.New(optimize.FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("optimizer construction failed: %v", err)
	}
	m, err := New(Perceptron, opt, trunc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	x := mat.NewVecDense(1, []float64{1})

	// Updates 1 and 2: weights grow below the zeroing threshold, no
	// truncation yet.
	mustUpdate(t, m, x, 1)
	mustUpdate(t, m, x, 1)
	if got := m.Score(x); got == 0 {
		t.Fatal("weights zeroed before the truncation period elapsed")
	}

	// Update 3 fires truncation; everything below the threshold is exactly
	// zero.
	mustUpdate(t, m, x, 1)
	if got := m.Score(x); got != 0 {
		t.Errorf("score after truncation = %v, want exactly 0", got)
	}
}

func TestTruncationDisabledByDefault(t *testing.T) {
	m, err := New(Perceptron, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	x := mat.NewVecDense(1, []float64{1})
	for i := 0; i < 100; i++ {
		mustUpdate(t, m, x, 1)
	}
	if got := m.Score(x); got == 0 {
		t.Error("default truncation should never zero the weights")
	}
}

func TestApplyThreshold(t *testing.T) {
	m, err := New(LinearSVM, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m.SetWeights([]float64{0.05, -0.02, 0.5})

	m.ApplyThreshold(0.1)

	want := []float64{0, 0, 0.5}
	got := m.Weights()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("w[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := New(LinearSVM, newTestOptimizer(t), DefaultTruncation())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	x := mat.NewVecDense(1, []float64{1})
	mustUpdate(t, m, x, 1)

	c, err := m.Clone(newTestOptimizer(t))
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	if c.Score(x) != m.Score(x) {
		t.Errorf("clone score %v differs from original %v", c.Score(x), m.Score(x))
	}

	mustUpdate(t, c, x, -1)
	if c.Score(x) == m.Score(x) {
		t.Error("updating the clone changed the original")
	}
}

func mustUpdate(t *testing.T, m *BinaryModel, x mat.Vector, target float64) {
	t.Helper()
	if err := m.Update(x, target); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
}
