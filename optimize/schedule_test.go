package optimize

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func zeroGradExample(dim int) Example {
	return Example{X: mat.NewVecDense(dim, nil)}
}

func TestExponentialScheduleAfterOneEpoch(t *testing.T) {
	p := DefaultParams()
	p.InitialRate = 1.0
	p.ExponentialDecay = true
	p.DecayBase = 0.9
	p.ExamplesPerEpoch = 100

	opt, err := New(FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w := mat.NewVecDense(2, nil)
	for i := 0; i < 100; i++ {
		opt.ApplyUpdate(w, zeroGradExample(2))
	}

	if got := opt.Epoch(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Epoch = %v, want 1.0", got)
	}
	if got := opt.EffectiveRate(); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("EffectiveRate after one epoch = %v, want 0.9", got)
	}
}

func TestInverseScheduleDecreases(t *testing.T) {
	p := DefaultParams()
	p.InitialRate = 0.5
	p.ExamplesPerEpoch = 10

	opt, err := New(FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w := mat.NewVecDense(1, nil)
	prev := opt.EffectiveRate()
	if math.Abs(prev-0.5) > 1e-12 {
		t.Fatalf("initial rate = %v, want 0.5", prev)
	}
	for i := 0; i < 50; i++ {
		opt.ApplyUpdate(w, zeroGradExample(1))
		rate := opt.EffectiveRate()
		if rate >= prev {
			t.Fatalf("rate did not decrease at example %d: %v >= %v", i+1, rate, prev)
		}
		prev = rate
	}

	// After 5 epochs the inverse schedule gives rate0 / (1 + 5).
	want := 0.5 / 6.0
	if got := opt.EffectiveRate(); math.Abs(got-want) > 1e-12 {
		t.Errorf("rate after 5 epochs = %v, want %v", got, want)
	}
}

func TestFractionalEpoch(t *testing.T) {
	p := DefaultParams()
	p.ExamplesPerEpoch = 4

	opt, err := New(FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w := mat.NewVecDense(1, nil)
	opt.ApplyUpdate(w, zeroGradExample(1))
	if got := opt.Epoch(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Epoch after one of four examples = %v, want 0.25", got)
	}
	if got := opt.ExamplesSeen(); got != 1 {
		t.Errorf("ExamplesSeen = %d, want 1", got)
	}
}

func TestRegularizationSoftThreshold(t *testing.T) {
	p := DefaultParams()
	p.InitialRate = 1.0
	p.Laplace = 0.05
	p.ExponentialDecay = true // keeps the rate fixed at 1.0 with base 1.0

	opt, err := New(FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Weight below the clip threshold gets zeroed; larger weight shrinks.
	w := mat.NewVecDense(2, []float64{0.03, 0.5})
	opt.ApplyUpdate(w, zeroGradExample(2))

	if got := w.AtVec(0); got != 0 {
		t.Errorf("small weight = %v, want exactly 0 after soft-threshold", got)
	}
	if got := w.AtVec(1); math.Abs(got-0.45) > 1e-12 {
		t.Errorf("large weight = %v, want 0.45", got)
	}
}

func TestGaussShrink(t *testing.T) {
	p := DefaultParams()
	p.InitialRate = 1.0
	p.Gauss = 0.1
	p.ExponentialDecay = true

	opt, err := New(FamilyElasticNet, p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w := mat.NewVecDense(1, []float64{1.0})
	opt.ApplyUpdate(w, zeroGradExample(1))

	if got := w.AtVec(0); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("weight after L2 shrink = %v, want 0.9", got)
	}
}
