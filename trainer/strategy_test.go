package trainer

import (
	"context"
	"testing"

	"github.com/YuminosukeSato/ovatrain/core/model"
	"github.com/YuminosukeSato/ovatrain/multiclass"
	"github.com/YuminosukeSato/ovatrain/sampling"
)

// recordingStrategy stands in for an externally injected pipeline strategy.
type recordingStrategy struct {
	consumed int
}

func (r *recordingStrategy) Run(ctx context.Context, m *multiclass.Model, policy *sampling.Policy, stream <-chan model.Instance) error {
	for inst := range stream {
		if policy.Resolve(inst.Label) > 0 {
			r.consumed++
		}
	}
	m.SetFitted()
	return nil
}

func TestWithStrategyInjection(t *testing.T) {
	rec := &recordingStrategy{}
	tr, err := New(DefaultConfig(), []string{"a", "b"}, WithStrategy(rec))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	insts := instances(7, "a", []float64{1})
	m, err := tr.Train(context.Background(), model.SliceStream(insts))
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if rec.consumed != 7 {
		t.Errorf("injected strategy consumed %d instances, want 7", rec.consumed)
	}
	if !m.Finalized() {
		t.Error("post-processing skipped for injected strategy")
	}
}

func TestLargeStrategyFewerInstancesThanBins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Large = true
	cfg.Bins = 100

	tr, err := New(cfg, []string{"a", "b"}, WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// Three examples must not produce empty partitions or stall the merge.
	trainOn(t, tr, instances(3, "a", []float64{1}))
	if !tr.Model().IsFitted() {
		t.Error("model not fitted")
	}
}

func TestMiniBatchGroupingPreservesUpdates(t *testing.T) {
	base := DefaultConfig()
	batched := base
	batched.MiniBatchSize = 5

	t1, err := New(base, []string{"a", "b"}, WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t2, err := New(batched, []string{"a", "b"}, WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	insts := append(
		instances(8, "a", []float64{1, 0}),
		instances(8, "b", []float64{0, 1})...)
	trainOn(t, t1, insts)
	trainOn(t, t2, insts)

	// Grouping changes delivery bookkeeping, not the number of updates
	// each submodel receives.
	if u1, u2 := t1.Model().SubModel("a").Updates(), t2.Model().SubModel("a").Updates(); u1 != u2 {
		t.Errorf("update counts diverge across batch sizes: %d vs %d", u1, u2)
	}
}
