// Package model provides the shared contracts between the trainer's
// configuration layer and the objects it assembles: labeled instances,
// online-updatable submodels, and the multiclass classification surface.
package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// OnlineLearner is a model updated one example at a time. Updates are
// logically sequential: the caller must not interleave Update calls for the
// same learner from multiple goroutines.
type OnlineLearner interface {
	// Update applies one example with target in {-1, +1}.
	Update(x mat.Vector, target float64) error
}

// Scorer computes a raw linear score for a feature vector.
type Scorer interface {
	Score(x mat.Vector) float64
}

// Classifier is the read side of a trained multiclass model. It is safe to
// call from multiple goroutines once training has completed.
type Classifier interface {
	// Predict returns the label with the highest score.
	Predict(x mat.Vector) (string, error)

	// Scores returns the per-label raw scores.
	Scores(x mat.Vector) (map[string]float64, error)
}

// StreamingLearner consumes a labeled instance stream until the stream
// closes or the context is canceled.
type StreamingLearner interface {
	FitStream(ctx context.Context, stream <-chan Instance) error
}
