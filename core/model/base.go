package model

// EstimatorState tracks whether a model has been through training.
type EstimatorState int

const (
	// NotFitted is the state before any training pass has run.
	NotFitted EstimatorState = iota
	// Fitted is the state after at least one training pass.
	Fitted
)

// BaseEstimator carries the fitted/not-fitted state shared by all models.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to the untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
