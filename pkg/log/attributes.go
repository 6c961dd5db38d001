// Standard attribute keys for trainer logging. Using these keys keeps log
// output filterable across packages.

package log

// Model and configuration context.
const (
	// ModelFamilyKey identifies the binary-model family being trained.
	// Values: "perceptron", "linear_svm", "logistic_regression", "mira".
	ModelFamilyKey = "model.family"

	// OptimizerFamilyKey identifies the optimizer family.
	// Values: "elastic_net", "adagrad", "passive_aggressive", "ftrl", "mira".
	OptimizerFamilyKey = "optimizer.family"

	// CategoryKey names a single class label.
	CategoryKey = "model.category"

	// CategoriesKey records the number of categories in the fixed set.
	CategoriesKey = "model.categories"

	// StrategyKey identifies the training strategy ("small", "large", or a
	// custom strategy name).
	StrategyKey = "trainer.strategy"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"

	// OperationKey identifies the operation: "assemble", "train", "retrain",
	// "finalize".
	OperationKey = "ml.operation"
)

// Training progress.
const (
	// ExamplesKey records the number of examples consumed so far.
	ExamplesKey = "training.examples"

	// EpochKey records the continuous epoch count
	// (examples seen / examples per epoch).
	EpochKey = "training.epoch"

	// IterationKey records the current pass over the data.
	IterationKey = "training.iteration"

	// RateKey records the current effective learning rate.
	RateKey = "training.rate"

	// PartitionsKey records the partition count of the large-scale strategy.
	PartitionsKey = "training.partitions"
)

// Sampling.
const (
	// ProbabilityKey records a per-class sampling probability.
	ProbabilityKey = "sampling.probability"

	// SampledKey records how many examples were retained after sampling.
	SampledKey = "sampling.retained"

	// DroppedKey records how many examples were dropped by sampling.
	DroppedKey = "sampling.dropped"
)

// Timing.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"
)
