// Standard attribute keys for pipeline telemetry. Using these keys for
// every log call keeps the JSON stream filterable by stage, shape and
// timing without ad-hoc key spellings drifting across packages.

package log

// Pipeline and model context.
const (
	// StageKey names the pipeline stage emitting the record.
	// Examples: "load", "dedup", "split", "preprocess", "train", "sweep"
	StageKey = "pipeline.stage"

	// ModelNameKey identifies the estimator type.
	// Examples: "LinearRegression", "RandomForestRegressor"
	ModelNameKey = "model.name"

	// OperationKey names the estimator operation being performed.
	// Standard values: "fit", "predict", "transform", "score"
	OperationKey = "ml.operation"

	// SeedKey records the random seed governing a deterministic operation.
	SeedKey = "pipeline.seed"
)

// Data shape.
const (
	// RowsKey is the number of rows in the Table or Frame being processed.
	RowsKey = "data.rows"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// ColumnKey names the single column a transform is operating on.
	ColumnKey = "data.column"
)

// Cross-validation and timing.
const (
	// FoldKey is the zero-based index of the active cross-validation fold.
	FoldKey = "cv.fold"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
