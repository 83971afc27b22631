// Package log defines standard attribute keys for detection operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in DatAnalitic. Using these standard keys enables better
// log analysis and debugging of target detection runs.
//
// The attributes are organized into categories:
//   - Job and Operation Context
//   - Data Shape and Characteristics
//   - Detection Results
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "detect.column",
// "data.samples") to enable structured log analysis and filtering.

package log

// Job and Operation Context
// These attributes identify the job, the estimator and the operation being performed.
const (
	// JobIDKey carries the opaque job identifier supplied by the caller.
	JobIDKey = "detect.job_id"

	// ModelNameKey identifies the type of estimator used inside the probe.
	// Examples: "DecisionTreeClassifier", "Ridge", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "detect"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "target", "ingest", "store"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of a detection run.
	// Examples: "filter", "prepass", "scoring", "decision"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of columns in the dataset.
	FeaturesKey = "data.features"

	// DataTypeKey specifies the kind of a column.
	// Examples: "numeric", "categorical", "datetime"
	DataTypeKey = "data.type"

	// DatasetHashKey carries the content hash of the dataset summary.
	DatasetHashKey = "data.hash"
)

// Detection Results
// These attributes describe per-column scores and the final decision.
const (
	// ColumnKey names the column being scored.
	ColumnKey = "detect.column"

	// ScoreKey records a composite score in [0,1].
	ScoreKey = "detect.score"

	// ComponentsKey records the component values (A,T,V,R,P,S,O) of a candidate.
	ComponentsKey = "detect.components"

	// TaskKey records the probe task kind ("none", "classification", "regression").
	TaskKey = "detect.task"

	// NoteKey records a probe note such as "insufficient_rows".
	NoteKey = "detect.note"

	// DecisionModeKey records "auto" or "requires_confirmation".
	DecisionModeKey = "detect.decision_mode"

	// SelectedTargetKey records the automatically selected column.
	SelectedTargetKey = "detect.selected_target"

	// CandidatesKey records the number of ranked candidates.
	CandidatesKey = "detect.candidates"

	// FilteredKey records the number of columns excluded as identifiers.
	FilteredKey = "detect.filtered"

	// GapKey records the gap between the top two candidates.
	GapKey = "detect.gap"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records balanced accuracy for classification probes.
	AccuracyKey = "metrics.accuracy"

	// R2ScoreKey records R² coefficient of determination for regression probes.
	R2ScoreKey = "metrics.r2_score"

	// FoldKey records the cross-validation fold index.
	FoldKey = "cv.fold"

	// WorkersKey records the number of column workers.
	WorkersKey = "infra.workers"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ConfigError", "ColumnComputationError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// ConfigFileKey records the configuration file in use.
	ConfigFileKey = "config.file"
)

// Standard attribute value constants for common operations.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationDetect    = "detect"

	PhaseFilter   = "filter"
	PhasePrepass  = "prepass"
	PhaseScoring  = "scoring"
	PhaseDecision = "decision"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidConfig     = "INVALID_CONFIG"
	ErrorColumnComputation = "COLUMN_COMPUTATION"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
