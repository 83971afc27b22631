// Package datanalitic detects the supervised target column of a tabular
// dataset.
//
// Given a dataset with no declared target, the engine scores every column as
// a candidate prediction target and either selects one automatically or asks
// the user to confirm among the top candidates.
//
// # Quick Start
//
//	ds, err := ingest.ReadFile("customers.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	det, err := target.NewDetector(target.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := det.Detect(ctx, ds, "job-1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Decision.DecisionMode, res.Decision.Explanation)
//
// # Scoring
//
// Each non-identifier column receives seven components in [0, 1]:
//
//   - A: availability (1 - missing fraction)
//   - T: type suitability
//   - V: variability relative to the other numeric columns
//   - R: association with the other columns
//   - P: quick cross-validated predictability (decision tree or ridge)
//   - S: semantic boost from the column name
//   - O: operational penalty (PII names, near-unique values)
//
// The final score is the weighted sum of A..S minus the weighted O, clipped to
// [0, 1]. The best candidate is selected automatically when its score reaches
// confirm_score and it leads the runner-up by at least gap_threshold.
//
// # Packages
//
//   - dataset: typed columns, profiles, summaries and sampling
//   - target: configuration, scorers, probe, decision policy and Detector
//   - sklearn/tree, sklearn/linear_model, sklearn/pipeline: probe models
//   - sklearn/model_selection: KFold, StratifiedKFold, cross-validation
//   - sklearn/feature_selection: correlation ranking and mutual information
//   - preprocessing: StandardScaler, SimpleImputer
//   - metrics: accuracy, balanced accuracy, R²
//   - config: YAML / environment configuration
//   - ingest: CSV loading with type inference
//   - store: file and SQLite persistence of results
//   - report: candidate charts
//   - cmd/targetdetect: command line interface
package datanalitic
