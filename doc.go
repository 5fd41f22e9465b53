// Package tablepipe implements a batch supervised-learning pipeline for
// fixed-schema tabular data: load a delimited file into a column-oriented
// Table, clean and encode it with train-fitted transforms, split it into
// training and held-out partitions, fit a linear and an ensemble regressor,
// and sweep ensemble hyperparameters with k-fold cross-validation.
//
// The central correctness rule of the whole pipeline is fit-on-train /
// apply-to-test discipline: every learned statistic (the imputation mean,
// the scaler mean and standard deviation, the one-hot category set) is
// computed once from the training partition and reused verbatim on the
// held-out partition. Transforms never mutate their input Table; each
// stage returns a fresh Table so train/test state cannot alias.
//
// # Quick Start
//
//	cfg := pipeline.DefaultConfig()
//	cfg.DataPath = "testdata/housing.csv"
//
//	result, err := pipeline.Run(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline.Print(os.Stdout, result)
//
// # Packages
//
//   - dataset: column-oriented Table, Frame (feature matrix + schema), CSV loading
//   - preprocessing: dedup, column drop, one-hot encoding, mean imputation,
//     missing-row drop, outlier filtering, z-score scaling, derived indicators
//   - linear: least-squares linear regression (gonum)
//   - ensemble: random-forest regressor over CART regression trees
//   - model_selection: deterministic train/test split, k-fold CV, grid sweep
//   - metrics: MSE, RMSE, MAE, R²
//   - pipeline: configuration, orchestration, reporting
//   - pkg/errors, pkg/log, core/model, core/parallel: shared infrastructure
package tablepipe
