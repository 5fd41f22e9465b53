// Package pipeline orchestrates the end-to-end tabular regression run:
// CSV loading, cleaning, train-fitted preprocessing, model training, the
// cross-validated hyperparameter sweep, and reporting.
package pipeline

import (
	"encoding/json"
	"os"

	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// Config holds every knob of a pipeline run. All randomness in the run is
// derived from RandomSeed, so a fixed Config and input file reproduce the
// same report.
type Config struct {
	// DataPath is the input CSV, first row a header.
	DataPath string `json:"data_path"`

	// TargetColumn is the numeric column to predict.
	TargetColumn string `json:"target_column"`

	// DropColumns are removed right after deduplication (identifiers and
	// other non-predictive columns).
	DropColumns []string `json:"drop_columns"`

	// CategoricalColumn is one-hot encoded with train-fitted categories.
	// Empty skips the stage.
	CategoricalColumn string `json:"categorical_column"`

	// MissingValueColumn is mean-imputed with the training mean. Empty
	// skips the stage.
	MissingValueColumn string `json:"missing_value_column"`

	// OutlierColumn and OutlierThreshold drop rows whose value exceeds the
	// threshold. The threshold is configuration, not a learned statistic,
	// so the filter applies to both partitions. Empty column skips it.
	OutlierColumn    string  `json:"outlier_column"`
	OutlierThreshold float64 `json:"outlier_threshold"`

	// ScaleColumns are standardized with train-fitted mean and std.
	ScaleColumns []string `json:"scale_columns"`

	// IndicatorSource and IndicatorColumn derive a 0/1 column that is 1
	// where the source is nonzero. Empty source skips the stage.
	IndicatorSource string `json:"indicator_source"`
	IndicatorColumn string `json:"indicator_column"`

	// HoldoutFraction of rows (rounded to nearest) form the test partition.
	HoldoutFraction float64 `json:"holdout_fraction"`

	// RandomSeed drives the split, the fold shuffle and the forest
	// bootstraps.
	RandomSeed uint64 `json:"random_seed"`

	// TreeGrid and DepthGrid define the hyperparameter sweep; FoldCount is
	// the number of cross-validation folds.
	TreeGrid  []int `json:"tree_grid"`
	DepthGrid []int `json:"depth_grid"`
	FoldCount int   `json:"fold_count"`

	// PlotPath, when set, is where the sweep curve PNG is written.
	PlotPath string `json:"plot_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the housing-dataset defaults.
func DefaultConfig() Config {
	return Config{
		DataPath:           "testdata/housing.csv",
		TargetColumn:       "price",
		DropColumns:        []string{"id"},
		CategoricalColumn:  "neighborhood",
		MissingValueColumn: "area",
		OutlierColumn:      "price",
		OutlierThreshold:   1_000_000,
		ScaleColumns:       []string{"area", "age"},
		IndicatorSource:    "garage_spaces",
		IndicatorColumn:    "has_garage",
		HoldoutFraction:    0.2,
		RandomSeed:         42,
		TreeGrid:           []int{10, 50, 100},
		DepthGrid:          []int{3, 5, 7},
		FoldCount:          5,
		LogLevel:           "info",
	}
}

// LoadConfig reads a JSON config file over the defaults, so a partial file
// only overrides the fields it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "pipeline: read config %s", path)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "pipeline: parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs that cannot produce a meaningful run.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return errors.NewInvalidInputError("Config.Validate", "data_path", "must not be empty")
	}
	if c.TargetColumn == "" {
		return errors.NewInvalidInputError("Config.Validate", "target_column", "must not be empty")
	}
	if c.HoldoutFraction <= 0 || c.HoldoutFraction >= 1 {
		return errors.NewInvalidInputError("Config.Validate", "holdout_fraction", "must be in (0, 1)")
	}
	if len(c.TreeGrid) == 0 {
		return errors.NewInvalidInputError("Config.Validate", "tree_grid", "must not be empty")
	}
	if len(c.DepthGrid) == 0 {
		return errors.NewInvalidInputError("Config.Validate", "depth_grid", "must not be empty")
	}
	if c.FoldCount < 2 {
		return errors.NewInvalidInputError("Config.Validate", "fold_count", "need at least 2 folds")
	}
	if c.IndicatorSource != "" && c.IndicatorColumn == "" {
		return errors.NewInvalidInputError("Config.Validate", "indicator_column", "must be set when indicator_source is set")
	}
	return nil
}
