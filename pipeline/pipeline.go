package pipeline

import (
	"log/slog"
	"time"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/ensemble"
	"github.com/YuminosukeSato/tablepipe/linear"
	"github.com/YuminosukeSato/tablepipe/model_selection"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
	"github.com/YuminosukeSato/tablepipe/pkg/log"
	"github.com/YuminosukeSato/tablepipe/preprocessing"
)

// LinearSummary captures the fitted linear model for the report.
type LinearSummary struct {
	FeatureNames []string
	Weights      []float64
	Intercept    float64
	TrainR2      float64
	TestR2       float64
}

// Result is the full outcome of a pipeline run.
type Result struct {
	TrainRows int
	TestRows  int

	Linear LinearSummary

	Sweep        []model_selection.SweepResult
	Best         model_selection.SweepResult
	ForestTestR2 float64
}

// transforms holds the preprocessors fitted on the training partition. The
// test partition goes through the same chain with Transform only, so no
// statistic ever leaks from held-out rows.
type transforms struct {
	encoder *preprocessing.OneHotEncoder
	imputer *preprocessing.MeanImputer
	scaler  *preprocessing.StandardScaler
}

// Run executes the whole pipeline described by cfg.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	tbl, err := dataset.ReadCSV(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	slog.Info("dataset loaded",
		slog.String(log.StageKey, "load"),
		slog.Int(log.RowsKey, tbl.NumRows()),
		slog.Int(log.FeaturesKey, tbl.NumCols()))

	before := tbl.NumRows()
	tbl = preprocessing.Dedup(tbl)
	slog.Info("duplicates removed",
		slog.String(log.StageKey, "dedup"),
		slog.Int(log.RowsKey, tbl.NumRows()),
		slog.Int("data.rows_dropped", before-tbl.NumRows()))

	for _, col := range cfg.DropColumns {
		if tbl, err = tbl.Drop(col); err != nil {
			return nil, err
		}
	}

	train, test, err := model_selection.TrainTestSplit(tbl, cfg.HoldoutFraction, cfg.RandomSeed)
	if err != nil {
		return nil, err
	}
	slog.Info("train/test split",
		slog.String(log.StageKey, "split"),
		slog.Uint64(log.SeedKey, cfg.RandomSeed),
		slog.Int("data.train_rows", train.NumRows()),
		slog.Int("data.test_rows", test.NumRows()))

	tr, train, err := fitTransforms(train, cfg)
	if err != nil {
		return nil, err
	}
	test, err = tr.apply(test, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("preprocessing applied",
		slog.String(log.StageKey, "preprocess"),
		slog.Int("data.train_rows", train.NumRows()),
		slog.Int("data.test_rows", test.NumRows()))

	XTrain, yTrain, err := train.Features(cfg.TargetColumn)
	if err != nil {
		return nil, err
	}
	XTest, yTest, err := test.Features(cfg.TargetColumn)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TrainRows: train.NumRows(),
		TestRows:  test.NumRows(),
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	trainR2, err := lr.Score(XTrain, yTrain)
	if err != nil {
		return nil, err
	}
	testR2, err := lr.Score(XTest, yTest)
	if err != nil {
		return nil, err
	}
	result.Linear = LinearSummary{
		FeatureNames: lr.FeatureNames(),
		Weights:      lr.Weights(),
		Intercept:    lr.Intercept(),
		TrainR2:      trainR2,
		TestR2:       testR2,
	}
	slog.Info("linear model fitted",
		slog.String(log.StageKey, "train"),
		slog.String(log.ModelNameKey, "LinearRegression"),
		slog.Float64("score.train_r2", trainR2),
		slog.Float64("score.test_r2", testR2))

	gs := &model_selection.GridSearch{
		Factory: func(trees, depth int) model.Regressor {
			return ensemble.NewRandomForestRegressor(trees, depth, cfg.RandomSeed)
		},
		TreeGrid:  cfg.TreeGrid,
		DepthGrid: cfg.DepthGrid,
		Folds:     cfg.FoldCount,
		Seed:      cfg.RandomSeed,
	}
	result.Sweep, err = gs.Run(XTrain, yTrain)
	if err != nil {
		return nil, err
	}
	result.Best, err = model_selection.Best(result.Sweep)
	if err != nil {
		return nil, err
	}
	slog.Info("hyperparameter sweep finished",
		slog.String(log.StageKey, "sweep"),
		slog.String(log.ModelNameKey, "RandomForestRegressor"),
		slog.Int("sweep.best_trees", result.Best.Trees),
		slog.Int("sweep.best_depth", result.Best.Depth),
		slog.Float64("sweep.best_mean_r2", result.Best.MeanR2))

	forest := ensemble.NewRandomForestRegressor(result.Best.Trees, result.Best.Depth, cfg.RandomSeed)
	if err := forest.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	result.ForestTestR2, err = forest.Score(XTest, yTest)
	if err != nil {
		return nil, err
	}

	if cfg.PlotPath != "" {
		if err := SavePlot(cfg.PlotPath, result.Sweep); err != nil {
			return nil, err
		}
	}

	slog.Info("pipeline finished",
		slog.String(log.StageKey, "report"),
		slog.Int64(log.DurationMsKey, time.Since(start).Milliseconds()))
	return result, nil
}

// fitTransforms runs the training partition through the preprocessing chain,
// fitting each stateful transform as it goes, and returns both the fitted
// transforms and the transformed partition.
func fitTransforms(train *dataset.Table, cfg Config) (*transforms, *dataset.Table, error) {
	tr := &transforms{}
	var err error

	if cfg.CategoricalColumn != "" {
		tr.encoder = preprocessing.NewOneHotEncoder(cfg.CategoricalColumn)
		// The linear model carries an intercept, so the first category
		// becomes the reference level.
		tr.encoder.DropFirst = true
		if train, err = tr.encoder.FitTransform(train); err != nil {
			return nil, nil, err
		}
	}
	if cfg.MissingValueColumn != "" {
		tr.imputer = preprocessing.NewMeanImputer(cfg.MissingValueColumn)
		if train, err = tr.imputer.FitTransform(train); err != nil {
			return nil, nil, err
		}
	}
	train = preprocessing.DropMissingRows(train)
	if cfg.OutlierColumn != "" {
		if train, err = preprocessing.FilterOutliers(train, cfg.OutlierColumn, cfg.OutlierThreshold); err != nil {
			return nil, nil, err
		}
	}
	if len(cfg.ScaleColumns) > 0 {
		tr.scaler = preprocessing.NewStandardScaler(cfg.ScaleColumns...)
		if train, err = tr.scaler.FitTransform(train); err != nil {
			return nil, nil, err
		}
	}
	if cfg.IndicatorSource != "" {
		if train, err = preprocessing.NonzeroIndicator(train, cfg.IndicatorSource, cfg.IndicatorColumn); err != nil {
			return nil, nil, err
		}
	}
	return tr, train, nil
}

// apply runs a partition through the already-fitted chain in the same order
// the training partition went through it.
func (tr *transforms) apply(t *dataset.Table, cfg Config) (*dataset.Table, error) {
	var err error

	if tr.encoder != nil {
		if t, err = tr.encoder.Transform(t); err != nil {
			return nil, err
		}
	}
	if tr.imputer != nil {
		if t, err = tr.imputer.Transform(t); err != nil {
			return nil, err
		}
	}
	t = preprocessing.DropMissingRows(t)
	if cfg.OutlierColumn != "" {
		if t, err = preprocessing.FilterOutliers(t, cfg.OutlierColumn, cfg.OutlierThreshold); err != nil {
			return nil, err
		}
	}
	if tr.scaler != nil {
		if t, err = tr.scaler.Transform(t); err != nil {
			return nil, err
		}
	}
	if cfg.IndicatorSource != "" {
		if t, err = preprocessing.NonzeroIndicator(t, cfg.IndicatorSource, cfg.IndicatorColumn); err != nil {
			return nil, err
		}
	}
	if t.NumRows() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "pipeline: test partition is empty after preprocessing")
	}
	return t, nil
}
