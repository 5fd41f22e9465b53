package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tablepipe/model_selection"
	pkgerrors "github.com/YuminosukeSato/tablepipe/pkg/errors"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DataPath = "testdata/housing.csv"
	cfg.TreeGrid = []int{5, 10}
	cfg.DepthGrid = []int{2, 3}
	cfg.FoldCount = 3
	return cfg
}

func TestRun(t *testing.T) {
	t.Run("end to end on the housing fixture", func(t *testing.T) {
		result, err := Run(testConfig())
		require.NoError(t, err)

		// 41 raw rows, one exact duplicate, 8 held out, outliers removed
		// from whichever partition they landed in.
		assert.Equal(t, 40, result.TrainRows+result.TestRows+2)
		assert.Greater(t, result.TestRows, 0)

		assert.Len(t, result.Linear.Weights, len(result.Linear.FeatureNames))
		assert.Contains(t, result.Linear.FeatureNames, "area")
		assert.Contains(t, result.Linear.FeatureNames, "has_garage")
		assert.NotContains(t, result.Linear.FeatureNames, "neighborhood",
			"categorical column must be encoded away")
		assert.NotContains(t, result.Linear.FeatureNames, "id",
			"identifier must be dropped")

		assert.LessOrEqual(t, result.Linear.TrainR2, 1.0)
		assert.LessOrEqual(t, result.Linear.TestR2, 1.0)
		assert.LessOrEqual(t, result.ForestTestR2, 1.0)

		assert.Len(t, result.Sweep, 4)
		best, err := model_selection.Best(result.Sweep)
		require.NoError(t, err)
		assert.Equal(t, best, result.Best)
	})

	t.Run("same config reproduces the same result", func(t *testing.T) {
		first, err := Run(testConfig())
		require.NoError(t, err)
		second, err := Run(testConfig())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("outlier rows are filtered", func(t *testing.T) {
		result, err := Run(testConfig())
		require.NoError(t, err)

		// The fixture has two prices above the one-million threshold.
		assert.Equal(t, 38, result.TrainRows+result.TestRows)
	})

	t.Run("writes the sweep plot when configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.PlotPath = filepath.Join(t.TempDir(), "sweep.png")

		_, err := Run(cfg)
		require.NoError(t, err)

		info, err := os.Stat(cfg.PlotPath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("missing data file is an error", func(t *testing.T) {
		cfg := testConfig()
		cfg.DataPath = filepath.Join(t.TempDir(), "absent.csv")
		_, err := Run(cfg)
		assert.Error(t, err)
	})

	t.Run("unknown target column is an error", func(t *testing.T) {
		cfg := testConfig()
		cfg.TargetColumn = "rent"
		_, err := Run(cfg)
		assert.Error(t, err)
	})

	t.Run("invalid config is rejected before any work", func(t *testing.T) {
		cfg := testConfig()
		cfg.FoldCount = 0
		_, err := Run(cfg)
		var iie *pkgerrors.InvalidInputError
		require.True(t, pkgerrors.As(err, &iie))
	})
}
