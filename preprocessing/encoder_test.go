package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tablepipe/dataset"
	pkgerrors "github.com/YuminosukeSato/tablepipe/pkg/errors"
)

func TestOneHotEncoder(t *testing.T) {
	t.Run("expands categories into indicator columns", func(t *testing.T) {
		tbl, err := dataset.New(
			dataset.NumericColumn("area", []float64{50, 80, 120}),
			dataset.CategoricalColumn("neighborhood", []string{"south", "north", "south"}),
			dataset.NumericColumn("price", []float64{1, 2, 3}),
		)
		require.NoError(t, err)

		enc := NewOneHotEncoder("neighborhood")
		out, err := enc.FitTransform(tbl)
		require.NoError(t, err)

		assert.Equal(t, []string{"north", "south"}, enc.Categories, "sorted for a stable schema")
		assert.Equal(t,
			[]string{"area", "neighborhood=north", "neighborhood=south", "price"},
			out.Names(),
			"indicators take the original column's position")

		north, err := out.Column("neighborhood=north")
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 0}, north.Floats)

		south, err := out.Column("neighborhood=south")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0, 1}, south.Floats)
	})

	t.Run("drop-first omits the reference category", func(t *testing.T) {
		tbl, err := dataset.New(
			dataset.CategoricalColumn("neighborhood", []string{"south", "north", "east", "south"}),
		)
		require.NoError(t, err)

		enc := NewOneHotEncoder("neighborhood")
		enc.DropFirst = true
		out, err := enc.FitTransform(tbl)
		require.NoError(t, err)

		assert.Equal(t, []string{"neighborhood=north", "neighborhood=south"}, out.Names())

		// The reference category rows are all-zero across the indicators.
		north, err := out.Column("neighborhood=north")
		require.NoError(t, err)
		south, err := out.Column("neighborhood=south")
		require.NoError(t, err)
		assert.Equal(t, 0.0, north.Floats[2])
		assert.Equal(t, 0.0, south.Floats[2])
	})

	t.Run("unseen category at transform time is a SchemaError", func(t *testing.T) {
		train, err := dataset.New(
			dataset.CategoricalColumn("neighborhood", []string{"north", "south"}),
		)
		require.NoError(t, err)
		test, err := dataset.New(
			dataset.CategoricalColumn("neighborhood", []string{"north", "west"}),
		)
		require.NoError(t, err)

		enc := NewOneHotEncoder("neighborhood")
		require.NoError(t, enc.Fit(train))

		_, err = enc.Transform(test)
		var se *pkgerrors.SchemaError
		require.True(t, pkgerrors.As(err, &se))
		assert.Equal(t, []string{"west"}, se.Got)
	})

	t.Run("missing cells become all-zero indicators", func(t *testing.T) {
		tbl, err := dataset.New(
			dataset.CategoricalColumn("neighborhood", []string{"north", "", "south"}),
		)
		require.NoError(t, err)

		enc := NewOneHotEncoder("neighborhood")
		out, err := enc.FitTransform(tbl)
		require.NoError(t, err)

		north, err := out.Column("neighborhood=north")
		require.NoError(t, err)
		south, err := out.Column("neighborhood=south")
		require.NoError(t, err)
		assert.Equal(t, 0.0, north.Floats[1])
		assert.Equal(t, 0.0, south.Floats[1])
	})

	t.Run("numeric column is rejected", func(t *testing.T) {
		tbl, err := dataset.New(dataset.NumericColumn("n", []float64{1}))
		require.NoError(t, err)

		enc := NewOneHotEncoder("n")
		assert.Error(t, enc.Fit(tbl))
	})

	t.Run("transform before fit is a NotFittedError", func(t *testing.T) {
		tbl, err := dataset.New(dataset.CategoricalColumn("c", []string{"x"}))
		require.NoError(t, err)

		enc := NewOneHotEncoder("c")
		_, err = enc.Transform(tbl)
		var nfe *pkgerrors.NotFittedError
		require.True(t, pkgerrors.As(err, &nfe))
	})
}
