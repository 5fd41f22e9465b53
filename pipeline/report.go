package pipeline

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/tablepipe/model_selection"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// Print writes the human-readable run report.
func Print(w io.Writer, result *Result) error {
	if result == nil {
		return errors.NewInvalidInputError("pipeline.Print", "", "nil result")
	}

	fmt.Fprintf(w, "rows: train=%d test=%d\n\n", result.TrainRows, result.TestRows)

	fmt.Fprintln(w, "linear regression")
	for i, name := range result.Linear.FeatureNames {
		fmt.Fprintf(w, "  %-24s %12.6f\n", name, result.Linear.Weights[i])
	}
	fmt.Fprintf(w, "  %-24s %12.6f\n", "(intercept)", result.Linear.Intercept)
	fmt.Fprintf(w, "  train R2: %.4f\n", result.Linear.TrainR2)
	fmt.Fprintf(w, "  test  R2: %.4f\n\n", result.Linear.TestR2)

	fmt.Fprintln(w, "random forest sweep")
	fmt.Fprintf(w, "  %6s %6s %10s %14s\n", "trees", "depth", "mean R2", "RMSE")
	for _, res := range result.Sweep {
		fmt.Fprintf(w, "  %6d %6d %10.4f %14.4f\n", res.Trees, res.Depth, res.MeanR2, res.RMSE)
	}
	fmt.Fprintf(w, "  best: trees=%d depth=%d (mean R2 %.4f)\n", result.Best.Trees, result.Best.Depth, result.Best.MeanR2)
	fmt.Fprintf(w, "  best forest test R2: %.4f\n", result.ForestTestR2)
	return nil
}

// SavePlot renders the sweep as a PNG, one line per depth with the tree
// count on the x axis and the cross-validated mean R² on the y axis.
func SavePlot(path string, sweep []model_selection.SweepResult) error {
	if len(sweep) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "pipeline.SavePlot")
	}

	byDepth := map[int]plotter.XYs{}
	for _, res := range sweep {
		byDepth[res.Depth] = append(byDepth[res.Depth], plotter.XY{
			X: float64(res.Trees),
			Y: res.MeanR2,
		})
	}
	depths := make([]int, 0, len(byDepth))
	for depth := range byDepth {
		depths = append(depths, depth)
	}
	sort.Ints(depths)

	p := plot.New()
	p.Title.Text = "cross-validated mean R2 by forest size"
	p.X.Label.Text = "trees"
	p.Y.Label.Text = "mean R2"

	args := make([]interface{}, 0, 2*len(depths))
	for _, depth := range depths {
		args = append(args, fmt.Sprintf("depth=%d", depth), byDepth[depth])
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return errors.Wrap(err, "pipeline.SavePlot")
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "pipeline: save plot %s", path)
	}
	return nil
}
