package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// Frame is a dense numeric feature matrix with an ordered column schema.
// Estimators record the schema at fit time and reject Frames whose names
// or order differ at predict time.
type Frame struct {
	names []string
	data  *mat.Dense
}

// NewFrame builds a Frame, validating that the matrix has one column per
// name.
func NewFrame(names []string, data *mat.Dense) (*Frame, error) {
	_, c := data.Dims()
	if c != len(names) {
		return nil, errors.NewDimensionError("dataset.NewFrame", len(names), c, 1)
	}
	out := make([]string, len(names))
	copy(out, names)
	return &Frame{names: out, data: data}, nil
}

// Dims returns the row and column counts.
func (f *Frame) Dims() (r, c int) {
	return f.data.Dims()
}

// Names returns a copy of the ordered feature names.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// At returns the value at (i, j).
func (f *Frame) At(i, j int) float64 {
	return f.data.At(i, j)
}

// Matrix exposes the underlying dense matrix for gonum operations. Callers
// must not modify it.
func (f *Frame) Matrix() *mat.Dense {
	return f.data
}

// Rows returns a new Frame containing the given rows, in the given order.
func (f *Frame) Rows(indices []int) *Frame {
	_, c := f.data.Dims()
	out := mat.NewDense(len(indices), c, nil)
	for i, idx := range indices {
		for j := 0; j < c; j++ {
			out.Set(i, j, f.data.At(idx, j))
		}
	}
	return &Frame{names: f.Names(), data: out}
}

// SameSchema reports whether names match the Frame's schema exactly,
// including order.
func (f *Frame) SameSchema(names []string) bool {
	if len(names) != len(f.names) {
		return false
	}
	for i, n := range f.names {
		if names[i] != n {
			return false
		}
	}
	return true
}
