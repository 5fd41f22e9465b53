// Package errors provides the typed error taxonomy used across tablepipe.
// Every failure in the pipeline is a precondition violation (bad input data
// or pipeline misuse), so each error is a concrete, catchable struct rather
// than an opaque string. Constructors attach a stack trace via
// cockroachdb/errors, and every type implements zerolog's ObjectMarshaler
// so errors can be emitted as structured log fields.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Typed error structs
//
// ===========================================================================

// NotFittedError is returned when Predict, Transform or Score is called on
// an estimator before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("tablepipe: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when the shape of an input does not match what
// the operation expects, e.g. a feature matrix and target vector with
// different row counts.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("tablepipe: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// InvalidInputError is returned for missing or malformed input: a column
// that does not exist, a column of the wrong type, an entirely-missing
// column handed to the imputer, or empty data.
type InvalidInputError struct {
	Op     string
	Column string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("tablepipe: %s: invalid input for column %q: %s", e.Op, e.Column, e.Reason)
	}
	return fmt.Sprintf("tablepipe: %s: invalid input: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError creates an InvalidInputError with a stack trace attached.
func NewInvalidInputError(op, column, reason string) error {
	err := &InvalidInputError{Op: op, Column: column, Reason: reason}
	return errors.WithStack(err)
}

// SchemaError is returned when the column set (names and order) presented at
// transform or predict time differs from the one observed at fit time, and
// when a categorical value appears at transform time that was never seen
// during fitting.
type SchemaError struct {
	Op       string
	Expected []string
	Got      []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("tablepipe: %s: schema mismatch. Fitted on [%s], got [%s]",
		e.Op, strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("expected", e.Expected).
		Strs("got", e.Got).
		Str("type", "SchemaError")
}

// NewSchemaError creates a SchemaError with a stack trace attached.
func NewSchemaError(op string, expected, got []string) error {
	err := &SchemaError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ZeroVarianceError is returned when a computation would divide by a zero
// spread: a constant column handed to the standard scaler, or a constant
// target during R² scoring.
type ZeroVarianceError struct {
	Op     string
	Column string
}

func (e *ZeroVarianceError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("tablepipe: %s: column %q has zero variance", e.Op, e.Column)
	}
	return fmt.Sprintf("tablepipe: %s: zero variance", e.Op)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ZeroVarianceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("type", "ZeroVarianceError")
}

// NewZeroVarianceError creates a ZeroVarianceError with a stack trace attached.
func NewZeroVarianceError(op, column string) error {
	err := &ZeroVarianceError{Op: op, Column: column}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives zero rows or columns.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when the normal equations cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
