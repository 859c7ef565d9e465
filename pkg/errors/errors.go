// Package errors provides the error and warning types used across the
// datapeek numeric engine. All failures reported by the engine are local and
// recoverable: they carry enough context (operation, column, stage) for a
// presentation layer to render a message, and they never indicate a corrupted
// process. Errors are built on cockroachdb/errors so that stack traces travel
// with them, and every structured type implements zerolog's ObjectMarshaler
// for structured logging.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("datapeek warning: %v\n", w)
	}
	// zerolog sink, installed lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler. Callers that
// want to silence ConvergenceWarning and friends can install a no-op here.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When present it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink. Warnings are advisory;
// the operation that raised one still returns a usable result.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ConvergenceWarning is raised when an iterative fit exhausts its iteration
// budget while the loss is still moving.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s did not converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s did not converge after %d iterations. Consider raising the iteration budget.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	Engine error kinds
//
// ===========================================================================

// DimensionError reports a matrix or vector operation on incompatible shapes.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("datapeek: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
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

// NewDimensionError creates a DimensionError and attaches a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// SingularMatrixError reports a Gauss-Jordan inversion whose best available
// pivot fell below the singularity threshold.
type SingularMatrixError struct {
	Op     string
	Column int
	Pivot  float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("datapeek: %s: singular matrix (pivot %.3g in column %d below threshold)", e.Op, e.Pivot, e.Column)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("column", e.Column).
		Float64("pivot", e.Pivot).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError creates a SingularMatrixError and attaches a stack trace.
func NewSingularMatrixError(op string, column int, pivot float64) error {
	err := &SingularMatrixError{Op: op, Column: column, Pivot: pivot}
	return errors.WithStack(err)
}

// NoTrainableRowsError reports that per-row filtering removed every row before
// a fit could start. Dropping individual unparsable rows is policy, not an
// error; only global emptiness is reported.
type NoTrainableRowsError struct {
	Op       string
	Target   string
	Excluded int
}

func (e *NoTrainableRowsError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("datapeek: %s: no trainable rows for target %q (%d rows excluded)", e.Op, e.Target, e.Excluded)
	}
	return fmt.Sprintf("datapeek: %s: no trainable rows (%d rows excluded)", e.Op, e.Excluded)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NoTrainableRowsError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("target", e.Target).
		Int("excluded", e.Excluded).
		Str("type", "NoTrainableRowsError")
}

// NewNoTrainableRowsError creates a NoTrainableRowsError and attaches a stack trace.
func NewNoTrainableRowsError(op, target string, excluded int) error {
	err := &NoTrainableRowsError{Op: op, Target: target, Excluded: excluded}
	return errors.WithStack(err)
}

// InvalidConfigError reports a configuration value that makes an operation
// impossible, e.g. a non-positive cluster count.
type InvalidConfigError struct {
	Op     string
	Param  string
	Reason string
	Value  interface{}
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("datapeek: %s: invalid configuration for %q: %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *InvalidConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidConfigError")
}

// NewInvalidConfigError creates an InvalidConfigError and attaches a stack trace.
func NewInvalidConfigError(op, param, reason string, value interface{}) error {
	err := &InvalidConfigError{Op: op, Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for reasons the
// other kinds do not cover.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("datapeek: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError and attaches a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
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

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinels
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data at all.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is the sentinel wrapped by SingularMatrixError sites
	// that do not know the failing pivot.
	ErrSingularMatrix = New("singular matrix")
)
