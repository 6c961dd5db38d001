// Package errors provides the error handling and warning system used across
// ovatrain. Fatal configuration problems are reported as structured error
// types carrying a stack trace; non-fatal conditions (such as a sampling
// override naming a label outside the configured category set) go through
// the warning path instead of aborting trainer construction.
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
		log.Printf("ovatrain-warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid a circular import with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop all warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a non-fatal warning through the configured sink.
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

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// UnknownCategoryWarning is raised when a sampling override names a label
// that is not part of the fixed category set. The override is still applied;
// the sampling map is independent of category filtering.
type UnknownCategoryWarning struct {
	Label  string
	Source string // "inline" or the override file path
	Prob   float64
}

func (w *UnknownCategoryWarning) Error() string {
	return fmt.Sprintf("sampling override from %s names unknown category %q (prob=%g); accepted, but it will never match a configured class",
		w.Source, w.Label, w.Prob)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *UnknownCategoryWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("label", w.Label).
		Str("source", w.Source).
		Float64("probability", w.Prob).
		Str("type", "UnknownCategoryWarning")
}

// NewUnknownCategoryWarning creates a new UnknownCategoryWarning.
func NewUnknownCategoryWarning(label, source string, prob float64) *UnknownCategoryWarning {
	return &UnknownCategoryWarning{Label: label, Source: source, Prob: prob}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ConfigurationError reports an invalid hyperparameter value or an
// incompatible cross-parameter combination. It is always raised at trainer
// construction time, before any data is touched.
type ConfigurationError struct {
	Option string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ovatrain: invalid configuration for %q: %s (got: %v)", e.Option, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("option", e.Option).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(option, reason string, value interface{}) error {
	err := &ConfigurationError{Option: option, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ParseError reports a malformed record while resolving options or sampling
// overrides: a missing colon in a `label:probability` pair, a non-numeric
// probability, or an option value that fails strconv.
type ParseError struct {
	Source string // "options", "inline", or the override file path
	Record string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ovatrain: cannot parse %q from %s: %s", e.Record, e.Source, e.Reason)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Str("record", e.Record).
		Str("reason", e.Reason).
		Str("type", "ParseError")
}

// NewParseError creates a ParseError with a stack trace.
func NewParseError(source, record, reason string) error {
	err := &ParseError{Source: source, Record: record, Reason: reason}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict is called on a multiclass model
// that has not been through a training pass yet.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("ovatrain: %s: this model is not fitted yet. Run the trainer before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a feature-vector length that disagrees with the
// dimension the model was sized to on its first update.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("ovatrain: %s: feature dimension mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ValidationError reports a single parameter value that fails validation,
// e.g. a sampling probability outside [0,1].
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ovatrain: validation failed for parameter %q: %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// NumericalInstabilityError reports NaN or Inf appearing in weights or
// learning rates during an incremental update.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Example   int64 // examples consumed when the instability appeared
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("ovatrain: numerical instability detected in %s at example %d. Values: [%s]",
		e.Operation, e.Example, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace.
func NewNumericalInstabilityError(operation string, values []float64, example int64) error {
	err := &NumericalInstabilityError{Operation: operation, Values: values, Example: example}
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
//	Common error variables
//
// ===========================================================================

var (
	// ErrNoCategories is returned when a trainer is constructed with an
	// empty category set.
	ErrNoCategories = New("empty category set")

	// ErrEmptyStream is returned when a training pass consumes zero
	// instances.
	ErrEmptyStream = New("empty instance stream")
)
