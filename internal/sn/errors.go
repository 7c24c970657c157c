package sn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrShapeMismatch = errors.New("tensor shape mismatch")
	ErrDiverged      = errors.New("training loss is not finite")
	ErrNotTrained    = errors.New("solver has not been trained")
)

// ConfigError reports a rejected configuration field. It unwraps to
// ErrInvalidConfig.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ShapeError reports a tensor whose dimensions do not match the grid or the
// quadrature set. It unwraps to ErrShapeMismatch.
type ShapeError struct {
	Name string
	Want []int
	Got  []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %s: want %v, got %v", ErrShapeMismatch, e.Name, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
