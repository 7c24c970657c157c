// Copyright 2025 the Two-group-transport authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sn

import (
	"io"

	isn "github.com/ravi9216/Two-group-transport/internal/sn"
)

// Config collects every recognised option of the transport solver. Zero
// fields are replaced by defaults in New.
type Config = isn.Config

// Solver trains a physics-informed flux approximator for the two-group,
// slab-geometry discrete-ordinates transport equation and answers scalar
// flux queries afterwards.
type Solver = isn.Solver

// Option configures a Solver beyond the numeric Config.
type Option = isn.Option

// Snapshot is one logged training state: iteration, loss and both groups'
// angular-moment vectors.
type Snapshot = isn.Snapshot

// Sink receives periodic training snapshots.
type Sink = isn.Sink

// ConfigError reports a rejected configuration field.
type ConfigError = isn.ConfigError

// ShapeError reports a tensor whose dimensions do not match the grid or the
// quadrature set.
type ShapeError = isn.ShapeError

// Common errors.
var (
	ErrInvalidConfig = isn.ErrInvalidConfig
	ErrShapeMismatch = isn.ErrShapeMismatch
	ErrDiverged      = isn.ErrDiverged
	ErrNotTrained    = isn.ErrNotTrained
)

// New builds a solver for the configured slab problem. All configuration
// errors surface here, never during training.
//
// Example:
//
//	solver, err := sn.New(sn.Config{Quadrature: 8, Points: 50, Length: 100})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	history, err := solver.Train(100, 20000)
func New(cfg Config, opts ...Option) (*Solver, error) {
	return isn.New(cfg, opts...)
}

// WithSink replaces the default file-backed training log with s.
//
// Example:
//
//	var buf bytes.Buffer
//	solver, err := sn.New(cfg, sn.WithSink(sn.NewWriterSink(&buf)))
func WithSink(s Sink) Option {
	return isn.WithSink(s)
}

// NewWriterSink returns a Sink that writes the plain-text training log to w.
func NewWriterSink(w io.Writer) Sink {
	return isn.NewWriterSink(w)
}
