// Package sn trains a physics-informed neural network against the two-group,
// slab-geometry discrete-ordinates transport equation.
//
// The package wires the angular quadrature, the spatial grid and the material
// fields into a gorgonia expression graph whose single scalar output is the
// transport residual plus weak vacuum boundary penalties; Adam minimises that
// scalar with respect to the flux approximator's weights.
package sn

import (
	"fmt"

	"github.com/ravi9216/Two-group-transport/internal/mesh"
	"github.com/ravi9216/Two-group-transport/internal/quadrature"
)

// Solver ties the quadrature set, grid and material fields to the flux
// approximator and drives training and prediction.
//
// A Solver is not safe for concurrent use: training is single-threaded and
// the optimizer is the only mutator of the approximator's parameters.
type Solver struct {
	cfg  Config
	quad *quadrature.Set
	grid *mesh.Grid
	mat  *mesh.Fields

	lg      *lossGraph // built by Train
	sink    Sink       // nil means a file sink at cfg.LogPath per run
	trained bool
}

// Option configures a Solver beyond the numeric Config.
type Option func(*Solver)

// WithSink replaces the default file-backed training log with s. The caller
// keeps ownership of any resources behind s.
func WithSink(s Sink) Option {
	return func(sv *Solver) { sv.sink = s }
}

// New validates cfg (zero fields replaced by defaults first) and prepares
// the fixed problem data: quadrature nodes, grid coordinates and material
// fields. All configuration errors surface here, never during training.
func New(cfg Config, opts ...Option) (*Solver, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	qs, err := quadrature.NewLegendre(cfg.Quadrature)
	if err != nil {
		return nil, &ConfigError{Field: "Quadrature", Reason: err.Error()}
	}
	grid, err := mesh.NewGrid(cfg.Points, cfg.Length)
	if err != nil {
		return nil, &ConfigError{Field: "Points", Reason: err.Error()}
	}
	mat := mesh.Generate(cfg.Points, mesh.MaterialSpec{
		SigmaT:         cfg.SigmaT,
		SigmaS:         cfg.SigmaS,
		Source:         cfg.Source,
		ActiveFraction: cfg.ActiveFraction,
	})

	s := &Solver{cfg: cfg, quad: qs, grid: grid, mat: mat}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Config returns the effective configuration, defaults included.
func (s *Solver) Config() Config { return s.cfg }

// Grid returns a copy of the training grid coordinates.
func (s *Solver) Grid() []float64 { return s.grid.Points() }

// Materials returns the generated per-point coefficient fields.
func (s *Solver) Materials() *mesh.Fields { return s.mat }

// FirstMoments returns the latest per-group first angular moments φ1 read
// during training. They are diagnostic only; the residual does not use them.
func (s *Solver) FirstMoments() ([2][]float64, error) {
	var out [2][]float64
	if !s.trained || s.lg == nil {
		return out, fmt.Errorf("first moments: %w", ErrNotTrained)
	}
	out[0] = columnData(s.lg.phi1Val[0])
	out[1] = columnData(s.lg.phi1Val[1])
	return out, nil
}
