package sn

import (
	"math"

	"github.com/ravi9216/Two-group-transport/internal/mesh"
)

// Config collects every recognised option of the transport solver.
//
// Zero values are replaced by defaults in New, so the zero Config is a
// complete, well-conditioned problem: an 8-direction quadrature on a 50-point
// grid over a 100-unit slab with a reactor-like material profile.
type Config struct {
	Quadrature int // discrete-ordinates order N, positive even (default 8)
	Hidden     int // hidden-layer width of the flux approximator (default 20)
	Points     int // spatial grid points (default 50)

	Length float64 // slab length zmax (default 100)

	SigmaT [2]float64    // per-group baseline total cross sections (default {0.2, 0.6})
	SigmaS [2][2]float64 // SigmaS[g][h]: scattering from group g+1 into group h+1 (default {{0.175, 0.02}, {0, 0.45}})

	Source         float64 // external source magnitude (default 1)
	ActiveFraction float64 // fraction of the slab with an active source (default 0.36)

	BoundaryWeight [2]float64 // left/right vacuum penalty weights (default {10, 10})

	LearnRate float64 // Adam learning rate (default 1e-3)
	Epsilon   float64 // convergence threshold on |Δloss| (default 1e-6)

	// AdaptiveWeights enables experimental per-point residual reweighting.
	// See Solver.reweight for the caveats.
	AdaptiveWeights bool

	LogPath string // training-log target when no Sink is injected (default "training.log")
}

func (c *Config) setDefaults() {
	if c.Quadrature == 0 {
		c.Quadrature = 8
	}
	if c.Hidden == 0 {
		c.Hidden = 20
	}
	if c.Points == 0 {
		c.Points = 50
	}
	if c.Length == 0 {
		c.Length = 100
	}
	if c.SigmaT == ([2]float64{}) {
		c.SigmaT = [2]float64{0.2, 0.6}
	}
	if c.SigmaS == ([2][2]float64{}) {
		c.SigmaS = [2][2]float64{{0.175, 0.02}, {0, 0.45}}
	}
	if c.Source == 0 {
		c.Source = 1
	}
	if c.ActiveFraction == 0 {
		c.ActiveFraction = 0.36
	}
	if c.BoundaryWeight == ([2]float64{}) {
		c.BoundaryWeight = [2]float64{10, 10}
	}
	if c.LearnRate == 0 {
		c.LearnRate = 1e-3
	}
	if c.Epsilon == 0 {
		c.Epsilon = 1e-6
	}
	if c.LogPath == "" {
		c.LogPath = "training.log"
	}
}

// validate rejects configurations eagerly, before any graph is built. Every
// float field must be finite: NaN compares false against any bound, so the
// range checks alone would let it through.
func (c *Config) validate() error {
	if c.Quadrature <= 0 || c.Quadrature%2 != 0 {
		return &ConfigError{Field: "Quadrature", Reason: "must be a positive even integer"}
	}
	if c.Hidden < 1 {
		return &ConfigError{Field: "Hidden", Reason: "must be at least 1"}
	}
	if c.Points < 2 {
		return &ConfigError{Field: "Points", Reason: "must be at least 2"}
	}
	if !isFinite(c.Length) || c.Length <= 0 {
		return &ConfigError{Field: "Length", Reason: "must be positive and finite"}
	}
	for g, v := range c.SigmaT {
		if !isFinite(v) || v < 0 {
			return &ConfigError{Field: "SigmaT", Reason: "cross sections must be non-negative and finite"}
		}
		for _, s := range c.SigmaS[g] {
			if !isFinite(s) || s < 0 {
				return &ConfigError{Field: "SigmaS", Reason: "cross sections must be non-negative and finite"}
			}
		}
	}
	if !isFinite(c.Source) || c.Source < 0 {
		return &ConfigError{Field: "Source", Reason: "must be non-negative and finite"}
	}
	if !(c.ActiveFraction > 0) || c.ActiveFraction > 1-mesh.SourceStartFraction {
		return &ConfigError{Field: "ActiveFraction", Reason: "must be in (0, 0.8]"}
	}
	if !isFinite(c.BoundaryWeight[0]) || !isFinite(c.BoundaryWeight[1]) ||
		c.BoundaryWeight[0] < 0 || c.BoundaryWeight[1] < 0 {
		return &ConfigError{Field: "BoundaryWeight", Reason: "must be non-negative and finite"}
	}
	if !isFinite(c.LearnRate) || c.LearnRate <= 0 {
		return &ConfigError{Field: "LearnRate", Reason: "must be positive and finite"}
	}
	if !isFinite(c.Epsilon) || c.Epsilon <= 0 {
		return &ConfigError{Field: "Epsilon", Reason: "must be positive and finite"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
