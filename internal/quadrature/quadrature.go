// Package quadrature provides the fixed-order angular quadrature used by the
// discrete-ordinates transport solver.
package quadrature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
)

// ErrBadOrder is returned when the requested order is not a positive even
// integer.
var ErrBadOrder = errors.New("quadrature: order must be a positive even integer")

// Set is a Legendre-Gauss quadrature on [-1, 1].
//
// The nodes are the discrete direction cosines μ_d and the weights integrate
// the angular variable: Σw ≈ 2. Nodes are strictly increasing, so directions
// with index >= Order()/2 have μ > 0 (travelling towards z = zmax).
//
// A Set is immutable after construction.
type Set struct {
	order int
	mu    []float64
	w     []float64
}

// NewLegendre computes the nodes and weights for the given even order.
func NewLegendre(order int) (*Set, error) {
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadOrder, order)
	}

	mu := make([]float64, order)
	w := make([]float64, order)
	quad.Legendre{}.FixedLocations(mu, w, -1, 1)

	return &Set{order: order, mu: mu, w: w}, nil
}

// Order returns the number of discrete directions.
func (s *Set) Order() int { return s.order }

// Mu returns a copy of the direction cosines, ascending in (-1, 1).
func (s *Set) Mu() []float64 {
	return append([]float64(nil), s.mu...)
}

// Weights returns a copy of the quadrature weights. All weights are positive
// and sum to 2 up to floating-point error.
func (s *Set) Weights() []float64 {
	return append([]float64(nil), s.w...)
}
