// Package mesh provides the fixed spatial discretisation of the slab and the
// piecewise-constant material coefficient fields defined on it.
package mesh

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrBadGrid is returned when the grid needs fewer than two points or a
// non-positive length.
var ErrBadGrid = errors.New("mesh: grid needs at least two points and a positive length")

// Grid is an evenly spaced, strictly increasing discretisation of [0, zmax].
//
// The coordinates themselves are plain floats; the loss builder lifts them
// into the expression graph as an input node, which is what makes every
// downstream scalar differentiable with respect to each point.
//
// A Grid is immutable after construction.
type Grid struct {
	points []float64
	zmax   float64
}

// NewGrid builds a grid of nPoints coordinates from 0 to zMax inclusive.
func NewGrid(nPoints int, zMax float64) (*Grid, error) {
	if nPoints < 2 || zMax <= 0 {
		return nil, ErrBadGrid
	}

	pts := make([]float64, nPoints)
	floats.Span(pts, 0, zMax)

	return &Grid{points: pts, zmax: zMax}, nil
}

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.points) }

// ZMax returns the slab length.
func (g *Grid) ZMax() float64 { return g.zmax }

// Points returns a copy of the grid coordinates.
func (g *Grid) Points() []float64 {
	return append([]float64(nil), g.points...)
}
