package sn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// group2Scale rescales the spatial input for the second energy group. Both
// groups share one approximator; group 2 is the same network evaluated at
// group2Scale*z. The coupling of the two groups' spatial shapes through a
// single parameter set is an intentional modelling choice.
const group2Scale = 0.75

// fluxNet is the shared one-hidden-layer flux approximator.
//
// It maps a column of positions (n×1) to angular flux values (n×N), one
// column per quadrature direction: affine → tanh → affine. Biases are folded
// into the weight matrices by appending a ones column to each layer input, so
// the trainable state is exactly two matrices.
type fluxNet struct {
	g      *G.ExprGraph
	w1     *G.Node // (2, hidden): input weights with folded bias row
	w2     *G.Node // (hidden+1, dirs): output weights with folded bias row
	hidden int
	dirs   int
}

// newFluxNet creates an approximator with Glorot-normal initialised weights.
func newFluxNet(g *G.ExprGraph, hidden, dirs int) *fluxNet {
	w1 := G.NewMatrix(g, G.Float64,
		G.WithShape(2, hidden), G.WithName("w1"), G.WithInit(G.GlorotN(1.0)))
	w2 := G.NewMatrix(g, G.Float64,
		G.WithShape(hidden+1, dirs), G.WithName("w2"), G.WithInit(G.GlorotN(1.0)))
	return &fluxNet{g: g, w1: w1, w2: w2, hidden: hidden, dirs: dirs}
}

// forward evaluates the approximator at the n×1 position column z and
// returns the n×dirs angular flux matrix.
func (m *fluxNet) forward(z *G.Node) (*G.Node, error) {
	n := z.Shape()[0]

	zb, err := G.Concat(1, z, onesColumn(m.g, n))
	if err != nil {
		return nil, fmt.Errorf("append bias column: %w", err)
	}
	h, err := G.Mul(zb, m.w1)
	if err != nil {
		return nil, fmt.Errorf("hidden layer: %w", err)
	}
	if h, err = G.Tanh(h); err != nil {
		return nil, fmt.Errorf("hidden activation: %w", err)
	}
	hb, err := G.Concat(1, h, onesColumn(m.g, n))
	if err != nil {
		return nil, fmt.Errorf("append bias column: %w", err)
	}
	out, err := G.Mul(hb, m.w2)
	if err != nil {
		return nil, fmt.Errorf("output layer: %w", err)
	}
	return out, nil
}

// learnables returns the trainable parameters for the optimizer.
func (m *fluxNet) learnables() G.Nodes {
	return G.Nodes{m.w1, m.w2}
}

// snapshotInto copies the current weight values into a fresh graph as
// constants, for inference without gradient bookkeeping.
func (m *fluxNet) snapshotInto(g *G.ExprGraph) (*fluxNet, error) {
	w1v, ok := m.w1.Value().(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("%w: hidden weights have no value", ErrNotTrained)
	}
	w2v, ok := m.w2.Value().(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("%w: output weights have no value", ErrNotTrained)
	}

	w1 := G.NewConstant(w1v.Clone().(*tensor.Dense), G.In(g), G.WithName("w1"))
	w2 := G.NewConstant(w2v.Clone().(*tensor.Dense), G.In(g), G.WithName("w2"))
	return &fluxNet{g: g, w1: w1, w2: w2, hidden: m.hidden, dirs: m.dirs}, nil
}

// onesColumn returns an n×1 constant of ones used to fold biases into the
// weight matrices.
func onesColumn(g *G.ExprGraph, n int) *G.Node {
	return G.NewConstant(tensor.Ones(tensor.Float64, n, 1), G.In(g))
}
