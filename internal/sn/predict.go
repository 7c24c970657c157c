package sn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Predict evaluates the trained approximator and returns the group-1 scalar
// flux at positions, or at the training grid when positions is nil.
func (s *Solver) Predict(positions []float64) ([]float64, error) {
	both, err := s.PredictGroups(positions)
	if err != nil {
		return nil, err
	}
	return both[0], nil
}

// PredictGroups returns both groups' scalar flux at positions, or at the
// training grid when positions is nil.
//
// Prediction is inference-only: the trained weights are copied into a fresh
// graph as constants, so no gradient bookkeeping survives the call.
func (s *Solver) PredictGroups(positions []float64) ([2][]float64, error) {
	var out [2][]float64
	if !s.trained || s.lg == nil {
		return out, ErrNotTrained
	}
	if positions == nil {
		positions = s.grid.Points()
	}
	n := len(positions)
	if n == 0 {
		return out, &ConfigError{Field: "positions", Reason: "must not be empty"}
	}

	g := G.NewGraph()
	net, err := s.lg.net.snapshotInto(g)
	if err != nil {
		return out, err
	}

	zT := tensor.New(tensor.WithShape(n, 1),
		tensor.WithBacking(append([]float64(nil), positions...)))
	z := G.NewMatrix(g, G.Float64, G.WithShape(n, 1), G.WithName("z"), G.WithValue(zT))

	psi1, err := net.forward(z)
	if err != nil {
		return out, err
	}
	z2, err := G.Mul(z, G.NewConstant(group2Scale, G.In(g)))
	if err != nil {
		return out, fmt.Errorf("rescale group 2 input: %w", err)
	}
	psi2, err := net.forward(z2)
	if err != nil {
		return out, err
	}

	wCol := constColumn(g, s.quad.Weights(), "weights")
	phi01, err := G.Mul(psi1, wCol)
	if err != nil {
		return out, fmt.Errorf("contract group 1 flux: %w", err)
	}
	phi02, err := G.Mul(psi2, wCol)
	if err != nil {
		return out, fmt.Errorf("contract group 2 flux: %w", err)
	}

	var v1, v2 G.Value
	G.Read(phi01, &v1)
	G.Read(phi02, &v2)

	machine := G.NewTapeMachine(g)
	defer machine.Close()
	if err := machine.RunAll(); err != nil {
		return out, fmt.Errorf("predict: %w", err)
	}

	out[0] = columnData(v1)
	out[1] = columnData(v2)
	return out, nil
}
