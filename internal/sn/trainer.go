package sn

import (
	"fmt"
	"math"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// trainingState is the per-run mutable state threaded through iterations.
// It is discarded when Train returns; the loss history is the only part
// handed back to the caller.
type trainingState struct {
	iter    int
	history []float64
	prev    float64
	gamma   []float64 // per-point residual weights, default all ones
	target  []float64 // target residual magnitudes for adaptive reweighting
}

// Train minimises the transport residual until |loss_t − loss_{t−1}| drops
// below Config.Epsilon or maxIter iterations have run.
//
// logEvery <= 0 disables periodic logging; otherwise every logEvery-th
// iteration is written to the configured sink. maxIter <= 0 removes the
// iteration cap, which is an explicit opt-in to a potentially unbounded run.
//
// Returns the loss history recorded so far, also on error. A non-finite loss
// aborts the run with ErrDiverged.
//
// Calling Train again on the same Solver resumes from the current weights;
// only the optimizer's moment estimates start fresh.
func (s *Solver) Train(logEvery, maxIter int) ([]float64, error) {
	// The graph, with its weight values and symbolic gradients, is built on
	// the first call and kept on the Solver. Later calls re-run the same
	// compiled program, so retraining continues rather than restarts.
	if s.lg == nil {
		lg, err := buildLossGraph(s.cfg, s.quad, s.grid, s.mat)
		if err != nil {
			return nil, err
		}
		if _, err := G.Grad(lg.loss, lg.net.learnables()...); err != nil {
			return nil, fmt.Errorf("differentiate loss: %w", err)
		}
		s.lg = lg
	}
	lg := s.lg

	machine := G.NewTapeMachine(lg.g, G.BindDualValues(lg.net.learnables()...))
	defer machine.Close()
	adam := G.NewAdamSolver(G.WithLearnRate(s.cfg.LearnRate))

	sink := s.sink
	if sink == nil {
		fs, err := newFileSink(s.cfg.LogPath)
		if err != nil {
			return nil, err
		}
		defer fs.Close()
		sink = fs
	}

	n := s.grid.Len()
	zT := tensor.New(tensor.WithShape(n, 1), tensor.WithBacking(s.grid.Points()))
	st := &trainingState{prev: math.NaN(), gamma: onesSlice(n)}

	for st.iter = 0; maxIter <= 0 || st.iter < maxIter; st.iter++ {
		// Reset also clears the previous run's gradient values; gradients
		// are recomputed, not accumulated.
		machine.Reset()
		if err := G.Let(lg.z, zT); err != nil {
			return st.history, fmt.Errorf("bind grid: %w", err)
		}
		gT := tensor.New(tensor.WithShape(n), tensor.WithBacking(append([]float64(nil), st.gamma...)))
		if err := G.Let(lg.gamma, gT); err != nil {
			return st.history, fmt.Errorf("bind residual weights: %w", err)
		}
		if err := machine.RunAll(); err != nil {
			return st.history, fmt.Errorf("iteration %d: %w", st.iter, err)
		}

		loss := lg.lossVal.Data().(float64)
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			return st.history, fmt.Errorf("iteration %d: %w", st.iter, ErrDiverged)
		}
		st.history = append(st.history, loss)

		if logEvery > 0 && st.iter%logEvery == 0 {
			if err := sink.Write(s.snapshot(st.iter, loss)); err != nil {
				return st.history, fmt.Errorf("write training log: %w", err)
			}
		}

		if err := adam.Step(G.NodesToValueGrads(lg.net.learnables())); err != nil {
			return st.history, fmt.Errorf("optimizer step: %w", err)
		}

		if s.cfg.AdaptiveWeights {
			s.reweight(st)
		}

		if st.iter > 0 && math.Abs(loss-st.prev) < s.cfg.Epsilon {
			s.trained = true
			return st.history, nil
		}
		st.prev = loss
	}

	s.trained = true
	return st.history, nil
}

// snapshot copies the current readout values into a Snapshot.
func (s *Solver) snapshot(iter int, loss float64) Snapshot {
	return Snapshot{
		Iter: iter,
		Loss: loss,
		Phi0: [2][]float64{columnData(s.lg.phi0Val[0]), columnData(s.lg.phi0Val[1])},
		Phi1: [2][]float64{columnData(s.lg.phi1Val[0]), columnData(s.lg.phi1Val[1])},
	}
}

// reweight recomputes the per-point residual weights from the ratio of the
// current residual magnitude to the recorded target, normalised by scalar
// flux. The first call only records the targets. Experimental: emphasises
// poorly-converged regions but can destabilise training.
//
// TODO: confirm which group's scalar flux should normalise the ratio; the
// current iteration's group-1 flux is assumed here.
func (s *Solver) reweight(st *trainingState) {
	r2 := columnData(s.lg.r2Val)
	phi0 := columnData(s.lg.phi0Val[0])
	if r2 == nil || phi0 == nil {
		return
	}
	if st.target == nil {
		st.target = make([]float64, len(r2))
		for i := range r2 {
			st.target[i] = math.Sqrt(r2[i])
		}
		return
	}
	for i := range st.gamma {
		denom := st.target[i] * math.Max(math.Abs(phi0[i]), 1e-12)
		if denom <= 0 {
			continue
		}
		st.gamma[i] = math.Sqrt(r2[i]) / denom
	}
}

// columnData copies a read-out value into a plain slice.
func columnData(v G.Value) []float64 {
	if v == nil {
		return nil
	}
	data, ok := v.Data().([]float64)
	if !ok {
		return nil
	}
	return append([]float64(nil), data...)
}

func onesSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
