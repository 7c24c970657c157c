package sn

import (
	"errors"
	"math"
	"testing"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/ravi9216/Two-group-transport/internal/mesh"
	"github.com/ravi9216/Two-group-transport/internal/quadrature"
)

func smallConfig() Config {
	cfg := Config{
		Quadrature: 4,
		Hidden:     8,
		Points:     10,
		Length:     1,
	}
	cfg.setDefaults()
	return cfg
}

func zeroFields(n int) *mesh.Fields {
	z := func() []float64 { return make([]float64, n) }
	return &mesh.Fields{
		SigmaT1: z(), SigmaT2: z(),
		SigmaS11: z(), SigmaS12: z(), SigmaS21: z(), SigmaS22: z(),
		Q1: z(), Q2: z(),
	}
}

// zeroWeights clears the approximator in place so that ψ ≡ 0.
func zeroWeights(net *fluxNet) {
	for _, w := range net.learnables() {
		data := w.Value().Data().([]float64)
		for i := range data {
			data[i] = 0
		}
	}
}

// runLoss executes the graph once with uniform residual weights and returns
// the loss value.
func runLoss(t *testing.T, lg *lossGraph, grid *mesh.Grid) float64 {
	t.Helper()

	machine := G.NewTapeMachine(lg.g)
	defer machine.Close()

	n := grid.Len()
	zT := tensor.New(tensor.WithShape(n, 1), tensor.WithBacking(grid.Points()))
	if err := G.Let(lg.z, zT); err != nil {
		t.Fatalf("bind grid: %v", err)
	}
	gT := tensor.New(tensor.WithShape(n), tensor.WithBacking(onesSlice(n)))
	if err := G.Let(lg.gamma, gT); err != nil {
		t.Fatalf("bind residual weights: %v", err)
	}
	if err := machine.RunAll(); err != nil {
		t.Fatalf("run graph: %v", err)
	}
	return lg.lossVal.Data().(float64)
}

func TestLossGraph_ZeroFluxZeroSourceIsZero(t *testing.T) {
	cfg := smallConfig()
	qs, err := quadrature.NewLegendre(cfg.Quadrature)
	if err != nil {
		t.Fatal(err)
	}
	grid, err := mesh.NewGrid(cfg.Points, cfg.Length)
	if err != nil {
		t.Fatal(err)
	}

	lg, err := buildLossGraph(cfg, qs, grid, zeroFields(cfg.Points))
	if err != nil {
		t.Fatalf("build loss graph: %v", err)
	}
	zeroWeights(lg.net)

	loss := runLoss(t, lg, grid)
	if math.Abs(loss) > 1e-15 {
		t.Errorf("loss = %v, want exactly 0 for zero flux and zero source", loss)
	}
}

func TestLossGraph_SourceOnlyLoss(t *testing.T) {
	cfg := smallConfig()
	qs, err := quadrature.NewLegendre(cfg.Quadrature)
	if err != nil {
		t.Fatal(err)
	}
	grid, err := mesh.NewGrid(cfg.Points, cfg.Length)
	if err != nil {
		t.Fatal(err)
	}

	// With ψ ≡ 0 and a uniform group-1 source q, the residual is -q/2 at
	// every point and direction: loss = ½ · n · N · (q/2)².
	fields := zeroFields(cfg.Points)
	for i := range fields.Q1 {
		fields.Q1[i] = 2
	}

	lg, err := buildLossGraph(cfg, qs, grid, fields)
	if err != nil {
		t.Fatalf("build loss graph: %v", err)
	}
	zeroWeights(lg.net)

	loss := runLoss(t, lg, grid)
	want := 0.5 * float64(cfg.Points) * float64(cfg.Quadrature) // (q/2)² = 1
	if math.Abs(loss-want) > 1e-9 {
		t.Errorf("loss = %v, want %v", loss, want)
	}
}

func TestLossGraph_RejectsShortFields(t *testing.T) {
	cfg := smallConfig()
	qs, err := quadrature.NewLegendre(cfg.Quadrature)
	if err != nil {
		t.Fatal(err)
	}
	grid, err := mesh.NewGrid(cfg.Points, cfg.Length)
	if err != nil {
		t.Fatal(err)
	}

	short := zeroFields(cfg.Points - 1)
	if _, err := buildLossGraph(cfg, qs, grid, short); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("error = %v, want ErrShapeMismatch", err)
	}
}

func TestLossGraph_GradientsFinite(t *testing.T) {
	cfg := smallConfig()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	lg, err := buildLossGraph(s.cfg, s.quad, s.grid, s.mat)
	if err != nil {
		t.Fatalf("build loss graph: %v", err)
	}
	if _, err := G.Grad(lg.loss, lg.net.learnables()...); err != nil {
		t.Fatalf("differentiate loss: %v", err)
	}

	machine := G.NewTapeMachine(lg.g, G.BindDualValues(lg.net.learnables()...))
	defer machine.Close()

	n := s.grid.Len()
	zT := tensor.New(tensor.WithShape(n, 1), tensor.WithBacking(s.grid.Points()))
	if err := G.Let(lg.z, zT); err != nil {
		t.Fatal(err)
	}
	gT := tensor.New(tensor.WithShape(n), tensor.WithBacking(onesSlice(n)))
	if err := G.Let(lg.gamma, gT); err != nil {
		t.Fatal(err)
	}
	if err := machine.RunAll(); err != nil {
		t.Fatalf("run graph: %v", err)
	}

	loss := lg.lossVal.Data().(float64)
	if math.IsNaN(loss) || math.IsInf(loss, 0) || loss < 0 {
		t.Fatalf("loss = %v, want finite and non-negative", loss)
	}
	for _, w := range lg.net.learnables() {
		grad, err := w.Grad()
		if err != nil {
			t.Fatalf("gradient of %v: %v", w.Name(), err)
		}
		for i, v := range grad.Data().([]float64) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("gradient of %v has non-finite entry %v at %d", w.Name(), v, i)
			}
		}
	}
}
