package sn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/ravi9216/Two-group-transport/internal/mesh"
	"github.com/ravi9216/Two-group-transport/internal/quadrature"
)

// lossGraph owns the training expression graph and the value handles that
// are read back after every run.
//
// The graph is built once and reused across iterations: the grid column z
// and the residual weights gamma are the only inputs fed per run, everything
// else (material fields, quadrature constants) is baked in as constants.
type lossGraph struct {
	g   *G.ExprGraph
	net *fluxNet

	z     *G.Node // (n, 1) grid coordinates, differentiated against
	gamma *G.Node // (n,) adaptive residual weights

	loss *G.Node

	lossVal G.Value
	phi0Val [2]G.Value // per-group scalar flux, (n, 1)
	phi1Val [2]G.Value // per-group first angular moment, diagnostic only
	r2Val   G.Value    // per-point squared residual, (n,)
}

// buildLossGraph assembles the two-group discrete-ordinates balance residual
// plus the vacuum boundary penalties into a single scalar loss node.
func buildLossGraph(cfg Config, qs *quadrature.Set, grid *mesh.Grid, mat *mesh.Fields) (lg *lossGraph, err error) {
	nPts := grid.Len()
	nDir := qs.Order()
	if err = checkFieldShapes(nPts, mat); err != nil {
		return nil, err
	}

	// Shape errors below this point are programming errors; gorgonia ops
	// panic on them, so convert that into a regular error at the boundary.
	defer func() {
		if r := recover(); r != nil {
			lg, err = nil, fmt.Errorf("assemble loss graph: %v", r)
		}
	}()

	g := G.NewGraph()
	net := newFluxNet(g, cfg.Hidden, nDir)

	z := G.NewMatrix(g, G.Float64, G.WithShape(nPts, 1), G.WithName("z"))
	gamma := G.NewVector(g, G.Float64, G.WithShape(nPts), G.WithName("gamma"))

	psi1, err := net.forward(z)
	if err != nil {
		return nil, err
	}
	z2 := G.Must(G.Mul(z, G.NewConstant(group2Scale, G.In(g))))
	psi2, err := net.forward(z2)
	if err != nil {
		return nil, err
	}

	mu, w := qs.Mu(), qs.Weights()
	muw := make([]float64, nDir)
	for d := range mu {
		muw[d] = mu[d] * w[d]
	}
	wCol := constColumn(g, w, "weights")
	muwCol := constColumn(g, muw, "mu_weights")
	muRow := constRow(g, mu, "mu")

	// Angular moments by quadrature contraction, (n, 1) each.
	phi01 := G.Must(G.Mul(psi1, wCol))
	phi02 := G.Must(G.Mul(psi2, wCol))

	// First angular moments: diagnostic readout, not part of the residual.
	// Kept as an extension point for anisotropic terms.
	phi11 := G.Must(G.Mul(psi1, muwCol))
	phi12 := G.Must(G.Mul(psi2, muwCol))

	dpsi1, err := spatialDerivative(psi1, z, nDir)
	if err != nil {
		return nil, err
	}
	dpsi2, err := spatialDerivative(psi2, z, nDir)
	if err != nil {
		return nil, err
	}

	// Streaming and collision terms, (n, N): μ_d ∂ψ/∂z broadcast along rows,
	// σt ψ broadcast along columns.
	stream1 := G.Must(G.BroadcastHadamardProd(dpsi1, muRow, nil, []byte{0}))
	stream2 := G.Must(G.BroadcastHadamardProd(dpsi2, muRow, nil, []byte{0}))
	coll1 := G.Must(G.BroadcastHadamardProd(psi1, constColumn(g, mat.SigmaT1, "sigma_t1"), nil, []byte{1}))
	coll2 := G.Must(G.BroadcastHadamardProd(psi2, constColumn(g, mat.SigmaT2, "sigma_t2"), nil, []byte{1}))

	// Isotropic in-scatter: ½(σs_g1+σs_g2)·φ0_g per point, (n, 1).
	in1 := make([]float64, nPts)
	in2 := make([]float64, nPts)
	for i := 0; i < nPts; i++ {
		in1[i] = 0.5 * (mat.SigmaS12[i] + mat.SigmaS11[i])
		in2[i] = 0.5 * (mat.SigmaS21[i] + mat.SigmaS22[i])
	}
	inscatter := G.Must(G.Add(
		G.Must(G.HadamardProd(constColumn(g, in1, "inscatter1"), phi01)),
		G.Must(G.HadamardProd(constColumn(g, in2, "inscatter2"), phi02)),
	))

	// External source ½(Q1+Q2), replicated across directions, (n, N).
	qHalf := make([]float64, nPts*nDir)
	for i := 0; i < nPts; i++ {
		v := 0.5 * (mat.Q1[i] + mat.Q2[i])
		for d := 0; d < nDir; d++ {
			qHalf[i*nDir+d] = v
		}
	}
	qNode := G.NewConstant(
		tensor.New(tensor.WithShape(nPts, nDir), tensor.WithBacking(qHalf)),
		G.In(g), G.WithName("source"))

	res := G.Must(G.Add(stream1, coll1))
	res = G.Must(G.Add(res, stream2))
	res = G.Must(G.Add(res, coll2))
	res = G.Must(G.BroadcastSub(res, inscatter, nil, []byte{1}))
	res = G.Must(G.Sub(res, qNode))

	// Per-point squared residual r²(z) = Σ_d r(z,d)², weighted by γ.
	r2 := G.Must(G.Sum(G.Must(G.Square(res)), 1))
	weighted := G.Must(G.HadamardProd(gamma, r2))
	loss := G.Must(G.Mul(
		G.NewConstant(0.5, G.In(g)),
		G.Must(G.Sum(weighted)),
	))

	// Weak vacuum boundaries: penalise incoming directions at each face.
	// Directions index >= N/2 have μ > 0 and enter at z=0; the complementary
	// half enters at z=zmax.
	half := nDir / 2
	left := G.Must(G.Add(
		boundaryPenalty(psi1, 0, half, nDir),
		boundaryPenalty(psi2, 0, half, nDir),
	))
	right := G.Must(G.Add(
		boundaryPenalty(psi1, nPts-1, 0, half),
		boundaryPenalty(psi2, nPts-1, 0, half),
	))
	loss = G.Must(G.Add(loss, G.Must(G.Mul(G.NewConstant(0.5*cfg.BoundaryWeight[0], G.In(g)), left))))
	loss = G.Must(G.Add(loss, G.Must(G.Mul(G.NewConstant(0.5*cfg.BoundaryWeight[1], G.In(g)), right))))

	lg = &lossGraph{g: g, net: net, z: z, gamma: gamma, loss: loss}
	G.Read(loss, &lg.lossVal)
	G.Read(phi01, &lg.phi0Val[0])
	G.Read(phi02, &lg.phi0Val[1])
	G.Read(phi11, &lg.phi1Val[0])
	G.Read(phi12, &lg.phi1Val[1])
	G.Read(r2, &lg.r2Val)
	return lg, nil
}

// spatialDerivative assembles ∂ψ/∂z as an (n, dirs) matrix.
//
// Each direction column is reduced to a scalar and differentiated against z;
// row i of ψ depends only on z_i, so the gradient of the column sum recovers
// the per-point derivative. The derivative nodes live in the same graph and
// are differentiated again when the loss is backpropagated to the weights.
func spatialDerivative(psi, z *G.Node, dirs int) (*G.Node, error) {
	cols := make([]*G.Node, dirs)
	for d := 0; d < dirs; d++ {
		col, err := G.Slice(psi, nil, G.S(d))
		if err != nil {
			return nil, fmt.Errorf("direction %d: %w", d, err)
		}
		s, err := G.Sum(col)
		if err != nil {
			return nil, fmt.Errorf("direction %d: %w", d, err)
		}
		grads, err := G.Grad(s, z)
		if err != nil {
			return nil, fmt.Errorf("direction %d derivative: %w", d, err)
		}
		cols[d] = grads[0]
	}
	out, err := G.Concat(1, cols...)
	if err != nil {
		return nil, fmt.Errorf("stack derivatives: %w", err)
	}
	return out, nil
}

// boundaryPenalty sums the squared flux over the direction range [lo, hi) at
// grid row pt.
func boundaryPenalty(psi *G.Node, pt, lo, hi int) *G.Node {
	incoming := G.Must(G.Slice(psi, G.S(pt), G.S(lo, hi)))
	return G.Must(G.Sum(G.Must(G.Square(incoming))))
}

// checkFieldShapes rejects material fields that do not cover the grid.
func checkFieldShapes(nPts int, mat *mesh.Fields) error {
	fields := map[string][]float64{
		"SigmaT1": mat.SigmaT1, "SigmaT2": mat.SigmaT2,
		"SigmaS11": mat.SigmaS11, "SigmaS12": mat.SigmaS12,
		"SigmaS21": mat.SigmaS21, "SigmaS22": mat.SigmaS22,
		"Q1": mat.Q1, "Q2": mat.Q2,
	}
	for name, f := range fields {
		if len(f) != nPts {
			return &ShapeError{Name: name, Want: []int{nPts}, Got: []int{len(f)}}
		}
	}
	return nil
}

// constColumn bakes data into the graph as an (n, 1) constant.
func constColumn(g *G.ExprGraph, data []float64, name string) *G.Node {
	d := append([]float64(nil), data...)
	t := tensor.New(tensor.WithShape(len(d), 1), tensor.WithBacking(d))
	return G.NewConstant(t, G.In(g), G.WithName(name))
}

// constRow bakes data into the graph as a (1, n) constant.
func constRow(g *G.ExprGraph, data []float64, name string) *G.Node {
	d := append([]float64(nil), data...)
	t := tensor.New(tensor.WithShape(1, len(d)), tensor.WithBacking(d))
	return G.NewConstant(t, G.In(g), G.WithName(name))
}
