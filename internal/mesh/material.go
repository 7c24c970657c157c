package mesh

// MaterialSpec holds the scalar baseline values the field generator expands
// into per-point arrays.
//
// SigmaS[g][h] is the scattering cross section from group g+1 into group h+1.
type MaterialSpec struct {
	SigmaT         [2]float64
	SigmaS         [2][2]float64
	Source         float64
	ActiveFraction float64 // fraction of the slab, starting at the inner fuel zone, with an active source
}

// Fields holds one per-point value array for every material coefficient of
// the two-group problem. Sources are per point; the loss builder replicates
// them across the quadrature directions.
//
// Fields are immutable once generated; regenerate when the grid or the spec
// changes.
type Fields struct {
	SigmaT1, SigmaT2 []float64

	SigmaS11, SigmaS12 []float64
	SigmaS21, SigmaS22 []float64

	Q1, Q2 []float64
}

// Fractional breakpoints of the slab partition. The inner fuel zone spans
// 20-56 %, the outer fuel zone 56-80 %; the remainder is moderator.
const (
	zoneFuelLo  = 0.20
	zoneFuelMid = 0.56
	zoneFuelHi  = 0.80
)

// SourceStartFraction is the fractional position where the external source
// region begins. It coincides with the start of the fuel zone, so a source
// spanning more than 1 − SourceStartFraction of the slab would run past the
// right boundary.
const SourceStartFraction = zoneFuelLo

// Per-zone multipliers applied to the baseline cross sections. Fuel is
// denser than moderator in total cross section and scatters slightly less.
const (
	fuelInnerTotal   = 1.2
	fuelOuterTotal   = 1.4
	fuelInnerScatter = 0.9
	fuelOuterScatter = 0.8
)

// region assigns value on the fractional index range [start, end) of the
// grid.
type region struct {
	start, end float64
	value      float64
}

// Generate expands spec into per-point coefficient arrays on a grid of n
// points.
//
// Region boundaries truncate: index = int(frac * n). Regions are applied in
// ascending start order and later assignments overwrite earlier ones on
// overlapping ranges, so the outer fuel zone is written as an override of the
// full fuel span. Generate is pure; identical inputs yield identical arrays.
func Generate(n int, spec MaterialSpec) *Fields {
	heterogeneous := func(base, inner, outer float64) []float64 {
		return piecewise(n, base, []region{
			{zoneFuelLo, zoneFuelHi, base * inner},
			{zoneFuelMid, zoneFuelHi, base * outer},
		})
	}

	return &Fields{
		SigmaT1: heterogeneous(spec.SigmaT[0], fuelInnerTotal, fuelOuterTotal),
		SigmaT2: heterogeneous(spec.SigmaT[1], fuelInnerTotal, fuelOuterTotal),

		SigmaS11: heterogeneous(spec.SigmaS[0][0], fuelInnerScatter, fuelOuterScatter),
		SigmaS12: heterogeneous(spec.SigmaS[0][1], fuelInnerScatter, fuelOuterScatter),
		SigmaS21: heterogeneous(spec.SigmaS[1][0], fuelInnerScatter, fuelOuterScatter),
		SigmaS22: heterogeneous(spec.SigmaS[1][1], fuelInnerScatter, fuelOuterScatter),

		Q1: piecewise(n, 0, []region{
			{zoneFuelLo, zoneFuelLo + spec.ActiveFraction, spec.Source},
		}),
		Q2: piecewise(n, 0, nil),
	}
}

// piecewise fills an n-element array with base and applies the region
// overrides in order (last writer wins).
func piecewise(n int, base float64, regions []region) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base
	}
	for _, r := range regions {
		lo := int(r.start * float64(n))
		hi := int(r.end * float64(n))
		if hi > n {
			hi = n
		}
		for i := lo; i < hi; i++ {
			out[i] = r.value
		}
	}
	return out
}
