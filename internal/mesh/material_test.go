package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi9216/Two-group-transport/internal/mesh"
)

func testSpec() mesh.MaterialSpec {
	return mesh.MaterialSpec{
		SigmaT:         [2]float64{0.2, 0.6},
		SigmaS:         [2][2]float64{{0.175, 0.02}, {0, 0.45}},
		Source:         1.0,
		ActiveFraction: 0.36,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := mesh.Generate(50, testSpec())
	b := mesh.Generate(50, testSpec())
	require.Equal(t, a, b)
}

func TestGenerate_ZoneBoundaries(t *testing.T) {
	// n=50: fuel span starts at int(0.2*50)=10, the outer fuel override
	// starts at int(0.56*50)=28 and both end at int(0.8*50)=40.
	f := mesh.Generate(50, testSpec())
	base := 0.2

	assert.Equal(t, base, f.SigmaT1[9], "moderator before the fuel span")
	assert.InDelta(t, base*1.2, f.SigmaT1[10], 1e-15, "inner fuel start")
	assert.InDelta(t, base*1.2, f.SigmaT1[27], 1e-15, "inner fuel end")
	assert.InDelta(t, base*1.4, f.SigmaT1[28], 1e-15, "outer fuel override start")
	assert.InDelta(t, base*1.4, f.SigmaT1[39], 1e-15, "outer fuel end")
	assert.Equal(t, base, f.SigmaT1[40], "moderator after the fuel span")
	assert.Equal(t, base, f.SigmaT1[49], "right boundary")
}

func TestGenerate_EveryPointCovered(t *testing.T) {
	f := mesh.Generate(50, testSpec())
	want := map[float64]bool{0.2: true, 0.2 * 1.2: true, 0.2 * 1.4: true}
	for i, v := range f.SigmaT1 {
		assert.Truef(t, want[v], "point %d has unexpected value %v", i, v)
	}
}

func TestGenerate_SourceRegion(t *testing.T) {
	f := mesh.Generate(50, testSpec())

	// Active from int(0.2*50)=10 up to int(0.56*50)=28 exclusive.
	for i, q := range f.Q1 {
		if i >= 10 && i < 28 {
			assert.Equalf(t, 1.0, q, "point %d should be inside the source region", i)
		} else {
			assert.Zerof(t, q, "point %d should have no source", i)
		}
	}
	for i, q := range f.Q2 {
		assert.Zerof(t, q, "group 2 has no external source (point %d)", i)
	}
}
