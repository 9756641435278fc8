package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seiscoherence/internal/models"
	"seiscoherence/pkg/synthetic"
)

func TestCrossCorrelationIdenticalTraces(t *testing.T) {
	// Every trace identical: the zero-lag correlation equals K*rms^2 in
	// both directions, so the score is exactly 1 at interior voxels.
	vol := synthetic.Layered(5, 5, 32, 8.0)
	c := NewCrossCorrelation(5)
	w := Window{3, 3, 9}

	got, err := c.EstimateAt(vol, w, 2, 2, 16)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestCrossCorrelationAllOnes(t *testing.T) {
	// Constant non-zero traces stay well defined because normalization
	// uses RMS amplitude without de-meaning.
	vol := models.NewVolume(3, 3, 9)
	for idx := range vol.Data {
		vol.Data[idx] = 1
	}

	c := NewCrossCorrelation(3)
	got, err := c.EstimateAt(vol, Window{3, 3, 9}, 1, 1, 4)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestCrossCorrelationLagRecovery(t *testing.T) {
	// Crossline neighbors carry a period-4 square wave shifted by 2
	// samples, which negates it sample-for-sample while keeping RMS at
	// exactly 1. A +/-2 lag search realigns the waveform and recovers
	// full coherence; without the search the neighbor anti-correlates
	// and the policy result is 0.
	square := func(s int) float64 {
		if ((s%4)+4)%4 < 2 {
			return 1
		}
		return -1
	}
	vol := models.NewVolume(6, 6, 48)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			shift := 0
			if j >= 3 {
				shift = 2
			}
			trace := vol.Trace(i, j)
			for k := range trace {
				trace[k] = square(k - shift)
			}
		}
	}
	w := Window{3, 3, 11}

	wide, err := NewCrossCorrelation(5).EstimateAt(vol, w, 2, 2, 24)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, wide, 1e-12, "a +/-2 lag search must recover the 2-sample shift")

	narrow, err := NewCrossCorrelation(1).EstimateAt(vol, w, 2, 2, 24)
	require.NoError(t, err)
	assert.Equal(t, 0.0, narrow, "an anti-correlated unshifted neighbor scores 0")
}

func TestCrossCorrelationDegenerateTrace(t *testing.T) {
	// Silent center trace: zero RMS is reported with the voxel, and the
	// documented fallback is 0.
	vol := synthetic.Layered(4, 4, 16, 8.0)
	silent := vol.Trace(1, 1)
	for k := range silent {
		silent[k] = 0
	}

	c := NewCrossCorrelation(3)
	_, err := c.EstimateAt(vol, Window{3, 3, 5}, 1, 1, 8)

	var degenerate *DegenerateTraceError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 1, degenerate.I)
	assert.Equal(t, 1, degenerate.J)
	assert.Equal(t, "center", degenerate.Trace)
	assert.Equal(t, 0.0, c.Fallback())
}

func TestCrossCorrelationAntiCorrelatedNeighbors(t *testing.T) {
	// Inline neighbor is the negated center trace, crossline neighbor
	// matches: the score product is negative and the policy result is 0.
	vol := models.NewVolume(3, 3, 16)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			trace := vol.Trace(i, j)
			sign := 1.0
			if i == 1 {
				sign = -1.0
			}
			for k := range trace {
				if k%2 == 0 {
					trace[k] = sign
				} else {
					trace[k] = -sign
				}
			}
		}
	}

	c := NewCrossCorrelation(1)
	got, err := c.EstimateAt(vol, Window{3, 3, 5}, 0, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCrossCorrelationOutputDims(t *testing.T) {
	// Forward-neighbor formulation truncates each axis by one.
	ni, nj, nk := NewCrossCorrelation(3).outputDims(10, 8, 64)
	assert.Equal(t, 9, ni)
	assert.Equal(t, 7, nj)
	assert.Equal(t, 63, nk)
}
