package attribute

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"seiscoherence/internal/models"
)

// CrossCorrelation is the Bahorich–Farmer style cross-correlation coherence
// estimator. At each voxel it compares the center trace segment against the
// forward inline neighbor (i+1, j) and the forward crossline neighbor
// (i, j+1), allowing each neighbor a small lag search of ZWin samples along
// the sample axis. The directional score is the peak raw cross-correlation
// normalized by segment length and RMS amplitudes:
//
//	score = max_lag(corr) / (K * rms(center) * rms(neighbor))
//
// and the voxel estimate is the geometric mean sqrt(scoreX * scoreY).
//
// Normalization uses RMS amplitude without de-meaning: seismic traces are
// nominally zero-mean, and RMS keeps constant non-zero segments well
// defined. The peak-over-product-of-norms form can marginally exceed 1 from
// discretization of the lag search; results are not clamped. A negative
// score product (anti-correlated neighbors) yields 0 by policy, since such
// neighbors are maximally discontinuous.
//
// The forward-neighbor formulation leaves the last index on each axis
// without a comparison partner, so the iteration domain is truncated and
// the output field has shape (Ni-1) x (Nj-1) x (Nk-1).
type CrossCorrelation struct {
	// ZWin is the lag-window length in samples; the search covers lags
	// in [-ZWin/2, ZWin/2]. Lag samples beyond the trace ends are
	// gathered by reflection.
	ZWin int

	center   []float64
	neighbor []float64
}

// NewCrossCorrelation creates a cross-correlation estimator with the given
// lag-window length.
func NewCrossCorrelation(zwin int) *CrossCorrelation {
	return &CrossCorrelation{ZWin: zwin}
}

// Name returns the algorithm identifier used in configuration and output.
func (c *CrossCorrelation) Name() string { return "crosscorrelation" }

// Fallback is the value substituted for a degenerate (silent) trace: 0,
// treating a dead trace as fully discontinuous.
func (c *CrossCorrelation) Fallback() float64 { return 0 }

// outputDims truncates the iteration domain by one index on each axis,
// reproducing the forward-difference boundary asymmetry.
func (c *CrossCorrelation) outputDims(ni, nj, nk int) (int, int, int) {
	return ni - 1, nj - 1, nk - 1
}

// EstimateAt computes the cross-correlation coherence at voxel (i, j, k).
// Only the sample extent Window.K of the analysis window is used; the
// lateral comparison is fixed to the two immediate forward neighbors of the
// three-trace formulation.
func (c *CrossCorrelation) EstimateAt(vol *models.Volume, w Window, i, j, k int) (float64, error) {
	n := w.K
	hk := w.HalfK()
	zw := c.ZWin / 2

	if len(c.center) != n {
		c.center = make([]float64, n)
	}
	if len(c.neighbor) != n+2*zw {
		c.neighbor = make([]float64, n+2*zw)
	}

	gatherSubTrace(vol.Trace(i, j), k-hk, c.center)
	rmsCenter := rms(c.center)
	if rmsCenter == 0 {
		return 0, &DegenerateTraceError{I: i, J: j, K: k, Trace: "center"}
	}

	scoreX, err := c.directionalScore(vol, rmsCenter, i+1, j, k, hk, zw, "inline neighbor")
	if err != nil {
		return 0, err
	}
	scoreY, err := c.directionalScore(vol, rmsCenter, i, j+1, k, hk, zw, "crossline neighbor")
	if err != nil {
		return 0, err
	}

	product := scoreX * scoreY
	if product < 0 {
		return 0, nil
	}
	return math.Sqrt(product), nil
}

// directionalScore correlates the center segment against one neighbor trace
// over the lag window and returns the normalized peak.
func (c *CrossCorrelation) directionalScore(vol *models.Volume, rmsCenter float64, ni, nj, k, hk, zw int, label string) (float64, error) {
	n := len(c.center)

	gatherSubTrace(vol.Trace(ni, nj), k-hk-zw, c.neighbor)

	// RMS over the zero-lag aligned segment of the neighbor.
	rmsNeighbor := rms(c.neighbor[zw : zw+n])
	if rmsNeighbor == 0 {
		return 0, &DegenerateTraceError{I: ni, J: nj, K: k, Trace: label}
	}

	best := math.Inf(-1)
	for lag := 0; lag <= 2*zw; lag++ {
		corr := floats.Dot(c.center, c.neighbor[lag:lag+n])
		if corr > best {
			best = corr
		}
	}

	return best / (float64(n) * rmsCenter * rmsNeighbor), nil
}

// gatherSubTrace copies len(dst) samples starting at start from the trace
// into dst, mirroring indices that fall outside the trace.
func gatherSubTrace(trace []float64, start int, dst []float64) {
	for t := range dst {
		dst[t] = trace[reflectIndex(start+t, len(trace))]
	}
}

// rms returns the root-mean-square amplitude of the segment.
func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}
