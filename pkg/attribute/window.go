package attribute

import "seiscoherence/internal/models"

// Window is the 3-D analysis neighborhood, centered on the output voxel.
// Extents are odd positive integers along the inline, crossline and sample
// axes respectively.
type Window struct {
	I, J, K int
}

// NumTraces returns the number of traces covered by the window.
func (w Window) NumTraces() int { return w.I * w.J }

// HalfI, HalfJ and HalfK are the half-extents on each axis.
func (w Window) HalfI() int { return w.I / 2 }
func (w Window) HalfJ() int { return w.J / 2 }
func (w Window) HalfK() int { return w.K / 2 }

// Validate checks the window against the volume. Even or non-positive
// extents are always rejected; extents exceeding the volume axis are
// rejected only in interior mode, since reflection handles them otherwise.
func (w Window) Validate(vol *models.Volume, boundary BoundaryMode) error {
	axes := []struct {
		name   string
		extent int
		limit  int
	}{
		{"inline", w.I, vol.Ni},
		{"crossline", w.J, vol.Nj},
		{"sample", w.K, vol.Nk},
	}

	for _, a := range axes {
		if a.extent < 1 {
			return &InvalidWindowError{Window: w, Axis: a.name, Reason: "is not positive"}
		}
		if a.extent%2 == 0 {
			return &InvalidWindowError{Window: w, Axis: a.name, Reason: "is even"}
		}
		if boundary == BoundaryInterior && a.extent > a.limit {
			return &InvalidWindowError{Window: w, Axis: a.name, Reason: "exceeds the volume axis"}
		}
	}
	return nil
}

// reflectIndex maps an index that may lie outside [0, extent) back inside by
// mirroring across the boundary: index -m maps to m, index extent-1+m maps
// to extent-1-m. Mirroring preserves local statistics at the edges, where
// zero padding would bias similarity toward false discontinuity.
//
// For very small extents a single reflection can overshoot the far edge, so
// the fold is applied iteratively.
func reflectIndex(idx, extent int) int {
	if extent == 1 {
		return 0
	}
	for idx < 0 || idx >= extent {
		if idx < 0 {
			idx = -idx
		}
		if idx >= extent {
			idx = 2*(extent-1) - idx
		}
	}
	return idx
}
