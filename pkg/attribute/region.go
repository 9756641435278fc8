package attribute

import (
	"gonum.org/v1/gonum/mat"

	"seiscoherence/internal/models"
)

// Region is the transient sub-tensor of volume samples inside one window
// placement, flattened to an (nTraces x nSamples) matrix: one row per
// lateral position in the window, samples along the row. It is created,
// consumed and discarded per output voxel; estimators must not retain it.
type Region struct {
	// Traces is the (nTraces x nSamples) sample matrix.
	Traces *mat.Dense

	// I, J, K are the coordinates of the output voxel the window is
	// centered on, carried for degeneracy reporting.
	I, J, K int
}

// NumTraces returns the number of rows in the region.
func (r *Region) NumTraces() int {
	n, _ := r.Traces.Dims()
	return n
}

// NumSamples returns the number of columns in the region.
func (r *Region) NumSamples() int {
	_, n := r.Traces.Dims()
	return n
}

// newRegion allocates a region sized for the window. One region is reused
// per worker across all of its voxels to keep the pass allocation-free.
func newRegion(w Window) *Region {
	return &Region{Traces: mat.NewDense(w.NumTraces(), w.K, nil)}
}

// ensureRegion returns r if it matches the window dimensions, otherwise a
// freshly sized region.
func ensureRegion(r *Region, w Window) *Region {
	if r == nil || r.NumTraces() != w.NumTraces() || r.NumSamples() != w.K {
		return newRegion(w)
	}
	return r
}

// gather fills the region with the window centered at (i, j, k), mirroring
// indices that fall outside the volume. The caller guarantees via Validate
// that the window itself is well formed.
func (r *Region) gather(vol *models.Volume, w Window, i, j, k int) {
	r.I, r.J, r.K = i, j, k

	hi, hj, hk := w.HalfI(), w.HalfJ(), w.HalfK()
	row := 0
	for di := -hi; di <= hi; di++ {
		si := reflectIndex(i+di, vol.Ni)
		for dj := -hj; dj <= hj; dj++ {
			sj := reflectIndex(j+dj, vol.Nj)
			trace := vol.Trace(si, sj)
			dst := r.Traces.RawRowView(row)
			for dk := -hk; dk <= hk; dk++ {
				dst[dk+hk] = trace[reflectIndex(k+dk, vol.Nk)]
			}
			row++
		}
	}
}
