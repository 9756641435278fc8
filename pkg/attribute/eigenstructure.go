package attribute

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"seiscoherence/internal/models"
)

// Eigenstructure is the Gersztenkorn–Marfurt eigenstructure coherence
// estimator. It forms the (nTraces x nTraces) covariance-like matrix
// C = R * R^T of inner products between the window's traces and returns the
// fraction of total variance captured by the dominant eigenvalue:
//
//	coherence = lambda_max / sum(lambda)
//
// Because the ratio depends only on the relative directions of the trace
// vectors, it is invariant under uniform positive rescaling of any trace,
// which makes it robust to lateral gain differences (contrast Semblance).
// Range: [1/nTraces, 1].
//
// C is real symmetric positive semi-definite, so the eigenvalues are real
// and non-negative; the decomposition uses gonum's symmetric-specific
// solver, and eigenvalues driven marginally negative by round-off are
// clamped to zero before summing.
type Eigenstructure struct {
	region *Region
	cov    mat.SymDense
	eig    mat.EigenSym
	val    []float64
}

// NewEigenstructure creates an eigenstructure estimator. The estimator
// carries per-instance factorization scratch, so each worker needs its own.
func NewEigenstructure() *Eigenstructure {
	return &Eigenstructure{}
}

// Name returns the algorithm identifier used in configuration and output.
func (e *Eigenstructure) Name() string { return "eigenstructure" }

// Fallback is the value substituted for an all-zero window: 1, treating the
// degenerate zero matrix as trivially coherent.
func (e *Eigenstructure) Fallback() float64 { return 1 }

// EstimateAt gathers the window centered at (i, j, k) and computes its
// eigenstructure coherence.
func (e *Eigenstructure) EstimateAt(vol *models.Volume, w Window, i, j, k int) (float64, error) {
	e.region = ensureRegion(e.region, w)
	e.region.gather(vol, w, i, j, k)
	return e.Estimate(e.region)
}

// Estimate computes the dominant-eigenvalue fraction of the region's trace
// covariance matrix. An all-zero window yields a DegenerateWindowError.
func (e *Eigenstructure) Estimate(r *Region) (float64, error) {
	nTraces := r.NumTraces()

	if !e.cov.IsEmpty() && e.cov.SymmetricDim() != nTraces {
		e.cov.Reset()
	}
	e.cov.SymOuterK(1, r.Traces)

	if !e.eig.Factorize(&e.cov, false) {
		// The symmetric QR iteration essentially always converges for a
		// PSD matrix of this size; treat failure as a degenerate window.
		return 0, &DegenerateWindowError{I: r.I, J: r.J, K: r.K}
	}
	if len(e.val) != nTraces {
		e.val = make([]float64, nTraces)
	}
	e.eig.Values(e.val)

	// EigenSym returns eigenvalues in ascending order.
	for i, v := range e.val {
		if v < 0 {
			e.val[i] = 0
		}
	}
	total := floats.Sum(e.val)
	if total == 0 {
		return 0, &DegenerateWindowError{I: r.I, J: r.J, K: r.K}
	}

	return e.val[len(e.val)-1] / total, nil
}
