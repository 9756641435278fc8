package attribute

import (
	"gonum.org/v1/gonum/floats"

	"seiscoherence/internal/models"
)

// Semblance is the Marfurt-style semblance coherence estimator. It measures
// the ratio of stacked-trace energy to total trace energy within the window:
//
//	semblance = sum_t (sum_traces a)^2 / (nTraces * sum a^2)
//
// The estimate is 1 for identical traces and tends toward 1/nTraces for
// uncorrelated noise of equal energy. Unlike the eigenstructure estimator,
// semblance is amplitude-sensitive: lateral gain differences lower the score
// even when waveforms match.
//
// Values are nominally in [0, 1] and are not clamped; floating-point noise
// can leave results marginally outside the range.
type Semblance struct {
	region *Region
}

// NewSemblance creates a semblance estimator.
func NewSemblance() *Semblance {
	return &Semblance{}
}

// Name returns the algorithm identifier used in configuration and output.
func (s *Semblance) Name() string { return "semblance" }

// Fallback is the value substituted for a zero-energy window: 0, since zero
// energy means there is no signal to be coherent.
func (s *Semblance) Fallback() float64 { return 0 }

// EstimateAt gathers the window centered at (i, j, k) and computes its
// semblance.
func (s *Semblance) EstimateAt(vol *models.Volume, w Window, i, j, k int) (float64, error) {
	s.region = ensureRegion(s.region, w)
	s.region.gather(vol, w, i, j, k)
	return s.Estimate(s.region)
}

// Estimate computes the semblance of the region. A zero-energy window
// yields a DegenerateWindowError.
func (s *Semblance) Estimate(r *Region) (float64, error) {
	nTraces := r.NumTraces()
	nSamples := r.NumSamples()

	// Total energy across all trace-sample entries.
	energy := 0.0
	for tr := 0; tr < nTraces; tr++ {
		row := r.Traces.RawRowView(tr)
		energy += floats.Dot(row, row)
	}
	if energy == 0 {
		return 0, &DegenerateWindowError{I: r.I, J: r.J, K: r.K}
	}

	// Energy of the stacked trace.
	stacked := 0.0
	for t := 0; t < nSamples; t++ {
		sum := 0.0
		for tr := 0; tr < nTraces; tr++ {
			sum += r.Traces.At(tr, t)
		}
		stacked += sum * sum
	}

	return stacked / (float64(nTraces) * energy), nil
}
