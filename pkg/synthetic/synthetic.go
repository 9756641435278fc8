// Package synthetic generates simple seismic test volumes: laterally
// continuous layered reflectivity, faulted variants with a known throw, and
// seeded Gaussian noise. The CLI demo and the statistical tests share these
// generators so that expected coherence responses are known in advance.
package synthetic

import (
	"math"
	"math/rand"

	"seiscoherence/internal/models"
)

// Layered returns a volume whose every trace is the same sinusoidal
// reflectivity sequence with the given period in samples. All lateral
// neighbors are identical, so coherence is 1 everywhere for an ideal
// estimator.
func Layered(ni, nj, nk int, period float64) *models.Volume {
	vol := models.NewVolume(ni, nj, nk)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			trace := vol.Trace(i, j)
			for k := range trace {
				trace[k] = math.Sin(2 * math.Pi * float64(k) / period)
			}
		}
	}
	return vol
}

// Faulted returns a layered volume with a vertical fault plane at crossline
// faultJ: traces at j >= faultJ are shifted down the sample axis by throw
// samples. Coherence estimators should dip along the fault plane and stay
// near 1 away from it.
func Faulted(ni, nj, nk int, period float64, faultJ, throw int) *models.Volume {
	vol := models.NewVolume(ni, nj, nk)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			shift := 0
			if j >= faultJ {
				shift = throw
			}
			trace := vol.Trace(i, j)
			for k := range trace {
				trace[k] = math.Sin(2 * math.Pi * float64(k-shift) / period)
			}
		}
	}
	return vol
}

// Noise returns a volume of independent Gaussian samples with the given
// standard deviation, drawn from a fixed seed so test runs are repeatable.
func Noise(ni, nj, nk int, stddev float64, seed int64) *models.Volume {
	rng := rand.New(rand.NewSource(seed))
	vol := models.NewVolume(ni, nj, nk)
	for idx := range vol.Data {
		vol.Data[idx] = rng.NormFloat64() * stddev
	}
	return vol
}

// AddNoise adds seeded Gaussian noise to an existing volume in place and
// returns it.
func AddNoise(vol *models.Volume, stddev float64, seed int64) *models.Volume {
	rng := rand.New(rand.NewSource(seed))
	for idx := range vol.Data {
		vol.Data[idx] += rng.NormFloat64() * stddev
	}
	return vol
}
