// Package attribute computes discontinuity (coherence) attributes over 3-D
// seismic volumes. A sliding 3-D analysis window visits every output voxel,
// gathers the neighboring samples, and applies one of three estimators:
//
//   - CrossCorrelation: normalized cross-correlation peaks against the two
//     forward lateral neighbors (Bahorich & Farmer, 1995)
//   - Semblance: stacked-energy over total-energy ratio (Marfurt et al., 1998)
//   - Eigenstructure: dominant-eigenvalue fraction of the trace covariance
//     matrix (Gersztenkorn & Marfurt, 1999)
//
// Every voxel's estimate is a pure function of its local window, so the pass
// is parallelized across inline sections with a fixed worker pool. The
// input volume is read-only for the duration of a run and no two workers
// write the same output cell.
package attribute

import (
	"fmt"
	"sync"

	"seiscoherence/internal/models"
)

// Algorithm selects one of the coherence estimators.
type Algorithm string

const (
	AlgorithmCrossCorrelation Algorithm = "crosscorrelation"
	AlgorithmSemblance        Algorithm = "semblance"
	AlgorithmEigenstructure   Algorithm = "eigenstructure"
)

// BoundaryMode selects how windows that extend past a volume edge are
// handled.
type BoundaryMode string

const (
	// BoundaryReflect mirrors out-of-range indices across the edge, so the
	// output covers the full volume extent.
	BoundaryReflect BoundaryMode = "reflect"

	// BoundaryInterior computes only voxels whose window lies fully inside
	// the volume; the remaining border cells are left at zero.
	BoundaryInterior BoundaryMode = "interior"
)

// Estimator computes one coherence value for the analysis window centered
// at a voxel. Implementations may carry scratch buffers and are therefore
// not safe for concurrent use; the pass creates one instance per worker.
type Estimator interface {
	// Name is the algorithm identifier used in configuration and output.
	Name() string

	// Fallback is the documented value substituted at voxels where the
	// estimate is numerically undefined (zero-variance or zero-energy
	// input).
	Fallback() float64

	// EstimateAt computes the coherence at voxel (i, j, k).
	EstimateAt(vol *models.Volume, w Window, i, j, k int) (float64, error)
}

// domainRestricted is implemented by estimators whose own neighbor-offset
// formulation shrinks the iteration domain below the volume extent.
type domainRestricted interface {
	outputDims(ni, nj, nk int) (int, int, int)
}

// Params holds the configuration of one attribute run.
type Params struct {
	// Algorithm selects the estimator.
	Algorithm Algorithm

	// Window is the 3-D analysis window (odd extents).
	Window Window

	// ZWin is the cross-correlation lag-window length in samples.
	// Ignored by the other algorithms.
	ZWin int

	// Boundary selects edge handling for the centered-window estimators.
	// The cross-correlation estimator fixes its own policy (truncated
	// iteration domain plus sample-axis reflection) and ignores this.
	Boundary BoundaryMode

	// NumCores is the number of parallel workers.
	NumCores int

	// Verbose enables progress reporting on stdout.
	Verbose bool
}

// DegenerateVoxel records one voxel where the estimator hit a numerical
// degeneracy and the fallback value was substituted.
type DegenerateVoxel struct {
	I, J, K int
	Reason  string
}

// maxDegenerateRecords caps the per-run sample of degenerate voxels kept in
// Stats; the count is always exact.
const maxDegenerateRecords = 64

// Stats summarizes an attribute run.
type Stats struct {
	// Voxels is the number of output voxels computed.
	Voxels int

	// DegenerateCount is the number of voxels that received the fallback
	// value.
	DegenerateCount int

	// Degenerate is a sample of the degenerate voxels, capped at
	// maxDegenerateRecords entries.
	Degenerate []DegenerateVoxel
}

// Computer runs a coherence attribute computation over one volume. Create
// it with NewComputer, call Run, then read the result with Field and Stats.
type Computer struct {
	vol    *models.Volume
	params *Params
	field  *models.Volume
	stats  Stats
}

// NewComputer creates a computer for the given volume and run parameters.
func NewComputer(vol *models.Volume, params *Params) *Computer {
	return &Computer{vol: vol, params: params}
}

// Compute is the one-shot form: validate, run, and return the output field.
func Compute(vol *models.Volume, params *Params) (*models.Volume, error) {
	c := NewComputer(vol, params)
	if err := c.Run(); err != nil {
		return nil, err
	}
	return c.Field(), nil
}

// Field returns the computed coherence field. It matches the input volume
// shape, except for the cross-correlation estimator, whose forward-neighbor
// formulation truncates each axis by one.
func (c *Computer) Field() *models.Volume { return c.field }

// Stats returns the statistics of the last run.
func (c *Computer) Stats() Stats { return c.stats }

// newEstimator builds a fresh estimator instance for one worker.
func (c *Computer) newEstimator() (Estimator, error) {
	switch c.params.Algorithm {
	case AlgorithmCrossCorrelation:
		return NewCrossCorrelation(c.params.ZWin), nil
	case AlgorithmSemblance:
		return NewSemblance(), nil
	case AlgorithmEigenstructure:
		return NewEigenstructure(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", c.params.Algorithm)
	}
}

// validate checks the run configuration against the volume. Configuration
// errors abort the whole computation before the windowed pass begins.
func (c *Computer) validate() error {
	if c.vol == nil || c.vol.Ni < 1 || c.vol.Nj < 1 || c.vol.Nk < 1 {
		ni, nj, nk := 0, 0, 0
		if c.vol != nil {
			ni, nj, nk = c.vol.Ni, c.vol.Nj, c.vol.Nk
		}
		return &EmptyVolumeError{Ni: ni, Nj: nj, Nk: nk}
	}
	if err := c.vol.Validate(); err != nil {
		return err
	}
	if err := c.params.Window.Validate(c.vol, c.params.Boundary); err != nil {
		return err
	}
	if c.params.Algorithm == AlgorithmCrossCorrelation {
		if c.params.ZWin < 1 {
			return &InvalidWindowError{Window: c.params.Window, Axis: "lag", Reason: "is not positive"}
		}
		if c.vol.Ni < 2 || c.vol.Nj < 2 || c.vol.Nk < 2 {
			return fmt.Errorf("cross-correlation needs at least 2 indices on every axis for forward neighbors, volume is %dx%dx%d",
				c.vol.Ni, c.vol.Nj, c.vol.Nk)
		}
	}
	return nil
}

// sectionResult carries one worker's results for a single inline section
// back to the collector.
type sectionResult struct {
	voxels     int
	degenerate []DegenerateVoxel
}

// Run executes the attribute pass. The output field is allocated once,
// filled voxel by voxel, and exposed through Field. Per-voxel numerical
// degeneracies substitute the estimator's fallback value and are tallied in
// Stats; they never abort the pass, and the field contains no NaN/Inf.
func (c *Computer) Run() error {
	if err := c.validate(); err != nil {
		return err
	}

	probe, err := c.newEstimator()
	if err != nil {
		return err
	}

	// Output extent: full volume unless the estimator truncates it.
	no, mo, ko := c.vol.Ni, c.vol.Nj, c.vol.Nk
	if dr, ok := probe.(domainRestricted); ok {
		no, mo, ko = dr.outputDims(no, mo, ko)
	}

	c.field = models.NewVolume(no, mo, ko)
	c.field.Geometry = c.vol.Geometry
	c.stats = Stats{}

	// Iteration bounds within the output extent. In interior mode the
	// centered-window estimators skip the border instead of reflecting.
	w := c.params.Window
	iLo, iHi := 0, no
	jLo, jHi := 0, mo
	kLo, kHi := 0, ko
	if _, restricted := probe.(domainRestricted); !restricted && c.params.Boundary == BoundaryInterior {
		iLo, iHi = w.HalfI(), no-w.HalfI()
		jLo, jHi = w.HalfJ(), mo-w.HalfJ()
		kLo, kHi = w.HalfK(), ko-w.HalfK()
	}

	numCores := c.params.NumCores
	if numCores < 1 {
		numCores = 1
	}

	jobs := make(chan int, numCores)
	results := make(chan sectionResult, numCores)

	var wg sync.WaitGroup
	var workerErr error
	var errOnce sync.Once

	for n := 0; n < numCores; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			est, err := c.newEstimator()
			if err != nil {
				errOnce.Do(func() { workerErr = err })
				for range jobs {
					// Drain so the feeder can finish.
				}
				return
			}

			for i := range jobs {
				res := sectionResult{}
				for j := jLo; j < jHi; j++ {
					for k := kLo; k < kHi; k++ {
						value, err := est.EstimateAt(c.vol, w, i, j, k)
						if err != nil {
							value = est.Fallback()
							res.degenerate = append(res.degenerate, DegenerateVoxel{
								I: i, J: j, K: k, Reason: err.Error(),
							})
						}
						c.field.Set(i, j, k, value)
						res.voxels++
					}
				}
				results <- res
			}
		}()
	}

	go func() {
		for i := iLo; i < iHi; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Collect per-section results and track progress.
	totalSections := iHi - iLo
	completed := 0
	for res := range results {
		completed++
		c.stats.Voxels += res.voxels
		c.stats.DegenerateCount += len(res.degenerate)
		for _, d := range res.degenerate {
			if len(c.stats.Degenerate) >= maxDegenerateRecords {
				break
			}
			c.stats.Degenerate = append(c.stats.Degenerate, d)
		}
		if c.params.Verbose && totalSections > 0 {
			progress := float64(completed) / float64(totalSections) * 100
			fmt.Printf("\rComputing %s attribute: %.1f%% complete", probe.Name(), progress)
		}
	}
	if c.params.Verbose {
		fmt.Println()
	}

	if workerErr != nil {
		return workerErr
	}
	return nil
}
