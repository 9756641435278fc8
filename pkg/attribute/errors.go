package attribute

import "fmt"

// InvalidWindowError reports a malformed analysis window: an even or
// non-positive extent, or (in interior mode) an extent larger than the
// volume axis it slides along. Detected before the windowed pass begins.
type InvalidWindowError struct {
	Window Window
	Axis   string
	Reason string
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid window %dx%dx%d: %s extent %s",
		e.Window.I, e.Window.J, e.Window.K, e.Axis, e.Reason)
}

// EmptyVolumeError reports an input volume with a zero-sized axis.
type EmptyVolumeError struct {
	Ni, Nj, Nk int
}

func (e *EmptyVolumeError) Error() string {
	return fmt.Sprintf("empty volume: dimensions %dx%dx%d", e.Ni, e.Nj, e.Nk)
}

// DegenerateTraceError reports a zero-RMS (silent) trace encountered by the
// cross-correlation normalization at a specific voxel. It is a per-voxel
// condition: the pass substitutes the estimator fallback and continues.
type DegenerateTraceError struct {
	I, J, K int
	Trace   string
}

func (e *DegenerateTraceError) Error() string {
	return fmt.Sprintf("degenerate %s trace at voxel (%d,%d,%d): zero RMS amplitude",
		e.Trace, e.I, e.J, e.K)
}

// DegenerateWindowError reports a zero-energy analysis window, for which the
// semblance and eigenstructure ratios are undefined. Per-voxel; the pass
// substitutes the estimator fallback and continues.
type DegenerateWindowError struct {
	I, J, K int
}

func (e *DegenerateWindowError) Error() string {
	return fmt.Sprintf("degenerate window at voxel (%d,%d,%d): zero total energy",
		e.I, e.J, e.K)
}
