// Package models defines the in-memory data types shared between the
// coherence core and the surrounding application: the 3-D seismic volume
// and its acquisition metadata.
package models

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Geometry describes the physical sampling of a volume. It is carried as
// metadata only; the coherence estimators operate on sample indices.
type Geometry struct {
	// SampleInterval is the time between consecutive samples along the
	// depth/time axis, in milliseconds.
	SampleInterval float64

	// InlineSpacing is the physical distance between consecutive inlines
	// in meters.
	InlineSpacing float64

	// CrosslineSpacing is the physical distance between consecutive
	// crosslines in meters.
	CrosslineSpacing float64
}

// Volume is a dense 3-D seismic amplitude array indexed by
// (inline, crossline, sample). Data is stored flat with traces contiguous:
// the sample axis varies fastest, so Trace(i, j) is a sub-slice of Data.
//
// A Volume handed to an attribute computation is treated as read-only for
// the duration of the run.
type Volume struct {
	// Data holds the amplitude samples in (inline, crossline, sample) order.
	Data []float64

	// Ni, Nj, Nk are the inline, crossline and sample counts.
	Ni, Nj, Nk int

	// Geometry is the physical sampling metadata.
	Geometry Geometry
}

// NewVolume allocates a zero-filled volume with the given dimensions.
func NewVolume(ni, nj, nk int) *Volume {
	return &Volume{
		Data: make([]float64, ni*nj*nk),
		Ni:   ni,
		Nj:   nj,
		Nk:   nk,
	}
}

// Index returns the flat offset of voxel (i, j, k).
func (v *Volume) Index(i, j, k int) int {
	return (i*v.Nj+j)*v.Nk + k
}

// At returns the amplitude at voxel (i, j, k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[(i*v.Nj+j)*v.Nk+k]
}

// Set stores an amplitude at voxel (i, j, k).
func (v *Volume) Set(i, j, k int, value float64) {
	v.Data[(i*v.Nj+j)*v.Nk+k] = value
}

// Trace returns the contiguous sample sequence at lateral position (i, j).
// The returned slice aliases the volume data.
func (v *Volume) Trace(i, j int) []float64 {
	base := (i*v.Nj + j) * v.Nk
	return v.Data[base : base+v.Nk]
}

// Validate checks the structural invariants of the volume: every axis
// non-empty and the data length consistent with the dimensions.
func (v *Volume) Validate() error {
	if v.Ni < 1 || v.Nj < 1 || v.Nk < 1 {
		return fmt.Errorf("volume has an empty axis: %dx%dx%d", v.Ni, v.Nj, v.Nk)
	}
	if len(v.Data) != v.Ni*v.Nj*v.Nk {
		return fmt.Errorf("volume data length %d does not match dimensions %dx%dx%d",
			len(v.Data), v.Ni, v.Nj, v.Nk)
	}
	return nil
}

// WriteRaw writes the volume samples as a little-endian float64 stream.
// Only the samples are written; dimensions travel separately (flags or
// configuration), since raw exchange targets tools that already know the
// survey geometry.
func (v *Volume) WriteRaw(w io.Writer) error {
	for _, val := range v.Data {
		if err := binary.Write(w, binary.LittleEndian, val); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	return nil
}

// SaveRaw writes the volume to a file as a little-endian float64 stream.
func (v *Volume) SaveRaw(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create volume file: %w", err)
	}
	defer file.Close()

	return v.WriteRaw(file)
}

// ReadRaw reads ni*nj*nk little-endian float64 samples into a new volume.
func ReadRaw(r io.Reader, ni, nj, nk int) (*Volume, error) {
	if ni < 1 || nj < 1 || nk < 1 {
		return nil, fmt.Errorf("invalid volume dimensions %dx%dx%d", ni, nj, nk)
	}

	v := NewVolume(ni, nj, nk)
	if err := binary.Read(r, binary.LittleEndian, v.Data); err != nil {
		return nil, fmt.Errorf("failed to read %d samples: %w", len(v.Data), err)
	}
	return v, nil
}

// LoadRaw reads a raw little-endian float64 volume from a file.
func LoadRaw(path string, ni, nj, nk int) (*Volume, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume file: %w", err)
	}
	defer file.Close()

	return ReadRaw(file, ni, nj, nk)
}
