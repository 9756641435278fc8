package models

import (
	"bytes"
	"testing"
)

// TestVolumeIndexing verifies the trace-contiguous layout: the sample axis
// varies fastest and Trace aliases the backing array.
func TestVolumeIndexing(t *testing.T) {
	vol := NewVolume(2, 3, 4)

	if len(vol.Data) != 2*3*4 {
		t.Fatalf("Expected %d samples, got %d", 2*3*4, len(vol.Data))
	}

	// Fill with a value that encodes the coordinates
	for i := 0; i < vol.Ni; i++ {
		for j := 0; j < vol.Nj; j++ {
			for k := 0; k < vol.Nk; k++ {
				vol.Set(i, j, k, float64(i*100+j*10+k))
			}
		}
	}

	if got := vol.At(1, 2, 3); got != 123 {
		t.Errorf("Expected At(1,2,3)=123, got %v", got)
	}

	// Trace must be a contiguous view over the sample axis
	trace := vol.Trace(1, 2)
	if len(trace) != vol.Nk {
		t.Fatalf("Expected trace length %d, got %d", vol.Nk, len(trace))
	}
	for k := range trace {
		if trace[k] != float64(120+k) {
			t.Errorf("Expected trace[%d]=%d, got %v", k, 120+k, trace[k])
		}
	}

	// Writing through the trace view must be visible in the volume
	trace[0] = -1
	if vol.At(1, 2, 0) != -1 {
		t.Errorf("Trace view does not alias the volume data")
	}
}

// TestVolumeValidate verifies the structural invariant checks
func TestVolumeValidate(t *testing.T) {
	vol := NewVolume(2, 2, 2)
	if err := vol.Validate(); err != nil {
		t.Errorf("Expected valid volume, got error: %v", err)
	}

	empty := &Volume{Ni: 0, Nj: 2, Nk: 2}
	if err := empty.Validate(); err == nil {
		t.Errorf("Expected error for empty axis")
	}

	mismatched := &Volume{Data: make([]float64, 3), Ni: 2, Nj: 2, Nk: 2}
	if err := mismatched.Validate(); err == nil {
		t.Errorf("Expected error for mismatched data length")
	}
}

// TestRawRoundTrip verifies that a volume survives the raw little-endian
// write/read cycle unchanged.
func TestRawRoundTrip(t *testing.T) {
	vol := NewVolume(3, 2, 5)
	for idx := range vol.Data {
		vol.Data[idx] = float64(idx) * 0.25
	}

	var buf bytes.Buffer
	if err := vol.WriteRaw(&buf); err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}

	if buf.Len() != len(vol.Data)*8 {
		t.Errorf("Expected %d bytes, got %d", len(vol.Data)*8, buf.Len())
	}

	loaded, err := ReadRaw(&buf, 3, 2, 5)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	for idx := range vol.Data {
		if loaded.Data[idx] != vol.Data[idx] {
			t.Fatalf("Sample %d changed in round trip: %v != %v", idx, loaded.Data[idx], vol.Data[idx])
		}
	}
}

// TestReadRawErrors verifies dimension and short-read error handling
func TestReadRawErrors(t *testing.T) {
	if _, err := ReadRaw(bytes.NewReader(nil), 0, 1, 1); err == nil {
		t.Errorf("Expected error for zero dimension")
	}

	// Too few bytes for the requested dimensions
	short := bytes.NewReader(make([]byte, 8))
	if _, err := ReadRaw(short, 2, 2, 2); err == nil {
		t.Errorf("Expected error for short input")
	}
}
