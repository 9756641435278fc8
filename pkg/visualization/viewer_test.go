package visualization

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"seiscoherence/internal/models"
)

// testVolume builds a volume where every time level k holds the constant
// value k/Nk, so extracted sections are easy to verify.
func testVolume(ni, nj, nk int) *models.Volume {
	vol := models.NewVolume(ni, nj, nk)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			for k := 0; k < nk; k++ {
				vol.Set(i, j, k, float64(k)/float64(nk))
			}
		}
	}
	return vol
}

// TestExtractSection verifies section dimensions and pixel values along
// each axis.
func TestExtractSection(t *testing.T) {
	vol := testVolume(10, 8, 5)
	viewer := NewViewer(vol)

	// Time sections are constant images of value k/Nk
	for k := 0; k < vol.Nk; k++ {
		img, err := viewer.ExtractSection("time", k)
		if err != nil {
			t.Fatalf("Failed to extract time section %d: %v", k, err)
		}

		bounds := img.Bounds()
		if bounds.Dx() != vol.Ni || bounds.Dy() != vol.Nj {
			t.Errorf("Time section %d: expected %dx%d, got %dx%d",
				k, vol.Ni, vol.Nj, bounds.Dx(), bounds.Dy())
		}

		gray := img.(*image.Gray16)
		want := uint16(float64(k) / float64(vol.Nk) * 65535)
		if got := gray.Gray16At(3, 3).Y; got != want {
			t.Errorf("Time section %d: expected gray %d, got %d", k, want, got)
		}
	}

	// Inline sections are crossline x sample images
	img, err := viewer.ExtractSection("inline", 4)
	if err != nil {
		t.Fatalf("Failed to extract inline section: %v", err)
	}
	if b := img.Bounds(); b.Dx() != vol.Nj || b.Dy() != vol.Nk {
		t.Errorf("Inline section: expected %dx%d, got %dx%d", vol.Nj, vol.Nk, b.Dx(), b.Dy())
	}

	// Crossline sections are inline x sample images
	img, err = viewer.ExtractSection("crossline", 2)
	if err != nil {
		t.Fatalf("Failed to extract crossline section: %v", err)
	}
	if b := img.Bounds(); b.Dx() != vol.Ni || b.Dy() != vol.Nk {
		t.Errorf("Crossline section: expected %dx%d, got %dx%d", vol.Ni, vol.Nk, b.Dx(), b.Dy())
	}
}

// TestExtractSectionErrors verifies position and axis validation
func TestExtractSectionErrors(t *testing.T) {
	viewer := NewViewer(testVolume(4, 4, 4))

	if _, err := viewer.ExtractSection("time", -1); err == nil {
		t.Errorf("Expected error for negative position")
	}

	if _, err := viewer.ExtractSection("time", 4); err == nil {
		t.Errorf("Expected error for out-of-range position")
	}

	if _, err := viewer.ExtractSection("diagonal", 0); err == nil {
		t.Errorf("Expected error for invalid axis")
	}
}

// TestGrayClamping verifies that values outside [0,1] are clamped rather
// than wrapped.
func TestGrayClamping(t *testing.T) {
	vol := models.NewVolume(2, 2, 2)
	vol.Set(0, 0, 0, -0.5)
	vol.Set(1, 0, 0, 1.5)

	viewer := NewViewer(vol)
	img, err := viewer.ExtractSection("time", 0)
	if err != nil {
		t.Fatalf("Failed to extract section: %v", err)
	}

	gray := img.(*image.Gray16)
	if got := gray.Gray16At(0, 0).Y; got != 0 {
		t.Errorf("Expected negative value clamped to 0, got %d", got)
	}
	if got := gray.Gray16At(1, 0).Y; got != 65535 {
		t.Errorf("Expected >1 value clamped to 65535, got %d", got)
	}
}

// TestSaveSectionSequence verifies that a full sequence of section images
// is written to disk.
func TestSaveSectionSequence(t *testing.T) {
	vol := testVolume(4, 4, 3)
	viewer := NewViewer(vol)
	outputDir := filepath.Join(t.TempDir(), "time")

	if err := viewer.SaveSectionSequence("time", outputDir); err != nil {
		t.Fatalf("SaveSectionSequence failed: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	if len(entries) != vol.Nk {
		t.Errorf("Expected %d section images, got %d", vol.Nk, len(entries))
	}

	if err := viewer.SaveSectionSequence("diagonal", outputDir); err == nil {
		t.Errorf("Expected error for invalid axis")
	}
}
