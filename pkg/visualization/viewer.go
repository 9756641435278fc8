// Package visualization exports 2-D sections of a coherence field (or any
// volume) as grayscale images, for inspection with ordinary image tooling.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"seiscoherence/internal/models"
)

// Viewer extracts 2-D sections from a 3-D volume and writes them as
// grayscale JPEG images. Sample values are mapped linearly from [0, 1] to
// the 16-bit gray range and clamped, which matches the nominal range of the
// coherence estimators.
type Viewer struct {
	vol *models.Volume
}

// NewViewer creates a viewer over the given volume.
func NewViewer(vol *models.Volume) *Viewer {
	return &Viewer{vol: vol}
}

// gray maps a sample value to 16-bit grayscale, clamping to [0, 1].
func gray(value float64) color.Gray16 {
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, value*65535)))}
}

// ExtractSection extracts a 2-D section along the named axis:
// "inline" (fixed i, crossline x sample image), "crossline" (fixed j,
// inline x sample image) or "time" (fixed k, inline x crossline image).
func (v *Viewer) ExtractSection(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	vol := v.vol
	var img *image.Gray16

	switch axis {
	case "inline", "i":
		if position >= vol.Ni {
			return nil, fmt.Errorf("position %d exceeds inline count %d", position, vol.Ni)
		}

		img = image.NewGray16(image.Rect(0, 0, vol.Nj, vol.Nk))
		for j := 0; j < vol.Nj; j++ {
			for k := 0; k < vol.Nk; k++ {
				img.SetGray16(j, k, gray(vol.At(position, j, k)))
			}
		}

	case "crossline", "j":
		if position >= vol.Nj {
			return nil, fmt.Errorf("position %d exceeds crossline count %d", position, vol.Nj)
		}

		img = image.NewGray16(image.Rect(0, 0, vol.Ni, vol.Nk))
		for i := 0; i < vol.Ni; i++ {
			for k := 0; k < vol.Nk; k++ {
				img.SetGray16(i, k, gray(vol.At(i, position, k)))
			}
		}

	case "time", "k":
		if position >= vol.Nk {
			return nil, fmt.Errorf("position %d exceeds sample count %d", position, vol.Nk)
		}

		img = image.NewGray16(image.Rect(0, 0, vol.Ni, vol.Nj))
		for i := 0; i < vol.Ni; i++ {
			for j := 0; j < vol.Nj; j++ {
				img.SetGray16(i, j, gray(vol.At(i, j, position)))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be inline, crossline, or time)", axis)
	}

	return img, nil
}

// SaveSection saves an extracted section as a JPEG image
func (v *Viewer) SaveSection(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSectionSequence extracts and saves every section along the specified axis
func (v *Viewer) SaveSectionSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "inline", "i":
		maxPos = v.vol.Ni
	case "crossline", "j":
		maxPos = v.vol.Nj
	case "time", "k":
		maxPos = v.vol.Nk
	default:
		return fmt.Errorf("invalid axis: %s (must be inline, crossline, or time)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSection(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("section_%s_%03d.jpg", axis, pos))
		if err := v.SaveSection(img, filename); err != nil {
			return err
		}
	}

	return nil
}
