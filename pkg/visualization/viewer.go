// Package visualization exposes the rendering-consumer boundary for loaded
// volumes and a CPU-side viewer that extracts display-windowed 2D slices.
package visualization

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"nrrdvol/pkg/nrrd"
)

// Viewer extracts 2D slices from a loaded volume, windowing the raw int16
// intensities into the display range using the volume's min/max statistics.
type Viewer struct {
	// data holds the volume's little-endian int16 samples
	data []byte

	// dimensions of the volume
	width  int
	height int
	depth  int

	// window bounds mapped to black and white
	min int16
	max int16

	// quality is the JPEG quality for saved slices
	quality int
}

// NewViewer creates a viewer over a loaded volume. The window defaults to
// the volume's computed min/max.
func NewViewer(v *nrrd.Volume, quality int) *Viewer {
	return &Viewer{
		data:    v.Data,
		width:   v.Header.Dims[0],
		height:  v.Header.Dims[1],
		depth:   v.Header.Dims[2],
		min:     v.Stats.Min,
		max:     v.Stats.Max,
		quality: quality,
	}
}

// SetWindow overrides the intensity range mapped onto the display range.
func (v *Viewer) SetWindow(min, max int16) {
	v.min = min
	v.max = max
}

// sample returns the raw intensity at (x, y, z); x varies fastest.
func (v *Viewer) sample(x, y, z int) int16 {
	idx := (z*v.height*v.width + y*v.width + x) * 2
	return int16(binary.LittleEndian.Uint16(v.data[idx:]))
}

// window maps a raw intensity into the 16-bit gray display range.
func (v *Viewer) window(value int16) uint16 {
	if v.max <= v.min {
		return 0
	}
	if value <= v.min {
		return 0
	}
	if value >= v.max {
		return 65535
	}
	return uint16(int64(value-v.min) * 65535 / int64(v.max-v.min))
}

// ExtractSlice extracts a 2D slice from the volume along the specified axis
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// Extract slice along YZ plane
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}

		img = image.NewGray16(image.Rect(0, 0, v.depth, v.height))
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				img.SetGray16(z, y, color.Gray16{Y: v.window(v.sample(position, y, z))})
			}
		}

	case "y", "Y":
		// Extract slice along XZ plane
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}

		img = image.NewGray16(image.Rect(0, 0, v.width, v.depth))
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				img.SetGray16(x, z, color.Gray16{Y: v.window(v.sample(x, position, z))})
			}
		}

	case "z", "Z":
		// Extract slice along XY plane
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}

		img = image.NewGray16(image.Rect(0, 0, v.width, v.height))
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				img.SetGray16(x, y, color.Gray16{Y: v.window(v.sample(x, y, position))})
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// SaveSlice saves an extracted slice as a JPEG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: v.quality})
}

// SaveSliceSequence extracts and saves a sequence of slices along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.width
	case "y", "Y":
		maxPos = v.height
	case "z", "Z":
		maxPos = v.depth
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
