package visualization

import (
	"encoding/binary"
	"image"
	"os"
	"path/filepath"
	"testing"

	"nrrdvol/pkg/nrrd"
)

// testVolume builds a 2x2x2 volume whose samples count upward from -100 in
// steps of 50, giving a window of [-100, 250].
func testVolume() *nrrd.Volume {
	samples := []int16{-100, -50, 0, 50, 100, 150, 200, 250}
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return &nrrd.Volume{
		Header: nrrd.Header{
			Dims:    [3]int{2, 2, 2},
			Spacing: [3]float64{1, 1, 2.5},
			Origin:  [3]float64{0, 0, -10},
		},
		Data:  data,
		Stats: nrrd.Stats{Min: -100, Max: 250},
	}
}

// TestRequest verifies the bind request mirrors the descriptor exactly.
func TestRequest(t *testing.T) {
	v := testVolume()
	req := Request(v)

	if req.Dims != v.Header.Dims {
		t.Errorf("Dims = %v", req.Dims)
	}
	if req.Spacing != v.Header.Spacing || req.Origin != v.Header.Origin {
		t.Error("Geometry not carried into bind request")
	}
	if req.SampleFormat != Int16 {
		t.Errorf("SampleFormat = %v, want Int16", req.SampleFormat)
	}
	if req.MinValue != -100 || req.MaxValue != 250 {
		t.Errorf("Window = [%d, %d], want [-100, 250]", req.MinValue, req.MaxValue)
	}
	if len(req.Data) != len(v.Data) {
		t.Errorf("len(Data) = %d, want %d", len(req.Data), len(v.Data))
	}
}

// TestExtractSliceWindowing verifies raw intensities map onto the Gray16
// display range using the volume's min/max window.
func TestExtractSliceWindowing(t *testing.T) {
	viewer := NewViewer(testVolume(), 90)

	img, err := viewer.ExtractSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	gray, ok := img.(*image.Gray16)
	if !ok {
		t.Fatalf("Expected *image.Gray16, got %T", img)
	}
	if gray.Bounds().Dx() != 2 || gray.Bounds().Dy() != 2 {
		t.Fatalf("Bounds = %v, want 2x2", gray.Bounds())
	}

	// Sample -100 sits at the window floor, 250 at the ceiling.
	if v := gray.Gray16At(0, 0).Y; v != 0 {
		t.Errorf("Window floor maps to %d, want 0", v)
	}
	img2, err := viewer.ExtractSlice("z", 1)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	if v := img2.(*image.Gray16).Gray16At(1, 1).Y; v != 65535 {
		t.Errorf("Window ceiling maps to %d, want 65535", v)
	}
}

// TestExtractSliceAxes verifies each axis yields the right plane shape and
// out-of-range positions are rejected.
func TestExtractSliceAxes(t *testing.T) {
	viewer := NewViewer(testVolume(), 90)

	cases := []struct {
		axis   string
		dx, dy int
	}{
		{"x", 2, 2},
		{"y", 2, 2},
		{"z", 2, 2},
	}
	for _, tc := range cases {
		img, err := viewer.ExtractSlice(tc.axis, 0)
		if err != nil {
			t.Fatalf("ExtractSlice(%s) failed: %v", tc.axis, err)
		}
		if img.Bounds().Dx() != tc.dx || img.Bounds().Dy() != tc.dy {
			t.Errorf("%s slice bounds = %v", tc.axis, img.Bounds())
		}
	}

	if _, err := viewer.ExtractSlice("z", 2); err == nil {
		t.Error("Expected error for out-of-range position")
	}
	if _, err := viewer.ExtractSlice("w", 0); err == nil {
		t.Error("Expected error for invalid axis")
	}
}

// TestSaveSliceSequence verifies one JPEG per slice lands in the output dir.
func TestSaveSliceSequence(t *testing.T) {
	viewer := NewViewer(testVolume(), 90)
	dir := filepath.Join(t.TempDir(), "z")

	if err := viewer.SaveSliceSequence("z", dir); err != nil {
		t.Fatalf("SaveSliceSequence failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 slices, got %d", len(entries))
	}
	if entries[0].Name() != "slice_z_000.jpg" {
		t.Errorf("Unexpected filename %q", entries[0].Name())
	}
}

// TestSetWindow verifies an overridden window changes the mapping.
func TestSetWindow(t *testing.T) {
	viewer := NewViewer(testVolume(), 90)
	viewer.SetWindow(0, 100)

	img, err := viewer.ExtractSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	// Samples below the window floor clamp to black.
	if v := img.(*image.Gray16).Gray16At(1, 0).Y; v != 0 {
		t.Errorf("Sample -50 maps to %d with window [0,100], want 0", v)
	}
	// Sample 50 is mid-window.
	if v := img.(*image.Gray16).Gray16At(1, 1).Y; v != 65535/2 {
		t.Errorf("Sample 50 maps to %d, want %d", v, 65535/2)
	}
}
