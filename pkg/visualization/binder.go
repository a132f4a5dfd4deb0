package visualization

import "nrrdvol/pkg/nrrd"

// SampleFormat identifies the binary layout of the samples in a bind
// request. The loader produces exactly one format.
type SampleFormat int

// Int16 is a flat little-endian sequence of signed 16-bit samples.
const Int16 SampleFormat = iota

// BindRequest carries everything a rendering consumer needs to upload a
// volume: geometry, the sample buffer, and the intensity range for display
// windowing. Ownership of Data transfers to the consumer with the request.
type BindRequest struct {
	// Dims are the volume dimensions in (x, y, z) order.
	Dims [3]int

	// Spacing is the physical voxel size per axis.
	Spacing [3]float64

	// Origin is the physical-space offset of voxel (0,0,0).
	Origin [3]float64

	// SampleFormat is the binary layout of Data.
	SampleFormat SampleFormat

	// Data is the sample buffer, exactly Dims[0]*Dims[1]*Dims[2] samples.
	Data []byte

	// MinValue and MaxValue bound the sample intensities.
	MinValue int16
	MaxValue int16
}

// Binder is the rendering consumer at its interface boundary. All GPU and
// resource-specific upload mechanics live behind it.
type Binder interface {
	BindVolume(req BindRequest) error
}

// Request builds the bind request for a loaded volume.
func Request(v *nrrd.Volume) BindRequest {
	return BindRequest{
		Dims:         v.Header.Dims,
		Spacing:      v.Header.Spacing,
		Origin:       v.Header.Origin,
		SampleFormat: Int16,
		Data:         v.Data,
		MinValue:     v.Stats.Min,
		MaxValue:     v.Stats.Max,
	}
}
