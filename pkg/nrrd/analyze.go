package nrrd

import (
	"encoding/binary"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// maxStatSamples caps how many samples feed the mean/stddev summary so the
// side-channel never doubles the memory footprint of a large volume.
const maxStatSamples = 1 << 16

// Stats summarizes the interpreted 16-bit sample stream. Min and Max drive
// display windowing in the consumer; Mean and StdDev are carried for
// consumers that prefer a sigma-based window.
type Stats struct {
	Min    int16
	Max    int16
	Mean   float64
	StdDev float64
}

// Analyze normalizes byte order and computes summary statistics over the
// sample stream. It consumes ownership of buf: when littleEndian is false
// every byte pair is swapped in place, and the returned slice (aliasing
// buf) is the normalized buffer the assembler must use. The swap is
// self-inverse, so running it twice restores the original byte sequence.
//
// Values pass through raw: 16-bit signed, no clamping, no scaling.
func Analyze(buf []byte, littleEndian bool) (Stats, []byte, error) {
	if len(buf) < BytesPerVoxel || len(buf)%BytesPerVoxel != 0 {
		return Stats{}, nil, fmt.Errorf("%w: %d bytes", ErrInsufficientSamples, len(buf))
	}

	if !littleEndian {
		for i := 0; i < len(buf); i += 2 {
			buf[i], buf[i+1] = buf[i+1], buf[i]
		}
	}

	n := len(buf) / BytesPerVoxel
	stride := n / maxStatSamples
	if stride < 1 {
		stride = 1
	}
	sampled := make([]float64, 0, n/stride+1)

	first := int16(binary.LittleEndian.Uint16(buf))
	s := Stats{Min: first, Max: first}

	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(buf[i*2:]))
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		if i%stride == 0 {
			sampled = append(sampled, float64(v))
		}
	}

	s.Mean, s.StdDev = stat.MeanStdDev(sampled, nil)
	return s, buf, nil
}
