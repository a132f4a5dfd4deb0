package nrrd

import "fmt"

// Volume is the finished artifact handed across the system boundary to the
// rendering or analysis consumer. It owns its byte buffer exclusively until
// the consumer takes it over.
type Volume struct {
	// Header is the validated metadata the volume was built from.
	Header Header

	// Data holds exactly Header.ExpectedBytes() little-endian int16
	// samples, row-major with x fastest, then y, then z.
	Data []byte

	// Stats are the summary statistics computed over Data.
	Stats Stats

	// Warnings are the non-fatal annotations accumulated during the load.
	Warnings []Warning
}

// Assemble normalizes the buffer length against the header dimensions and
// builds the final volume. A short buffer is extended with zero samples
// (missing data becomes neutral signal instead of a failed load); an
// oversized buffer is truncated at the tail. Both adjustments annotate the
// result with a warning. The byte count is computed in 64-bit arithmetic.
func Assemble(h *Header, buf []byte, stats Stats) (*Volume, error) {
	if h.Dims[0] <= 0 || h.Dims[1] <= 0 || h.Dims[2] <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions,
			h.Dims[0], h.Dims[1], h.Dims[2])
	}

	expected := h.ExpectedBytes()
	have := int64(len(buf))

	var warnings []Warning
	switch {
	case have < expected:
		buf = append(buf, make([]byte, expected-have)...)
		warnings = append(warnings, Warning{
			Kind:   WarnZeroFill,
			Detail: fmt.Sprintf("zero-filled %d missing bytes of %d", expected-have, expected),
		})
	case have > expected:
		buf = buf[:expected]
		warnings = append(warnings, Warning{
			Kind:   WarnTruncated,
			Detail: fmt.Sprintf("discarded %d surplus bytes beyond %d", have-expected, expected),
		})
	}

	return &Volume{
		Header:   *h,
		Data:     buf,
		Stats:    stats,
		Warnings: warnings,
	}, nil
}
