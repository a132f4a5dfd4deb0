package nrrd

import "errors"

// Fatal errors returned by the loading pipeline. Each names the exact
// violated invariant so callers can branch on cause with errors.Is.
var (
	// Header format errors
	ErrBadMagic             = errors.New("nrrd: header does not start with NRRD magic")
	ErrUnsupportedDimension = errors.New("nrrd: dimension is not 3")
	ErrInvalidSizes         = errors.New("nrrd: sizes must be exactly 3 positive integers")
	ErrUnsupportedEncoding  = errors.New("nrrd: encoding must be raw")
	ErrUnsupportedEndian    = errors.New("nrrd: endianness not accepted by policy")
	ErrUnsupportedVoxelType = errors.New("nrrd: voxel type not accepted by policy")
	ErrMissingDataFile      = errors.New("nrrd: missing data file field")

	// I/O errors
	ErrNotFound   = errors.New("nrrd: file not found")
	ErrReadFailed = errors.New("nrrd: file could not be read")

	// Post-parse validation errors
	ErrInsufficientSamples = errors.New("nrrd: buffer too small or odd-sized for 16-bit samples")
	ErrInvalidDimensions   = errors.New("nrrd: volume dimensions must be positive")
)

// WarningKind identifies a non-fatal condition observed during a load.
// Warnings never abort a load; they are recorded on the resulting volume
// and delivered to the observer callback when one is installed.
type WarningKind int

const (
	// WarnVoxelType means the header declared a voxel type other than
	// signed 16-bit; the payload is still interpreted as int16 samples.
	WarnVoxelType WarningKind = iota

	// WarnSizeMismatch means the payload file length did not match the
	// length implied by the header dimensions.
	WarnSizeMismatch

	// WarnZeroFill means a short payload was extended with zero samples.
	WarnZeroFill

	// WarnTruncated means surplus payload bytes were discarded at the tail.
	WarnTruncated
)

// String returns a stable name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnVoxelType:
		return "voxel-type-mismatch"
	case WarnSizeMismatch:
		return "payload-size-mismatch"
	case WarnZeroFill:
		return "short-payload-zero-filled"
	case WarnTruncated:
		return "oversized-payload-truncated"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal annotation attached to a successful load.
type Warning struct {
	Kind   WarningKind
	Detail string
}
