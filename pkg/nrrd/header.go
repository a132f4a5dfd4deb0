// Package nrrd loads paired text-header/binary-payload volumetric images
// (a .nhdr header plus a separate .raw data file) into dimensionally
// validated in-memory volumes of signed 16-bit samples, ready to hand to a
// rendering or analysis consumer.
package nrrd

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// BytesPerVoxel is the size of one sample. The pipeline has exactly one
// supported binary layout: signed 16-bit integers.
const BytesPerVoxel = 2

// Policy selects between the strict and lenient parser variants. The zero
// value is the lenient policy: a declared voxel type other than int16 is a
// warning, and big-endian payloads are normalized with a byte swap instead
// of rejected.
type Policy struct {
	// StrictType rejects headers whose declared voxel type is not
	// short/int16 with ErrUnsupportedVoxelType.
	StrictType bool

	// StrictEndian rejects headers declaring a non-little endianness
	// with ErrUnsupportedEndian.
	StrictEndian bool
}

// Header holds the validated metadata parsed from a .nhdr header.
type Header struct {
	// Dims are the volume dimensions in (columns, rows, slices) order,
	// remapped from the native (slices, rows, columns) order the
	// exporter writes.
	Dims [3]int

	// VoxelType is the declared sample type, recorded verbatim.
	VoxelType string

	// Encoding is the declared payload encoding; only "raw" is accepted.
	Encoding string

	// LittleEndian is false only when the header declared a non-little
	// endianness and the lenient policy recorded it for a later swap.
	LittleEndian bool

	// DataFileName points at the companion binary file, relative to the
	// header's directory unless absolute.
	DataFileName string

	// Spacing is the physical voxel size per axis in (x, y, z) order.
	// Defaults to unit spacing when the header carries no geometry.
	Spacing [3]float64

	// Origin is the physical-space offset of voxel (0,0,0).
	Origin [3]float64
}

// ExpectedBytes returns the payload length implied by the dimensions,
// computed in 64-bit arithmetic so large volumes cannot overflow.
func (h *Header) ExpectedBytes() int64 {
	return int64(h.Dims[0]) * int64(h.Dims[1]) * int64(h.Dims[2]) * BytesPerVoxel
}

// ParseHeader parses and validates NRRD header text. Unknown keys are
// ignored for forward compatibility. Non-fatal findings are returned as
// warnings next to the header; any violated invariant yields its distinct
// sentinel error and no header.
func ParseHeader(text string, policy Policy) (*Header, []Warning, error) {
	h := &Header{
		LittleEndian: true,
		Spacing:      [3]float64{1, 1, 1},
	}
	var warnings []Warning

	lines := strings.Split(text, "\n")

	// The first non-empty line must carry the format magic.
	rest := lines
	magic := false
	for len(rest) > 0 {
		first := strings.TrimSpace(rest[0])
		if first == "" {
			rest = rest[1:]
			continue
		}
		if !strings.HasPrefix(first, "NRRD") {
			return nil, nil, fmt.Errorf("%w: first line %q", ErrBadMagic, first)
		}
		rest = rest[1:]
		magic = true
		break
	}
	if !magic {
		return nil, nil, ErrBadMagic
	}

	dimension := 0
	sizesSeen := false

	for _, raw := range rest {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "dimension":
			d, err := strconv.Atoi(value)
			if err != nil || d != 3 {
				return nil, nil, fmt.Errorf("%w: got %q", ErrUnsupportedDimension, value)
			}
			dimension = d

		case "sizes":
			sizes, err := parseSizes(value)
			if err != nil {
				return nil, nil, err
			}
			// Native order is (slices, rows, columns); storage
			// order is (columns, rows, slices).
			h.Dims[0] = sizes[2]
			h.Dims[1] = sizes[1]
			h.Dims[2] = sizes[0]
			sizesSeen = true

		case "type":
			h.VoxelType = value
			lower := strings.ToLower(value)
			if lower != "short" && lower != "int16" {
				if policy.StrictType {
					return nil, nil, fmt.Errorf("%w: declared %q", ErrUnsupportedVoxelType, value)
				}
				warnings = append(warnings, Warning{
					Kind:   WarnVoxelType,
					Detail: fmt.Sprintf("declared voxel type %q, interpreting as int16", value),
				})
			}

		case "encoding":
			h.Encoding = value
			if !strings.EqualFold(value, "raw") {
				return nil, nil, fmt.Errorf("%w: got %q", ErrUnsupportedEncoding, value)
			}

		case "endian":
			if strings.EqualFold(value, "little") {
				h.LittleEndian = true
			} else if policy.StrictEndian {
				return nil, nil, fmt.Errorf("%w: declared %q", ErrUnsupportedEndian, value)
			} else {
				h.LittleEndian = false
			}

		case "data file":
			h.DataFileName = value

		case "spacings":
			if s, ok := parseSpacings(value); ok {
				h.Spacing = s
			}

		case "space directions":
			if s, ok := parseSpaceDirections(value); ok {
				h.Spacing = s
			}

		case "space origin":
			if o, ok := parseTriple(value); ok {
				h.Origin = o
			}
		}
	}

	// Final validity gate; each violation keeps its own cause.
	if dimension != 3 {
		return nil, nil, fmt.Errorf("%w: header declares %d", ErrUnsupportedDimension, dimension)
	}
	if !sizesSeen || h.Dims[0] <= 0 || h.Dims[1] <= 0 || h.Dims[2] <= 0 {
		return nil, nil, ErrInvalidSizes
	}
	if !strings.EqualFold(h.Encoding, "raw") {
		return nil, nil, fmt.Errorf("%w: got %q", ErrUnsupportedEncoding, h.Encoding)
	}
	if h.DataFileName == "" {
		return nil, nil, ErrMissingDataFile
	}

	return h, warnings, nil
}

// parseSizes tokenizes a sizes value into exactly 3 positive integers in
// the header's native order.
func parseSizes(value string) ([3]int, error) {
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return [3]int{}, fmt.Errorf("%w: %d tokens", ErrInvalidSizes, len(fields))
	}
	var sizes [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v <= 0 {
			return [3]int{}, fmt.Errorf("%w: token %q", ErrInvalidSizes, f)
		}
		sizes[i] = v
	}
	return sizes, nil
}

// parseSpacings reads a plain whitespace-separated spacing triple in
// native order and remaps it to (x, y, z) storage order. Malformed input
// is ignored and leaves the default spacing in place.
func parseSpacings(value string) ([3]float64, bool) {
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return [3]float64{}, false
	}
	var native [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v <= 0 {
			return [3]float64{}, false
		}
		native[i] = v
	}
	return [3]float64{native[2], native[1], native[0]}, true
}

// parseSpaceDirections reads up to three parenthesized basis vectors, e.g.
// "(1,0,0) (0,1,0) (0,0,2.5)". The Euclidean magnitude of each vector is
// the spacing along the corresponding native axis; rows are remapped to
// (x, y, z) the same way sizes are. Malformed triples are skipped rather
// than failing the parse.
func parseSpaceDirections(value string) ([3]float64, bool) {
	spacing := [3]float64{1, 1, 1}
	any := false

	row := 0
	for row < 3 {
		open := strings.Index(value, "(")
		if open < 0 {
			break
		}
		end := strings.Index(value[open:], ")")
		if end < 0 {
			break
		}
		triple := value[open : open+end+1]
		value = value[open+end+1:]

		if v, ok := parseTriple(triple); ok {
			mag := floats.Norm([]float64{v[0], v[1], v[2]}, 2)
			if mag > 0 {
				// Native row order (slice, row, column) maps to
				// storage axes (z, y, x).
				spacing[2-row] = mag
				any = true
			}
		}
		row++
	}
	return spacing, any
}

// parseTriple reads one "(a,b,c)" vector. Returns false on any malformed
// component so callers can keep their defaults.
func parseTriple(value string) ([3]float64, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "(") || !strings.HasSuffix(value, ")") {
		return [3]float64{}, false
	}
	parts := strings.Split(value[1:len(value)-1], ",")
	if len(parts) != 3 {
		return [3]float64{}, false
	}
	var out [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [3]float64{}, false
		}
		out[i] = v
	}
	return out, true
}
