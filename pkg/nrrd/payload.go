package nrrd

import (
	"fmt"
	"os"
	"path/filepath"
)

// Payload is the companion binary file, fully read into memory, plus its
// resolved location and the declared versus actual byte counts. The buffer
// is exclusively owned by the loader that produced it until it is handed to
// Assemble.
type Payload struct {
	// Path is the resolved absolute or header-relative location the
	// bytes were read from.
	Path string

	// Data holds the raw file contents, unmodified.
	Data []byte

	// Declared is the byte count implied by the header dimensions.
	Declared int64

	// Actual is the byte count read from disk.
	Actual int64
}

// ResolvePayload locates the header's data file relative to headerDir
// (unless the path is already absolute) and reads it whole. A length that
// disagrees with the header is a warning, never a failure: converter
// output is observed to occasionally be off by small amounts, and the
// assembler normalizes the buffer either way.
func ResolvePayload(headerDir string, h *Header) (*Payload, []Warning, error) {
	path := h.DataFileName
	if !filepath.IsAbs(path) {
		path = filepath.Join(headerDir, path)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, path, err)
	}

	p := &Payload{
		Path:     path,
		Data:     data,
		Declared: h.ExpectedBytes(),
		Actual:   int64(len(data)),
	}

	var warnings []Warning
	if p.Actual != p.Declared {
		warnings = append(warnings, Warning{
			Kind: WarnSizeMismatch,
			Detail: fmt.Sprintf("%s: declared %d bytes, found %d",
				filepath.Base(path), p.Declared, p.Actual),
		})
	}
	return p, warnings, nil
}
