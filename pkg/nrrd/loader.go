package nrrd

import (
	"fmt"
	"os"
	"path/filepath"
)

// Option configures a Load call.
type Option func(*loadOptions)

type loadOptions struct {
	policy   Policy
	baseDir  string
	observer func(Warning)
}

// WithPolicy selects the parser strictness policy.
func WithPolicy(p Policy) Option {
	return func(o *loadOptions) { o.policy = p }
}

// WithBaseDir overrides the directory the data file is resolved against.
// The default is the header file's own directory.
func WithBaseDir(dir string) Option {
	return func(o *loadOptions) { o.baseDir = dir }
}

// WithObserver installs a callback invoked once per non-fatal warning, in
// the order the warnings occur. The pipeline itself never logs.
func WithObserver(fn func(Warning)) Option {
	return func(o *loadOptions) { o.observer = fn }
}

// Load runs the full ingestion pipeline for one header file: parse the
// header, resolve and read the payload, normalize byte order and compute
// statistics, then assemble the size-normalized volume. Each stage fully
// consumes its input before the next starts; two Load calls on different
// paths share no state and may run in parallel.
//
// Fatal errors abort the load and return no volume; non-fatal findings are
// accumulated on the returned volume and reported to the observer.
func Load(headerPath string, opts ...Option) (*Volume, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.baseDir == "" {
		o.baseDir = filepath.Dir(headerPath)
	}

	text, err := os.ReadFile(headerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, headerPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, headerPath, err)
	}

	header, warnings, err := ParseHeader(string(text), o.policy)
	if err != nil {
		return nil, err
	}

	payload, pw, err := ResolvePayload(o.baseDir, header)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, pw...)

	// Byte-order normalization mutates the buffer, so analysis has to
	// run before the buffer is sized for the consumer.
	stats, data, err := Analyze(payload.Data, header.LittleEndian)
	if err != nil {
		return nil, err
	}

	volume, err := Assemble(header, data, stats)
	if err != nil {
		return nil, err
	}
	volume.Warnings = append(warnings, volume.Warnings...)

	if o.observer != nil {
		for _, w := range volume.Warnings {
			o.observer(w)
		}
	}
	return volume, nil
}
