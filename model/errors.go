package model

import "github.com/pkg/errors"

// Error classes for the load pipeline. Returned errors wrap one of these, so
// callers can branch with errors.Is.
var (
	// ErrIO: a file is missing or unreadable.
	ErrIO = errors.New("io error")

	// ErrFormat: a malformed number or an out-of-range face index.
	ErrFormat = errors.New("format error")

	// ErrResource: a GPU resource could not be created (empty vertex list,
	// undecodable image).
	ErrResource = errors.New("resource error")
)

func formatErrorf(path string, line int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrFormat, "%s:%d: "+format, append([]interface{}{path, line}, args...)...)
}
