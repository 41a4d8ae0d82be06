package vox

import (
	"errors"
	"fmt"
)

var (
	// ErrSignature means the input does not start with the VOX magic.
	ErrSignature = errors.New("vox: bad signature")
	// ErrStructure means the chunk tree itself is broken: a size runs past
	// its container, the top chunk is not MAIN, or nesting is too deep.
	ErrStructure = errors.New("vox: bad chunk structure")
	// ErrContent means a known chunk carries a payload that disagrees with
	// its own declared sizes or counts.
	ErrContent = errors.New("vox: bad chunk content")
	// ErrRange means a voxel coordinate or palette index is out of bounds.
	ErrRange = errors.New("vox: value out of range")
)

// DecodeError carries where a decode failed. Unwrap yields one of the
// package sentinels so callers can branch with errors.Is.
type DecodeError struct {
	Kind   error
	Chunk  string
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Chunk != "" {
		return fmt.Sprintf("%v: %s chunk at offset %d: %s", e.Kind, e.Chunk, e.Offset, e.Msg)
	}
	return fmt.Sprintf("%v: offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

func newError(kind error, chunk string, off int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Chunk: chunk, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// IsInvalidFile reports whether err means the bytes are not a usable vox file.
func IsInvalidFile(err error) bool {
	return errors.Is(err, ErrSignature) || errors.Is(err, ErrStructure) ||
		errors.Is(err, ErrContent) || errors.Is(err, ErrRange)
}
