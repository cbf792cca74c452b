package tri

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic matches a FormatError whose header is not "PIRT".
	ErrBadMagic = errors.New("bad magic")
	// ErrUnsupportedVersion matches a FormatError with a version other than 1.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrOverrun matches a FormatError raised by a read past the end of the buffer.
	ErrOverrun = errors.New("read past end of buffer")
)

// FormatError reports why a buffer could not be decoded.
// It is fatal for that buffer only; batch callers should record it and move on.
type FormatError struct {
	// Kind is one of ErrBadMagic, ErrUnsupportedVersion or ErrOverrun.
	Kind error

	// Magic holds the header found, for ErrBadMagic.
	Magic string
	// Version holds the version found, for ErrUnsupportedVersion.
	Version uint16

	// Offset, Needed and Available describe an overrun: the read started at
	// Offset, wanted Needed bytes and only Available bytes were left.
	Offset    int
	Needed    int
	Available int
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case ErrBadMagic:
		return fmt.Sprintf("tri: invalid header: expected %q, got %q", Magic, e.Magic)
	case ErrUnsupportedVersion:
		return fmt.Sprintf("tri: unsupported version %d", e.Version)
	case ErrOverrun:
		return fmt.Sprintf("tri: parse overrun at %d (need %d, have %d)", e.Offset, e.Needed, e.Available)
	default:
		return "tri: malformed file"
	}
}

// Is lets errors.Is match the Kind sentinel.
func (e *FormatError) Is(target error) bool {
	return e.Kind == target
}

// Unwrap returns the Kind sentinel.
func (e *FormatError) Unwrap() error {
	return e.Kind
}
