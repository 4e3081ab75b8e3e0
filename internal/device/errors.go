package device

import (
	"errors"
	"fmt"

	"github.com/icarus-itcs/lazylink/internal/platform"
)

var (
	// ErrUnavailable means no simulator or emulator could be obtained.
	ErrUnavailable = errors.New("device unavailable")

	// ErrOpenFailed means the URL could not be delivered to an available device.
	ErrOpenFailed = errors.New("open failed")
)

// PlatformError ties a failure to the platform and operation it came from.
type PlatformError struct {
	Platform platform.Selection
	Op       string
	Err      error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Platform.Label(), e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// Unavailable wraps err as ErrUnavailable for p.
func Unavailable(p platform.Selection, err error) error {
	return &PlatformError{Platform: p, Op: "provide", Err: wrapKind(ErrUnavailable, err)}
}

// OpenFailed wraps err as ErrOpenFailed for p.
func OpenFailed(p platform.Selection, err error) error {
	return &PlatformError{Platform: p, Op: "open", Err: wrapKind(ErrOpenFailed, err)}
}

func wrapKind(kind, err error) error {
	if err == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, err)
}
