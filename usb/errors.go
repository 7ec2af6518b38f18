// SPDX-License-Identifier: GPL-3.0-only

package usb

import "errors"

// The unified error taxonomy. Every backend failure is mapped into exactly one
// of these kinds at the adapter boundary; no backend-specific error value
// crosses into caller-visible code except as a wrapped cause.
var (
	// ErrEnumerationFailed means the host denied bus access or rejected the
	// enumeration call.
	ErrEnumerationFailed = errors.New("usb: enumeration failed")

	// ErrOpenFailed means the device is unreachable, permission was denied,
	// or the device is already exclusively open elsewhere.
	ErrOpenFailed = errors.New("usb: open failed")

	// ErrClaimFailed means the interface number does not exist on the device
	// or is already claimed.
	ErrClaimFailed = errors.New("usb: claim failed")

	// ErrTransferFailed covers stalls, disconnects, malformed parameters,
	// host-side validation rejections and host-imposed timeouts.
	ErrTransferFailed = errors.New("usb: transfer failed")

	// ErrClosed is returned for operations on a device or interface whose
	// resource was already released.
	ErrClosed = errors.New("usb: closed")
)

// Normalized causes. Backends translate their own failure encodings (libusb
// error codes, DOM exception names) into these before wrapping, so callers
// can distinguish common conditions without matching backend types.
var (
	ErrStall            = errors.New("endpoint stalled")
	ErrDisconnected     = errors.New("device disconnected")
	ErrTimeout          = errors.New("operation timed out")
	ErrPermissionDenied = errors.New("permission denied")
	ErrBusy             = errors.New("device busy")
)

// Error couples a failure kind with the operation that produced it. The
// operation name survives unification; only the backend's cause encoding is
// normalized.
type Error struct {
	Op    string // the failing operation: "enumerate", "claim interface", "bulk in", ...
	Kind  error  // one of the sentinel kinds above
	Cause error  // backend-specific cause, may be nil
}

// WrapOp builds an Error for op with the given kind and cause.
func WrapOp(op string, kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause, so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
