package nativeusb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/gousb"

	"github.com/shini4i/crossusb/usb"
)

// mapError wraps a libusb failure into the unified taxonomy. The libusb error
// value itself never escapes: its code is normalized into a shared cause and
// the rest survives only as text.
func mapError(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return usb.WrapOp(op, kind, normalize(err))
}

func normalize(err error) error {
	var code gousb.Error
	if errors.As(err, &code) {
		switch code {
		case gousb.ErrorAccess:
			return usb.ErrPermissionDenied
		case gousb.ErrorBusy:
			return usb.ErrBusy
		case gousb.ErrorNoDevice, gousb.ErrorIO:
			return usb.ErrDisconnected
		case gousb.ErrorTimeout:
			return usb.ErrTimeout
		case gousb.ErrorPipe:
			return usb.ErrStall
		}
	}

	var status gousb.TransferStatus
	if errors.As(err, &status) {
		switch status {
		case gousb.TransferStall:
			return usb.ErrStall
		case gousb.TransferNoDevice:
			return usb.ErrDisconnected
		case gousb.TransferTimedOut:
			return usb.ErrTimeout
		case gousb.TransferCancelled:
			return context.Canceled
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Flatten everything else to its message so no gousb type crosses the
	// boundary.
	return fmt.Errorf("%s", err.Error())
}
