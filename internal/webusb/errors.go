//go:build js && wasm

package webusb

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/shini4i/crossusb/usb"
)

// hostError is a settled rejection from the host, reduced to the DOMException
// name and message. The js value itself is dropped at construction.
type hostError struct {
	name    string
	message string
}

func (e *hostError) Error() string {
	if e.name == "" {
		return "host call rejected"
	}
	return e.name + ": " + e.message
}

func exceptionError(v js.Value) error {
	e := &hostError{}
	if v.Type() == js.TypeObject {
		if name := v.Get("name"); name.Type() == js.TypeString {
			e.name = name.String()
		}
		if msg := v.Get("message"); msg.Type() == js.TypeString {
			e.message = msg.String()
		}
	} else if v.Truthy() {
		e.message = v.String()
	}
	return e
}

// mapError folds a host rejection into the unified taxonomy. Permission and
// secure-context failures become the kind of the operation they interrupted;
// they are not separate top-level kinds.
func mapError(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return usb.WrapOp(op, kind, normalize(err))
}

func normalize(err error) error {
	var he *hostError
	if !errors.As(err, &he) {
		return err
	}
	switch he.name {
	case "SecurityError", "NotAllowedError":
		return usb.ErrPermissionDenied
	case "NetworkError":
		return usb.ErrDisconnected
	case "TimeoutError":
		return usb.ErrTimeout
	default:
		return fmt.Errorf("%s", he.Error())
	}
}
