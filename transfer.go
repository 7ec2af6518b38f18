// SPDX-License-Identifier: GPL-3.0-only

package crossusb

import (
	"context"
	"fmt"

	"github.com/shini4i/crossusb/usb"
)

// maxControlPayload is the largest payload a control transfer can carry; the
// wLength field of the setup packet is 16 bits wide.
const maxControlPayload = 0xffff

// ControlIn performs a device-to-host control transfer. req.Length is an
// upper bound: the device may terminate early and return fewer bytes, never
// more.
func (i *Interface) ControlIn(ctx context.Context, req usb.ControlIn) ([]byte, error) {
	i.xfer.Lock()
	defer i.xfer.Unlock()

	if err := i.guard("control in"); err != nil {
		return nil, err
	}

	data, err := i.intf.ControlIn(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(data) > int(req.Length) {
		return nil, usb.WrapOp("control in", usb.ErrTransferFailed,
			fmt.Errorf("backend returned %d bytes for a %d byte request", len(data), req.Length))
	}
	return data, nil
}

// ControlOut performs a host-to-device control transfer and returns the
// number of payload bytes accepted by the device. A short write is reported
// as a success with a smaller count; the caller decides whether to retry.
func (i *Interface) ControlOut(ctx context.Context, req usb.ControlOut) (int, error) {
	i.xfer.Lock()
	defer i.xfer.Unlock()

	if err := i.guard("control out"); err != nil {
		return 0, err
	}
	if len(req.Data) > maxControlPayload {
		return 0, usb.WrapOp("control out", usb.ErrTransferFailed,
			fmt.Errorf("payload of %d bytes exceeds the 16 bit control length field", len(req.Data)))
	}

	n, err := i.intf.ControlOut(ctx, req)
	if err != nil {
		return 0, err
	}
	return i.checkWritten("control out", n, len(req.Data))
}

// BulkIn reads up to length bytes from a bulk IN endpoint.
func (i *Interface) BulkIn(ctx context.Context, endpoint uint8, length int) ([]byte, error) {
	return i.transferIn(ctx, "bulk in", endpoint, length, i.intf.BulkIn)
}

// BulkOut writes data to a bulk OUT endpoint and returns the number of bytes
// written, which may be less than len(data).
func (i *Interface) BulkOut(ctx context.Context, endpoint uint8, data []byte) (int, error) {
	return i.transferOut(ctx, "bulk out", endpoint, data, i.intf.BulkOut)
}

// InterruptIn reads up to length bytes from an interrupt IN endpoint.
func (i *Interface) InterruptIn(ctx context.Context, endpoint uint8, length int) ([]byte, error) {
	return i.transferIn(ctx, "interrupt in", endpoint, length, i.intf.InterruptIn)
}

// InterruptOut writes data to an interrupt OUT endpoint and returns the
// number of bytes written.
func (i *Interface) InterruptOut(ctx context.Context, endpoint uint8, data []byte) (int, error) {
	return i.transferOut(ctx, "interrupt out", endpoint, data, i.intf.InterruptOut)
}

type inFunc func(ctx context.Context, endpoint uint8, length int) ([]byte, error)

func (i *Interface) transferIn(ctx context.Context, op string, endpoint uint8, length int, fn inFunc) ([]byte, error) {
	i.xfer.Lock()
	defer i.xfer.Unlock()

	if err := i.guard(op); err != nil {
		return nil, err
	}
	if usb.EndpointDirection(endpoint) != usb.DirectionIn {
		return nil, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("endpoint %#02x is not an IN endpoint", endpoint))
	}
	if length < 0 {
		return nil, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("negative read length %d", length))
	}

	data, err := fn(ctx, endpoint, length)
	if err != nil {
		return nil, err
	}
	if len(data) > length {
		return nil, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("backend returned %d bytes for a %d byte request", len(data), length))
	}
	return data, nil
}

type outFunc func(ctx context.Context, endpoint uint8, data []byte) (int, error)

func (i *Interface) transferOut(ctx context.Context, op string, endpoint uint8, data []byte, fn outFunc) (int, error) {
	i.xfer.Lock()
	defer i.xfer.Unlock()

	if err := i.guard(op); err != nil {
		return 0, err
	}
	if usb.EndpointDirection(endpoint) != usb.DirectionOut {
		return 0, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("endpoint %#02x is not an OUT endpoint", endpoint))
	}

	n, err := fn(ctx, endpoint, data)
	if err != nil {
		return 0, err
	}
	return i.checkWritten(op, n, len(data))
}

func (i *Interface) checkWritten(op string, n, supplied int) (int, error) {
	if n < 0 || n > supplied {
		return 0, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("backend reported %d bytes written of %d supplied", n, supplied))
	}
	return n, nil
}
