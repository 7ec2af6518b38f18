// SPDX-License-Identifier: GPL-3.0-only

package nativeusb

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/gousb"

	"github.com/shini4i/crossusb/usb"
)

// device wraps one open gousb device. The active configuration is resolved
// once, on the first claim, and closed together with the device.
type device struct {
	dev *gousb.Device

	mu     sync.Mutex
	cfg    *gousb.Config
	closed bool
}

func newDevice(d *gousb.Device) *device {
	return &device{dev: d}
}

func (d *device) config() (*gousb.Config, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, usb.WrapOp("claim interface", usb.ErrClosed, nil)
	}
	if d.cfg != nil {
		return d.cfg, nil
	}

	num, err := d.dev.ActiveConfigNum()
	if err != nil {
		return nil, mapError("claim interface", usb.ErrClaimFailed, err)
	}
	cfg, err := d.dev.Config(num)
	if err != nil {
		return nil, mapError("claim interface", usb.ErrClaimFailed, err)
	}
	d.cfg = cfg
	return cfg, nil
}

func (d *device) Claim(ctx context.Context, number uint8) (usb.BackendInterface, error) {
	if err := ctx.Err(); err != nil {
		return nil, usb.WrapOp("claim interface", usb.ErrClaimFailed, err)
	}

	cfg, err := d.config()
	if err != nil {
		return nil, err
	}
	intf, err := cfg.Interface(int(number), 0)
	if err != nil {
		return nil, mapError("claim interface", usb.ErrClaimFailed, err)
	}
	return &iface{dev: d.dev, intf: intf}, nil
}

func (d *device) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return usb.WrapOp("reset", usb.ErrTransferFailed, err)
	}
	if err := d.dev.Reset(); err != nil {
		return mapError("reset", usb.ErrTransferFailed, err)
	}
	return nil
}

func (d *device) Strings() (manufacturer, product, serial string) {
	// String descriptor reads need device IO and can fail on inaccessible
	// devices; absent strings are reported as empty, not as errors.
	manufacturer, _ = d.dev.Manufacturer()
	product, _ = d.dev.Product()
	serial, _ = d.dev.SerialNumber()
	return manufacturer, product, serial
}

func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.cfg != nil {
		_ = d.cfg.Close()
		d.cfg = nil
	}
	return d.dev.Close()
}

// iface is one claimed gousb interface. Endpoint handles are resolved per
// transfer from the interface's alternate setting descriptor.
type iface struct {
	dev  *gousb.Device
	intf *gousb.Interface

	releaseOnce sync.Once
}

func (i *iface) Release() error {
	i.releaseOnce.Do(i.intf.Close)
	return nil
}

type controlResult struct {
	n   int
	err error
}

// control submits a control transfer without blocking on ctx: libusb's
// synchronous control call cannot be aborted, so on cancellation the eventual
// result is discarded instead of surfaced.
func (i *iface) control(ctx context.Context, op string, rType, request uint8, value, index uint16, data []byte) (int, error) {
	ch := make(chan controlResult, 1)
	go func() {
		n, err := i.dev.Control(rType, request, value, index, data)
		ch <- controlResult{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, usb.WrapOp(op, usb.ErrTransferFailed, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return 0, mapError(op, usb.ErrTransferFailed, res.err)
		}
		return res.n, nil
	}
}

func (i *iface) ControlIn(ctx context.Context, req usb.ControlIn) ([]byte, error) {
	rType := usb.RequestType(usb.DirectionIn, req.Type, req.Recipient)
	buf := make([]byte, req.Length)
	n, err := i.control(ctx, "control in", rType, req.Request, req.Value, req.Index, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (i *iface) ControlOut(ctx context.Context, req usb.ControlOut) (int, error) {
	rType := usb.RequestType(usb.DirectionOut, req.Type, req.Recipient)
	return i.control(ctx, "control out", rType, req.Request, req.Value, req.Index, req.Data)
}

// endpointDesc validates that the endpoint exists on this interface and has
// the expected transfer type.
func (i *iface) endpointDesc(op string, address uint8, tt gousb.TransferType) (gousb.EndpointDesc, error) {
	desc, ok := i.intf.Setting.Endpoints[gousb.EndpointAddress(address)]
	if !ok {
		return gousb.EndpointDesc{}, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("no endpoint %#02x on interface %d", address, i.intf.Setting.Number))
	}
	if desc.TransferType != tt {
		return gousb.EndpointDesc{}, usb.WrapOp(op, usb.ErrTransferFailed,
			fmt.Errorf("endpoint %#02x is a %s endpoint", address, desc.TransferType))
	}
	return desc, nil
}

func (i *iface) transferIn(ctx context.Context, op string, address uint8, length int, tt gousb.TransferType) ([]byte, error) {
	desc, err := i.endpointDesc(op, address, tt)
	if err != nil {
		return nil, err
	}
	ep, err := i.intf.InEndpoint(desc.Number)
	if err != nil {
		return nil, mapError(op, usb.ErrTransferFailed, err)
	}

	buf := make([]byte, length)
	n, err := ep.ReadContext(ctx, buf)
	if err != nil {
		return nil, mapError(op, usb.ErrTransferFailed, err)
	}
	return buf[:n], nil
}

func (i *iface) transferOut(ctx context.Context, op string, address uint8, data []byte, tt gousb.TransferType) (int, error) {
	desc, err := i.endpointDesc(op, address, tt)
	if err != nil {
		return 0, err
	}
	ep, err := i.intf.OutEndpoint(desc.Number)
	if err != nil {
		return 0, mapError(op, usb.ErrTransferFailed, err)
	}

	n, err := ep.WriteContext(ctx, data)
	if err != nil {
		return 0, mapError(op, usb.ErrTransferFailed, err)
	}
	return n, nil
}

func (i *iface) BulkIn(ctx context.Context, endpoint uint8, length int) ([]byte, error) {
	return i.transferIn(ctx, "bulk in", endpoint, length, gousb.TransferTypeBulk)
}

func (i *iface) BulkOut(ctx context.Context, endpoint uint8, data []byte) (int, error) {
	return i.transferOut(ctx, "bulk out", endpoint, data, gousb.TransferTypeBulk)
}

func (i *iface) InterruptIn(ctx context.Context, endpoint uint8, length int) ([]byte, error) {
	return i.transferIn(ctx, "interrupt in", endpoint, length, gousb.TransferTypeInterrupt)
}

func (i *iface) InterruptOut(ctx context.Context, endpoint uint8, data []byte) (int, error) {
	return i.transferOut(ctx, "interrupt out", endpoint, data, gousb.TransferTypeInterrupt)
}
