//go:build js && wasm

// SPDX-License-Identifier: GPL-3.0-only

package webusb

import (
	"context"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/crossusb/usb"
)

// device wraps an opened WebUSB device object. The host queues operations
// per device, so calls issued sequentially settle in issuance order.
type device struct {
	dev  js.Value
	info usb.DeviceInfo

	mu     sync.Mutex
	closed bool
}

func (d *device) Claim(ctx context.Context, number uint8) (usb.BackendInterface, error) {
	if _, err := await(ctx, d.dev.Call("claimInterface", int(number))); err != nil {
		return nil, mapError("claim interface", usb.ErrClaimFailed, err)
	}
	return &iface{dev: d.dev, number: number}, nil
}

func (d *device) Reset(ctx context.Context) error {
	if _, err := await(ctx, d.dev.Call("reset")); err != nil {
		return mapError("reset", usb.ErrTransferFailed, err)
	}
	return nil
}

func (d *device) Strings() (manufacturer, product, serial string) {
	return d.info.Manufacturer, d.info.Product, d.info.Serial
}

func (d *device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	if _, err := await(context.Background(), d.dev.Call("close")); err != nil {
		return mapError("close", usb.ErrClosed, err)
	}
	return nil
}

// iface is a claimed interface on a WebUSB device. Transfers address
// endpoints through the device object; the host routes bulk and interrupt
// transfers by the endpoint's descriptor type.
type iface struct {
	dev    js.Value
	number uint8

	releaseOnce sync.Once
}

func (i *iface) Release() error {
	i.releaseOnce.Do(func() {
		if _, err := await(context.Background(), i.dev.Call("releaseInterface", int(i.number))); err != nil {
			// Release must always succeed from the caller's point of view;
			// a host rejection here usually means the device is gone.
			log.Debug().Err(err).Uint8("interface", i.number).Msg("WebUSB release rejected by host")
		}
	})
	return nil
}

var controlTypeNames = map[usb.ControlType]string{
	usb.ControlStandard: "standard",
	usb.ControlClass:    "class",
	usb.ControlVendor:   "vendor",
}

var recipientNames = map[usb.Recipient]string{
	usb.RecipientDevice:    "device",
	usb.RecipientInterface: "interface",
	usb.RecipientEndpoint:  "endpoint",
	usb.RecipientOther:     "other",
}

// controlParams translates control request fields one-for-one into the
// host's USBControlTransferParameters shape.
func controlParams(typ usb.ControlType, recipient usb.Recipient, request uint8, value, index uint16) js.Value {
	params := js.Global().Get("Object").New()
	params.Set("requestType", controlTypeNames[typ])
	params.Set("recipient", recipientNames[recipient])
	params.Set("request", int(request))
	params.Set("value", int(value))
	params.Set("index", int(index))
	return params
}

// checkStatus folds a non-ok USBTransferResult status into a failure.
func checkStatus(op string, result js.Value) error {
	status := result.Get("status").String()
	switch status {
	case "ok":
		return nil
	case "stall":
		return usb.WrapOp(op, usb.ErrTransferFailed, usb.ErrStall)
	default:
		return usb.WrapOp(op, usb.ErrTransferFailed, fmt.Errorf("host reported status %q", status))
	}
}

// dataViewBytes copies a DataView result into Go memory.
func dataViewBytes(view js.Value) []byte {
	if !view.Truthy() {
		return nil
	}
	length := view.Get("byteLength").Int()
	src := js.Global().Get("Uint8Array").New(view.Get("buffer"), view.Get("byteOffset"), length)
	out := make([]byte, length)
	js.CopyBytesToGo(out, src)
	return out
}

func toUint8Array(data []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	return arr
}

func (i *iface) ControlIn(ctx context.Context, req usb.ControlIn) ([]byte, error) {
	params := controlParams(req.Type, req.Recipient, req.Request, req.Value, req.Index)
	result, err := await(ctx, i.dev.Call("controlTransferIn", params, int(req.Length)))
	if err != nil {
		return nil, mapError("control in", usb.ErrTransferFailed, err)
	}
	if err := checkStatus("control in", result); err != nil {
		return nil, err
	}
	return dataViewBytes(result.Get("data")), nil
}

func (i *iface) ControlOut(ctx context.Context, req usb.ControlOut) (int, error) {
	params := controlParams(req.Type, req.Recipient, req.Request, req.Value, req.Index)
	result, err := await(ctx, i.dev.Call("controlTransferOut", params, toUint8Array(req.Data)))
	if err != nil {
		return 0, mapError("control out", usb.ErrTransferFailed, err)
	}
	if err := checkStatus("control out", result); err != nil {
		return 0, err
	}
	return result.Get("bytesWritten").Int(), nil
}

func (i *iface) transferIn(ctx context.Context, op string, endpoint uint8, length int) ([]byte, error) {
	result, err := await(ctx, i.dev.Call("transferIn", int(usb.EndpointNumber(endpoint)), length))
	if err != nil {
		return nil, mapError(op, usb.ErrTransferFailed, err)
	}
	if err := checkStatus(op, result); err != nil {
		return nil, err
	}
	return dataViewBytes(result.Get("data")), nil
}

func (i *iface) transferOut(ctx context.Context, op string, endpoint uint8, data []byte) (int, error) {
	result, err := await(ctx, i.dev.Call("transferOut", int(usb.EndpointNumber(endpoint)), toUint8Array(data)))
	if err != nil {
		return 0, mapError(op, usb.ErrTransferFailed, err)
	}
	if err := checkStatus(op, result); err != nil {
		return 0, err
	}
	return result.Get("bytesWritten").Int(), nil
}

func (i *iface) BulkIn(ctx context.Context, endpoint uint8, length int) ([]byte, error) {
	return i.transferIn(ctx, "bulk in", endpoint, length)
}

func (i *iface) BulkOut(ctx context.Context, endpoint uint8, data []byte) (int, error) {
	return i.transferOut(ctx, "bulk out", endpoint, data)
}

func (i *iface) InterruptIn(ctx context.Context, endpoint uint8, length int) ([]byte, error) {
	return i.transferIn(ctx, "interrupt in", endpoint, length)
}

func (i *iface) InterruptOut(ctx context.Context, endpoint uint8, data []byte) (int, error) {
	return i.transferOut(ctx, "interrupt out", endpoint, data)
}
