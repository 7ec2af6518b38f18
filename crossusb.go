// Package crossusb provides one USB device-discovery, device-handle and
// data-transfer API that works on native targets and in the browser. On native
// operating systems it drives the hardware through libusb (via gousb); when
// compiled for js/wasm it proxies through the WebUSB host API. Callers write
// against a single set of types and never branch on the target.
//
// Typical use:
//
//	filters := []usb.DeviceFilter{{VendorID: usb.ID16(0x054c), ProductID: usb.ID16(0x00c9)}}
//	info, err := crossusb.GetDevice(ctx, filters)
//	dev, err := info.Open(ctx)
//	intf, err := dev.OpenInterface(ctx, 0)
//	data, err := intf.ControlIn(ctx, usb.ControlIn{
//		Type:      usb.ControlVendor,
//		Recipient: usb.RecipientInterface,
//		Request:   0x01,
//		Length:    4,
//	})
//
// Isochronous transfers and hot-plug notification are not supported.
package crossusb

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/crossusb/usb"
)

// DeviceFilter selects devices by descriptor fields; see usb.DeviceFilter.
type DeviceFilter = usb.DeviceFilter

// ErrNoMatch is returned by GetDevice when enumeration succeeds but no device
// matches any of the supplied filters.
var ErrNoMatch = errors.New("crossusb: no matching device")

// Option configures a discovery call.
type Option func(*options)

type options struct {
	backend usb.Backend
}

// WithBackend overrides the target's default backend. Mainly a test seam; the
// default is chosen at build time.
func WithBackend(b usb.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

func applyOptions(opts []Option) options {
	o := options{backend: defaultBackend()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FindDevices enumerates and returns every device matching at least one of
// the filters (fields within one filter must all match). The list is computed
// once per call; an empty result is not an error. A filter with no fields set
// matches every device on the bus; an empty filters list matches nothing.
//
// On browser targets the host may show a device-selection prompt as part of
// enumeration; FindDevices simply awaits its outcome.
func FindDevices(ctx context.Context, filters []usb.DeviceFilter, opts ...Option) ([]DeviceInfo, error) {
	o := applyOptions(opts)

	found, err := o.backend.Enumerate(ctx, filters)
	if err != nil {
		return nil, err
	}

	infos := make([]DeviceInfo, 0, len(found))
	for _, info := range found {
		infos = append(infos, DeviceInfo{info: info, backend: o.backend})
	}
	log.Debug().Int("count", len(infos)).Msg("USB enumeration completed")
	return infos, nil
}

// GetDevice returns the first device matching any of the filters, or
// ErrNoMatch if enumeration succeeds but nothing matches.
func GetDevice(ctx context.Context, filters []usb.DeviceFilter, opts ...Option) (DeviceInfo, error) {
	infos, err := FindDevices(ctx, filters, opts...)
	if err != nil {
		return DeviceInfo{}, err
	}
	if len(infos) == 0 {
		return DeviceInfo{}, ErrNoMatch
	}
	return infos[0], nil
}
