// Package nativeusb adapts the direct-hardware libusb transport (via gousb)
// to the shared backend capability contract. Enumeration walks descriptors
// without opening devices; opening, claiming and transfers map directly onto
// the underlying libusb semantics, with libusb error codes translated into
// the unified taxonomy at this boundary.
package nativeusb

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/gousb"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/crossusb/usb"
)

// Backend drives USB devices through a process-wide libusb context. The
// context is created lazily on first use, is safe to use from multiple
// goroutines and needs no teardown beyond process exit.
type Backend struct {
	once sync.Once
	ctx  *gousb.Context
}

var defaultBackend Backend

// Default returns the shared native backend.
func Default() *Backend {
	return &defaultBackend
}

func (b *Backend) context() *gousb.Context {
	b.once.Do(func() {
		b.ctx = gousb.NewContext()
	})
	return b.ctx
}

// token identifies an enumerated device until it is opened. libusb has no
// stable device identity across re-enumeration, so the bus location plus the
// vendor/product pair is checked again at open time.
type token struct {
	bus     int
	address int
	vendor  gousb.ID
	product gousb.ID
}

// Enumerate lists devices matching at least one filter. The opener predicate
// records descriptors and always declines, so no device is actually opened.
func (b *Backend) Enumerate(ctx context.Context, filters []usb.DeviceFilter) ([]usb.DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, usb.WrapOp("enumerate", usb.ErrEnumerationFailed, err)
	}

	var infos []usb.DeviceInfo
	devs, err := b.context().OpenDevices(func(desc *gousb.DeviceDesc) bool {
		info := descToInfo(desc)
		if usb.MatchesAny(filters, info) {
			infos = append(infos, info)
		}
		return false
	})
	// The opener never opens, but close defensively whatever came back.
	for _, d := range devs {
		_ = d.Close()
	}
	if err != nil {
		return nil, usb.WrapOp("enumerate", usb.ErrEnumerationFailed, err)
	}

	log.Debug().Int("matches", len(infos)).Msg("Native USB enumeration finished")
	return infos, nil
}

// Open opens the device identified by the info's token.
func (b *Backend) Open(ctx context.Context, info usb.DeviceInfo) (usb.BackendDevice, error) {
	tok, ok := info.Token.(token)
	if !ok {
		return nil, usb.WrapOp("open", usb.ErrOpenFailed,
			fmt.Errorf("device info does not originate from the native backend"))
	}
	if err := ctx.Err(); err != nil {
		return nil, usb.WrapOp("open", usb.ErrOpenFailed, err)
	}

	devs, err := b.context().OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Bus == tok.bus && desc.Address == tok.address &&
			desc.Vendor == tok.vendor && desc.Product == tok.product
	})
	if err != nil {
		for _, d := range devs {
			_ = d.Close()
		}
		return nil, mapError("open", usb.ErrOpenFailed, err)
	}
	if len(devs) == 0 {
		return nil, usb.WrapOp("open", usb.ErrOpenFailed,
			fmt.Errorf("device %s no longer present", info))
	}
	// Bus plus address is unique; more than one match cannot happen.
	for _, d := range devs[1:] {
		_ = d.Close()
	}

	return newDevice(devs[0]), nil
}

func descToInfo(desc *gousb.DeviceDesc) usb.DeviceInfo {
	return usb.DeviceInfo{
		VendorID:  uint16(desc.Vendor),
		ProductID: uint16(desc.Product),
		Class:     uint8(desc.Class),
		SubClass:  uint8(desc.SubClass),
		Protocol:  uint8(desc.Protocol),
		Token: token{
			bus:     desc.Bus,
			address: desc.Address,
			vendor:  desc.Vendor,
			product: desc.Product,
		},
	}
}
