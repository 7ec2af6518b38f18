// SPDX-License-Identifier: GPL-3.0-only

package crossusb

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/crossusb/usb"
)

// DeviceInfo is a device candidate bound to the backend that enumerated it.
// It holds no resources; Open turns it into a Device.
type DeviceInfo struct {
	info    usb.DeviceInfo
	backend usb.Backend
}

// Info returns the descriptor data of the candidate.
func (d DeviceInfo) Info() usb.DeviceInfo { return d.info }

// VendorID returns the 16 bit vendor ID.
func (d DeviceInfo) VendorID() uint16 { return d.info.VendorID }

// ProductID returns the 16 bit product ID.
func (d DeviceInfo) ProductID() uint16 { return d.info.ProductID }

func (d DeviceInfo) String() string { return d.info.String() }

// Open opens the device through the backend that enumerated it.
func (d DeviceInfo) Open(ctx context.Context) (*Device, error) {
	if d.backend == nil {
		return nil, usb.WrapOp("open", usb.ErrOpenFailed, fmt.Errorf("device info not produced by enumeration"))
	}

	dev, err := d.backend.Open(ctx, d.info)
	if err != nil {
		return nil, err
	}

	info := d.info
	if info.Manufacturer == "" && info.Product == "" && info.Serial == "" {
		info.Manufacturer, info.Product, info.Serial = dev.Strings()
	}

	log.Debug().Stringer("device", info).Msg("USB device opened")
	return &Device{info: info, dev: dev, claimed: make(map[uint8]*Interface)}, nil
}

// Device is an open USB device. It exclusively owns its backend resource;
// Close releases it exactly once, and every operation after Close fails with
// usb.ErrClosed.
//
// The claim-state table (which interface numbers are currently held) is the
// only internally synchronized state. A Device is not otherwise meant to be
// shared between tasks without external coordination.
type Device struct {
	info usb.DeviceInfo
	dev  usb.BackendDevice

	mu      sync.Mutex
	closed  bool
	claimed map[uint8]*Interface
}

// Info returns the descriptor data of the device, including any string
// descriptors read at open time.
func (d *Device) Info() usb.DeviceInfo { return d.info }

func (d *Device) String() string { return d.info.String() }

// OpenInterface claims an interface by number. The claim is exclusive: a
// second claim of the same number fails with usb.ErrClaimFailed until the
// first Interface is released.
func (d *Device) OpenInterface(ctx context.Context, number uint8) (*Interface, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, usb.WrapOp("claim interface", usb.ErrClosed, nil)
	}
	if _, held := d.claimed[number]; held {
		d.mu.Unlock()
		return nil, usb.WrapOp("claim interface", usb.ErrClaimFailed,
			fmt.Errorf("interface %d already claimed", number))
	}
	// Reserve the slot before the backend call so a concurrent claim of the
	// same number fails instead of racing the backend.
	d.claimed[number] = nil
	d.mu.Unlock()

	bi, err := d.dev.Claim(ctx, number)
	if err != nil {
		d.mu.Lock()
		delete(d.claimed, number)
		d.mu.Unlock()
		return nil, err
	}

	intf := &Interface{dev: d, number: number, intf: bi}
	d.mu.Lock()
	if d.closed {
		// Lost the race against Close; undo the claim.
		delete(d.claimed, number)
		d.mu.Unlock()
		_ = bi.Release()
		return nil, usb.WrapOp("claim interface", usb.ErrClosed, nil)
	}
	d.claimed[number] = intf
	d.mu.Unlock()

	log.Debug().Stringer("device", d.info).Uint8("interface", number).Msg("USB interface claimed")
	return intf, nil
}

// Reset performs a USB port reset. Claimed interfaces should be released
// first; device state after a reset is backend-defined.
func (d *Device) Reset(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return usb.WrapOp("reset", usb.ErrClosed, nil)
	}
	d.mu.Unlock()

	return d.dev.Reset(ctx)
}

// Close releases all claimed interfaces and the backend device resource.
// Closing an already-closed device is a no-op.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	held := make([]*Interface, 0, len(d.claimed))
	for _, intf := range d.claimed {
		if intf != nil {
			held = append(held, intf)
		}
	}
	clear(d.claimed)
	d.mu.Unlock()

	for _, intf := range held {
		if err := intf.release(false); err != nil {
			log.Warn().Err(err).Stringer("device", d.info).
				Uint8("interface", intf.number).Msg("Failed to release interface on close")
		}
	}

	log.Debug().Stringer("device", d.info).Msg("USB device closed")
	return d.dev.Close()
}

// Interface is a claimed interface of an open Device. It exclusively owns the
// claimed state of its interface number until released. Transfers issued
// sequentially on one Interface complete in issuance order; transfers on
// different Interfaces are independent.
type Interface struct {
	dev    *Device
	number uint8
	intf   usb.BackendInterface

	// xfer serializes transfers on this interface.
	xfer sync.Mutex

	relMu    sync.Mutex
	released bool
}

// Number returns the interface number this handle has claimed.
func (i *Interface) Number() uint8 { return i.number }

// Release gives up the claim, making the interface number claimable again.
// Releasing an already-released interface is a no-op and never fails.
func (i *Interface) Release() error {
	return i.release(true)
}

func (i *Interface) release(unregister bool) error {
	i.relMu.Lock()
	if i.released {
		i.relMu.Unlock()
		return nil
	}
	i.released = true
	i.relMu.Unlock()

	if unregister {
		i.dev.mu.Lock()
		delete(i.dev.claimed, i.number)
		i.dev.mu.Unlock()
	}

	log.Debug().Stringer("device", i.dev.info).Uint8("interface", i.number).Msg("USB interface released")
	return i.intf.Release()
}

// guard reports the Closed error if the interface was released or its device
// closed. Callers hold i.xfer.
func (i *Interface) guard(op string) error {
	i.relMu.Lock()
	released := i.released
	i.relMu.Unlock()
	if released {
		return usb.WrapOp(op, usb.ErrClosed, nil)
	}

	i.dev.mu.Lock()
	closed := i.dev.closed
	i.dev.mu.Unlock()
	if closed {
		return usb.WrapOp(op, usb.ErrClosed, nil)
	}
	return nil
}
