//go:build js && wasm

// Package webusb adapts the browser's WebUSB host API to the shared backend
// capability contract. Every host call is asynchronous and permission-gated;
// the adapter awaits promise settlements and folds permission or
// secure-context failures into the kind of the operation they interrupted.
package webusb

import (
	"context"
	"errors"
	"sync"
	"syscall/js"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/crossusb/usb"
)

// Backend proxies through navigator.usb. The host object is resolved lazily
// on first use and cached for the lifetime of the process; it is absent
// outside secure browsing contexts and in browsers without WebUSB.
type Backend struct {
	once sync.Once
	root js.Value
	err  error
}

var defaultBackend Backend

// Default returns the shared browser backend.
func Default() *Backend {
	return &defaultBackend
}

func (b *Backend) usbRoot() (js.Value, error) {
	b.once.Do(func() {
		navigator := js.Global().Get("navigator")
		if !navigator.Truthy() {
			b.err = errors.New("no navigator object in this runtime")
			return
		}
		root := navigator.Get("usb")
		if !root.Truthy() {
			b.err = errors.New("WebUSB is unavailable (requires a secure context and browser support)")
			return
		}
		b.root = root
	})
	return b.root, b.err
}

// Enumerate asks the host for matching devices. Previously granted devices
// are listed first; if none match, the host's device-selection prompt is
// triggered through requestDevice. The adapter does not implement that UI,
// it only awaits the outcome.
func (b *Backend) Enumerate(ctx context.Context, filters []usb.DeviceFilter) ([]usb.DeviceInfo, error) {
	root, err := b.usbRoot()
	if err != nil {
		return nil, usb.WrapOp("enumerate", usb.ErrEnumerationFailed, err)
	}
	if len(filters) == 0 {
		// Nothing can match, and the host rejects an empty filter list
		// outright; skip the round trip.
		return nil, nil
	}

	var infos []usb.DeviceInfo
	granted, err := await(ctx, root.Call("getDevices"))
	if err != nil {
		return nil, mapError("enumerate", usb.ErrEnumerationFailed, err)
	}
	for i := 0; i < granted.Length(); i++ {
		info := deviceToInfo(granted.Index(i))
		if usb.MatchesAny(filters, info) {
			infos = append(infos, info)
		}
	}
	if len(infos) > 0 {
		log.Debug().Int("matches", len(infos)).Msg("WebUSB enumeration served from granted devices")
		return infos, nil
	}

	options := js.Global().Get("Object").New()
	options.Set("filters", filtersToJS(filters))
	picked, err := await(ctx, root.Call("requestDevice", options))
	if err != nil {
		var he *hostError
		if errors.As(err, &he) && he.name == "NotFoundError" {
			// The user dismissed the picker or nothing matched; an empty
			// result is not an enumeration failure.
			return nil, nil
		}
		return nil, mapError("enumerate", usb.ErrEnumerationFailed, err)
	}

	info := deviceToInfo(picked)
	if !usb.MatchesAny(filters, info) {
		// The host applied the translated filters already; a mismatch here
		// means the translation and the matcher disagree.
		return nil, nil
	}
	return []usb.DeviceInfo{info}, nil
}

// Open opens the host device object carried in the info's token.
func (b *Backend) Open(ctx context.Context, info usb.DeviceInfo) (usb.BackendDevice, error) {
	dev, ok := info.Token.(js.Value)
	if !ok {
		return nil, usb.WrapOp("open", usb.ErrOpenFailed,
			errors.New("device info does not originate from the WebUSB backend"))
	}

	if _, err := await(ctx, dev.Call("open")); err != nil {
		return nil, mapError("open", usb.ErrOpenFailed, err)
	}
	log.Debug().Stringer("device", info).Msg("WebUSB device opened")
	return &device{dev: dev, info: info}, nil
}

// filtersToJS translates filters field-by-field into the host's filter
// shape. Only set fields are present, matching the wildcard semantics.
func filtersToJS(filters []usb.DeviceFilter) js.Value {
	arr := js.Global().Get("Array").New()
	for _, f := range filters {
		obj := js.Global().Get("Object").New()
		if f.VendorID != nil {
			obj.Set("vendorId", int(*f.VendorID))
		}
		if f.ProductID != nil {
			obj.Set("productId", int(*f.ProductID))
		}
		if f.Class != nil {
			obj.Set("classCode", int(*f.Class))
		}
		if f.SubClass != nil {
			obj.Set("subclassCode", int(*f.SubClass))
		}
		if f.Protocol != nil {
			obj.Set("protocolCode", int(*f.Protocol))
		}
		arr.Call("push", obj)
	}
	return arr
}

func stringProp(dev js.Value, name string) string {
	v := dev.Get(name)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func deviceToInfo(dev js.Value) usb.DeviceInfo {
	return usb.DeviceInfo{
		VendorID:     uint16(dev.Get("vendorId").Int()),
		ProductID:    uint16(dev.Get("productId").Int()),
		Class:        uint8(dev.Get("deviceClass").Int()),
		SubClass:     uint8(dev.Get("deviceSubclass").Int()),
		Protocol:     uint8(dev.Get("deviceProtocol").Int()),
		Manufacturer: stringProp(dev, "manufacturerName"),
		Product:      stringProp(dev, "productName"),
		Serial:       stringProp(dev, "serialNumber"),
		Token:        dev,
	}
}
