//go:build js && wasm

package crossusb

import (
	"github.com/shini4i/crossusb/internal/webusb"
	"github.com/shini4i/crossusb/usb"
)

// defaultBackend returns the WebUSB host transport on browser targets.
func defaultBackend() usb.Backend {
	return webusb.Default()
}
