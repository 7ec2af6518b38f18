//go:build !js

package crossusb

import (
	"github.com/shini4i/crossusb/internal/nativeusb"
	"github.com/shini4i/crossusb/usb"
)

// defaultBackend returns the direct-hardware transport on native targets.
func defaultBackend() usb.Backend {
	return nativeusb.Default()
}
