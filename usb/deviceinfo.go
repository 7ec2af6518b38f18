package usb

import "fmt"

// DeviceInfo describes a USB device candidate as reported by enumeration.
// It carries no open handle and holds no resources; opening happens through
// the backend that produced it.
type DeviceInfo struct {
	VendorID  uint16
	ProductID uint16
	Class     uint8
	SubClass  uint8
	Protocol  uint8

	// String descriptors, when the backend can read them without opening
	// the device. The native backend fills them in at open time instead.
	Manufacturer string
	Product      string
	Serial       string

	// Token is the backend-opaque identity of the device, set during
	// enumeration and interpreted only by the backend that set it.
	Token any
}

// String returns the conventional vid:pid rendering.
func (d DeviceInfo) String() string {
	return fmt.Sprintf("%04x:%04x", d.VendorID, d.ProductID)
}
