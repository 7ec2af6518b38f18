// SPDX-License-Identifier: GPL-3.0-only

package usb

// DeviceFilter selects devices by descriptor fields. A nil field matches any
// value; a set field must match exactly. A filter with all fields nil matches
// every device on the bus, which can be a lot of devices — callers should set
// at least one field unless they really mean to enumerate everything.
type DeviceFilter struct {
	VendorID  *uint16
	ProductID *uint16
	Class     *uint8
	SubClass  *uint8
	Protocol  *uint8
}

// ID16 returns a pointer to v, for filter literals.
func ID16(v uint16) *uint16 { return &v }

// ID8 returns a pointer to v, for filter literals.
func ID8(v uint8) *uint8 { return &v }

// Matches reports whether every set field of the filter equals the
// corresponding field of the device.
func (f DeviceFilter) Matches(d DeviceInfo) bool {
	if f.VendorID != nil && *f.VendorID != d.VendorID {
		return false
	}
	if f.ProductID != nil && *f.ProductID != d.ProductID {
		return false
	}
	if f.Class != nil && *f.Class != d.Class {
		return false
	}
	if f.SubClass != nil && *f.SubClass != d.SubClass {
		return false
	}
	if f.Protocol != nil && *f.Protocol != d.Protocol {
		return false
	}
	return true
}

// MatchesAny reports whether at least one filter matches the device.
// An empty filter list matches nothing.
func MatchesAny(filters []DeviceFilter, d DeviceInfo) bool {
	for _, f := range filters {
		if f.Matches(d) {
			return true
		}
	}
	return false
}
