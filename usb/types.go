// Package usb defines the shared USB contract types: control transfer
// parameters, endpoint addressing, device descriptors, filters, the backend
// capability interface and the unified error taxonomy. Both the native and the
// browser backend speak exclusively in terms of this package.
package usb

// ControlType selects the type bits of a control request (bmRequestType
// bits 5..6).
type ControlType uint8

const (
	ControlStandard ControlType = 0
	ControlClass    ControlType = 1
	ControlVendor   ControlType = 2
)

// Recipient selects the recipient bits of a control request (bmRequestType
// bits 0..4).
type Recipient uint8

const (
	RecipientDevice    Recipient = 0
	RecipientInterface Recipient = 1
	RecipientEndpoint  Recipient = 2
	RecipientOther     Recipient = 3
)

// Direction is the data direction of an endpoint or a control transfer.
type Direction uint8

const (
	DirectionOut Direction = 0x00
	DirectionIn  Direction = 0x80
)

// TransferType identifies how an endpoint moves data.
type TransferType uint8

const (
	TransferTypeControl TransferType = iota
	TransferTypeIsochronous
	TransferTypeBulk
	TransferTypeInterrupt
)

// ControlIn holds the parameters of a device-to-host control transfer.
// Length is an upper bound; the device may return fewer bytes.
type ControlIn struct {
	Type      ControlType
	Recipient Recipient
	Request   uint8
	Value     uint16
	Index     uint16
	Length    uint16
}

// ControlOut holds the parameters of a host-to-device control transfer.
// Data may be empty for requests that carry no payload.
type ControlOut struct {
	Type      ControlType
	Recipient Recipient
	Request   uint8
	Value     uint16
	Index     uint16
	Data      []byte
}

// RequestType composes the bmRequestType byte for a control request with the
// given direction, per the USB control request layout.
func RequestType(dir Direction, typ ControlType, recipient Recipient) uint8 {
	return uint8(dir) | uint8(typ)<<5 | uint8(recipient)
}

// EndpointDirection extracts the direction bit from an endpoint address.
func EndpointDirection(address uint8) Direction {
	return Direction(address & 0x80)
}

// EndpointNumber extracts the endpoint number from an endpoint address.
func EndpointNumber(address uint8) uint8 {
	return address & 0x0f
}
