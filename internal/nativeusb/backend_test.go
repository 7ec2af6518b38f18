package nativeusb

import (
	"context"
	"testing"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shini4i/crossusb/usb"
)

func TestDescToInfo(t *testing.T) {
	desc := &gousb.DeviceDesc{
		Bus:      3,
		Address:  7,
		Vendor:   gousb.ID(0x054c),
		Product:  gousb.ID(0x00c9),
		Class:    gousb.ClassVendorSpec,
		SubClass: gousb.Class(0x02),
		Protocol: gousb.Protocol(0x15),
	}

	info := descToInfo(desc)
	assert.Equal(t, uint16(0x054c), info.VendorID)
	assert.Equal(t, uint16(0x00c9), info.ProductID)
	assert.Equal(t, uint8(0xff), info.Class)
	assert.Equal(t, uint8(0x02), info.SubClass)
	assert.Equal(t, uint8(0x15), info.Protocol)

	tok, ok := info.Token.(token)
	require.True(t, ok)
	assert.Equal(t, 3, tok.bus)
	assert.Equal(t, 7, tok.address)
}

func TestDescToInfo_MatchesFilters(t *testing.T) {
	info := descToInfo(&gousb.DeviceDesc{Vendor: 0x054c, Product: 0x00c9})

	assert.True(t, usb.MatchesAny([]usb.DeviceFilter{
		{VendorID: usb.ID16(0x054c), ProductID: usb.ID16(0x00c9)},
	}, info))
	assert.False(t, usb.MatchesAny([]usb.DeviceFilter{
		{VendorID: usb.ID16(0x05ac)},
	}, info))
}

func TestOpen_RejectsForeignToken(t *testing.T) {
	// A DeviceInfo whose token did not come from this backend must be
	// refused before any hardware is touched.
	b := &Backend{}
	_, err := b.Open(context.Background(), usb.DeviceInfo{Token: "not-a-native-token"})
	assert.ErrorIs(t, err, usb.ErrOpenFailed)
}
